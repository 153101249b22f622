package fluent

import (
	stderrors "errors"
	"fmt"

	"github.com/untillpro/goutils/logger"

	"fluentmap/analyze"
	"fluentmap/errors"
	"fluentmap/internal/diagnostic"
	"fluentmap/internal/hbm"
	"fluentmap/internal/merge"
	"fluentmap/model"
	"fluentmap/naming"
)

// Provider is a registrable builder: *ClassMap or *ComponentMap.
type Provider interface {
	mappedType() *analyze.TypeInfo
}

// Option configures a PersistenceModel.
type Option func(*PersistenceModel)

// WithConventions sets the naming convention filling unset table and column names.
func WithConventions(conv naming.Convention) Option {
	return func(p *PersistenceModel) {
		if conv != nil {
			p.conv = conv
		}
	}
}

// WithDefaultLazy sets the default-lazy attribute of every document.
func WithDefaultLazy(lazy bool) Option {
	return func(p *PersistenceModel) {
		p.defaultLazy = lazy
	}
}

// WithDefaultAccess sets the default-access attribute of every document.
func WithDefaultAccess(access string) Option {
	return func(p *PersistenceModel) {
		p.defaultAccess = access
	}
}

// WithAutoImport sets the auto-import attribute of every document.
func WithAutoImport(autoImport bool) Option {
	return func(p *PersistenceModel) {
		p.autoImport = autoImport
	}
}

// PersistenceModel is the registry of class and component builders. Builders
// are compiled in registration order; compilation does not change the
// registry or the builders, so BuildMappings may be called repeatedly.
type PersistenceModel struct {
	conv          naming.Convention
	defaultLazy   bool
	defaultAccess string
	autoImport    bool

	classes    []*ClassMap
	components []*ComponentMap
	seen       map[string]struct{}
}

// NewPersistenceModel creates an empty registry.
func NewPersistenceModel(opts ...Option) *PersistenceModel {
	p := &PersistenceModel{
		conv:        naming.Default,
		defaultLazy: true,
		autoImport:  true,
		seen:        make(map[string]struct{}),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Add registers builders. A class type may be registered once; several
// component builders for one type are accepted and reported as ambiguous
// when a class references that type.
func (p *PersistenceModel) Add(providers ...Provider) error {
	var errs []error

	for _, provider := range providers {
		switch b := provider.(type) {
		case *ClassMap:
			name := typeName(b.owner)
			if _, dup := p.seen[name]; dup {
				errs = append(errs, errors.New(errors.ErrDuplicateMapping, name, "", ""))

				continue
			}

			p.seen[name] = struct{}{}
			p.classes = append(p.classes, b)
		case *ComponentMap:
			p.components = append(p.components, b)
		case nil:
		default:
			errs = append(errs, fmt.Errorf("unsupported provider %T", provider))
		}
	}

	return stderrors.Join(errs...)
}

// Classes returns the registered class builders in registration order.
func (p *PersistenceModel) Classes() []*ClassMap {
	return append([]*ClassMap(nil), p.classes...)
}

// ClassMapOf returns the registered builder for the type named name
// (qualified, e.g. "fluentmap/store.Order").
func (p *PersistenceModel) ClassMapOf(name string) (*ClassMap, bool) {
	for _, c := range p.classes {
		if typeName(c.owner) == name {
			return c, true
		}
	}

	return nil, false
}

// BuildMappings compiles every registered class into its own document.
// Classes that fail to compile are left out; their errors are joined into
// the returned error while the remaining documents are still returned.
func (p *PersistenceModel) BuildMappings() ([]*model.HibernateMapping, error) {
	classes, diags := p.compile()

	docs := make([]*model.HibernateMapping, 0, len(classes))
	for _, cls := range classes {
		docs = append(docs, &model.HibernateMapping{
			DefaultAccess: p.defaultAccess,
			DefaultLazy:   p.defaultLazy,
			AutoImport:    p.autoImport,
			Classes:       []*model.ClassMapping{cls},
		})
	}

	return docs, diags.Error()
}

// CompileMappings compiles the registry and reports its errors only.
func (p *PersistenceModel) CompileMappings() error {
	_, err := p.BuildMappings()

	return err
}

// WriteMappingsTo builds the documents and writes one file per document to
// dir in format ("xml" or "yaml"). Documents that compiled are written even
// when others failed; the compile errors are returned alongside.
func (p *PersistenceModel) WriteMappingsTo(dir, format string) ([]string, error) {
	f, err := hbm.ParseFormat(format)
	if err != nil {
		return nil, err
	}

	docs, buildErr := p.BuildMappings()

	files, err := hbm.WriteFiles(dir, docs, f)
	if err != nil {
		return files, err
	}

	return files, buildErr
}

// Diagnose compiles the registry and returns every error and warning found.
func (p *PersistenceModel) Diagnose() diagnostic.Diagnostics {
	_, diags := p.compile()

	return diags
}

func (p *PersistenceModel) compile() ([]*model.ClassMapping, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	index := merge.NewIndex()

	for _, c := range p.components {
		name := typeName(c.owner)

		comp, err := c.compile(p.conv)
		if err != nil {
			diags.AddError(name, err)
			index.Fail(name, err)

			continue
		}

		index.Add(comp)
	}

	used := make(map[string]struct{})
	classes := make([]*model.ClassMapping, 0, len(p.classes))

	for _, c := range p.classes {
		name := typeName(c.owner)

		cls, err := c.compile(p.conv)
		if err != nil {
			diags.AddError(name, err)

			continue
		}

		merged, externals, err := index.Resolve(cls)
		if err != nil {
			diags.AddError(name, err)

			continue
		}

		mergedOwnerKeys(merged.Components, p.conv, shortName(c.owner))

		for _, typ := range externals {
			used[typ] = struct{}{}
		}

		if merged.Id == nil {
			diags.AddWarning(diagnostic.CodeMissingId, "class has no identifier", name, "")
		}

		logger.Verbose("compiled " + name)

		classes = append(classes, merged)
	}

	for _, typ := range index.Types() {
		if _, ok := used[typ]; !ok {
			diags.AddInfo(diagnostic.CodeUnusedComponent, "no class references this component", typ, "")
		}
	}

	for _, w := range diags.Warnings {
		logger.Warning(w.String())
	}

	return classes, diags
}
