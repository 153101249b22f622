package automap

import (
	stderrors "errors"
	"fmt"

	"github.com/untillpro/goutils/logger"

	"fluentmap/analyze"
	"fluentmap/fluent"
	"fluentmap/internal/diagnostic"
	"fluentmap/model"
)

// SkipTag is the struct tag key that excludes a field: `fluentmap:"-"`.
const SkipTag = "fluentmap"

type override struct {
	typ string
	fn  func(*fluent.ClassMap)
}

// AutoPersistenceModel maps the entities of a TypeSource by convention:
//
//   - a field named ID or Id is the identifier, and a struct with one is an entity
//   - scalars, named scalars and value types such as time.Time are properties
//   - an entity or pointer to an entity is a many-to-one reference
//   - any other struct is a component whose fields are automapped in turn
//   - a slice, array or map of entities is a one-to-many collection
//
// Unexported fields and fields tagged `fluentmap:"-"` are left out. Fields
// matching no rule are reported as skipped.
type AutoPersistenceModel struct {
	source     TypeSource
	opts       []fluent.Option
	filter     func(*analyze.TypeInfo) bool
	overrides  []override
	components []*fluent.ComponentMap
}

// Source creates an automapping over the types of src. opts configure the
// underlying fluent.PersistenceModel.
func Source(src TypeSource, opts ...fluent.Option) *AutoPersistenceModel {
	return &AutoPersistenceModel{source: src, opts: opts}
}

// Where keeps only the candidate types for which filter returns true.
// Calls combine.
func (m *AutoPersistenceModel) Where(filter func(*analyze.TypeInfo) bool) *AutoPersistenceModel {
	prev := m.filter
	m.filter = func(t *analyze.TypeInfo) bool {
		return (prev == nil || prev(t)) && filter(t)
	}

	return m
}

// Components registers External components. A struct field whose type has
// one is mapped as an empty Reference component and takes its members from
// the External when compiled.
func (m *AutoPersistenceModel) Components(components ...*fluent.ComponentMap) *AutoPersistenceModel {
	m.components = append(m.components, components...)

	return m
}

// OverrideFor registers fn to run against the automapped ClassMap of the
// type with the given qualified name.
func (m *AutoPersistenceModel) OverrideFor(typ string, fn func(*fluent.ClassMap)) *AutoPersistenceModel {
	m.overrides = append(m.overrides, override{typ: typ, fn: fn})

	return m
}

// Override registers fn to run against the automapped ClassMap of T.
//
//	automap.Override[store.Order](m, func(c *fluent.ClassMap) {
//		c.SqlInsert("INSERT INTO orders ...")
//	})
func Override[T any](m *AutoPersistenceModel, fn func(*fluent.ClassMap)) *AutoPersistenceModel {
	return m.OverrideFor(analyze.ReflectType[T]().Deref().QualifiedName(), fn)
}

// Build automaps the source into a fresh fluent.PersistenceModel. Every call
// starts over, so Build may be called repeatedly.
func (m *AutoPersistenceModel) Build() (*fluent.PersistenceModel, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	pm := fluent.NewPersistenceModel(m.opts...)

	externals := make(map[string]struct{}, len(m.components))
	for _, c := range m.components {
		externals[c.Type().QualifiedName()] = struct{}{}

		if err := pm.Add(c); err != nil {
			diags.AddError(c.Type().QualifiedName(), err)
		}
	}

	used := make(map[int]struct{})

	for _, t := range m.candidates() {
		name := t.QualifiedName()

		cm, err := mapClass(t, externals, &diags)
		if err == nil {
			err = m.applyOverrides(name, cm, used)
		}

		if err != nil {
			diags.AddError(name, err)

			continue
		}

		if err := pm.Add(cm); err != nil {
			diags.AddError(name, err)

			continue
		}

		logger.Verbose("automapped " + name)
	}

	for i, o := range m.overrides {
		if _, ok := used[i]; !ok {
			diags.AddWarning(diagnostic.CodeUnusedOverride, "override for a type that is not automapped", o.typ, "")
		}
	}

	return pm, diags
}

// BuildMappings automaps the source and compiles it like
// fluent.PersistenceModel.BuildMappings.
func (m *AutoPersistenceModel) BuildMappings() ([]*model.HibernateMapping, error) {
	pm, diags := m.Build()
	docs, err := pm.BuildMappings()

	return docs, stderrors.Join(diags.Error(), err)
}

// CompileMappings automaps and compiles the source, reporting errors only.
func (m *AutoPersistenceModel) CompileMappings() error {
	_, err := m.BuildMappings()

	return err
}

// Diagnose returns the automapping diagnostics followed by the compile ones.
func (m *AutoPersistenceModel) Diagnose() diagnostic.Diagnostics {
	pm, diags := m.Build()
	diags.Merge(pm.Diagnose())

	return diags
}

// WriteMappingsTo automaps the source and writes the documents to dir.
func (m *AutoPersistenceModel) WriteMappingsTo(dir, format string) ([]string, error) {
	pm, diags := m.Build()
	files, err := pm.WriteMappingsTo(dir, format)

	return files, stderrors.Join(diags.Error(), err)
}

// candidates returns the entity types of the source that pass the filter.
func (m *AutoPersistenceModel) candidates() []*analyze.TypeInfo {
	if m.source == nil {
		return nil
	}

	var out []*analyze.TypeInfo

	for _, t := range m.source.Types() {
		t = t.Deref()
		if !isEntity(t) {
			continue
		}

		if m.filter != nil && !m.filter(t) {
			continue
		}

		out = append(out, t)
	}

	return out
}

func mapClass(
	t *analyze.TypeInfo,
	externals map[string]struct{},
	diags *diagnostic.Diagnostics,
) (cm *fluent.ClassMap, err error) {
	err = fluent.Try(func() {
		cm = fluent.ClassMapFor(t)

		id := idField(t)
		cm.Id(id.Name)

		mp := &mapper{class: t.QualifiedName(), externals: externals, diags: diags}
		mp.members(&cm.Members, t, t, "", map[*analyze.TypeInfo]struct{}{t: {}}, id)
	})

	return cm, err
}

func (m *AutoPersistenceModel) applyOverrides(name string, cm *fluent.ClassMap, used map[int]struct{}) error {
	for i, o := range m.overrides {
		if o.typ != name {
			continue
		}

		used[i] = struct{}{}

		if err := fluent.Try(func() { o.fn(cm) }); err != nil {
			return fmt.Errorf("override: %w", err)
		}
	}

	return nil
}

// mapper walks the fields of one class.
type mapper struct {
	class     string
	externals map[string]struct{}
	diags     *diagnostic.Diagnostics
	seen      map[string]struct{}
}

// members maps the fields of owner onto m. Embedded structs are flattened;
// their fields resolve as promoted fields of root, so a field hidden by a
// shallower one of the same name is left out and an ambiguous one is
// reported.
func (mp *mapper) members(
	m *fluent.Members,
	root, owner *analyze.TypeInfo,
	path string,
	stack map[*analyze.TypeInfo]struct{},
	id *analyze.FieldInfo,
) {
	for i := range owner.Fields {
		f := &owner.Fields[i]
		if f == id || f.GetTag(SkipTag) == "-" {
			continue
		}

		if f.Embedded && f.Type.IsStruct() {
			if _, ok := stack[f.Type.Deref()]; !ok {
				mp.members(m, root, f.Type.Deref(), path, stack, id)
			}

			continue
		}

		if !f.Exported {
			continue
		}

		promoted, err := root.LookupField(f.Name)
		ambiguous := stderrors.Is(err, analyze.ErrAmbiguousField)

		if !ambiguous && promoted != f {
			continue
		}

		// an embedded struct reachable twice yields its fields twice
		if !mp.first(path + f.Name) {
			continue
		}

		if ambiguous {
			mp.diags.AddWarning(diagnostic.CodeSkippedMember,
				"ambiguous promoted field", mp.class, path+f.Name)

			continue
		}

		mp.field(m, f, path, stack)
	}
}

// first reports whether member is seen for the first time.
func (mp *mapper) first(member string) bool {
	if mp.seen == nil {
		mp.seen = map[string]struct{}{}
	}

	if _, ok := mp.seen[member]; ok {
		return false
	}

	mp.seen[member] = struct{}{}

	return true
}

func typeString(t *analyze.TypeInfo) string {
	return analyze.NewTypeStringer().TypeString(t)
}

// isEntity reports whether t is a struct with an identifier field.
func isEntity(t *analyze.TypeInfo) bool {
	return t != nil && t.Kind == analyze.TypeKindStruct && idField(t) != nil
}

// idField returns the scalar ID or Id field of t, promoted ones included.
func idField(t *analyze.TypeInfo) *analyze.FieldInfo {
	for _, name := range []string{"ID", "Id"} {
		if f, ok := t.Field(name); ok && f.Exported && f.Type.IsScalar() {
			return f
		}
	}

	return nil
}
