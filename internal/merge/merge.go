package merge

import (
	stderrors "errors"
	"slices"

	"fluentmap/errors"
	"fluentmap/internal/common"
	"fluentmap/model"
)

// Index maps component types to their External component mappings.
type Index struct {
	externals map[string][]*model.ComponentMapping
	failed    map[string]error
	order     []string
}

// NewIndex creates an empty Index.
func NewIndex() *Index {
	return &Index{
		externals: make(map[string][]*model.ComponentMapping),
		failed:    make(map[string]error),
	}
}

// Add registers an External component mapping under its type.
func (ix *Index) Add(c *model.ComponentMapping) {
	ix.remember(c.Type)
	ix.externals[c.Type] = append(ix.externals[c.Type], c)
}

// Fail records that the External component for typ did not compile.
// Classes referencing typ fail with err as the cause.
func (ix *Index) Fail(typ string, err error) {
	ix.remember(typ)
	ix.failed[typ] = err
}

// Types returns the component types that compiled, in registration order.
func (ix *Index) Types() []string {
	return slices.DeleteFunc(slices.Clone(ix.order), func(typ string) bool {
		_, failed := ix.failed[typ]

		return failed
	})
}

func (ix *Index) remember(typ string) {
	if _, ok := ix.externals[typ]; ok {
		return
	}

	if _, ok := ix.failed[typ]; ok {
		return
	}

	ix.order = append(ix.order, typ)
}

// Resolve returns a copy of cls whose Reference components are merged with
// the matching External components, recursively. The returned slice lists
// the External types that took part in the merge.
func (ix *Index) Resolve(cls *model.ClassMapping) (*model.ClassMapping, []string, error) {
	r := resolver{index: ix, scope: cls.Name, used: map[string]struct{}{}}
	out := cls.Clone()

	var errs []error

	for i, c := range out.Components {
		merged, err := r.component(c, "", nil)
		if err != nil {
			errs = append(errs, err)

			continue
		}

		out.Components[i] = merged
	}

	if len(errs) > 0 {
		return nil, nil, stderrors.Join(errs...)
	}

	used := make([]string, 0, len(r.used))
	for _, typ := range ix.order {
		if _, ok := r.used[typ]; ok {
			used = append(used, typ)
		}
	}

	return out, used, nil
}

type resolver struct {
	index *Index
	scope string
	used  map[string]struct{}
}

// component merges c in place; c must already be a private copy.
func (r *resolver) component(c *model.ComponentMapping, path string, stack []string) (*model.ComponentMapping, error) {
	memberPath := path + c.Name

	if c.IsReference() {
		if cause, ok := r.index.failed[c.Type]; ok {
			return nil, &errors.MappingError{
				Type:   r.scope,
				Member: memberPath,
				Detail: "external component " + c.Type + " failed to compile",
				Err:    cause,
			}
		}

		exts := r.index.externals[c.Type]

		switch {
		case common.IsMultiple(exts):
			return nil, errors.New(errors.ErrAmbiguousMergeTarget, r.scope, memberPath,
				"%d external components for %s", len(exts), c.Type)
		case common.IsSingle(exts):
			if slices.Contains(stack, c.Type) {
				return nil, errors.New(errors.ErrRecursiveComponent, r.scope, memberPath, "%s contains itself", c.Type)
			}

			absorb(c, exts[0].Clone())
			r.used[c.Type] = struct{}{}
		}
	}

	if err := CheckUnique(r.scope, memberPath+".", c.Members()); err != nil {
		return nil, err
	}

	stack = append(stack, c.Type)

	var errs []error

	for i, child := range c.Components {
		merged, err := r.component(child, memberPath+".", stack)
		if err != nil {
			errs = append(errs, err)

			continue
		}

		c.Components[i] = merged
	}

	if len(errs) > 0 {
		return nil, stderrors.Join(errs...)
	}

	return c, nil
}

// absorb appends the children of ext after those of c.
func absorb(c, ext *model.ComponentMapping) {
	c.Properties = append(c.Properties, ext.Properties...)
	c.Anys = append(c.Anys, ext.Anys...)
	c.Collections = append(c.Collections, ext.Collections...)
	c.Components = append(c.Components, ext.Components...)
	c.OneToOnes = append(c.OneToOnes, ext.OneToOnes...)
	c.References = append(c.References, ext.References...)
}

// CheckUnique reports every name that occurs more than once in names.
// Errors are scoped to typ with member path prefix+name.
func CheckUnique(typ, prefix string, names []string) error {
	seen := make(map[string]int, len(names))

	var errs []error

	for _, n := range names {
		seen[n]++
		if seen[n] == 2 {
			errs = append(errs, errors.New(errors.ErrDuplicateMember, typ, prefix+n, "mapped more than once"))
		}
	}

	return stderrors.Join(errs...)
}
