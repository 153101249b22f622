package fluent

import (
	stderrors "errors"
	"fmt"

	"fluentmap/analyze"
	"fluentmap/errors"
	"fluentmap/naming"
)

// memberRef is a resolved struct field of a mapped type.
type memberRef struct {
	Name  string
	Field *analyze.FieldInfo
}

// Type returns the declared type of the member.
func (m memberRef) Type() *analyze.TypeInfo {
	return m.Field.Type
}

// resolve finds the exported field called name on owner. A failed lookup
// panics with a member resolution error so the offending builder call is the
// one that fails.
func resolve(owner *analyze.TypeInfo, name string) memberRef {
	typ := typeName(owner)

	if name == "" {
		panic(errors.NewMemberResolutionError(typ, name, "empty member name"))
	}

	f, err := owner.LookupField(name)
	if stderrors.Is(err, analyze.ErrAmbiguousField) {
		panic(errors.NewMemberResolutionError(typ, name, "ambiguous promoted field"))
	}

	if err != nil {
		reason := "no such field"
		if s := naming.Suggest(name, fieldNames(owner)); s != "" {
			reason = fmt.Sprintf("no such field, did you mean %q", s)
		}

		panic(errors.NewMemberResolutionError(typ, name, reason))
	}

	if !f.Exported {
		panic(errors.NewMemberResolutionError(typ, name, "field is not exported"))
	}

	return memberRef{Name: name, Field: f}
}

// mustBe panics with an invalid member error unless ok holds.
func mustBe(ok bool, owner *analyze.TypeInfo, m memberRef, reason string) {
	if !ok {
		panic(errors.NewInvalidMemberError(typeName(owner), m.Name, reason))
	}
}

// fieldNames lists the exported field names of owner, promoted ones included.
func fieldNames(owner *analyze.TypeInfo) []string {
	var names []string

	collect(owner.Deref(), map[*analyze.TypeInfo]struct{}{}, &names)

	return names
}

func collect(t *analyze.TypeInfo, seen map[*analyze.TypeInfo]struct{}, names *[]string) {
	if t == nil || t.Kind != analyze.TypeKindStruct {
		return
	}

	if _, ok := seen[t]; ok {
		return
	}

	seen[t] = struct{}{}

	for i := range t.Fields {
		f := &t.Fields[i]
		if f.Exported {
			*names = append(*names, f.Name)
		}

		if f.Embedded {
			collect(f.Type.Deref(), seen, names)
		}
	}
}

func typeName(t *analyze.TypeInfo) string {
	return t.Deref().QualifiedName()
}

// shortName is the bare type name used by naming conventions.
func shortName(t *analyze.TypeInfo) string {
	d := t.Deref()
	if d.IsNamed() {
		return d.ID.Name
	}

	return d.QualifiedName()
}
