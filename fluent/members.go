package fluent

import (
	stderrors "errors"

	"fluentmap/analyze"
	"fluentmap/model"
)

// Members records member mappings against an owning struct type. It is
// embedded by ClassMap, ComponentMap and ComponentPart.
//
// Every method resolves the member by its Go field name and panics with an
// *errors.MappingError when the field does not exist, is unexported, or has
// a type the mapping cannot use.
type Members struct {
	owner       *analyze.TypeInfo
	properties  []*PropertyPart
	anys        []*AnyPart
	collections []collectionPart
	components  []*ComponentPart
	oneToOnes   []*OneToOnePart
	references  []*ManyToOnePart
}

func newMembers(owner *analyze.TypeInfo) Members {
	return Members{owner: owner}
}

// Map maps member onto a column.
func (m *Members) Map(member string) *PropertyPart {
	p := &PropertyPart{m: resolve(m.owner, member)}
	m.properties = append(m.properties, p)

	return p
}

// References maps member as a many-to-one association.
func (m *Members) References(member string) *ManyToOnePart {
	r := resolve(m.owner, member)
	mustBe(r.Type().IsStruct(), m.owner, r, "references need a struct or pointer to struct")

	p := &ManyToOnePart{m: r}
	m.references = append(m.references, p)

	return p
}

// ReferencesAny maps member as a polymorphic association.
func (m *Members) ReferencesAny(member string) *AnyPart {
	p := &AnyPart{m: resolve(m.owner, member)}
	m.anys = append(m.anys, p)

	return p
}

// HasMany maps member as a one-to-many collection.
func (m *Members) HasMany(member string) *OneToManyPart {
	p := &OneToManyPart{collection: collection{m: m.collectionMember(member)}}
	m.collections = append(m.collections, p)

	return p
}

// HasManyToMany maps member as a many-to-many collection.
func (m *Members) HasManyToMany(member string) *ManyToManyPart {
	p := &ManyToManyPart{collection: collection{m: m.collectionMember(member)}}
	m.collections = append(m.collections, p)

	return p
}

func (m *Members) collectionMember(member string) memberRef {
	r := resolve(m.owner, member)
	mustBe(r.Type().IsCollection(), m.owner, r, "collections need a slice, array or map")
	mustBe(r.Type().Element().IsStruct(), m.owner, r, "collection elements must be structs")

	return r
}

// HasOne maps member as a one-to-one association.
func (m *Members) HasOne(member string) *OneToOnePart {
	r := resolve(m.owner, member)
	mustBe(r.Type().IsStruct(), m.owner, r, "one-to-one needs a struct or pointer to struct")

	p := &OneToOnePart{m: r}
	m.oneToOnes = append(m.oneToOnes, p)

	return p
}

// Component maps member as a Reference component. Its own members are
// configured on the returned part.
func (m *Members) Component(member string) *ComponentPart {
	r := resolve(m.owner, member)
	mustBe(r.Type().IsStruct(), m.owner, r, "components need a struct or pointer to struct")

	p := &ComponentPart{Members: newMembers(r.Type().Deref()), m: r}
	m.components = append(m.components, p)

	return p
}

// children points at the child slices of a class or component mapping.
type children struct {
	properties  *[]*model.PropertyMapping
	anys        *[]*model.AnyMapping
	collections *[]*model.CollectionMapping
	components  *[]*model.ComponentMapping
	oneToOnes   *[]*model.OneToOneMapping
	references  *[]*model.ManyToOneMapping
}

func classChildren(c *model.ClassMapping) children {
	return children{
		properties:  &c.Properties,
		anys:        &c.Anys,
		collections: &c.Collections,
		components:  &c.Components,
		oneToOnes:   &c.OneToOnes,
		references:  &c.References,
	}
}

func componentChildren(c *model.ComponentMapping) children {
	return children{
		properties:  &c.Properties,
		anys:        &c.Anys,
		collections: &c.Collections,
		components:  &c.Components,
		oneToOnes:   &c.OneToOnes,
		references:  &c.References,
	}
}

// compileInto appends the compiled member mappings to out, in call order per
// kind. All member errors are reported together.
func (m *Members) compileInto(ctx compileContext, out children) error {
	var errs []error

	for _, p := range m.properties {
		pm, err := p.mapping(ctx)
		if err != nil {
			errs = append(errs, err)

			continue
		}

		*out.properties = append(*out.properties, pm)
	}

	for _, p := range m.anys {
		am, err := p.mapping(ctx)
		if err != nil {
			errs = append(errs, err)

			continue
		}

		*out.anys = append(*out.anys, am)
	}

	for _, p := range m.collections {
		*out.collections = append(*out.collections, p.mapping(ctx))
	}

	for _, p := range m.components {
		cm, err := p.mapping(ctx)
		if err != nil {
			errs = append(errs, err)

			continue
		}

		*out.components = append(*out.components, cm)
	}

	for _, p := range m.oneToOnes {
		*out.oneToOnes = append(*out.oneToOnes, p.mapping())
	}

	for _, p := range m.references {
		*out.references = append(*out.references, p.mapping(ctx))
	}

	return stderrors.Join(errs...)
}
