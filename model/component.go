package model

// ComponentKind distinguishes the two component variants.
type ComponentKind int

const (
	// ReferenceComponent is declared inline on an owning class through a member.
	ReferenceComponent ComponentKind = iota
	// ExternalComponent is declared once for a type and reused wherever a
	// Reference component of that type appears.
	ExternalComponent
)

func (k ComponentKind) String() string {
	switch k {
	case ReferenceComponent:
		return "reference"
	case ExternalComponent:
		return "external"
	default:
		return "unknown"
	}
}

// MarshalYAML renders the kind by name.
func (k ComponentKind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// Member identifies the owning member of a Reference component.
type Member struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// ComponentMapping is a value object mapped into the owning table's columns.
//
// For a Reference component Member is set and Name equals Member.Name.
// For an External component Member is nil and Type is the identity.
type ComponentMapping struct {
	Kind        ComponentKind        `yaml:"kind"`
	Name        string               `yaml:"name,omitempty"`
	Member      *Member              `yaml:"member,omitempty"`
	Type        string               `yaml:"type"`
	Properties  []*PropertyMapping   `yaml:"properties,omitempty"`
	Anys        []*AnyMapping        `yaml:"anys,omitempty"`
	Collections []*CollectionMapping `yaml:"collections,omitempty"`
	Components  []*ComponentMapping  `yaml:"components,omitempty"`
	OneToOnes   []*OneToOneMapping   `yaml:"one_to_ones,omitempty"`
	References  []*ManyToOneMapping  `yaml:"references,omitempty"`
}

// MemberName implements Named.
func (c *ComponentMapping) MemberName() string { return c.Name }

// IsReference reports whether c is a Reference component.
func (c *ComponentMapping) IsReference() bool {
	return c.Kind == ReferenceComponent
}

// Members returns the names of the component's child mappings, in kind order.
func (c *ComponentMapping) Members() []string {
	return memberNames(c.Properties, c.Components, c.Collections, c.References, c.OneToOnes, c.Anys)
}

// Clone returns a deep copy of c.
func (c *ComponentMapping) Clone() *ComponentMapping {
	if c == nil {
		return nil
	}

	out := &ComponentMapping{
		Kind:        c.Kind,
		Name:        c.Name,
		Type:        c.Type,
		Properties:  cloneAll(c.Properties),
		Anys:        cloneEach(c.Anys, (*AnyMapping).Clone),
		Collections: cloneEach(c.Collections, (*CollectionMapping).Clone),
		Components:  cloneEach(c.Components, (*ComponentMapping).Clone),
		OneToOnes:   cloneAll(c.OneToOnes),
		References:  cloneAll(c.References),
	}

	if c.Member != nil {
		m := *c.Member
		out.Member = &m
	}

	return out
}

// Clone returns a deep copy of a.
func (a *AnyMapping) Clone() *AnyMapping {
	if a == nil {
		return nil
	}

	out := *a
	if a.MetaValues != nil {
		out.MetaValues = append([]MetaValue(nil), a.MetaValues...)
	}

	return &out
}

// Clone returns a deep copy of c, including its components.
func (c *ClassMapping) Clone() *ClassMapping {
	if c == nil {
		return nil
	}

	out := &ClassMapping{
		Name:             c.Name,
		Table:            c.Table,
		Properties:       cloneAll(c.Properties),
		Collections:      cloneEach(c.Collections, (*CollectionMapping).Clone),
		References:       cloneAll(c.References),
		OneToOnes:        cloneAll(c.OneToOnes),
		StoredProcedures: cloneAll(c.StoredProcedures),
		Components:       cloneEach(c.Components, (*ComponentMapping).Clone),
		Anys:             cloneEach(c.Anys, (*AnyMapping).Clone),
	}

	if c.Id != nil {
		id := *c.Id
		out.Id = &id
	}

	if c.Tuplizer != nil {
		t := *c.Tuplizer
		out.Tuplizer = &t
	}

	return out
}

// cloneAll shallow-copies each element; T must hold only value fields.
func cloneAll[T any](in []*T) []*T {
	if in == nil {
		return nil
	}

	out := make([]*T, len(in))
	for i, v := range in {
		c := *v
		out[i] = &c
	}

	return out
}

func cloneEach[T any](in []*T, clone func(*T) *T) []*T {
	if in == nil {
		return nil
	}

	out := make([]*T, len(in))
	for i, v := range in {
		out[i] = clone(v)
	}

	return out
}
