package model

// HibernateMapping is one mapping document: the unit an ORM runtime loads.
type HibernateMapping struct {
	DefaultAccess string          `yaml:"default_access,omitempty"`
	DefaultLazy   bool            `yaml:"default_lazy"`
	AutoImport    bool            `yaml:"auto_import"`
	Classes       []*ClassMapping `yaml:"classes"`
}

// ClassMapping describes how one type maps onto a table.
type ClassMapping struct {
	Name             string                    `yaml:"name"`
	Table            string                    `yaml:"table,omitempty"`
	Id               *IdMapping                `yaml:"id,omitempty"`
	Properties       []*PropertyMapping        `yaml:"properties,omitempty"`
	Components       []*ComponentMapping       `yaml:"components,omitempty"`
	Collections      []*CollectionMapping      `yaml:"collections,omitempty"`
	References       []*ManyToOneMapping       `yaml:"references,omitempty"`
	OneToOnes        []*OneToOneMapping        `yaml:"one_to_ones,omitempty"`
	Anys             []*AnyMapping             `yaml:"anys,omitempty"`
	StoredProcedures []*StoredProcedureMapping `yaml:"stored_procedures,omitempty"`
	Tuplizer         *TuplizerMapping          `yaml:"tuplizer,omitempty"`
}

// Members returns the names of all member mappings of the class, in kind order.
func (c *ClassMapping) Members() []string {
	var names []string
	if c.Id != nil {
		names = append(names, c.Id.Name)
	}

	return append(names, memberNames(c.Properties, c.Components, c.Collections, c.References, c.OneToOnes, c.Anys)...)
}

// IdMapping is the identifier of a class.
type IdMapping struct {
	Name      string `yaml:"name"`
	Type      string `yaml:"type,omitempty"`
	Column    string `yaml:"column"`
	Generator string `yaml:"generator,omitempty"`
}

// PropertyMapping maps a member onto a single column.
type PropertyMapping struct {
	Name       string `yaml:"name"`
	Type       string `yaml:"type,omitempty"`
	Column     string `yaml:"column,omitempty"`
	Length     int    `yaml:"length,omitempty"`
	NotNull    bool   `yaml:"not_null,omitempty"`
	Unique     bool   `yaml:"unique,omitempty"`
	Index      string `yaml:"index,omitempty"`
	CustomType string `yaml:"custom_type,omitempty"`
	Formula    string `yaml:"formula,omitempty"`
	ReadOnly   bool   `yaml:"read_only,omitempty"`
}

// MemberName implements Named.
func (p *PropertyMapping) MemberName() string { return p.Name }

// ManyToOneMapping is a many-to-one association ("References").
type ManyToOneMapping struct {
	Name       string  `yaml:"name"`
	Class      string  `yaml:"class"`
	Column     string  `yaml:"column,omitempty"`
	Cascade    Cascade `yaml:"cascade,omitempty"`
	NotNull    bool    `yaml:"not_null,omitempty"`
	Unique     bool    `yaml:"unique,omitempty"`
	ForeignKey string  `yaml:"foreign_key,omitempty"`
}

// MemberName implements Named.
func (m *ManyToOneMapping) MemberName() string { return m.Name }

// OneToOneMapping is a one-to-one association ("HasOne").
type OneToOneMapping struct {
	Name        string  `yaml:"name"`
	Class       string  `yaml:"class"`
	Cascade     Cascade `yaml:"cascade,omitempty"`
	Constrained bool    `yaml:"constrained,omitempty"`
	PropertyRef string  `yaml:"property_ref,omitempty"`
	ForeignKey  string  `yaml:"foreign_key,omitempty"`
}

// MemberName implements Named.
func (o *OneToOneMapping) MemberName() string { return o.Name }

// CollectionMapping is a collection association ("HasMany", "HasManyToMany").
type CollectionMapping struct {
	Name         string         `yaml:"name"`
	Kind         CollectionKind `yaml:"kind"`
	Relationship Relationship   `yaml:"relationship"`
	ChildClass   string         `yaml:"child_class"`
	Table        string         `yaml:"table,omitempty"`
	KeyColumn    string         `yaml:"key_column"`
	ChildColumn  string         `yaml:"child_column,omitempty"`
	IndexColumn  string         `yaml:"index_column,omitempty"`
	Inverse      bool           `yaml:"inverse,omitempty"`
	Cascade      Cascade        `yaml:"cascade,omitempty"`
	// SqlDeleteAll replaces the statement removing all elements of one owner.
	SqlDeleteAll *StoredProcedureMapping `yaml:"sql_delete_all,omitempty"`
}

// MemberName implements Named.
func (c *CollectionMapping) MemberName() string { return c.Name }

// Clone returns a deep copy of c.
func (c *CollectionMapping) Clone() *CollectionMapping {
	out := *c
	if c.SqlDeleteAll != nil {
		sp := *c.SqlDeleteAll
		out.SqlDeleteAll = &sp
	}

	return &out
}

// AnyMapping is a polymorphic association ("ReferencesAny"): the target
// class is resolved from a discriminator column stored next to the identifier.
type AnyMapping struct {
	Name             string      `yaml:"name"`
	IdType           string      `yaml:"id_type"`
	MetaType         string      `yaml:"meta_type,omitempty"`
	IdentifierColumn string      `yaml:"identifier_column"`
	TypeColumn       string      `yaml:"type_column"`
	MetaValues       []MetaValue `yaml:"meta_values,omitempty"`
	Cascade          Cascade     `yaml:"cascade,omitempty"`
}

// MemberName implements Named.
func (a *AnyMapping) MemberName() string { return a.Name }

// MetaValue maps a discriminator value onto a class.
type MetaValue struct {
	Value string `yaml:"value"`
	Class string `yaml:"class"`
}

// StoredProcedureMapping replaces one of the generated statements.
type StoredProcedureMapping struct {
	Kind  StoredProcedureKind `yaml:"kind"`
	Query string              `yaml:"query"`
	Check Check               `yaml:"check,omitempty"`
}

// TuplizerMapping selects the instantiation strategy of a class.
type TuplizerMapping struct {
	Mode TuplizerMode `yaml:"mode"`
	Type string       `yaml:"type"`
}

// Named is implemented by every member mapping.
type Named interface {
	MemberName() string
}

func memberNames(
	properties []*PropertyMapping,
	components []*ComponentMapping,
	collections []*CollectionMapping,
	references []*ManyToOneMapping,
	oneToOnes []*OneToOneMapping,
	anys []*AnyMapping,
) []string {
	var names []string
	names = appendNames(names, properties)
	names = appendNames(names, components)
	names = appendNames(names, collections)
	names = appendNames(names, references)
	names = appendNames(names, oneToOnes)

	return appendNames(names, anys)
}

func appendNames[T Named](names []string, items []T) []string {
	for _, it := range items {
		names = append(names, it.MemberName())
	}

	return names
}
