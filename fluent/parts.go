package fluent

import (
	"reflect"
	"strings"

	"fluentmap/analyze"
	"fluentmap/errors"
	"fluentmap/internal/common"
	"fluentmap/model"
	"fluentmap/naming"
)

// Id generator names.
const (
	GeneratorAssigned = "assigned"
	GeneratorIdentity = "identity"
	GeneratorNative   = "native"
	GeneratorSequence = "sequence"
	GeneratorGuidComb = "guid.comb"
)

// compileContext carries what member parts need while being compiled.
type compileContext struct {
	conv  naming.Convention
	scope string // qualified type errors are reported against
	path  string // member path prefix within scope
	owner string // short name of the owning class, empty until the owner is known
}

func (c compileContext) member(name string) string {
	return c.path + name
}

func (c compileContext) nested(name string) compileContext {
	c.path += name + "."

	return c
}

// PropertyPart configures a property mapping.
type PropertyPart struct {
	m          memberRef
	column     string
	length     int
	notNull    bool
	unique     bool
	index      string
	customType string
	formula    string
	readOnly   bool
}

// Column sets the column name.
func (p *PropertyPart) Column(name string) *PropertyPart {
	p.column = name

	return p
}

// Length sets the column length.
func (p *PropertyPart) Length(n int) *PropertyPart {
	p.length = n

	return p
}

// NotNull marks the column as not nullable.
func (p *PropertyPart) NotNull() *PropertyPart {
	p.notNull = true

	return p
}

// Unique adds a unique constraint on the column.
func (p *PropertyPart) Unique() *PropertyPart {
	p.unique = true

	return p
}

// Index adds the column to the named index.
func (p *PropertyPart) Index(name string) *PropertyPart {
	p.index = name

	return p
}

// CustomType sets the ORM user type used to persist the member.
func (p *PropertyPart) CustomType(name string) *PropertyPart {
	p.customType = name

	return p
}

// Formula maps the member onto an SQL expression instead of a column.
func (p *PropertyPart) Formula(sql string) *PropertyPart {
	p.formula = sql

	return p
}

// ReadOnly excludes the member from inserts and updates.
func (p *PropertyPart) ReadOnly() *PropertyPart {
	p.readOnly = true

	return p
}

func (p *PropertyPart) mapping(ctx compileContext) (*model.PropertyMapping, error) {
	if !p.m.Type().IsScalar() && p.customType == "" && p.formula == "" {
		return nil, errors.NewInvalidMemberError(ctx.scope, ctx.member(p.m.Name),
			"non-scalar "+analyze.NewTypeStringer().TypeString(p.m.Type())+" needs a custom type")
	}

	column := p.column
	if column == "" && p.formula == "" {
		column = ctx.conv.ColumnName(p.m.Name)
	}

	return &model.PropertyMapping{
		Name:       p.m.Name,
		Type:       p.m.Type().QualifiedName(),
		Column:     column,
		Length:     p.length,
		NotNull:    p.notNull,
		Unique:     p.unique,
		Index:      p.index,
		CustomType: p.customType,
		Formula:    p.formula,
		ReadOnly:   p.readOnly,
	}, nil
}

// IdPart configures the identifier of a class.
type IdPart struct {
	m         memberRef
	column    string
	generator string
}

// Column sets the identifier column.
func (p *IdPart) Column(name string) *IdPart {
	p.column = name

	return p
}

// GeneratedBy sets the identifier generator, e.g. GeneratorIdentity.
func (p *IdPart) GeneratedBy(generator string) *IdPart {
	p.generator = generator

	return p
}

func (p *IdPart) mapping(ctx compileContext) *model.IdMapping {
	column := p.column
	if column == "" {
		column = ctx.conv.ColumnName(p.m.Name)
	}

	return &model.IdMapping{
		Name:      p.m.Name,
		Type:      p.m.Type().QualifiedName(),
		Column:    column,
		Generator: p.generator,
	}
}

// ManyToOnePart configures a many-to-one association.
type ManyToOnePart struct {
	m          memberRef
	column     string
	cascade    model.Cascade
	notNull    bool
	unique     bool
	foreignKey string
}

// Column sets the foreign key column.
func (p *ManyToOnePart) Column(name string) *ManyToOnePart {
	p.column = name

	return p
}

// Cascade sets the cascade style.
func (p *ManyToOnePart) Cascade(c model.Cascade) *ManyToOnePart {
	p.cascade = c

	return p
}

// NotNull marks the reference as mandatory.
func (p *ManyToOnePart) NotNull() *ManyToOnePart {
	p.notNull = true

	return p
}

// Unique turns the association into a logical one-to-one.
func (p *ManyToOnePart) Unique() *ManyToOnePart {
	p.unique = true

	return p
}

// ForeignKey names the foreign key constraint.
func (p *ManyToOnePart) ForeignKey(name string) *ManyToOnePart {
	p.foreignKey = name

	return p
}

func (p *ManyToOnePart) mapping(ctx compileContext) *model.ManyToOneMapping {
	column := p.column
	if column == "" {
		column = ctx.conv.ForeignKeyColumn(p.m.Name)
	}

	return &model.ManyToOneMapping{
		Name:       p.m.Name,
		Class:      typeName(p.m.Type()),
		Column:     column,
		Cascade:    p.cascade,
		NotNull:    p.notNull,
		Unique:     p.unique,
		ForeignKey: p.foreignKey,
	}
}

// OneToOnePart configures a one-to-one association.
type OneToOnePart struct {
	m           memberRef
	cascade     model.Cascade
	constrained bool
	propertyRef string
	foreignKey  string
}

// Cascade sets the cascade style.
func (p *OneToOnePart) Cascade(c model.Cascade) *OneToOnePart {
	p.cascade = c

	return p
}

// Constrained ties the primary key to the one of the associated class.
func (p *OneToOnePart) Constrained() *OneToOnePart {
	p.constrained = true

	return p
}

// PropertyRef joins on the named property of the associated class instead of its id.
func (p *OneToOnePart) PropertyRef(name string) *OneToOnePart {
	p.propertyRef = name

	return p
}

// ForeignKey names the foreign key constraint.
func (p *OneToOnePart) ForeignKey(name string) *OneToOnePart {
	p.foreignKey = name

	return p
}

func (p *OneToOnePart) mapping() *model.OneToOneMapping {
	return &model.OneToOneMapping{
		Name:        p.m.Name,
		Class:       typeName(p.m.Type()),
		Cascade:     p.cascade,
		Constrained: p.constrained,
		PropertyRef: p.propertyRef,
		ForeignKey:  p.foreignKey,
	}
}

// collectionPart is implemented by OneToManyPart and ManyToManyPart.
type collectionPart interface {
	mapping(ctx compileContext) *model.CollectionMapping
}

// collection holds what one-to-many and many-to-many collections share.
type collection struct {
	m           memberRef
	kind        model.CollectionKind
	indexColumn string
	inverse     bool
	cascade     model.Cascade
	table       string
	deleteAll   *StoredProcedurePart
}

// base maps the shared settings. Lists and maps always get an index column;
// when none was given it is named after the member: "Lookup" -> "LookupKey".
func (c *collection) base(ctx compileContext, rel model.Relationship) *model.CollectionMapping {
	kind := c.kind
	if kind == "" {
		kind = model.Bag
		if c.m.Type().Deref().Kind == analyze.TypeKindMap {
			kind = model.Map
		}
	}

	out := &model.CollectionMapping{
		Name:         c.m.Name,
		Kind:         kind,
		Relationship: rel,
		ChildClass:   typeName(c.m.Type().Element()),
		Table:        c.table,
		IndexColumn:  c.indexColumn,
		Inverse:      c.inverse,
		Cascade:      c.cascade,
	}

	if out.IndexColumn == "" && (kind == model.List || kind == model.Map) {
		out.IndexColumn = ctx.conv.ColumnName(c.m.Name + "Key")
	}

	if c.deleteAll != nil {
		out.SqlDeleteAll = c.deleteAll.mapping()
	}

	return out
}

func (c *collection) sqlDeleteAll(sql string) *StoredProcedurePart {
	c.deleteAll = &StoredProcedurePart{kind: model.SqlDeleteAll, query: sql}

	return c.deleteAll
}

// OneToManyPart configures a one-to-many collection.
type OneToManyPart struct {
	collection
	keyColumn string
}

// KeyColumn sets the column of the child table pointing back at the owner.
func (p *OneToManyPart) KeyColumn(name string) *OneToManyPart {
	p.keyColumn = name

	return p
}

// AsBag maps the collection as an unordered bag (the default for slices).
func (p *OneToManyPart) AsBag() *OneToManyPart {
	p.kind = model.Bag

	return p
}

// AsSet maps the collection as a set.
func (p *OneToManyPart) AsSet() *OneToManyPart {
	p.kind = model.Set

	return p
}

// AsList maps the collection as a list ordered by indexColumn.
func (p *OneToManyPart) AsList(indexColumn string) *OneToManyPart {
	p.kind = model.List
	p.indexColumn = indexColumn

	return p
}

// AsMap maps the collection as a map keyed by indexColumn.
func (p *OneToManyPart) AsMap(indexColumn string) *OneToManyPart {
	p.kind = model.Map
	p.indexColumn = indexColumn

	return p
}

// Inverse leaves maintenance of the association to the child side.
func (p *OneToManyPart) Inverse() *OneToManyPart {
	p.inverse = true

	return p
}

// Cascade sets the cascade style.
func (p *OneToManyPart) Cascade(c model.Cascade) *OneToManyPart {
	p.cascade = c

	return p
}

// Table sets the child table.
func (p *OneToManyPart) Table(name string) *OneToManyPart {
	p.table = name

	return p
}

// SqlDeleteAll replaces the generated statement removing every element of
// the collection with sql.
func (p *OneToManyPart) SqlDeleteAll(sql string) *StoredProcedurePart {
	return p.sqlDeleteAll(sql)
}

func (p *OneToManyPart) mapping(ctx compileContext) *model.CollectionMapping {
	out := p.base(ctx, model.OneToMany)

	out.KeyColumn = p.keyColumn
	ownerKeys(out, ctx.conv, ctx.owner)

	return out
}

// ManyToManyPart configures a many-to-many collection.
type ManyToManyPart struct {
	collection
	parentKey string
	childKey  string
}

// Table sets the association table.
func (p *ManyToManyPart) Table(name string) *ManyToManyPart {
	p.table = name

	return p
}

// ParentKeyColumn sets the association table column pointing at the owner.
func (p *ManyToManyPart) ParentKeyColumn(name string) *ManyToManyPart {
	p.parentKey = name

	return p
}

// ChildKeyColumn sets the association table column pointing at the child.
func (p *ManyToManyPart) ChildKeyColumn(name string) *ManyToManyPart {
	p.childKey = name

	return p
}

// AsSet maps the collection as a set.
func (p *ManyToManyPart) AsSet() *ManyToManyPart {
	p.kind = model.Set

	return p
}

// Inverse leaves maintenance of the association to the other side.
func (p *ManyToManyPart) Inverse() *ManyToManyPart {
	p.inverse = true

	return p
}

// Cascade sets the cascade style.
func (p *ManyToManyPart) Cascade(c model.Cascade) *ManyToManyPart {
	p.cascade = c

	return p
}

// SqlDeleteAll replaces the generated statement clearing the association
// table for one owner with sql.
func (p *ManyToManyPart) SqlDeleteAll(sql string) *StoredProcedurePart {
	return p.sqlDeleteAll(sql)
}

func (p *ManyToManyPart) mapping(ctx compileContext) *model.CollectionMapping {
	out := p.base(ctx, model.ManyToMany)
	child := shortName(p.m.Type().Element())

	out.KeyColumn = p.parentKey
	ownerKeys(out, ctx.conv, ctx.owner)

	out.ChildColumn = p.childKey
	if out.ChildColumn == "" {
		out.ChildColumn = ctx.conv.KeyColumn(child)
	}

	return out
}

// ownerKeys names the owner side of a collection left unset by the builder:
// the key column and, for many-to-many, the association table. Collections
// of External components have no owner until they are merged into a class.
func ownerKeys(c *model.CollectionMapping, conv naming.Convention, owner string) {
	if owner == "" {
		return
	}

	if c.KeyColumn == "" {
		c.KeyColumn = conv.KeyColumn(owner)
	}

	if c.Relationship == model.ManyToMany && c.Table == "" {
		_, child := common.SplitQualified(c.ChildClass)
		c.Table = conv.TableName(owner + child)
	}
}

// mergedOwnerKeys fills ownerKeys for the collections merged in from
// External components anywhere under comps.
func mergedOwnerKeys(comps []*model.ComponentMapping, conv naming.Convention, owner string) {
	for _, c := range comps {
		for _, coll := range c.Collections {
			ownerKeys(coll, conv, owner)
		}

		mergedOwnerKeys(c.Components, conv, owner)
	}
}

// AnyPart configures a polymorphic association. EntityIdentifierColumn,
// EntityTypeColumn and IdentityType are mandatory.
type AnyPart struct {
	m          memberRef
	idColumn   string
	typeColumn string
	idType     string
	metaType   string
	metaValues []model.MetaValue
	cascade    model.Cascade
}

// EntityIdentifierColumn sets the column holding the target's identifier.
func (p *AnyPart) EntityIdentifierColumn(name string) *AnyPart {
	p.idColumn = name

	return p
}

// EntityTypeColumn sets the discriminator column naming the target's class.
func (p *AnyPart) EntityTypeColumn(name string) *AnyPart {
	p.typeColumn = name

	return p
}

// IdentityType sets the type of the target's identifier.
func (p *AnyPart) IdentityType(t reflect.Type) *AnyPart {
	p.idType = reflectedName(t)

	return p
}

// MetaType sets the type of the discriminator column.
func (p *AnyPart) MetaType(t reflect.Type) *AnyPart {
	p.metaType = reflectedName(t)

	return p
}

// AddMetaValue stores value in the discriminator column for targets of type class.
func (p *AnyPart) AddMetaValue(value string, class reflect.Type) *AnyPart {
	p.metaValues = append(p.metaValues, model.MetaValue{Value: value, Class: reflectedName(class)})

	return p
}

// Cascade sets the cascade style.
func (p *AnyPart) Cascade(c model.Cascade) *AnyPart {
	p.cascade = c

	return p
}

func (p *AnyPart) mapping(ctx compileContext) (*model.AnyMapping, error) {
	var missing []string
	if p.idColumn == "" {
		missing = append(missing, "entity identifier column")
	}

	if p.typeColumn == "" {
		missing = append(missing, "entity type column")
	}

	if p.idType == "" {
		missing = append(missing, "identity type")
	}

	if len(missing) > 0 {
		return nil, errors.NewConfigurationIncompleteError(ctx.scope, ctx.member(p.m.Name), strings.Join(missing, ", "))
	}

	out := &model.AnyMapping{
		Name:             p.m.Name,
		IdType:           p.idType,
		MetaType:         p.metaType,
		IdentifierColumn: p.idColumn,
		TypeColumn:       p.typeColumn,
		Cascade:          p.cascade,
	}

	if len(p.metaValues) > 0 {
		out.MetaValues = append([]model.MetaValue(nil), p.metaValues...)
	}

	return out, nil
}

// ComponentPart configures a Reference component. It accepts the same
// member mappings as a ClassMap, resolved against the member's type.
type ComponentPart struct {
	Members
	m memberRef
}

func (p *ComponentPart) mapping(ctx compileContext) (*model.ComponentMapping, error) {
	typ := typeName(p.m.Type())
	out := &model.ComponentMapping{
		Kind:   model.ReferenceComponent,
		Name:   p.m.Name,
		Member: &model.Member{Name: p.m.Name, Type: typ},
		Type:   typ,
	}

	if err := p.compileInto(ctx.nested(p.m.Name), componentChildren(out)); err != nil {
		return nil, err
	}

	return out, nil
}

// StoredProcedurePart configures a custom SQL statement.
type StoredProcedurePart struct {
	kind  model.StoredProcedureKind
	query string
	check model.Check
}

// Check sets how the outcome of the statement is verified.
func (p *StoredProcedurePart) Check(c model.Check) *StoredProcedurePart {
	p.check = c

	return p
}

func (p *StoredProcedurePart) mapping() *model.StoredProcedureMapping {
	return &model.StoredProcedureMapping{Kind: p.kind, Query: p.query, Check: p.check}
}

// TuplizerPart is the instantiation strategy recorded by ClassMap.Tuplizer.
type TuplizerPart struct {
	mode model.TuplizerMode
	typ  string
}

// Mode returns the entity mode the tuplizer applies to.
func (p *TuplizerPart) Mode() model.TuplizerMode {
	return p.mode
}

// TypeName returns the qualified name of the tuplizer type.
func (p *TuplizerPart) TypeName() string {
	return p.typ
}

func (p *TuplizerPart) mapping() *model.TuplizerMapping {
	return &model.TuplizerMapping{Mode: p.mode, Type: p.typ}
}

// reflectedName is the qualified mapping name of t, "" for nil.
func reflectedName(t reflect.Type) string {
	if t == nil {
		return ""
	}

	return analyze.Reflect(t).QualifiedName()
}
