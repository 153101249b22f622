package fluent

import (
	stderrors "errors"
	"fmt"
	"reflect"

	"github.com/untillpro/goutils/logger"

	"fluentmap/analyze"
	"fluentmap/errors"
	"fluentmap/internal/merge"
	"fluentmap/model"
	"fluentmap/naming"
)

// ClassMap configures how a struct type maps onto a table.
//
//	m := fluent.NewClassMap[store.Order]()
//	m.Id("ID").GeneratedBy(fluent.GeneratorIdentity)
//	m.Map("TotalCents").NotNull()
//	m.References("Customer")
//	m.Component("Shipping")
//	m.SqlInsert("INSERT INTO orders ...")
//
// A ClassMap is not safe for concurrent mutation.
type ClassMap struct {
	Members
	table      string
	id         *IdPart
	procedures []*StoredProcedurePart
	tuplizer   *TuplizerPart
}

// NewClassMap creates a ClassMap for T, which must be a struct type.
func NewClassMap[T any]() *ClassMap {
	return ClassMapFor(analyze.ReflectType[T]())
}

// ClassMapFor creates a ClassMap for an already described struct type.
func ClassMapFor(info *analyze.TypeInfo) *ClassMap {
	mustBeStruct(info)

	return &ClassMap{Members: newMembers(info.Deref())}
}

// Type returns the mapped type.
func (c *ClassMap) Type() *analyze.TypeInfo {
	return c.owner
}

func (c *ClassMap) mappedType() *analyze.TypeInfo {
	return c.owner
}

// Table sets the table name.
func (c *ClassMap) Table(name string) *ClassMap {
	c.table = name

	return c
}

// Id maps member as the identifier.
func (c *ClassMap) Id(member string) *IdPart {
	c.id = &IdPart{m: resolve(c.owner, member)}

	return c.id
}

// SqlInsert replaces the generated insert statement with sql.
func (c *ClassMap) SqlInsert(sql string) *StoredProcedurePart {
	return c.storedProcedure(model.SqlInsert, sql)
}

// SqlUpdate replaces the generated update statement with sql.
func (c *ClassMap) SqlUpdate(sql string) *StoredProcedurePart {
	return c.storedProcedure(model.SqlUpdate, sql)
}

// SqlDelete replaces the generated delete statement with sql.
func (c *ClassMap) SqlDelete(sql string) *StoredProcedurePart {
	return c.storedProcedure(model.SqlDelete, sql)
}

// storedProcedure replaces an earlier statement of the same kind in place.
func (c *ClassMap) storedProcedure(kind model.StoredProcedureKind, sql string) *StoredProcedurePart {
	p := &StoredProcedurePart{kind: kind, query: sql}

	for i, existing := range c.procedures {
		if existing.kind == kind {
			c.procedures[i] = p

			return p
		}
	}

	c.procedures = append(c.procedures, p)

	return p
}

// Tuplizer sets the instantiation strategy of the class. A class has a
// single tuplizer; the last call wins.
func (c *ClassMap) Tuplizer(mode model.TuplizerMode, tuplizer reflect.Type) *TuplizerPart {
	if !mode.Valid() {
		panic(errors.NewInvalidMemberError(typeName(c.owner), "", "unknown tuplizer mode "+string(mode)))
	}

	if c.tuplizer != nil && c.tuplizer.mode != mode {
		logger.Warning(fmt.Sprintf("%s: tuplizer for mode %s replaced by mode %s", typeName(c.owner), c.tuplizer.mode, mode))
	}

	c.tuplizer = &TuplizerPart{mode: mode, typ: reflectedName(tuplizer)}

	return c.tuplizer
}

// ClassMapping compiles the class on its own, with the default naming
// convention and without External components.
func (c *ClassMap) ClassMapping() (*model.ClassMapping, error) {
	cls, err := c.compile(naming.Default)
	if err != nil {
		return nil, err
	}

	cls, _, err = merge.NewIndex().Resolve(cls)

	return cls, err
}

func (c *ClassMap) compile(conv naming.Convention) (*model.ClassMapping, error) {
	name := typeName(c.owner)
	ctx := compileContext{conv: conv, scope: name, owner: shortName(c.owner)}

	out := &model.ClassMapping{Name: name, Table: c.table}
	if out.Table == "" {
		out.Table = conv.TableName(shortName(c.owner))
	}

	if c.id != nil {
		out.Id = c.id.mapping(ctx)
	}

	var errs []error
	if err := c.compileInto(ctx, classChildren(out)); err != nil {
		errs = append(errs, err)
	}

	for _, p := range c.procedures {
		out.StoredProcedures = append(out.StoredProcedures, p.mapping())
	}

	if c.tuplizer != nil {
		if c.tuplizer.typ == "" {
			errs = append(errs, errors.NewConfigurationIncompleteError(name, "", "tuplizer type"))
		}

		out.Tuplizer = c.tuplizer.mapping()
	}

	if err := merge.CheckUnique(name, "", out.Members()); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return nil, stderrors.Join(errs...)
	}

	return out, nil
}

func mustBeStruct(info *analyze.TypeInfo) {
	if info == nil {
		panic(errors.NewInvalidMemberError("", "", "nil type"))
	}

	if !info.IsStruct() {
		panic(errors.NewInvalidMemberError(info.QualifiedName(), "", "mapped types must be structs"))
	}
}
