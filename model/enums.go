package model

// Cascade is the cascade style of an association.
type Cascade string

const (
	CascadeNone         Cascade = ""
	CascadeAll          Cascade = "all"
	CascadeAllOrphan    Cascade = "all-delete-orphan"
	CascadeSaveUpdate   Cascade = "save-update"
	CascadeDelete       Cascade = "delete"
	CascadeDeleteOrphan Cascade = "delete-orphan"
	CascadeMerge        Cascade = "merge"
)

// CollectionKind is the hbm collection element used for a collection mapping.
type CollectionKind string

const (
	Bag  CollectionKind = "bag"
	Set  CollectionKind = "set"
	List CollectionKind = "list"
	Map  CollectionKind = "map"
)

// Relationship is the association carried by a collection.
type Relationship string

const (
	OneToMany  Relationship = "one-to-many"
	ManyToMany Relationship = "many-to-many"
)

// StoredProcedureKind names the statement a custom SQL string replaces.
type StoredProcedureKind string

const (
	SqlInsert    StoredProcedureKind = "sql-insert"
	SqlUpdate    StoredProcedureKind = "sql-update"
	SqlDelete    StoredProcedureKind = "sql-delete"
	SqlDeleteAll StoredProcedureKind = "sql-delete-all"
)

// Check is the result check applied after a custom statement runs.
type Check string

const (
	CheckDefault  Check = ""
	CheckNone     Check = "none"
	CheckRowCount Check = "rowcount"
	CheckParam    Check = "param"
)

// TuplizerMode is the entity mode a tuplizer applies to.
type TuplizerMode string

const (
	ModePoco    TuplizerMode = "poco"
	ModeDynamic TuplizerMode = "dynamic-map"
	ModeXml     TuplizerMode = "xml"
)

// Valid reports whether m is one of the known modes.
func (m TuplizerMode) Valid() bool {
	switch m {
	case ModePoco, ModeDynamic, ModeXml:
		return true
	default:
		return false
	}
}
