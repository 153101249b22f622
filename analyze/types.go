package analyze

import (
	"errors"
	"go/types"
	"reflect"

	"fluentmap/internal/common"
)

var (
	// ErrFieldNotFound is returned by LookupField for an unknown name.
	ErrFieldNotFound = errors.New("no such field")
	// ErrAmbiguousField is returned by LookupField when embedded structs
	// promote the name from more than one field at the same depth.
	ErrAmbiguousField = errors.New("ambiguous promoted field")
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "fluentmap/store"
	Name    string // e.g., "Order"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// Short returns the type name qualified by the package alias only ("store.Order").
func (t TypeID) Short() string {
	alias := common.PkgAlias(t.PkgPath)
	if alias == "" {
		return t.Name
	}

	return alias + "." + t.Name
}

// IsZero reports whether the id names no type.
func (t TypeID) IsZero() bool {
	return t.Name == ""
}

// TypeKind represents the kind of a type.
type TypeKind int

const (
	TypeKindUnknown   TypeKind = iota
	TypeKindBasic              // int, string, bool, etc.
	TypeKindStruct             // struct type
	TypeKindPointer            // pointer to another type
	TypeKindSlice              // slice of another type
	TypeKindArray              // array of another type
	TypeKindMap                // map of key to element
	TypeKindInterface          // interface type
	TypeKindAlias              // named type wrapping a basic type
	TypeKindExternal           // opaque value type (e.g., time.Time)
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindBasic:
		return "basic"
	case TypeKindStruct:
		return "struct"
	case TypeKindPointer:
		return "pointer"
	case TypeKindSlice:
		return "slice"
	case TypeKindArray:
		return "array"
	case TypeKindMap:
		return "map"
	case TypeKindInterface:
		return "interface"
	case TypeKindAlias:
		return "alias"
	case TypeKindExternal:
		return "external"
	default:
		return common.UnknownStr
	}
}

// valueTypes are named structs that map as a single column rather than
// being inspected field by field.
var valueTypes = map[TypeID]struct{}{
	{PkgPath: "time", Name: "Time"}:               {},
	{PkgPath: "math/big", Name: "Int"}:            {},
	{PkgPath: "math/big", Name: "Float"}:          {},
	{PkgPath: "database/sql", Name: "NullString"}: {},
	{PkgPath: "database/sql", Name: "NullInt64"}:  {},
	{PkgPath: "database/sql", Name: "NullBool"}:   {},
	{PkgPath: "database/sql", Name: "NullTime"}:   {},
}

// IsValueType reports whether id is treated as an opaque single-column value.
func IsValueType(id TypeID) bool {
	_, ok := valueTypes[id]
	return ok
}

// TypeInfo describes a Go type in the type graph.
type TypeInfo struct {
	ID         TypeID       // Unique identifier (empty for unnamed types like *T or []T)
	Kind       TypeKind     // Kind of type
	Underlying *TypeInfo    // For alias types, the underlying basic type
	ElemType   *TypeInfo    // For pointers, slices, arrays and maps, the element type
	KeyType    *TypeInfo    // For maps, the key type
	Fields     []FieldInfo  // For structs, the list of fields
	GoType     types.Type   // The go/types.Type when loaded from source
	RType      reflect.Type // The reflect.Type when built by a Reflector
}

// IsNamed returns true if this type has a name (TypeID is set).
func (t *TypeInfo) IsNamed() bool {
	return t.ID.Name != ""
}

// Deref strips any number of pointer levels.
func (t *TypeInfo) Deref() *TypeInfo {
	cur := t
	for cur != nil && cur.Kind == TypeKindPointer {
		cur = cur.ElemType
	}

	return cur
}

// IsStruct reports whether the type is a struct, or a pointer to one.
func (t *TypeInfo) IsStruct() bool {
	d := t.Deref()
	return d != nil && d.Kind == TypeKindStruct
}

// IsCollection reports whether the type is a slice, array or map.
func (t *TypeInfo) IsCollection() bool {
	d := t.Deref()
	if d == nil {
		return false
	}

	return d.Kind == TypeKindSlice || d.Kind == TypeKindArray || d.Kind == TypeKindMap
}

// IsScalar reports whether values of the type map onto a single column.
func (t *TypeInfo) IsScalar() bool {
	d := t.Deref()
	if d == nil {
		return false
	}

	switch d.Kind {
	case TypeKindBasic, TypeKindAlias, TypeKindExternal:
		return true
	case TypeKindSlice, TypeKindArray:
		// []byte is a binary column
		return d.ElemType != nil && d.ElemType.ID == TypeID{Name: "uint8"}
	default:
		return false
	}
}

// Element returns the dereferenced element type of a collection, or nil.
func (t *TypeInfo) Element() *TypeInfo {
	if !t.IsCollection() {
		return nil
	}

	return t.Deref().ElemType.Deref()
}

// QualifiedName renders the type the way mapping documents name it:
// the qualified TypeID for named types and a composite form otherwise.
func (t *TypeInfo) QualifiedName() string {
	if t == nil {
		return ""
	}

	if t.IsNamed() {
		return t.ID.String()
	}

	switch t.Kind {
	case TypeKindPointer:
		return "*" + t.ElemType.QualifiedName()
	case TypeKindSlice:
		return "[]" + t.ElemType.QualifiedName()
	case TypeKindArray:
		return "[...]" + t.ElemType.QualifiedName()
	case TypeKindMap:
		return "map[" + t.KeyType.QualifiedName() + "]" + t.ElemType.QualifiedName()
	case TypeKindInterface:
		return "interface{}"
	case TypeKindStruct:
		return "struct{...}"
	default:
		return common.UnknownStr
	}
}

// Field looks up a field by its exact Go name. It reports false when the
// name is missing or ambiguous; use LookupField to tell the two apart.
func (t *TypeInfo) Field(name string) (*FieldInfo, bool) {
	f, err := t.LookupField(name)

	return f, err == nil
}

// LookupField finds a field the way Go resolves a selector: direct fields
// first, then fields promoted from embedded structs, shallowest depth first.
// Two candidates at the shallowest matching depth make the name ambiguous.
func (t *TypeInfo) LookupField(name string) (*FieldInfo, error) {
	st := t.Deref()
	if st == nil || st.Kind != TypeKindStruct {
		return nil, ErrFieldNotFound
	}

	visited := map[*TypeInfo]struct{}{}
	level := []*TypeInfo{st}

	for len(level) > 0 {
		// a struct embedded twice at one depth counts twice
		count := map[*TypeInfo]int{}

		var order []*TypeInfo

		for _, s := range level {
			if _, ok := visited[s]; ok {
				continue
			}

			if count[s] == 0 {
				order = append(order, s)
			}

			count[s]++
		}

		var (
			found   *FieldInfo
			matches int
			next    []*TypeInfo
		)

		for _, s := range order {
			visited[s] = struct{}{}

			for i := range s.Fields {
				f := &s.Fields[i]
				if f.Name == name {
					found = f
					matches += count[s]

					continue
				}

				if !f.Embedded {
					continue
				}

				if e := f.Type.Deref(); e != nil && e.Kind == TypeKindStruct {
					for range count[s] {
						next = append(next, e)
					}
				}
			}
		}

		switch {
		case matches == 1:
			return found, nil
		case matches > 1:
			return nil, ErrAmbiguousField
		}

		level = next
	}

	return nil, ErrFieldNotFound
}

// FieldInfo describes a struct field.
type FieldInfo struct {
	Name     string            // Go field name
	Exported bool              // Whether the field is exported
	Type     *TypeInfo         // Field type
	Tag      reflect.StructTag // Raw struct tag
	Embedded bool              // Whether the field is embedded (anonymous)
	Index    int               // Field index in the struct
}

// HasTag returns true if the field has the specified tag.
func (f *FieldInfo) HasTag(key string) bool {
	return f.Tag.Get(key) != ""
}

// GetTag returns the value of the specified tag.
func (f *FieldInfo) GetTag(key string) string {
	return f.Tag.Get(key)
}

// TypeGraph holds all analyzed types from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all named types.
	Types map[TypeID]*TypeInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Types []TypeID // Named types defined in this package, sorted by name
}
