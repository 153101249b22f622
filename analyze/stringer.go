package analyze

// TypeStringer renders short type names for messages.
type TypeStringer struct{}

// NewTypeStringer creates a new TypeStringer.
func NewTypeStringer() *TypeStringer {
	return &TypeStringer{}
}

// TypeString returns a short human-readable representation of a TypeInfo,
// as used in error messages ("Order", "[]OrderItem", "*Address").
func (s *TypeStringer) TypeString(t *TypeInfo) string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind {
	case TypeKindBasic:
		return t.ID.Name

	case TypeKindStruct:
		if t.IsNamed() {
			return t.ID.Name
		}

		return "struct{...}"

	case TypeKindPointer:
		if t.ElemType != nil {
			return "*" + s.TypeString(t.ElemType)
		}

		return "*<unknown>"

	case TypeKindSlice:
		if t.IsNamed() {
			return t.ID.Name
		}

		if t.ElemType != nil {
			return "[]" + s.TypeString(t.ElemType)
		}

		return "[]<unknown>"

	case TypeKindMap:
		if t.IsNamed() {
			return t.ID.Name
		}

		return "map[" + s.TypeString(t.KeyType) + "]" + s.TypeString(t.ElemType)

	case TypeKindAlias:
		if t.IsNamed() {
			return t.ID.Name
		}

		return s.TypeString(t.Underlying)

	case TypeKindExternal:
		return t.ID.Short()

	default:
		if t.IsNamed() {
			return t.ID.Name
		}

		return t.QualifiedName()
	}
}
