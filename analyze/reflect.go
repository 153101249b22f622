package analyze

import (
	"reflect"
)

// Reflector builds TypeInfo values from reflect.Type descriptors.
// Results are cached per reflect.Type, so recursive types terminate and
// repeated lookups share one TypeInfo.
type Reflector struct {
	cache map[reflect.Type]*TypeInfo
}

// NewReflector creates a new Reflector.
func NewReflector() *Reflector {
	return &Reflector{
		cache: make(map[reflect.Type]*TypeInfo),
	}
}

// Reflect describes t using a fresh Reflector.
func Reflect(t reflect.Type) *TypeInfo {
	return NewReflector().TypeOf(t)
}

// ReflectType describes the type parameter T.
func ReflectType[T any]() *TypeInfo {
	return Reflect(reflect.TypeFor[T]())
}

// TypeOf returns the TypeInfo for t, or nil when t is nil.
func (r *Reflector) TypeOf(t reflect.Type) *TypeInfo {
	if t == nil {
		return nil
	}

	if cached, ok := r.cache[t]; ok {
		return cached
	}

	info := &TypeInfo{RType: t}

	// Pre-cache to handle recursive types (we'll fill in details)
	r.cache[t] = info

	if t.Name() != "" {
		info.ID = TypeID{PkgPath: t.PkgPath(), Name: t.Name()}
	}

	switch t.Kind() {
	case reflect.Struct:
		if IsValueType(info.ID) {
			info.Kind = TypeKindExternal

			return info
		}

		info.Kind = TypeKindStruct
		r.structFields(t, info)

	case reflect.Pointer:
		info.Kind = TypeKindPointer
		info.ElemType = r.TypeOf(t.Elem())

	case reflect.Slice:
		info.Kind = TypeKindSlice
		info.ElemType = r.TypeOf(t.Elem())

	case reflect.Array:
		info.Kind = TypeKindArray
		info.ElemType = r.TypeOf(t.Elem())

	case reflect.Map:
		info.Kind = TypeKindMap
		info.KeyType = r.TypeOf(t.Key())
		info.ElemType = r.TypeOf(t.Elem())

	case reflect.Interface:
		info.Kind = TypeKindInterface

	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		basic := &TypeInfo{Kind: TypeKindBasic, ID: TypeID{Name: t.Kind().String()}}
		if t.PkgPath() == "" {
			// Predeclared type such as string or int
			info.Kind = TypeKindBasic
			info.ID = basic.ID

			return info
		}

		// Named type over a basic one (e.g., type OrderStatus string)
		info.Kind = TypeKindAlias
		info.Underlying = basic

	default:
		// Channels, functions and unsafe pointers are not mappable
		info.Kind = TypeKindUnknown
	}

	return info
}

// structFields extracts fields from a struct type, exported or not.
func (r *Reflector) structFields(t reflect.Type, info *TypeInfo) {
	for i := range t.NumField() {
		field := t.Field(i)

		info.Fields = append(info.Fields, FieldInfo{
			Name:     field.Name,
			Exported: field.IsExported(),
			Type:     r.TypeOf(field.Type),
			Tag:      field.Tag,
			Embedded: field.Anonymous,
			Index:    i,
		})
	}
}
