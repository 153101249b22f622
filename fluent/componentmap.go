package fluent

import (
	"fluentmap/analyze"
	"fluentmap/internal/merge"
	"fluentmap/model"
	"fluentmap/naming"
)

// ComponentMap declares an External component: the member mappings of a
// struct type, reused by every Reference component of that type once both
// are registered in the same PersistenceModel.
type ComponentMap struct {
	Members
}

// NewComponentMap creates a ComponentMap for T, which must be a struct type.
func NewComponentMap[T any]() *ComponentMap {
	return ComponentMapFor(analyze.ReflectType[T]())
}

// ComponentMapFor creates a ComponentMap for an already described struct type.
func ComponentMapFor(info *analyze.TypeInfo) *ComponentMap {
	mustBeStruct(info)

	return &ComponentMap{Members: newMembers(info.Deref())}
}

// Type returns the component type.
func (c *ComponentMap) Type() *analyze.TypeInfo {
	return c.owner
}

func (c *ComponentMap) mappedType() *analyze.TypeInfo {
	return c.owner
}

// ComponentMapping compiles the External component with the default naming
// convention. Collection key columns and many-to-many tables not set
// explicitly stay empty: they are named after the class the component is
// merged into.
func (c *ComponentMap) ComponentMapping() (*model.ComponentMapping, error) {
	return c.compile(naming.Default)
}

func (c *ComponentMap) compile(conv naming.Convention) (*model.ComponentMapping, error) {
	name := typeName(c.owner)
	ctx := compileContext{conv: conv, scope: name}

	out := &model.ComponentMapping{Kind: model.ExternalComponent, Type: name}
	if err := c.compileInto(ctx, componentChildren(out)); err != nil {
		return nil, err
	}

	if err := merge.CheckUnique(name, "", out.Members()); err != nil {
		return nil, err
	}

	return out, nil
}
