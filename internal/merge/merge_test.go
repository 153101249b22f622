package merge

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fluentmap/errors"
	"fluentmap/model"
)

const (
	addressType = "fluentmap/store.Address"
	geoType     = "fluentmap/store.Geo"
	orderType   = "fluentmap/store.Order"
)

func reference(name, typ string, props ...string) *model.ComponentMapping {
	c := &model.ComponentMapping{
		Kind:   model.ReferenceComponent,
		Name:   name,
		Member: &model.Member{Name: name, Type: typ},
		Type:   typ,
	}

	for _, p := range props {
		c.Properties = append(c.Properties, &model.PropertyMapping{Name: p})
	}

	return c
}

func external(typ string, props ...string) *model.ComponentMapping {
	c := &model.ComponentMapping{Kind: model.ExternalComponent, Type: typ}
	for _, p := range props {
		c.Properties = append(c.Properties, &model.PropertyMapping{Name: p})
	}

	return c
}

func class(components ...*model.ComponentMapping) *model.ClassMapping {
	return &model.ClassMapping{Name: orderType, Components: components}
}

func propertyNames(c *model.ComponentMapping) []string {
	var names []string
	for _, p := range c.Properties {
		names = append(names, p.Name)
	}

	return names
}

func TestResolve_MergesExternal(t *testing.T) {
	ix := NewIndex()
	ix.Add(external(addressType, "Street", "City"))

	cls := class(reference("Shipping", addressType, "Country"))

	out, used, err := ix.Resolve(cls)
	require.NoError(t, err)
	require.Len(t, out.Components, 1)

	merged := out.Components[0]
	assert.Equal(t, model.ReferenceComponent, merged.Kind)
	assert.Equal(t, "Shipping", merged.Name)
	require.NotNil(t, merged.Member)
	assert.Equal(t, "Shipping", merged.Member.Name)
	assert.Equal(t, []string{"Country", "Street", "City"}, propertyNames(merged))
	assert.Equal(t, []string{addressType}, used)

	// inputs untouched
	assert.Equal(t, []string{"Country"}, propertyNames(cls.Components[0]))
	assert.NotSame(t, cls, out)
}

func TestResolve_NoExternalKeepsReference(t *testing.T) {
	ix := NewIndex()
	cls := class(reference("Shipping", addressType, "Street"))

	out, used, err := ix.Resolve(cls)
	require.NoError(t, err)
	assert.Empty(t, used)
	assert.Equal(t, cls.Components, out.Components)
}

func TestResolve_SameExternalTwice(t *testing.T) {
	ix := NewIndex()
	ix.Add(external(addressType, "Street"))

	out, _, err := ix.Resolve(class(reference("Shipping", addressType), reference("Billing", addressType)))
	require.NoError(t, err)
	require.Len(t, out.Components, 2)
	assert.NotSame(t, out.Components[0].Properties[0], out.Components[1].Properties[0])
}

func TestResolve_Nested(t *testing.T) {
	ix := NewIndex()

	addr := external(addressType, "Street")
	addr.Components = append(addr.Components, reference("Location", geoType))
	ix.Add(addr)
	ix.Add(external(geoType, "Lat", "Lng"))

	out, used, err := ix.Resolve(class(reference("Shipping", addressType)))
	require.NoError(t, err)

	shipping := out.Components[0]
	require.Len(t, shipping.Components, 1)
	assert.Equal(t, []string{"Lat", "Lng"}, propertyNames(shipping.Components[0]))
	assert.Equal(t, []string{addressType, geoType}, used)
}

func TestResolve_DuplicateMember(t *testing.T) {
	ix := NewIndex()
	ix.Add(external(addressType, "Street"))

	_, _, err := ix.Resolve(class(reference("Shipping", addressType, "Street")))
	require.Error(t, err)
	assert.True(t, errors.IsDuplicateMember(err))

	var me *errors.MappingError
	require.True(t, stderrors.As(err, &me))
	assert.Equal(t, orderType, me.Type)
	assert.Equal(t, "Shipping.Street", me.Member)
}

func TestResolve_Ambiguous(t *testing.T) {
	ix := NewIndex()
	ix.Add(external(addressType, "Street"))
	ix.Add(external(addressType, "City"))

	_, _, err := ix.Resolve(class(reference("Shipping", addressType)))
	require.Error(t, err)
	assert.True(t, errors.IsAmbiguousMergeTarget(err))
	assert.Len(t, errors.ForType(err, orderType), 1)

	// a class that does not reference the type is unaffected
	_, _, err = ix.Resolve(class(reference("Location", geoType)))
	assert.NoError(t, err)
}

func TestResolve_Recursive(t *testing.T) {
	const nodeType = "fluentmap/store.Node"

	ix := NewIndex()
	node := external(nodeType, "Value")
	node.Components = append(node.Components, reference("Next", nodeType))
	ix.Add(node)

	_, _, err := ix.Resolve(class(reference("Head", nodeType)))
	require.Error(t, err)
	assert.True(t, errors.IsRecursiveComponent(err))
}

func TestResolve_FailedExternal(t *testing.T) {
	ix := NewIndex()
	cause := errors.NewConfigurationIncompleteError(addressType, "Owner", "entity type column")
	ix.Fail(addressType, cause)

	_, _, err := ix.Resolve(class(reference("Shipping", addressType)))
	require.Error(t, err)
	assert.True(t, errors.IsConfigurationIncomplete(err))

	scoped := errors.ForType(err, orderType)
	require.Len(t, scoped, 1)
	assert.Equal(t, "Shipping", scoped[0].Member)
	assert.Empty(t, ix.Types(), "failed externals are not listed")
}

func TestCheckUnique(t *testing.T) {
	assert.NoError(t, CheckUnique("T", "", []string{"A", "B"}))
	assert.NoError(t, CheckUnique("T", "", nil))

	err := CheckUnique("T", "Comp.", []string{"A", "B", "A", "A", "B"})
	require.Error(t, err)

	scoped := errors.ForType(err, "T")
	require.Len(t, scoped, 2)
	assert.Equal(t, "Comp.A", scoped[0].Member)
	assert.Equal(t, "Comp.B", scoped[1].Member)
}
