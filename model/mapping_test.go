package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleComponent() *ComponentMapping {
	return &ComponentMapping{
		Kind:       ReferenceComponent,
		Name:       "Address",
		Member:     &Member{Name: "Address", Type: "fluentmap/store.Address"},
		Type:       "fluentmap/store.Address",
		Properties: []*PropertyMapping{{Name: "Street"}, {Name: "City"}},
		Anys: []*AnyMapping{{
			Name:       "Owner",
			MetaValues: []MetaValue{{Value: "C", Class: "Customer"}},
		}},
		Components: []*ComponentMapping{{
			Kind: ExternalComponent,
			Type: "fluentmap/store.Geo",
		}},
	}
}

func TestComponentMapping_Clone(t *testing.T) {
	orig := sampleComponent()
	c := orig.Clone()

	assert.Equal(t, orig, c)
	assert.NotSame(t, orig.Member, c.Member)
	assert.NotSame(t, orig.Properties[0], c.Properties[0])
	assert.NotSame(t, orig.Components[0], c.Components[0])

	c.Properties[0].Column = "street"
	c.Anys[0].MetaValues[0].Value = "X"
	c.Member.Name = "Other"

	assert.Empty(t, orig.Properties[0].Column)
	assert.Equal(t, "C", orig.Anys[0].MetaValues[0].Value)
	assert.Equal(t, "Address", orig.Member.Name)
}

func TestComponentMapping_CloneNil(t *testing.T) {
	var c *ComponentMapping
	assert.Nil(t, c.Clone())
}

func TestCollectionMapping_Clone(t *testing.T) {
	orig := &CollectionMapping{
		Name:         "Lines",
		Kind:         Bag,
		KeyColumn:    "Order_id",
		SqlDeleteAll: &StoredProcedureMapping{Kind: SqlDeleteAll, Query: "DELETE FROM Line WHERE Order_id = ?"},
	}

	c := orig.Clone()
	require.Equal(t, orig, c)
	assert.NotSame(t, orig.SqlDeleteAll, c.SqlDeleteAll)

	c.SqlDeleteAll.Query = "changed"
	assert.Equal(t, "DELETE FROM Line WHERE Order_id = ?", orig.SqlDeleteAll.Query)
}

func TestComponentMapping_Members(t *testing.T) {
	c := sampleComponent()
	c.Components[0].Name = "Geo"

	assert.Equal(t, []string{"Street", "City", "Geo", "Owner"}, c.Members())
	assert.True(t, c.IsReference())
	assert.False(t, c.Components[0].IsReference())
}

func TestClassMapping_CloneAndMembers(t *testing.T) {
	cls := &ClassMapping{
		Name:             "fluentmap/store.Customer",
		Id:               &IdMapping{Name: "ID", Column: "ID"},
		Properties:       []*PropertyMapping{{Name: "Email"}},
		Components:       []*ComponentMapping{sampleComponent()},
		References:       []*ManyToOneMapping{{Name: "Parent"}},
		StoredProcedures: []*StoredProcedureMapping{{Kind: SqlInsert, Query: "Insert ABC"}},
		Tuplizer:         &TuplizerMapping{Mode: ModePoco, Type: "T"},
	}

	cp := cls.Clone()
	require.Equal(t, cls, cp)
	assert.NotSame(t, cls.Id, cp.Id)
	assert.NotSame(t, cls.Tuplizer, cp.Tuplizer)
	assert.NotSame(t, cls.Components[0], cp.Components[0])

	assert.Equal(t, []string{"ID", "Email", "Address", "Parent"}, cls.Members())
}

func TestComponentKind_YAML(t *testing.T) {
	out, err := yaml.Marshal(&ComponentMapping{Kind: ExternalComponent, Type: "pkg.T"})
	require.NoError(t, err)
	assert.Contains(t, string(out), "kind: external")
	assert.NotContains(t, string(out), "member")
}

func TestTuplizerMode_Valid(t *testing.T) {
	assert.True(t, ModePoco.Valid())
	assert.True(t, ModeDynamic.Valid())
	assert.True(t, ModeXml.Valid())
	assert.False(t, TuplizerMode("other").Valid())
}
