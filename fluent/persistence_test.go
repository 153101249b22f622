package fluent

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fluentmap/errors"
	"fluentmap/internal/diagnostic"
	"fluentmap/model"
)

func childMap() *ClassMap {
	m := NewClassMap[Child]()
	m.Id("ID")
	m.Map("Name")

	return m
}

func TestPersistenceModel_MergesExternalComponent(t *testing.T) {
	comp := NewComponentMap[Component]()
	comp.Map("Property")

	target := NewClassMap[Target]()
	target.Id("ID")
	target.Component("Component")

	pm := NewPersistenceModel()
	require.NoError(t, pm.Add(comp, target))

	docs, err := pm.BuildMappings()
	require.NoError(t, err)
	require.Len(t, docs, 1)
	require.Len(t, docs[0].Classes, 1)

	cls := docs[0].Classes[0]
	require.Len(t, cls.Components, 1)

	merged := cls.Components[0]
	assert.Equal(t, model.ReferenceComponent, merged.Kind)
	assert.Equal(t, "Component", merged.Member.Name)
	require.Len(t, merged.Properties, 1)
	assert.Equal(t, "Property", merged.Properties[0].Name)
}

func TestPersistenceModel_ExternalCollectionsNamedAfterClass(t *testing.T) {
	tests := []struct {
		name      string
		declare   func(*Members)
		ownKey    string
		wantKey   string
		wantTable string
	}{
		{"one to many", func(m *Members) { m.HasMany("Items") }, "", "Target_id", ""},
		{"many to many", func(m *Members) { m.HasManyToMany("Items") }, "", "Target_id", "TargetChild"},
		{"explicit key", func(m *Members) { m.HasMany("Items").KeyColumn("owner") }, "owner", "owner", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comp := NewComponentMap[Component]()
			tt.declare(&comp.Members)

			standalone, err := comp.ComponentMapping()
			require.NoError(t, err)
			require.Len(t, standalone.Collections, 1)
			assert.Equal(t, tt.ownKey, standalone.Collections[0].KeyColumn)
			assert.Empty(t, standalone.Collections[0].Table)

			target := NewClassMap[Target]()
			target.Id("ID")
			target.Component("Component")

			pm := NewPersistenceModel()
			require.NoError(t, pm.Add(comp, target, childMap()))

			docs, err := pm.BuildMappings()
			require.NoError(t, err)

			cls, ok := findClass(docs, targetName)
			require.True(t, ok)

			external := cls.Components[0].Collections[0]
			assert.Equal(t, tt.wantKey, external.KeyColumn)
			assert.Equal(t, tt.wantTable, external.Table)

			inline := NewClassMap[Target]()
			inline.Id("ID")
			tt.declare(&inline.Component("Component").Members)

			inlineCls, err := inline.ClassMapping()
			require.NoError(t, err)
			assert.Equal(t, inlineCls.Components[0].Collections[0], external)

			// the registered External is untouched by the merge
			again, err := comp.ComponentMapping()
			require.NoError(t, err)
			assert.Equal(t, standalone, again)
		})
	}
}

func findClass(docs []*model.HibernateMapping, name string) (*model.ClassMapping, bool) {
	for _, doc := range docs {
		for _, cls := range doc.Classes {
			if cls.Name == name {
				return cls, true
			}
		}
	}

	return nil, false
}

func TestPersistenceModel_BuildMappingsIsIdempotent(t *testing.T) {
	comp := NewComponentMap[Component]()
	comp.Map("Property")
	comp.References("Reference")

	target := NewClassMap[Target]()
	target.Id("ID")
	target.Map("Name")
	target.Component("Component")
	target.HasMany("Children")
	target.SqlInsert("INSERT INTO Target VALUES (?)")

	pm := NewPersistenceModel()
	require.NoError(t, pm.Add(comp, target, childMap()))

	first, err := pm.BuildMappings()
	require.NoError(t, err)

	second, err := pm.BuildMappings()
	require.NoError(t, err)

	assert.Equal(t, first, second)

	first[0].Classes[0].Components[0].Properties = nil

	third, err := pm.BuildMappings()
	require.NoError(t, err)
	assert.Equal(t, second, third)
}

func TestPersistenceModel_ErrorsAreIsolatedPerClass(t *testing.T) {
	target := NewClassMap[Target]()
	target.Id("ID")
	target.ReferencesAny("Payment").EntityIdentifierColumn("payment_id")

	pm := NewPersistenceModel()
	require.NoError(t, pm.Add(target, childMap()))

	docs, err := pm.BuildMappings()
	require.Error(t, err)
	assert.True(t, errors.IsConfigurationIncomplete(err))

	assert.Len(t, errors.ForType(err, targetName), 1)
	assert.Empty(t, errors.ForType(err, childName))

	require.Len(t, docs, 1)
	assert.Equal(t, childName, docs[0].Classes[0].Name)
}

func TestPersistenceModel_Add(t *testing.T) {
	pm := NewPersistenceModel()

	require.NoError(t, pm.Add(childMap(), nil))

	err := pm.Add(childMap())
	require.Error(t, err)
	assert.True(t, errors.IsDuplicateMapping(err))

	require.Len(t, pm.Classes(), 1)

	m, ok := pm.ClassMapOf(childName)
	require.True(t, ok)
	assert.Equal(t, childName, m.Type().QualifiedName())

	_, ok = pm.ClassMapOf(targetName)
	assert.False(t, ok)
}

func TestPersistenceModel_AmbiguousExternal(t *testing.T) {
	first := NewComponentMap[Component]()
	first.Map("Property")

	second := NewComponentMap[Component]()
	second.Map("Property")

	target := NewClassMap[Target]()
	target.Id("ID")
	target.Component("Component")

	pm := NewPersistenceModel()
	require.NoError(t, pm.Add(first, second, target, childMap()))

	docs, err := pm.BuildMappings()
	require.Error(t, err)
	assert.True(t, errors.IsAmbiguousMergeTarget(err))
	assert.Len(t, errors.ForType(err, targetName), 1)
	assert.Len(t, docs, 1)
}

func TestPersistenceModel_FailedExternalFailsReferencingClass(t *testing.T) {
	comp := NewComponentMap[Component]()
	comp.ReferencesAny("Any")

	target := NewClassMap[Target]()
	target.Id("ID")
	target.Component("Component")

	pm := NewPersistenceModel()
	require.NoError(t, pm.Add(comp, target))

	docs, err := pm.BuildMappings()
	require.Error(t, err)
	assert.Empty(t, docs)
	assert.NotEmpty(t, errors.ForType(err, componentName))
	assert.NotEmpty(t, errors.ForType(err, targetName))
}

func TestPersistenceModel_Options(t *testing.T) {
	pm := NewPersistenceModel(
		WithDefaultLazy(false),
		WithDefaultAccess("field"),
		WithAutoImport(false),
		WithConventions(nil),
	)
	require.NoError(t, pm.Add(childMap()))

	docs, err := pm.BuildMappings()
	require.NoError(t, err)
	require.Len(t, docs, 1)

	assert.False(t, docs[0].DefaultLazy)
	assert.False(t, docs[0].AutoImport)
	assert.Equal(t, "field", docs[0].DefaultAccess)
	assert.Equal(t, "Child", docs[0].Classes[0].Table)
}

func TestPersistenceModel_Diagnose(t *testing.T) {
	comp := NewComponentMap[Nested]()
	comp.Map("Value")

	noID := NewClassMap[Target]()
	noID.Map("Name")

	pm := NewPersistenceModel()
	require.NoError(t, pm.Add(comp, noID))

	diags := pm.Diagnose()
	assert.True(t, diags.IsValid())

	require.Len(t, diags.Warnings, 1)
	assert.Equal(t, diagnostic.CodeMissingId, diags.Warnings[0].Code)
	assert.Equal(t, targetName, diags.Warnings[0].Class)

	require.Len(t, diags.Infos, 1)
	assert.Equal(t, diagnostic.CodeUnusedComponent, diags.Infos[0].Code)
	assert.Equal(t, "fluentmap/fluent.Nested", diags.Infos[0].Class)
}

func TestPersistenceModel_Diagnose_FailedUnusedComponent(t *testing.T) {
	comp := NewComponentMap[Component]()
	comp.ReferencesAny("Any")

	pm := NewPersistenceModel()
	require.NoError(t, pm.Add(comp, childMap()))

	diags := pm.Diagnose()
	require.Len(t, diags.Errors, 1)
	assert.Equal(t, componentName, diags.Errors[0].Class)
	assert.Empty(t, diags.Infos)
}

func TestPersistenceModel_CompileMappings(t *testing.T) {
	target := NewClassMap[Target]()
	target.Map("Tags")

	pm := NewPersistenceModel()
	require.NoError(t, pm.Add(target))

	err := pm.CompileMappings()
	require.Error(t, err)
	assert.True(t, errors.IsInvalidMember(err))

	diags := pm.Diagnose()
	require.Len(t, diags.Errors, 1)
	assert.Equal(t, diagnostic.CodeInvalidMember, diags.Errors[0].Code)
	assert.Equal(t, "Tags", diags.Errors[0].Member)
}

func TestPersistenceModel_WriteMappingsTo(t *testing.T) {
	target := NewClassMap[Target]()
	target.Id("ID")
	target.Tuplizer(model.ModePoco, reflect.TypeFor[testTuplizer]())

	pm := NewPersistenceModel()
	require.NoError(t, pm.Add(target, childMap()))

	dir := t.TempDir()

	files, err := pm.WriteMappingsTo(dir, "xml")
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(dir, "fluent.Target.hbm.xml"), files[0])
	assert.Equal(t, filepath.Join(dir, "fluent.Child.hbm.xml"), files[1])

	content, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(content), `<tuplizer entity-mode="poco" class="fluentmap/fluent.testTuplizer"></tuplizer>`)

	_, err = pm.WriteMappingsTo(dir, "json")
	require.Error(t, err)
}
