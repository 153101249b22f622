package analyze

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type node struct {
	Name     string
	Parent   *node
	Children []*node
}

type audited struct {
	CreatedAt time.Time
	CreatedBy string
}

type document struct {
	audited

	ID     int
	Title  string
	Tags   map[string]string
	Blob   []byte
	Owner  any
	Status status
	hidden bool
}

type status int

type (
	leaf    struct{ X int }
	middle  struct{ leaf }
	sibling struct{ X string }
	shallow struct {
		middle
		sibling
	}
	left  struct{ X int }
	right struct{ X string }
	tied  struct {
		left
		right
	}
	shadowing struct {
		audited

		CreatedBy int
	}
)

func TestReflect_Struct(t *testing.T) {
	info := ReflectType[document]()
	require.NotNil(t, info)

	assert.Equal(t, TypeKindStruct, info.Kind)
	assert.Equal(t, TypeID{PkgPath: "fluentmap/analyze", Name: "document"}, info.ID)
	assert.Equal(t, reflect.TypeFor[document](), info.RType)
	require.Len(t, info.Fields, 8)

	embedded := info.Fields[0]
	assert.True(t, embedded.Embedded)
	assert.False(t, embedded.Exported)

	title, ok := info.Field("Title")
	require.True(t, ok)
	assert.Equal(t, TypeKindBasic, title.Type.Kind)
	assert.Equal(t, "string", title.Type.ID.Name)
	assert.True(t, title.Exported)

	tags, ok := info.Field("Tags")
	require.True(t, ok)
	assert.Equal(t, TypeKindMap, tags.Type.Kind)
	assert.Equal(t, "string", tags.Type.KeyType.ID.Name)
	assert.True(t, tags.Type.IsCollection())

	blob, ok := info.Field("Blob")
	require.True(t, ok)
	assert.True(t, blob.Type.IsScalar(), "[]byte maps onto a single column")

	owner, ok := info.Field("Owner")
	require.True(t, ok)
	assert.Equal(t, TypeKindInterface, owner.Type.Kind)

	st, ok := info.Field("Status")
	require.True(t, ok)
	assert.Equal(t, TypeKindAlias, st.Type.Kind)
	assert.Equal(t, "int", st.Type.Underlying.ID.Name)

	hidden, ok := info.Field("hidden")
	require.True(t, ok)
	assert.False(t, hidden.Exported)
}

func TestReflect_PromotedFields(t *testing.T) {
	info := ReflectType[document]()

	created, ok := info.Field("CreatedAt")
	require.True(t, ok)
	assert.Equal(t, TypeKindExternal, created.Type.Kind)

	_, ok = info.Field("Missing")
	assert.False(t, ok)
}

func TestLookupField_Depth(t *testing.T) {
	tests := []struct {
		name     string
		info     *TypeInfo
		field    string
		wantType string
		wantErr  error
	}{
		{"shallowest wins", ReflectType[shallow](), "X", "string", nil},
		{"same depth is ambiguous", ReflectType[tied](), "X", "", ErrAmbiguousField},
		{"direct field shadows promoted", ReflectType[shadowing](), "CreatedBy", "int", nil},
		{"promoted through shadowing type", ReflectType[shadowing](), "CreatedAt", "Time", nil},
		{"missing", ReflectType[tied](), "Y", "", ErrFieldNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := tt.info.LookupField(tt.field)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				_, ok := tt.info.Field(tt.field)
				assert.False(t, ok)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantType, f.Type.ID.Name)
		})
	}
}

func TestReflect_RecursiveType(t *testing.T) {
	info := ReflectType[node]()

	parent, ok := info.Field("Parent")
	require.True(t, ok)
	assert.Same(t, info, parent.Type.ElemType, "recursive reference resolves to the cached TypeInfo")

	children, ok := info.Field("Children")
	require.True(t, ok)
	assert.Same(t, info, children.Type.Element())
}

func TestReflect_Nil(t *testing.T) {
	assert.Nil(t, Reflect(nil))
}

func TestTypeInfo_QualifiedName(t *testing.T) {
	info := ReflectType[document]()
	assert.Equal(t, "fluentmap/analyze.document", info.QualifiedName())

	tags, _ := info.Field("Tags")
	assert.Equal(t, "map[string]string", tags.Type.QualifiedName())

	ptr := ReflectType[*node]()
	assert.Equal(t, "*fluentmap/analyze.node", ptr.QualifiedName())
	assert.Equal(t, "fluentmap/analyze.node", ptr.Deref().QualifiedName())
}
