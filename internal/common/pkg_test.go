package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPkgAlias(t *testing.T) {
	assert.Equal(t, "store", PkgAlias("fluentmap/store"))
	assert.Equal(t, "time", PkgAlias("time"))
	assert.Empty(t, PkgAlias(""))
}

func TestSplitQualified(t *testing.T) {
	tests := []struct {
		in      string
		pkgPath string
		name    string
	}{
		{"fluentmap/store.Order", "fluentmap/store", "Order"},
		{"time.Time", "time", "Time"},
		{"example.com/x/y.Z", "example.com/x/y", "Z"},
		{"int64", "", "int64"},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			pkgPath, name := SplitQualified(tt.in)
			assert.Equal(t, tt.pkgPath, pkgPath)
			assert.Equal(t, tt.name, name)
		})
	}
}

func TestShortName(t *testing.T) {
	assert.Equal(t, "store.Order", ShortName("fluentmap/store.Order"))
	assert.Equal(t, "string", ShortName("string"))
}

func TestSliceHelpers(t *testing.T) {
	assert.True(t, IsEmpty([]int(nil)))
	assert.False(t, IsEmpty([]int{1}))
	assert.True(t, IsSingle([]int{1}))
	assert.False(t, IsSingle([]int{1, 2}))
	assert.True(t, IsMultiple([]int{1, 2}))
	assert.False(t, IsMultiple([]int{1}))

	first, ok := First([]string{"a", "b"})
	assert.True(t, ok)
	assert.Equal(t, "a", first)

	_, ok = First([]string{})
	assert.False(t, ok)
}
