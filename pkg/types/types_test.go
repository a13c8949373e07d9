package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromKeyword(t *testing.T) {
	tests := []struct {
		keyword string
		want    Type
	}{
		{"int", Int},
		{"char", Char},
		{"float", Float},
		{"void", Void},
	}

	for _, tt := range tests {
		got, err := FromKeyword(tt.keyword)
		require.NoError(t, err, tt.keyword)
		assert.Equal(t, tt.want, got, tt.keyword)
	}
}

func TestFromKeywordUnknown(t *testing.T) {
	_, err := FromKeyword("double")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "internal")
}

func TestString(t *testing.T) {
	assert.Equal(t, "int", Int.String())
	assert.Equal(t, "char", Char.String())
	assert.Equal(t, "float", Float.String())
	assert.Equal(t, "void", Void.String())
	assert.Equal(t, "error", Error.String())
	assert.Equal(t, "unresolved", Unresolved.String())
}

func TestNumeric(t *testing.T) {
	assert.True(t, Int.Numeric())
	assert.True(t, Char.Numeric())
	assert.True(t, Float.Numeric())
	assert.False(t, Void.Numeric())
	assert.False(t, Error.Numeric())
	assert.False(t, Unresolved.Numeric())
}
