package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONField_Value(t *testing.T) {
	v, err := JSONField(`{"a":1}`).Value()
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, v)

	v, err = JSONField(nil).Value()
	require.NoError(t, err)
	assert.Nil(t, v, "empty field maps to NULL")
}

func TestJSONField_Scan(t *testing.T) {
	var f JSONField

	require.NoError(t, f.Scan([]byte(`[1,2]`)))
	assert.Equal(t, JSONField(`[1,2]`), f)

	require.NoError(t, f.Scan(`{"b":2}`))
	assert.Equal(t, JSONField(`{"b":2}`), f)

	require.NoError(t, f.Scan(nil))
	assert.Nil(t, f)

	require.Error(t, f.Scan(42))
}

func TestJSONField_ScanCopiesBytes(t *testing.T) {
	src := []byte(`{"x":1}`)
	var f JSONField
	require.NoError(t, f.Scan(src))
	src[2] = 'y'
	assert.Equal(t, JSONField(`{"x":1}`), f)
}
