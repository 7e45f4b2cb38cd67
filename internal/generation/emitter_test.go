package generation

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostbind/internal/metadata"
)

const hostPackage = "hostbind/host"

func TestSanitizeIdentifierKeepsValidNames(t *testing.T) {
	for _, name := range []string{"bias", "a_b", "Pos2", "_hidden", "größe"} {
		assert.Equal(t, name, SanitizeIdentifier(name))
	}
}

func TestSanitizeIdentifierReplacesInvalidRunes(t *testing.T) {
	assert.Equal(t, "a_b", SanitizeIdentifier("a/b"))
	assert.Equal(t, "global_position_x", SanitizeIdentifier("global/position.x"))
	assert.Equal(t, "with_space", SanitizeIdentifier("with space"))
}

func TestSanitizeIdentifierLeadingDigit(t *testing.T) {
	// A digit may not start an identifier but is fine after the first rune.
	assert.Equal(t, "_d", SanitizeIdentifier("3d"))
	assert.Equal(t, "v3d", SanitizeIdentifier("v3d"))
}

func TestEmitPropertyReadOnly(t *testing.T) {
	batch := NewBatch(hostPackage)
	statement, err := batch.EmitProperty(metadata.PropertyDescriptor{Name: "a/b", Getter: "get_a_b"})
	require.NoError(t, err)

	code := fmt.Sprintf("%#v", statement)
	assert.Contains(t, code, `class.BindProperty("a_b"`)
	assert.Contains(t, code, `obj.Call("get_a_b")`)
	assert.Contains(t, code, "nil")
	assert.NotContains(t, code, "value")
}

func TestEmitPropertyReadWrite(t *testing.T) {
	batch := NewBatch(hostPackage)
	statement, err := batch.EmitProperty(metadata.PropertyDescriptor{
		Name:   "bias",
		Getter: "get_bias",
		Setter: "set_bias",
	})
	require.NoError(t, err)

	code := fmt.Sprintf("%#v", statement)
	assert.Contains(t, code, `class.BindProperty("bias"`)
	assert.Contains(t, code, `obj.Call("get_bias")`)
	assert.Contains(t, code, `obj.Call("set_bias", value)`)
	assert.NotContains(t, code, "return obj.Call(\"set_bias\"")
}

func TestEmitPropertyForwardsBoundArgs(t *testing.T) {
	batch := NewBatch(hostPackage)
	statement, err := batch.EmitProperty(metadata.PropertyDescriptor{
		Name:      "margin",
		Getter:    "get_margin",
		Setter:    "set_margin",
		BoundArgs: []any{0, "left"},
	})
	require.NoError(t, err)

	code := fmt.Sprintf("%#v", statement)
	assert.Contains(t, code, `obj.Call("get_margin", 0, "left")`)
	assert.Contains(t, code, `obj.Call("set_margin", 0, "left", value)`)
}

func TestEmitPropertyEmptyName(t *testing.T) {
	batch := NewBatch(hostPackage)
	statement, err := batch.EmitProperty(metadata.PropertyDescriptor{Getter: "get_bias"})
	assert.Nil(t, statement)

	var genError *GenerationError
	require.ErrorAs(t, err, &genError)
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestEmitPropertyEmptyGetter(t *testing.T) {
	batch := NewBatch(hostPackage)
	statement, err := batch.EmitProperty(metadata.PropertyDescriptor{Name: "bias"})
	assert.Nil(t, statement)

	var genError *GenerationError
	require.ErrorAs(t, err, &genError)
	assert.ErrorIs(t, err, ErrEmptyGetter)
	assert.Equal(t, "bias", genError.Property)
}

func TestEmitAllPreservesOrder(t *testing.T) {
	statements, err := EmitAll(hostPackage, []metadata.PropertyDescriptor{
		{Name: "pos", Getter: "get_pos", Setter: "set_pos"},
		{Name: "size", Getter: "get_size", Setter: "set_size"},
		{Name: "end", Getter: "get_end"},
	})
	require.NoError(t, err)
	require.Len(t, statements, 3)

	assert.Contains(t, fmt.Sprintf("%#v", statements[0]), `"pos"`)
	assert.Contains(t, fmt.Sprintf("%#v", statements[1]), `"size"`)
	assert.Contains(t, fmt.Sprintf("%#v", statements[2]), `"end"`)
}

func TestEmitAllIsIdempotent(t *testing.T) {
	descriptors := []metadata.PropertyDescriptor{
		{Name: "pos", Getter: "get_pos", Setter: "set_pos"},
		{Name: "a/b", Getter: "get_a_b"},
	}

	renderAll := func() string {
		statements, err := EmitAll(hostPackage, descriptors)
		require.NoError(t, err)

		var rendered strings.Builder
		for _, statement := range statements {
			fmt.Fprintf(&rendered, "%#v\n", statement)
		}
		return rendered.String()
	}

	assert.Equal(t, renderAll(), renderAll())
}

func TestEmitAllReportsIdentifierCollision(t *testing.T) {
	statements, err := EmitAll(hostPackage, []metadata.PropertyDescriptor{
		{Name: "a/b", Getter: "get_a_b"},
		{Name: "a_b", Getter: "get_ab"},
	})
	assert.Nil(t, statements)

	var genError *GenerationError
	require.ErrorAs(t, err, &genError)
	assert.ErrorIs(t, err, ErrIdentifierCollision)
	assert.Equal(t, "a_b", genError.Property)
	assert.Contains(t, genError.Detail, `"a/b"`)
}

func TestEmitAllRejectsIdenticalNames(t *testing.T) {
	_, err := EmitAll(hostPackage, []metadata.PropertyDescriptor{
		{Name: "pos", Getter: "get_pos"},
		{Name: "pos", Getter: "get_pos"},
	})
	assert.ErrorIs(t, err, ErrIdentifierCollision)
}
