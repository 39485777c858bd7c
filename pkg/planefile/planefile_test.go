package planefile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gocut/pkg/geometry"
)

func TestParseFormats(t *testing.T) {
	expected := geometry.NewPlane(geometry.NewVector3(0, 0, 0.5), geometry.NewVector3(0, 0, 1))

	tests := []struct {
		format Format
		data   string
	}{
		{FormatJSON, `{"name": "half", "origin": [0, 0, 0.5], "normal": [0, 0, 1]}`},
		{FormatJSON, "{\n\t\"origin\" : [ 0 , 0 , 0.5 ],\n\t\"normal\" : [ 0, 0, 1 ]\n}"},
		{FormatYAML, "origin: [0, 0, 0.5]\nnormal:\n  - 0\n  - 0\n  - 1\n"},
		{FormatTOML, "origin = [0.0, 0.0, 0.5]\nnormal = [0.0, 0.0, 1.0]\n"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			plane, err := Parse([]byte(tt.data), tt.format)
			require.NoError(t, err)
			assert.Equal(t, expected, plane)
		})
	}
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`{"normal": [0, 0, 1]}`), FormatJSON)
	assert.ErrorIs(t, err, ErrMissingOrigin)

	_, err = Parse([]byte(`{"origin": [0, 0, 1]}`), FormatJSON)
	assert.ErrorIs(t, err, ErrMissingNormal)

	_, err = Parse([]byte(`{"origin": [0, 1], "normal": [0, 0, 1]}`), FormatJSON)
	assert.ErrorIs(t, err, ErrBadVector)

	_, err = Parse([]byte(`{"origin": [0, 0, 1], "normal": [0, 0, 1, 0]}`), FormatJSON)
	assert.ErrorIs(t, err, ErrBadVector)

	_, err = Parse([]byte(`{"origin": [0, 0`), FormatJSON)
	assert.Error(t, err)

	_, err = Parse([]byte(`origin: [1, 2, 3]`), Format("xml"))
	assert.Error(t, err)
}

func TestParseZeroOriginIsKept(t *testing.T) {
	plane, err := Parse([]byte(`{"origin": [0, 0, 0], "normal": [1, 0, 0]}`), FormatJSON)
	require.NoError(t, err)
	assert.False(t, plane.HasOrigin())
}

func TestFormatFromPath(t *testing.T) {
	for path, want := range map[string]Format{
		"plane.json": FormatJSON,
		"PLANE.YML":  FormatYAML,
		"p.yaml":     FormatYAML,
		"a/b.toml":   FormatTOML,
	} {
		got, err := FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := FormatFromPath("plane.txt")
	assert.Error(t, err)
}

func TestMarshalLoadRoundTrip(t *testing.T) {
	plane := geometry.NewPlane(geometry.NewVector3(1.25, -2, 3), geometry.NewVector3(0, 0.5, -1))
	dir := t.TempDir()

	for _, format := range []Format{FormatJSON, FormatYAML, FormatTOML} {
		data, err := Marshal(plane, format)
		require.NoError(t, err)

		path := filepath.Join(dir, "plane."+string(format))
		require.NoError(t, os.WriteFile(path, data, 0644))

		loaded, err := Load(path)
		require.NoError(t, err, string(format))
		assert.Equal(t, plane, loaded, string(format))
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
