package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tree writes files relative to a fresh temporary directory.
func tree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func TestDecodeManifest(t *testing.T) {
	m, err := DecodeManifest(`
[package]
name = "shapes"
kind = "library"
`)
	require.NoError(t, err)
	assert.Equal(t, "shapes", m.Package.Name)
	assert.Equal(t, Library, m.Package.Kind)
	assert.Equal(t, "lib.dusk", m.Package.Entry)

	m, err = DecodeManifest("")
	require.NoError(t, err)
	assert.Equal(t, Binary, m.Package.Kind)
	assert.Equal(t, "main.dusk", m.Package.Entry)

	m, err = DecodeManifest("[package]\nentry = \"src/start.dusk\"\nauthors = [\"me\"]\n")
	require.NoError(t, err)
	assert.Equal(t, "src/start.dusk", m.Package.Entry)

	_, err = DecodeManifest("[package]\nkind = \"plugin\"\n")
	assert.ErrorIs(t, err, ErrInvalidKind)

	_, err = DecodeManifest("[package\n")
	assert.Error(t, err)
}

func TestLoadManifestDefaults(t *testing.T) {
	dir := tree(t, map[string]string{"main.dusk": ""})
	m, err := LoadManifest(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(dir), m.Package.Name)
	assert.Equal(t, Binary, m.Package.Kind)
}

func TestModuleTree(t *testing.T) {
	dir := tree(t, map[string]string{
		"dusk.toml":           "[package]\nname = \"app\"\n",
		"main.dusk":           "module geometry;\n#[doc] module io;\nfn main() {}\n",
		"geometry.dusk":       "module circle;\nstruct Point { x: Int, y: Int }\n",
		"circle.dusk":         "fn area(r: Float) -> Float { r * r; }\n",
		"io/module.dusk":      "module file;\n",
		"io/file.dusk":        "fn read();\n",
		"unused/module.dusk":  "not loaded",
		"geometry/extra.dusk": "not loaded",
	})

	p, err := LoadFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, "app", p.Name)
	assert.Equal(t, []string{
		"root",
		"root::geometry",
		"root::geometry::circle",
		"root::io",
		"root::io::file",
	}, p.Paths())

	root := p.Module("root")
	require.NotNil(t, root)
	assert.Equal(t, []string{"root::geometry", "root::io"}, root.Children)
	assert.Equal(t, filepath.Join(dir, "io", "file.dusk"), p.Module("root::io::file").File)
	assert.Equal(t, "circle", p.Module("root::geometry::circle").Name)
	assert.Equal(t, filepath.Join("io", "module.dusk"), p.Module("root::io").Source.Name())
	assert.Empty(t, p.Diagnostics())
	assert.Nil(t, p.Module("root::unused"))
}

func TestModuleTreeErrors(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		err   error
	}{
		{
			name:  "missing entry",
			files: map[string]string{"lib.dusk": ""},
			err:   ErrUnresolvedModule,
		},
		{
			name:  "missing module file",
			files: map[string]string{"main.dusk": "module nowhere;"},
			err:   ErrUnresolvedModule,
		},
		{
			name: "both locations exist",
			files: map[string]string{
				"main.dusk":     "module a;",
				"a.dusk":        "",
				"a/module.dusk": "",
			},
			err: ErrAmbiguousModule,
		},
		{
			name: "declared twice",
			files: map[string]string{
				"main.dusk": "module a;\nmodule a;",
				"a.dusk":    "",
			},
			err: ErrDuplicateModule,
		},
		{
			name:  "declares itself",
			files: map[string]string{"main.dusk": "module main;"},
			err:   ErrDuplicateModule,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(tree(t, tt.files))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestDuplicateErrorNamesPosition(t *testing.T) {
	dir := tree(t, map[string]string{
		"main.dusk": "module a;\nmodule a;",
		"a.dusk":    "",
	})
	_, err := LoadFrom(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "main.dusk:2:1")
	assert.Contains(t, err.Error(), "root::a")
}

func TestOpen(t *testing.T) {
	dir := tree(t, map[string]string{
		"lib.dusk":  "module util;\nlet x = ;",
		"util.dusk": "",
	})

	p, err := Open(dir, Library)
	require.NoError(t, err)
	assert.Equal(t, []string{"root", "root::util"}, p.Paths())
	diags := p.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, "expected an expression, found `;`", diags[0].Message())

	p, err = Open(filepath.Join(dir, "util.dusk"), Binary)
	require.NoError(t, err)
	assert.Equal(t, "util", p.Name)
	assert.Equal(t, []string{"root"}, p.Paths())

	_, err = Open(dir, Kind("plugin"))
	assert.ErrorIs(t, err, ErrInvalidKind)
}
