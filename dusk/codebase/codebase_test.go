package codebase

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateFile(t *testing.T) {
	c := New("/tmp/dusk_test")
	path := "/tmp/dusk_test/src/main.dusk"

	f := c.UpdateFile(path, []byte("fn main() { x = 1 }"))
	require.NotNil(t, f)
	assert.Len(t, f.Items, 1)
	require.Len(t, f.Diagnostics, 1)
	assert.Equal(t, "expected `;`, found `}`", f.Diagnostics[0].Message())
	assert.Equal(t, "main.dusk", f.Source.Name())
	assert.Same(t, f, c.GetFile(path))

	fixed := c.UpdateFile(path, []byte("fn main() { x = 1; }"))
	assert.Empty(t, fixed.Diagnostics)
	assert.Same(t, fixed, c.GetFile(path))
	assert.Equal(t, []string{path}, c.Paths())

	c.RemoveFile(path)
	assert.Nil(t, c.GetFile(path))
	assert.Empty(t, c.Paths())
}

func TestConcurrentUpdates(t *testing.T) {
	c := New(".")
	var wg sync.WaitGroup
	for _, name := range []string{"a", "b", "c", "d"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.UpdateFile(name+".dusk", []byte("let "+name+" = 1;"))
		}()
	}
	wg.Wait()
	assert.Equal(t, []string{"a.dusk", "b.dusk", "c.dusk", "d.dusk"}, c.Paths())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestScanAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.dusk"), "module util;")
	writeFile(t, filepath.Join(dir, "util.dusk"), "fn helper();")
	writeFile(t, filepath.Join(dir, "notes.txt"), "not dusk")

	c := New(dir)
	require.NoError(t, c.ScanAll())
	assert.Equal(t, []string{
		filepath.Join(dir, "main.dusk"),
		filepath.Join(dir, "util.dusk"),
	}, c.Paths())
}

func TestWatcherFollowsDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.dusk")
	writeFile(t, path, "x = 1")
	writeFile(t, filepath.Join(dir, ".hidden", "skip.dusk"), "skipped;")

	c := New(dir)
	w := NewFileWatcher(c, time.Hour)
	var updated, removed []string
	w.OnUpdate = func(f *File) { updated = append(updated, f.Path) }
	w.OnRemove = func(path string) { removed = append(removed, path) }

	w.Scan()
	assert.Equal(t, []string{path}, updated)
	require.NotNil(t, c.GetFile(path))
	assert.Len(t, c.GetFile(path).Diagnostics, 1)

	// unchanged files are not reparsed
	w.Scan()
	assert.Len(t, updated, 1)

	writeFile(t, path, "x = 1;")
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))
	w.Scan()
	assert.Len(t, updated, 2)
	assert.Empty(t, c.GetFile(path).Diagnostics)

	require.NoError(t, os.Remove(path))
	w.Scan()
	assert.Equal(t, []string{path}, removed)
	assert.Nil(t, c.GetFile(path))
}
