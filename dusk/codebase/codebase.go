// Package codebase keeps parsed Dusk documents in memory and serves their
// diagnostics over the Language Server Protocol.
package codebase

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/dusk/dusk/ast"
	"github.com/dhamidi/dusk/dusk/diagnostic"
	"github.com/dhamidi/dusk/dusk/parser"
	"github.com/dhamidi/dusk/dusk/source"
)

var log = commonlog.GetLogger("dusk.codebase")

// Extension marks Dusk source files.
const Extension = ".dusk"

type Codebase struct {
	mu      sync.RWMutex
	rootDir string
	files   map[string]*File
}

// File is one parsed document. A File is never modified after it is
// stored; updates replace it.
type File struct {
	Path        string
	Source      *source.Source
	Items       []ast.Item
	Diagnostics []diagnostic.Diagnostic
}

func New(rootDir string) *Codebase {
	return &Codebase{
		rootDir: rootDir,
		files:   make(map[string]*File),
	}
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

// ScanAll parses every Dusk file below the root directory. Unreadable
// entries are skipped.
func (c *Codebase) ScanAll() error {
	return filepath.WalkDir(c.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() || filepath.Ext(path) != Extension {
			return nil
		}
		if _, err := c.ScanFile(path); err != nil {
			log.Warningf("scan %s: %s", path, err)
		}
		return nil
	})
}

func (c *Codebase) ScanFile(path string) (*File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return c.UpdateFile(path, content), nil
}

// UpdateFile parses content and stores it under path, replacing any
// previous version.
func (c *Codebase) UpdateFile(path string, content []byte) *File {
	p := parser.New(string(content), parser.WithFile(filepath.Base(path)))
	items := p.Parse()
	f := &File{
		Path:        path,
		Source:      p.Source(),
		Items:       items,
		Diagnostics: p.Diagnostics(),
	}
	log.Debugf("parsed %s: %d items, %d diagnostics", path, len(items), len(f.Diagnostics))

	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[path] = f
	return f
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
}

func (c *Codebase) GetFile(path string) *File {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Paths lists the stored documents in sorted order.
func (c *Codebase) Paths() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	paths := make([]string, 0, len(c.files))
	for path := range c.files {
		paths = append(paths, path)
	}
	slices.Sort(paths)
	return paths
}
