// Package project finds the files that make up a Dusk package and parses
// them into a module tree.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/emirpasic/gods/v2/maps/treemap"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/dusk/dusk/ast"
	"github.com/dhamidi/dusk/dusk/diagnostic"
	"github.com/dhamidi/dusk/dusk/parser"
	"github.com/dhamidi/dusk/dusk/source"
)

var log = commonlog.GetLogger("dusk.project")

// RootPath names the entry module in module paths.
const RootPath = "root"

var (
	ErrUnresolvedModule = errors.New("unresolved module")
	ErrAmbiguousModule  = errors.New("ambiguous module")
	ErrDuplicateModule  = errors.New("module declared more than once")
)

// Project is a package with its module tree.
type Project struct {
	Name    string
	RootDir string
	Kind    Kind
	Entry   string

	// modules by path, such as root::shapes::circle
	modules *treemap.Map[string, *Module]
	// module path by file, to refuse loading a file twice
	files map[string]string
}

// Module is one parsed file of the package.
type Module struct {
	Path        string
	Name        string
	File        string
	Source      *source.Source
	Items       []ast.Item
	Diagnostics []diagnostic.Diagnostic
	Children    []string
}

// Load reads the package in the current directory.
func Load() (*Project, error) {
	return LoadFrom(".")
}

// LoadFrom reads the manifest in rootDir and builds the module tree from
// the package's entry file.
func LoadFrom(rootDir string) (*Project, error) {
	m, err := LoadManifest(rootDir)
	if err != nil {
		return nil, err
	}
	p := newProject(m.Package.Name, rootDir, m.Package.Kind, filepath.Join(rootDir, m.Package.Entry))
	if err := p.build(); err != nil {
		return nil, err
	}
	return p, nil
}

// Open builds the module tree starting at path. A directory is taken to be
// the package root and its entry file is chosen by kind.
func Open(path string, kind Kind) (*Project, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w %q", ErrInvalidKind, kind)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open package: %w", err)
	}
	root, entry := filepath.Dir(path), path
	if info.IsDir() {
		root, entry = path, filepath.Join(path, kind.EntryFile())
	}
	p := newProject(strings.TrimSuffix(filepath.Base(entry), ".dusk"), root, kind, entry)
	if err := p.build(); err != nil {
		return nil, err
	}
	return p, nil
}

func newProject(name, rootDir string, kind Kind, entry string) *Project {
	return &Project{
		Name:    name,
		RootDir: rootDir,
		Kind:    kind,
		Entry:   entry,
		modules: treemap.New[string, *Module](),
		files:   make(map[string]string),
	}
}

func (p *Project) build() error {
	if _, err := os.Stat(p.Entry); err != nil {
		return fmt.Errorf("%w %s: entry file: %w", ErrUnresolvedModule, RootPath, err)
	}
	return p.load(p.Entry, RootPath)
}

// load parses file as the module at path and then, depth first, every
// module it declares. A module `name` declared in dir/file.dusk lives in
// dir/name.dusk or dir/name/module.dusk, but not both.
func (p *Project) load(file, path string) error {
	file = filepath.Clean(file)
	if other, ok := p.files[file]; ok {
		return fmt.Errorf("%w: %s is already loaded as %s", ErrDuplicateModule, file, other)
	}
	content, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrUnresolvedModule, path, err)
	}
	log.Infof("loading %s from %s", path, file)

	rel, err := filepath.Rel(p.RootDir, file)
	if err != nil {
		rel = file
	}
	pr := parser.New(string(content), parser.WithFile(rel))
	items := pr.Parse()
	m := &Module{
		Path:        path,
		Name:        path[strings.LastIndex(path, ":")+1:],
		File:        file,
		Source:      pr.Source(),
		Items:       items,
		Diagnostics: pr.Diagnostics(),
	}
	p.modules.Put(path, m)
	p.files[file] = path

	dir := filepath.Dir(file)
	for _, decl := range declaredModules(items) {
		name := decl.Name.Name
		child := path + "::" + name
		if _, found := p.modules.Get(child); found {
			return fmt.Errorf("%s:%s: %w: %s", rel, position(m.Source, decl), ErrDuplicateModule, child)
		}

		sibling := filepath.Join(dir, name+".dusk")
		nested := filepath.Join(dir, name, "module.dusk")
		var target string
		switch hasSibling, hasNested := exists(sibling), exists(nested); {
		case hasSibling && hasNested:
			return fmt.Errorf("%s:%s: %w %s: both %s and %s exist", rel, position(m.Source, decl), ErrAmbiguousModule, child, sibling, nested)
		case hasSibling:
			target = sibling
		case hasNested:
			target = nested
		default:
			return fmt.Errorf("%s:%s: %w %s: neither %s nor %s exists", rel, position(m.Source, decl), ErrUnresolvedModule, child, sibling, nested)
		}

		m.Children = append(m.Children, child)
		if err := p.load(target, child); err != nil {
			return err
		}
	}
	return nil
}

// declaredModules returns the module items of a file, looking through
// metadata.
func declaredModules(items []ast.Item) []*ast.Module {
	var out []*ast.Module
	for _, item := range items {
		for {
			meta, ok := item.(*ast.Metadata)
			if !ok || meta.Subject == nil {
				break
			}
			item = meta.Subject
		}
		if mod, ok := item.(*ast.Module); ok && mod.Name != nil {
			out = append(out, mod)
		}
	}
	return out
}

func position(src *source.Source, n ast.Node) string {
	c, err := src.Cursor(n.Span().Start)
	if err != nil {
		return "?"
	}
	return c.Position().String()
}

func exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Module returns the module at path, or nil.
func (p *Project) Module(path string) *Module {
	m, _ := p.modules.Get(path)
	return m
}

// ModulesInOrder returns every module with parents before their children,
// siblings in name order.
func (p *Project) ModulesInOrder() []*Module {
	return p.modules.Values()
}

// Paths lists module paths in the same order as ModulesInOrder.
func (p *Project) Paths() []string {
	return p.modules.Keys()
}

// Diagnostics collects the diagnostics of all modules.
func (p *Project) Diagnostics() []diagnostic.Diagnostic {
	var out []diagnostic.Diagnostic
	for _, m := range p.ModulesInOrder() {
		out = append(out, m.Diagnostics...)
	}
	return out
}
