package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file describing a package.
const ManifestName = "dusk.toml"

var ErrInvalidKind = errors.New("invalid package kind")

// Kind says what a package builds.
type Kind string

const (
	Binary  Kind = "binary"
	Library Kind = "library"
)

// EntryFile is the file a package of this kind starts from.
func (k Kind) EntryFile() string {
	if k == Library {
		return "lib.dusk"
	}
	return "main.dusk"
}

func (k Kind) Valid() bool {
	return k == Binary || k == Library
}

// Manifest is the decoded dusk.toml:
//
//	[package]
//	name = "shapes"
//	kind = "library"
//	entry = "src/lib.dusk"
type Manifest struct {
	Package Package `toml:"package"`
}

type Package struct {
	Name  string `toml:"name"`
	Kind  Kind   `toml:"kind"`
	Entry string `toml:"entry"`
}

// DecodeManifest parses manifest text and fills in defaults. Unknown keys
// are logged and otherwise ignored.
func DecodeManifest(text string) (*Manifest, error) {
	var m Manifest
	md, err := toml.Decode(text, &m)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", ManifestName, err)
	}
	for _, key := range md.Undecoded() {
		log.Warningf("%s: unknown key %s", ManifestName, key)
	}
	if m.Package.Kind == "" {
		m.Package.Kind = Binary
	}
	if !m.Package.Kind.Valid() {
		return nil, fmt.Errorf("%s: %w %q, expected %q or %q", ManifestName, ErrInvalidKind, m.Package.Kind, Binary, Library)
	}
	if m.Package.Entry == "" {
		m.Package.Entry = m.Package.Kind.EntryFile()
	}
	return &m, nil
}

// LoadManifest reads dir/dusk.toml. A missing manifest yields the defaults
// for a binary package named after dir.
func LoadManifest(dir string) (*Manifest, error) {
	content, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if errors.Is(err, os.ErrNotExist) {
		content, err = nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	m, err := DecodeManifest(string(content))
	if err != nil {
		return nil, err
	}
	if m.Package.Name == "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", dir, err)
		}
		m.Package.Name = filepath.Base(abs)
	}
	return m, nil
}
