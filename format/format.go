// Package format encodes parsed Dusk documents for display and tooling.
package format

import (
	"encoding"
	"errors"
	"fmt"
	"io"

	"github.com/dhamidi/dusk/dusk/ast"
	"github.com/dhamidi/dusk/dusk/diagnostic"
	"github.com/dhamidi/dusk/dusk/source"
)

var ErrUnknownFormat = errors.New("unknown format")

// Names lists the formats accepted by New.
var Names = []string{"tree", "json", "yaml", "line"}

// Document is a parse result together with the text it was parsed from.
type Document struct {
	Source      *source.Source
	Items       []ast.Item
	Diagnostics []diagnostic.Diagnostic
}

type Encoder interface {
	encoding.TextMarshaler
	Encode(doc *Document) error
}

// New returns the encoder registered under name.
func New(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "tree":
		return NewTreeEncoder(w), nil
	case "json":
		return NewASTJSONEncoder(w), nil
	case "yaml":
		return NewYAMLEncoder(w), nil
	case "line":
		return NewLineEncoder(w), nil
	}
	return nil, fmt.Errorf("%w %q, expected one of %v", ErrUnknownFormat, name, Names)
}

func write(w io.Writer, m encoding.TextMarshaler) error {
	text, err := m.MarshalText()
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}
