package format

import (
	"bytes"
	"io"

	"gopkg.in/yaml.v3"
)

type YAMLEncoder struct {
	w   io.Writer
	doc *Document
}

func NewYAMLEncoder(w io.Writer) *YAMLEncoder {
	return &YAMLEncoder{w: w}
}

func (e *YAMLEncoder) Encode(doc *Document) error {
	e.doc = doc
	return write(e.w, e)
}

func (e *YAMLEncoder) MarshalText() ([]byte, error) {
	data, err := documentData(e.doc)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
