// Package format renders decoded class files.
package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/classpeek/classfile"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(cf *classfile.ClassFile) error
}

// New returns the encoder registered under name: "text", "line" or "json".
func New(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "text":
		return NewTextEncoder(w), nil
	case "line":
		return NewLineEncoder(w), nil
	case "json":
		return NewJSONEncoder(w), nil
	default:
		return nil, fmt.Errorf("unknown format: %s (expected text, line, or json)", name)
	}
}
