package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/classpeek/classfile"
)

// LineEncoder writes one tab-separated record per line.
type LineEncoder struct {
	w     io.Writer
	class *classfile.ClassFile
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(cf *classfile.ClassFile) error {
	e.class = cf
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	c := e.class
	cp := c.ConstantPool

	fmt.Fprintf(&sb, "version\t%d\t%d\n", c.MajorVersion, c.MinorVersion)
	fmt.Fprintf(&sb, "flags\t0x%04x\t%s\n", uint16(c.AccessFlags), orDash(c.AccessFlags.String()))
	fmt.Fprintf(&sb, "kind\t%s\n", c.Kind())
	fmt.Fprintf(&sb, "this\t#%d\t%s\n", c.ThisClass, orDash(classRef(cp, c.ThisClass)))
	if idx, ok := c.SuperClassIndex(); ok {
		fmt.Fprintf(&sb, "super\t#%d\t%s\n", idx, orDash(classRef(cp, idx)))
	} else {
		sb.WriteString("super\t-\t-\n")
	}
	for _, idx := range c.Interfaces {
		fmt.Fprintf(&sb, "interface\t#%d\t%s\n", idx, orDash(classRef(cp, idx)))
	}

	for _, v := range constantViews(cp) {
		detail := v.Resolved
		if v.Kind == classfile.ConstantUtf8.String() {
			detail = strconv.Quote(v.Value)
		} else if v.Value != "" {
			detail = v.Value
		}
		fmt.Fprintf(&sb, "const\t#%d\t%s\t%s\t%s\n", v.Index, v.Kind, orDash(refsString(v.Refs)), orDash(detail))
	}

	return []byte(sb.String()), nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
