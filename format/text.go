package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/dhamidi/classpeek/classfile"
)

// TextEncoder writes a colored, human readable dump. Colors follow the
// terminal behind w unless a profile is set with WithColorProfile.
type TextEncoder struct {
	w     io.Writer
	class *classfile.ClassFile

	kind  lipgloss.Style
	value lipgloss.Style
	index lipgloss.Style
	yes   lipgloss.Style
	no    lipgloss.Style
	head  lipgloss.Style
}

type TextOption func(r *lipgloss.Renderer)

// WithColorProfile forces a color profile, e.g. termenv.Ascii to disable
// colors.
func WithColorProfile(p termenv.Profile) TextOption {
	return func(r *lipgloss.Renderer) { r.SetColorProfile(p) }
}

func NewTextEncoder(w io.Writer, opts ...TextOption) *TextEncoder {
	r := lipgloss.NewRenderer(w)
	for _, opt := range opts {
		opt(r)
	}
	return &TextEncoder{
		w:     w,
		kind:  r.NewStyle().Foreground(lipgloss.Color("4")),
		value: r.NewStyle().Foreground(lipgloss.Color("3")),
		index: r.NewStyle().Foreground(lipgloss.Color("2")),
		yes:   r.NewStyle().Foreground(lipgloss.Color("2")),
		no:    r.NewStyle().Foreground(lipgloss.Color("1")),
		head:  r.NewStyle().Bold(true),
	}
}

func (e *TextEncoder) Encode(cf *classfile.ClassFile) error {
	e.class = cf
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TextEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	c := e.class
	cp := c.ConstantPool

	fmt.Fprintf(&sb, "minor version: %d, major version: %d\n", c.MinorVersion, c.MajorVersion)
	fmt.Fprintf(&sb, "access flags: %s\n", e.flags(c.AccessFlags))
	fmt.Fprintf(&sb, "kind: %s\n", e.value.Render(c.Kind()))

	super := "none"
	if idx, ok := c.SuperClassIndex(); ok {
		super = e.classIndex(cp, idx)
	}
	fmt.Fprintf(&sb, "this class: %s, super class: %s\n", e.classIndex(cp, c.ThisClass), super)

	if len(c.Interfaces) > 0 {
		sb.WriteString("\n")
		sb.WriteString(e.head.Render("--- Interfaces ---"))
		sb.WriteString("\n")
		for i, idx := range c.Interfaces {
			fmt.Fprintf(&sb, "Id: %s, Class index: %s\n", e.index.Render(fmt.Sprint(i+1)), e.classIndex(cp, idx))
		}
	}

	if len(cp) > 0 {
		sb.WriteString("\n")
		sb.WriteString(e.head.Render("--- Constant Pool ---"))
		sb.WriteString("\n")
		for _, v := range constantViews(cp) {
			fmt.Fprintf(&sb, "Id: %s, Type: %s", e.index.Render(fmt.Sprint(v.Index)), e.kind.Render(v.Kind))
			if v.Value != "" || v.Kind == classfile.ConstantUtf8.String() {
				fmt.Fprintf(&sb, ", value: %s", e.value.Render(v.Value))
			}
			if len(v.Refs) > 0 {
				fmt.Fprintf(&sb, ", refs: %s", e.kind.Render(refsString(v.Refs)))
			}
			if v.Resolved != "" {
				fmt.Fprintf(&sb, " (%s)", v.Resolved)
			}
			sb.WriteString("\n")
		}
	}

	return []byte(sb.String()), nil
}

func (e *TextEncoder) flags(f classfile.AccessFlags) string {
	parts := make([]string, 0, len(classfile.FlagNames))
	for _, fn := range classfile.FlagNames {
		mark := e.no.Render("✖")
		if f&fn.Mask == fn.Mask {
			mark = e.yes.Render("✔")
		}
		parts = append(parts, fmt.Sprintf("%s: %s", strings.ToUpper(fn.Name[:1])+fn.Name[1:], mark))
	}
	return strings.Join(parts, ", ")
}

func (e *TextEncoder) classIndex(cp classfile.ConstantPool, idx uint16) string {
	s := e.kind.Render(fmt.Sprint(idx))
	if name := classRef(cp, idx); name != "" {
		s += " (" + name + ")"
	}
	return s
}
