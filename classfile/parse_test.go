package classfile

import (
	"encoding/binary"
	"errors"
	"reflect"
	"testing"
)

// classBytes assembles a class file prefix for tests.
type classBytes []byte

func newClassBytes(minor, major uint16) classBytes {
	b := binary.BigEndian.AppendUint32(nil, Magic)
	b = binary.BigEndian.AppendUint16(b, minor)
	return binary.BigEndian.AppendUint16(b, major)
}

func (b classBytes) u1(v uint8) classBytes  { return append(b, v) }
func (b classBytes) u2(v uint16) classBytes { return binary.BigEndian.AppendUint16(b, v) }
func (b classBytes) u4(v uint32) classBytes { return binary.BigEndian.AppendUint32(b, v) }
func (b classBytes) u8(v uint64) classBytes { return binary.BigEndian.AppendUint64(b, v) }

func (b classBytes) utf8(s string) classBytes {
	return append(b.u1(uint8(ConstantUtf8)).u2(uint16(len(s))), s...)
}

func (b classBytes) class(nameIndex uint16) classBytes {
	return b.u1(uint8(ConstantClass)).u2(nameIndex)
}

// sampleClass describes "public final class demo/Main extends
// java/lang/Object implements java/lang/Runnable, java/io/Serializable".
func sampleClass() classBytes {
	return newClassBytes(0, 52).
		u2(9).
		utf8("demo/Main").            // 1
		class(1).                     // 2
		utf8("java/lang/Object").     // 3
		class(3).                     // 4
		utf8("java/lang/Runnable").   // 5
		class(5).                     // 6
		utf8("java/io/Serializable"). // 7
		class(7).                     // 8
		u2(uint16(AccPublic | AccFinal | AccSuper)).
		u2(2).
		u2(4).
		u2(2).u2(6).u2(8)
}

func TestParseClassFile(t *testing.T) {
	cf, err := Parse(sampleClass())
	if err != nil {
		t.Fatalf("Failed to parse class file: %v", err)
	}

	t.Run("version", func(t *testing.T) {
		if cf.MajorVersion != 52 || cf.MinorVersion != 0 {
			t.Errorf("version = %d.%d, want 52.0", cf.MajorVersion, cf.MinorVersion)
		}
	})

	t.Run("constant pool size", func(t *testing.T) {
		if len(cf.ConstantPool) != 8 {
			t.Errorf("len(ConstantPool) = %d, want 8", len(cf.ConstantPool))
		}
	})

	t.Run("class name", func(t *testing.T) {
		expected := "demo/Main"
		if got := cf.ClassName(); got != expected {
			t.Errorf("ClassName() = %q, want %q", got, expected)
		}
	})

	t.Run("super class", func(t *testing.T) {
		idx, ok := cf.SuperClassIndex()
		if !ok || idx != 4 {
			t.Errorf("SuperClassIndex() = %d, %v, want 4, true", idx, ok)
		}
		expected := "java/lang/Object"
		if got := cf.SuperClassName(); got != expected {
			t.Errorf("SuperClassName() = %q, want %q", got, expected)
		}
	})

	t.Run("interfaces keep their order", func(t *testing.T) {
		if !reflect.DeepEqual(cf.Interfaces, []uint16{6, 8}) {
			t.Errorf("Interfaces = %v, want [6 8]", cf.Interfaces)
		}
		want := []string{"java/lang/Runnable", "java/io/Serializable"}
		if got := cf.InterfaceNames(); !reflect.DeepEqual(got, want) {
			t.Errorf("InterfaceNames() = %v, want %v", got, want)
		}
	})

	t.Run("access flags", func(t *testing.T) {
		if !cf.AccessFlags.IsPublic() {
			t.Error("Expected class to be public")
		}
		if !cf.AccessFlags.IsFinal() {
			t.Error("Expected class to be final")
		}
		if !cf.IsClass() || cf.IsInterface() {
			t.Error("Expected a class, not an interface")
		}
	})
}

func TestParseSingleUtf8Entry(t *testing.T) {
	data := newClassBytes(0, 10).u2(2).utf8("foo")

	h, err := ParseHeader(data)
	if err != nil {
		t.Fatalf("ParseHeader() error = %v", err)
	}
	if len(h.ConstantPool) != 1 {
		t.Fatalf("len(ConstantPool) = %d, want 1", len(h.ConstantPool))
	}
	if got := h.ConstantPool.Utf8(1); got != "foo" {
		t.Errorf("Utf8(1) = %q, want %q", got, "foo")
	}
}

func TestParseEmptyConstantPool(t *testing.T) {
	for _, count := range []uint16{0, 1} {
		data := newClassBytes(0, 10).u2(count)

		c := NewCursor(data)
		c.Skip(8)
		pool, err := readConstantPool(c)
		if err != nil {
			t.Fatalf("count %d: readConstantPool() error = %v", count, err)
		}
		if len(pool) != 0 {
			t.Errorf("count %d: len(pool) = %d, want 0", count, len(pool))
		}
		if c.Pos() != len(data) {
			t.Errorf("count %d: Pos() = %d, want %d", count, c.Pos(), len(data))
		}
	}
}

func TestParseIntegerEntry(t *testing.T) {
	data := newClassBytes(0, 10).u2(2).u1(uint8(ConstantInteger)).u4(0xFFFFFFFF)

	h, err := ParseHeader(data)
	if err != nil {
		t.Fatalf("ParseHeader() error = %v", err)
	}
	v, ok := h.ConstantPool.Integer(1)
	if !ok || v != -1 {
		t.Errorf("Integer(1) = %d, %v, want -1, true", v, ok)
	}
}

func TestParseSuperClass(t *testing.T) {
	tests := []struct {
		name      string
		super     uint16
		wantIndex uint16
		wantOK    bool
	}{
		{"root of hierarchy", 0, 0, false},
		{"present", 2, 2, true},
		{"any nonzero index", 0xBEEF, 0xBEEF, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := newClassBytes(0, 52).u2(3).utf8("java/lang/Object").class(1).
				u2(uint16(AccPublic)).u2(2).u2(tt.super).u2(0)

			cf, err := Parse(data)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			idx, ok := cf.SuperClassIndex()
			if idx != tt.wantIndex || ok != tt.wantOK {
				t.Errorf("SuperClassIndex() = %d, %v, want %d, %v", idx, ok, tt.wantIndex, tt.wantOK)
			}
			if !tt.wantOK && cf.SuperClassName() != "" {
				t.Errorf("SuperClassName() = %q, want empty", cf.SuperClassName())
			}
			if len(cf.Interfaces) != 0 {
				t.Errorf("Interfaces = %v, want none", cf.Interfaces)
			}
		})
	}
}

func TestParseLongTakesTwoSlots(t *testing.T) {
	data := newClassBytes(0, 52).
		u2(6).
		u1(uint8(ConstantLong)).u8(0xFFFFFFFFFFFFFFFF).
		u1(uint8(ConstantDouble)).u8(0x3FF0000000000000).
		utf8("after")
	// Long at 1 and Double at 3 each reserve the slot after them.

	h, err := ParseHeader(data)
	if err != nil {
		t.Fatalf("ParseHeader() error = %v", err)
	}
	if len(h.ConstantPool) != 5 {
		t.Fatalf("len(ConstantPool) = %d, want 5", len(h.ConstantPool))
	}
	if v, ok := h.ConstantPool.Long(1); !ok || v != -1 {
		t.Errorf("Long(1) = %d, %v, want -1, true", v, ok)
	}
	if h.ConstantPool.Entry(2) != nil {
		t.Errorf("Entry(2) = %#v, want nil", h.ConstantPool.Entry(2))
	}
	if v, ok := h.ConstantPool.Double(3); !ok || v != 1.0 {
		t.Errorf("Double(3) = %v, %v, want 1, true", v, ok)
	}
	if got := h.ConstantPool.Utf8(5); got != "after" {
		t.Errorf("Utf8(5) = %q, want %q", got, "after")
	}
}

func TestParseTruncated(t *testing.T) {
	full := sampleClass()
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"magic only", full[:4]},
		{"inside version", full[:7]},
		{"inside utf8 entry", newClassBytes(0, 52).u2(2).u1(uint8(ConstantUtf8)).u2(10).u1('a')},
		{"inside access flags", full[:len(full)-11]},
		{"inside interfaces", full[:len(full)-1]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cf, err := Parse(tt.data)
			if !errors.Is(err, ErrOutOfBounds) {
				t.Fatalf("Parse() error = %v, want ErrOutOfBounds", err)
			}
			if cf != nil {
				t.Errorf("Parse() = %+v, want nil", cf)
			}
		})
	}
}

func TestParseUnsupportedTag(t *testing.T) {
	data := newClassBytes(0, 52).u2(3).utf8("ok").u1(15).u1(1).u2(1)

	_, err := Parse(data)
	var ute *UnsupportedTagError
	if !errors.As(err, &ute) {
		t.Fatalf("Parse() error = %v, want *UnsupportedTagError", err)
	}
	if ute.Tag != 15 {
		t.Errorf("Tag = %d, want 15", ute.Tag)
	}
	// magic(4) + version(4) + count(2) + utf8 "ok"(5)
	if ute.Offset != 15 {
		t.Errorf("Offset = %d, want 15", ute.Offset)
	}
}

func TestParseIgnoresMagic(t *testing.T) {
	data := sampleClass()
	copy(data, []byte{0xDE, 0xAD, 0xBE, 0xEF})

	if _, err := Parse(data); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if err := CheckMagic(data); !errors.Is(err, ErrInvalidMagic) {
		t.Errorf("CheckMagic() error = %v, want ErrInvalidMagic", err)
	}
	if err := CheckMagic(sampleClass()); err != nil {
		t.Errorf("CheckMagic() error = %v, want nil", err)
	}
	if err := CheckMagic([]byte{0xCA}); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("CheckMagic() error = %v, want ErrOutOfBounds", err)
	}
}

func TestParseIsDeterministic(t *testing.T) {
	a, err := Parse(sampleClass())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Parse(sampleClass())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("Parse() returned different results for the same input")
	}
}

func TestConstantPoolLookups(t *testing.T) {
	data := newClassBytes(0, 52).
		u2(10).
		utf8("demo/Point").                                // 1
		class(1).                                          // 2
		utf8("x").                                         // 3
		utf8("I").                                         // 4
		u1(uint8(ConstantNameAndType)).u2(3).u2(4).        // 5
		u1(uint8(ConstantFieldref)).u2(2).u2(5).           // 6
		u1(uint8(ConstantMethodref)).u2(2).u2(5).          // 7
		u1(uint8(ConstantInterfaceMethodref)).u2(2).u2(5). // 8
		u1(uint8(ConstantString)).u2(3)                    // 9

	h, err := ParseHeader(data)
	if err != nil {
		t.Fatalf("ParseHeader() error = %v", err)
	}
	cp := h.ConstantPool

	if got := cp.ClassName(2); got != "demo/Point" {
		t.Errorf("ClassName(2) = %q", got)
	}
	if name, desc := cp.NameAndType(5); name != "x" || desc != "I" {
		t.Errorf("NameAndType(5) = %q, %q", name, desc)
	}
	if c, n, d := cp.Fieldref(6); c != "demo/Point" || n != "x" || d != "I" {
		t.Errorf("Fieldref(6) = %q, %q, %q", c, n, d)
	}
	if c, _, _ := cp.Methodref(7); c != "demo/Point" {
		t.Errorf("Methodref(7) class = %q", c)
	}
	if c, _, _ := cp.InterfaceMethodref(8); c != "demo/Point" {
		t.Errorf("InterfaceMethodref(8) class = %q", c)
	}
	if got := cp.String(9); got != "x" {
		t.Errorf("String(9) = %q", got)
	}

	// Wrong kind, index zero and out of range all yield zero values.
	if got := cp.Utf8(2); got != "" {
		t.Errorf("Utf8(2) = %q, want empty", got)
	}
	if cp.Entry(0) != nil || cp.Entry(10) != nil {
		t.Error("Entry(0) and Entry(10) should be nil")
	}
	if _, ok := cp.Integer(1); ok {
		t.Error("Integer(1) should not be ok")
	}
}

func TestAccessFlags(t *testing.T) {
	predicates := map[string]func(AccessFlags) bool{
		"public":     AccessFlags.IsPublic,
		"final":      AccessFlags.IsFinal,
		"super":      AccessFlags.IsSuper,
		"interface":  AccessFlags.IsInterface,
		"abstract":   AccessFlags.IsAbstract,
		"synthetic":  AccessFlags.IsSynthetic,
		"annotation": AccessFlags.IsAnnotation,
		"enum":       AccessFlags.IsEnum,
		"module":     AccessFlags.IsModule,
	}

	t.Run("public and final", func(t *testing.T) {
		flags := AccessFlags(0x0001 | 0x0010)
		for name, pred := range predicates {
			want := name == "public" || name == "final"
			if got := pred(flags); got != want {
				t.Errorf("%s = %v, want %v", name, got, want)
			}
		}
	})

	t.Run("each mask alone", func(t *testing.T) {
		for _, fn := range FlagNames {
			for name, pred := range predicates {
				if got := pred(fn.Mask); got != (name == fn.Name) {
					t.Errorf("mask %#04x: %s = %v", uint16(fn.Mask), name, got)
				}
			}
		}
	})

	t.Run("names", func(t *testing.T) {
		flags := AccPublic | AccInterface | AccAbstract | AccAnnotation
		want := []string{"public", "interface", "abstract", "annotation"}
		if got := flags.Names(); !reflect.DeepEqual(got, want) {
			t.Errorf("Names() = %v, want %v", got, want)
		}
		if got := flags.String(); got != "public,interface,abstract,annotation" {
			t.Errorf("String() = %q", got)
		}
	})
}

func TestClassKind(t *testing.T) {
	tests := []struct {
		flags AccessFlags
		want  string
	}{
		{AccPublic | AccSuper, "class"},
		{AccPublic | AccInterface | AccAbstract, "interface"},
		{AccPublic | AccInterface | AccAbstract | AccAnnotation, "annotation"},
		{AccPublic | AccFinal | AccSuper | AccEnum, "enum"},
		{AccModule, "module"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			cf := &ClassFile{AccessFlags: tt.flags}
			if got := cf.Kind(); got != tt.want {
				t.Errorf("Kind() = %q, want %q", got, tt.want)
			}
		})
	}
}

func FuzzParse(f *testing.F) {
	f.Add([]byte(sampleClass()))
	f.Add([]byte(newClassBytes(0, 10).u2(2).utf8("foo")))
	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, data []byte) {
		cf, err := Parse(data)
		if (cf == nil) == (err == nil) {
			t.Fatalf("Parse() = %v, %v: exactly one must be nil", cf, err)
		}
		if err != nil && !errors.Is(err, ErrOutOfBounds) && !errors.Is(err, ErrUnsupportedTag) {
			t.Fatalf("unexpected error kind: %v", err)
		}
	})
}
