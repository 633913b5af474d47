package classfile

import (
	"bytes"
	"fmt"
	"math"

	"golang.org/x/text/encoding/charmap"
)

type constantDecoder func(c *Cursor) (ConstantPoolEntry, error)

var constantDecoders = map[ConstantTag]constantDecoder{
	ConstantUtf8: decodeUtf8,
	ConstantInteger: func(c *Cursor) (ConstantPoolEntry, error) {
		return &ConstantIntegerInfo{Value: int32(c.ReadU4())}, nil
	},
	ConstantFloat: func(c *Cursor) (ConstantPoolEntry, error) {
		return &ConstantFloatInfo{Value: math.Float32frombits(c.ReadU4())}, nil
	},
	ConstantLong: func(c *Cursor) (ConstantPoolEntry, error) {
		return &ConstantLongInfo{Value: int64(c.ReadU8())}, nil
	},
	ConstantDouble: func(c *Cursor) (ConstantPoolEntry, error) {
		return &ConstantDoubleInfo{Value: math.Float64frombits(c.ReadU8())}, nil
	},
	ConstantClass: func(c *Cursor) (ConstantPoolEntry, error) {
		return &ConstantClassInfo{NameIndex: c.ReadU2()}, nil
	},
	ConstantString: func(c *Cursor) (ConstantPoolEntry, error) {
		return &ConstantStringInfo{StringIndex: c.ReadU2()}, nil
	},
	ConstantFieldref: func(c *Cursor) (ConstantPoolEntry, error) {
		classIndex := c.ReadU2()
		return &ConstantFieldrefInfo{ClassIndex: classIndex, NameAndTypeIndex: c.ReadU2()}, nil
	},
	ConstantMethodref: func(c *Cursor) (ConstantPoolEntry, error) {
		classIndex := c.ReadU2()
		return &ConstantMethodrefInfo{ClassIndex: classIndex, NameAndTypeIndex: c.ReadU2()}, nil
	},
	ConstantInterfaceMethodref: func(c *Cursor) (ConstantPoolEntry, error) {
		classIndex := c.ReadU2()
		return &ConstantInterfaceMethodrefInfo{ClassIndex: classIndex, NameAndTypeIndex: c.ReadU2()}, nil
	},
	ConstantNameAndType: func(c *Cursor) (ConstantPoolEntry, error) {
		nameIndex := c.ReadU2()
		return &ConstantNameAndTypeInfo{NameIndex: nameIndex, DescriptorIndex: c.ReadU2()}, nil
	},
}

func decodeUtf8(c *Cursor) (ConstantPoolEntry, error) {
	length := c.ReadU2()
	raw := c.ReadBytes(int(length))
	if c.Err() != nil {
		return nil, c.Err()
	}
	value, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, fmt.Errorf("decode utf8 constant: %w", err)
	}
	return &ConstantUtf8Info{Value: string(value), Raw: bytes.Clone(raw)}, nil
}

// DecodeConstant decodes the payload of one constant pool entry. The
// caller must already have consumed the tag byte from c, so the byte just
// before c.Pos() is taken as the tag's offset. On an unsupported tag the
// cursor is left one past the tag byte and UnsupportedTagError.Offset
// points at the tag itself.
func DecodeConstant(tag ConstantTag, c *Cursor) (ConstantPoolEntry, error) {
	return decodeConstant(tag, max(c.Pos()-1, 0), c)
}

// ReadConstant reads a tag byte followed by its payload. On an unsupported
// tag the tag byte stays consumed.
func ReadConstant(c *Cursor) (ConstantPoolEntry, error) {
	tagOffset := c.Pos()
	tag := ConstantTag(c.ReadU1())
	if c.Err() != nil {
		return nil, c.Err()
	}
	return decodeConstant(tag, tagOffset, c)
}

func decodeConstant(tag ConstantTag, tagOffset int, c *Cursor) (ConstantPoolEntry, error) {
	if c.Err() != nil {
		return nil, c.Err()
	}
	decode, ok := constantDecoders[tag]
	if !ok {
		return nil, &UnsupportedTagError{Tag: tag, Offset: tagOffset}
	}
	entry, err := decode(c)
	if err != nil {
		return nil, err
	}
	if c.Err() != nil {
		return nil, c.Err()
	}
	return entry, nil
}

// occupiesTwoSlots reports whether the entry reserves the pool index that
// follows it.
func occupiesTwoSlots(entry ConstantPoolEntry) bool {
	switch entry.(type) {
	case *ConstantLongInfo, *ConstantDoubleInfo:
		return true
	}
	return false
}
