package classfile

import (
	"encoding/binary"
	"fmt"
)

// ParseHeader decodes the version and the constant pool. The magic number
// is skipped, not checked; use CheckMagic for that.
func ParseHeader(data []byte) (*Header, error) {
	c := NewCursor(data)
	h, err := readHeader(c)
	if err != nil {
		return nil, err
	}
	return h, nil
}

// Parse decodes the header, constant pool, access flags, this and super
// class indices and the interface table. Anything after the interface
// table is ignored.
func Parse(data []byte) (*ClassFile, error) {
	c := NewCursor(data)
	h, err := readHeader(c)
	if err != nil {
		return nil, err
	}

	cf := &ClassFile{Header: *h}
	cf.AccessFlags = AccessFlags(c.ReadU2())
	cf.ThisClass = c.ReadU2()
	cf.SuperClass = c.ReadU2()

	interfacesCount := c.ReadU2()
	if c.Err() != nil {
		return nil, fmt.Errorf("failed to read class info: %w", c.Err())
	}

	cf.Interfaces = make([]uint16, interfacesCount)
	for i := range cf.Interfaces {
		cf.Interfaces[i] = c.ReadU2()
	}
	if c.Err() != nil {
		return nil, fmt.Errorf("failed to read interfaces: %w", c.Err())
	}

	return cf, nil
}

func readHeader(c *Cursor) (*Header, error) {
	c.Skip(4)
	if c.Err() != nil {
		return nil, fmt.Errorf("failed to read magic: %w", c.Err())
	}

	h := &Header{
		MinorVersion: c.ReadU2(),
		MajorVersion: c.ReadU2(),
	}
	if c.Err() != nil {
		return nil, fmt.Errorf("failed to read version: %w", c.Err())
	}

	pool, err := readConstantPool(c)
	if err != nil {
		return nil, err
	}
	h.ConstantPool = pool
	return h, nil
}

func readConstantPool(c *Cursor) (ConstantPool, error) {
	count := c.ReadU2()
	if c.Err() != nil {
		return nil, fmt.Errorf("failed to read constant pool count: %w", c.Err())
	}
	if count == 0 {
		return ConstantPool{}, nil
	}

	pool := make(ConstantPool, count-1)
	for i := uint16(1); i < count; i++ {
		entry, err := ReadConstant(c)
		if err != nil {
			return nil, fmt.Errorf("failed to read constant pool entry %d: %w", i, err)
		}
		pool[i-1] = entry
		if occupiesTwoSlots(entry) {
			// The next index is unusable and has no bytes of its own.
			i++
		}
	}
	return pool, nil
}

// CheckMagic reports whether data starts with 0xCAFEBABE.
func CheckMagic(data []byte) error {
	if len(data) < 4 {
		return fmt.Errorf("failed to read magic: %w", &OutOfBoundsError{Offset: 0, Want: 4, Len: len(data)})
	}
	if magic := binary.BigEndian.Uint32(data); magic != Magic {
		return fmt.Errorf("%w: 0x%X (expected 0xCAFEBABE)", ErrInvalidMagic, magic)
	}
	return nil
}
