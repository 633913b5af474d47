package classfile

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds    = errors.New("read past end of class file data")
	ErrUnsupportedTag = errors.New("unsupported constant pool tag")
	ErrInvalidMagic   = errors.New("invalid magic number")
)

// OutOfBoundsError is returned when a read needs more bytes than remain.
type OutOfBoundsError struct {
	Offset int // position the read started at
	Want   int // bytes requested
	Len    int // length of the buffer
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("read of %d bytes at offset %d exceeds buffer length %d", e.Want, e.Offset, e.Len)
}

func (e *OutOfBoundsError) Is(target error) bool { return target == ErrOutOfBounds }

// UnsupportedTagError is returned for a constant pool tag outside the
// recognized set. Offset is the position of the tag byte.
type UnsupportedTagError struct {
	Tag    ConstantTag
	Offset int
}

func (e *UnsupportedTagError) Error() string {
	return fmt.Sprintf("unsupported constant pool tag %d at offset %d", e.Tag, e.Offset)
}

func (e *UnsupportedTagError) Is(target error) bool { return target == ErrUnsupportedTag }
