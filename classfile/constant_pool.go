package classfile

// ConstantPoolEntry is one decoded constant pool slot. The set of
// implementations is closed: one type per supported ConstantTag.
type ConstantPoolEntry interface {
	Tag() ConstantTag
	isConstant()
}

// ConstantUtf8Info holds a length-prefixed string. Value maps every byte
// to the code point of the same number; Raw keeps the original bytes.
type ConstantUtf8Info struct {
	Value string
	Raw   []byte
}

func (c *ConstantUtf8Info) Tag() ConstantTag { return ConstantUtf8 }

// ModifiedUTF8 decodes Raw as modified UTF-8, combining surrogate pairs.
func (c *ConstantUtf8Info) ModifiedUTF8() string { return decodeModifiedUtf8(c.Raw) }

type ConstantIntegerInfo struct {
	Value int32
}

func (c *ConstantIntegerInfo) Tag() ConstantTag { return ConstantInteger }

type ConstantFloatInfo struct {
	Value float32
}

func (c *ConstantFloatInfo) Tag() ConstantTag { return ConstantFloat }

type ConstantLongInfo struct {
	Value int64
}

func (c *ConstantLongInfo) Tag() ConstantTag { return ConstantLong }

type ConstantDoubleInfo struct {
	Value float64
}

func (c *ConstantDoubleInfo) Tag() ConstantTag { return ConstantDouble }

type ConstantClassInfo struct {
	NameIndex uint16
}

func (c *ConstantClassInfo) Tag() ConstantTag { return ConstantClass }

type ConstantStringInfo struct {
	StringIndex uint16
}

func (c *ConstantStringInfo) Tag() ConstantTag { return ConstantString }

type ConstantFieldrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *ConstantFieldrefInfo) Tag() ConstantTag { return ConstantFieldref }

type ConstantMethodrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *ConstantMethodrefInfo) Tag() ConstantTag { return ConstantMethodref }

type ConstantInterfaceMethodrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *ConstantInterfaceMethodrefInfo) Tag() ConstantTag { return ConstantInterfaceMethodref }

type ConstantNameAndTypeInfo struct {
	NameIndex       uint16
	DescriptorIndex uint16
}

func (c *ConstantNameAndTypeInfo) Tag() ConstantTag { return ConstantNameAndType }

func (*ConstantUtf8Info) isConstant()               {}
func (*ConstantIntegerInfo) isConstant()            {}
func (*ConstantFloatInfo) isConstant()              {}
func (*ConstantLongInfo) isConstant()               {}
func (*ConstantDoubleInfo) isConstant()             {}
func (*ConstantClassInfo) isConstant()              {}
func (*ConstantStringInfo) isConstant()             {}
func (*ConstantFieldrefInfo) isConstant()           {}
func (*ConstantMethodrefInfo) isConstant()          {}
func (*ConstantInterfaceMethodrefInfo) isConstant() {}
func (*ConstantNameAndTypeInfo) isConstant()        {}

// ConstantPool holds the slots numbered 1..count-1; slot i lives at
// ConstantPool[i-1]. The slot after a Long or Double is nil.
type ConstantPool []ConstantPoolEntry

// Entry returns the entry at the 1-based index, or nil when the index is
// zero, out of range or a reserved slot.
func (cp ConstantPool) Entry(index uint16) ConstantPoolEntry {
	if index == 0 || int(index) > len(cp) {
		return nil
	}
	return cp[index-1]
}

func (cp ConstantPool) Utf8(index uint16) string {
	if entry, ok := cp.Entry(index).(*ConstantUtf8Info); ok {
		return entry.Value
	}
	return ""
}

func (cp ConstantPool) ClassName(index uint16) string {
	if entry, ok := cp.Entry(index).(*ConstantClassInfo); ok {
		return cp.Utf8(entry.NameIndex)
	}
	return ""
}

func (cp ConstantPool) NameAndType(index uint16) (name, descriptor string) {
	if entry, ok := cp.Entry(index).(*ConstantNameAndTypeInfo); ok {
		return cp.Utf8(entry.NameIndex), cp.Utf8(entry.DescriptorIndex)
	}
	return "", ""
}

func (cp ConstantPool) String(index uint16) string {
	if entry, ok := cp.Entry(index).(*ConstantStringInfo); ok {
		return cp.Utf8(entry.StringIndex)
	}
	return ""
}

func (cp ConstantPool) Integer(index uint16) (int32, bool) {
	if entry, ok := cp.Entry(index).(*ConstantIntegerInfo); ok {
		return entry.Value, true
	}
	return 0, false
}

func (cp ConstantPool) Long(index uint16) (int64, bool) {
	if entry, ok := cp.Entry(index).(*ConstantLongInfo); ok {
		return entry.Value, true
	}
	return 0, false
}

func (cp ConstantPool) Float(index uint16) (float32, bool) {
	if entry, ok := cp.Entry(index).(*ConstantFloatInfo); ok {
		return entry.Value, true
	}
	return 0, false
}

func (cp ConstantPool) Double(index uint16) (float64, bool) {
	if entry, ok := cp.Entry(index).(*ConstantDoubleInfo); ok {
		return entry.Value, true
	}
	return 0, false
}

func (cp ConstantPool) Fieldref(index uint16) (className, name, descriptor string) {
	if entry, ok := cp.Entry(index).(*ConstantFieldrefInfo); ok {
		return cp.memberRef(entry.ClassIndex, entry.NameAndTypeIndex)
	}
	return "", "", ""
}

func (cp ConstantPool) Methodref(index uint16) (className, name, descriptor string) {
	if entry, ok := cp.Entry(index).(*ConstantMethodrefInfo); ok {
		return cp.memberRef(entry.ClassIndex, entry.NameAndTypeIndex)
	}
	return "", "", ""
}

func (cp ConstantPool) InterfaceMethodref(index uint16) (className, name, descriptor string) {
	if entry, ok := cp.Entry(index).(*ConstantInterfaceMethodrefInfo); ok {
		return cp.memberRef(entry.ClassIndex, entry.NameAndTypeIndex)
	}
	return "", "", ""
}

func (cp ConstantPool) memberRef(classIndex, nameAndTypeIndex uint16) (className, name, descriptor string) {
	className = cp.ClassName(classIndex)
	name, descriptor = cp.NameAndType(nameAndTypeIndex)
	return
}

func decodeModifiedUtf8(bytes []byte) string {
	runes := make([]rune, 0, len(bytes))
	i := 0
	for i < len(bytes) {
		b := bytes[i]
		if b&0x80 == 0 {
			runes = append(runes, rune(b))
			i++
		} else if b&0xE0 == 0xC0 {
			if i+1 >= len(bytes) {
				break
			}
			runes = append(runes, rune(b&0x1F)<<6|rune(bytes[i+1]&0x3F))
			i += 2
		} else if b&0xF0 == 0xE0 {
			if i+2 >= len(bytes) {
				break
			}
			r := rune(b&0x0F)<<12 | rune(bytes[i+1]&0x3F)<<6 | rune(bytes[i+2]&0x3F)
			if r >= 0xD800 && r <= 0xDBFF && i+5 < len(bytes) && bytes[i+3] == 0xED {
				low := rune(bytes[i+3]&0x0F)<<12 | rune(bytes[i+4]&0x3F)<<6 | rune(bytes[i+5]&0x3F)
				if low >= 0xDC00 && low <= 0xDFFF {
					runes = append(runes, 0x10000+((r-0xD800)<<10)+(low-0xDC00))
					i += 6
					continue
				}
			}
			runes = append(runes, r)
			i += 3
		} else {
			runes = append(runes, rune(b))
			i++
		}
	}
	return string(runes)
}
