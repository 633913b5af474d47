package format

import (
	"fmt"
	"strconv"

	"github.com/dhamidi/classpeek/classfile"
)

// constantView is the display form of one constant pool slot.
type constantView struct {
	Index    uint16
	Kind     string
	Value    string // literal value, empty for references
	Refs     []uint16
	Resolved string // what the references point at, when resolvable
}

func constantViews(cp classfile.ConstantPool) []constantView {
	views := make([]constantView, 0, len(cp))
	for i, entry := range cp {
		views = append(views, viewConstant(cp, uint16(i+1), entry))
	}
	return views
}

func viewConstant(cp classfile.ConstantPool, index uint16, entry classfile.ConstantPoolEntry) constantView {
	v := constantView{Index: index}
	switch e := entry.(type) {
	case nil:
		v.Kind = "Reserved"
	case *classfile.ConstantUtf8Info:
		v.Kind = e.Tag().String()
		v.Value = e.Value
	case *classfile.ConstantIntegerInfo:
		v.Kind = e.Tag().String()
		v.Value = strconv.FormatInt(int64(e.Value), 10)
	case *classfile.ConstantFloatInfo:
		v.Kind = e.Tag().String()
		v.Value = strconv.FormatFloat(float64(e.Value), 'g', -1, 32)
	case *classfile.ConstantLongInfo:
		v.Kind = e.Tag().String()
		v.Value = strconv.FormatInt(e.Value, 10)
	case *classfile.ConstantDoubleInfo:
		v.Kind = e.Tag().String()
		v.Value = strconv.FormatFloat(e.Value, 'g', -1, 64)
	case *classfile.ConstantClassInfo:
		v.Kind = e.Tag().String()
		v.Refs = []uint16{e.NameIndex}
		v.Resolved = sourceName(cp.Utf8(e.NameIndex))
	case *classfile.ConstantStringInfo:
		v.Kind = e.Tag().String()
		v.Refs = []uint16{e.StringIndex}
		v.Resolved = cp.Utf8(e.StringIndex)
	case *classfile.ConstantFieldrefInfo:
		v.Kind = e.Tag().String()
		v.Refs = []uint16{e.ClassIndex, e.NameAndTypeIndex}
		v.Resolved = memberRef(cp.Fieldref(index))
	case *classfile.ConstantMethodrefInfo:
		v.Kind = e.Tag().String()
		v.Refs = []uint16{e.ClassIndex, e.NameAndTypeIndex}
		v.Resolved = memberRef(cp.Methodref(index))
	case *classfile.ConstantInterfaceMethodrefInfo:
		v.Kind = e.Tag().String()
		v.Refs = []uint16{e.ClassIndex, e.NameAndTypeIndex}
		v.Resolved = memberRef(cp.InterfaceMethodref(index))
	case *classfile.ConstantNameAndTypeInfo:
		v.Kind = e.Tag().String()
		v.Refs = []uint16{e.NameIndex, e.DescriptorIndex}
		name, desc := cp.NameAndType(index)
		if name != "" || desc != "" {
			v.Resolved = fmt.Sprintf("%s: %s", name, describeType(desc))
		}
	}
	return v
}

func memberRef(className, name, descriptor string) string {
	if className == "" && name == "" {
		return ""
	}
	return fmt.Sprintf("%s.%s: %s", sourceName(className), name, describeType(descriptor))
}

func refsString(refs []uint16) string {
	s := ""
	for i, r := range refs {
		if i > 0 {
			s += ","
		}
		s += "#" + strconv.Itoa(int(r))
	}
	return s
}

// classRef resolves a class pool index for display.
func classRef(cp classfile.ConstantPool, index uint16) string {
	return sourceName(cp.ClassName(index))
}
