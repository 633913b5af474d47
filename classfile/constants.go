package classfile

import "strings"

const (
	Magic = 0xCAFEBABE
)

// AccessFlags is the access_flags word of a class or interface.
type AccessFlags uint16

const (
	AccPublic     AccessFlags = 0x0001
	AccFinal      AccessFlags = 0x0010
	AccSuper      AccessFlags = 0x0020
	AccInterface  AccessFlags = 0x0200
	AccAbstract   AccessFlags = 0x0400
	AccSynthetic  AccessFlags = 0x1000
	AccAnnotation AccessFlags = 0x2000
	AccEnum       AccessFlags = 0x4000
	AccModule     AccessFlags = 0x8000
)

func (f AccessFlags) has(mask AccessFlags) bool { return f&mask == mask }

func (f AccessFlags) IsPublic() bool     { return f.has(AccPublic) }
func (f AccessFlags) IsFinal() bool      { return f.has(AccFinal) }
func (f AccessFlags) IsSuper() bool      { return f.has(AccSuper) }
func (f AccessFlags) IsInterface() bool  { return f.has(AccInterface) }
func (f AccessFlags) IsAbstract() bool   { return f.has(AccAbstract) }
func (f AccessFlags) IsSynthetic() bool  { return f.has(AccSynthetic) }
func (f AccessFlags) IsAnnotation() bool { return f.has(AccAnnotation) }
func (f AccessFlags) IsEnum() bool       { return f.has(AccEnum) }
func (f AccessFlags) IsModule() bool     { return f.has(AccModule) }

// FlagNames lists every class access flag in mask order.
var FlagNames = []struct {
	Name string
	Mask AccessFlags
}{
	{"public", AccPublic},
	{"final", AccFinal},
	{"super", AccSuper},
	{"interface", AccInterface},
	{"abstract", AccAbstract},
	{"synthetic", AccSynthetic},
	{"annotation", AccAnnotation},
	{"enum", AccEnum},
	{"module", AccModule},
}

// Names returns the names of the flags that are set, in mask order.
func (f AccessFlags) Names() []string {
	var names []string
	for _, fn := range FlagNames {
		if f.has(fn.Mask) {
			names = append(names, fn.Name)
		}
	}
	return names
}

func (f AccessFlags) String() string {
	return strings.Join(f.Names(), ",")
}

type ConstantTag uint8

const (
	ConstantUtf8               ConstantTag = 1
	ConstantInteger            ConstantTag = 3
	ConstantFloat              ConstantTag = 4
	ConstantLong               ConstantTag = 5
	ConstantDouble             ConstantTag = 6
	ConstantClass              ConstantTag = 7
	ConstantString             ConstantTag = 8
	ConstantFieldref           ConstantTag = 9
	ConstantMethodref          ConstantTag = 10
	ConstantInterfaceMethodref ConstantTag = 11
	ConstantNameAndType        ConstantTag = 12
)

var tagNames = map[ConstantTag]string{
	ConstantUtf8:               "Utf8",
	ConstantInteger:            "Integer",
	ConstantFloat:              "Float",
	ConstantLong:               "Long",
	ConstantDouble:             "Double",
	ConstantClass:              "Class",
	ConstantString:             "String",
	ConstantFieldref:           "Fieldref",
	ConstantMethodref:          "Methodref",
	ConstantInterfaceMethodref: "InterfaceMethodref",
	ConstantNameAndType:        "NameAndType",
}

func (t ConstantTag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return "Unknown"
}
