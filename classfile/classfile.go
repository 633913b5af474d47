// Package classfile decodes the leading part of a class file: the version,
// the constant pool, the access flags, the this/super class indices and
// the implemented interfaces. Fields, methods and attributes are not read.
package classfile

// Header is the part of a class file that precedes the access flags.
type Header struct {
	MinorVersion uint16
	MajorVersion uint16
	ConstantPool ConstantPool
}

type ClassFile struct {
	Header
	AccessFlags AccessFlags
	ThisClass   uint16
	// SuperClass is zero for a class without a superclass.
	SuperClass uint16
	Interfaces []uint16
}

// SuperClassIndex returns the superclass pool index and whether there is one.
func (cf *ClassFile) SuperClassIndex() (uint16, bool) {
	return cf.SuperClass, cf.SuperClass != 0
}

func (cf *ClassFile) ClassName() string {
	return cf.ConstantPool.ClassName(cf.ThisClass)
}

func (cf *ClassFile) SuperClassName() string {
	if cf.SuperClass == 0 {
		return ""
	}
	return cf.ConstantPool.ClassName(cf.SuperClass)
}

func (cf *ClassFile) InterfaceNames() []string {
	names := make([]string, len(cf.Interfaces))
	for i, idx := range cf.Interfaces {
		names[i] = cf.ConstantPool.ClassName(idx)
	}
	return names
}

func (cf *ClassFile) IsClass() bool {
	return !cf.AccessFlags.IsInterface() && !cf.AccessFlags.IsModule()
}

func (cf *ClassFile) IsInterface() bool {
	return cf.AccessFlags.IsInterface() && !cf.AccessFlags.IsAnnotation()
}

func (cf *ClassFile) IsAnnotation() bool {
	return cf.AccessFlags.IsAnnotation()
}

func (cf *ClassFile) IsEnum() bool {
	return cf.AccessFlags.IsEnum()
}

func (cf *ClassFile) IsModule() bool {
	return cf.AccessFlags.IsModule()
}

// Kind names what the class file declares: "annotation", "interface",
// "enum", "module" or "class".
func (cf *ClassFile) Kind() string {
	switch {
	case cf.IsAnnotation():
		return "annotation"
	case cf.IsInterface():
		return "interface"
	case cf.IsEnum():
		return "enum"
	case cf.IsModule():
		return "module"
	}
	return "class"
}
