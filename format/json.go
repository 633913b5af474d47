package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/classpeek/classfile"
)

type JSONEncoder struct {
	w     io.Writer
	class *classfile.ClassFile
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(cf *classfile.ClassFile) error {
	e.class = cf
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	text = append(text, '\n')
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data := e.buildClassData()
	return json.MarshalIndent(data, "", "  ")
}

type jsonClass struct {
	Version      jsonVersion    `json:"version"`
	AccessFlags  jsonFlags      `json:"accessFlags"`
	Kind         string         `json:"kind"`
	ThisClass    jsonClassRef   `json:"thisClass"`
	SuperClass   *jsonClassRef  `json:"superClass,omitempty"`
	Interfaces   []jsonClassRef `json:"interfaces"`
	ConstantPool []jsonConstant `json:"constantPool"`
}

type jsonVersion struct {
	Major uint16 `json:"major"`
	Minor uint16 `json:"minor"`
}

type jsonFlags struct {
	Value uint16   `json:"value"`
	Names []string `json:"names,omitempty"`
}

type jsonClassRef struct {
	Index uint16 `json:"index"`
	Name  string `json:"name,omitempty"`
}

type jsonConstant struct {
	Index    uint16   `json:"index"`
	Kind     string   `json:"kind"`
	Value    string   `json:"value,omitempty"`
	Refs     []uint16 `json:"refs,omitempty"`
	Resolved string   `json:"resolved,omitempty"`
}

func (e *JSONEncoder) buildClassData() jsonClass {
	c := e.class
	cp := c.ConstantPool
	data := jsonClass{
		Version:      jsonVersion{Major: c.MajorVersion, Minor: c.MinorVersion},
		AccessFlags:  jsonFlags{Value: uint16(c.AccessFlags), Names: c.AccessFlags.Names()},
		Kind:         c.Kind(),
		ThisClass:    jsonClassRef{Index: c.ThisClass, Name: classRef(cp, c.ThisClass)},
		Interfaces:   make([]jsonClassRef, 0, len(c.Interfaces)),
		ConstantPool: make([]jsonConstant, 0, len(cp)),
	}

	if idx, ok := c.SuperClassIndex(); ok {
		data.SuperClass = &jsonClassRef{Index: idx, Name: classRef(cp, idx)}
	}
	for _, idx := range c.Interfaces {
		data.Interfaces = append(data.Interfaces, jsonClassRef{Index: idx, Name: classRef(cp, idx)})
	}
	for _, v := range constantViews(cp) {
		data.ConstantPool = append(data.ConstantPool, jsonConstant(v))
	}

	return data
}
