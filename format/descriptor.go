package format

import "strings"

var baseTypes = map[byte]string{
	'B': "byte",
	'C': "char",
	'D': "double",
	'F': "float",
	'I': "int",
	'J': "long",
	'S': "short",
	'Z': "boolean",
}

// describeType renders a field or method descriptor the way it reads in
// source: "([Ljava/lang/String;)V" becomes "([]java.lang.String) void".
// Malformed descriptors come back unchanged.
func describeType(desc string) string {
	rest, isMethod := strings.CutPrefix(desc, "(")
	if !isMethod {
		t, tail, ok := fieldType(desc)
		if !ok || tail != "" {
			return desc
		}
		return t
	}

	var params []string
	for !strings.HasPrefix(rest, ")") {
		p, tail, ok := fieldType(rest)
		if !ok {
			return desc
		}
		params = append(params, p)
		rest = tail
	}
	rest = rest[1:]

	ret := "void"
	if rest != "V" {
		r, tail, ok := fieldType(rest)
		if !ok || tail != "" {
			return desc
		}
		ret = r
	}
	return "(" + strings.Join(params, ", ") + ") " + ret
}

// fieldType consumes one field type from the front of s.
func fieldType(s string) (typ, rest string, ok bool) {
	trimmed := strings.TrimLeft(s, "[")
	dims := strings.Repeat("[]", len(s)-len(trimmed))
	if trimmed == "" {
		return "", "", false
	}
	if name, found := baseTypes[trimmed[0]]; found {
		return dims + name, trimmed[1:], true
	}
	if trimmed[0] == 'L' {
		if name, tail, found := strings.Cut(trimmed[1:], ";"); found {
			return dims + sourceName(name), tail, true
		}
	}
	return "", "", false
}

// sourceName turns an internal class name like java/lang/String into its
// dotted form.
func sourceName(internal string) string {
	return strings.ReplaceAll(internal, "/", ".")
}
