package kotlin

// typeConversions renames Swift standard types to their Kotlin names.
var typeConversions = map[string]string{
	"Bool":       "Boolean",
	"Character":  "Char",
	"AnyObject":  "Any",
	"Void":       "Unit",
	"Int64":      "Long",
	"Int32":      "Int",
	"Int16":      "Short",
	"Int8":       "Byte",
	"UInt64":     "ULong",
	"UInt32":     "UInt",
	"UInt16":     "UShort",
	"UInt8":      "UByte",
	"UInt":       "UInt",
	"Float32":    "Float",
	"Float64":    "Double",
	"CGFloat":    "Double",
	"NSInteger":  "Int",
	"Error":      "Throwable",
	"Set":        "MutableSet",
	"Array":      "MutableList",
	"Dictionary": "MutableMap",
}

func defaultTypeMap() map[string]string {
	m := make(map[string]string, len(typeConversions))
	for k, v := range typeConversions {
		m[k] = v
	}
	return m
}

// typeName converts a Swift type name to Kotlin.
func (t *Translator) typeName(name string) string {
	if k, ok := t.types[name]; ok {
		return k
	}
	return name
}

// kotlinReserved are valid Swift identifiers that Kotlin reserves.
var kotlinReserved = map[string]bool{
	"fun": true, "interface": true, "object": true, "package": true,
	"typeof": true, "val": true, "when": true,
}

// identName escapes Swift identifiers that collide with Kotlin keywords.
func identName(name string) string {
	if kotlinReserved[name] {
		return "`" + name + "`"
	}
	return name
}
