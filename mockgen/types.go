package mockgen

import "fmt"

var mockTypes = map[string]string{
	"String":     "anyString()",
	"Integer":    "anyInt()",
	"int":        "anyInt()",
	"Long":       "anyLong()",
	"long":       "anyLong()",
	"Double":     "anyDouble()",
	"double":     "anyDouble()",
	"Float":      "anyFloat()",
	"float":      "anyFloat()",
	"Boolean":    "anyBoolean()",
	"boolean":    "anyBoolean()",
	"Byte":       "anyByte()",
	"byte":       "anyByte()",
	"Char":       "anyChar()",
	"char":       "anyChar()",
	"List":       "anyList()",
	"Set":        "anySet()",
	"Map":        "anyMap()",
	"Collection": "anyCollection()",
}

var mockValues = map[string]string{
	"String":  `""`,
	"Integer": "0",
	"int":     "0",
	"Long":    "0L",
	"long":    "0L",
	"Double":  "0D",
	"double":  "0D",
	"Float":   "0F",
	"float":   "0F",
	"Boolean": "true",
	"boolean": "true",
	"Byte":    "(byte) 0",
	"byte":    "(byte) 0",
	"Char":    "'A'",
	"char":    "'A'",
	"List":    "new ArrayList<>()",
	"Set":     "new HashSet<>()",
	"Map":     "new HashMap<String, Object>()",
}

// ToMockType returns the argument matcher for a simple type name
func ToMockType(typeName string) string {
	if matcher, ok := mockTypes[typeName]; ok {
		return matcher
	}

	return fmt.Sprintf("any(%s.class)", typeName)
}

// ToMockValue returns a placeholder value expression for a simple type name
func ToMockValue(typeName string) string {
	if value, ok := mockValues[typeName]; ok {
		return value
	}

	return fmt.Sprintf("new %s()", typeName)
}
