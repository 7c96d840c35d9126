package walk

import "strings"

// Kind is the runtime category of a value as seen by a search.
type Kind int

const (
	Undefined Kind = iota
	Null
	Boolean
	Number
	String
	Function
	Array
	Object
)

var kindNames = [...]string{
	Undefined: "undefined",
	Null:      "null",
	Boolean:   "boolean",
	Number:    "number",
	String:    "string",
	Function:  "function",
	Array:     "array",
	Object:    "object",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "object"
	}
	return kindNames[k]
}

// ParseKind maps a case-insensitive kind name to a Kind.
func ParseKind(name string) (Kind, bool) {
	name = strings.ToLower(name)
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return Object, false
}
