package walk

// Tag renders the type tag of a kind, e.g. "(number)".
func Tag(k Kind) string {
	return "(" + k.String() + ")"
}

// Circular renders the marker for a back-reference to the container at
// ancestorPath.
func Circular(ancestorPath string) string {
	return "(<" + ancestorPath + ">)"
}
