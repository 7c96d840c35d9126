package api

// SearchOptions selects where a search starts and how hits are labelled.
type SearchOptions struct {
	// Object is the root container. Nil means the finder's global root.
	Object any `json:"-"`
	// Path is the label prepended to every hit. Nil means the default
	// label; a pointer to "" yields bare keys.
	Path *string `json:"path,omitempty"`
}

// Label returns a pointer to s for use as SearchOptions.Path.
func Label(s string) *string {
	return &s
}

// Predicate reports whether the slot key of owner, holding value, is a hit.
type Predicate = func(value any, key string, owner any) bool

// Match is a single hit found during a search.
type Match struct {
	// Path is the rendered location, e.g. `window.a.b["x y"]`.
	Path string `json:"path"`
	// Summary is the type tag, e.g. "(number)", or "(<window.a>)" when the
	// value is a container already on the descent path.
	Summary string `json:"summary"`
	Key     string `json:"key"`
	Value   any    `json:"-"`
	Owner   any    `json:"-"`
}

// Args returns the arguments a custom predicate received for this slot.
func (m Match) Args() []any {
	return []any{m.Value, m.Key, m.Owner}
}

func (m Match) String() string {
	return m.Path + " -> " + m.Summary
}

// Lines renders every match with String.
func Lines(matches []Match) []string {
	if matches == nil {
		return nil
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.String()
	}
	return out
}

type undefined struct{}

func (undefined) String() string { return "undefined" }

// Undefined marks a slot that exists but holds no value. It is reported as
// kind "undefined", distinct from nil which is "null".
var Undefined any = undefined{}

// Prototype is implemented by containers that act as the shared prototype
// of a constructor. Their "constructor" property is never reported.
type Prototype interface {
	PrototypeOf() any
}
