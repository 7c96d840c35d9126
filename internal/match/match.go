// Package match builds the predicates behind the four search operations.
// Each constructor reports ok=false when its criterion has the wrong shape,
// in which case no search must be run.
package match

import (
	"reflect"
	"strings"

	"github.com/ohler55/ojg/jp"

	"github.com/maxw3st/spotlight/internal/walk"
)

// ByName matches slots whose key equals name. name must be a string.
func ByName(name any) (walk.Predicate, bool) {
	s, ok := name.(string)
	if !ok {
		return nil, false
	}
	return func(_ any, key string, _ any) bool {
		return key == s
	}, true
}

// ByKind matches slots by runtime kind. kind may be a kind or class name
// (compared case-insensitively), a reflect.Type, or a constructor func whose
// first result is the class.
func ByKind(kind any, host walk.Host) (walk.Predicate, bool) {
	switch k := kind.(type) {
	case string:
		want := strings.ToLower(k)
		return func(v any, _ string, _ any) bool {
			if host.Kind(v).String() == want {
				return true
			}
			class := host.ClassName(v)
			return class != "" && strings.ToLower(class) == want
		}, true
	case reflect.Type:
		if k == nil {
			return nil, false
		}
		return instanceOf(k, host), true
	}
	class, ok := constructorClass(kind)
	if !ok {
		return nil, false
	}
	return instanceOf(class, host), true
}

func instanceOf(class reflect.Type, host walk.Host) walk.Predicate {
	return func(v any, _ string, _ any) bool {
		return host.InstanceOf(v, class)
	}
}

func constructorClass(fn any) (reflect.Type, bool) {
	t := reflect.TypeOf(fn)
	if t == nil || t.Kind() != reflect.Func || t.NumOut() == 0 || reflect.ValueOf(fn).IsNil() {
		return nil, false
	}
	return t.Out(0), true
}

// ByValue matches slots holding exactly value: same dynamic type and equal,
// or the same reference for maps, slices and funcs. Any value is accepted.
func ByValue(value any) (walk.Predicate, bool) {
	return func(v any, _ string, _ any) bool {
		return Identical(v, value)
	}, true
}

// Identical is strict equality without coercion.
func Identical(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		return equal(a, b)
	}
	ia, oka := walk.ReflectHost{}.Identity(a)
	ib, okb := walk.ReflectHost{}.Identity(b)
	return oka && okb && ia == ib
}

// equal is == that treats the runtime panic raised by interface fields
// holding incomparable values as inequality.
func equal(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}

// Custom delegates to fn, which must be one of
// func(value any, key string, owner any) bool, func(value any, key string) bool
// or func(value any) bool.
func Custom(fn any) (walk.Predicate, bool) {
	switch f := fn.(type) {
	case func(any, string, any) bool:
		if f == nil {
			return nil, false
		}
		return f, true
	case func(any, string) bool:
		if f == nil {
			return nil, false
		}
		return func(v any, key string, _ any) bool { return f(v, key) }, true
	case func(any) bool:
		if f == nil {
			return nil, false
		}
		return func(v any, _ string, _ any) bool { return f(v) }, true
	}
	return nil, false
}

// Script compiles a JSONPath filter script such as
// `(@.key == 'c' && @.value > 10)` into a predicate. The script sees each
// slot as an object with `key` and `value` members. Surrounding parentheses
// are optional.
func Script(expr string) (walk.Predicate, error) {
	expr = strings.TrimSpace(expr)
	if !strings.HasPrefix(expr, "(") || !strings.HasSuffix(expr, ")") {
		expr = "(" + expr + ")"
	}
	script, err := jp.NewScript(expr)
	if err != nil {
		return nil, err
	}
	return func(v any, key string, _ any) bool {
		return script.Match(map[string]any{"key": key, "value": v})
	}, nil
}
