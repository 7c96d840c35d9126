package walk

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/maxw3st/spotlight/api"
)

// Property is one own enumerable slot of a container.
type Property struct {
	Key   string
	Value any
}

// Identity distinguishes containers by reference rather than by value.
type Identity struct {
	typ reflect.Type
	ptr uintptr
	len int
	cap int
}

// Host answers the runtime questions a search asks about values.
type Host interface {
	// Kind classifies v.
	Kind(v any) Kind
	// ClassName is the name of v's type with pointers stripped, or "".
	ClassName(v any) string
	// IsContainer reports whether v has properties worth descending into.
	IsContainer(v any) bool
	// Properties lists the own enumerable properties of v in a stable order.
	Properties(v any) []Property
	// Identity returns the reference identity of v, if it has one.
	Identity(v any) (Identity, bool)
	// IsPrototype reports whether v is a constructor's prototype object.
	IsPrototype(v any) bool
	// InstanceOf reports whether v was produced by class.
	InstanceOf(v any, class reflect.Type) bool
}

// OrderedObject is the insertion-ordered container produced by loaders.
type OrderedObject = orderedmap.OrderedMap[string, any]

// NewOrderedObject returns an empty OrderedObject.
func NewOrderedObject() *OrderedObject {
	return orderedmap.New[string, any]()
}

var (
	orderedType   = reflect.TypeOf((*OrderedObject)(nil))
	undefinedType = reflect.TypeOf(api.Undefined)
)

// ReflectHost implements Host with package reflect.
//
// Maps enumerate in rendered-key order, ordered objects in insertion order,
// structs in declaration order and sequences by index. Struct fields must be
// exported and not tagged `json:"-"`; a `json` name overrides the field name.
// Fields promoted through embedding are not own properties, the embedded
// field itself is.
type ReflectHost struct{}

var _ Host = ReflectHost{}

func (ReflectHost) Kind(v any) Kind {
	if v == nil {
		return Null
	}
	return kindOf(reflect.ValueOf(v))
}

func kindOf(rv reflect.Value) Kind {
	switch rv.Kind() {
	case reflect.Invalid:
		return Null
	case reflect.Bool:
		return Boolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return Number
	case reflect.String:
		return String
	case reflect.Func:
		if rv.IsNil() {
			return Null
		}
		return Function
	case reflect.Slice:
		if rv.IsNil() {
			return Null
		}
		return Array
	case reflect.Array:
		return Array
	case reflect.Pointer:
		if rv.IsNil() {
			return Null
		}
		if rv.Type() == orderedType {
			return Object
		}
		// boxed scalars report the scalar's kind
		return kindOf(rv.Elem())
	case reflect.Interface:
		if rv.IsNil() {
			return Null
		}
		return kindOf(rv.Elem())
	case reflect.Map, reflect.Chan, reflect.UnsafePointer:
		if rv.IsNil() {
			return Null
		}
		return Object
	case reflect.Struct:
		if rv.Type() == undefinedType {
			return Undefined
		}
		return Object
	default:
		return Object
	}
}

func (ReflectHost) ClassName(v any) string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return t.Name()
}

func (ReflectHost) IsContainer(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := v.(*OrderedObject); ok {
		return true
	}
	rv, ok := indirect(reflect.ValueOf(v))
	if !ok {
		return false
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Slice:
		return !rv.IsNil()
	case reflect.Array:
		return true
	case reflect.Struct:
		return rv.Type() != undefinedType
	}
	return false
}

func (ReflectHost) Properties(v any) []Property {
	if om, ok := v.(*OrderedObject); ok {
		if om == nil {
			return nil
		}
		props := make([]Property, 0, om.Len())
		for pair := om.Oldest(); pair != nil; pair = pair.Next() {
			props = append(props, Property{Key: pair.Key, Value: pair.Value})
		}
		return props
	}

	rv, ok := indirect(reflect.ValueOf(v))
	if !ok {
		return nil
	}
	switch rv.Kind() {
	case reflect.Map:
		// keys that render alike (1 and "1" in a map[any]any) are ordered by
		// their dynamic type name; keys equal in both, such as two NaNs, keep
		// map iteration order
		type entry struct {
			prop Property
			typ  string
		}
		entries := make([]entry, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k := iter.Key().Interface()
			entries = append(entries, entry{
				prop: Property{Key: fmt.Sprint(k), Value: iter.Value().Interface()},
				typ:  fmt.Sprintf("%T", k),
			})
		}
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].prop.Key != entries[j].prop.Key {
				return entries[i].prop.Key < entries[j].prop.Key
			}
			return entries[i].typ < entries[j].typ
		})
		props := make([]Property, len(entries))
		for i, e := range entries {
			props[i] = e.prop
		}
		return props
	case reflect.Slice, reflect.Array:
		props := make([]Property, rv.Len())
		for i := range props {
			props[i] = Property{Key: strconv.Itoa(i), Value: rv.Index(i).Interface()}
		}
		return props
	case reflect.Struct:
		t := rv.Type()
		var props []Property
		for i := 0; i < t.NumField(); i++ {
			key, ok := fieldKey(t.Field(i))
			if !ok {
				continue
			}
			props = append(props, Property{Key: key, Value: rv.Field(i).Interface()})
		}
		return props
	}
	return nil
}

func fieldKey(f reflect.StructField) (string, bool) {
	if !f.IsExported() {
		return "", false
	}
	tag := f.Tag.Get("json")
	if tag == "-" {
		return "", false
	}
	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name, true
	}
	return f.Name, true
}

func (ReflectHost) Identity(v any) (Identity, bool) {
	if v == nil {
		return Identity{}, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		if rv.IsNil() {
			return Identity{}, false
		}
		return Identity{typ: rv.Type(), ptr: rv.Pointer()}, true
	case reflect.Slice:
		// zero-capacity slices may share a base address
		if rv.IsNil() || rv.Cap() == 0 {
			return Identity{}, false
		}
		return Identity{typ: rv.Type(), ptr: rv.Pointer(), len: rv.Len(), cap: rv.Cap()}, true
	}
	return Identity{}, false
}

func (ReflectHost) IsPrototype(v any) bool {
	_, ok := v.(api.Prototype)
	return ok
}

func (ReflectHost) InstanceOf(v any, class reflect.Type) bool {
	if v == nil || class == nil {
		return false
	}
	t := reflect.TypeOf(v)
	switch {
	case t == class:
		return true
	case class.Kind() == reflect.Interface:
		return t.Implements(class)
	case t.Kind() == reflect.Pointer && t.Elem() == class:
		return !reflect.ValueOf(v).IsNil()
	case class.Kind() == reflect.Pointer && class.Elem() == t:
		return true
	}
	return false
}

// indirect follows pointers and interfaces down to a concrete value.
func indirect(rv reflect.Value) (reflect.Value, bool) {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return rv, false
		}
		rv = rv.Elem()
	}
	return rv, rv.IsValid()
}
