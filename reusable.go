package gentools

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"unicode"
	"unicode/utf8"
)

// BindingError reports arguments that do not satisfy the wrapped
// function's declared parameters: an unknown name, a name bound
// twice, or a value that cannot be assigned to the parameter. It is
// always raised at construction or Replace time, never during
// iteration.
type BindingError struct {
	Func   string
	Param  string
	Reason string
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("gentools: %s: parameter %q: %s", e.Func, e.Param, e.Reason)
}

// Binding names a single argument value for Named and Replace.
type Binding struct {
	Name  string
	Value any
}

// Bind pairs a parameter name with a value.
func Bind(name string, value any) Binding {
	return Binding{Name: name, Value: value}
}

// paramField describes one declared parameter of a wrapped generator
// function: its name, its position in the parameter struct, and its
// type. The list is built once per wrapped function.
type paramField struct {
	name  string
	index int
	typ   reflect.Type
}

// ReusableFunc is a reusable constructor for a generator function.
// The exported fields of the parameter struct P are the declared
// parameters, in field order; a `gen:"name"` tag overrides the name
// derived from the field, and `gen:"-"` hides a field.
type ReusableFunc[P, Y, S, R any] struct {
	fn     func(P) Generator[Y, S, R]
	name   string
	params []paramField
}

// Reusable wraps a generator function into a reusable constructor.
// Instances built from it can be iterated any number of times; each
// iteration calls fn again with the bound parameters, so iterations
// are independent of each other.
func Reusable[P, Y, S, R any](fn func(P) Generator[Y, S, R]) *ReusableFunc[P, Y, S, R] {
	return newReusable(fn, funcName(reflect.ValueOf(fn)))
}

func newReusable[P, Y, S, R any](fn func(P) Generator[Y, S, R], name string) *ReusableFunc[P, Y, S, R] {
	t := reflect.TypeOf((*P)(nil)).Elem()
	if t.Kind() != reflect.Struct {
		panic(fmt.Sprintf("gentools: parameter type %s is not a struct", t))
	}
	var params []paramField
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		pname := paramName(f)
		if pname == "-" {
			continue
		}
		params = append(params, paramField{name: pname, index: i, typ: f.Type})
	}
	return &ReusableFunc[P, Y, S, R]{fn: fn, name: name, params: params}
}

func paramName(f reflect.StructField) string {
	if tag, ok := f.Tag.Lookup("gen"); ok && tag != "" {
		return tag
	}
	r, size := utf8.DecodeRuneInString(f.Name)
	return string(unicode.ToLower(r)) + f.Name[size:]
}

func funcName(v reflect.Value) string {
	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return "generator"
	}
	name := f.Name()
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, "-fm")
}

// New binds the full parameter struct. This is the free-call entry
// point; binding by struct is total, so it cannot fail.
func (f *ReusableFunc[P, Y, S, R]) New(params P) *ReusableGen[P, Y, S, R] {
	return &ReusableGen[P, Y, S, R]{fn: f, params: params}
}

// Named binds parameters by name. Omitted parameters keep their zero
// values, the way omitted struct-literal fields do. An unknown name,
// a duplicate name, or an unassignable value is a *BindingError, and
// no generator is constructed.
func (f *ReusableFunc[P, Y, S, R]) Named(bindings ...Binding) (*ReusableGen[P, Y, S, R], error) {
	var params P
	if err := f.apply(&params, bindings); err != nil {
		return nil, err
	}
	return f.New(params), nil
}

// Name reports the wrapped function's name.
func (f *ReusableFunc[P, Y, S, R]) Name() string {
	return f.name
}

func (f *ReusableFunc[P, Y, S, R]) apply(params *P, bindings []Binding) error {
	pv := reflect.ValueOf(params).Elem()
	seen := make(map[string]bool, len(bindings))
	for _, b := range bindings {
		field, ok := f.lookup(b.Name)
		if !ok {
			return &BindingError{Func: f.name, Param: b.Name, Reason: "unknown parameter"}
		}
		if seen[b.Name] {
			return &BindingError{Func: f.name, Param: b.Name, Reason: "bound twice"}
		}
		seen[b.Name] = true
		dst := pv.Field(field.index)
		if b.Value == nil {
			dst.Set(reflect.Zero(field.typ))
			continue
		}
		v := reflect.ValueOf(b.Value)
		if !v.Type().AssignableTo(field.typ) {
			return &BindingError{Func: f.name, Param: b.Name,
				Reason: fmt.Sprintf("cannot assign %s to %s", v.Type(), field.typ)}
		}
		dst.Set(v)
	}
	return nil
}

func (f *ReusableFunc[P, Y, S, R]) lookup(name string) (paramField, bool) {
	for _, p := range f.params {
		if p.name == name {
			return p, true
		}
	}
	return paramField{}, false
}

// ReusableGen is one call of a reusable generator function: the
// function plus its bound parameters, and no iteration state of its
// own.
type ReusableGen[P, Y, S, R any] struct {
	fn     *ReusableFunc[P, Y, S, R]
	params P
}

// Iter starts a brand-new generator from the bound parameters. Each
// call is independent; no iteration affects a later one.
func (g *ReusableGen[P, Y, S, R]) Iter() Generator[Y, S, R] {
	return g.fn.fn(g.params)
}

// Params returns a copy of the bound parameter struct.
func (g *ReusableGen[P, Y, S, R]) Params() P {
	return g.params
}

// Arg returns the bound value of the named parameter.
func (g *ReusableGen[P, Y, S, R]) Arg(name string) (any, error) {
	field, ok := g.fn.lookup(name)
	if !ok {
		return nil, &BindingError{Func: g.fn.name, Param: name, Reason: "unknown parameter"}
	}
	return reflect.ValueOf(g.params).Field(field.index).Interface(), nil
}

// Replace returns a copy with the named parameters substituted and
// all others carried over. The receiver is left untouched.
func (g *ReusableGen[P, Y, S, R]) Replace(overrides ...Binding) (*ReusableGen[P, Y, S, R], error) {
	params := g.params
	if err := g.fn.apply(&params, overrides); err != nil {
		return nil, err
	}
	return &ReusableGen[P, Y, S, R]{fn: g.fn, params: params}, nil
}

// Equal reports whether both instances bind equal parameter values.
func (g *ReusableGen[P, Y, S, R]) Equal(other *ReusableGen[P, Y, S, R]) bool {
	if other == nil {
		return false
	}
	return reflect.DeepEqual(g.params, other.params)
}

// String renders the wrapped function's name followed by every bound
// parameter as name=value pairs, in declared-parameter order.
func (g *ReusableGen[P, Y, S, R]) String() string {
	var sb strings.Builder
	sb.WriteString(g.fn.name)
	sb.WriteByte('(')
	pv := reflect.ValueOf(g.params)
	for i, p := range g.fn.params {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s=%v", p.name, pv.Field(p.index).Interface())
	}
	sb.WriteByte(')')
	return sb.String()
}

// ReusableMethodFunc is the method-shaped counterpart of
// ReusableFunc: the wrapped function takes an explicit receiver
// before its parameters.
type ReusableMethodFunc[T, P, Y, S, R any] struct {
	fn   func(T, P) Generator[Y, S, R]
	name string
}

// ReusableMethod wraps a method-shaped generator function. Bind fixes
// the receiver; Call invokes free-function style with the receiver
// passed explicitly.
func ReusableMethod[T, P, Y, S, R any](fn func(T, P) Generator[Y, S, R]) *ReusableMethodFunc[T, P, Y, S, R] {
	return &ReusableMethodFunc[T, P, Y, S, R]{fn: fn, name: funcName(reflect.ValueOf(fn))}
}

// Bind fixes the receiver, producing an instance-bound constructor.
func (m *ReusableMethodFunc[T, P, Y, S, R]) Bind(recv T) *ReusableFunc[P, Y, S, R] {
	return newReusable(func(p P) Generator[Y, S, R] {
		return m.fn(recv, p)
	}, m.name)
}

// Call is the free-call entry point: receiver and parameters together.
func (m *ReusableMethodFunc[T, P, Y, S, R]) Call(recv T, params P) *ReusableGen[P, Y, S, R] {
	return m.Bind(recv).New(params)
}
