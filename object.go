package regexputil

import (
	"math"
)

// Receiver is the host object surface the protocol operates on. Get may run
// arbitrary user code (accessor properties); Set uses strict semantics, i.e.
// a write that cannot be performed fails instead of being silently dropped.
type Receiver interface {
	Value
	Get(name string) (Value, error)
	Set(name string, value Value) error
}

// Callable is a receiver that can be invoked.
type Callable interface {
	Receiver
	Call(call FunctionCall) (Value, error)
}

type FunctionCall struct {
	This      Value
	Arguments []Value
}

// Argument returns the idx'th argument, or undefined if it was not supplied.
func (f FunctionCall) Argument(idx int) Value {
	if idx < len(f.Arguments) {
		return f.Arguments[idx]
	}
	return _undefined
}

// AssertCallable checks whether the value can be invoked.
func AssertCallable(v Value) (Callable, bool) {
	c, ok := v.(Callable)
	return c, ok
}

type property struct {
	value    Value
	writable bool

	accessor bool
	getter   func() (Value, error)
	setter   func(Value) error
}

func (p *property) get() (Value, error) {
	if p.accessor {
		if p.getter == nil {
			return _undefined, nil
		}
		return p.getter()
	}
	return p.value, nil
}

func (p *property) set(name string, value Value) error {
	if p.accessor {
		if p.setter == nil {
			return &TypeError{msg: "Cannot set property " + name + " of object which has only a getter"}
		}
		return p.setter(value)
	}
	if !p.writable {
		return &TypeError{msg: "Cannot assign to read only property '" + name + "' of object"}
	}
	p.value = value
	return nil
}

// Object is a generic property-bag receiver: the "anything else" side of the
// protocol's fast-path/generic split.
type Object struct {
	props      map[string]*property
	extensible bool
}

func NewObject() *Object {
	return &Object{
		props:      make(map[string]*property),
		extensible: true,
	}
}

func (o *Object) Get(name string) (Value, error) {
	p := o.props[name]
	if p == nil {
		return _undefined, nil
	}
	return p.get()
}

func (o *Object) Set(name string, value Value) error {
	if p := o.props[name]; p != nil {
		return p.set(name, value)
	}
	if !o.extensible {
		return &TypeError{msg: "Cannot add property " + name + ", object is not extensible"}
	}
	o.props[name] = &property{value: value, writable: true}
	return nil
}

// DefineDataProperty creates or replaces a data property bypassing the
// strict-write checks.
func (o *Object) DefineDataProperty(name string, value Value, writable bool) {
	o.props[name] = &property{value: value, writable: writable}
}

// DefineAccessorProperty creates or replaces an accessor property. Either
// function may be nil.
func (o *Object) DefineAccessorProperty(name string, getter func() (Value, error), setter func(Value) error) {
	o.props[name] = &property{accessor: true, getter: getter, setter: setter}
}

func (o *Object) PreventExtensions() {
	o.extensible = false
}

func (o *Object) ToBoolean() bool {
	return true
}

func (o *Object) ToFloat() float64 {
	return math.NaN()
}

func (o *Object) ToInteger() int64 {
	return 0
}

func (o *Object) String() string {
	return "[object Object]"
}

func (o *Object) SameAs(other Value) bool {
	p, ok := other.(*Object)
	return ok && p == o
}

// NativeFunction is a callable receiver backed by a Go function.
type NativeFunction struct {
	Object
	name string
	fn   func(FunctionCall) (Value, error)
}

func NewNativeFunction(name string, fn func(FunctionCall) (Value, error)) *NativeFunction {
	return &NativeFunction{
		Object: Object{
			props:      make(map[string]*property),
			extensible: true,
		},
		name: name,
		fn:   fn,
	}
}

func (f *NativeFunction) Call(call FunctionCall) (Value, error) {
	return f.fn(call)
}

func (f *NativeFunction) String() string {
	return "function " + f.name + "() { [native code] }"
}

func (f *NativeFunction) SameAs(other Value) bool {
	o, ok := other.(*NativeFunction)
	return ok && o == f
}
