package regexputil

import (
	"math"
	"strconv"
	"strings"
)

// maxLength is the upper bound of the ToLength coercion (2^53 - 1).
const maxLength = 1<<53 - 1

// Value is an ECMAScript language value as seen by this layer. Receivers
// (objects, functions, built-in regexps) additionally implement Receiver.
type Value interface {
	ToBoolean() bool
	ToFloat() float64
	ToInteger() int64
	String() string
	SameAs(Value) bool
}

type valueInt int64
type valueFloat float64
type valueBool bool
type valueNull struct{}
type valueUndefined struct {
	valueNull
}

var (
	valueTrue  Value = valueBool(true)
	valueFalse Value = valueBool(false)
	_null      Value = valueNull{}
	_undefined Value = valueUndefined{}
)

// Undefined returns the undefined value.
func Undefined() Value {
	return _undefined
}

// Null returns the null value.
func Null() Value {
	return _null
}

// IntValue wraps an integer as a Value.
func IntValue(i int64) Value {
	return valueInt(i)
}

// FloatValue wraps a float as a Value.
func FloatValue(f float64) Value {
	return valueFloat(f)
}

// BoolValue wraps a bool as a Value.
func BoolValue(b bool) Value {
	if b {
		return valueTrue
	}
	return valueFalse
}

func intToValue(i int64) Value {
	return valueInt(i)
}

func (i valueInt) ToBoolean() bool {
	return i != 0
}

func (i valueInt) ToFloat() float64 {
	return float64(i)
}

func (i valueInt) ToInteger() int64 {
	return int64(i)
}

func (i valueInt) String() string {
	return strconv.FormatInt(int64(i), 10)
}

func (i valueInt) SameAs(other Value) bool {
	o, ok := other.(valueInt)
	return ok && o == i
}

func (f valueFloat) ToBoolean() bool {
	return f != 0 && !math.IsNaN(float64(f))
}

func (f valueFloat) ToFloat() float64 {
	return float64(f)
}

func (f valueFloat) ToInteger() int64 {
	switch {
	case math.IsNaN(float64(f)):
		return 0
	case math.IsInf(float64(f), 1):
		return math.MaxInt64
	case math.IsInf(float64(f), -1):
		return math.MinInt64
	}
	return int64(f)
}

func (f valueFloat) String() string {
	return strconv.FormatFloat(float64(f), 'g', -1, 64)
}

func (f valueFloat) SameAs(other Value) bool {
	o, ok := other.(valueFloat)
	return ok && o == f
}

func (b valueBool) ToBoolean() bool {
	return bool(b)
}

func (b valueBool) ToFloat() float64 {
	if b {
		return 1
	}
	return 0
}

func (b valueBool) ToInteger() int64 {
	if b {
		return 1
	}
	return 0
}

func (b valueBool) String() string {
	if b {
		return "true"
	}
	return "false"
}

func (b valueBool) SameAs(other Value) bool {
	o, ok := other.(valueBool)
	return ok && o == b
}

func (n valueNull) ToBoolean() bool {
	return false
}

func (n valueNull) ToFloat() float64 {
	return 0
}

func (n valueNull) ToInteger() int64 {
	return 0
}

func (n valueNull) String() string {
	return "null"
}

func (n valueNull) SameAs(other Value) bool {
	_, ok := other.(valueNull)
	return ok
}

func (u valueUndefined) ToFloat() float64 {
	return math.NaN()
}

func (u valueUndefined) String() string {
	return "undefined"
}

func (u valueUndefined) SameAs(other Value) bool {
	_, ok := other.(valueUndefined)
	return ok
}

// ToLength coerces an arbitrary value to a non-negative integer within
// [0, 2^53-1]. NaN, negative and non-numeric values coerce to 0.
func ToLength(v Value) int64 {
	n := v.ToFloat()
	if math.IsNaN(n) || n <= 0 {
		return 0
	}
	if n >= maxLength {
		return maxLength
	}
	return int64(n)
}

func toLength(v Value) int64 {
	return ToLength(v)
}

func stringToFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		if n, err := strconv.ParseInt(s[2:], 16, 64); err == nil {
			return float64(n)
		}
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
