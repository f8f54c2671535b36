package regexputil

import (
	"fmt"
	"math"
	"strconv"

	"github.com/auvred/regonaut"
	"github.com/dlclark/regexp2"
)

// regexpPattern is a compiled ECMAScript pattern. regonaut is the primary
// engine: it is UTF-16 native, so its offsets are code unit offsets already.
// Patterns it rejects are retried with regexp2 in ECMAScript mode, matching
// over code-unit-widened runes so offsets still map 1:1.
type regexpPattern struct {
	src String

	global, ignoreCase, multiline, dotAll, sticky, unicode, unicodeSets, hasIndices bool

	re  *regonaut.RegExpUtf16
	re2 *regexp2.Regexp
}

type namedGroup struct {
	name       string
	start, end int
}

type patternMatch struct {
	// captures is the flat (start, end) offset array; unmatched groups hold
	// the -1 sentinel in both slots.
	captures []int
	named    []namedGroup
}

func compilePattern(pattern, flags string) (*regexpPattern, error) {
	p := &regexpPattern{src: NewString(pattern)}

	invalidFlags := func() error {
		return fmt.Errorf("Invalid flags supplied to RegExp constructor '%s'", flags)
	}
	for _, chr := range flags {
		switch chr {
		case 'g':
			if p.global {
				return nil, invalidFlags()
			}
			p.global = true
		case 'i':
			if p.ignoreCase {
				return nil, invalidFlags()
			}
			p.ignoreCase = true
		case 'm':
			if p.multiline {
				return nil, invalidFlags()
			}
			p.multiline = true
		case 's':
			if p.dotAll {
				return nil, invalidFlags()
			}
			p.dotAll = true
		case 'u':
			if p.unicode || p.unicodeSets {
				return nil, invalidFlags()
			}
			p.unicode = true
		case 'v':
			if p.unicode || p.unicodeSets {
				return nil, invalidFlags()
			}
			p.unicodeSets = true
		case 'y':
			if p.sticky {
				return nil, invalidFlags()
			}
			p.sticky = true
		case 'd':
			if p.hasIndices {
				return nil, invalidFlags()
			}
			p.hasIndices = true
		default:
			return nil, invalidFlags()
		}
	}

	var rf regonaut.Flag
	if p.ignoreCase {
		rf |= regonaut.FlagIgnoreCase
	}
	if p.multiline {
		rf |= regonaut.FlagMultiline
	}
	if p.dotAll {
		rf |= regonaut.FlagDotAll
	}
	if p.unicode {
		rf |= regonaut.FlagUnicode
	}
	if p.unicodeSets {
		rf |= regonaut.FlagUnicodeSets
	}
	re, err := regonaut.CompileUtf16([]uint16(p.src), rf)
	if err == nil {
		p.re = re
		return p, nil
	}

	var opts regexp2.RegexOptions = regexp2.ECMAScript
	if p.multiline {
		opts |= regexp2.Multiline
	}
	if p.ignoreCase {
		opts |= regexp2.IgnoreCase
	}
	if p.dotAll {
		opts |= regexp2.Singleline
	}
	re2, err2 := regexp2.Compile(pattern, opts)
	if err2 != nil {
		return nil, fmt.Errorf("Invalid regular expression: %s (%v)", pattern, err)
	}
	p.re2 = re2
	return p, nil
}

// flagsString renders the flags in the canonical property order.
func (p *regexpPattern) flagsString() string {
	var b []byte
	if p.hasIndices {
		b = append(b, 'd')
	}
	if p.global {
		b = append(b, 'g')
	}
	if p.ignoreCase {
		b = append(b, 'i')
	}
	if p.multiline {
		b = append(b, 'm')
	}
	if p.dotAll {
		b = append(b, 's')
	}
	if p.unicode {
		b = append(b, 'u')
	}
	if p.unicodeSets {
		b = append(b, 'v')
	}
	if p.sticky {
		b = append(b, 'y')
	}
	return string(b)
}

func (p *regexpPattern) fullUnicode() bool {
	return p.unicode || p.unicodeSets
}

// findStartingAt runs the pattern against target beginning at the given code
// unit offset. Returns nil if there is no match (for sticky, no match
// anchored exactly at start).
func (p *regexpPattern) findStartingAt(target String, start int, sticky bool) *patternMatch {
	if p.re != nil {
		var m *regonaut.MatchUtf16
		if sticky {
			m = p.re.FindMatchStartingAtSticky([]uint16(target), start)
		} else {
			m = p.re.FindMatchStartingAt([]uint16(target), start)
		}
		if m == nil {
			return nil
		}
		res := &patternMatch{captures: make([]int, 0, len(m.Groups)*2)}
		for _, g := range m.Groups {
			if g.Start < 0 {
				res.captures = append(res.captures, unmatchedCapture, unmatchedCapture)
			} else {
				res.captures = append(res.captures, g.Start, g.End)
			}
		}
		for name, g := range m.NamedGroups {
			if g.Start < 0 {
				res.named = append(res.named, namedGroup{name: name, start: unmatchedCapture, end: unmatchedCapture})
			} else {
				res.named = append(res.named, namedGroup{name: name, start: g.Start, end: g.End})
			}
		}
		return res
	}
	return p.findRegexp2(target, start, sticky)
}

func (p *regexpPattern) findRegexp2(target String, start int, sticky bool) *patternMatch {
	m, err := p.re2.FindRunesMatchStartingAt(target.runes(), start)
	if err != nil || m == nil {
		return nil
	}
	if sticky && m.Index != start {
		return nil
	}
	groups := m.Groups()
	res := &patternMatch{captures: make([]int, 0, len(groups)*2)}
	for i, g := range groups {
		if len(g.Captures) == 0 {
			res.captures = append(res.captures, unmatchedCapture, unmatchedCapture)
		} else {
			res.captures = append(res.captures, g.Index, g.Index+g.Length)
		}
		if g.Name != strconv.Itoa(i) {
			ng := namedGroup{name: g.Name, start: unmatchedCapture, end: unmatchedCapture}
			if len(g.Captures) > 0 {
				ng.start = g.Index
				ng.end = g.Index + g.Length
			}
			res.named = append(res.named, ng)
		}
	}
	return res
}

// RegExp is the built-in regexp receiver. An instance starts out standard
// (unmodified); shape-changing mutations clear the flag and demote the
// instance to the generic protocol paths.
type RegExp struct {
	rt      *Runtime
	pattern *regexpPattern

	// lastIndex is the internal slot backing the lastIndex property.
	lastIndex Value

	props      map[string]*property
	extensible bool
	standard   bool
}

// NewRegExp compiles pattern with the given ECMAScript flags (digmsuvy) and
// returns a fresh built-in instance bound to this runtime.
func (r *Runtime) NewRegExp(pattern, flags string) (*RegExp, error) {
	p, err := compilePattern(pattern, flags)
	if err != nil {
		return nil, err
	}
	return &RegExp{
		rt:         r,
		pattern:    p,
		lastIndex:  intToValue(0),
		props:      make(map[string]*property),
		extensible: true,
		standard:   true,
	}, nil
}

func (re *RegExp) Get(name string) (Value, error) {
	if p := re.props[name]; p != nil {
		return p.get()
	}
	switch name {
	case propLastIndex:
		return re.lastIndex, nil
	case propExec:
		return re.rt.builtinExec, nil
	case "source":
		return re.pattern.src, nil
	case "flags":
		return NewString(re.pattern.flagsString()), nil
	case "global":
		return BoolValue(re.pattern.global), nil
	case "ignoreCase":
		return BoolValue(re.pattern.ignoreCase), nil
	case "multiline":
		return BoolValue(re.pattern.multiline), nil
	case "dotAll":
		return BoolValue(re.pattern.dotAll), nil
	case "sticky":
		return BoolValue(re.pattern.sticky), nil
	case "unicode":
		return BoolValue(re.pattern.unicode), nil
	case "unicodeSets":
		return BoolValue(re.pattern.unicodeSets), nil
	case "hasIndices":
		return BoolValue(re.pattern.hasIndices), nil
	}
	return _undefined, nil
}

func (re *RegExp) Set(name string, value Value) error {
	if p := re.props[name]; p != nil {
		return p.set(name, value)
	}
	if name == propLastIndex {
		re.lastIndex = value
		return nil
	}
	if !re.extensible {
		return &TypeError{msg: "Cannot add property " + name + ", object is not extensible"}
	}
	// Adding an own property changes the instance's shape.
	re.props[name] = &property{value: value, writable: true}
	re.standard = false
	return nil
}

// DefineDataProperty changes the instance's shape and therefore clears the
// standard flag.
func (re *RegExp) DefineDataProperty(name string, value Value, writable bool) {
	if name == propLastIndex && writable {
		re.lastIndex = value
		return
	}
	re.props[name] = &property{value: value, writable: writable}
	re.standard = false
}

// DefineAccessorProperty changes the instance's shape and therefore clears
// the standard flag.
func (re *RegExp) DefineAccessorProperty(name string, getter func() (Value, error), setter func(Value) error) {
	re.props[name] = &property{accessor: true, getter: getter, setter: setter}
	re.standard = false
}

func (re *RegExp) PreventExtensions() {
	re.extensible = false
	re.standard = false
}

// FullUnicode reports whether the pattern was compiled in full-Unicode mode
// (the u or v flag). Match loops pass it to AdvanceStringIndex and
// SetAdvancedStringIndex.
func (re *RegExp) FullUnicode() bool {
	return re.pattern.fullUnicode()
}

func (re *RegExp) ToBoolean() bool {
	return true
}

func (re *RegExp) ToFloat() float64 {
	return math.NaN()
}

func (re *RegExp) ToInteger() int64 {
	return 0
}

func (re *RegExp) String() string {
	return "/" + re.pattern.src.String() + "/" + re.pattern.flagsString()
}

func (re *RegExp) SameAs(other Value) bool {
	o, ok := other.(*RegExp)
	return ok && o == re
}

// exec implements the built-in RegExp.prototype.exec: runs the pattern from
// lastIndex according to the global/sticky rules, persists the new
// lastIndex, publishes the match into the runtime's shared last-match buffer
// and builds the result object. Returns null on no match.
func (re *RegExp) exec(target String) (Value, error) {
	globalOrSticky := re.pattern.global || re.pattern.sticky
	lastIndexValue, err := re.Get(propLastIndex)
	if err != nil {
		return nil, err
	}
	index := toLength(lastIndexValue)
	if !globalOrSticky {
		index = 0
	}

	var match *patternMatch
	if index <= int64(target.Length()) {
		match = re.pattern.findStartingAt(target, int(index), re.pattern.sticky)
	}

	if globalOrSticky {
		newIndex := int64(0)
		if match != nil {
			newIndex = int64(match.captures[1])
		}
		if err := re.Set(propLastIndex, intToValue(newIndex)); err != nil {
			return nil, err
		}
	}

	if match == nil {
		return _null, nil
	}

	re.rt.lastMatch.update(target, target, match.captures)
	return newExecResult(target, match), nil
}

func newExecResult(target String, match *patternMatch) *Object {
	result := NewObject()
	n := len(match.captures) / 2
	for i := 0; i < n; i++ {
		start := match.captures[2*i]
		name := strconv.Itoa(i)
		if start == unmatchedCapture {
			result.DefineDataProperty(name, _undefined, true)
		} else {
			result.DefineDataProperty(name, target.Substring(start, match.captures[2*i+1]), true)
		}
	}
	result.DefineDataProperty("length", intToValue(int64(n)), true)
	result.DefineDataProperty("index", intToValue(int64(match.captures[0])), true)
	result.DefineDataProperty("input", target, true)
	if len(match.named) > 0 {
		groups := NewObject()
		for _, g := range match.named {
			if g.start == unmatchedCapture {
				groups.DefineDataProperty(g.name, _undefined, true)
			} else {
				groups.DefineDataProperty(g.name, target.Substring(g.start, g.end), true)
			}
		}
		result.DefineDataProperty("groups", groups, true)
	} else {
		result.DefineDataProperty("groups", _undefined, true)
	}
	return result
}
