// Package regexputil implements the ECMAScript RegExp execution protocol:
// the RegExpExec dispatch between user-supplied exec methods and the
// built-in matcher, lastIndex access with a fast path for unmodified
// built-in instances, IsRegExp classification, surrogate-pair-aware index
// advancement and accessors over the shared last-match buffer.
//
// Every property read and every call into an exec method may run arbitrary
// user code, which in turn may mutate the receiver, write lastIndex or
// trigger another built-in match that overwrites the shared buffer. No value
// read before such a call is assumed valid after it.
package regexputil

// Well-known property keys consulted by the protocol.
const (
	propExec      = "exec"
	propLastIndex = "lastIndex"

	// SymMatch is the key of the match-capability property (@@match). A
	// defined value stored here marks an arbitrary object as regex-like.
	SymMatch = "@@match"
)

// Runtime owns the protocol-level shared state: the last-match buffer,
// overwritten by every successful built-in match, and the canonical built-in
// exec function used for identity checks.
type Runtime struct {
	lastMatch   MatchInfo
	builtinExec *NativeFunction
}

func New() *Runtime {
	r := &Runtime{}
	r.builtinExec = NewNativeFunction("exec", func(call FunctionCall) (Value, error) {
		re, ok := call.This.(*RegExp)
		if !ok {
			return nil, &IncompatibleReceiverError{Method: "RegExp.prototype.exec", Receiver: call.This}
		}
		return re.exec(toStringValue(call.Argument(0)))
	})
	return r
}

// LastMatchInfo returns the shared last-match buffer. Its contents are only
// meaningful immediately after a successful built-in match and are
// overwritten by the next one.
func (r *Runtime) LastMatchInfo() *MatchInfo {
	return &r.lastMatch
}

// IsRegExp implements the IsRegExp abstract operation: primitives are not
// regex-like; unmodified built-in instances are, without any property
// lookup; anything else is classified by its match-capability property,
// falling back to a structural check when that property is absent. The
// lookup may run user code and its error propagates.
func (r *Runtime) IsRegExp(v Value) (bool, error) {
	recv, ok := v.(Receiver)
	if !ok {
		return false, nil
	}
	if re, ok := recv.(*RegExp); ok && re.standard {
		return true, nil
	}
	matcher, err := recv.Get(SymMatch)
	if err != nil {
		return false, err
	}
	if matcher != nil && matcher != _undefined {
		return matcher.ToBoolean(), nil
	}
	_, isBuiltin := recv.(*RegExp)
	return isBuiltin, nil
}

// GetLastIndex reads the receiver's lastIndex: directly from the internal
// slot for an unmodified built-in instance, through generic property access
// (which may run user code) for everything else. The classification is
// recomputed on every call; it is never cached.
func (r *Runtime) GetLastIndex(recv Receiver) (Value, error) {
	if re, ok := recv.(*RegExp); ok && re.standard {
		return re.lastIndex, nil
	}
	return recv.Get(propLastIndex)
}

// SetLastIndex writes the receiver's lastIndex. The generic path uses strict
// write semantics: a failed write is an error, never a silent drop.
func (r *Runtime) SetLastIndex(recv Receiver, value int64) (Value, error) {
	v := intToValue(value)
	if re, ok := recv.(*RegExp); ok && re.standard {
		re.lastIndex = v
		return v, nil
	}
	if err := recv.Set(propLastIndex, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Exec implements the RegExpExec abstract operation. execMethod may be nil
// or undefined when the caller has not already fetched the receiver's exec
// property; it is then looked up here. A callable exec is invoked with the
// receiver as this and must return an object or null; a non-callable exec
// demands that the receiver itself is structurally a built-in instance,
// which is then run through the built-in matcher.
func (r *Runtime) Exec(recv Receiver, s String, execMethod Value) (Value, error) {
	if execMethod == nil || execMethod == _undefined {
		var err error
		execMethod, err = recv.Get(propExec)
		if err != nil {
			return nil, err
		}
	}

	if fn, ok := AssertCallable(execMethod); ok {
		// Primary re-entry point: arbitrary user code runs here and may
		// mutate the receiver, lastIndex or the shared last-match buffer.
		res, err := fn.Call(FunctionCall{This: recv, Arguments: []Value{s}})
		if err != nil {
			return nil, err
		}
		if res == nil {
			return nil, &InvalidExecResultError{Result: res}
		}
		if res != _null {
			if _, ok := res.(Receiver); !ok {
				return nil, &InvalidExecResultError{Result: res}
			}
		}
		return res, nil
	}

	re, ok := recv.(*RegExp)
	if !ok {
		return nil, &IncompatibleReceiverError{Method: "RegExp.prototype.exec", Receiver: recv}
	}
	return re.exec(s)
}

// IsBuiltinExec reports whether v is this runtime's canonical built-in exec
// function. This is an identity check, not a structural one: a different
// function with identical behaviour does not qualify. Call sites use it to
// skip the generic dispatch when no override is present.
func (r *Runtime) IsBuiltinExec(v Value) bool {
	fn, ok := v.(*NativeFunction)
	return ok && fn == r.builtinExec
}

// AdvanceStringIndex returns how far a match position steps past the code
// unit at index: 2 when fullUnicode is set and a complete surrogate pair
// starts there, 1 in every other case (BMP unit, lone surrogate, lead
// surrogate at the end of the string, index at or past the end).
func AdvanceStringIndex(s String, index int64, fullUnicode bool) int64 {
	if !fullUnicode || index < 0 || index >= int64(s.Length()) {
		return 1
	}
	first := s.CharAt(int(index))
	if !isLeadSurrogate(first) || index+1 >= int64(s.Length()) {
		return 1
	}
	if !isTrailSurrogate(s.CharAt(int(index + 1))) {
		return 1
	}
	return 2
}

// SetAdvancedStringIndex reads the receiver's lastIndex, coerces it to a
// length, advances it by one code point and writes it back, returning the
// new value. The read and the write are separate property operations; a
// re-entrant lastIndex write in between is overwritten by the final write
// (last writer wins). Global and sticky match loops call this between
// successive Exec calls.
func (r *Runtime) SetAdvancedStringIndex(recv Receiver, s String, fullUnicode bool) (Value, error) {
	lastIndexValue, err := r.GetLastIndex(recv)
	if err != nil {
		return nil, err
	}
	lastIndex := toLength(lastIndexValue)
	return r.SetLastIndex(recv, lastIndex+AdvanceStringIndex(s, lastIndex, fullUnicode))
}

func toStringValue(v Value) String {
	if s, ok := v.(String); ok {
		return s
	}
	return NewString(v.String())
}
