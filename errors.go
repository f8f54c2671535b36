package regexputil

import "fmt"

// TypeError is the failure mode of strict property writes and other host
// object violations.
type TypeError struct {
	msg string
}

func (e *TypeError) Error() string {
	return "TypeError: " + e.msg
}

// InvalidExecResultError reports an exec override that returned neither an
// object nor null.
type InvalidExecResultError struct {
	Result Value
}

func (e *InvalidExecResultError) Error() string {
	return "TypeError: RegExp exec method returned something other than an Object or null"
}

// IncompatibleReceiverError reports an operation applied to a receiver that
// is neither callable-dispatchable nor structurally a built-in regexp.
type IncompatibleReceiverError struct {
	Method   string
	Receiver Value
}

func (e *IncompatibleReceiverError) Error() string {
	recv := "undefined"
	if e.Receiver != nil {
		recv = e.Receiver.String()
	}
	return fmt.Sprintf("TypeError: Method %s called on incompatible receiver %s", e.Method, recv)
}
