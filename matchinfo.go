package regexputil

// unmatchedCapture marks both offsets of a capture group that existed in the
// pattern but did not participate in the match.
const unmatchedCapture = -1

type captureStatus int

const (
	captureValid captureStatus = iota
	// captureOutOfRange: the requested group index does not exist in the
	// pattern.
	captureOutOfRange
	// captureUnmatched: the group exists but did not participate in this
	// match.
	captureUnmatched
)

// MatchInfo is the shared last-match buffer. A single instance per Runtime
// is overwritten by every successful built-in match, so callers must read it
// before triggering another match.
//
// captures holds 2n code unit offsets; the pair (captures[2i], captures[2i+1])
// is either a span within subject or (-1, -1). Pair 0 is the whole match.
type MatchInfo struct {
	subject  String
	input    Value
	captures []int
}

// CaptureCount returns the length of the flat offset array (twice the number
// of capture groups, whole match included).
func (m *MatchInfo) CaptureCount() int {
	return len(m.captures)
}

func (m *MatchInfo) Subject() String {
	return m.subject
}

// Input returns the original value the subject was derived from; it may
// differ from Subject.
func (m *MatchInfo) Input() Value {
	if m.input == nil {
		return _undefined
	}
	return m.input
}

// CaptureStart returns the start offset at the given (even) index into the
// flat offset array.
func (m *MatchInfo) CaptureStart(i int) int {
	return m.captures[i]
}

// CaptureEnd returns the end offset paired with CaptureStart(i).
func (m *MatchInfo) CaptureEnd(i int) int {
	return m.captures[i+1]
}

func (m *MatchInfo) captureSubstring(group int) (String, captureStatus) {
	index := group * 2
	if index >= m.CaptureCount() {
		return nil, captureOutOfRange
	}
	start := m.CaptureStart(index)
	end := m.CaptureEnd(index)
	if start == unmatchedCapture || end == unmatchedCapture {
		return nil, captureUnmatched
	}
	return m.subject.Substring(start, end), captureValid
}

// CaptureSubstring returns the text matched by the given capture group.
// ok is false both for a group index that does not exist and for a group
// that did not participate in the match; both render as the empty string.
func (m *MatchInfo) CaptureSubstring(group int) (String, bool) {
	s, status := m.captureSubstring(group)
	if status != captureValid {
		return nil, false
	}
	return s, true
}

// update is called by the built-in matcher on a successful match.
func (m *MatchInfo) update(subject String, input Value, captures []int) {
	m.subject = subject
	m.input = input
	m.captures = captures
}
