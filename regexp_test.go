package regexputil

import (
	"testing"

	"github.com/dlclark/regexp2"
	"github.com/google/go-cmp/cmp"
)

func TestRegExpGlobalExecLoop(t *testing.T) {
	r := New()
	re := mustRegExp(t, r, "a", "g")
	s := NewString("aba")

	res, err := r.Exec(re, s, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res == Null() {
		t.Fatal("expected a match at index 0")
	}
	if li, _ := r.GetLastIndex(re); li.ToInteger() != 1 {
		t.Fatalf("expected lastIndex 1, got %v", li)
	}

	res, err = r.Exec(re, s, nil)
	if err != nil {
		t.Fatal(err)
	}
	index, _ := res.(Receiver).Get("index")
	if index.ToInteger() != 2 {
		t.Fatalf("expected the second match at index 2, got %v", index)
	}
	if li, _ := r.GetLastIndex(re); li.ToInteger() != 3 {
		t.Fatalf("expected lastIndex 3, got %v", li)
	}

	res, err = r.Exec(re, s, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res != Null() {
		t.Fatalf("expected null after the subject is exhausted, got %v", res)
	}
	if li, _ := r.GetLastIndex(re); li.ToInteger() != 0 {
		t.Fatalf("a failed global match must reset lastIndex to 0, got %v", li)
	}
}

func TestRegExpSticky(t *testing.T) {
	r := New()
	re := mustRegExp(t, r, "a", "y")
	s := NewString("ba")

	res, err := r.Exec(re, s, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res != Null() {
		t.Fatal("a sticky pattern must not match past lastIndex")
	}

	if _, err := r.SetLastIndex(re, 1); err != nil {
		t.Fatal(err)
	}
	res, err = r.Exec(re, s, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res == Null() {
		t.Fatal("expected a match anchored at index 1")
	}
	if li, _ := r.GetLastIndex(re); li.ToInteger() != 2 {
		t.Fatalf("expected lastIndex 2, got %v", li)
	}
}

func TestRegExpNonGlobalIgnoresLastIndex(t *testing.T) {
	r := New()
	re := mustRegExp(t, r, "a", "")
	if _, err := r.SetLastIndex(re, 99); err != nil {
		t.Fatal(err)
	}

	res, err := r.Exec(re, NewString("a"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if res == Null() {
		t.Fatal("a non-global, non-sticky pattern matches from index 0")
	}
	if li, _ := r.GetLastIndex(re); li.ToInteger() != 99 {
		t.Fatalf("lastIndex must be left untouched, got %v", li)
	}
}

func TestRegExpUnicodeFlag(t *testing.T) {
	r := New()
	re := mustRegExp(t, r, ".", "u")

	res, err := r.Exec(re, NewString("\U0001D306"), nil)
	if err != nil {
		t.Fatal(err)
	}
	whole, _ := res.(Receiver).Get("0")
	if s, ok := whole.(String); !ok || s.Length() != 2 {
		t.Fatalf("expected the full surrogate pair (2 code units), got %v", whole)
	}
}

func TestRegExpNamedGroups(t *testing.T) {
	r := New()
	re := mustRegExp(t, r, "(?<word>[a-z]+)", "")

	res, err := r.Exec(re, NewString("hey"), nil)
	if err != nil {
		t.Fatal(err)
	}
	groups, _ := res.(Receiver).Get("groups")
	gobj, ok := groups.(Receiver)
	if !ok {
		t.Fatalf("expected a groups object, got %v", groups)
	}
	word, _ := gobj.Get("word")
	if word.String() != "hey" {
		t.Fatalf("expected groups.word == \"hey\", got %q", word.String())
	}
}

func TestRegExpMatchInfoOverwrite(t *testing.T) {
	r := New()
	re := mustRegExp(t, r, "(a.)", "g")
	s := NewString("axay")

	if _, err := r.Exec(re, s, nil); err != nil {
		t.Fatal(err)
	}
	first, _ := r.LastMatchInfo().CaptureSubstring(1)
	if first.String() != "ax" {
		t.Fatalf("expected \"ax\", got %q", first.String())
	}

	if _, err := r.Exec(re, s, nil); err != nil {
		t.Fatal(err)
	}
	second, _ := r.LastMatchInfo().CaptureSubstring(1)
	if second.String() != "ay" {
		t.Fatalf("the shared buffer must hold the latest match, got %q", second.String())
	}
}

func TestRegExpFlagParsing(t *testing.T) {
	r := New()
	for _, flags := range []string{"gg", "ii", "x", "uv", "vu", "yy"} {
		if _, err := r.NewRegExp("a", flags); err == nil {
			t.Fatalf("flags %q must be rejected", flags)
		}
	}

	re := mustRegExp(t, r, "a", "yug")
	if re.String() != "/a/guy" {
		t.Fatalf("expected canonical flag order /a/guy, got %s", re.String())
	}
}

func TestRegExpFlagProperties(t *testing.T) {
	r := New()
	re := mustRegExp(t, r, "a", "gi")

	global, _ := re.Get("global")
	if !global.ToBoolean() {
		t.Fatal("expected global to be true")
	}
	sticky, _ := re.Get("sticky")
	if sticky.ToBoolean() {
		t.Fatal("expected sticky to be false")
	}
	source, _ := re.Get("source")
	if source.String() != "a" {
		t.Fatalf("unexpected source %q", source.String())
	}
	flags, _ := re.Get("flags")
	if flags.String() != "gi" {
		t.Fatalf("unexpected flags %q", flags.String())
	}
}

func TestRegExpFallbackRegexp2(t *testing.T) {
	re2, err := regexp2.Compile("(a)(b)?", regexp2.ECMAScript)
	if err != nil {
		t.Fatal(err)
	}
	p := &regexpPattern{src: NewString("(a)(b)?"), re2: re2}

	m := p.findStartingAt(NewString("xac"), 0, false)
	if m == nil {
		t.Fatal("expected a match")
	}
	if diff := cmp.Diff([]int{1, 2, 1, 2, -1, -1}, m.captures); diff != "" {
		t.Fatalf("capture offsets mismatch (-want +got):\n%s", diff)
	}

	if m := p.findStartingAt(NewString("xac"), 0, true); m != nil {
		t.Fatal("sticky must require a match anchored at the start offset")
	}
	if m := p.findStartingAt(NewString("xac"), 1, true); m == nil {
		t.Fatal("expected an anchored match at offset 1")
	}
}

func TestRegExpStandardFlagDemotion(t *testing.T) {
	r := New()

	re := mustRegExp(t, r, "a", "")
	if !re.standard {
		t.Fatal("a fresh instance is standard")
	}

	// Writing lastIndex is an ordinary mutation and keeps the fast path.
	if _, err := r.SetLastIndex(re, 3); err != nil {
		t.Fatal(err)
	}
	if !re.standard {
		t.Fatal("writing lastIndex must not demote the instance")
	}

	// Overriding exec demotes.
	if err := re.Set(propExec, IntValue(1)); err != nil {
		t.Fatal(err)
	}
	if re.standard {
		t.Fatal("overriding exec must demote the instance")
	}

	re = mustRegExp(t, r, "a", "")
	re.PreventExtensions()
	if re.standard {
		t.Fatal("preventing extensions must demote the instance")
	}
}
