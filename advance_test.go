package regexputil

import (
	"testing"
)

func TestAdvanceStringIndexNonUnicode(t *testing.T) {
	s := NewString("a\U0001D306b")
	for i := int64(-1); i <= int64(s.Length())+1; i++ {
		if inc := AdvanceStringIndex(s, i, false); inc != 1 {
			t.Fatalf("index %d: expected increment 1, got %d", i, inc)
		}
	}
}

func TestAdvanceStringIndexSurrogatePair(t *testing.T) {
	// "a𝌆b": code units [0x61, 0xD834, 0xDF06, 0x62]
	s := NewString("a\U0001D306b")
	if s.Length() != 4 {
		t.Fatalf("unexpected length %d", s.Length())
	}

	if inc := AdvanceStringIndex(s, 0, true); inc != 1 {
		t.Fatalf("BMP unit: expected 1, got %d", inc)
	}
	if inc := AdvanceStringIndex(s, 1, true); inc != 2 {
		t.Fatalf("surrogate pair: expected 2, got %d", inc)
	}
	if inc := AdvanceStringIndex(s, 2, true); inc != 1 {
		t.Fatalf("trail surrogate: expected 1, got %d", inc)
	}
	if inc := AdvanceStringIndex(s, 3, true); inc != 1 {
		t.Fatalf("final BMP unit: expected 1, got %d", inc)
	}
	if inc := AdvanceStringIndex(s, 4, true); inc != 1 {
		t.Fatalf("end of string: expected 1, got %d", inc)
	}
	if inc := AdvanceStringIndex(s, 100, true); inc != 1 {
		t.Fatalf("past the end: expected 1, got %d", inc)
	}
}

func TestAdvanceStringIndexLoneSurrogates(t *testing.T) {
	if inc := AdvanceStringIndex(String{surrLeadFirst}, 0, true); inc != 1 {
		t.Fatalf("lead surrogate at end of string: expected 1, got %d", inc)
	}
	if inc := AdvanceStringIndex(String{surrLeadFirst, 'a'}, 0, true); inc != 1 {
		t.Fatalf("lead surrogate not followed by trail: expected 1, got %d", inc)
	}
	if inc := AdvanceStringIndex(String{surrTrailFirst, surrTrailFirst}, 0, true); inc != 1 {
		t.Fatalf("trail surrogate first: expected 1, got %d", inc)
	}
	if inc := AdvanceStringIndex(String{surrLeadLast, surrTrailLast}, 0, true); inc != 2 {
		t.Fatalf("pair at range boundaries: expected 2, got %d", inc)
	}
}

func TestAdvanceStringIndexEmptyString(t *testing.T) {
	if inc := AdvanceStringIndex(nil, 0, true); inc != 1 {
		t.Fatalf("empty string: expected 1, got %d", inc)
	}
}
