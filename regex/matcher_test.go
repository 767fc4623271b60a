package regex

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func mustCompile(t *testing.T, pat string) *Element {
	elem, err := Compile(pat)
	if err != nil {
		t.Fatalf("pattern %q failed to compile: %v", pat, err)
	}
	return elem
}

var matchCases = []struct {
	pattern string
	input   string
	length  int // -1 = no match
}{
	{"a|ab|abc", "abcd", 3},  // alternation explores every branch
	{"abc|ab|a", "abcd", 3},  // branch order is irrelevant for length
	{"[0-9]+", "12ab", 2},
	{"[0-9]+", "x12", -1},    // anchored at offset, no searching
	{"(ab)*a", "ababab", 5},  // repetition backs off to let the tail match
	{"[abc]*b", "aab", 3},    // concatenation explores split points
	{"a{2,3}", "aaaa", 3},
	{"a{2,3}", "a", -1},
	{"a{2,}", "aaaaa", 5},
	{"x{4}", "xxx", -1},
	{".", "\n", -1},          // wildcard stops at line terminators
	{"a?", "b", 0},           // empty match is a match of length 0
	{"(a?){2}x", "x", 1},     // optional sub-pattern counts toward the minimum
	{"(a?){2}x", "ax", 2},
	{"([0-9]?){4}", "12", 2}, // fewer digits than the bound still match
	{"(a*)*b", "aab", 3},     // nullable sub-pattern under unbounded repeat
	{"^ab", "ab", 2},
	{"ab$", "ab", 2},
	{"ab$", "abc", -1},
	{"\\d+(\\.\\d+)?", "3.14x", 4},
	{"\\d+(\\.\\d+)?", "3.x", 1}, // optional group backs out entirely
	{"\"[^\"\\n]*\"", `"hi" there`, 4},
}

func TestMatchLongest(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatica.regex")
	defer teardown()
	//
	for _, tc := range matchCases {
		m := NewMatcher(mustCompile(t, tc.pattern), NewStringReader(tc.input))
		length, err := m.Match()
		if err != nil {
			t.Errorf("/%s/ on %q: %v", tc.pattern, tc.input, err)
			continue
		}
		if length != tc.length {
			t.Errorf("/%s/ on %q: matched %d, want %d", tc.pattern, tc.input, length, tc.length)
		}
		t.Logf("/%-18s/ %-12q -> %d", tc.pattern, tc.input, length)
	}
}

func TestMatchFromOffset(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatica.regex")
	defer teardown()
	//
	m := NewMatcher(mustCompile(t, "[0-9]+"), NewStringReader("ab1234x"))
	length, err := m.MatchFrom(2)
	if err != nil {
		t.Fatal(err)
	}
	if length != 4 {
		t.Errorf("MatchFrom(2) = %d, want 4", length)
	}
	if m.Start() != 2 {
		t.Errorf("Start() = %d, want 2", m.Start())
	}
	if m.Length() != 4 {
		t.Errorf("Length() = %d, want 4", m.Length())
	}
}

func TestMatchIgnoreCase(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatica.regex")
	defer teardown()
	//
	elem := mustCompile(t, "keyword[a-z]*")
	m := NewMatcher(elem, NewStringReader("KeyWordED"))
	if length, _ := m.Match(); length != -1 {
		t.Errorf("case-sensitive match succeeded with length %d", length)
	}
	m.Reset(NewStringReader("KeyWordED"))
	m.SetIgnoreCase(true)
	length, err := m.Match()
	if err != nil {
		t.Fatal(err)
	}
	if length != 9 {
		t.Errorf("case-insensitive match = %d, want 9", length)
	}
}

func TestMatchReportsEndOfInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatica.regex")
	defer teardown()
	//
	m := NewMatcher(mustCompile(t, "[0-9]+"), NewStringReader("123"))
	if length, _ := m.Match(); length != 3 {
		t.Fatalf("match length is %d, want 3", length)
	}
	if !m.HasReadEOF() {
		t.Errorf("attempt ran to the end of input, HasReadEOF must be true")
	}
	m.Reset(NewStringReader("12a"))
	if length, _ := m.Match(); length != 2 {
		t.Fatalf("match length is %d, want 2", length)
	}
	if m.HasReadEOF() {
		t.Errorf("attempt stopped before the end of input, HasReadEOF must be false")
	}
}

func TestMatcherReset(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatica.regex")
	defer teardown()
	//
	m := NewMatcher(mustCompile(t, "ab+"), NewStringReader("abbb"))
	if length, _ := m.Match(); length != 4 {
		t.Fatalf("first attempt = %d, want 4", length)
	}
	m.Reset(NewStringReader("ab"))
	if length, _ := m.Match(); length != 2 {
		t.Errorf("after Reset = %d, want 2", length)
	}
	if m.HasReadEOF() != true {
		t.Errorf("flag must reflect the attempt after Reset")
	}
}
