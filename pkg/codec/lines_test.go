package codec

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNextNonBlankLine(t *testing.T) {
	lines := []string{"", "  ", " first ", "", "\tsecond"}
	line, pos, ok := nextNonBlankLine(lines, 0)
	if !ok || line != "first" || pos != 3 {
		t.Fatalf("got %q %d %t", line, pos, ok)
	}
	if line, pos, ok = nextNonBlankLine(lines, pos); !ok || line != "second" || pos != 5 {
		t.Fatalf("got %q %d %t", line, pos, ok)
	}
	if _, _, ok = nextNonBlankLine(lines, pos); ok {
		t.Fatal("should have run off the end")
	}
}

func TestCountNonBlank(t *testing.T) {
	lines := []string{"", "  ", " first ", "", "\tsecond"}
	for pos, want := range []int{2, 2, 2, 1, 1, 0} {
		if n := countNonBlank(lines, pos); n != want {
			t.Errorf("from %d got %d want %d", pos, n, want)
		}
	}
}

func TestSplitOnDelimiters(t *testing.T) {
	for _, tc := range []struct {
		s, delims string
		want      []string
	}{
		{"a b\tc", delimiters, []string{"a", "b", "c"}},
		{"  a,,b:c ", othDelimiters, []string{"a", "b", "c"}},
		{"a;b\tc", oth2Delimiters, []string{"a", "b\tc"}},
		{"", delimiters, []string{}},
		{" , ", othDelimiters, []string{}},
	} {
		got := splitOnDelimiters(tc.s, tc.delims)
		if diff := cmp.Diff(tc.want, got, cmpEmpty); diff != "" {
			t.Errorf("%q (-want +got):\n%s", tc.s, diff)
		}
	}
}

// cmpEmpty lets a nil slice equal an empty one.
var cmpEmpty = cmp.Comparer(func(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
})

func TestSplitLines(t *testing.T) {
	got := splitLines([]byte("a\r\nb\n\nc\n"))
	if diff := cmp.Diff([]string{"a", "b", "", "c"}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestViewLines(t *testing.T) {
	r := strings.NewReader("one\n\ntwo\nthree\n")
	r.Seek(5, 0)
	if got := viewLines(r, 2); len(got) != 2 || got[0] != "one" {
		t.Errorf("viewLines did not start at the top, got %q", got)
	}
	if got := nonBlankLines(r, 2); len(got) != 2 || got[1] != "two" {
		t.Errorf("nonBlankLines got %q", got)
	}
	if got, ok := firstLine(strings.NewReader("\n \n x y\n")); !ok || got != "x y" {
		t.Errorf("firstLine got %q %t", got, ok)
	}
}

func TestAtoiPrefix(t *testing.T) {
	for _, tc := range []struct {
		s    string
		want int
	}{{"12", 12}, {"12abc", 12}, {"abc", 0}, {"", 0}, {"007", 7}} {
		if got := atoiPrefix(tc.s); got != tc.want {
			t.Errorf("atoiPrefix(%q) = %d, want %d", tc.s, got, tc.want)
		}
	}
}

func TestGrouped(t *testing.T) {
	if got := grouped("ACGTACGTACGTAC", 10); got != "ACGTACGTAC GTAC" {
		t.Errorf("got %q", got)
	}
	if got := grouped("", 10); got != "" {
		t.Errorf("got %q", got)
	}
	if got := chunk("ACGT", 2, 10); got != "GT" {
		t.Errorf("chunk got %q", got)
	}
	if got := pad("ab", 4) + "|"; got != "ab  |" {
		t.Errorf("pad got %q", got)
	}
}

func TestStripComments(t *testing.T) {
	s, in := stripComments("ab [c] d [e", false)
	if s != "ab  d " || !in {
		t.Errorf("got %q %t", s, in)
	}
	if s, in = stripComments("f] g", in); s != " g" || in {
		t.Errorf("got %q %t", s, in)
	}
}
