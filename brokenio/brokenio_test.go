package brokenio_test

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/andrew-torda/readal/brokenio"
)

var tochop = [][]byte{
	[]byte(""),
	[]byte("a"),
	[]byte("abc"),
	[]byte("abcdefghij"),
	[]byte("abcdefghijklmn"),
}

var longstring = "0123456789012345678901234567890123456789"

// len_non_null returns the length of byte array up to first null
func lenNonNull(a []byte) int {
	for i := 0; i < len(a); i++ {
		if a[i] == 0 {
			return i
		}
	}
	return len(a)
}

// checkNonNull gets two byte slices and sees if they are
// identical within the first characters which are not nulls
func checkNonNull(a, b []byte) bool {
	shorter := lenNonNull(a)
	if x := lenNonNull(b); x < shorter {
		shorter = x
	}
	if bytes.Equal(a[:shorter], b[:shorter]) {
		return true
	}
	return false
}

// testFrac - wipe out different fractions of the input buffer.
func testFrac(t *testing.T, inb []byte, frac float32) {
	s := make([]byte, len(inb))
	rdr := brokenio.NewReader(io.NopCloser(strings.NewReader(string(inb))))
	rdr.SetProbFail(1)
	rdr.SetFracFail(frac)
	_, err := rdr.Read(s) // Look at the error in the different cases below
	nuls := []byte{0}
	if checkNonNull(inb, s) == false {
		t.Error("contents of strings changed with string", string(inb), "frac", frac)
	}
	switch frac {
	case 0.0:
		if n := bytes.Count(s, nuls); n > 0 {
			t.Error("want no null bytes, got", n)
		}
		if err != nil && len(inb) > 0 {
			t.Errorf("error reading from string \"%s\"", inb)
		}
	case 1.0: // This should be a string with all nulls and an error
		want := len(s)
		if n := bytes.Count(s, nuls); n != want {
			t.Error("want", want, "nulls, got", n)
		}
		if len(s) > 0 && err == nil {
			t.Error("did not get error reading from", string(inb))
		}
	default:
		nNull := bytes.Count(s, nuls)
		if nNull == 0 && len(inb) > 0 {
			t.Errorf("no nulls found in \"%s\"", string(s))
		}
		if nNull == len(s) && len(s) > 2 {
			t.Error("Wiped out complete string in", string(inb))
		}
	}
}

// TestTrashing takes strings and removes parts of them
func TestTrashing(t *testing.T) {
	fracs := [3]float32{0, 0.3, 1}
	for _, frac := range fracs {
		for _, inb := range tochop {
			testFrac(t, inb, frac)
		}
	}
}

func forZeroFile(prob float32) (n int, err error) {
	rdr := brokenio.NewReader(io.NopCloser(strings.NewReader(longstring)))
	rdr.SetProbZeroFile(prob)
	tmp := make([]byte, len(longstring))
	n, err = rdr.Read(tmp)
	rdr.Close()
	return n, err
}

func TestZeroFile(t *testing.T) {
	n, err := forZeroFile(1)
	if n > 0 {
		t.Error("should have received zero bytes")
	}
	if err != io.EOF {
		t.Errorf("Should have recieved EOF")
	}
	n, err = forZeroFile(0)
	if n < len(longstring) {
		t.Error("Wanted", len(longstring), "got", n)
	}
	if err != nil {
		t.Errorf("err reading from string")
	}
}

func TestReaderSimple(t *testing.T) {
	rdr := brokenio.NewReader(io.NopCloser(strings.NewReader(longstring)))
	rdr.SetProbFail(0)
	s := make([]byte, len(longstring))
	if rdr.Read(s); string(s) != longstring {
		t.Errorf("simple read fail got %q wanted %q", s, longstring)
	}
}

func Example_setVerbose() {
	rdr := brokenio.NewReader(io.NopCloser(strings.NewReader(longstring)))
	rdr.SetVerbose(true)
	tmp := make([]byte, len(longstring))
	rdr.Read(tmp)
	rdr.Close()
	// Output: Closing 1 calls and 40 bytes
}

// TestClose - check if the reader really is calling the correct close method.
// It is.
func TestClose(t *testing.T) {
	dir := os.TempDir()
	f, err := os.CreateTemp(dir, "testclose_test")
	if f == nil || err != nil {
		t.Errorf("TempFile(dir, testclose_test) = %v, %v", f, err)
	}
	defer os.Remove(f.Name())

	if n, err := f.Write([]byte(longstring)); n != len(longstring) {
		t.Error("Writing temp file failed", err)
	}
	f.Close()
	fp, err := os.Open(f.Name())
	if fp == nil || err != nil {
		t.Error("reading from tempfile, err = ", err)
	}
	rdr := brokenio.NewReader(fp)
	s := make([]byte, len(longstring))
	if n, err := rdr.Read(s); n != len(longstring) || err != nil {
		t.Error("Failed reading from tempfile, n, err = ", n, err)
	}
	rdr.SetVerbose(false)
	if err = rdr.Close(); err != nil {
		t.Error("failed on close of reader")
	}
}

func TestWriter(t *testing.T) {
	for _, tc := range []struct {
		budget int
		want   string
		fail   bool
	}{
		{0, "", true},
		{4, "abcd", true},
		{10, "abcdefghij", false},
		{100, "abcdefghij", false},
	} {
		var b bytes.Buffer
		w := brokenio.NewWriter(&b, tc.budget)
		n, err := w.Write([]byte("abcdefghij"))
		if fail := errors.Is(err, brokenio.ErrBrokenWrite); fail != tc.fail {
			t.Errorf("budget %d: got error %v, want failure %t", tc.budget, err, tc.fail)
		}
		if b.String() != tc.want || n != len(tc.want) || w.Written() != n {
			t.Errorf("budget %d: wrote %q (n=%d), want %q", tc.budget, b.String(), n, tc.want)
		}
	}
}

func TestWriterDiscard(t *testing.T) {
	w := brokenio.NewWriter(nil, 3)
	if _, err := w.Write([]byte("ab")); err != nil {
		t.Fatal("first write should work, got", err)
	}
	if _, err := w.Write([]byte("cd")); err == nil {
		t.Fatal("second write should go over budget")
	}
}
