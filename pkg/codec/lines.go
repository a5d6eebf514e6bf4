// 15 Oct 2026

package codec

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/andrew-torda/readal/pkg/zwrap"
)

// Delimiter sets used when breaking up lines.
const (
	delimiters     = " \t\n"
	othDelimiters  = " \t\n,:"
	oth2Delimiters = " \n,:;"
)

// splitLines breaks a file into lines. Carriage returns from DOS
// files are dropped.
func splitLines(data []byte) []string {
	s := strings.ReplaceAll(string(data), "\r", "")
	lines := strings.Split(s, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

// readLines reads a whole file, possibly gzipped, and returns its lines.
func readLines(fname string) ([]string, error) {
	fp, err := zwrap.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCannotOpenFile, err)
	}
	defer fp.Close()
	data, err := io.ReadAll(fp)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrCannotOpenFile, fname, err)
	}
	return splitLines(data), nil
}

// isBlank is true if a line only has white space.
func isBlank(s string) bool { return strings.TrimSpace(s) == "" }

// nextNonBlankLine starts looking at lines[pos] and returns the first
// line with something on it, trimmed, and the position after it.
// ok is false if we ran off the end.
func nextNonBlankLine(lines []string, pos int) (line string, next int, ok bool) {
	for ; pos < len(lines); pos++ {
		if t := strings.TrimSpace(lines[pos]); t != "" {
			return t, pos + 1, true
		}
	}
	return "", pos, false
}

// countNonBlank is the number of lines from pos on with something on
// them. Header counts are checked against it before anything is
// allocated.
func countNonBlank(lines []string, pos int) (n int) {
	for ; pos < len(lines); pos++ {
		if !isBlank(lines[pos]) {
			n++
		}
	}
	return n
}

// splitOnDelimiters breaks s into tokens at any of the bytes in
// delims. Empty tokens are not returned.
func splitOnDelimiters(s, delims string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return strings.ContainsRune(delims, r)
	})
}

// firstToken returns the first white space separated word, or "".
func firstToken(s string) string {
	if f := splitOnDelimiters(s, delimiters); len(f) > 0 {
		return f[0]
	}
	return ""
}

// removeSpace takes out blanks and tabs inside a run of residues.
func removeSpace(s string) string {
	if !strings.ContainsAny(s, " \t") {
		return s
	}
	return strings.Join(splitOnDelimiters(s, delimiters), "")
}

// viewLines reads up to nmax lines from the start of a detection view.
// nmax <= 0 means read everything.
func viewLines(content io.ReadSeeker, nmax int) []string {
	if _, err := content.Seek(0, io.SeekStart); err != nil {
		return nil
	}
	var lines []string
	scanner := bufio.NewScanner(content)
	scanner.Buffer(make([]byte, 64*1024), 64*1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
		if nmax > 0 && len(lines) >= nmax {
			break
		}
	}
	return lines
}

// nonBlankLines returns up to n of the first non-blank lines of a
// detection view, trimmed.
func nonBlankLines(content io.ReadSeeker, n int) []string {
	if _, err := content.Seek(0, io.SeekStart); err != nil {
		return nil
	}
	var lines []string
	scanner := bufio.NewScanner(content)
	scanner.Buffer(make([]byte, 64*1024), 64*1024*1024)
	for scanner.Scan() && len(lines) < n {
		if t := strings.TrimSpace(scanner.Text()); t != "" {
			lines = append(lines, t)
		}
	}
	return lines
}

// firstLine is the first non-blank line of a detection view.
func firstLine(content io.ReadSeeker) (string, bool) {
	if l := nonBlankLines(content, 1); len(l) == 1 {
		return l[0], true
	}
	return "", false
}

// parseErr builds an error for a file we could not understand.
func parseErr(format, fname, msg string, args ...any) error {
	return fmt.Errorf("%w: %s file %s: %s", ErrFormatParse, format, fname, fmt.Sprintf(msg, args...))
}
