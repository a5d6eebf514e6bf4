// 29 Apr 2020
// 14 Oct 2026 shared bits for the alignment converter

package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	ExitSuccess = iota
	ExitFailure
	ExitUsageError
)

const GapChar byte = '-' // a minus sign is always used for gaps

// IsStdout says whether an output name means standard output.
// Both the empty string and "-" do.
func IsStdout(fname string) bool { return fname == "" || fname == "-" }

// Stem returns the file name without directory and without the last
// extension, so "/x/y/seqs.fasta" gives "seqs".
func Stem(fname string) string {
	base := filepath.Base(fname)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// WrtTemp writes a string to a temporary file and returns
// the filename. It is used all over the place in testing.
// An optional suffix, like ".fasta", goes on the end of the name.
func WrtTemp(s string, suffix ...string) (string, error) {
	pattern := "_del_me_testing"
	if len(suffix) > 0 {
		pattern += "*" + suffix[0]
	}
	fTmp, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", fmt.Errorf("tempfile fail: %w", err)
	}
	defer fTmp.Close()
	if _, err := fTmp.WriteString(s); err != nil {
		return "", fmt.Errorf("writing string to temp file %v: %w", fTmp.Name(), err)
	}
	return fTmp.Name(), nil
}
