// 29 April 2020
// 17 Oct 2026 squash sets a column mask instead of rewriting sequences

package squash

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/andrew-torda/readal/pkg/alignment"
	"github.com/andrew-torda/readal/pkg/convert"
	. "github.com/andrew-torda/readal/pkg/seq/common"
)

// ErrNoRef is returned when the reference sequence is not there.
var ErrNoRef = errors.New("reference sequence not found")

// FindNdx returns the index of the first sequence whose name or header
// contains s. If s is a number, like "1", it is taken as the position
// of the sequence, counting from one. -1 means not found.
func FindNdx(aln *alignment.Alignment, s string) int {
	s = strings.TrimLeft(s, " >\t")
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1 && n <= aln.OrigNSeq {
			return n - 1
		}
		return -1
	}
	for i, name := range aln.Names {
		if strings.Contains(name, s) {
			return i
		}
		if aln.HeaderInfo != nil && strings.Contains(aln.HeaderInfo[i], s) {
			return i
		}
	}
	return -1
}

// Mask hides every column where the reference sequence has a gap.
// Sequences are not touched, only the column mask.
func Mask(aln *alignment.Alignment, ref string) error {
	if !aln.Aligned {
		return fmt.Errorf("squash: sequences are not all the same length")
	}
	ndxref := FindNdx(aln, ref)
	if ndxref == -1 {
		return fmt.Errorf("%w: %q", ErrNoRef, ref)
	}
	refseq := aln.Residues[ndxref]
	mask := make([]bool, aln.OrigNRes)
	for i := range mask {
		mask[i] = refseq[i] != GapChar
	}
	return aln.SetResMask(mask)
}

// MyMain is the top level main, after parsing the command line.
// An empty format means fasta.
func MyMain(seqstring, infile, outfile, format string) int {
	cfg := convert.DefaultConfig()
	cv := convert.New(cfg)
	aln := cv.LoadOne(infile)
	if aln == nil {
		fmt.Fprintln(os.Stderr, "could not read", infile)
		return ExitFailure
	}
	if err := Mask(aln, seqstring); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitFailure
	}
	var formats []string
	if format != "" {
		formats = []string{format}
	}
	if !cv.SaveOne(aln, outfile, formats) {
		if outfile == "" {
			outfile = "os.Stdout"
		}
		fmt.Fprintln(os.Stderr, "Fail writing to", outfile)
		return ExitFailure
	}
	return ExitSuccess
}
