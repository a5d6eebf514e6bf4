// 15 Oct 2026

package alignment

import (
	"github.com/andrew-torda/matrix"
	. "github.com/andrew-torda/readal/pkg/seq/common"
)

// NSym is the number of rows in the counts matrix. Letters A to Z,
// then the gap.
const NSym = 27

// GapRow is the row in the counts matrix used for gaps and anything
// that is not a letter.
const GapRow = NSym - 1

// SymRow tells us where a character is tallied in the counts matrix.
// Lower and upper case share a row.
func SymRow(c byte) int {
	c = upper(c)
	if 'A' <= c && c <= 'Z' {
		return int(c - 'A')
	}
	return GapRow
}

// Counts tallies each symbol in each column. The matrix looks like
// counts.Mat[symbol_row][column], with one column for every original
// column of the alignment. Only kept sequences are counted. Sequences
// shorter than the alignment count as gaps at the end.
func (aln *Alignment) Counts() *matrix.FMatrix2d {
	counts := matrix.NewFMatrix2d(NSym, aln.OrigNRes)
	for i, s := range aln.Residues {
		if !aln.KeepSeq(i) {
			continue
		}
		for j := 0; j < aln.OrigNRes; j++ {
			c := GapChar
			if j < len(s) {
				c = s[j]
			}
			counts.Mat[SymRow(c)][j]++
		}
	}
	return counts
}

// ColFrac returns, for column j of a counts matrix, the fraction of
// the nseq sequences which have one of the symbols in syms.
func ColFrac(counts *matrix.FMatrix2d, j, nseq int, syms string) float32 {
	if nseq == 0 {
		return 0
	}
	var n float32
	for i := 0; i < len(syms); i++ {
		n += counts.Mat[SymRow(syms[i])][j]
	}
	return n / float32(nseq)
}
