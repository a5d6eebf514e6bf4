// 15 May 2025
// 17 Oct 2026 now the statistics behind readal -info.
// For each sequence, get the length without gaps, then summarise
// the alignment: how many sequences, how long, which is the longest
// and which the shortest.

package seqlen

import (
	"fmt"
	"io"
	"strconv"

	"github.com/andrew-torda/readal/pkg/alignment"
)

// Stats summarises the ungapped sequence lengths of an alignment.
// Only sequences and columns which are not masked out count.
type Stats struct {
	NSeq        int
	NRes        int // alignment length, only meaningful if Aligned
	Aligned     bool
	AvgLen      float64
	LongestName string
	Longest     int
	ShortName   string
	Shortest    int
}

// Get collects the statistics. When two sequences have the same length,
// the later one is reported as longest or shortest.
func Get(aln *alignment.Alignment) Stats {
	st := Stats{NSeq: aln.NSeq, NRes: aln.NRes, Aligned: aln.Aligned}
	first, total := true, 0
	for i := 0; i < aln.OrigNSeq; i++ {
		if !aln.KeepSeq(i) {
			continue
		}
		n := aln.Ungapped(i)
		total += n
		if first || n >= st.Longest {
			st.Longest, st.LongestName = n, aln.Names[i]
		}
		if first || n <= st.Shortest {
			st.Shortest, st.ShortName = n, aln.Names[i]
		}
		first = false
	}
	if st.NSeq > 0 {
		st.AvgLen = float64(total) / float64(st.NSeq)
	}
	return st
}

// Write prints the statistics, one "## " line each.
func (st Stats) Write(w io.Writer) error {
	var err error
	pr := func(format string, a ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, a...)
		}
	}
	pr("## Total sequences\t%d\n", st.NSeq)
	if st.Aligned {
		pr("## Alignment length\t%d\n", st.NRes)
	}
	pr("## Avg. sequence length\t%s\n", strconv.FormatFloat(st.AvgLen, 'g', 6, 64))
	pr("## Longest seq. name\t'%s'\n", st.LongestName)
	pr("## Longest seq. length\t%d\n", st.Longest)
	pr("## Shortest seq. name\t'%s'\n", st.ShortName)
	pr("## Shortest seq. length\t%d\n", st.Shortest)
	return err
}
