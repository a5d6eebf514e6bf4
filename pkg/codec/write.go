// 15 Oct 2026

package codec

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/andrew-torda/readal/pkg/alignment"
)

const (
	nameCut     = 10 // names are cut to this in the _m10 formats
	blockWidth  = 60 // residues per line in most formats
	groupWidth  = 10 // residues between spaces
	groupedLine = 50 // residues per line when written in groups
)

// rows is what a writer needs. The kept sequences, in order, with
// their names and residues as they should appear.
type rows struct {
	names []string
	seqs  []string
	nres  int // length of the longest output sequence
}

// keptRows collects the sequences which are not masked out.
// Masked columns are gone and sequences are reversed if asked for.
func keptRows(aln *alignment.Alignment, cfg *SaveConfig, keepHeader bool) rows {
	var r rows
	for i := 0; i < aln.OrigNSeq; i++ {
		if !aln.KeepSeq(i) {
			continue
		}
		s := aln.SeqOut(i, cfg.Reverse)
		r.names = append(r.names, aln.NameOut(i, keepHeader))
		r.seqs = append(r.seqs, s)
		if len(s) > r.nres {
			r.nres = len(s)
		}
	}
	return r
}

// maxName is the length of the longest name.
func (r rows) maxName() (n int) {
	for _, s := range r.names {
		if len(s) > n {
			n = len(s)
		}
	}
	return n
}

// cutNames shortens names for the _m10 formats and says so once.
func (r rows) cutNames(format string, cfg *SaveConfig) {
	cut := false
	for i, s := range r.names {
		if len(s) > nameCut {
			r.names[i] = s[:nameCut]
			cut = true
		}
	}
	if cut {
		cfg.logger().Warn("sequence names cut", "format", format, "length", nameCut)
	}
}

// logger returns the configured logger or the default one.
func (cfg *SaveConfig) logger() *slog.Logger {
	if cfg == nil || cfg.Logger == nil {
		return slog.Default()
	}
	return cfg.Logger
}

// dfltSaveConfig is used when callers pass nil.
var dfltSaveConfig = SaveConfig{}

func orDefault(cfg *SaveConfig) *SaveConfig {
	if cfg == nil {
		return &dfltSaveConfig
	}
	return cfg
}

// pad left justifies s in a field of width n.
func pad(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}

// chunk returns s[from:from+n], clipped to the end of s.
func chunk(s string, from, n int) string {
	if from >= len(s) {
		return ""
	}
	if from+n > len(s) {
		return s[from:]
	}
	return s[from : from+n]
}

// grouped writes s with a space between every group of residues,
// for example "ACGTACGTAC GTAC".
func grouped(s string, group int) string {
	var b strings.Builder
	for i := 0; i < len(s); i += group {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(chunk(s, i, group))
	}
	return b.String()
}

// newWriter buffers output. bufio remembers the first write error,
// so we only have to look once, in finish.
func newWriter(w io.Writer) *bufio.Writer { return bufio.NewWriter(w) }

// finish flushes a writer and turns any error into a save failure.
func finish(bw *bufio.Writer, format string) error {
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrSaveFailed, format, err)
	}
	return nil
}
