// 15 Oct 2026

package codec

import (
	"fmt"
	"io"
	"strings"

	"github.com/andrew-torda/readal/pkg/alignment"
)

// Pir reads and writes NBRF/PIR files. Each entry looks like
//
//	>P1;name
//	some description
//	 MKLVWEFQAA GGHH*
type Pir struct {
	base
	loadSave
}

func NewPir() *Pir {
	return &Pir{base: base{name: "pir", ext: "pir", aliases: []string{"nbrf", "PIR", "NBRF"}}}
}

// isPirID checks for the ">XX;" start of a pir entry.
func isPirID(line string) bool { return len(line) > 4 && line[0] == '>' && line[3] == ';' }

// Detect scores two, not one, so a pir file is not taken for fasta,
// which would score one on the same ">".
func (c *Pir) Detect(content io.ReadSeeker) int {
	if line, ok := firstLine(content); ok && isPirID(line) {
		return 2
	}
	return 0
}

// Load reads a pir file. A state machine, since entries are an id line,
// a description line, then residues up to a "*".
func (c *Pir) Load(fname string) (*alignment.Alignment, error) {
	lines, err := readLines(fname)
	if err != nil {
		return nil, err
	}
	const (
		wantID = iota
		wantInfo
		wantSeq
	)
	var names, info []string
	var seqs []*strings.Builder
	state := wantID
	for n, line := range lines {
		t := strings.TrimSpace(line)
		if t == "" {
			continue
		}
		switch state {
		case wantID:
			if !isPirID(t) {
				return nil, parseErr(c.name, fname, "line %d: expected >XX;name", n+1)
			}
			name, _, _ := strings.Cut(strings.TrimSpace(t[4:]), ";")
			names = append(names, strings.TrimSpace(name))
			seqs = append(seqs, new(strings.Builder))
			state = wantInfo
		case wantInfo:
			info = append(info, t)
			state = wantSeq
		case wantSeq:
			if t[len(t)-1] == '*' {
				state = wantID
			}
			for _, tok := range splitOnDelimiters(t, othDelimiters) {
				seqs[len(seqs)-1].WriteString(strings.TrimSuffix(tok, "*"))
			}
		}
	}
	if state != wantID {
		return nil, parseErr(c.name, fname, "last entry has no terminating '*'")
	}
	res := make([]string, len(seqs))
	for i, b := range seqs {
		res[i] = b.String()
	}
	aln, err := fromLoaded(c.name, fname, names, res)
	if err != nil {
		return nil, err
	}
	aln.HeaderInfo = info
	return aln, nil
}

// pirType gives the two letter code at the start of each entry.
func pirType(t alignment.SeqType) string {
	switch t.Base() {
	case alignment.DNA:
		return "DL"
	case alignment.RNA:
		return "RL"
	case alignment.Protein:
		return "P1"
	}
	return "XX"
}

// Save writes residues in groups of ten, fifty per line. Unaligned
// sequences are fine.
func (c *Pir) Save(aln *alignment.Alignment, w io.Writer, cfg *SaveConfig) error {
	cfg = orDefault(cfg)
	code := pirType(aln.Type())
	bw := newWriter(w)
	for i := 0; i < aln.OrigNSeq; i++ {
		if !aln.KeepSeq(i) {
			continue
		}
		s := aln.SeqOut(i, cfg.Reverse)
		fmt.Fprintf(bw, ">%s;%s\n", code, aln.Names[i])
		if aln.HeaderInfo != nil && aln.HeaderInfo[i] != "" {
			fmt.Fprintln(bw, aln.HeaderInfo[i])
		} else {
			fmt.Fprintf(bw, "%s %d bases\n", aln.Names[i], len(s))
		}
		k := 0
		for ; k < len(s); k++ {
			if k%groupWidth == 0 {
				bw.WriteByte(' ')
			}
			bw.WriteByte(s[k])
			if (k+1)%groupedLine == 0 && k != len(s)-1 {
				bw.WriteByte('\n')
			}
		}
		if k%groupedLine == 0 {
			bw.WriteByte('\n')
		}
		if k%groupWidth == 0 {
			bw.WriteByte(' ')
		}
		fmt.Fprint(bw, "*\n\n")
	}
	return finish(bw, c.name)
}
