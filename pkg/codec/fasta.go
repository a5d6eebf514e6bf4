// 15 Oct 2026

package codec

import (
	"fmt"
	"io"
	"strings"

	"github.com/andrew-torda/readal/pkg/alignment"
)

const cmmtChar byte = '>' // and this introduces comments in fasta format

// Fasta reads and writes plain fasta.
type Fasta struct {
	base
	loadSave
}

// FastaM10 writes fasta with names cut to ten characters.
type FastaM10 struct {
	base
	saveOnly
}

func NewFasta() *Fasta       { return &Fasta{base: base{name: "fasta", ext: "fasta"}} }
func NewFastaM10() *FastaM10 { return &FastaM10{base: base{name: "fasta_m10", ext: "fasta"}} }

// Detect says yes if the first thing in the file is a ">".
func (c *Fasta) Detect(content io.ReadSeeker) int {
	if line, ok := firstLine(content); ok && line[0] == cmmtChar {
		return 1
	}
	return 0
}

// Load reads a fasta file. The name of a sequence is the first word after
// the ">". The whole of the comment line is kept as header information.
func (c *Fasta) Load(fname string) (*alignment.Alignment, error) {
	lines, err := readLines(fname)
	if err != nil {
		return nil, err
	}
	var names, info []string
	var seqs []*strings.Builder
	for n, line := range lines {
		t := strings.TrimSpace(line)
		switch {
		case t == "":
			continue
		case t[0] == cmmtChar:
			cmmt := strings.TrimSpace(t[1:])
			names = append(names, firstToken(cmmt))
			info = append(info, cmmt)
			seqs = append(seqs, new(strings.Builder))
		case len(seqs) == 0:
			return nil, parseErr(c.name, fname, "line %d: residues before first '>'", n+1)
		default:
			seqs[len(seqs)-1].WriteString(removeSpace(t))
		}
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

// writeFasta does the work for both fasta flavours. Sequences are
// wrapped at sixty residues.
func writeFasta(r rows, w io.Writer, format string) error {
	bw := newWriter(w)
	for i, s := range r.seqs {
		fmt.Fprintf(bw, "%c%s\n", cmmtChar, r.names[i])
		for ; len(s) > blockWidth; s = s[blockWidth:] {
			fmt.Fprint(bw, s[:blockWidth], "\n")
		}
		if len(s) > 0 {
			fmt.Fprint(bw, s, "\n")
		}
	}
	return finish(bw, format)
}

// Save writes fasta. Unaligned sequences are fine.
func (c *Fasta) Save(aln *alignment.Alignment, w io.Writer, cfg *SaveConfig) error {
	cfg = orDefault(cfg)
	return writeFasta(keptRows(aln, cfg, cfg.KeepHeader), w, c.name)
}

func (c *FastaM10) Load(string) (*alignment.Alignment, error) { return nil, c.loadErr(c.name) }

// Save writes fasta, but cuts names to ten characters.
func (c *FastaM10) Save(aln *alignment.Alignment, w io.Writer, cfg *SaveConfig) error {
	cfg = orDefault(cfg)
	r := keptRows(aln, cfg, cfg.KeepHeader)
	r.cutNames(c.name, cfg)
	return writeFasta(r, w, c.name)
}
