// 16 Oct 2026

package codec

import (
	"fmt"
	"io"
	"strings"

	"github.com/andrew-torda/readal/pkg/alignment"
)

// phylipKind says which layout of phylip we have.
type phylipKind byte

const (
	sequential  phylipKind = iota // phylip 3.2. Each sequence complete before the next
	interleaved                   // phylip 4.0. Blocks of 60 columns
	paml                          // one sequence per line
)

// Phylip covers all the phylip flavours. They share a header and
// differ in how residues are laid out. The _m10 versions are write
// only and cut names to ten characters.
type Phylip struct {
	base
	kind    phylipKind
	cut     bool
	canLoad bool
}

func NewPhylip32() *Phylip {
	return &Phylip{base: base{name: "phylip32", ext: "phy"}, kind: sequential, canLoad: true}
}

func NewPhylip32M10() *Phylip {
	return &Phylip{base: base{name: "phylip32_m10", ext: "phy"}, kind: sequential, cut: true}
}

func NewPhylip40() *Phylip {
	b := base{name: "phylip40", ext: "phy2", aliases: []string{"phylip"}}
	return &Phylip{base: b, kind: interleaved, canLoad: true}
}

func NewPhylip40M10() *Phylip {
	b := base{name: "phylip40_m10", ext: "phy2", aliases: []string{"phylip_m10"}}
	return &Phylip{base: b, kind: interleaved, cut: true}
}

func NewPhylipPaml() *Phylip {
	b := base{name: "phylip_paml", ext: "phy", aliases: []string{"phylippaml"}}
	return &Phylip{base: b, kind: paml, canLoad: true}
}

func NewPhylipPamlM10() *Phylip {
	b := base{name: "phylip_paml_m10", ext: "phy", aliases: []string{"phylippaml_m10"}}
	return &Phylip{base: b, kind: paml, cut: true}
}

func (c *Phylip) CanLoad() bool { return c.canLoad }
func (c *Phylip) CanSave() bool { return true }

// atoiPrefix reads the digits at the start of a string, like C's atoi.
// "12abc" gives 12 and "abc" gives 0.
func atoiPrefix(s string) int {
	n := 0
	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
		if n > 1<<30 {
			return 0
		}
	}
	return n
}

// phylipHeader gets the number of sequences and residues from the
// first line.
func phylipHeader(line string) (nseq, nres int) {
	f := splitOnDelimiters(line, othDelimiters)
	if len(f) < 2 {
		return 0, 0
	}
	return atoiPrefix(f[0]), atoiPrefix(f[1])
}

// Detect compares the number of words on the second and third lines.
// If they differ, the first sequence continues on the third line, so
// the file is sequential (3.2). If they are the same, it is taken as
// interleaved (4.0). A single sequence can only be told apart as 4.0.
// The paml flavour is never chosen by looking.
func (c *Phylip) Detect(content io.ReadSeeker) int {
	if !c.canLoad || c.kind == paml {
		return 0
	}
	lines := nonBlankLines(content, 3)
	if len(lines) < 2 {
		return 0
	}
	nseq, nres := phylipHeader(lines[0])
	if nseq == 0 || nres == 0 {
		return 0
	}
	if nseq == 1 {
		if c.kind == interleaved {
			return 1
		}
		return 0
	}
	if len(lines) < 3 {
		return 0
	}
	same := len(splitOnDelimiters(lines[1], delimiters)) == len(splitOnDelimiters(lines[2], delimiters))
	if same == (c.kind == interleaved) {
		return 1
	}
	return 0
}

// Load reads a phylip file.
func (c *Phylip) Load(fname string) (*alignment.Alignment, error) {
	if !c.canLoad {
		return nil, fmt.Errorf("%w: %s", ErrCannotLoad, c.name)
	}
	lines, err := readLines(fname)
	if err != nil {
		return nil, err
	}
	header, pos, ok := nextNonBlankLine(lines, 0)
	if !ok {
		return nil, parseErr(c.name, fname, "no header")
	}
	nseq, nres := phylipHeader(header)
	if nseq == 0 || nres == 0 {
		return nil, parseErr(c.name, fname, "bad header %q", header)
	}
	if n := countNonBlank(lines, pos); n < nseq {
		return nil, parseErr(c.name, fname, "header says %d sequences, only %d lines follow", nseq, n)
	}
	var names, seqs []string
	if c.kind == interleaved {
		names, seqs, err = readInterleaved(lines, pos, nseq, nres)
	} else {
		names, seqs, err = readSequential(lines, pos, nseq, nres)
	}
	if err != nil {
		return nil, parseErr(c.name, fname, "%v", err)
	}
	return fromLoaded(c.name, fname, names, seqs)
}

// readSequential reads each sequence to the end before starting the
// next. A sequence is finished when it has nres residues.
func readSequential(lines []string, pos, nseq, nres int) ([]string, []string, error) {
	names := make([]string, nseq)
	seqs := make([]string, nseq)
	for i := 0; i < nseq; i++ {
		var line string
		var ok bool
		if line, pos, ok = nextNonBlankLine(lines, pos); !ok {
			return nil, nil, fmt.Errorf("found %d of %d sequences", i, nseq)
		}
		f := splitOnDelimiters(line, othDelimiters)
		if len(f) == 0 {
			return nil, nil, fmt.Errorf("sequence %d: line with no name", i+1)
		}
		names[i] = f[0]
		var b strings.Builder
		b.WriteString(strings.Join(f[1:], ""))
		for b.Len() < nres {
			if line, pos, ok = nextNonBlankLine(lines, pos); !ok {
				return nil, nil, fmt.Errorf("sequence %s ends after %d residues", names[i], b.Len())
			}
			b.WriteString(strings.Join(splitOnDelimiters(line, othDelimiters), ""))
		}
		if b.Len() != nres {
			const msg = "sequence %s has %d residues, header says %d"
			return nil, nil, fmt.Errorf(msg, names[i], b.Len(), nres)
		}
		seqs[i] = b.String()
	}
	return names, seqs, nil
}

// readInterleaved takes names from the first block. After that, lines
// go to each sequence in turn.
func readInterleaved(lines []string, pos, nseq, nres int) ([]string, []string, error) {
	names := make([]string, nseq)
	bldr := make([]strings.Builder, nseq)
	for i := 0; i < nseq; i++ {
		var line string
		var ok bool
		if line, pos, ok = nextNonBlankLine(lines, pos); !ok {
			return nil, nil, fmt.Errorf("found %d of %d sequences", i, nseq)
		}
		f := splitOnDelimiters(line, othDelimiters)
		if len(f) == 0 {
			return nil, nil, fmt.Errorf("sequence %d: line with no name", i+1)
		}
		names[i] = f[0]
		bldr[i].WriteString(strings.Join(f[1:], ""))
	}
	for k := 0; bldr[nseq-1].Len() < nres; k++ {
		line, next, ok := nextNonBlankLine(lines, pos)
		if !ok {
			break
		}
		pos = next
		bldr[k%nseq].WriteString(strings.Join(splitOnDelimiters(line, othDelimiters), ""))
	}
	seqs := make([]string, nseq)
	for i := range bldr {
		if seqs[i] = bldr[i].String(); len(seqs[i]) != nres {
			const msg = "sequence %s has %d residues, header says %d"
			return nil, nil, fmt.Errorf(msg, names[i], len(seqs[i]), nres)
		}
	}
	return names, seqs, nil
}

// Save writes the header and then the residues in the layout for
// this flavour. All phylip flavours need aligned sequences.
func (c *Phylip) Save(aln *alignment.Alignment, w io.Writer, cfg *SaveConfig) error {
	cfg = orDefault(cfg)
	if err := needAligned(c.name, aln); err != nil {
		return err
	}
	r := keptRows(aln, cfg, false)
	if c.cut {
		r.cutNames(c.name, cfg)
	}
	width := max(nameCut, r.maxName()) + 3
	bw := newWriter(w)
	fmt.Fprintf(bw, " %d %d", len(r.seqs), r.nres)
	switch c.kind {
	case sequential:
		for i, s := range r.seqs {
			fmt.Fprint(bw, "\n", pad(r.names[i], width), grouped(chunk(s, 0, groupedLine), groupWidth))
			for j := groupedLine; j < len(s); j += groupedLine {
				fmt.Fprint(bw, "\n", pad("", width), grouped(chunk(s, j, groupedLine), groupWidth))
			}
			fmt.Fprint(bw, "\n")
		}
		fmt.Fprint(bw, "\n")
	case interleaved:
		for i, s := range r.seqs {
			fmt.Fprint(bw, "\n", pad(r.names[i], width), chunk(s, 0, blockWidth))
		}
		for j := blockWidth; j < r.nres; j += blockWidth {
			fmt.Fprint(bw, "\n")
			for _, s := range r.seqs {
				fmt.Fprint(bw, "\n", chunk(s, j, blockWidth))
			}
		}
		fmt.Fprint(bw, "\n\n")
	case paml:
		fmt.Fprint(bw, "\n")
		for i, s := range r.seqs {
			fmt.Fprint(bw, pad(r.names[i], width), s, "\n")
		}
		fmt.Fprint(bw, "\n")
	}
	return finish(bw, c.name)
}
