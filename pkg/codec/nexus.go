// 16 Oct 2026

package codec

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/andrew-torda/readal/pkg/alignment"
)

// Nexus reads and writes the DATA block of nexus files.
type Nexus struct {
	base
	loadSave
}

// NexusM10 writes nexus with names cut to ten characters.
type NexusM10 struct {
	base
	saveOnly
}

func NewNexus() *Nexus       { return &Nexus{base: base{name: "nexus", ext: "nxs"}} }
func NewNexusM10() *NexusM10 { return &NexusM10{base: base{name: "nexus_m10", ext: "nxs"}} }

func (c *Nexus) Detect(content io.ReadSeeker) int {
	line, ok := firstLine(content)
	if !ok {
		return 0
	}
	if tok := firstToken(line); tok == "#NEXUS" || tok == "#nexus" {
		return 1
	}
	return 0
}

// stripComments removes [bracketed] text. inCmmt carries an open
// comment from one line to the next.
func stripComments(line string, inCmmt bool) (string, bool) {
	var b strings.Builder
	for i := 0; i < len(line); i++ {
		switch c := line[i]; {
		case c == '[':
			inCmmt = true
		case c == ']' && inCmmt:
			inCmmt = false
		case !inCmmt:
			b.WriteByte(c)
		}
	}
	return b.String(), inCmmt
}

// dimension pulls the number out of a token like "NTAX=12;".
func dimension(tok, key string) (int, bool) {
	k, v, found := strings.Cut(tok, "=")
	if !found || !strings.EqualFold(k, key) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimRight(v, ";"))
	if err != nil {
		return 0, false
	}
	return n, true
}

// nexusKeep says if a FORMAT token should be remembered. We write
// DATATYPE, INTERLEAVE and GAP ourselves.
func nexusKeep(tok string) bool {
	k, _, _ := strings.Cut(strings.ToUpper(tok), "=")
	switch k {
	case "DATATYPE", "INTERLEAVE", "GAP", "":
		return false
	}
	return true
}

// Load reads the header up to MATRIX, then the matrix itself, which may
// be interleaved. Names come from the first block.
func (c *Nexus) Load(fname string) (*alignment.Alignment, error) {
	lines, err := readLines(fname)
	if err != nil {
		return nil, err
	}
	var nseq, nres int
	var meta []string
	inCmmt, inBegin := false, false
	pos := 0
	for ; pos < len(lines); pos++ {
		var line string
		line, inCmmt = stripComments(lines[pos], inCmmt)
		f := splitOnDelimiters(line, delimiters)
		if len(f) == 0 {
			continue
		}
		key := strings.ToUpper(f[0])
		if key == "MATRIX" {
			break
		}
		switch key {
		case "BEGIN":
			inBegin = true
		case "FORMAT":
			for _, tok := range f[1:] {
				if tok = strings.Trim(tok, ";"); nexusKeep(tok) {
					meta = append(meta, tok)
				}
			}
		case "DIMENSIONS":
			if !inBegin {
				continue
			}
			for _, tok := range f[1:] {
				if n, ok := dimension(tok, "NTAX"); ok {
					nseq = n
				}
				if n, ok := dimension(tok, "NCHAR"); ok {
					nres = n
				}
			}
		}
	}
	if pos == len(lines) {
		return nil, parseErr(c.name, fname, "no MATRIX found")
	}
	if nseq <= 0 || nres <= 0 {
		return nil, parseErr(c.name, fname, "missing or bad NTAX/NCHAR")
	}
	if n := countNonBlank(lines, pos+1); n < nseq {
		return nil, parseErr(c.name, fname, "NTAX says %d, only %d lines in MATRIX", nseq, n)
	}

	names := make([]string, nseq)
	seqs := make([]strings.Builder, nseq)
	i, firstBlock := 0, true
	for pos++; pos < len(lines); pos++ {
		var line string
		line, inCmmt = stripComments(lines[pos], inCmmt)
		t := strings.TrimSpace(line)
		if strings.HasPrefix(strings.ToLower(t), "end;") {
			break
		}
		f := splitOnDelimiters(t, oth2Delimiters)
		if len(f) == 0 {
			continue
		}
		if firstBlock {
			names[i] = f[0]
		} else if f[0] != names[i] {
			const msg = "line %d: expected sequence %s, got %s"
			return nil, parseErr(c.name, fname, msg, pos+1, names[i], f[0])
		}
		for _, tok := range f[1:] {
			seqs[i].WriteString(tok)
		}
		if i = (i + 1) % nseq; i == 0 {
			firstBlock = false
		}
	}
	if firstBlock && i != 0 {
		return nil, parseErr(c.name, fname, "found %d sequences, NTAX says %d", i, nseq)
	}
	res := make([]string, nseq)
	for k := range seqs {
		res[k] = seqs[k].String()
		if len(res[k]) != nres {
			const msg = "sequence %s has %d residues, NCHAR says %d"
			return nil, parseErr(c.name, fname, msg, names[k], len(res[k]), nres)
		}
	}
	aln, err := fromLoaded(c.name, fname, names, res)
	if err != nil {
		return nil, err
	}
	aln.Metadata = strings.Join(meta, " ")
	return aln, nil
}

// nexusType is the DATATYPE on the FORMAT line.
func nexusType(t alignment.SeqType) string {
	switch t.Base() {
	case alignment.DNA:
		return "DNA"
	case alignment.RNA:
		return "RNA"
	case alignment.Protein:
		return "PROTEIN"
	}
	return "STANDARD"
}

// writeNexus writes interleaved nexus, fifty residues to a block.
// Of the remembered FORMAT tokens, only MISSING and MATCHCHAR are
// passed on.
func writeNexus(aln *alignment.Alignment, r rows, w io.Writer, format string) error {
	maxName := r.maxName()
	bw := newWriter(w)
	fmt.Fprintf(bw, "#NEXUS\nBEGIN DATA;\n DIMENSIONS NTAX=%d NCHAR=%d;\n", len(r.seqs), r.nres)
	fmt.Fprintf(bw, " FORMAT DATATYPE=%s INTERLEAVE=yes GAP=-", nexusType(aln.Type()))
	for _, tok := range splitOnDelimiters(aln.Metadata, delimiters) {
		up := strings.ToUpper(tok)
		if strings.HasPrefix(up, "MISSING") || strings.HasPrefix(up, "MATCHCHAR") {
			fmt.Fprint(bw, " ", strings.ReplaceAll(tok, ";", ""))
		}
	}
	fmt.Fprint(bw, ";\n")
	for _, name := range r.names {
		fmt.Fprintf(bw, "[Name: %sLen: %d]\n", pad(name, maxName+4), r.nres)
	}
	fmt.Fprint(bw, "\nMATRIX")
	for j := 0; j < r.nres; j += groupedLine {
		for i, s := range r.seqs {
			fmt.Fprint(bw, "\n", pad(r.names[i], maxName+5), grouped(chunk(s, j, groupedLine), groupWidth))
		}
		fmt.Fprint(bw, "\n")
	}
	fmt.Fprint(bw, "\n;\nEND;\n")
	return finish(bw, format)
}

func (c *Nexus) Save(aln *alignment.Alignment, w io.Writer, cfg *SaveConfig) error {
	cfg = orDefault(cfg)
	if err := needAligned(c.name, aln); err != nil {
		return err
	}
	return writeNexus(aln, keptRows(aln, cfg, false), w, c.name)
}

func (c *NexusM10) Load(string) (*alignment.Alignment, error) { return nil, c.loadErr(c.name) }

func (c *NexusM10) Save(aln *alignment.Alignment, w io.Writer, cfg *SaveConfig) error {
	cfg = orDefault(cfg)
	if err := needAligned(c.name, aln); err != nil {
		return err
	}
	r := keptRows(aln, cfg, false)
	r.cutNames(c.name, cfg)
	return writeNexus(aln, r, w, c.name)
}
