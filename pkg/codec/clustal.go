// 15 Oct 2026

package codec

import (
	"fmt"
	"io"
	"strings"

	"github.com/andrew-torda/readal/pkg/alignment"
)

const clustalDflt = "CLUSTAL multiple sequence alignment"

// Clustal reads and writes clustal (.aln / .clw) files.
type Clustal struct {
	base
	loadSave
}

func NewClustal() *Clustal { return &Clustal{base: base{name: "clustal", ext: "clw"}} }

// Detect looks for CLUSTAL as the first word in the file.
func (c *Clustal) Detect(content io.ReadSeeker) int {
	line, ok := firstLine(content)
	if !ok {
		return 0
	}
	if tok := firstToken(line); tok == "CLUSTAL" || tok == "clustal" {
		return 1
	}
	return 0
}

// isConservation is true for the lines under a block with "*", ":"
// and ".", or for lines which are empty. Lines starting with a blank
// or with only one word are skipped as well.
func isConservation(line string) bool {
	return strings.Trim(line, " \t*:.") == ""
}

// Load reads a clustal file. The first block tells us the names and the
// number of sequences. After that, lines are handed out to sequences in
// turn.
func (c *Clustal) Load(fname string) (*alignment.Alignment, error) {
	lines, err := readLines(fname)
	if err != nil {
		return nil, err
	}
	header, pos, ok := nextNonBlankLine(lines, 0)
	if !ok || !strings.EqualFold(firstToken(header), "CLUSTAL") {
		return nil, parseErr(c.name, fname, "no CLUSTAL header")
	}

	var names []string
	var seqs []*strings.Builder
	nseq := -1 // not known until the end of the first block
	inBlock := false
	for k := 0; pos < len(lines); pos++ {
		line := lines[pos]
		var f []string
		if !isConservation(line) && line[0] != ' ' && line[0] != '\t' {
			f = splitOnDelimiters(line, delimiters)
		}
		if len(f) < 2 {
			if inBlock && nseq == -1 {
				nseq = len(names)
			}
			inBlock = false
			continue
		}
		inBlock = true
		if nseq == -1 {
			names = append(names, f[0])
			seqs = append(seqs, new(strings.Builder))
			seqs[len(seqs)-1].WriteString(f[1])
			continue
		}
		i := k % nseq
		if f[0] != names[i] {
			const msg = "line %d: expected sequence %s, got %s"
			return nil, parseErr(c.name, fname, msg, pos+1, names[i], f[0])
		}
		seqs[i].WriteString(f[1])
		k++
	}
	res := make([]string, len(seqs))
	for i, b := range seqs {
		res[i] = b.String()
	}
	aln, err := fromLoaded(c.name, fname, names, res)
	if err != nil {
		return nil, err
	}
	aln.Metadata = header
	return aln, nil
}

// Save writes blocks of sixty columns, with names padded to five more
// than the longest name.
func (c *Clustal) Save(aln *alignment.Alignment, w io.Writer, cfg *SaveConfig) error {
	cfg = orDefault(cfg)
	if err := needAligned(c.name, aln); err != nil {
		return err
	}
	r := keptRows(aln, cfg, false)
	width := r.maxName() + 5
	bw := newWriter(w)
	if strings.HasPrefix(aln.Metadata, "CLUSTAL") {
		fmt.Fprint(bw, aln.Metadata, "\n\n")
	} else {
		fmt.Fprint(bw, clustalDflt, "\n\n")
	}
	for j := 0; j < r.nres; j += blockWidth {
		for i, s := range r.seqs {
			fmt.Fprint(bw, pad(r.names[i], width), chunk(s, j, blockWidth), "\n")
		}
		fmt.Fprint(bw, "\n\n")
	}
	return finish(bw, c.name)
}
