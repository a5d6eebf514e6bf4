// 16 Oct 2026

package codec

import (
	"fmt"
	"io"
	"strings"

	"github.com/andrew-torda/readal/pkg/alignment"
)

// MegaSequential reads and writes mega files where each sequence is
// written in full after its "#name" line.
type MegaSequential struct {
	base
	loadSave
}

// MegaInterleaved reads mega files where "#name residues" lines come
// in blocks. We never write this flavour.
type MegaInterleaved struct {
	base
	loadOnly
}

func NewMegaSequential() *MegaSequential {
	return &MegaSequential{base: base{name: "mega_sequential", ext: "mega", aliases: []string{"mega"}}}
}

func NewMegaInterleaved() *MegaInterleaved {
	return &MegaInterleaved{base: base{name: "mega_interleaved", ext: "mega"}}
}

// megaLayout says if content is mega at all and, if so, whether it is
// interleaved. Interleaved files have more "#" lines straight after the
// first "#name" line, before any blank line.
func megaLayout(content io.ReadSeeker) (isMega, isInterleaved bool) {
	lines := viewLines(content, 0)
	first, pos, ok := nextNonBlankLine(lines, 0)
	if !ok {
		return false, false
	}
	if f := splitOnDelimiters(first, othDelimiters); len(f) == 0 || (f[0] != "#MEGA" && f[0] != "#mega") {
		return false, false
	}
	for ; pos < len(lines) && !strings.HasPrefix(lines[pos], "#"); pos++ {
	}
	for pos++; pos < len(lines); pos++ {
		if isBlank(lines[pos]) {
			break
		}
		if strings.HasPrefix(lines[pos], "#") {
			return true, true
		}
	}
	return true, false
}

func (c *MegaSequential) Detect(content io.ReadSeeker) int {
	if isMega, inter := megaLayout(content); isMega && !inter {
		return 1
	}
	return 0
}

func (c *MegaInterleaved) Detect(content io.ReadSeeker) int {
	if isMega, inter := megaLayout(content); isMega && inter {
		return 1
	}
	return 0
}

// loadMega reads both layouts. A "#name" we have seen before adds to
// that sequence, so blocks take care of themselves. Lines starting
// with "!" are commands, which may go over more than one line until
// a ";". Title and Format commands are kept.
func loadMega(format, fname string) (*alignment.Alignment, error) {
	lines, err := readLines(fname)
	if err != nil {
		return nil, err
	}
	_, pos, ok := nextNonBlankLine(lines, 0)
	if !ok {
		return nil, parseErr(format, fname, "empty")
	}
	var names, meta []string
	var seqs []*strings.Builder
	index := make(map[string]int)
	cur := -1
	inCmd := false
	for ; pos < len(lines); pos++ {
		t := strings.TrimSpace(lines[pos])
		switch {
		case t == "":
			continue
		case inCmd || t[0] == '!':
			inCmd = !strings.HasSuffix(t, ";")
			tok := strings.ToUpper(strings.Trim(firstToken(t), "!:"))
			if tok == "TITLE" || tok == "FORMAT" || tok == "DESCRIPTION" {
				meta = append(meta, t)
			}
		case strings.HasPrefix(strings.ToUpper(t), "TITLE"):
			meta = append(meta, t)
		case t[0] == '#':
			f := splitOnDelimiters(t[1:], delimiters)
			if len(f) == 0 {
				return nil, parseErr(format, fname, "line %d: '#' without a name", pos+1)
			}
			var seen bool
			if cur, seen = index[f[0]]; !seen {
				cur = len(names)
				index[f[0]] = cur
				names = append(names, f[0])
				seqs = append(seqs, new(strings.Builder))
			}
			seqs[cur].WriteString(strings.Join(f[1:], ""))
		case cur < 0:
			return nil, parseErr(format, fname, "line %d: residues before first #name", pos+1)
		default:
			seqs[cur].WriteString(removeSpace(t))
		}
	}
	res := make([]string, len(seqs))
	for i, b := range seqs {
		res[i] = b.String()
	}
	aln, err := fromLoaded(format, fname, names, res)
	if err != nil {
		return nil, err
	}
	aln.Metadata = strings.Join(meta, "\n")
	return aln, nil
}

func (c *MegaSequential) Load(fname string) (*alignment.Alignment, error) {
	return loadMega(c.name, fname)
}

func (c *MegaInterleaved) Load(fname string) (*alignment.Alignment, error) {
	return loadMega(c.name, fname)
}

func (c *MegaInterleaved) Save(*alignment.Alignment, io.Writer, *SaveConfig) error {
	return c.saveErr(c.name)
}

// megaType goes on the !Format line.
func megaType(t alignment.SeqType) string {
	switch t.Base() {
	case alignment.DNA:
		return "DNA"
	case alignment.RNA:
		return "RNA"
	}
	return "protein"
}

// Save writes each sequence after its "#name" line in groups of ten,
// fifty residues to a line.
func (c *MegaSequential) Save(aln *alignment.Alignment, w io.Writer, cfg *SaveConfig) error {
	cfg = orDefault(cfg)
	if err := needAligned(c.name, aln); err != nil {
		return err
	}
	r := keptRows(aln, cfg, false)
	bw := newWriter(w)
	fmt.Fprintf(bw, "#MEGA\n!Title %s;\n", aln.Stem())
	const fmtLine = "!Format DataType=%s NSeqs=%d Nsites=%d indel=- CodeTable=Standard;\n"
	fmt.Fprintf(bw, fmtLine, megaType(aln.Type()), len(r.seqs), r.nres)
	for i, s := range r.seqs {
		fmt.Fprintf(bw, "\n#%s\n", r.names[i])
		for j := 0; j < len(s); j += groupedLine {
			fmt.Fprint(bw, grouped(chunk(s, j, groupedLine), groupWidth), "\n")
		}
	}
	fmt.Fprint(bw, "\n")
	return finish(bw, c.name)
}
