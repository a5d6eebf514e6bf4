// 14 Oct 2026

// Package alignment holds a multiple sequence alignment as it is read
// from one file, plus masks that say which sequences and which columns
// should be written out again.
//
// Writers walk over the original number of sequences and residues and
// ask KeepSeq / KeepRes before emitting anything. Trimming code only ever
// sets masks. Names and residues are not touched after loading.
package alignment

import (
	"fmt"
	"strings"

	. "github.com/andrew-torda/readal/pkg/seq/common"
)

// NoInputFileName stands in for the stem of an alignment that did not
// come from a file.
const NoInputFileName = "NoInputFileName"

// Alignment is one multiple sequence alignment.
type Alignment struct {
	Names      []string // one per original sequence
	Residues   []string // indexed like Names
	HeaderInfo []string // optional, full header lines as read
	Metadata   string   // dialect specific tokens, like the nexus FORMAT line
	SourcePath string   // where we came from. Its stem is used for [in]
	SeqMask    []bool   // nil, or false where a sequence is excluded
	ResMask    []bool   // nil, or false where a column is excluded
	NSeq       int      // current number of sequences
	NRes       int      // current number of columns
	OrigNSeq   int
	OrigNRes   int
	Aligned    bool // all residue strings have the same length
	stype      SeqType
}

// New makes an alignment from names and residue strings. The slices
// are taken over, not copied. Residue counts come from the longest
// sequence.
func New(names, residues []string) (*Alignment, error) {
	if len(names) != len(residues) {
		const msg = "%d names but %d sequences"
		return nil, fmt.Errorf(msg, len(names), len(residues))
	}
	aln := &Alignment{Names: names, Residues: residues}
	aln.fillCounts()
	return aln, nil
}

// fillCounts sets the dimensions and the aligned flag from the
// residue strings.
func (aln *Alignment) fillCounts() {
	aln.OrigNSeq = len(aln.Residues)
	aln.Aligned = true
	aln.OrigNRes = 0
	for i, s := range aln.Residues {
		if i > 0 && len(s) != len(aln.Residues[0]) {
			aln.Aligned = false
		}
		if len(s) > aln.OrigNRes {
			aln.OrigNRes = len(s)
		}
	}
	aln.NSeq = aln.OrigNSeq
	aln.NRes = aln.OrigNRes
	aln.SeqMask, aln.ResMask = nil, nil
	aln.stype = Unchecked
}

// Check looks at the invariants that should hold after loading.
func (aln *Alignment) Check() error {
	if len(aln.Names) != aln.OrigNSeq || len(aln.Residues) != aln.OrigNSeq {
		const msg = "have %d names, %d sequences, but expected %d"
		return fmt.Errorf(msg, len(aln.Names), len(aln.Residues), aln.OrigNSeq)
	}
	if aln.HeaderInfo != nil && len(aln.HeaderInfo) != aln.OrigNSeq {
		return fmt.Errorf("have %d header lines for %d sequences", len(aln.HeaderInfo), aln.OrigNSeq)
	}
	if aln.Aligned {
		for i, s := range aln.Residues {
			if len(s) != aln.OrigNRes {
				const msg = "sequence %s has length %d, alignment length %d"
				return fmt.Errorf(msg, aln.Names[i], len(s), aln.OrigNRes)
			}
		}
	}
	if aln.SeqMask != nil && len(aln.SeqMask) != aln.OrigNSeq {
		return fmt.Errorf("sequence mask has %d entries, want %d", len(aln.SeqMask), aln.OrigNSeq)
	}
	if aln.ResMask != nil && len(aln.ResMask) != aln.OrigNRes {
		return fmt.Errorf("residue mask has %d entries, want %d", len(aln.ResMask), aln.OrigNRes)
	}
	return nil
}

// KeepSeq says if sequence i should be written.
func (aln *Alignment) KeepSeq(i int) bool { return aln.SeqMask == nil || aln.SeqMask[i] }

// KeepRes says if column j should be written.
func (aln *Alignment) KeepRes(j int) bool { return aln.ResMask == nil || aln.ResMask[j] }

// countTrue is the number of entries in b that are set.
func countTrue(b []bool) (n int) {
	for _, v := range b {
		if v {
			n++
		}
	}
	return n
}

// SetSeqMask installs a sequence mask. A nil mask means keep everything.
func (aln *Alignment) SetSeqMask(mask []bool) error {
	if mask == nil {
		aln.SeqMask, aln.NSeq = nil, aln.OrigNSeq
		return nil
	}
	if len(mask) != aln.OrigNSeq {
		return fmt.Errorf("sequence mask has %d entries, want %d", len(mask), aln.OrigNSeq)
	}
	aln.SeqMask = mask
	aln.NSeq = countTrue(mask)
	return nil
}

// SetResMask installs a column mask. A nil mask means keep everything.
func (aln *Alignment) SetResMask(mask []bool) error {
	if mask == nil {
		aln.ResMask, aln.NRes = nil, aln.OrigNRes
		return nil
	}
	if len(mask) != aln.OrigNRes {
		return fmt.Errorf("residue mask has %d entries, want %d", len(mask), aln.OrigNRes)
	}
	aln.ResMask = mask
	aln.NRes = countTrue(mask)
	return nil
}

// SeqOut returns sequence i as it should be written. Masked columns
// are removed and, if reverse is set, the result is reversed.
// If there is no mask and no reversal we hand back the stored string.
func (aln *Alignment) SeqOut(i int, reverse bool) string {
	s := aln.Residues[i]
	if aln.ResMask != nil {
		var b strings.Builder
		b.Grow(aln.NRes)
		for j := 0; j < len(s); j++ {
			if aln.ResMask[j] {
				b.WriteByte(s[j])
			}
		}
		s = b.String()
	}
	if reverse {
		s = Reverse(s)
	}
	return s
}

// NameOut returns the name to write for sequence i. With keepHeader,
// the whole original header line is used if there is one.
func (aln *Alignment) NameOut(i int, keepHeader bool) string {
	if keepHeader && aln.HeaderInfo != nil && aln.HeaderInfo[i] != "" {
		return aln.HeaderInfo[i]
	}
	return aln.Names[i]
}

// MaxNameLen is the length of the longest name amongst the kept
// sequences.
func (aln *Alignment) MaxNameLen() (n int) {
	for i, name := range aln.Names {
		if aln.KeepSeq(i) && len(name) > n {
			n = len(name)
		}
	}
	return n
}

// Reverse returns a string backwards. Sequences are ascii, so we
// work on bytes.
func Reverse(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

// Copy returns a deep copy. Nothing is shared with the original.
func (aln *Alignment) Copy() *Alignment {
	cp := *aln
	cp.Names = append([]string(nil), aln.Names...)
	cp.Residues = append([]string(nil), aln.Residues...)
	if aln.HeaderInfo != nil {
		cp.HeaderInfo = append([]string(nil), aln.HeaderInfo...)
	}
	if aln.SeqMask != nil {
		cp.SeqMask = append([]bool(nil), aln.SeqMask...)
	}
	if aln.ResMask != nil {
		cp.ResMask = append([]bool(nil), aln.ResMask...)
	}
	return &cp
}

// Ungapped returns the number of non-gap characters in sequence i,
// looking only at kept columns.
func (aln *Alignment) Ungapped(i int) (n int) {
	s := aln.Residues[i]
	for j := 0; j < len(s); j++ {
		if s[j] != GapChar && aln.KeepRes(j) {
			n++
		}
	}
	return n
}

// Stem gives the [in] token for output file names.
func (aln *Alignment) Stem() string {
	if s := Stem(aln.SourcePath); s != "" {
		return s
	}
	return NoInputFileName
}
