// 14 Oct 2026

package alignment

import (
	. "github.com/andrew-torda/readal/pkg/seq/common"
)

// A marker to say what type of sequence we have, protein, DNA, ...
// The Degenerate bit may be or'd onto DNA, RNA or Protein.
type SeqType byte

const (
	Unchecked SeqType = iota // Has not been looked at yet
	Unknown                  // Really unknown, not a protein or nucleotide
	Protein                  //
	DNA                      //
	RNA                      //
)

const Degenerate SeqType = 1 << 7

const (
	nLook     = 100  // look at this many residues per sequence
	ntideFrac = 0.95 // fraction of residues which must be nucleotides
)

// Base strips off the degenerate flag.
func (t SeqType) Base() SeqType { return t &^ Degenerate }

// IsDegenerate says if we saw ambiguity codes.
func (t SeqType) IsDegenerate() bool { return t&Degenerate != 0 }

// IsNtide is true for DNA and RNA, degenerate or not.
func (t SeqType) IsNtide() bool { b := t.Base(); return b == DNA || b == RNA }

// String gives the names used in the type report.
func (t SeqType) String() string {
	deg := ""
	if t.IsDegenerate() {
		deg = "_degenerate_codes"
	}
	switch t.Base() {
	case DNA:
		return "nucleotides:dna" + deg
	case RNA:
		return "nucleotides:rna" + deg
	case Protein:
		return "amino-acids" + deg
	case Unchecked:
		return "unchecked"
	}
	return "unknown"
}

// symbol classes, indexed by upper case character
var (
	dnaSym = [256]bool{'A': true, 'C': true, 'G': true, 'T': true, 'N': true}
	rnaSym = [256]bool{'A': true, 'C': true, 'G': true, 'U': true, 'N': true}
	degSym = [256]bool{'R': true, 'Y': true, 'S': true, 'W': true, 'K': true,
		'M': true, 'B': true, 'D': true, 'H': true, 'V': true}
	aaAmbig = [256]bool{'B': true, 'Z': true, 'J': true, 'X': true}
)

// upper only knows about ascii letters
func upper(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

// Type looks at the residues and returns its best guess as to what
// kind of sequences we have. The answer is cached.
// For each sequence, we look at the first hundred non-gap residues.
// If less than 95 % of them look like nucleotides (allowing for
// IUPAC ambiguity codes), the whole alignment is protein. Otherwise
// the sequence votes for DNA or RNA.
func (aln *Alignment) Type() SeqType {
	if aln.stype != Unchecked {
		return aln.stype
	}
	aln.stype = getType(aln.Residues)
	return aln.stype
}

func getType(seqs []string) SeqType {
	var nDNA, nRNA, nSeen int
	var deg bool
	for _, s := range seqs {
		var k, hitDNA, hitRNA, hitDeg int
		for j := 0; j < len(s) && k < nLook; j++ {
			c := upper(s[j])
			if c == GapChar {
				continue
			}
			k++
			if dnaSym[c] {
				hitDNA++
			}
			if rnaSym[c] {
				hitRNA++
			}
			if degSym[c] {
				hitDeg++
			}
		}
		if k == 0 {
			continue
		}
		nSeen++
		fk := float32(k)
		if float32(hitDNA+hitDeg)/fk < ntideFrac && float32(hitRNA+hitDeg)/fk < ntideFrac {
			return proteinType(seqs)
		}
		if hitDeg > 0 {
			deg = true
		}
		if hitRNA > hitDNA {
			nRNA++
		} else {
			nDNA++
		}
	}
	if nSeen == 0 {
		return Unknown
	}
	t := DNA
	if nRNA > nDNA {
		t = RNA
	}
	if deg {
		t |= Degenerate
	}
	return t
}

// proteinType looks for the amino acid ambiguity codes.
func proteinType(seqs []string) SeqType {
	for _, s := range seqs {
		for j := 0; j < len(s); j++ {
			if aaAmbig[upper(s[j])] {
				return Protein | Degenerate
			}
		}
	}
	return Protein
}
