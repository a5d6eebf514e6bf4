// 15 Oct 2026

// Package codec reads and writes multiple sequence alignments in the
// old text formats (fasta, clustal, nexus, phylip, mega, pir and an
// html report) and guesses which format a file is in.
//
// Every format is a Codec. A Registry holds the codecs in a fixed
// order and picks one by looking at a file, or by name.
package codec

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/andrew-torda/readal/pkg/alignment"
)

// SaveConfig is what the caller wants to change on output.
type SaveConfig struct {
	Reverse    bool         // write each sequence backwards
	KeepHeader bool         // write the original header lines instead of names
	Logger     *slog.Logger // for warnings. nil means slog.Default()
}

// Codec is one alignment format.
type Codec interface {
	Name() string      // canonical name, like "phylip32"
	Extension() string // file extension without the dot
	CanLoad() bool
	CanSave() bool

	// Detect looks at the content of a file and returns 0 if it does not
	// recognise it. Bigger numbers mean a more specific match.
	Detect(content io.ReadSeeker) int

	Load(fname string) (*alignment.Alignment, error)
	Save(aln *alignment.Alignment, w io.Writer, cfg *SaveConfig) error

	// MatchesName is true for the canonical name and any old aliases.
	// Comparison is exact and case sensitive.
	MatchesName(token string) bool
}

// base carries the name handling shared by all codecs.
type base struct {
	name    string
	ext     string
	aliases []string
}

func (b base) Name() string      { return b.name }
func (b base) Extension() string { return b.ext }

func (b base) MatchesName(token string) bool {
	if token == b.name {
		return true
	}
	for _, a := range b.aliases {
		if token == a {
			return true
		}
	}
	return false
}

// saveOnly is embedded by formats which can only be written.
type saveOnly struct{}

func (saveOnly) CanLoad() bool             { return false }
func (saveOnly) CanSave() bool             { return true }
func (saveOnly) Detect(io.ReadSeeker) int  { return 0 }
func (saveOnly) loadErr(name string) error { return fmt.Errorf("%w: %s", ErrCannotLoad, name) }

// loadOnly is embedded by formats which can only be read.
type loadOnly struct{}

func (loadOnly) CanLoad() bool             { return true }
func (loadOnly) CanSave() bool             { return false }
func (loadOnly) saveErr(name string) error { return fmt.Errorf("%w: %s", ErrCannotSave, name) }

// loadSave is embedded by formats which go both ways.
type loadSave struct{}

func (loadSave) CanLoad() bool { return true }
func (loadSave) CanSave() bool { return true }

// fromLoaded finishes off an alignment a reader has filled and checks
// that it makes sense.
func fromLoaded(format, fname string, names, seqs []string) (*alignment.Alignment, error) {
	if len(names) == 0 {
		return nil, parseErr(format, fname, "no sequences found")
	}
	aln, err := alignment.New(names, seqs)
	if err != nil {
		return nil, parseErr(format, fname, "%v", err)
	}
	aln.SourcePath = fname
	return aln, nil
}

// needAligned is called by writers which can only write rectangles.
func needAligned(format string, aln *alignment.Alignment) error {
	if !aln.Aligned {
		return fmt.Errorf("%w: %s format needs aligned sequences", ErrUnaligned, format)
	}
	return nil
}
