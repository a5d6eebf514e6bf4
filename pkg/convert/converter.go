// 17 Oct 2026

// Package convert reads alignments and writes them out again in one or
// more formats. It takes care of output file names, so that a batch of
// inputs and a list of formats does not trash files that are already
// there, and it keeps going when single items fail.
package convert

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/andrew-torda/readal/pkg/alignment"
	"github.com/andrew-torda/readal/pkg/codec"
	. "github.com/andrew-torda/readal/pkg/seq/common"
)

// dfltFormat is used when no output format is given.
const dfltFormat = "fasta"

// Converter ties a registry to a configuration.
type Converter struct {
	Registry *codec.Registry
	Config   *Config
	Stdout   io.Writer // where output goes with an empty pattern. nil means os.Stdout
}

// New returns a converter with the default registry. A nil config
// means DefaultConfig().
func New(cfg *Config) *Converter {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Converter{Registry: codec.DefaultRegistry(), Config: cfg}
}

func (cv *Converter) stdout() io.Writer {
	if cv.Stdout == nil {
		return os.Stdout
	}
	return cv.Stdout
}

// LoadOne reads an alignment from a file in whatever format it is.
// On failure, the error is logged and nil returned.
func (cv *Converter) LoadOne(path string) *alignment.Alignment {
	aln, c, err := cv.Registry.Load(path)
	if err != nil {
		format := ""
		if c != nil {
			format = c.Name()
		}
		cv.Config.logger().Error("cannot load alignment", "path", path, "format", format, "err", err)
		return nil
	}
	cv.Config.logger().Debug("loaded", "path", path, "format", c.Name(), "nseq", aln.NSeq, "nres", aln.NRes)
	return aln
}

// LoadMany reads every file it can. The ones that fail are left out,
// so the result may be shorter than paths.
func (cv *Converter) LoadMany(paths []string) []*alignment.Alignment {
	var alns []*alignment.Alignment
	for _, p := range paths {
		if aln := cv.LoadOne(p); aln != nil {
			alns = append(alns, aln)
		}
	}
	return alns
}

// resolveFormats turns format names into codecs that can write.
// Names that do not resolve are logged and dropped. ok is false if
// any were dropped.
func (cv *Converter) resolveFormats(formats []string) (codecs []codec.Codec, ok bool) {
	if len(formats) == 0 {
		formats = []string{dfltFormat}
	}
	ok = true
	for _, f := range formats {
		c, err := cv.Registry.ResolveByName(f)
		if err != nil {
			cv.Config.logger().Error("output format not recognised", "format", f)
			ok = false
			continue
		}
		if !c.CanSave() {
			cv.Config.logger().Error("format cannot be written", "format", f)
			ok = false
			continue
		}
		codecs = append(codecs, c)
	}
	return codecs, ok
}

// checkConsole stops us writing more than one format to the terminal.
func checkConsole(pattern string, codecs []codec.Codec) error {
	if IsStdout(pattern) && len(codecs) > 1 {
		const msg = "%w: %d formats requested"
		return fmt.Errorf(msg, codec.ErrAmbiguousConsoleOutput, len(codecs))
	}
	return nil
}

// ConsoleCheck is checkConsole before anything has been read, so
// nothing is logged about the formats yet.
func (cv *Converter) ConsoleCheck(pattern string, formats []string) error {
	var codecs []codec.Codec
	for _, f := range formats {
		if c, err := cv.Registry.ResolveByName(f); err == nil && c.CanSave() {
			codecs = append(codecs, c)
		}
	}
	return checkConsole(pattern, codecs)
}

// SaveOne writes an alignment in each of the formats. It returns true
// only if every one worked. A failure in one format does not stop the
// others.
func (cv *Converter) SaveOne(aln *alignment.Alignment, pattern string, formats []string) bool {
	return cv.SaveMany([]*alignment.Alignment{aln}, pattern, formats)
}

// SaveMany writes every alignment in every format. With no output
// pattern, only one format is allowed and nothing at all is written
// if there are more.
func (cv *Converter) SaveMany(alns []*alignment.Alignment, pattern string, formats []string) bool {
	codecs, ok := cv.resolveFormats(formats)
	if err := checkConsole(pattern, codecs); err != nil {
		cv.Config.logger().Error("refusing to write", "err", err)
		return false
	}
	for _, aln := range alns {
		for _, c := range codecs {
			if err := cv.save(aln, pattern, c); err != nil {
				cv.Config.logger().Error("save failed", "path", aln.SourcePath, "format", c.Name(), "err", err)
				ok = false
			}
		}
	}
	return ok
}

// save writes one alignment in one format.
func (cv *Converter) save(aln *alignment.Alignment, pattern string, c codec.Codec) error {
	if aln.NSeq == 0 || aln.NRes == 0 {
		return fmt.Errorf("%w: %d sequences, %d residues", codec.ErrEmptyAlignment, aln.NSeq, aln.NRes)
	}
	if IsStdout(pattern) {
		return c.Save(aln, cv.stdout(), cv.Config.saveConfig())
	}
	path := ExpandPattern(pattern, aln.Stem(), c)
	if !cv.Config.Append {
		var err error
		path, err = ResolvePath(path, cv.Config.MaxSuffix, cv.Config.Overwrite, cv.Config.logger())
		if errors.Is(err, codec.ErrRenameCollisionExhausted) {
			cv.Config.logger().Warn("writing over existing file", "path", path, "err", err)
		} else if err != nil {
			return err
		}
	}
	flag := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if cv.Config.Append {
		flag = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	}
	fp, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return fmt.Errorf("%w: opening %s: %v", codec.ErrSaveFailed, path, err)
	}
	err = c.Save(aln, fp, cv.Config.saveConfig())
	if errClose := fp.Close(); err == nil && errClose != nil {
		err = fmt.Errorf("%w: closing %s: %v", codec.ErrSaveFailed, path, errClose)
	}
	if err == nil {
		cv.Config.logger().Debug("wrote", "path", path, "format", c.Name())
	}
	return err
}

// ConvertBatch loads every input and writes each in every format. It is
// false if there are no inputs, if any input cannot be read, or if any
// save fails.
func (cv *Converter) ConvertBatch(inputs []string, pattern string, formats []string) bool {
	if len(inputs) == 0 {
		cv.Config.logger().Error("no input files")
		return false
	}
	if err := cv.ConsoleCheck(pattern, formats); err != nil {
		cv.Config.logger().Error("refusing to convert", "err", err)
		return false
	}
	alns := cv.LoadMany(inputs)
	ok := cv.SaveMany(alns, pattern, formats)
	return ok && len(alns) == len(inputs)
}

// SplitKeepingEachSequence makes one alignment per sequence. Masks are
// not carried over, so every sequence turns up, whatever was hidden.
// Only the name and residues are copied. Each new alignment is named
// after its sequence.
func SplitKeepingEachSequence(aln *alignment.Alignment) []*alignment.Alignment {
	out := make([]*alignment.Alignment, 0, aln.OrigNSeq)
	for i := 0; i < aln.OrigNSeq; i++ {
		one, _ := alignment.New([]string{aln.Names[i]}, []string{aln.Residues[i]}) // lengths always match
		one.SourcePath = aln.Names[i]
		out = append(out, one)
	}
	return out
}
