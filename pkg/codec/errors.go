// 15 Oct 2026

package codec

import "errors"

// Things that go wrong. Callers should use errors.Is, since these are
// always wrapped with a file name or format name.
var (
	ErrCannotOpenFile           = errors.New("cannot open file")
	ErrEmptyFile                = errors.New("empty file")
	ErrUnrecognizedFormat       = errors.New("unrecognized format")
	ErrUnaligned                = errors.New("sequences are not aligned")
	ErrEmptyAlignment           = errors.New("alignment has no sequences or no residues")
	ErrAmbiguousConsoleOutput   = errors.New("more than one output format, but no output file pattern")
	ErrSaveFailed               = errors.New("save failed")
	ErrRenameCollisionExhausted = errors.New("no free suffix to avoid overwriting file")
	ErrFormatParse              = errors.New("format parse error")
	ErrCannotLoad               = errors.New("format cannot be read")
	ErrCannotSave               = errors.New("format cannot be written")
)
