// Package brokenio wraps readers and writers so they fail on purpose.
// Typical use: you have a file pointer or some other reader, and you
// write
//
//	rdr = brokenio.NewReader(rdr)
//
// Everything works as before, but with artificial errors. When a read
// trashes data, we return an error. When we simulate a zero length
// file on the first read, there is no error, just io.EOF, which is
// what one sees on a real empty file.
// A Writer accepts a fixed number of bytes and then fails, like a full
// disc.
package brokenio

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
)

// ErrBrokenWrite is returned by a Writer once its budget is used up.
var ErrBrokenWrite = errors.New("brokenio: write failed")

// A BrknRdrClsr is modelled on the readers in the standard library,
// but with variables controlling the frequency of errors.
// These are the fraction of time an error will take place,
// so 0.05 means failure in 5% of the cases.
// If verbose is true, print out the amount of data when the file is closed.
type BrknRdrClsr struct {
	rdrOrig      io.ReadCloser // Wrapped reader
	probZeroFile float32       // Probability of returning a zero length file
	probFail     float32
	fracFail     float32
	nCalled      int
	nByte        int
	verbose      bool
}

// dfltReader sets default values for a new brokenio reader.
var dfltReader = BrknRdrClsr{
	fracFail: 0.5,
}

// SetVerbose sets the verbosity flag to true or false
func (r *BrknRdrClsr) SetVerbose(newV bool) { r.verbose = newV }

// SetFracFail sets the amount of the bytes which will be trashed
func (r *BrknRdrClsr) SetFracFail(frac float32) { r.fracFail = frac }

// SetProbZeroFile sets the rate at which we simply return 0 bytes on the
// first read. It must be a value from 0 to 1. We do not check.
func (r *BrknRdrClsr) SetProbZeroFile(prob float32) { r.probZeroFile = prob }

// SetProbFail set the probability of a read failure.
// It must be between zero and 1.
func (r *BrknRdrClsr) SetProbFail(prob float32) { r.probFail = prob }

// NewReader returns a wrapper around the old reader.
func NewReader(rIn io.ReadCloser) *BrknRdrClsr {
	rOut := dfltReader
	rOut.rdrOrig = rIn
	return &rOut
}

// trashSlice wipes out the second part of a slice.
// The amount to wipe out is given by a fraction, so 0.3
// will wipe out the second 30 % of a slice
func trashSlice(p []byte, frac float32) (int, error) {
	nkeep := int(float32(len(p)) * (1. - frac))
	if nkeep == len(p) {
		return nkeep, nil
	}
	err := fmt.Errorf("randomly wiped out last %d of %d", len(p)-nkeep, len(p))
	clear(p[nkeep:])
	return nkeep, err
}

// Read wraps the original reader and sums up the amount of data that
// has gone through. It generates an error with a probability given by probFail.
// On the first call, we might return zero data to simulate a zero length file.
func (r *BrknRdrClsr) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	if r.nCalled == 0 && r.probZeroFile > 0 {
		if rand.Float32() < r.probZeroFile {
			return 0, io.EOF
		}
	}
	n, err = r.rdrOrig.Read(p)
	r.nCalled++
	r.nByte += n
	if rand.Float32() < r.probFail && r.fracFail > 0 {
		return trashSlice(p[:n], r.fracFail)
	}
	return n, err
}

// Close wraps the original Close method.
func (r *BrknRdrClsr) Close() error {
	if r.verbose {
		fmt.Println("Closing", r.nCalled, "calls and", r.nByte, "bytes")
	}
	return r.rdrOrig.Close()
}

// Writer passes on up to budget bytes to the wrapped writer, then fails.
// A nil wrapped writer means the bytes are thrown away.
type Writer struct {
	w      io.Writer
	budget int
	nByte  int
}

// NewWriter returns a writer which fails after budget bytes. A budget
// of zero fails on the first write.
func NewWriter(w io.Writer, budget int) *Writer {
	if w == nil {
		w = io.Discard
	}
	return &Writer{w: w, budget: budget}
}

// Write writes what is left of the budget and then returns ErrBrokenWrite.
func (bw *Writer) Write(p []byte) (int, error) {
	left := bw.budget - bw.nByte
	if left >= len(p) {
		n, err := bw.w.Write(p)
		bw.nByte += n
		return n, err
	}
	n := 0
	if left > 0 {
		n, _ = bw.w.Write(p[:left])
		bw.nByte += n
	}
	return n, ErrBrokenWrite
}

// Written is the number of bytes which got through.
func (bw *Writer) Written() int { return bw.nByte }
