// Package zwrap takes a file pointer and optionally wraps it so upon
// calling Close, the decompressor will be closed, followed by the
// underlying file.
// Alignment files are often kept gzipped. Readers here do not care,
// they get plain text either way.

package zwrap

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"errors"
	"io"
	"os"
)

var gzMagic = []byte{0x1f, 0x8b}

type FpGzip struct { // This is what we return.
	fp   io.ReadCloser
	rdr  io.Reader // buffered view of fp, or the decompressor
	zrdr *gzip.Reader
}

// Close closes the decompressor, then the underlying backing readCloser.
func (fc *FpGzip) Close() error {
	if fc.zrdr == nil {
		return fc.fp.Close()
	}
	return errors.Join(fc.zrdr.Close(), fc.fp.Close())
}

// Read makes sure we read from the compressed stream and
// not the underlying file stream.
func (fc *FpGzip) Read(p []byte) (int, error) { return fc.rdr.Read(p) }

// Compressed says if we are reading through gzip.
func (fc *FpGzip) Compressed() bool { return fc.zrdr != nil }

// IsGzip looks at the first bytes of some data for the gzip magic number.
func IsGzip(b []byte) bool { return bytes.HasPrefix(b, gzMagic) }

// Wrap takes a source like a file pointer and peeks at the first two
// bytes. If they are the gzip magic number, reads go through a
// decompressor. Otherwise we read the source as it is. This works on
// streams which cannot seek.
func Wrap(fp io.ReadCloser) (*FpGzip, error) {
	br := bufio.NewReader(fp)
	fpz := &FpGzip{fp: fp, rdr: br}
	head, err := br.Peek(len(gzMagic))
	if err != nil && err != io.EOF { // A short or empty file is not an error.
		return fpz, err
	}
	if !IsGzip(head) {
		return fpz, nil
	}
	if fpz.zrdr, err = gzip.NewReader(br); err != nil {
		return fpz, err
	}
	fpz.rdr = fpz.zrdr
	return fpz, nil
}

// Open opens a named file for reading and wraps it.
func Open(fname string) (*FpGzip, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	fpz, err := Wrap(fp)
	if err != nil {
		fp.Close()
		return nil, err
	}
	return fpz, nil
}

// Inflate returns data unchanged, unless it is gzipped, in which case
// it returns the decompressed bytes.
func Inflate(data []byte) ([]byte, error) {
	if !IsGzip(data) {
		return data, nil
	}
	fpz, err := Wrap(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return nil, err
	}
	defer fpz.Close()
	return io.ReadAll(fpz)
}
