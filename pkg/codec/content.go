// 15 Oct 2026

package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/andrew-torda/readal/pkg/zwrap"
)

// content is the whole of an input file, held for detection. The file is
// mapped read only. Each codec gets its own reader on the same bytes,
// so nobody can disturb anybody else's position.
type content struct {
	fp   *os.File
	mm   mmap.MMap
	data []byte
}

// openContent maps a file. If it is compressed, we decompress it into
// memory and drop the mapping.
func openContent(fname string) (*content, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCannotOpenFile, err)
	}
	fi, err := fp.Stat()
	if err != nil {
		fp.Close()
		return nil, fmt.Errorf("%w: %v", ErrCannotOpenFile, err)
	}
	if fi.IsDir() {
		fp.Close()
		return nil, fmt.Errorf("%w: %s is a directory", ErrCannotOpenFile, fname)
	}
	c := &content{fp: fp}
	if fi.Size() == 0 { // mmap does not like zero length files
		c.Close()
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, fname)
	}
	if c.mm, err = mmap.Map(fp, mmap.RDONLY, 0); err != nil {
		c.data, err = io.ReadAll(fp) // Some files (pipes, /proc) cannot be mapped
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("%w: reading %s: %v", ErrCannotOpenFile, fname, err)
		}
	} else {
		c.data = c.mm
	}
	if zwrap.IsGzip(c.data) {
		raw, err := zwrap.Inflate(c.data)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("%w: decompressing %s: %v", ErrCannotOpenFile, fname, err)
		}
		c.data = raw
	}
	if len(c.data) == 0 {
		c.Close()
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, fname)
	}
	return c, nil
}

// view returns a fresh seekable reader positioned at the start.
func (c *content) view() io.ReadSeeker { return bytes.NewReader(c.data) }

// Close unmaps and closes the file.
func (c *content) Close() error {
	var errUnmap error
	if c.mm != nil {
		errUnmap = c.mm.Unmap()
		c.mm = nil
	}
	c.data = nil
	return errors.Join(errUnmap, c.fp.Close())
}
