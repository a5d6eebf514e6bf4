// 17 Oct 2026

package convert

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/andrew-torda/readal/pkg/codec"
)

// Tokens in an output pattern.
const (
	tokIn  = "[in]"
	tokFmt = "[format]"
	tokExt = "[extension]"
)

// ExpandPattern fills in an output pattern. [in] becomes the input
// stem, [format] the codec name and [extension] its file extension.
func ExpandPattern(pattern, stem string, c codec.Codec) string {
	r := strings.NewReplacer(tokIn, stem, tokFmt, c.Name(), tokExt, c.Extension())
	return r.Replace(pattern)
}

// exists is true if there is anything at all at path.
func exists(path string) bool {
	_, err := os.Lstat(path)
	return !errors.Is(err, os.ErrNotExist)
}

// ResolvePath finds a name that will not trash an existing file.
// If path is free, it is returned. Otherwise path.0, path.1, ... up to
// path.maxSuffix are tried. If they are all taken, the result is path
// itself when overwrite is set, or the last name tried, together with
// ErrRenameCollisionExhausted. A rename and a failed rename are both
// logged as warnings.
func ResolvePath(path string, maxSuffix int, overwrite bool, logger *slog.Logger) (string, error) {
	if !exists(path) {
		return path, nil
	}
	var last string
	for i := 0; ; i++ {
		last = fmt.Sprintf("%s.%d", path, i)
		if !exists(last) {
			warnRenamed(logger, path, last)
			return last, nil
		}
		if i >= maxSuffix {
			break
		}
	}
	if overwrite {
		logger.Warn("Warning, trashing old version of", "path", path)
		last = path
	} else {
		const msg = "Failed to rename %s, no free suffix. Writing over %s"
		logger.Warn(fmt.Sprintf(msg, path, last), "path", path)
	}
	return last, fmt.Errorf("%w: %s", codec.ErrRenameCollisionExhausted, path)
}

func warnRenamed(logger *slog.Logger, path, final string) {
	const msg = "To prevent overriding file %s a suffix has been added. Final filename: %s"
	logger.Warn(fmt.Sprintf(msg, path, final), "path", path)
}
