package compress

import (
	"errors"
	"io"
)

// ErrTooLarge is returned by a LimitedReader once the stream yields more
// bytes than its limit.
var ErrTooLarge = errors.New("decompressed stream exceeds size limit")

// LimitedReader reads at most a fixed number of bytes from a decompressed
// stream. Unlike io.LimitReader it fails with ErrTooLarge instead of
// reporting EOF, so a truncated payload is never mistaken for a short file.
type LimitedReader struct {
	r        io.Reader
	left     int64
	exceeded bool
}

// NewLimitedReader returns a reader that fails once more than n bytes are
// read from r.
func NewLimitedReader(r io.Reader, n int64) *LimitedReader {
	return &LimitedReader{r: r, left: n}
}

func (l *LimitedReader) Read(p []byte) (int, error) {
	if l.exceeded {
		return 0, ErrTooLarge
	}
	// Ask for one byte past the limit to tell "exactly n" from "more".
	if int64(len(p)) > l.left+1 {
		p = p[:l.left+1]
	}
	n, err := l.r.Read(p)
	if int64(n) <= l.left {
		l.left -= int64(n)
		return n, err
	}
	n = int(l.left)
	l.left = 0
	l.exceeded = true
	return n, ErrTooLarge
}

// Exceeded reports whether the stream went past the limit.
func (l *LimitedReader) Exceeded() bool {
	return l.exceeded
}
