package stream

import (
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrUnsatisfiable marks a well-formed range that cannot be served from the
// file (start past the end of the file or past the requested end). Callers
// map it to 416.
var ErrUnsatisfiable = errors.New("unsatisfiable range")

// ByteRange is an inclusive byte window [Start, End] within a file.
type ByteRange struct {
	Start int64
	End   int64
}

func (r ByteRange) Length() int64 {
	return r.End - r.Start + 1
}

// ParseRange interprets a Range header against a file of the given size. A
// missing or syntactically malformed header (including multi-range headers,
// which this server does not support) returns (nil, nil) and the caller
// serves full content; RFC 7233 tells servers to ignore ranges they cannot
// parse. End values past EOF are clamped to the last byte.
func ParseRange(header string, size int64) (*ByteRange, error) {
	if header == "" {
		return nil, nil
	}
	spec, ok := strings.CutPrefix(header, "bytes=")
	if !ok || strings.Contains(spec, ",") {
		return nil, nil
	}
	startStr, endStr, ok := strings.Cut(spec, "-")
	if !ok {
		return nil, nil
	}

	start, err := strconv.ParseInt(startStr, 10, 64)
	if err != nil || start < 0 {
		return nil, nil
	}

	end := size - 1
	if endStr != "" {
		end, err = strconv.ParseInt(endStr, 10, 64)
		if err != nil {
			return nil, nil
		}
	}
	if end >= size {
		end = size - 1
	}
	if start > end || start >= size {
		return nil, ErrUnsatisfiable
	}
	return &ByteRange{Start: start, End: end}, nil
}

// Open returns a lazy reader over the requested window of the file, or over
// the whole file when r is nil. Nothing is buffered: bytes are read as the
// response stream drains, so file size never affects memory use. The caller
// (or fasthttp, which closes io.Closer body streams when the response ends
// or the client disconnects) must close it.
func Open(path string, r *ByteRange) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return f, nil
	}
	if _, err := f.Seek(r.Start, io.SeekStart); err != nil {
		f.Close()
		return nil, err
	}
	return &window{file: f, reader: io.LimitReader(f, r.Length())}, nil
}

type window struct {
	file   *os.File
	reader io.Reader
}

func (w *window) Read(p []byte) (int, error) {
	return w.reader.Read(p)
}

func (w *window) Close() error {
	return w.file.Close()
}
