package stream

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRange(t *testing.T) {
	const size = 1000

	tests := []struct {
		name   string
		header string
		want   *ByteRange
		err    error
	}{
		{name: "no header", header: "", want: nil},
		{name: "first hundred", header: "bytes=0-99", want: &ByteRange{0, 99}},
		{name: "open ended", header: "bytes=100-", want: &ByteRange{100, 999}},
		{name: "end clamped to eof", header: "bytes=0-1999", want: &ByteRange{0, 999}},
		{name: "single byte", header: "bytes=42-42", want: &ByteRange{42, 42}},
		{name: "start past eof", header: "bytes=1000-", err: ErrUnsatisfiable},
		{name: "start after end", header: "bytes=500-100", err: ErrUnsatisfiable},
		{name: "wrong unit", header: "items=0-99", want: nil},
		{name: "garbage start", header: "bytes=abc-99", want: nil},
		{name: "garbage end", header: "bytes=0-xyz", want: nil},
		{name: "suffix range unsupported", header: "bytes=-500", want: nil},
		{name: "multi range unsupported", header: "bytes=0-99,200-299", want: nil},
		{name: "missing dash", header: "bytes=100", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRange(tt.header, size)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestByteRangeLength(t *testing.T) {
	assert.Equal(t, int64(100), ByteRange{0, 99}.Length())
	assert.Equal(t, int64(1), ByteRange{42, 42}.Length())
}

func TestOpenWindow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "video.mp4")
	content := make([]byte, 1000)
	for i := range content {
		content[i] = byte(i % 251)
	}
	require.NoError(t, os.WriteFile(path, content, 0o644))

	body, err := Open(path, &ByteRange{Start: 100, End: 199})
	require.NoError(t, err)
	defer body.Close()

	got, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, content[100:200], got)
}

func TestOpenFullFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "video.mp4")
	require.NoError(t, os.WriteFile(path, []byte("full content"), 0o644))

	body, err := Open(path, nil)
	require.NoError(t, err)
	defer body.Close()

	got, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "full content", string(got))
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.mp4"), nil)
	assert.Error(t, err)
}
