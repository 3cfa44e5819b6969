package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const inputLine = "host:a\tstatus:200\n"

func writeInput(t *testing.T, name string, wrap func(io.Writer) io.WriteCloser) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := wrap(f)
	_, err = io.WriteString(w, inputLine)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return path
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func TestOpenInput(t *testing.T) {
	cases := map[string]func(io.Writer) io.WriteCloser{
		"plain.ltsv": func(w io.Writer) io.WriteCloser { return nopCloser{w} },
		"log.gz":     func(w io.Writer) io.WriteCloser { return gzip.NewWriter(w) },
		"log.zst": func(w io.Writer) io.WriteCloser {
			zw, err := zstd.NewWriter(w)
			require.NoError(t, err)
			return zw
		},
	}
	for name, wrap := range cases {
		t.Run(name, func(t *testing.T) {
			r, closeFn, err := openInput(writeInput(t, name, wrap))
			require.NoError(t, err)
			defer closeFn()

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, inputLine, string(got))
		})
	}
}

func TestOpenInputMissing(t *testing.T) {
	_, _, err := openInput(filepath.Join(t.TempDir(), "nope.ltsv"))
	assert.Error(t, err)
}
