package source

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const payloadJSON = `{"entries":[{"pan":"4111","removed":true}]}`

func zlibBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func deflateBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.DefaultCompression)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func zipBytes(t *testing.T, members map[string][]byte, order ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range order {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(members[name])
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestUnpack(t *testing.T) {
	cases := []struct {
		name   string
		data   []byte
		format Format
		member string
	}{
		{name: "plain json", data: []byte(payloadJSON), format: FormatPlain},
		{name: "plain json with leading space", data: []byte("\n  " + payloadJSON), format: FormatPlain},
		{name: "zlib", data: zlibBytes(t, []byte(payloadJSON)), format: FormatZlib},
		{name: "raw deflate", data: deflateBytes(t, []byte(payloadJSON)), format: FormatDeflate},
		{
			name: "zip prefers the .bin member",
			data: zipBytes(t, map[string][]byte{
				"README.txt": []byte("not this one"),
				"deny.BIN":   zlibBytes(t, []byte(payloadJSON)),
			}, "README.txt", "deny.BIN"),
			format: FormatZip,
			member: "deny.BIN",
		},
		{
			name: "zip falls back to the first file",
			data: zipBytes(t, map[string][]byte{
				"dir/":     nil,
				"data.dat": []byte(payloadJSON),
			}, "dir/", "data.dat"),
			format: FormatZip,
			member: "data.dat",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Unpack(tc.data, 0)
			require.NoError(t, err)
			assert.Equal(t, tc.format, got.Format)
			assert.Equal(t, tc.member, got.Member)
			assert.JSONEq(t, payloadJSON, string(got.Data))
		})
	}
}

func TestUnpackUnknownBytesPassThrough(t *testing.T) {
	data := []byte{0x01, 0x02}
	got, err := Unpack(data, 0)
	require.NoError(t, err)
	assert.Equal(t, FormatPlain, got.Format)
	assert.Equal(t, data, got.Data)
}

func TestUnpackEmptyArchive(t *testing.T) {
	data := zipBytes(t, map[string][]byte{"only-a-dir/": nil}, "only-a-dir/")
	_, err := Unpack(data, 0)
	assert.ErrorIs(t, err, ErrEmptyArchive)
}

func TestUnpackSizeLimit(t *testing.T) {
	big := []byte(`{"pad":"` + strings.Repeat("x", 4096) + `"}`)

	_, err := Unpack(zlibBytes(t, big), 1024)
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = Unpack(deflateBytes(t, big), 1024)
	assert.ErrorIs(t, err, ErrTooLarge)

	got, err := Unpack(zlibBytes(t, big), int64(len(big)))
	require.NoError(t, err)
	assert.Equal(t, big, got.Data)
}

func TestReadFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "deny.zip")
	data := zipBytes(t, map[string][]byte{"deny.json": []byte(payloadJSON)}, "deny.json")
	require.NoError(t, os.WriteFile(name, data, 0o600))

	got, err := ReadFile(name, 0)
	require.NoError(t, err)
	assert.Equal(t, FormatZip, got.Format)
	assert.JSONEq(t, payloadJSON, string(got.Data))

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.json"), 0)
	assert.Error(t, err)
}

func TestReadLimit(t *testing.T) {
	_, err := Read(strings.NewReader(payloadJSON), 8)
	assert.ErrorIs(t, err, ErrTooLarge)
}
