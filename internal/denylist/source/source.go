// Package source unpacks deny-list payloads as delivered by upstream
// exporters: plain JSON, zlib or raw deflate streams, or a zip archive
// holding one of those.
package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zlib"
)

var (
	ErrEmptyArchive = errors.New("zip archive has no files")
	ErrTooLarge     = errors.New("payload exceeds size limit")
)

// Format is the container a payload was unpacked from.
type Format string

const (
	FormatPlain   Format = "plain"
	FormatZlib    Format = "zlib"
	FormatDeflate Format = "deflate"
	FormatZip     Format = "zip"
)

// Payload is an unpacked payload and where it came from.
type Payload struct {
	Data   []byte
	Format Format
	// Member is the archive entry name for zip input.
	Member string
}

var zipMagic = []byte("PK\x03\x04")

// Unpack detects the container of data and returns the inner bytes. A
// limit <= 0 disables the decompressed size check.
func Unpack(data []byte, limit int64) (Payload, error) {
	if bytes.HasPrefix(data, zipMagic) {
		return unpackZip(data, limit)
	}
	inner, format, err := inflate(data, limit)
	if err != nil {
		return Payload{}, err
	}
	return Payload{Data: inner, Format: format}, nil
}

// ReadFile reads and unpacks the payload at name.
func ReadFile(name string, limit int64) (Payload, error) {
	f, err := os.Open(name)
	if err != nil {
		return Payload{}, fmt.Errorf("open payload: %w", err)
	}
	defer f.Close()
	return Read(f, limit)
}

// Read reads r fully and unpacks it.
func Read(r io.Reader, limit int64) (Payload, error) {
	data, err := readLimited(r, limit)
	if err != nil {
		return Payload{}, err
	}
	return Unpack(data, limit)
}

func unpackZip(data []byte, limit int64) (Payload, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Payload{}, fmt.Errorf("open zip payload: %w", err)
	}
	member := pickMember(zr.File)
	if member == nil {
		return Payload{}, ErrEmptyArchive
	}
	rc, err := member.Open()
	if err != nil {
		return Payload{}, fmt.Errorf("open zip member %s: %w", member.Name, err)
	}
	defer rc.Close()
	raw, err := readLimited(rc, limit)
	if err != nil {
		return Payload{}, fmt.Errorf("read zip member %s: %w", member.Name, err)
	}
	inner, _, err := inflate(raw, limit)
	if err != nil {
		return Payload{}, err
	}
	return Payload{Data: inner, Format: FormatZip, Member: member.Name}, nil
}

// pickMember prefers the first .bin or .json entry, then the first file.
func pickMember(files []*zip.File) *zip.File {
	var first *zip.File
	for _, f := range files {
		if f.FileInfo().IsDir() {
			continue
		}
		if first == nil {
			first = f
		}
		switch strings.ToLower(path.Ext(f.Name)) {
		case ".bin", ".json":
			return f
		}
	}
	return first
}

// inflate returns data decompressed when it is a zlib or raw deflate
// stream, and data itself otherwise. Valid JSON is never treated as a
// compressed stream.
func inflate(data []byte, limit int64) ([]byte, Format, error) {
	if json.Valid(data) {
		return data, FormatPlain, nil
	}
	if zr, err := zlib.NewReader(bytes.NewReader(data)); err == nil {
		out, err := readLimited(zr, limit)
		zr.Close()
		if errors.Is(err, ErrTooLarge) {
			return nil, "", err
		}
		if err == nil {
			return out, FormatZlib, nil
		}
	}
	fr := flate.NewReader(bytes.NewReader(data))
	out, err := readLimited(fr, limit)
	fr.Close()
	if errors.Is(err, ErrTooLarge) {
		return nil, "", err
	}
	if err == nil && len(out) > 0 {
		return out, FormatDeflate, nil
	}
	return data, FormatPlain, nil
}

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}
	out, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(out)) > limit {
		return nil, ErrTooLarge
	}
	return out, nil
}
