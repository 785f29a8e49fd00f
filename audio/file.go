// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format keys used by Load when consulting a Registry.
const (
	FormatWAV  = "wav"
	FormatAIFF = "aiff"
	FormatMP3  = "mp3"
	FormatOgg  = "ogg"
)

var extensions = map[string]string{
	"wav":  FormatWAV,
	"wave": FormatWAV,
	"aif":  FormatAIFF,
	"aiff": FormatAIFF,
	"aifc": FormatAIFF,
	"mp3":  FormatMP3,
	"ogg":  FormatOgg,
	"oga":  FormatOgg,
}

// sniffSize is the number of leading bytes Sniff needs.
const sniffSize = 12

// FormatFromExt maps a file name extension to a format key.
func FormatFromExt(path string) (string, bool) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	format, ok := extensions[ext]
	return format, ok
}

// Sniff guesses the format key from the first bytes of a file.
func Sniff(header []byte) (string, bool) {
	switch {
	case len(header) >= 12 && bytes.Equal(header[:4], []byte("RIFF")) && bytes.Equal(header[8:12], []byte("WAVE")):
		return FormatWAV, true
	case len(header) >= 12 && bytes.Equal(header[:4], []byte("FORM")) &&
		(bytes.Equal(header[8:12], []byte("AIFF")) || bytes.Equal(header[8:12], []byte("AIFC"))):
		return FormatAIFF, true
	case len(header) >= 4 && bytes.Equal(header[:4], []byte("OggS")):
		return FormatOgg, true
	case len(header) >= 3 && bytes.Equal(header[:3], []byte("ID3")):
		return FormatMP3, true
	case len(header) >= 2 && header[0] == 0xFF && header[1]&0xE0 == 0xE0:
		// MPEG audio frame sync
		return FormatMP3, true
	}
	return "", false
}

// Load decodes the file at path into a mono Buffer at its native sample rate.
// The decoder is chosen by extension and, when the extension is unknown or
// not registered, by sniffing the file's first bytes.
func Load(path string, reg *Registry) (Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return Buffer{}, fmt.Errorf("opening audio file: %w", err)
	}
	defer f.Close()

	format, dec, err := pickDecoder(f, path, reg)
	if err != nil {
		return Buffer{}, err
	}

	src, err := dec.Decode(f)
	if err != nil {
		return Buffer{}, fmt.Errorf("decoding %s: %w", format, err)
	}
	defer src.Close()

	buf, err := ReadAll(src)
	if err != nil {
		return Buffer{}, fmt.Errorf("decoding %s: %w", format, err)
	}

	return buf, nil
}

func pickDecoder(rs io.ReadSeeker, path string, reg *Registry) (string, Decoder, error) {
	if format, ok := FormatFromExt(path); ok {
		if dec, ok := reg.Get(format); ok {
			return format, dec, nil
		}
	}

	header := make([]byte, sniffSize)
	n, err := io.ReadFull(rs, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", nil, fmt.Errorf("reading audio header: %w", err)
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return "", nil, fmt.Errorf("rewinding audio file: %w", err)
	}

	format, ok := Sniff(header[:n])
	if !ok {
		return "", nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrUnsupportedFormat)
	}

	dec, ok := reg.Get(format)
	if !ok {
		return "", nil, fmt.Errorf("%s (%s): %w", filepath.Base(path), format, ErrUnsupportedFormat)
	}

	return format, dec, nil
}
