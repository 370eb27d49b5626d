// File: pkg/collect/binary.go
package collect

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Binary-detection policy. The peek length and control-byte ratio are an
// implementation choice, documented here: a file is considered binary when
// its first 8192 bytes contain a NUL, or when more than 30% of them are
// control bytes other than TAB, LF and CR.
const (
	binaryPeekBytes    = 8192
	binaryControlRatio = 0.30
)

// binaryExtensions lists extensions that are always treated as binary content
// without reading the file, unless explicitly allow-listed.
var binaryExtensions = map[string]bool{
	// Images and media
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".bmp": true,
	".webp": true, ".tiff": true, ".ico": true,
	".mp3": true, ".wav": true, ".flac": true, ".ogg": true, ".m4a": true,
	".mp4": true, ".mkv": true, ".avi": true, ".mov": true, ".webm": true,
	".pdf": true, ".zip": true, ".rar": true, ".7z": true, ".tar": true,
	".gz": true, ".xz": true, ".bz2": true,
	".woff": true, ".woff2": true, ".ttf": true, ".eot": true, ".otf": true,
	".psd": true, ".ai": true, ".sketch": true, ".fig": true,
	// Other common binaries
	".exe": true, ".dll": true, ".so": true, ".dylib": true, ".bin": true,
	".o": true, ".a": true, ".class": true, ".jar": true, ".wasm": true,
	// Snapshots and dumps
	".snap": true, ".dump": true,
}

// hasBinaryExtension checks if the file has a known binary extension.
func hasBinaryExtension(path string) bool {
	return binaryExtensions[strings.ToLower(filepath.Ext(path))]
}

// peekIsBinary reads a bounded prefix of the file and applies the binary
// heuristic. I/O errors are returned so the caller can degrade the path to
// an unreadable omission.
func peekIsBinary(filePath string) (bool, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return false, err
	}
	defer file.Close()

	buffer := make([]byte, binaryPeekBytes)
	n, err := io.ReadFull(file, buffer)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return false, err
	}
	return isProbablyBinary(buffer[:n]), nil
}

// isProbablyBinary applies the heuristic to an already-read prefix.
func isProbablyBinary(data []byte) bool {
	if len(data) == 0 {
		return false // Empty files are text.
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return true
	}

	control := 0
	for _, b := range data {
		if b < 32 && b != '\t' && b != '\n' && b != '\r' {
			control++
		}
	}
	return float64(control)/float64(len(data)) > binaryControlRatio
}
