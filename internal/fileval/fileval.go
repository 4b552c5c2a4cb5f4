// Package fileval reads Dockerfiles with pre-parse validation: files that
// are oversized or clearly not text are rejected before linting.
package fileval

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"unicode/utf8"
)

// Stdin is the path that reads from standard input.
const Stdin = "-"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// FileTooLargeError is returned when a file exceeds the configured maximum size.
type FileTooLargeError struct {
	Path    string
	Size    int64
	MaxSize int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf(
		"%s: file too large (%d > %d bytes); increase [file-validation] max-file-size in .stagelint.toml to override",
		e.Path, e.Size, e.MaxSize,
	)
}

// NotUTF8Error is returned when a file does not contain valid UTF-8 text.
type NotUTF8Error struct {
	Path string
}

func (e *NotUTF8Error) Error() string {
	return e.Path + ": file does not appear to be valid UTF-8 text"
}

// ReadFile reads path (or standard input for "-") and validates it.
// maxSize <= 0 disables the size check. A leading UTF-8 BOM is dropped.
func ReadFile(path string, maxSize int64) ([]byte, error) {
	var r io.Reader
	if path == Stdin {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%s: is a directory", path)
		}
		if maxSize > 0 && info.Size() > maxSize {
			return nil, &FileTooLargeError{Path: path, Size: info.Size(), MaxSize: maxSize}
		}
		r = f
	}
	return Read(path, r, maxSize)
}

// Read reads and validates content from r. path is used in errors only.
func Read(path string, r io.Reader, maxSize int64) ([]byte, error) {
	if maxSize > 0 {
		// One extra byte tells an exact fit from an overflow.
		r = io.LimitReader(r, maxSize+1)
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if maxSize > 0 && int64(len(content)) > maxSize {
		return nil, &FileTooLargeError{Path: path, Size: int64(len(content)), MaxSize: maxSize}
	}
	return Validate(path, content)
}

// Validate checks content is UTF-8 text and strips a leading BOM.
func Validate(path string, content []byte) ([]byte, error) {
	content = bytes.TrimPrefix(content, utf8BOM)
	if !utf8.Valid(content) || bytes.IndexByte(content, 0) >= 0 {
		return nil, &NotUTF8Error{Path: path}
	}
	return content, nil
}
