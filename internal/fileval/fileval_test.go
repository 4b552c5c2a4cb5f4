package fileval

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Dockerfile")
	require.NoError(t, os.WriteFile(path, content, 0o600))
	return path
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, []byte("FROM alpine:3.20\nRUN echo hi\n"))
	got, err := ReadFile(path, 0)
	require.NoError(t, err)
	assert.Equal(t, "FROM alpine:3.20\nRUN echo hi\n", string(got))
}

func TestReadFile_SizeCheck(t *testing.T) {
	t.Parallel()

	path := writeFile(t, []byte(strings.Repeat("#", 100)))

	_, err := ReadFile(path, 100)
	require.NoError(t, err, "exact fit is allowed")

	_, err = ReadFile(path, 99)
	var tooLarge *FileTooLargeError
	require.ErrorAs(t, err, &tooLarge)
	assert.Equal(t, int64(100), tooLarge.Size)
	assert.Equal(t, int64(99), tooLarge.MaxSize)
	assert.Contains(t, err.Error(), "max-file-size")
}

func TestReadFile_Errors(t *testing.T) {
	t.Parallel()

	_, err := ReadFile(filepath.Join(t.TempDir(), "missing"), 0)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, err = ReadFile(t.TempDir(), 0)
	assert.ErrorContains(t, err, "is a directory")
}

func TestRead_StreamTooLarge(t *testing.T) {
	t.Parallel()

	_, err := Read("-", strings.NewReader("FROM alpine"), 4)
	var tooLarge *FileTooLargeError
	assert.ErrorAs(t, err, &tooLarge)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content []byte
		want    string
		wantErr bool
	}{
		{name: "ascii", content: []byte("FROM a"), want: "FROM a"},
		{name: "multibyte", content: []byte("LABEL author=\"Zoë\""), want: "LABEL author=\"Zoë\""},
		{name: "bom stripped", content: []byte("\xEF\xBB\xBFFROM a"), want: "FROM a"},
		{name: "empty", content: nil, want: ""},
		{name: "invalid utf8", content: []byte{'F', 0xFF, 0xFE}, wantErr: true},
		{name: "nul byte", content: []byte("FROM a\x00"), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Validate("Dockerfile", tt.content)
			if tt.wantErr {
				var notUTF8 *NotUTF8Error
				require.ErrorAs(t, err, &notUTF8)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}
