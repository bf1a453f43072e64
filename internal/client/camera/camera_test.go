package camera

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jpegBytes = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00, 0xFF, 0xD9}

func answer(line string, err error) LineReader {
	return func(string) (string, error) { return line, err }
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, data, 0o600))
	return p
}

func TestCapture_JPEG(t *testing.T) {
	p := writeFile(t, "a.jpg", jpegBytes)

	photo, err := NewPromptCapturer(answer("  "+p+"\n", nil)).Capture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, p, photo.Path)
	assert.Equal(t, int64(len(jpegBytes)), photo.Size)
}

func TestCapture_QuotedPath(t *testing.T) {
	p := writeFile(t, "with space.jpg", jpegBytes)

	photo, err := NewPromptCapturer(answer(`"`+p+`"`, nil)).Capture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, p, photo.Path)
}

func TestCapture_Cancel(t *testing.T) {
	_, err := NewPromptCapturer(answer("", nil)).Capture(context.Background())
	assert.ErrorIs(t, err, ErrCancelled)

	_, err = NewPromptCapturer(answer("", io.EOF)).Capture(context.Background())
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestCapture_ReadError(t *testing.T) {
	boom := errors.New("tty gone")
	_, err := NewPromptCapturer(answer("", boom)).Capture(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestCapture_ContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	c := NewPromptCapturer(func(string) (string, error) { called = true; return "", nil })
	_, err := c.Capture(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestInspect_Rejects(t *testing.T) {
	png := writeFile(t, "a.png", []byte("\x89PNG\r\n\x1a\n0000"))
	_, err := Inspect(png)
	assert.ErrorIs(t, err, ErrNotJPEG)

	_, err = Inspect(filepath.Join(t.TempDir(), "missing.jpg"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Inspect(t.TempDir())
	assert.Error(t, err)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "pics/a.jpg"), expandHome("~/pics/a.jpg"))
	assert.Equal(t, "/abs/a.jpg", expandHome("/abs/a.jpg"))
}
