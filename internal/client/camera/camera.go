// Package camera provides the photo capture step of check-in/check-out.
//
// A terminal has no camera, so PromptCapturer asks for the path of a JPEG
// taken elsewhere (phone, webcam tool). Leaving the answer empty cancels the
// capture, which callers treat as a no-op rather than a failure.
package camera

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrCancelled = errors.New("capture cancelled")
	ErrNotJPEG   = errors.New("photo is not a JPEG image")
)

// Photo is a captured image on disk.
type Photo struct {
	Path string
	Size int64
}

type Capturer interface {
	Capture(ctx context.Context) (Photo, error)
}

// LineReader prompts and returns one line of user input.
type LineReader func(prompt string) (string, error)

// PromptCapturer captures by asking for an existing JPEG file.
type PromptCapturer struct {
	read LineReader
}

func NewPromptCapturer(read LineReader) *PromptCapturer {
	return &PromptCapturer{read: read}
}

const capturePrompt = "Photo (path to JPEG, empty to cancel)"

func (c *PromptCapturer) Capture(ctx context.Context) (Photo, error) {
	if err := ctx.Err(); err != nil {
		return Photo{}, err
	}

	line, err := c.read(capturePrompt)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Photo{}, ErrCancelled
		}
		return Photo{}, err
	}

	path := strings.Trim(strings.TrimSpace(line), `"'`)
	if path == "" {
		return Photo{}, ErrCancelled
	}
	return Inspect(expandHome(path))
}

// Inspect checks that path is a regular file with JPEG content.
func Inspect(path string) (Photo, error) {
	f, err := os.Open(path)
	if err != nil {
		return Photo{}, fmt.Errorf("open photo: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Photo{}, fmt.Errorf("stat photo: %w", err)
	}
	if !info.Mode().IsRegular() {
		return Photo{}, fmt.Errorf("%s: not a regular file", path)
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return Photo{}, fmt.Errorf("read photo: %w", err)
	}
	if http.DetectContentType(head[:n]) != "image/jpeg" {
		return Photo{}, fmt.Errorf("%s: %w", path, ErrNotJPEG)
	}

	return Photo{Path: path, Size: info.Size()}, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
