// Package photo turns uploaded images into data URLs that can be embedded in
// a complaint record.
package photo

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	// ErrMalformed means a data URL is not a base64 image data URL.
	ErrMalformed = errors.New("photo is not a base64 image data URL")
	// ErrNotImage means the upload's content is not an image.
	ErrNotImage = errors.New("uploaded file is not an image")
	// ErrTooLarge means the upload exceeds the configured limit.
	ErrTooLarge = errors.New("uploaded file is too large")
	// ErrEmpty means the upload had no content.
	ErrEmpty = errors.New("uploaded file is empty")
)

// EncodeDataURL reads at most maxBytes from r and returns
// "data:<mime>;base64,<payload>". The MIME type is sniffed from the content,
// not taken from the client.
func EncodeDataURL(r io.Reader, maxBytes int64) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read photo: %w", err)
	}
	if len(data) == 0 {
		return "", ErrEmpty
	}
	if int64(len(data)) > maxBytes {
		return "", fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, maxBytes)
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", fmt.Errorf("%w: detected %s", ErrNotImage, mtype.String())
	}

	var buf bytes.Buffer
	buf.Grow(len(data)*4/3 + 32)
	buf.WriteString("data:")
	buf.WriteString(mtype.String())
	buf.WriteString(";base64,")
	buf.WriteString(base64.StdEncoding.EncodeToString(data))
	return buf.String(), nil
}

// IsDataURL reports whether s looks like an embedded image.
func IsDataURL(s string) bool {
	return strings.HasPrefix(s, "data:image/") && strings.Contains(s, ";base64,")
}

// CheckDataURL verifies a data URL that arrived from a client: the payload
// must be valid base64, decode to at most maxBytes and sniff as an image.
func CheckDataURL(s string, maxBytes int64) error {
	if !IsDataURL(s) {
		return ErrMalformed
	}
	_, payload, _ := strings.Cut(s, ";base64,")

	if int64(base64.StdEncoding.DecodedLen(len(payload))) > maxBytes+2 {
		return fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, maxBytes)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(data) == 0 {
		return ErrEmpty
	}
	if int64(len(data)) > maxBytes {
		return fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, maxBytes)
	}

	if mtype := mimetype.Detect(data); !strings.HasPrefix(mtype.String(), "image/") {
		return fmt.Errorf("%w: detected %s", ErrNotImage, mtype.String())
	}
	return nil
}
