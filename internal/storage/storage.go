// Package storage keeps user-uploaded files, such as profile avatars,
// outside the database.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/disintegration/imaging"
)

// AvatarStore persists avatar images and returns the URL they are served at.
type AvatarStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// Avatar images are normalized to a square JPEG of this size.
const (
	AvatarSize        = 256
	AvatarContentType = "image/jpeg"
	avatarQuality     = 85
)

// ErrInvalidImage is returned when the upload cannot be decoded as an image.
var ErrInvalidImage = errors.New("storage: invalid image")

// NormalizeAvatar decodes an uploaded image, crops it to a centered square
// and re-encodes it as JPEG.
func NormalizeAvatar(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	square := imaging.Fill(img, AvatarSize, AvatarSize, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, square, imaging.JPEG, imaging.JPEGQuality(avatarQuality)); err != nil {
		return nil, fmt.Errorf("encode avatar: %w", err)
	}
	return buf.Bytes(), nil
}
