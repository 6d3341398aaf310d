package helper

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
)

const (
	maxUploadSize  = int64(5 * 1024 * 1024)
	avatarMaxEdge  = 512
	webpQuality    = float32(80)
	attachmentMaxB = int64(20 * 1024 * 1024)
)

// UploadStream stores raw bytes under scope/name and returns the object key.
// Attachment content is opaque here; no transformation is applied.
func UploadStream(r io.Reader, scope, filename string) (string, error) {
	b, err := Bucket()
	if err != nil {
		return "", err
	}
	key := ObjectKey(scope, uuid.NewString()+strings.ToLower(filepath.Ext(filename)))
	if err := b.PutObject(key, r); err != nil {
		return "", err
	}
	return key, nil
}

// UploadAttachment guards size and stores a multipart file as-is.
func UploadAttachment(fh *multipart.FileHeader, scope string) (string, error) {
	if fh.Size > attachmentMaxB {
		return "", fmt.Errorf("file too large (max %d bytes)", attachmentMaxB)
	}
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	return UploadStream(f, scope, fh.Filename)
}

// UploadAvatarWebP decodes an uploaded image, bounds it to avatarMaxEdge and
// stores it as WebP. Returns the object key.
func UploadAvatarWebP(fh *multipart.FileHeader, scope string) (string, error) {
	if fh.Size > maxUploadSize {
		return "", fmt.Errorf("image too large (max %d bytes)", maxUploadSize)
	}
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return "", fmt.Errorf("unsupported image: %w", err)
	}

	src = normalizeSize(src, avatarMaxEdge)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, src, &webp.Options{Quality: webpQuality}); err != nil {
		return "", err
	}

	b, err := Bucket()
	if err != nil {
		return "", err
	}
	key := ObjectKey(scope, uuid.NewString()+".webp")
	if err := b.PutObject(key, &buf); err != nil {
		return "", err
	}
	return key, nil
}

// normalizeSize caps the longest edge, preferring the high-quality scaler
// for large downscales.
func normalizeSize(src image.Image, maxEdge int) image.Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxEdge && h <= maxEdge {
		return src
	}
	if w >= h {
		h = h * maxEdge / w
		w = maxEdge
	} else {
		w = w * maxEdge / h
		h = maxEdge
	}
	if w*h > 1024*1024 {
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
		return dst
	}
	return imaging.Resize(src, w, h, imaging.Lanczos)
}
