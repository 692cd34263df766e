package handlers

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

const maxUploadBytes = 10 << 20 // 10MB

var errUnsupportedImage = errors.New("unsupported image format; only PNG, JPG, JPEG are allowed")

// saveUploadedImage decodes, downscales, and re-encodes an uploaded image as
// JPEG under static/uploads, returning the public URL. maxWidth 0 falls back
// to 800px.
func saveUploadedImage(file multipart.File, header *multipart.FileHeader, maxWidth uint) (string, error) {
	if maxWidth == 0 {
		maxWidth = 800
	}

	var img image.Image
	var err error
	switch filepath.Ext(header.Filename) {
	case ".png":
		img, err = png.Decode(file)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(file)
	default:
		return "", errUnsupportedImage
	}
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	// Resize preserving aspect ratio
	scaled := resize.Resize(maxWidth, 0, img, resize.Lanczos3)

	filename := fmt.Sprintf("%s.jpg", uuid.New().String())
	uploadPath := filepath.Join("static", "uploads", filename)

	out, err := os.Create(uploadPath)
	if err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	defer out.Close()

	if err := jpeg.Encode(out, scaled, &jpeg.Options{Quality: 80}); err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}

	return "/static/uploads/" + filename, nil
}
