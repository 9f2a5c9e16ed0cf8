package utils

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
)

var ErrUnsupportedImage = errors.New("unsupported image format")

type ImageDimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ProcessedImage is an encoded image ready for upload.
type ProcessedImage struct {
	Data        []byte
	ContentType string
	Extension   string
	Dimensions  ImageDimensions
}

// ResizeToWidth decodes r, shrinks it to maxWidth keeping the aspect ratio, and re-encodes it
// in its original format. Images already narrower than maxWidth are re-encoded unchanged.
func ResizeToWidth(r io.Reader, filename string, maxWidth uint) (*ProcessedImage, error) {
	if !IsValidImageFormat(filename) {
		return nil, ErrUnsupportedImage
	}

	img, format, err := image.Decode(r)
	if err != nil {
		return nil, ErrUnsupportedImage
	}

	if maxWidth > 0 && uint(img.Bounds().Dx()) > maxWidth {
		// height 0 keeps the aspect ratio
		img = resize.Resize(maxWidth, 0, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := EncodeImage(img, format, &buf, 85); err != nil {
		return nil, err
	}

	ext := "." + format
	contentType := "image/" + format
	if format == "jpeg" {
		ext = ".jpg"
	}

	return &ProcessedImage{
		Data:        buf.Bytes(),
		ContentType: contentType,
		Extension:   ext,
		Dimensions: ImageDimensions{
			Width:  img.Bounds().Dx(),
			Height: img.Bounds().Dy(),
		},
	}, nil
}

func EncodeImage(img image.Image, format string, writer io.Writer, quality int) error {
	switch strings.ToLower(format) {
	case "jpg", "jpeg":
		return jpeg.Encode(writer, img, &jpeg.Options{Quality: quality})
	case "png":
		return png.Encode(writer, img)
	default:
		return ErrUnsupportedImage
	}
}

func IsValidImageFormat(filename string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")

	for _, format := range AllowedImageTypes {
		if ext == format {
			return true
		}
	}

	return false
}
