package model

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ImageExtensions lists the file extensions offered by image pickers.
var ImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp"}

// SelectedImage is an image blob picked by the user.
type SelectedImage struct {
	Name        string
	ContentType string
	PreviewURI  string
	Data        []byte
}

// NewSelectedImage wraps raw bytes, sniffing the content type.
func NewSelectedImage(name string, data []byte) SelectedImage {
	return SelectedImage{
		Name:        filepath.Base(name),
		ContentType: http.DetectContentType(data),
		Data:        data,
	}
}

// LoadImage reads an image from disk. The file is not validated as an image.
func LoadImage(path string) (SelectedImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SelectedImage{}, fmt.Errorf("failed to read image: %w", err)
	}
	return NewSelectedImage(path, data), nil
}

// Size returns the blob length in bytes.
func (i SelectedImage) Size() int {
	return len(i.Data)
}

// IsImageFile reports whether name has one of ImageExtensions.
func IsImageFile(name string) bool {
	return slices.Contains(ImageExtensions, strings.ToLower(filepath.Ext(name)))
}
