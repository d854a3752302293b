package ocr

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/supagonava/ocrgrid/model"
)

// ImageSize reads only the image header and returns its pixel size and
// format name. PNG, JPEG, GIF, TIFF, BMP and WebP are recognised.
func ImageSize(r io.Reader) (model.PageSize, string, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return model.PageSize{}, "", fmt.Errorf("failed to read image header: %w", err)
	}
	size := model.PageSize{Width: cfg.Width, Height: cfg.Height}
	if err := size.Validate(); err != nil {
		return model.PageSize{}, format, err
	}
	return size, format, nil
}

// ImageSizeFromBytes is ImageSize for an in-memory image
func ImageSizeFromBytes(data []byte) (model.PageSize, string, error) {
	return ImageSize(bytes.NewReader(data))
}

// ImageSizeFromFile opens the file and reads its header
func ImageSizeFromFile(filename string) (model.PageSize, string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return model.PageSize{}, "", fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()
	return ImageSize(f)
}

// DecodeBase64Image decodes a base64 image payload. A data URL prefix
// (data:image/png;base64,) and embedded whitespace are accepted.
func DecodeBase64Image(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "data:") {
		i := strings.Index(s, ",")
		if i < 0 {
			return nil, fmt.Errorf("failed to decode image: malformed data URL")
		}
		s = s[i+1:]
	}
	s = strings.Join(strings.Fields(s), "")

	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("failed to decode image: %w", err)
		}
	}
	return data, nil
}
