package pdf

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"
)

var errBadDataURL = errors.New("pdf: not a base64 image data URL")

type embeddedImage struct {
	kind   string // gofpdf image type: PNG, JPG, GIF
	data   []byte
	width  int // pixels
	height int
}

// decodeDataURL parses a "data:image/...;base64," URL as captured by the
// UI for logos and signatures. Callers treat any error as "skip the
// image", a bad upload must never abort the whole document.
func decodeDataURL(s string) (*embeddedImage, error) {
	if !strings.HasPrefix(s, "data:image/") {
		return nil, errBadDataURL
	}
	rest := strings.TrimPrefix(s, "data:image/")
	sep := strings.Index(rest, ";base64,")
	if sep < 0 {
		return nil, errBadDataURL
	}

	var kind string
	switch strings.ToLower(rest[:sep]) {
	case "png":
		kind = "PNG"
	case "jpeg", "jpg":
		kind = "JPG"
	case "gif":
		kind = "GIF"
	default:
		return nil, fmt.Errorf("pdf: unsupported image type %q", rest[:sep])
	}

	data, err := base64.StdEncoding.DecodeString(rest[sep+len(";base64,"):])
	if err != nil {
		return nil, fmt.Errorf("pdf: decode image: %w", err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("pdf: read image header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, errors.New("pdf: image has no size")
	}

	return &embeddedImage{kind: kind, data: data, width: cfg.Width, height: cfg.Height}, nil
}

// fit scales the image into a bounding box, preserving aspect ratio.
func (i *embeddedImage) fit(maxW, maxH float64) (w, h float64) {
	ratio := float64(i.width) / float64(i.height)
	w = maxW
	h = w / ratio
	if h > maxH {
		h = maxH
		w = h * ratio
	}
	return w, h
}
