package storage

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"net/http"

	"github.com/disintegration/imaging"
)

// MaxImageEdge is the longest side kept for stored photos.
const MaxImageEdge = 1600

// Image is an encoded image ready to store.
type Image struct {
	Data        []byte
	ContentType string
	Ext         string
	Width       int
	Height      int
}

func (i Image) Reader() io.Reader {
	return bytes.NewReader(i.Data)
}

// ProcessImage sniffs data, applies EXIF orientation and shrinks it so the
// longest side is at most maxEdge. PNG stays PNG; JPEG and GIF become JPEG.
func ProcessImage(data []byte, maxEdge int) (Image, error) {
	var format imaging.Format
	switch http.DetectContentType(data) {
	case "image/jpeg", "image/gif":
		format = imaging.JPEG
	case "image/png":
		format = imaging.PNG
	default:
		return Image{}, ErrUnsupportedImage
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	img = fit(img, maxEdge)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(85)); err != nil {
		return Image{}, fmt.Errorf("encode image: %w", err)
	}

	out := Image{Data: buf.Bytes(), Width: img.Bounds().Dx(), Height: img.Bounds().Dy()}
	if format == imaging.PNG {
		out.ContentType, out.Ext = "image/png", ".png"
	} else {
		out.ContentType, out.Ext = "image/jpeg", ".jpg"
	}
	return out, nil
}

func fit(img image.Image, maxEdge int) image.Image {
	b := img.Bounds()
	if maxEdge <= 0 || (b.Dx() <= maxEdge && b.Dy() <= maxEdge) {
		return img
	}
	return imaging.Fit(img, maxEdge, maxEdge, imaging.Lanczos)
}
