package imageprocessor

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // декодер WebP для image.Decode
)

var ErrNotImage = errors.New("file is not a decodable image")

// ImageSize - рамка, в которую вписывается фото
type ImageSize struct {
	Name   string
	Width  int
	Height int
}

var (
	SizeThumbnail = ImageSize{Name: "thumbnail", Width: 150, Height: 150}
	SizePhoto     = ImageSize{Name: "photo", Width: 1600, Height: 1600}
)

// Result - готовое к сохранению фото
type Result struct {
	Data        []byte
	ContentType string
	Width       int
	Height      int
	Resized     bool
}

// Processor уменьшает фото объявлений перед сохранением
type Processor struct {
	quality int // JPEG quality (1-100)
}

func NewProcessor(quality int) *Processor {
	if quality <= 0 || quality > 100 {
		quality = 85
	}
	return &Processor{quality: quality}
}

// Fit проверяет, что data - изображение, и вписывает его в size с сохранением
// пропорций. Фото, которое уже помещается, возвращается байт в байт.
// WebP кодировать нечем, поэтому уменьшенный WebP сохраняется как JPEG.
func (p *Processor) Fit(data []byte, size ImageSize) (*Result, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotImage, err)
	}

	if cfg.Width <= size.Width && cfg.Height <= size.Height {
		return &Result{
			Data:        data,
			ContentType: contentType(format),
			Width:       cfg.Width,
			Height:      cfg.Height,
		}, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	resized := p.resize(img, size.Width, size.Height)

	var buf bytes.Buffer
	outType := "image/jpeg"
	switch format {
	case "png":
		outType = "image/png"
		if err := png.Encode(&buf, resized); err != nil {
			return nil, fmt.Errorf("failed to encode PNG: %w", err)
		}
	default:
		if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: p.quality}); err != nil {
			return nil, fmt.Errorf("failed to encode JPEG: %w", err)
		}
	}

	b := resized.Bounds()
	return &Result{
		Data:        buf.Bytes(),
		ContentType: outType,
		Width:       b.Dx(),
		Height:      b.Dy(),
		Resized:     true,
	}, nil
}

// resize вписывает изображение в maxWidth x maxHeight
func (p *Processor) resize(img image.Image, maxWidth, maxHeight int) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	ratio := float64(width) / float64(height)
	newWidth := maxWidth
	newHeight := maxHeight

	if float64(maxWidth)/float64(maxHeight) > ratio {
		newWidth = int(float64(maxHeight) * ratio)
	} else {
		newHeight = int(float64(maxWidth) / ratio)
	}
	if newWidth < 1 {
		newWidth = 1
	}
	if newHeight < 1 {
		newHeight = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

func contentType(format string) string {
	switch format {
	case "png":
		return "image/png"
	case "webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
