package validator

import (
	"image"
	"io"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// ImageDecoder reports the pixel dimensions of an encoded image. Decoding
// failures surface as validation errors, never as panics or crashes.
type ImageDecoder interface {
	DecodeBounds(r io.Reader) (width, height int, err error)
}

// StdImageDecoder decodes image headers with the standard library. Only the
// configuration block is read, so it stays cheap for large files.
type StdImageDecoder struct{}

func (StdImageDecoder) DecodeBounds(r io.Reader) (int, int, error) {
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}

// Image validates an uploaded image: the File checks first, then a decode
// through Decoder, then pixel-dimension bounds. A zero dimension bound
// disables that check. The stream cursor is restored to the start on every
// exit path.
type Image struct {
	File      File
	Decoder   ImageDecoder
	MinWidth  int
	MinHeight int
	MaxWidth  int
	MaxHeight int
}

// NewImage returns an Image validator for common web formats capped at 5MB
// with 300x300 minimum and 1920x1080 maximum dimensions.
func NewImage() Image {
	return Image{
		File: File{
			AllowedExtensions: []string{".jpg", ".jpeg", ".png", ".gif"},
			MaxSizeMB:         5,
		},
		MinWidth:  300,
		MinHeight: 300,
		MaxWidth:  1920,
		MaxHeight: 1080,
	}
}

func (v Image) Validate(filename string, r io.ReadSeeker) error {
	if err := v.File.Validate(filename, r); err != nil {
		return err
	}

	decoder := v.Decoder
	if decoder == nil {
		decoder = StdImageDecoder{}
	}
	width, height, err := decodeBounds(decoder, r)
	if err != nil {
		return newError(CodeDecodeFailed, "invalid image file")
	}

	if (v.MinWidth > 0 && width < v.MinWidth) || (v.MinHeight > 0 && height < v.MinHeight) {
		return newError(CodeImageTooSmall, "image dimensions must be at least %dx%dpx, uploaded image is %dx%dpx", v.MinWidth, v.MinHeight, width, height)
	}
	if (v.MaxWidth > 0 && width > v.MaxWidth) || (v.MaxHeight > 0 && height > v.MaxHeight) {
		return newError(CodeImageTooLarge, "image dimensions exceed %dx%dpx limit, uploaded image is %dx%dpx", v.MaxWidth, v.MaxHeight, width, height)
	}
	return nil
}

// decodeBounds runs the decoder and rewinds the stream regardless of outcome.
func decodeBounds(decoder ImageDecoder, r io.ReadSeeker) (width, height int, err error) {
	defer func() {
		if _, seekErr := r.Seek(0, io.SeekStart); seekErr != nil && err == nil {
			err = seekErr
		}
	}()
	return decoder.DecodeBounds(r)
}
