package ocr

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"cash-reader/api/internal/util"
)

// preparedImage is an uploaded picture ready to be sent inline to a provider.
type preparedImage struct {
	Data   []byte
	MIME   string
	Format string
	Width  int
	Height int
}

// DefaultMaxPixels mirrors the usual decompression-bomb limit of image
// libraries.
const DefaultMaxPixels = 50_000_000

// prepareImage decodes data and, when the provider cannot take the source
// format directly, re-encodes it as PNG. Images whose header declares more
// than maxPixels pixels are rejected before any pixel data is allocated.
func prepareImage(data []byte, maxPixels int64) (preparedImage, error) {
	hdr, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return preparedImage{}, err
	}
	if px := int64(hdr.Width) * int64(hdr.Height); maxPixels > 0 && px > maxPixels {
		return preparedImage{}, fmt.Errorf("image size (%dx%d = %d pixels) exceeds limit of %d pixels",
			hdr.Width, hdr.Height, px, maxPixels)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return preparedImage{}, err
	}
	b := img.Bounds()
	out := preparedImage{
		Data:   data,
		MIME:   util.DetectMIME(data),
		Format: format,
		Width:  b.Dx(),
		Height: b.Dy(),
	}
	if util.ProviderAccepts(out.MIME) {
		return out, nil
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return preparedImage{}, err
	}
	out.Data = buf.Bytes()
	out.MIME = "image/png"
	return out, nil
}
