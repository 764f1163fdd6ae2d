package images

import (
	"bytes"
	"errors"
	"mime/multipart"

	"github.com/disintegration/imaging"
)

const (
	// TargetSize is the upper bound we compress towards. Images already
	// below it are only re-encoded, not resized.
	TargetSize = 40 * 1024

	MaxWidth  = 1920
	MaxHeight = 1080

	startQuality = 85
	minQuality   = 20
	qualityStep  = 5
)

var ErrDecodeImage = errors.New("failed to decode image")

// Compress decodes an uploaded image, bounds it to MaxWidth x MaxHeight
// and re-encodes as JPEG, lowering quality stepwise until the result
// fits TargetSize or quality bottoms out. The smallest attempt is
// returned either way.
func Compress(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	img, err := imaging.Decode(src)
	if err != nil {
		return nil, ErrDecodeImage
	}

	bounds := img.Bounds()
	if bounds.Dx() > MaxWidth || bounds.Dy() > MaxHeight {
		img = imaging.Fit(img, MaxWidth, MaxHeight, imaging.Lanczos)
	}

	var best []byte
	for quality := startQuality; quality >= minQuality; quality -= qualityStep {
		var buf bytes.Buffer
		if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
			return nil, err
		}
		if best == nil || buf.Len() < len(best) {
			best = buf.Bytes()
		}
		if buf.Len() <= TargetSize {
			return buf.Bytes(), nil
		}
	}
	return best, nil
}
