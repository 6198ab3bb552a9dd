package extraction

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-routeplanner/internal/app/models"
)

// DefaultMaxImageEdge is the longest side, in pixels, sent to the model.
const DefaultMaxImageEdge = 2048

// Image is one uploaded screenshot ready to send as an inline part.
type Image struct {
	MIMEType string
	Data     []byte
}

// DecodeDataURL parses "data:<mime>;base64,<payload>". A bare base64 string is
// accepted too and its type is sniffed.
func DecodeDataURL(s string) (Image, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Image{}, fmt.Errorf("%w: empty image", models.ErrValidation)
	}

	mime := ""
	payload := s
	if strings.HasPrefix(s, "data:") {
		header, body, ok := strings.Cut(s, ",")
		if !ok {
			return Image{}, fmt.Errorf("%w: malformed data URL", models.ErrValidation)
		}
		header = strings.TrimPrefix(header, "data:")
		if !strings.HasSuffix(header, ";base64") {
			return Image{}, fmt.Errorf("%w: data URL is not base64", models.ErrValidation)
		}
		mime = strings.TrimSuffix(header, ";base64")
		payload = body
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Image{}, fmt.Errorf("%w: invalid base64 image: %v", models.ErrValidation, err)
	}
	img := FromBytes(data)
	if mime != "" {
		img.MIMEType = mime
	}
	return img, nil
}

// FromBytes wraps a raw upload, sniffing its content type.
func FromBytes(data []byte) Image {
	return Image{MIMEType: http.DetectContentType(data), Data: data}
}

// Preprocess downscales images whose long edge exceeds maxEdge and re-encodes
// them as PNG. Formats imaging cannot decode are returned unchanged.
func Preprocess(img Image, maxEdge int) (Image, error) {
	if maxEdge <= 0 {
		maxEdge = DefaultMaxImageEdge
	}
	decoded, err := imaging.Decode(bytes.NewReader(img.Data), imaging.AutoOrientation(true))
	if err != nil {
		return img, nil
	}
	b := decoded.Bounds()
	if b.Dx() <= maxEdge && b.Dy() <= maxEdge {
		return img, nil
	}

	resized := imaging.Fit(decoded, maxEdge, maxEdge, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.PNG); err != nil {
		return Image{}, fmt.Errorf("failed to re-encode image: %w", err)
	}
	return Image{MIMEType: "image/png", Data: buf.Bytes()}, nil
}

// PrepareAll preprocesses every image concurrently, preserving order.
func PrepareAll(ctx context.Context, images []Image, maxEdge int) ([]Image, error) {
	if len(images) == 0 {
		return nil, models.ErrNoImages
	}
	out := make([]Image, len(images))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, img := range images {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := Preprocess(img, maxEdge)
			if err != nil {
				return fmt.Errorf("image %d: %w", i, err)
			}
			out[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
