package ocr

import "context"

// Client extracts text from an image. Implementations call an external
// vision API; tests use a fake.
type Client interface {
	ExtractText(ctx context.Context, imageBytes []byte) (string, error)
}
