package ocr

import "context"

// Engine is a multimodal inference backend. ReadDisplay sends one prompt and
// one image and returns the model's raw text reply.
type Engine interface {
	Name() string
	GetModel() string
	ReadDisplay(ctx context.Context, prompt string, image []byte, mime string) (string, error)
}
