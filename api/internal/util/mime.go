package util

import (
	"github.com/gabriel-vasile/mimetype"
)

// Image types the inference provider accepts as inline data without conversion.
var providerImageMIME = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
	"image/heic": true,
	"image/heif": true,
}

// DetectMIME sniffs the content type of b, without parameters.
func DetectMIME(b []byte) string {
	return mimetype.Detect(b).String()
}

// ProviderAccepts reports whether an image of the given MIME type can be
// passed to the provider as-is.
func ProviderAccepts(mime string) bool {
	return providerImageMIME[mime]
}
