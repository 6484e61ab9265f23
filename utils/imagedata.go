package utils

import (
	"encoding/base64"
	"fmt"
	"strings"
)

const (
	// MaxImageSize is 10MB in bytes, measured on the decoded payload
	MaxImageSize = 10 * 1024 * 1024
)

// allowedImageTypes are the content types accepted for order images
var allowedImageTypes = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/webp": "webp",
}

// ImagePayloadError represents an image payload validation error
type ImagePayloadError struct {
	Code    string
	Message string
}

func (e *ImagePayloadError) Error() string {
	return e.Message
}

// ParseDataURL splits a "data:<type>;base64,<payload>" string into its
// content type and decoded bytes.
func ParseDataURL(dataURL string) (contentType string, data []byte, err error) {
	if !strings.HasPrefix(dataURL, "data:") {
		return "", nil, &ImagePayloadError{
			Code:    "INVALID_IMAGE_PAYLOAD",
			Message: "Image must be a base64 data URL",
		}
	}

	meta, payload, found := strings.Cut(dataURL[len("data:"):], ",")
	if !found || !strings.HasSuffix(meta, ";base64") {
		return "", nil, &ImagePayloadError{
			Code:    "INVALID_IMAGE_PAYLOAD",
			Message: "Image must be a base64 data URL",
		}
	}
	contentType = strings.TrimSuffix(meta, ";base64")

	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, &ImagePayloadError{
			Code:    "INVALID_IMAGE_PAYLOAD",
			Message: "Image payload is not valid base64",
		}
	}

	return contentType, data, nil
}

// ValidateImagePayload checks the content type and decoded size of an
// inline image payload.
func ValidateImagePayload(dataURL string) error {
	contentType, data, err := ParseDataURL(dataURL)
	if err != nil {
		return err
	}

	if _, ok := allowedImageTypes[contentType]; !ok {
		return &ImagePayloadError{
			Code:    "INVALID_IMAGE_FORMAT",
			Message: fmt.Sprintf("Content type %q is not an accepted image format", contentType),
		}
	}

	if len(data) > MaxImageSize {
		return &ImagePayloadError{
			Code:    "IMAGE_TOO_LARGE",
			Message: fmt.Sprintf("Image exceeds maximum allowed size of %d MB", MaxImageSize/(1024*1024)),
		}
	}

	return nil
}

// ImageExtension returns the file extension for an accepted content type,
// or "bin" when the type is unknown.
func ImageExtension(contentType string) string {
	if ext, ok := allowedImageTypes[contentType]; ok {
		return ext
	}
	return "bin"
}
