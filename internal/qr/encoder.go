package qr

import (
	"fmt"
	"github.com/skip2/go-qrcode"
	"image"
)

// Encoder represents a deterministic QR code encoder bound to a fixed pixel size
type Encoder struct {
	Size          int
	RecoveryLevel qrcode.RecoveryLevel
}

// NewEncoder creates a new encoder producing size*size codes at medium recovery level
func NewEncoder(size int) *Encoder {
	return &Encoder{
		Size:          size,
		RecoveryLevel: qrcode.Medium,
	}
}

// Payload returns the string encoded into the code at the given 1-based index.
// A single requested code carries the bare token; multiple codes carry an index suffix
// so that every generated code stays distinguishable.
func Payload(token string, index, total int) string {
	if total <= 1 {
		return token
	}
	return fmt.Sprintf("%s:%d", token, index)
}

// Encode renders count QR codes for the given token.
// The result is deterministic for identical input.
func (encoder *Encoder) Encode(token string, count int) ([]image.Image, error) {
	images := make([]image.Image, 0, count)
	for i := 1; i <= count; i++ {
		code, err := qrcode.New(Payload(token, i, count), encoder.RecoveryLevel)
		if err != nil {
			return nil, err
		}
		images = append(images, code.Image(encoder.Size))
	}
	return images, nil
}
