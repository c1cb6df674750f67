package validate

import (
	"fmt"
	"path/filepath"
	"strings"
)

var (
	// CodesMin and CodesMax bound the number of QR codes a single run may request
	CodesMin = 1
	CodesMax = 3

	supportedExtensions = []string{".png", ".jpg", ".jpeg", ".gif"}
)

// ArgumentError represents an invalid command line argument.
// Argument validation runs before any network request is made.
type ArgumentError struct {
	Argument string
	Message  string
}

func (err *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument '%s': %s", err.Argument, err.Message)
}

// Codes checks that the requested QR code count lies in the accepted range
func Codes(count int) error {
	if count < CodesMin || count > CodesMax {
		return &ArgumentError{
			Argument: "codes",
			Message:  fmt.Sprintf("%d is out of the accepted range (%d-%d)", count, CodesMin, CodesMax),
		}
	}
	return nil
}

// Size checks that the per-code pixel size is positive
func Size(size int) error {
	if size <= 0 {
		return &ArgumentError{
			Argument: "size",
			Message:  fmt.Sprintf("%d is not a positive pixel size", size),
		}
	}
	return nil
}

// Output checks that the output path carries a supported image extension
func Output(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range supportedExtensions {
		if ext == supported {
			return nil
		}
	}
	return &ArgumentError{
		Argument: "output",
		Message:  fmt.Sprintf("unsupported image extension '%s' (supported: %s)", ext, strings.Join(supportedExtensions, ", ")),
	}
}
