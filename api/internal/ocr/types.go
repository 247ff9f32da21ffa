package ocr

import "strings"

// Request carries one image to a recognition engine. Base64Image may be a
// bare base64 string or a data:URL, engines decode as needed.
type Request struct {
	Base64Image string
	Language    string
}

// Result is the recognized text. Engines return it untrimmed; presentation
// decides what whitespace to keep.
type Result struct {
	Text string
}

// ProcessingError is a failure reported by the provider itself (bad image,
// unsupported format, ...), as opposed to a transport error. Callers pick it
// out with errors.As.
type ProcessingError struct {
	Messages []string
}

func (e *ProcessingError) Error() string {
	if len(e.Messages) == 0 {
		return "ocr: provider reported a processing error"
	}
	return "ocr: " + strings.Join(e.Messages, "; ")
}
