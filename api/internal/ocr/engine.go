package ocr

import (
	"context"
	"errors"
)

type Engine interface {
	Name() string
	Recognize(ctx context.Context, in Request) (Result, error)
}

type Engines struct {
	OCRSpace Engine
	Gemini   Engine
}

// GetEngine resolves the engine configured at startup. Selection is static:
// a provider failure is surfaced to the caller, never rerouted to another engine.
func (e *Engines) GetEngine(name string) (Engine, error) {
	switch name {
	case "", "ocrspace", "ocr.space":
		return e.OCRSpace, nil
	case "gemini":
		return e.Gemini, nil
	default:
		return nil, errors.New("unknown OCR_ENGINE; use 'ocrspace' or 'gemini'")
	}
}
