package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"ocr-gateway/api/internal/ocr"
)

type Handler struct {
	engine   ocr.Engine
	apiKey   string
	language string
}

func New(engine ocr.Engine, apiKey, language string) *Handler {
	return &Handler{
		engine:   engine,
		apiKey:   apiKey,
		language: language,
	}
}

// Handle maps one invocation to a response envelope. The error return is the
// unrecoverable channel: malformed request JSON and provider transport
// failures come back there and are left to the hosting layer.
func (h *Handler) Handle(ctx context.Context, ev Event, inv Context) (Response, error) {
	switch ev.HTTPMethod {
	case http.MethodOptions:
		return Response{
			StatusCode: http.StatusOK,
			Headers: map[string]string{
				"Access-Control-Allow-Origin":  "*",
				"Access-Control-Allow-Methods": "POST, OPTIONS",
				"Access-Control-Allow-Headers": "Content-Type",
				"Access-Control-Max-Age":       "86400",
			},
			Body: "",
		}, nil
	case http.MethodPost:
	default:
		return jsonResponse(http.StatusMethodNotAllowed, map[string]any{
			"error": "Method not allowed",
		}), nil
	}

	raw := ev.Body
	if raw == "" {
		raw = "{}"
	}
	var body struct {
		Image string `json:"image"`
	}
	if err := json.Unmarshal([]byte(raw), &body); err != nil {
		return Response{}, fmt.Errorf("parse request body: %w", err)
	}

	if body.Image == "" {
		return jsonResponse(http.StatusBadRequest, map[string]any{
			"error": "Image is required",
		}), nil
	}

	if h.apiKey == "" {
		return jsonResponse(http.StatusInternalServerError, map[string]any{
			"error": "OCR API key not configured",
		}), nil
	}

	res, err := h.engine.Recognize(ctx, ocr.Request{
		Base64Image: body.Image,
		Language:    h.language,
	})
	if err != nil {
		var pe *ocr.ProcessingError
		if errors.As(err, &pe) {
			details := pe.Messages
			if details == nil {
				details = []string{}
			}
			return jsonResponse(http.StatusInternalServerError, map[string]any{
				"error":   "OCR processing failed",
				"details": details,
			}), nil
		}
		return Response{}, err
	}

	return jsonResponse(http.StatusOK, map[string]any{
		"text":      strings.TrimSpace(res.Text),
		"requestId": inv.RequestID,
	}), nil
}

func jsonResponse(code int, v any) Response {
	b, _ := json.Marshal(v)
	return Response{
		StatusCode: code,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
		Body: string(b),
	}
}
