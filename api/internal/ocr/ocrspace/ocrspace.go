package ocrspace

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ocr-gateway/api/internal/ocr"
)

const DefaultURL = "https://api.ocr.space/parse/image"

type Engine struct {
	APIKey   string
	URL      string
	Language string
	httpc    *http.Client
}

func New(apiKey, endpoint, language string) *Engine {
	if endpoint == "" {
		endpoint = DefaultURL
	}
	if language == "" {
		language = "rus"
	}
	return &Engine{
		APIKey:   apiKey,
		URL:      endpoint,
		Language: language,
		httpc:    &http.Client{Timeout: 60 * time.Second},
	}
}

func (e *Engine) Name() string { return "ocrspace" }

// wire format: https://ocr.space/OCRAPI
type response struct {
	ParsedResults         []parsedResult `json:"ParsedResults"`
	IsErroredOnProcessing bool           `json:"IsErroredOnProcessing"`
	ErrorMessage          errorMessage   `json:"ErrorMessage"`
	ErrorDetails          string         `json:"ErrorDetails"`
}

type parsedResult struct {
	FileParseExitCode int    `json:"FileParseExitCode"`
	ParsedText        string `json:"ParsedText"`
	ErrorMessage      string `json:"ErrorMessage"`
}

// errorMessage: the API returns either a bare string or a list of strings.
type errorMessage []string

func (m *errorMessage) UnmarshalJSON(b []byte) error {
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		if one == "" {
			*m = nil
		} else {
			*m = errorMessage{one}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return err
	}
	*m = errorMessage(many)
	return nil
}

func (e *Engine) Recognize(ctx context.Context, in ocr.Request) (ocr.Result, error) {
	if e.APIKey == "" {
		return ocr.Result{}, fmt.Errorf("OCR_SPACE_API_KEY is empty")
	}
	lang := in.Language
	if lang == "" {
		lang = e.Language
	}

	form := url.Values{}
	form.Set("base64Image", in.Base64Image)
	form.Set("language", lang)
	form.Set("isOverlayRequired", "false")
	form.Set("detectOrientation", "true")
	form.Set("scale", "true")
	form.Set("OCREngine", "2")

	req, err := http.NewRequestWithContext(ctx, "POST", e.URL, strings.NewReader(form.Encode()))
	if err != nil {
		return ocr.Result{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("apikey", e.APIKey)

	resp, err := e.httpc.Do(req)
	if err != nil {
		return ocr.Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		x, _ := io.ReadAll(resp.Body)
		return ocr.Result{}, fmt.Errorf("ocrspace %d: %s", resp.StatusCode, string(x))
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return ocr.Result{}, err
	}
	if out.IsErroredOnProcessing {
		return ocr.Result{}, &ocr.ProcessingError{Messages: out.ErrorMessage}
	}
	if len(out.ParsedResults) == 0 {
		return ocr.Result{}, nil
	}
	return ocr.Result{Text: out.ParsedResults[0].ParsedText}, nil
}
