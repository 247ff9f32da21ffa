package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"ocr-gateway/api/internal/ocr"
	"ocr-gateway/api/internal/util"
)

type Engine struct {
	APIKey string
	Model  string
}

func New(apiKey, model string) *Engine {
	return &Engine{
		APIKey: strings.TrimSpace(apiKey),
		Model:  strings.TrimSpace(model),
	}
}

func (e *Engine) Name() string { return "gemini" }

const instruction = `Extract all readable text from the image exactly as written. ` +
	`Return the text only, no commentary, no formatting fences.`

func (e *Engine) Recognize(ctx context.Context, in ocr.Request) (ocr.Result, error) {
	if e.APIKey == "" {
		return ocr.Result{}, errors.New("GEMINI_API_KEY is empty")
	}

	img, hintMIME, err := util.DecodeBase64MaybeDataURL(in.Base64Image)
	if err != nil {
		return ocr.Result{}, &ocr.ProcessingError{Messages: []string{"image is not valid base64"}}
	}

	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return ocr.Result{}, err
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.Model)
	m.GenerationConfig = genai.GenerationConfig{Temperature: ptrFloat32(0)}

	resp, err := m.GenerateContent(ctx,
		genai.Text(instruction),
		&genai.Blob{MIMEType: util.PickMIME("", hintMIME, img), Data: img},
	)
	if err != nil {
		return ocr.Result{}, fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ocr.Result{}, nil
	}

	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	return ocr.Result{Text: util.StripCodeFences(sb.String())}, nil
}

func ptrFloat32(v float32) *float32 { return &v }
