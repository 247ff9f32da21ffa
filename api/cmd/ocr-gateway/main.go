package main

import (
	"log"

	"ocr-gateway/api/internal/config"
	"ocr-gateway/api/internal/gateway"
	"ocr-gateway/api/internal/httpserver"
	"ocr-gateway/api/internal/metrics"
	"ocr-gateway/api/internal/ocr"
	"ocr-gateway/api/internal/ocr/gemini"
	"ocr-gateway/api/internal/ocr/ocrspace"
)

func main() {
	cfg := config.Load()

	engines := &ocr.Engines{
		OCRSpace: ocrspace.New(cfg.OCRSpaceAPIKey, cfg.OCRSpaceURL, cfg.OCRLanguage),
		Gemini:   gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel),
	}
	engine, err := engines.GetEngine(cfg.OCREngine)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("ocr engine: %s", engine.Name())

	h := gateway.New(metrics.InstrumentEngine(engine), cfg.EngineAPIKey(), cfg.OCRLanguage)

	addr := "0.0.0.0:" + cfg.Port
	log.Fatal(httpserver.Start(addr, h))
}
