package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ocr-gateway/api/internal/config"
	"ocr-gateway/api/internal/ocr"
	"ocr-gateway/api/internal/ocr/gemini"
	"ocr-gateway/api/internal/ocr/ocrspace"
)

var httpc = &http.Client{Timeout: 60 * time.Second}

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

	bot, err := tgbotapi.NewBotAPI(cfg.MustTelegramBotToken())
	if err != nil {
		log.Fatal(err)
	}
	bot.Debug = false
	log.Printf("bot authorized as @%s, engine: %s", bot.Self.UserName, engine.Name())

	runPolling(context.Background(), bot, func(upd tgbotapi.Update) {
		handleUpdate(bot, engine, upd)
	})
}

func runPolling(ctx context.Context, bot *tgbotapi.BotAPI, handle func(tgbotapi.Update)) {
	offset := 0
	baseDelay := 1 * time.Second
	maxDelay := 15 * time.Second

	for {
		select {
		case <-ctx.Done():
			log.Printf("polling: context cancelled")
			return
		default:
		}

		u := tgbotapi.NewUpdate(offset)
		u.Timeout = 30 // long polling timeout (sec)

		updates, err := bot.GetUpdates(u)
		if err != nil {
			d := baseDelay
			if strings.Contains(strings.ToLower(err.Error()), "too many requests") {
				d = 3 * time.Second
			}
			if d > maxDelay {
				d = maxDelay
			}
			log.Printf("polling error: %v; retry in %v", err, d)
			time.Sleep(d)
			continue
		}

		for _, upd := range updates {
			if upd.UpdateID >= offset {
				offset = upd.UpdateID + 1
			}
			handle(upd)
		}

		if len(updates) == 0 {
			time.Sleep(200 * time.Millisecond)
		}
	}
}

func handleUpdate(bot *tgbotapi.BotAPI, engine ocr.Engine, upd tgbotapi.Update) {
	msg := upd.Message
	if msg == nil {
		return
	}
	cid := msg.Chat.ID

	if msg.IsCommand() {
		send(bot, cid, "Пришлите фото — верну распознанный текст.")
		return
	}
	if len(msg.Photo) == 0 {
		send(bot, cid, "Жду фото с текстом.")
		return
	}

	// largest variant is last
	ph := msg.Photo[len(msg.Photo)-1]
	file, err := bot.GetFile(tgbotapi.FileConfig{FileID: ph.FileID})
	if err != nil {
		sendError(bot, cid, err)
		return
	}
	url := fmt.Sprintf("https://api.telegram.org/file/bot%s/%s", bot.Token, file.FilePath)
	imgBytes, err := download(url)
	if err != nil {
		sendError(bot, cid, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	res, err := engine.Recognize(ctx, ocr.Request{
		Base64Image: base64.StdEncoding.EncodeToString(imgBytes),
	})
	if err != nil {
		sendError(bot, cid, err)
		return
	}

	text := strings.TrimSpace(res.Text)
	if text == "" {
		send(bot, cid, "Текст на фото не найден.")
		return
	}
	send(bot, cid, text)
}

func download(url string) ([]byte, error) {
	resp, err := httpc.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

const maxMessageLen = 4000 // telegram caps at 4096

func send(bot *tgbotapi.BotAPI, cid int64, text string) {
	runes := []rune(text)
	for len(runes) > 0 {
		n := len(runes)
		if n > maxMessageLen {
			n = maxMessageLen
		}
		chunk := string(runes[:n])
		runes = runes[n:]
		if _, err := bot.Send(tgbotapi.NewMessage(cid, chunk)); err != nil {
			log.Printf("send to %d: %v", cid, err)
			return
		}
	}
}

func sendError(bot *tgbotapi.BotAPI, cid int64, err error) {
	log.Printf("chat %d: %v", cid, err)
	send(bot, cid, "Не получилось распознать: "+err.Error())
}
