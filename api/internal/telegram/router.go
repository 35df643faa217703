package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"cash-reader/api/internal/logger"
	"cash-reader/api/internal/ocr/types"
)

// Analyzer reads denomination counts from an image.
type Analyzer interface {
	Analyze(ctx context.Context, image []byte) (types.DenominationCount, error)
	HasCredential() bool
}

// botAPI is the subset of *tgbotapi.BotAPI the router uses.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetFileDirectURL(fileID string) (string, error)
}

type Router struct {
	Bot      botAPI
	Analyzer Analyzer
	Model    string

	// MaxImageBytes caps a downloaded photo; zero means unlimited.
	MaxImageBytes int64
	HTTPClient    *http.Client
}

func NewRouter(bot botAPI, an Analyzer, model string, maxImageBytes int64) *Router {
	return &Router{
		Bot:           bot,
		Analyzer:      an,
		Model:         model,
		MaxImageBytes: maxImageBytes,
		HTTPClient:    &http.Client{Timeout: 60 * time.Second},
	}
}

func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message == nil {
		return
	}
	msg := upd.Message
	cid := msg.Chat.ID

	if msg.IsCommand() {
		r.HandleCommand(cid, msg.Command())
		return
	}

	switch {
	case len(msg.Photo) > 0:
		// last size is the largest
		r.analyzeFile(ctx, cid, msg.Photo[len(msg.Photo)-1].FileID)
	case msg.Document != nil && strings.HasPrefix(msg.Document.MimeType, "image/"):
		r.analyzeFile(ctx, cid, msg.Document.FileID)
	default:
		r.send(cid, startText)
	}
}

const startText = "釣銭機の画面を撮影して送ってください。金種ごとの枚数を読み取ります。\nコマンド: /health"

func (r *Router) HandleCommand(chatID int64, cmd string) {
	switch cmd {
	case "start", "help":
		r.send(chatID, startText)
	case "health":
		if !r.Analyzer.HasCredential() {
			r.send(chatID, "⚠️ "+types.MissingCredentialMessage)
			return
		}
		r.send(chatID, "✅ OK ("+r.Model+")")
	default:
		r.send(chatID, "不明なコマンドです")
	}
}

func (r *Router) analyzeFile(ctx context.Context, chatID int64, fileID string) {
	log := logger.WithFields(logrus.Fields{"chat_id": chatID, "file_id": fileID})

	url, err := r.Bot.GetFileDirectURL(fileID)
	if err != nil {
		err = withoutURL(err)
		log.WithError(err).Warn("get file url failed")
		r.SendError(chatID, err)
		return
	}
	img, err := r.download(ctx, url)
	if err != nil {
		log.WithError(err).Warn("download failed")
		r.SendError(chatID, err)
		return
	}

	counts, err := r.Analyzer.Analyze(ctx, img)
	if err != nil {
		var ae *types.AnalysisError
		if errors.As(err, &ae) {
			log = log.WithField("error_kind", ae.Kind)
		}
		log.WithError(err).Warn("analysis failed")
		r.SendError(chatID, err)
		return
	}
	r.send(chatID, FormatCounts(counts))
}

func (r *Router) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, withoutURL(err)
	}
	resp, err := r.HTTPClient.Do(req)
	if err != nil {
		return nil, withoutURL(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("download status %d: %s", resp.StatusCode, string(b))
	}

	body := io.Reader(resp.Body)
	if r.MaxImageBytes > 0 {
		body = io.LimitReader(resp.Body, r.MaxImageBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	if r.MaxImageBytes > 0 && int64(len(data)) > r.MaxImageBytes {
		return nil, fmt.Errorf("image larger than %d bytes", r.MaxImageBytes)
	}
	return data, nil
}

// withoutURL drops the request URL from transport errors. Telegram file and
// API URLs embed the bot token.
func withoutURL(err error) error {
	var ue *neturl.Error
	if errors.As(err, &ue) {
		return fmt.Errorf("%s request failed: %w", ue.Op, ue.Err)
	}
	return err
}

func (r *Router) send(chatID int64, text string) {
	if _, err := r.Bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		logger.WithError(err).WithField("chat_id", chatID).Warn("telegram send failed")
	}
}

func (r *Router) SendError(chatID int64, err error) {
	r.send(chatID, "⚠️ 読み取りに失敗しました: "+err.Error())
}
