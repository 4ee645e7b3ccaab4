package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"calorie-bot/internal/handler"
	"calorie-bot/internal/ledger"
)

const welcome = `👋 Привет! Пришлите название продукта — я добавлю его калории (на 100 г) к счёту. Можно отправлять несколько слов через запятую или пробел.

Команды:
/total — калории за сегодня
/reset — сбросить счёт
/help  — помощь`

const helpText = "Отправьте названия продуктов (одно или несколько). Команды: /total, /reset"

// Bot is the Telegram transport. Commands are handled here and never reach
// the resolution pipeline; all other text goes through the request handler.
type Bot struct {
	bot     *tele.Bot
	handler *handler.Handler
	ledger  *ledger.Ledger
	log     *zap.Logger
}

func New(token string, h *handler.Handler, l *ledger.Ledger, log *zap.Logger) (*Bot, error) {
	tb, err := tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	b := &Bot{bot: tb, handler: h, ledger: l, log: log}

	tb.Handle("/start", func(c tele.Context) error {
		return c.Send(welcome)
	})
	tb.Handle("/help", func(c tele.Context) error {
		return c.Send(helpText)
	})
	tb.Handle("/total", func(c tele.Context) error {
		total := b.ledger.Total(userID(c))
		return c.Send(fmt.Sprintf("Сегодня вы съели %d ккал.", total))
	})
	tb.Handle("/reset", func(c tele.Context) error {
		user := userID(c)
		if err := b.ledger.Reset(user); err != nil {
			b.log.Error("failed to reset ledger", zap.String("user", user), zap.Error(err))
			return c.Send("⚠️ Не удалось сбросить счётчик, попробуйте ещё раз.")
		}
		return c.Send("Счётчик на сегодня сброшен.")
	})
	tb.Handle(tele.OnText, b.onText)

	return b, nil
}

func userID(c tele.Context) string {
	return strconv.FormatInt(c.Sender().ID, 10)
}

func (b *Bot) onText(c tele.Context) error {
	text := c.Text()
	if strings.HasPrefix(strings.TrimSpace(text), "/") {
		return nil
	}

	user := userID(c)
	log := b.log.With(
		zap.String("request_id", ulid.Make().String()),
		zap.String("user", user),
	)

	report, err := b.handler.Process(context.Background(), user, text)
	if err != nil {
		log.Error("failed to process message", zap.Error(err))
		return c.Send("⚠️ Не удалось сохранить данные, попробуйте ещё раз.")
	}

	log.Info("message processed",
		zap.Int("items", len(report.Items)),
		zap.Int("added_kcal", report.TotalAdded))
	return c.Send(handler.FormatReport(report))
}

// Start begins long polling and blocks until Stop is called.
func (b *Bot) Start() {
	b.bot.Start()
}

func (b *Bot) Stop() {
	b.bot.Stop()
}
