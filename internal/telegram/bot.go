package telegram

import (
	"context"
	"fmt"
	"html"
	"log"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"go-eats-agent/internal/queue"
	"go-eats-agent/internal/recommend"
)

// Bot is the chat transport: it turns incoming messages into queue jobs
// with an instant "searching" ack, and pushes ranked results back once the
// worker gets there. Implements queue.Pusher.
type Bot struct {
	api *tgbotapi.BotAPI
}

func NewBot(token string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return &Bot{api: api}, nil
}

// Listen long-polls for updates and enqueues every text message. Returns
// when ctx is canceled.
func (b *Bot) Listen(ctx context.Context, worker *queue.Worker) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	log.Println("🤖 Telegram listener started")
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update := <-updates:
			b.HandleUpdate(update, worker)
		}
	}
}

// HandleUpdate enqueues one inbound message and acks immediately. Shared by
// the long-poll listener and the webhook endpoint.
func (b *Bot) HandleUpdate(update tgbotapi.Update, worker *queue.Worker) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	chatID := update.Message.Chat.ID
	text := update.Message.Text
	log.Printf("💬 Received from chat %d: %s", chatID, text)

	err := worker.Enqueue(queue.Job{
		UserID: strconv.FormatInt(chatID, 10),
		Text:   text,
	})
	if err != nil {
		b.send(chatID, "🙏 現在排隊的人太多了，請稍後再試")
		return
	}

	//fast-path ack; the result arrives out-of-band via push
	b.send(chatID, "🔍 搜尋中，請稍候 10-20 秒...")
}

// PushRecommendations delivers the ranked list: a summary line, then one
// card per store with an inline button to the store page.
func (b *Bot) PushRecommendations(userID string, recs []recommend.Recommendation, totalFound int) error {
	chatID, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid chat id %q: %w", userID, err)
	}

	summary := fmt.Sprintf("✅ 找到 %d 家餐廳！為你推薦 Top %d：", totalFound, len(recs))
	if err := b.send(chatID, summary); err != nil {
		return err
	}

	for _, rec := range recs {
		text := fmt.Sprintf(
			"🍜 <b>%d. %s</b>\n"+
				"%s\n"+
				"%s\n"+
				"💰 %s\n"+
				"%s",
			rec.Rank,
			html.EscapeString(rec.Name),
			html.EscapeString(rec.RatingDisplay),
			html.EscapeString(rec.ETADisplay),
			html.EscapeString(rec.PriceEstimate),
			html.EscapeString(rec.Reason),
		)

		msg := tgbotapi.NewMessage(chatID, text)
		msg.ParseMode = "HTML"
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonURL("🔗 查看店家", rec.URL),
			),
		)

		if _, err := b.api.Send(msg); err != nil {
			return fmt.Errorf("failed to send recommendation card: %w", err)
		}
	}

	return nil
}

// PushText delivers a plain failure or status message.
func (b *Bot) PushText(userID, text string) error {
	chatID, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid chat id %q: %w", userID, err)
	}
	return b.send(chatID, text)
}

func (b *Bot) send(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := b.api.Send(msg)
	if err != nil {
		log.Printf("⚠️ Failed to send telegram message: %v", err)
	}
	return err
}
