package telegram

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/sirupsen/logrus"

	"github.com/florabot/backend/internal/usecase"
)

// Connector is the Telegram chat transport: long polling in, Markdown
// replies out. It owns no conversation state; every update runs the
// pipeline independently.
type Connector struct {
	bot         *bot.Bot
	chatService *usecase.ChatService
	log         *logrus.Entry
}

// Config holds configuration for the Telegram connector.
type Config struct {
	BotToken string // Bot token from @BotFather
	Debug    bool   // Enable library debug logging
}

// NewConnector creates a new Telegram connector around the chat service.
func NewConnector(config Config, chatService *usecase.ChatService) (*Connector, error) {
	if config.BotToken == "" {
		return nil, fmt.Errorf("bot token is required")
	}
	if chatService == nil {
		return nil, fmt.Errorf("chat service is required")
	}

	connector := &Connector{
		chatService: chatService,
		log:         logrus.WithField("component", "telegram"),
	}

	opts := []bot.Option{
		bot.WithDefaultHandler(connector.handleUpdate),
	}
	if config.Debug {
		opts = append(opts, bot.WithDebug())
	}

	b, err := bot.New(config.BotToken, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	connector.bot = b
	connector.log.Info("Telegram bot initialized")

	return connector, nil
}

// Start begins polling for updates; blocks until ctx is cancelled.
func (c *Connector) Start(ctx context.Context) {
	c.log.Info("starting Telegram polling")
	c.bot.Start(ctx)
}

// handleUpdate processes one incoming Telegram update.
func (c *Connector) handleUpdate(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}
	if update.Message.From != nil && update.Message.From.IsBot {
		return
	}

	c.log.WithFields(logrus.Fields{
		"chat_id": update.Message.Chat.ID,
	}).Debug("handling message")

	reply := c.chatService.HandleMessage(ctx, update.Message.Text)

	c.send(ctx, b, update.Message.Chat.ID, reply.Text)
	if reply.FollowUp != "" {
		c.send(ctx, b, update.Message.Chat.ID, reply.FollowUp)
	}
}

// send delivers one Markdown-formatted message, falling back to plain
// text when Telegram rejects the markup.
func (c *Connector) send(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	if text == "" {
		return
	}

	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeMarkdownV1,
	})
	if err == nil {
		return
	}

	c.log.WithError(err).Warn("Markdown send failed, retrying as plain text")
	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}); err != nil {
		c.log.WithError(err).Error("failed to send message")
	}
}

// GetBotInfo returns information about the bot account.
func (c *Connector) GetBotInfo(ctx context.Context) (*models.User, error) {
	return c.bot.GetMe(ctx)
}
