package discord

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// MaxMessageLength is Discord's limit on message content.
const MaxMessageLength = 2000

var ErrInvalidWebhookURL = errors.New("invalid Discord webhook URL")

// Webhook posts messages to a channel through a Discord webhook. It needs no
// bot token or gateway connection.
type Webhook struct {
	session *discordgo.Session
	id      string
	token   string
	log     *zap.Logger
}

func NewWebhook(rawURL string, log *zap.Logger) (*Webhook, error) {
	if log == nil {
		log = zap.NewNop()
	}
	id, token, err := ParseWebhookURL(rawURL)
	if err != nil {
		return nil, err
	}
	s, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("creating Discord session: %w", err)
	}
	return &Webhook{
		session: s,
		id:      id,
		token:   token,
		log:     log.With(zap.String("component", "discord")),
	}, nil
}

// ParseWebhookURL extracts the webhook ID and token from a URL of the form
// https://discord.com/api/webhooks/{id}/{token}.
func ParseWebhookURL(rawURL string) (id, token string, err error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidWebhookURL, rawURL)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, p := range parts {
		if p == "webhooks" && i+2 < len(parts) && parts[i+1] != "" && parts[i+2] != "" {
			return parts[i+1], parts[i+2], nil
		}
	}
	return "", "", fmt.Errorf("%w: %q", ErrInvalidWebhookURL, rawURL)
}

// Notify sends msg, split into as many messages as Discord requires.
func (w *Webhook) Notify(ctx context.Context, msg string) error {
	chunks := splitMessage(msg, MaxMessageLength)
	for i, chunk := range chunks {
		_, err := w.session.WebhookExecute(w.id, w.token, true,
			&discordgo.WebhookParams{Content: chunk},
			discordgo.WithContext(ctx),
		)
		if err != nil {
			return fmt.Errorf("posting webhook message %d/%d: %w", i+1, len(chunks), err)
		}
	}
	w.log.Info("webhook delivered", zap.Int("messages", len(chunks)))
	return nil
}
