package telegram

import (
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const apiBase = "https://api.telegram.org/bot"

type Bot struct {
	baseURL string
	client  *http.Client
}

func NewBot(token string) *Bot {
	return &Bot{
		baseURL: apiBase + token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// NewBotWithClient points the bot at a custom endpoint and HTTP client;
// tests use it to talk to a local stand-in for the Telegram API.
func NewBotWithClient(baseURL string, client *http.Client) *Bot {
	return &Bot{
		baseURL: baseURL,
		client:  client,
	}
}

func (b *Bot) SendMessage(chatID, text string) error {
	endpoint := b.baseURL + "/sendMessage"

	params := url.Values{}
	params.Add("chat_id", chatID)
	params.Add("text", text)

	resp, err := b.client.PostForm(endpoint, params)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API error: %s", resp.Status)
	}

	return nil
}
