package model

import "time"

// AlertSetting holds the persisted alert channel credentials. The bot token
// is stored fernet-encrypted; BotToken here is always the plaintext form.
type AlertSetting struct {
	ID        string    `json:"id"`
	BotToken  string    `json:"-"`
	ChatID    int64     `json:"chat_id"`
	Enabled   bool      `json:"enabled"`
	UpdatedAt time.Time `json:"updated_at"`
}
