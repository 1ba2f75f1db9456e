package request

// UpdateAlertSettingRequest replaces the stored alert channel credentials.
type UpdateAlertSettingRequest struct {
	BotToken string `json:"bot_token"`
	ChatID   int64  `json:"chat_id"`
	Enabled  bool   `json:"enabled"`
}
