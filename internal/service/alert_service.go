package service

import (
	"context"
	"log"

	"github.com/navassist/nav-reconciler/internal/apperrors"
	"github.com/navassist/nav-reconciler/internal/config"
	"github.com/navassist/nav-reconciler/internal/model"
	"github.com/navassist/nav-reconciler/internal/notify"
	"github.com/navassist/nav-reconciler/internal/repository"
	"github.com/navassist/nav-reconciler/internal/secrets"
)

// NotifierFactory builds a Notifier for a set of credentials. Injected so
// tests can intercept dispatches without a real Telegram bot.
type NotifierFactory func(botToken string, chatID int64) (notify.Notifier, error)

// AlertService manages the stored alert channel credentials and dispatches
// alert messages. The bot token is fernet-encrypted at rest; process
// environment credentials act as a fallback when no row is stored.
type AlertService struct {
	alertRepo   *repository.AlertRepository
	box         *secrets.Box
	fallback    config.TelegramConfig
	newNotifier NotifierFactory
}

// NewAlertService creates a new AlertService. box may be nil when no secret
// key is configured; storing credentials then fails, but the environment
// fallback still works.
func NewAlertService(
	alertRepo *repository.AlertRepository,
	box *secrets.Box,
	fallback config.TelegramConfig,
	newNotifier NotifierFactory,
) *AlertService {
	if newNotifier == nil {
		newNotifier = func(botToken string, chatID int64) (notify.Notifier, error) {
			return notify.NewTelegramNotifier(botToken, chatID)
		}
	}
	return &AlertService{
		alertRepo:   alertRepo,
		box:         box,
		fallback:    fallback,
		newNotifier: newNotifier,
	}
}

// Dispatch sends one alert message, best-effort. With no credentials
// configured the message is silently discarded; any failure is logged and
// never propagated.
func (s *AlertService) Dispatch(ctx context.Context, message string) {
	if err := s.notifier(ctx).Send(ctx, message); err != nil {
		log.Printf("failed to dispatch alert: %v", err)
	}
}

// notifier picks the active channel, falling back to the discarding Noop
// when no credentials are configured or the channel cannot be built.
func (s *AlertService) notifier(ctx context.Context) notify.Notifier {
	token, chatID, ok := s.credentials(ctx)
	if !ok {
		return notify.Noop{}
	}

	n, err := s.newNotifier(token, chatID)
	if err != nil {
		log.Printf("failed to build alert notifier: %v", err)
		return notify.Noop{}
	}

	return n
}

// credentials resolves the active bot token and chat ID, preferring the
// stored setting over the environment fallback.
func (s *AlertService) credentials(ctx context.Context) (string, int64, bool) {
	row, err := s.alertRepo.Get(ctx)
	if err != nil {
		log.Printf("failed to read alert setting: %v", err)
	}

	if row != nil && row.Enabled && s.box != nil {
		token, err := s.box.Decrypt(row.BotTokenEncrypted)
		if err != nil {
			log.Printf("failed to decrypt stored bot token: %v", err)
		} else if token != "" && row.ChatID != 0 {
			return token, row.ChatID, true
		}
	}

	if s.fallback.BotToken != "" && s.fallback.ChatID != 0 {
		return s.fallback.BotToken, s.fallback.ChatID, true
	}

	return "", 0, false
}

// UpdateSetting stores new alert channel credentials, encrypting the token.
func (s *AlertService) UpdateSetting(ctx context.Context, setting model.AlertSetting) error {
	if s.box == nil {
		return apperrors.ErrSecretKeyMissing
	}

	encrypted, err := s.box.Encrypt(setting.BotToken)
	if err != nil {
		return err
	}

	return s.alertRepo.Upsert(ctx, repository.AlertSettingRow{
		ID:                setting.ID,
		BotTokenEncrypted: encrypted,
		ChatID:            setting.ChatID,
		Enabled:           setting.Enabled,
	})
}

// GetSetting retrieves the stored setting without the token plaintext.
// Returns apperrors.ErrAlertSettingNotFound when nothing is stored.
func (s *AlertService) GetSetting(ctx context.Context) (model.AlertSetting, error) {
	row, err := s.alertRepo.Get(ctx)
	if err != nil {
		return model.AlertSetting{}, err
	}
	if row == nil {
		return model.AlertSetting{}, apperrors.ErrAlertSettingNotFound
	}

	return model.AlertSetting{
		ID:        row.ID,
		ChatID:    row.ChatID,
		Enabled:   row.Enabled,
		UpdatedAt: row.UpdatedAt,
	}, nil
}
