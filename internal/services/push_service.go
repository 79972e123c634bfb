package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/MalenaSein/anime-tracker/internal/config"
	"github.com/MalenaSein/anime-tracker/internal/models"
	"github.com/MalenaSein/anime-tracker/internal/notifier"
	webpush "github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNoSubscriptions = errors.New("el usuario no tiene suscripciones push")

// PushService stores Web Push subscriptions and fans notifications out
// to them. It implements notifier.Dispatcher.
type PushService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewPushService(db *gorm.DB, cfg *config.Config) *PushService {
	return &PushService{db: db, cfg: cfg}
}

// SaveSubscription upserts a subscription keyed by endpoint.
func (s *PushService) SaveSubscription(userID uint, endpoint, p256dh, auth string) error {
	if endpoint == "" || p256dh == "" || auth == "" {
		return errors.New("suscripción incompleta")
	}

	sub := models.PushSubscription{
		UserID:   userID,
		Endpoint: endpoint,
		P256dh:   p256dh,
		Auth:     auth,
	}

	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "p256dh", "auth", "updated_at"}),
	}).Create(&sub).Error
}

func (s *PushService) DeleteSubscription(userID uint, endpoint string) error {
	return s.db.Where("user_id = ? AND endpoint = ?", userID, endpoint).
		Delete(&models.PushSubscription{}).Error
}

// Dispatch sends the episode notification to every subscription the user
// has. Endpoints the transport reports gone are deleted. Delivery counts
// as successful when at least one subscription accepted the payload.
func (s *PushService) Dispatch(ctx context.Context, m notifier.Match) error {
	var subs []models.PushSubscription
	if err := s.db.WithContext(ctx).Where("user_id = ?", m.UserID).Find(&subs).Error; err != nil {
		return fmt.Errorf("failed to load subscriptions: %w", err)
	}
	if len(subs) == 0 {
		return ErrNoSubscriptions
	}

	payload, err := json.Marshal(map[string]interface{}{
		"title": "🎬 Nuevo episodio!",
		"body":  fmt.Sprintf("%s - %s", m.AnimeName, m.Slot.Label()),
		"icon":  "/icon-192.png",
		"badge": "/badge-72.png",
		"tag":   "anime-" + m.AnimeName,
		"data": map[string]string{
			"url":   "/",
			"anime": m.AnimeName,
			"time":  m.Slot.Label(),
		},
	})
	if err != nil {
		return err
	}

	var delivered int
	var lastErr error
	for _, sub := range subs {
		if err := s.send(&sub, payload); err != nil {
			lastErr = err
			slog.Warn("push delivery failed", "error", err, "user_id", m.UserID)
			continue
		}
		delivered++
	}

	if delivered == 0 {
		return fmt.Errorf("all push deliveries failed: %w", lastErr)
	}
	return nil
}

func (s *PushService) send(sub *models.PushSubscription, payload []byte) error {
	resp, err := webpush.SendNotification(payload, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &webpush.Options{
		Subscriber:      s.cfg.VAPIDSubject,
		VAPIDPublicKey:  s.cfg.VAPIDPublicKey,
		VAPIDPrivateKey: s.cfg.VAPIDPrivateKey,
		TTL:             60,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// Expired registrations are pruned on the transport's say-so.
	if resp.StatusCode == http.StatusGone || resp.StatusCode == http.StatusNotFound {
		if err := s.db.Delete(&models.PushSubscription{}, "id = ?", sub.ID).Error; err != nil {
			slog.Error("failed to delete stale subscription", "error", err, "id", sub.ID)
		} else {
			slog.Info("stale push subscription removed", "id", sub.ID)
		}
		return fmt.Errorf("subscription gone (%d)", resp.StatusCode)
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("push endpoint returned %d", resp.StatusCode)
	}
	return nil
}
