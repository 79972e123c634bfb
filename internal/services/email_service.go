package services

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/MalenaSein/anime-tracker/internal/config"
	"github.com/MalenaSein/anime-tracker/internal/notifier"
)

// EmailService delivers episode reminders over SMTP. It implements
// notifier.Dispatcher as the legacy alternative to web push.
type EmailService struct {
	cfg *config.Config
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{cfg: cfg}
}

func (s *EmailService) Dispatch(_ context.Context, m notifier.Match) error {
	subject := fmt.Sprintf("Recordatorio: %s - %s", m.AnimeName, m.Slot.Label())
	body := strings.TrimSpace(fmt.Sprintf(`
Recordatorio de Anime Tracker

Tu anime "%s" se emitirá en 1 minuto.

Horario programado: %s

Este es un recordatorio automático configurado en tu calendario.
Para gestionar tus notificaciones, accede a tu cuenta de Anime Tracker.
`, m.AnimeName, m.Slot.Label()))

	var msg strings.Builder
	msg.WriteString("From: " + s.cfg.EmailFrom + "\r\n")
	msg.WriteString("To: " + m.Email + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)
	msg.WriteString("\r\n")

	addr := s.cfg.SMTPHost + ":" + s.cfg.SMTPPort
	auth := smtp.PlainAuth("", s.cfg.EmailUser, s.cfg.EmailPassword, s.cfg.SMTPHost)

	if err := smtp.SendMail(addr, auth, s.cfg.EmailUser, []string{m.Email}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send reminder email: %w", err)
	}
	return nil
}
