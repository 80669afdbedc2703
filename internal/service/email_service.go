package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/resend/resend-go/v2"
)

// EmailService sends transactional and broadcast emails.
type EmailService interface {
	Send(ctx context.Context, toEmail, subject, body string) error
	// SendBroadcast отправляет одно и то же письмо списку получателей.
	// Возвращает количество успешно отправленных писем.
	SendBroadcast(ctx context.Context, recipients []string, subject, body string) (int, error)
}

// NoopEmailService is used when no Resend API key is configured.
type NoopEmailService struct{}

func (s *NoopEmailService) Send(ctx context.Context, toEmail, subject, body string) error {
	log.Printf("[EmailService] noop send to=%s subject=%q", toEmail, subject)
	return nil
}

func (s *NoopEmailService) SendBroadcast(ctx context.Context, recipients []string, subject, body string) (int, error) {
	log.Printf("[EmailService] noop broadcast to %d recipients subject=%q", len(recipients), subject)
	return len(recipients), nil
}

// ResendEmailService sends emails via Resend REST API.
type ResendEmailService struct {
	from    string
	replyTo string
	client  *resend.Client
}

func NewResendEmailService(apiKey, from, replyTo string) (*ResendEmailService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend api key is required")
	}
	if from == "" {
		return nil, fmt.Errorf("email from is required")
	}
	return &ResendEmailService{
		from:    from,
		replyTo: replyTo,
		client:  resend.NewClient(apiKey),
	}, nil
}

func (s *ResendEmailService) Send(ctx context.Context, toEmail, subject, body string) error {
	if toEmail == "" || subject == "" {
		return fmt.Errorf("toEmail and subject are required")
	}
	return s.send(ctx, toEmail, subject, body, uuid.NewString())
}

// SendBroadcast шлет письма по одному: Resend не дает батчи с разными
// idempotency-ключами, а падение на одном адресе не должно ронять рассылку.
func (s *ResendEmailService) SendBroadcast(ctx context.Context, recipients []string, subject, body string) (int, error) {
	sent := 0
	var lastErr error
	for _, to := range recipients {
		if err := s.send(ctx, to, subject, body, uuid.NewString()); err != nil {
			log.Printf("[EmailService] Не удалось отправить письмо to=%s: %v", to, err)
			lastErr = err
			continue
		}
		sent++
	}
	if sent == 0 && lastErr != nil {
		return 0, lastErr
	}
	return sent, nil
}

func (s *ResendEmailService) send(ctx context.Context, toEmail, subject, body, idempotencyKey string) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{toEmail},
		Subject: subject,
		Text:    body,
	}
	if s.replyTo != "" {
		params.ReplyTo = s.replyTo
	}

	options := &resend.SendEmailOptions{}
	if strings.TrimSpace(idempotencyKey) != "" {
		options.IdempotencyKey = strings.TrimSpace(idempotencyKey)
	}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		_, err := s.client.Emails.SendWithOptions(ctx, params, options)
		if err == nil {
			return nil
		}
		lastErr = err

		if wait, ok := resendRetryDelay(err, attempt); ok {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
				continue
			}
		}

		return fmt.Errorf("resend send failed: %w", err)
	}

	return fmt.Errorf("resend send failed after retries: %w", lastErr)
}

func resendRetryDelay(err error, attempt int) (time.Duration, bool) {
	var rateLimitErr *resend.RateLimitError
	if errors.As(err, &rateLimitErr) {
		if seconds, convErr := strconv.Atoi(strings.TrimSpace(rateLimitErr.RetryAfter)); convErr == nil && seconds > 0 {
			if seconds > 30 {
				seconds = 30
			}
			return time.Duration(seconds) * time.Second, true
		}
		return time.Duration(attempt+1) * time.Second, true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && (netErr.Timeout() || netErr.Temporary()) {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "temporar") {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	return 0, false
}
