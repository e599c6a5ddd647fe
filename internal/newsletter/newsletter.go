package newsletter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/prakritistore/cart-service/internal/models"
	"github.com/prakritistore/cart-service/internal/storage"
)

var (
	ErrInvalidEmail      = errors.New("newsletter: invalid email address")
	ErrAlreadySubscribed = errors.New("newsletter: email already subscribed")
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Service records newsletter signups, deduplicated by email.
type Service struct {
	kv storage.KV
}

func NewService(kv storage.KV) *Service {
	return &Service{kv: kv}
}

func (s *Service) Subscribe(ctx context.Context, name, email string) (models.Subscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRe.MatchString(email) {
		return models.Subscriber{}, ErrInvalidEmail
	}

	subs, err := s.List(ctx)
	if err != nil {
		return models.Subscriber{}, err
	}
	for _, existing := range subs {
		if existing.Email == email {
			return models.Subscriber{}, ErrAlreadySubscribed
		}
	}

	sub := models.Subscriber{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		SubscribedAt: time.Now().UTC(),
	}
	subs = append(subs, sub)

	data, err := json.Marshal(subs)
	if err != nil {
		return models.Subscriber{}, fmt.Errorf("newsletter: encode: %w", err)
	}
	if err := s.kv.Set(ctx, storage.KeySubscribers, data); err != nil {
		return models.Subscriber{}, fmt.Errorf("newsletter: persist: %w", err)
	}

	slog.InfoContext(ctx, "newsletter subscription", "email", email)
	return sub, nil
}

// List returns all subscribers; missing or corrupt data reads as empty.
func (s *Service) List(ctx context.Context) ([]models.Subscriber, error) {
	data, err := s.kv.Get(ctx, storage.KeySubscribers)
	if err != nil {
		if errors.Is(err, storage.ErrNoKey) {
			return []models.Subscriber{}, nil
		}
		return nil, fmt.Errorf("newsletter: load: %w", err)
	}
	var subs []models.Subscriber
	if err := json.Unmarshal(data, &subs); err != nil {
		slog.Warn("newsletter: subscriber list corrupt, resetting", "error", err)
		return []models.Subscriber{}, nil
	}
	return subs, nil
}
