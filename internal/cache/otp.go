package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrOTPNotFound = errors.New("otp not found or expired")

// OTPStore keeps one-time password-reset codes in redis with a TTL, so codes
// survive process restarts and are shared across instances.
type OTPStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewOTPStore(client *redis.Client, ttl time.Duration) *OTPStore {
	return &OTPStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *OTPStore) key(email string) string {
	return "otp:" + email
}

// Put stores the code for email, replacing any code still pending.
func (s *OTPStore) Put(ctx context.Context, email, code string) error {
	if err := s.client.Set(ctx, s.key(email), code, s.ttl).Err(); err != nil {
		return fmt.Errorf("s.client.Set -> %w", err)
	}

	return nil
}

func (s *OTPStore) Get(ctx context.Context, email string) (string, error) {
	code, err := s.client.Get(ctx, s.key(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrOTPNotFound
		}

		return "", fmt.Errorf("s.client.Get -> %w", err)
	}

	return code, nil
}

// Burn removes the code after a successful verification so it cannot be replayed.
func (s *OTPStore) Burn(ctx context.Context, email string) error {
	if err := s.client.Del(ctx, s.key(email)).Err(); err != nil {
		return fmt.Errorf("s.client.Del -> %w", err)
	}

	return nil
}
