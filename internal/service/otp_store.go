package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// OTPStore guarda códigos OTP por email con expiración.
// Set sobreescribe cualquier entrada previa; Get no consume la entrada.
type OTPStore interface {
	Set(email, code string, ttl time.Duration) error
	Get(email string) (string, bool, error)
	Remove(email string) error
}

type otpEntry struct {
	code      string
	expiresAt time.Time
}

type memoryOTPStore struct {
	mu    sync.Mutex
	items map[string]otpEntry
}

// NewMemoryOTPStore crea un store en memoria. La expiración se aplica
// de forma perezosa en la lectura. Solo sirve para despliegues de una
// instancia: con varias réplicas el OTP quedaría pegado a un proceso.
func NewMemoryOTPStore() OTPStore {
	return &memoryOTPStore{
		items: make(map[string]otpEntry),
	}
}

func (s *memoryOTPStore) Set(email, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.TrimSpace(email) == "" {
		return nil
	}
	s.items[email] = otpEntry{
		code:      code,
		expiresAt: time.Now().UTC().Add(ttl),
	}
	return nil
}

func (s *memoryOTPStore) Get(email string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.items[email]
	if !ok {
		return "", false, nil
	}
	if time.Now().UTC().After(entry.expiresAt) {
		delete(s.items, email)
		return "", false, nil
	}
	return entry.code, true, nil
}

func (s *memoryOTPStore) Remove(email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, email)
	return nil
}

type redisKV interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type redisOTPStore struct {
	client redisKV
	prefix string
}

// NewRedisOTPStore crea un store respaldado por Redis, necesario cuando el
// servicio corre con más de una réplica.
func NewRedisOTPStore(client *redis.Client) OTPStore {
	if client == nil {
		return nil
	}
	return newRedisOTPStore(client)
}

func newRedisOTPStore(client redisKV) OTPStore {
	return &redisOTPStore{
		client: client,
		prefix: "otp:",
	}
}

func (s *redisOTPStore) Set(email, code string, ttl time.Duration) error {
	if strings.TrimSpace(email) == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	return s.client.Set(ctx, s.prefix+email, code, ttl).Err()
}

func (s *redisOTPStore) Get(email string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	code, err := s.client.Get(ctx, s.prefix+email).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return code, true, nil
}

func (s *redisOTPStore) Remove(email string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	return s.client.Del(ctx, s.prefix+email).Err()
}
