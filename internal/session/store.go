package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// ErrNotFound сессия отсутствует или истекла
var ErrNotFound = errors.New("session not found")

// Data содержимое сессии
type Data struct {
	UserID    int64     `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired проверяет срок действия сессии
func (d *Data) Expired(now time.Time) bool {
	return !now.Before(d.ExpiresAt)
}

// Store определяет интерфейс хранилища сессий
type Store interface {
	Get(ctx context.Context, key string) (*Data, error)
	Save(ctx context.Context, key string, data *Data) error
	Delete(ctx context.Context, key string) error
}

// Record строка таблицы sessions
type Record struct {
	Key       string    `gorm:"primaryKey;type:varchar(64)"`
	UserID    int64     `gorm:"not null;index"`
	ExpiresAt time.Time `gorm:"not null;index"`
}

// TableName задаёт имя таблицы для GORM
func (Record) TableName() string {
	return "sessions"
}

type GormStore struct {
	db *gorm.DB
}

// NewGormStore хранит сессии в таблице sessions
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Get(ctx context.Context, key string) (*Data, error) {
	if key == "" {
		return nil, ErrNotFound
	}

	var rec Record
	err := s.db.WithContext(ctx).Where(&Record{Key: key}).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	data := &Data{UserID: rec.UserID, ExpiresAt: rec.ExpiresAt}
	if data.Expired(time.Now()) {
		if err := s.Delete(ctx, key); err != nil {
			return nil, err
		}
		return nil, ErrNotFound
	}
	return data, nil
}

func (s *GormStore) Save(ctx context.Context, key string, data *Data) error {
	return s.db.WithContext(ctx).Save(&Record{
		Key:       key,
		UserID:    data.UserID,
		ExpiresAt: data.ExpiresAt,
	}).Error
}

func (s *GormStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Where(&Record{Key: key}).Delete(&Record{}).Error
}

// DeleteExpired удаляет истёкшие сессии и возвращает их количество
func (s *GormStore) DeleteExpired(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).Where("expires_at <= ?", time.Now()).Delete(&Record{})
	return result.RowsAffected, result.Error
}

type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore хранит сессии в Redis, срок жизни ключа равен сроку сессии
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "session:"}
}

func (s *RedisStore) Get(ctx context.Context, key string) (*Data, error) {
	raw, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("corrupted session %s: %w", key, err)
	}
	if data.Expired(time.Now()) {
		return nil, ErrNotFound
	}
	return &data, nil
}

func (s *RedisStore) Save(ctx context.Context, key string, data *Data) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.prefix+key, raw, time.Until(data.ExpiresAt)).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}
