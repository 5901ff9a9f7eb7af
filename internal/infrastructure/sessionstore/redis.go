package sessionstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/inventario-portal/internal/domain/entity"
	"github.com/jhoicas/inventario-portal/internal/domain/repository"
)

var _ repository.SessionStore = (*RedisStore)(nil)

// RedisStore guarda la sesión en dos claves Redis: <prefix>token y <prefix>user.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore conecta con la URL dada (redis://host:6379/0) y verifica la conexión.
func NewRedisStore(ctx context.Context, url, prefix string) (*RedisStore, error) {
	if url == "" {
		return nil, errors.New("sessionstore: URL de redis requerida")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("sessionstore: URL de redis: %w", err)
	}
	opts.DialTimeout = 5 * time.Second

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("sessionstore: ping redis: %w", err)
	}
	return NewRedisStoreFromClient(client, prefix), nil
}

// NewRedisStoreFromClient construye el store sobre un cliente existente.
func NewRedisStoreFromClient(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(k string) string { return s.prefix + k }

// Save escribe ambas claves en un MULTI/EXEC.
func (s *RedisStore) Save(ctx context.Context, token string, user *entity.User) error {
	var raw []byte
	if user != nil {
		var err error
		if raw, err = encodeUser(user); err != nil {
			return fmt.Errorf("sessionstore: serializar usuario: %w", err)
		}
	}
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, s.key(keyToken), token, 0)
		if raw == nil {
			p.Del(ctx, s.key(keyUser))
		} else {
			p.Set(ctx, s.key(keyUser), raw, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("sessionstore: guardar sesión: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context) (entity.Session, error) {
	vals, err := s.client.MGet(ctx, s.key(keyToken), s.key(keyUser)).Result()
	if err != nil {
		return entity.Session{}, fmt.Errorf("sessionstore: leer sesión: %w", err)
	}
	var sess entity.Session
	if v, ok := vals[0].(string); ok {
		sess.Token = v
	}
	if v, ok := vals[1].(string); ok {
		sess.User = decodeUser([]byte(v))
	}
	return sess, nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key(keyToken), s.key(keyUser)).Err(); err != nil {
		return fmt.Errorf("sessionstore: borrar sesión: %w", err)
	}
	return nil
}

// Close cierra el cliente Redis.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
