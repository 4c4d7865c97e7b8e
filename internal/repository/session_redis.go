package repository

import (
	"context"
	"errors"
	"time"

	"github.com/HanielHB/multienda-multicaja-sub000/internal/model"

	"github.com/redis/go-redis/v9"
)

const sesionKeyPrefix = "sesion:"

type redisSessionStore struct{ rdb *redis.Client }

// NewRedisSessionStore stores each session as a hash "sesion:<id>" with one
// field per key and the session lifetime as the hash TTL.
func NewRedisSessionStore(rdb *redis.Client) SessionStore {
	return &redisSessionStore{rdb: rdb}
}

func sesionKey(id string) string { return sesionKeyPrefix + id }

func (r *redisSessionStore) Get(ctx context.Context, id string) (model.Sesion, error) {
	campos, err := r.rdb.HGetAll(ctx, sesionKey(id)).Result()
	if err != nil {
		return model.Sesion{}, err
	}
	return decodeSesion(campos), nil
}

func (r *redisSessionStore) Set(ctx context.Context, id string, s model.Sesion, ttl time.Duration) error {
	campos, err := encodeSesion(s)
	if err != nil {
		return err
	}
	key := sesionKey(id)
	_, err = r.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, key)
		if len(campos) > 0 {
			p.HSet(ctx, key, campos)
			if ttl > 0 {
				p.Expire(ctx, key, ttl)
			}
		}
		return nil
	})
	return err
}

// SetCajaActiva writes under WATCH so an expiry between the existence check
// and the write aborts instead of leaving a hash without TTL.
func (r *redisSessionStore) SetCajaActiva(ctx context.Context, id, cajaID, sesionCajaID string) error {
	key := sesionKey(id)
	return r.rdb.Watch(ctx, func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrSesionNoEncontrada
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.HSet(ctx, key, campoCajaActiva, cajaID)
			if sesionCajaID != "" {
				p.HSet(ctx, key, campoSesionCajaID, sesionCajaID)
			} else {
				p.HDel(ctx, key, campoSesionCajaID)
			}
			return nil
		})
		if errors.Is(err, redis.TxFailedErr) {
			return ErrSesionNoEncontrada
		}
		return err
	}, key)
}

func (r *redisSessionStore) ClearCajaActiva(ctx context.Context, id string) error {
	return r.rdb.HDel(ctx, sesionKey(id), campoCajaActiva, campoSesionCajaID).Err()
}

func (r *redisSessionStore) Clear(ctx context.Context, id string) error {
	return r.rdb.Del(ctx, sesionKey(id)).Err()
}
