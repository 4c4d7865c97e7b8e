package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/HanielHB/multienda-multicaja-sub000/internal/model"

	"github.com/redis/go-redis/v9"
)

const carritoKeyPrefix = "carrito:"

// CarritoRepository keeps the point-of-sale cart of each session.
// A missing cart reads as an empty one.
type CarritoRepository interface {
	Get(ctx context.Context, sesionID string) (model.Carrito, error)
	Save(ctx context.Context, sesionID string, c model.Carrito) error
	Delete(ctx context.Context, sesionID string) error
}

type redisCarritoRepo struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCarritoRepository(rdb *redis.Client, ttl time.Duration) CarritoRepository {
	return &redisCarritoRepo{rdb: rdb, ttl: ttl}
}

func (r *redisCarritoRepo) Get(ctx context.Context, sesionID string) (model.Carrito, error) {
	raw, err := r.rdb.Get(ctx, carritoKeyPrefix+sesionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.Carrito{}, nil
	}
	if err != nil {
		return model.Carrito{}, err
	}
	var c model.Carrito
	if err := json.Unmarshal(raw, &c); err != nil {
		return model.Carrito{}, err
	}
	return c, nil
}

func (r *redisCarritoRepo) Save(ctx context.Context, sesionID string, c model.Carrito) error {
	if len(c.Lineas) == 0 {
		return r.Delete(ctx, sesionID)
	}
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, carritoKeyPrefix+sesionID, data, r.ttl).Err()
}

func (r *redisCarritoRepo) Delete(ctx context.Context, sesionID string) error {
	return r.rdb.Del(ctx, carritoKeyPrefix+sesionID).Err()
}

type memoryCarritoRepo struct {
	mu       sync.Mutex
	carritos map[string]model.Carrito
}

func NewMemoryCarritoRepository() CarritoRepository {
	return &memoryCarritoRepo{carritos: make(map[string]model.Carrito)}
}

func (m *memoryCarritoRepo) Get(_ context.Context, sesionID string) (model.Carrito, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.carritos[sesionID]
	// copy so callers never alias the stored slice
	c.Lineas = append([]model.LineaCarrito(nil), c.Lineas...)
	return c, nil
}

func (m *memoryCarritoRepo) Save(_ context.Context, sesionID string, c model.Carrito) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(c.Lineas) == 0 {
		delete(m.carritos, sesionID)
		return nil
	}
	m.carritos[sesionID] = model.Carrito{Lineas: append([]model.LineaCarrito(nil), c.Lineas...)}
	return nil
}

func (m *memoryCarritoRepo) Delete(_ context.Context, sesionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carritos, sesionID)
	return nil
}
