package repository

import (
	"context"
	"testing"
	"time"

	"github.com/HanielHB/multienda-multicaja-sub000/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func sesionCompleta() model.Sesion {
	return model.Sesion{
		Token:        "tok-123",
		Usuario:      &model.UsuarioSesion{ID: "9", Nombres: "Lucía Pérez", Tipo: model.RolSupervisor},
		CajaActiva:   "3",
		SesionCajaID: "77",
	}
}

// storeContract runs the same behavior checks against every implementation.
func storeContract(t *testing.T, store SessionStore) {
	ctx := context.Background()

	t.Run("missing record reads empty", func(t *testing.T) {
		s, err := store.Get(ctx, "nope")
		require.NoError(t, err)
		assert.False(t, s.Autenticada())
		assert.Nil(t, s.Usuario)
	})

	t.Run("round trip", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "a", sesionCompleta(), time.Hour))
		s, err := store.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, sesionCompleta(), s)
	})

	t.Run("user without token is dropped", func(t *testing.T) {
		s := sesionCompleta()
		s.Token = ""
		require.NoError(t, store.Set(ctx, "b", s, time.Hour))
		got, err := store.Get(ctx, "b")
		require.NoError(t, err)
		assert.Nil(t, got.Usuario)
		assert.Equal(t, "3", got.CajaActiva)
	})

	t.Run("register markers", func(t *testing.T) {
		s := sesionCompleta()
		s.CajaActiva, s.SesionCajaID = "", ""
		require.NoError(t, store.Set(ctx, "c", s, time.Hour))

		require.NoError(t, store.SetCajaActiva(ctx, "c", "5", "501"))
		got, _ := store.Get(ctx, "c")
		assert.Equal(t, "5", got.CajaActiva)
		assert.Equal(t, "501", got.SesionCajaID)
		assert.Equal(t, "tok-123", got.Token)

		require.NoError(t, store.SetCajaActiva(ctx, "c", "6", ""))
		got, _ = store.Get(ctx, "c")
		assert.Equal(t, "6", got.CajaActiva)
		assert.Empty(t, got.SesionCajaID)

		require.NoError(t, store.ClearCajaActiva(ctx, "c"))
		got, _ = store.Get(ctx, "c")
		assert.False(t, got.CajaAbierta())
		assert.True(t, got.Autenticada())
	})

	t.Run("register markers need a live record", func(t *testing.T) {
		assert.ErrorIs(t, store.SetCajaActiva(ctx, "gone", "5", "501"), ErrSesionNoEncontrada)
		got, err := store.Get(ctx, "gone")
		require.NoError(t, err)
		assert.Equal(t, model.Sesion{}, got)
	})

	t.Run("clear removes every field", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "d", sesionCompleta(), time.Hour))
		require.NoError(t, store.Clear(ctx, "d"))
		got, err := store.Get(ctx, "d")
		require.NoError(t, err)
		assert.Equal(t, model.Sesion{}, got)
	})
}

func TestMemorySessionStore(t *testing.T) {
	storeContract(t, NewMemorySessionStore())
}

func TestRedisSessionStore(t *testing.T) {
	_, rdb := newMiniredis(t)
	storeContract(t, NewRedisSessionStore(rdb))
}

func TestRedisSessionStore_UsesHashFieldsAndTTL(t *testing.T) {
	mr, rdb := newMiniredis(t)
	store := NewRedisSessionStore(rdb)
	require.NoError(t, store.Set(context.Background(), "x", sesionCompleta(), 2*time.Hour))

	assert.Equal(t, "tok-123", mr.HGet("sesion:x", "token"))
	assert.Equal(t, "3", mr.HGet("sesion:x", "cajaActiva"))
	assert.Equal(t, "77", mr.HGet("sesion:x", "sesionCajaId"))
	assert.JSONEq(t, `{"id":"9","nombres":"Lucía Pérez","tipo":"supervisor"}`, mr.HGet("sesion:x", "user"))
	assert.Equal(t, 2*time.Hour, mr.TTL("sesion:x"))

	mr.FastForward(3 * time.Hour)
	got, err := store.Get(context.Background(), "x")
	require.NoError(t, err)
	assert.False(t, got.Autenticada())
}

func TestRedisSessionStore_SetCajaActivaOnExpiredRecord(t *testing.T) {
	mr, rdb := newMiniredis(t)
	store := NewRedisSessionStore(rdb)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "x", sesionCompleta(), time.Hour))
	mr.FastForward(2 * time.Hour)

	assert.ErrorIs(t, store.SetCajaActiva(ctx, "x", "5", "501"), ErrSesionNoEncontrada)
	assert.False(t, mr.Exists("sesion:x"), "no TTL-less hash left behind")

	require.NoError(t, store.Set(ctx, "y", sesionCompleta(), time.Hour))
	require.NoError(t, store.SetCajaActiva(ctx, "y", "5", "501"))
	assert.Equal(t, time.Hour, mr.TTL("sesion:y"))
}

func TestRedisSessionStore_CorruptUserReadsAsNoUser(t *testing.T) {
	mr, rdb := newMiniredis(t)
	mr.HSet("sesion:y", "token", "t", "user", "{not json")
	got, err := NewRedisSessionStore(rdb).Get(context.Background(), "y")
	require.NoError(t, err)
	assert.True(t, got.Autenticada())
	assert.Nil(t, got.Usuario)
}

func TestMemorySessionStore_Expires(t *testing.T) {
	store := NewMemorySessionStore().(*memorySessionStore)
	ahora := time.Now()
	store.now = func() time.Time { return ahora }
	require.NoError(t, store.Set(context.Background(), "e", sesionCompleta(), time.Minute))

	ahora = ahora.Add(2 * time.Minute)
	got, err := store.Get(context.Background(), "e")
	require.NoError(t, err)
	assert.False(t, got.Autenticada())
}

func TestCarritoRepositories(t *testing.T) {
	_, rdb := newMiniredis(t)
	repos := map[string]CarritoRepository{
		"memory": NewMemoryCarritoRepository(),
		"redis":  NewRedisCarritoRepository(rdb, time.Hour),
	}
	for name, repo := range repos {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			c, err := repo.Get(ctx, "s1")
			require.NoError(t, err)
			assert.Empty(t, c.Lineas)

			c.Lineas = append(c.Lineas, model.LineaCarrito{ID: "4", Nombre: "Botín", PrecioUnitario: decimal.RequireFromString("59.90"), Cantidad: 2})
			require.NoError(t, repo.Save(ctx, "s1", c))

			got, err := repo.Get(ctx, "s1")
			require.NoError(t, err)
			require.Len(t, got.Lineas, 1)
			assert.Equal(t, 2, got.Lineas[0].Cantidad)
			assert.True(t, got.Lineas[0].PrecioUnitario.Equal(decimal.RequireFromString("59.90")))

			require.NoError(t, repo.Delete(ctx, "s1"))
			got, err = repo.Get(ctx, "s1")
			require.NoError(t, err)
			assert.Empty(t, got.Lineas)
		})
	}
}
