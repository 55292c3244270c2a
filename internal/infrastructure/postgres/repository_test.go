package postgres_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ubicacion-qr/internal/domain/entity"
	"github.com/jhoicas/ubicacion-qr/internal/domain/repository"
	"github.com/jhoicas/ubicacion-qr/internal/infrastructure/postgres"
	"github.com/jhoicas/ubicacion-qr/pkg/config"
)

// Requiere una base desechable: TEST_DATABASE_URL=postgres://... go test ./internal/infrastructure/postgres/
func newTestDB(t *testing.T) (*pgxpool.Pool, *postgres.TxRunner) {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(ctx, pool))
	require.NoError(t, postgres.Migrate(ctx, pool), "las migraciones son idempotentes")

	_, err = pool.Exec(ctx, `DELETE FROM record_batches; DELETE FROM settings`)
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM record_batches; DELETE FROM settings`)
	})
	return pool, postgres.NewTxRunner(pool)
}

func batch(id string, products ...string) *entity.Batch {
	b := &entity.Batch{ID: id, FileName: id + ".xlsx", Skipped: 1, UploadedAt: time.Now().UTC().Truncate(time.Millisecond)}
	for i, p := range products {
		b.Records = append(b.Records, entity.Record{
			RowNumber:         i + 1,
			ProductID:         p,
			RemainingQuantity: decimal.RequireFromString("2.5"),
			LocationCode:      "AB53004",
		})
	}
	return b
}

func TestRecordRepo_ReplaceAllYCurrent(t *testing.T) {
	_, runner := newTestDB(t)
	ctx := context.Background()

	var current *entity.Batch
	read := func() {
		err := runner.Run(ctx, func(repo repository.RecordRepository) error {
			var err error
			current, err = repo.Current(ctx)
			return err
		})
		require.NoError(t, err)
	}

	read()
	assert.Nil(t, current, "sin cargas no hay lote vigente")

	for _, b := range []*entity.Batch{batch("uno", "A1", "A2"), batch("dos", "B1")} {
		b := b
		require.NoError(t, runner.Run(ctx, func(repo repository.RecordRepository) error {
			return repo.ReplaceAll(ctx, b)
		}))
	}

	read()
	require.NotNil(t, current)
	assert.Equal(t, "dos", current.ID)
	assert.Equal(t, 1, current.Skipped)
	require.Len(t, current.Records, 1)
	assert.Equal(t, "B1", current.Records[0].ProductID)
	assert.True(t, decimal.RequireFromString("2.5").Equal(current.Records[0].RemainingQuantity))
}

func TestRecordRepo_ReplaceAllFallidoConservaAnterior(t *testing.T) {
	_, runner := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, runner.Run(ctx, func(repo repository.RecordRepository) error {
		return repo.ReplaceAll(ctx, batch("bueno", "A1"))
	}))

	// product_id vacío viola el CHECK: la transacción entera se revierte.
	err := runner.Run(ctx, func(repo repository.RecordRepository) error {
		return repo.ReplaceAll(ctx, batch("malo", ""))
	})
	require.Error(t, err)

	var current *entity.Batch
	require.NoError(t, runner.Run(ctx, func(repo repository.RecordRepository) error {
		current, err = repo.Current(ctx)
		return err
	}))
	require.NotNil(t, current)
	assert.Equal(t, "bueno", current.ID)
}

func TestRecordRepo_CurrentDuranteReemplazo(t *testing.T) {
	pool, runner := newTestDB(t)
	ctx := context.Background()
	reader := postgres.NewRecordRepository(pool)

	require.NoError(t, runner.Run(ctx, func(repo repository.RecordRepository) error {
		return repo.ReplaceAll(ctx, batch("lote-0", "lote-0-a", "lote-0-b"))
	}))

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(done)
		for i := 1; i <= 50; i++ {
			id := fmt.Sprintf("lote-%d", i)
			err := runner.Run(ctx, func(repo repository.RecordRepository) error {
				return repo.ReplaceAll(ctx, batch(id, id+"-a", id+"-b"))
			})
			assert.NoError(t, err)
		}
	}()

	for reads := 0; ; reads++ {
		select {
		case <-done:
			wg.Wait()
			return
		default:
		}
		cur, err := reader.Current(ctx)
		require.NoError(t, err)
		require.NotNil(t, cur, "lectura %d sin lote vigente", reads)
		require.Len(t, cur.Records, 2, "lectura %d del lote %s", reads, cur.ID)
		assert.Equal(t, cur.ID+"-a", cur.Records[0].ProductID)
	}
}

func TestSettingRepo(t *testing.T) {
	pool, _ := newTestDB(t)
	ctx := context.Background()
	repo := postgres.NewSettingRepository(pool)

	_, ok, err := repo.Get(ctx, entity.SettingFallbackLocation)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Set(ctx, entity.SettingFallbackLocation, "A-B-53-004"))
	require.NoError(t, repo.Set(ctx, entity.SettingFallbackLocation, "C-D-01-002"))

	v, ok, err := repo.Get(ctx, entity.SettingFallbackLocation)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "C-D-01-002", v)
}
