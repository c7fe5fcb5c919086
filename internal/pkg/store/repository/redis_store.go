package repository

import (
	"context"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"cashflow-router/internal/pkg/consts"
	"cashflow-router/internal/pkg/store/models"
)

// RedisLedgerAdapter is the low-level hash adapter for the capacity ledger.
// Each NBFC owns two hashes, availableCashFlow:<id> and loanBookedToday:<id>,
// with fields O, N and T. All multi-field writes go through MULTI/EXEC so a
// concurrent reader never observes a half-applied adjustment.
type RedisLedgerAdapter struct {
	client *goredis.Client
}

func NewRedisLedgerAdapter(client *goredis.Client) *RedisLedgerAdapter {
	return &RedisLedgerAdapter{client: client}
}

// GetSnapshot reads one hash. A missing key decodes as a zero snapshot, which
// is the correct read for an NBFC whose capacity has not been computed yet.
func (a *RedisLedgerAdapter) GetSnapshot(ctx context.Context, key string) (models.CapacitySnapshot, error) {
	var snapshot models.CapacitySnapshot

	fields, err := a.client.HGetAll(ctx, key).Result()
	if err != nil {
		return snapshot, err
	}

	snapshot.Old, err = parseField(fields, models.FieldOld)
	if err != nil {
		return snapshot, err
	}
	snapshot.New, err = parseField(fields, models.FieldNew)
	if err != nil {
		return snapshot, err
	}
	snapshot.Total, err = parseField(fields, models.FieldTotal)
	if err != nil {
		return snapshot, err
	}

	return snapshot, nil
}

// Adjust moves amount on the segment field and the total field of key in one
// transaction. A negative amount releases capacity.
func (a *RedisLedgerAdapter) Adjust(ctx context.Context, key string, segment consts.Segment, amount float64) error {
	field := models.SegmentField(segment)

	_, err := a.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.HIncrByFloat(ctx, key, field, amount)
		pipe.HIncrByFloat(ctx, key, models.FieldTotal, amount)
		return nil
	})
	return err
}

// ReplaceSnapshot overwrites the whole hash and refreshes its TTL. The
// recompute job calls this, so any drift accumulated through crashes between
// a durable write and its ledger adjustment heals within one cycle.
func (a *RedisLedgerAdapter) ReplaceSnapshot(ctx context.Context, key string, snapshot models.CapacitySnapshot, ttl time.Duration) error {
	_, err := a.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.HSet(ctx, key,
			models.FieldOld, formatAmount(snapshot.Old),
			models.FieldNew, formatAmount(snapshot.New),
			models.FieldTotal, formatAmount(snapshot.Total),
		)
		if ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		return nil
	})
	return err
}

func (a *RedisLedgerAdapter) DeleteSnapshot(ctx context.Context, key string) error {
	return a.client.Del(ctx, key).Err()
}

func parseField(fields map[string]string, field string) (float64, error) {
	raw, ok := fields[field]
	if !ok || raw == "" {
		return 0, nil
	}
	return strconv.ParseFloat(raw, 64)
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
