package rdb

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/soyart/gsl/concurrent"

	"github.com/soyart/vesting-enricher/entity"
)

// RedisWrapper persists enriched vesting rows as a secondary output sink.
type RedisWrapper interface {
	SaveRows(context.Context, []entity.OutputRow) error

	SetFailedCount(context.Context, int) error
	GetFailedCount(context.Context) (int, error)
}

type redisWrapper struct {
	db    *redis.Client
	label string
}

func New(redisUrl, label string) (RedisWrapper, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisUrl,
	})

	if rdb == nil {
		return nil, errors.New("got nil redis client")
	}

	return &redisWrapper{db: rdb, label: label}, nil
}

func rowsKey(label string) string {
	return "vestingenricher:" + label + ":rows"
}

func failedCountKey(label string) string {
	return "vestingenricher:" + label + ":failedCount"
}

// SaveRows stores each row as JSON under a label-scoped hash, keyed by the
// row's original vestingId text.
func (rdw *redisWrapper) SaveRows(ctx context.Context, rows []entity.OutputRow) error {
	var wg sync.WaitGroup
	wg.Add(len(rows))
	errChan := make(chan error)

	key := rowsKey(rdw.label)
	for i := range rows {
		go func(row entity.OutputRow) {
			defer wg.Done()

			rowJson, err := json.Marshal(row)
			if err != nil {
				errChan <- errors.Wrap(err, "failed to marshal row to json")
			}

			if err := rdw.db.HSet(ctx, key, row.VestingID, rowJson).Err(); err != nil {
				errChan <- errors.Wrapf(err, "failed to save row %s", row.VestingID)
			}
		}(rows[i])
	}

	return concurrent.WaitAndCollectErrors(&wg, errChan)
}

func (rdw *redisWrapper) SetFailedCount(ctx context.Context, count int) error {
	countString := strconv.Itoa(count)
	if err := rdw.db.Set(ctx, failedCountKey(rdw.label), countString, 0).Err(); err != nil {
		return errors.Wrapf(err, "failed to set failedCount %d", count)
	}

	return nil
}

func (rdw *redisWrapper) GetFailedCount(ctx context.Context) (int, error) {
	countString, err := rdw.db.Get(ctx, failedCountKey(rdw.label)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, errors.Wrap(err, "failed to get failedCount")
	}

	count, err := strconv.Atoi(countString)
	if err != nil {
		return 0, errors.Wrap(err, "failed to parse redis string to failed count")
	}

	return count, nil
}
