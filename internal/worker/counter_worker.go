package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/examly/examly-backend/internal/config"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	CounterBatchSize    = 50
	CounterBatchTimeout = 2 * time.Second
	CounterPollTimeout  = 1 * time.Second
)

// CounterWorker drains the submission-count queue and applies the increments
// to the exams table in batches. Counting goes through the queue rather than
// inline with submit so a slow UPDATE never sits in the student's request
// path.
type CounterWorker struct {
	pool *pgxpool.Pool
	rdb  *redis.Client
	log  zerolog.Logger
}

func NewCounterWorker(pool *pgxpool.Pool, rdb *redis.Client, log zerolog.Logger) *CounterWorker {
	return &CounterWorker{
		pool: pool,
		rdb:  rdb,
		log:  log.With().Str("component", "counter_worker").Logger(),
	}
}

type countPayload struct {
	ExamID string `json:"exam_id"`
}

// ----------------------------------------------------------------
// Worker loop with batching
// ----------------------------------------------------------------

func (w *CounterWorker) Start(ctx context.Context) {
	w.log.Info().Msg("CounterWorker started")

	batch := make([]*countPayload, 0, CounterBatchSize)
	lastFlush := time.Now()

	for {
		// Should flush?
		if len(batch) > 0 &&
			(len(batch) >= CounterBatchSize || time.Since(lastFlush) >= CounterBatchTimeout) {

			w.flushSafe(ctx, batch)
			batch = batch[:0]
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. Flushing remaining batch...")
			w.flushSafe(context.Background(), batch)
			return

		default:
			item, err := w.rdb.BLPop(ctx, CounterPollTimeout, config.WorkerKey.SubmissionCountQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var p countPayload
			if err := json.Unmarshal([]byte(item[1]), &p); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}

			batch = append(batch, &p)
		}
	}
}

// ----------------------------------------------------------------
// Batch update wrapper
// ----------------------------------------------------------------

func (w *CounterWorker) flushSafe(ctx context.Context, batch []*countPayload) {
	if len(batch) == 0 {
		return
	}

	if err := w.bulkIncrementCounts(ctx, batch); err != nil {
		w.log.Warn().Err(err).Msg("bulk count update failed, using fallback")

		for _, p := range batch {
			if err := w.incrementSingle(ctx, p); err != nil {
				w.log.Error().Err(err).Msg("incrementSingle failed — requeueing")
				raw, _ := json.Marshal(p)
				w.rdb.RPush(ctx, config.WorkerKey.SubmissionCountQueue, raw)
			}
		}
	}
}

// ----------------------------------------------------------------
// BULK PostgreSQL UPDATE using UNNEST + alias
// ----------------------------------------------------------------

func (w *CounterWorker) bulkIncrementCounts(ctx context.Context, batch []*countPayload) error {
	// Collapse the batch so each exam gets a single UPDATE row.
	counts := make(map[uuid.UUID]int, len(batch))
	for _, p := range batch {
		eID, err := uuid.Parse(p.ExamID)
		if err != nil {
			return err
		}
		counts[eID]++
	}

	examIDs := make([]uuid.UUID, 0, len(counts))
	increments := make([]int, 0, len(counts))
	for eID, n := range counts {
		examIDs = append(examIDs, eID)
		increments = append(increments, n)
	}

	query := `
		UPDATE exams AS e
		SET submissions = e.submissions + t.increment,
		    updated_at = NOW()
		FROM (
			SELECT
				u.exam_id,
				u.increment
			FROM UNNEST(
				$1::uuid[],
				$2::int[]
			) AS u (exam_id, increment)
		) AS t
		WHERE e.id = t.exam_id
	`

	_, err := w.pool.Exec(ctx, query, examIDs, increments)
	return err
}

// ----------------------------------------------------------------
// FALLBACK single update
// ----------------------------------------------------------------

func (w *CounterWorker) incrementSingle(ctx context.Context, p *countPayload) error {
	eID, err := uuid.Parse(p.ExamID)
	if err != nil {
		return err
	}

	_, err = w.pool.Exec(ctx,
		`UPDATE exams
		 SET submissions = submissions + 1,
		     updated_at = NOW()
		 WHERE id = $1`,
		eID,
	)

	return err
}
