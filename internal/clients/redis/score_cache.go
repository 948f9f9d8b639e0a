package redis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/okulpusula/pusula-backend/internal/pkg/ctxutil"
	"github.com/okulpusula/pusula-backend/internal/pkg/envutil"
	"github.com/okulpusula/pusula-backend/internal/pkg/logger"
)

// ScoreCache is a read-through cache for computed unified score sets. Values
// are opaque JSON payloads so the cache stays decoupled from service types.
// Every profile merge invalidates the student's entry.
type ScoreCache interface {
	Get(ctx context.Context, studentID uuid.UUID) ([]byte, bool)
	Set(ctx context.Context, studentID uuid.UUID, payload []byte)
	Invalidate(ctx context.Context, studentID uuid.UUID)
	Close() error
}

type scoreCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewScoreCache(log *logger.Logger) (ScoreCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	ttl := time.Duration(envutil.Int("SCORE_CACHE_TTL_SECONDS", 300)) * time.Second

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    os.Getenv("REDIS_PASSWORD"),
		DB:          envutil.Int("REDIS_DB", 0),
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &scoreCache{
		log: log.With("client", "ScoreCache"),
		rdb: rdb,
		ttl: ttl,
	}, nil
}

func scoreKey(studentID uuid.UUID) string {
	return "pusula:scores:" + studentID.String()
}

// Get is best-effort: any redis error is treated as a miss.
func (c *scoreCache) Get(ctx context.Context, studentID uuid.UUID) ([]byte, bool) {
	ctx = ctxutil.Default(ctx)
	raw, err := c.rdb.Get(ctx, scoreKey(studentID)).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			c.log.Warn("Score cache read failed", "student_id", studentID.String(), "error", err.Error())
		}
		return nil, false
	}
	return raw, true
}

func (c *scoreCache) Set(ctx context.Context, studentID uuid.UUID, payload []byte) {
	if len(payload) == 0 {
		return
	}
	if err := c.rdb.Set(ctxutil.Default(ctx), scoreKey(studentID), payload, c.ttl).Err(); err != nil {
		c.log.Warn("Score cache write failed", "student_id", studentID.String(), "error", err.Error())
	}
}

func (c *scoreCache) Invalidate(ctx context.Context, studentID uuid.UUID) {
	if err := c.rdb.Del(ctxutil.Default(ctx), scoreKey(studentID)).Err(); err != nil {
		c.log.Warn("Score cache invalidation failed", "student_id", studentID.String(), "error", err.Error())
	}
}

func (c *scoreCache) Close() error {
	return c.rdb.Close()
}
