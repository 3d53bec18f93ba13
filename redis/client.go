package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	jobKeyPrefix = "avasho_job:"
	jobIndexKey  = "avasho_jobs"
)

var ErrJobNotFound = errors.New("job not found")

// Job is a long-speech synthesis submitted to the gateway.
type Job struct {
	Token                   string    `json:"token"`
	Speaker                 string    `json:"speaker"`
	Speed                   int       `json:"speed"`
	TextLength              int       `json:"text_length"`
	EstimatedProcessSeconds int       `json:"estimated_process_seconds"`
	SubmittedAt             time.Time `json:"submitted_at"`
	ReadyAt                 time.Time `json:"ready_at"`
}

// Client keeps long-speech jobs in Redis until their TTL expires.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewClient(ctx context.Context, addr, password string, db int, ttl time.Duration) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	client := &Client{
		rdb: rdb,
		ttl: ttl,
	}

	if err := client.Ping(ctx); err != nil {
		log.Error().Err(err).
			Str("addr", addr).
			Int("db", db).
			Msg("Redis connection failed")
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info().
		Str("addr", addr).
		Int("db", db).
		Dur("job_ttl", ttl).
		Msg("Redis connected successfully")

	return client, nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

func (c *Client) SaveJob(ctx context.Context, job Job) error {
	jobJSON, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	pipe := c.rdb.TxPipeline()
	pipe.Set(ctx, jobKey(job.Token), jobJSON, c.ttl)
	pipe.ZAdd(ctx, jobIndexKey, redis.Z{
		Score:  float64(job.SubmittedAt.Unix()),
		Member: job.Token,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save job %s: %w", job.Token, err)
	}

	return nil
}

func (c *Client) GetJob(ctx context.Context, token string) (*Job, error) {
	jobJSON, err := c.rdb.Get(ctx, jobKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job %s: %w", token, err)
	}

	var job Job
	if err := json.Unmarshal(jobJSON, &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job %s: %w", token, err)
	}

	return &job, nil
}

// ListJobs returns the stored jobs, newest first. Index entries whose job has expired are pruned.
func (c *Client) ListJobs(ctx context.Context) ([]Job, error) {
	tokens, err := c.rdb.ZRevRange(ctx, jobIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	jobs := make([]Job, 0, len(tokens))
	var expired []any
	for _, token := range tokens {
		job, err := c.GetJob(ctx, token)
		if errors.Is(err, ErrJobNotFound) {
			expired = append(expired, token)
			continue
		}
		if err != nil {
			log.Warn().Err(err).Str("job_token", token).Msg("Skipping unreadable job")
			continue
		}
		jobs = append(jobs, *job)
	}

	if len(expired) > 0 {
		if err := c.rdb.ZRem(ctx, jobIndexKey, expired...).Err(); err != nil {
			log.Warn().Err(err).Int("count", len(expired)).Msg("Failed to prune expired jobs from index")
		}
	}

	return jobs, nil
}

// DeleteJob removes a job and its index entry. It returns ErrJobNotFound when the job
// had already expired or never existed; a stale index entry is removed either way.
func (c *Client) DeleteJob(ctx context.Context, token string) error {
	pipe := c.rdb.TxPipeline()
	deleted := pipe.Del(ctx, jobKey(token))
	pipe.ZRem(ctx, jobIndexKey, token)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete job %s: %w", token, err)
	}

	if deleted.Val() == 0 {
		return ErrJobNotFound
	}
	return nil
}

func jobKey(token string) string {
	return jobKeyPrefix + token
}
