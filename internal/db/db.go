package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"
)

const maxPingRetries = 4

// Open connects to the Postgres database at dbURL, retrying the initial ping with
// exponential backoff until it succeeds, retries run out, or ctx is done.
func Open(ctx context.Context, dbURL string) (*sql.DB, error) {
	conn, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, err
	}
	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(10)
	conn.SetConnMaxLifetime(30 * time.Minute)

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 200 * time.Millisecond
	policy.MaxElapsedTime = 10 * time.Second

	ping := func() error { return conn.PingContext(ctx) }
	notify := func(err error, wait time.Duration) {
		log.WithError(err).WithField("retry_in", wait).Warn("Database not reachable yet")
	}

	b := backoff.WithContext(backoff.WithMaxRetries(policy, maxPingRetries), ctx)
	if err := backoff.RetryNotify(ping, b, notify); err != nil {
		conn.Close()
		return nil, fmt.Errorf("could not reach database: %w", err)
	}
	return conn, nil
}
