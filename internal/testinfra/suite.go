//go:build integration

package testinfra

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

type TestSuite struct {
	Postgres *PostgresContainer
	Redis    *RedisContainer
	Kafka    *KafkaContainer
}

type SuiteOptions struct {
	WithPostgres bool
	WithRedis    bool
	WithKafka    bool
}

// NewTestSuite starts the requested containers in parallel.
func NewTestSuite(ctx context.Context, opts SuiteOptions) (*TestSuite, error) {
	suite := &TestSuite{}
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	start := func(name string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				mu.Unlock()
			}
		}()
	}

	if opts.WithPostgres {
		start("postgres", func() (err error) {
			suite.Postgres, err = NewPostgres(ctx)
			return err
		})
	}
	if opts.WithRedis {
		start("redis", func() (err error) {
			suite.Redis, err = NewRedis(ctx)
			return err
		})
	}
	if opts.WithKafka {
		start("kafka", func() (err error) {
			suite.Kafka, err = NewKafka(ctx)
			return err
		})
	}

	wg.Wait()

	if len(errs) > 0 {
		suite.Cleanup(ctx)
		return nil, fmt.Errorf("failed to start containers: %w", errors.Join(errs...))
	}
	return suite, nil
}

func (s *TestSuite) Cleanup(ctx context.Context) {
	if s.Kafka != nil {
		s.Kafka.Cleanup(ctx)
	}
	if s.Redis != nil {
		s.Redis.Cleanup(ctx)
	}
	if s.Postgres != nil {
		s.Postgres.Cleanup(ctx)
	}
}
