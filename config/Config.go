package config

import (
	"fmt"
	"time"

	"github.com/mohitkumar/onboarding/analytics"
)

type StorageType string

const STORAGE_TYPE_REDIS StorageType = "redis"
const STORAGE_TYPE_INMEM StorageType = "memory"

type SubmissionStoreType string

const SUBMISSION_STORE_INMEM SubmissionStoreType = "memory"
const SUBMISSION_STORE_SQLITE SubmissionStoreType = "sqlite"
const SUBMISSION_STORE_POSTGRES SubmissionStoreType = "postgres"

type Config struct {
	RedisConfig         RedisStorageConfig
	HttpPort            int
	StorageType         StorageType
	SubmissionStoreType SubmissionStoreType
	DatabaseURL         string
	QuestionSetDir      string
	FlowTTL             time.Duration
	LogLevel            string
	WorkerCapacity      int
	AnalyticsConfig     analytics.DataCollectorConfig
}

type RedisStorageConfig struct {
	Addrs        []string
	Namespace    string
	Password     string
	PoolSize     int
	ConnectRetry time.Duration
}

func (c Config) Validate() error {
	switch c.StorageType {
	case STORAGE_TYPE_REDIS:
		if len(c.RedisConfig.Addrs) == 0 {
			return fmt.Errorf("redis storage needs at least one address")
		}
	case STORAGE_TYPE_INMEM:
	default:
		return fmt.Errorf("unknown storage type %q", c.StorageType)
	}
	switch c.SubmissionStoreType {
	case SUBMISSION_STORE_SQLITE, SUBMISSION_STORE_POSTGRES:
		if c.DatabaseURL == "" {
			return fmt.Errorf("%s submission store needs a database url", c.SubmissionStoreType)
		}
	case SUBMISSION_STORE_INMEM:
	default:
		return fmt.Errorf("unknown submission store %q", c.SubmissionStoreType)
	}
	if c.HttpPort <= 0 {
		return fmt.Errorf("invalid http port %d", c.HttpPort)
	}
	if c.FlowTTL < 0 {
		return fmt.Errorf("flow ttl must not be negative")
	}
	return nil
}
