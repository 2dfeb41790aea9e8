package container

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	rd "github.com/go-redis/redis/v9"

	"github.com/mohitkumar/onboarding/analytics"
	"github.com/mohitkumar/onboarding/config"
	"github.com/mohitkumar/onboarding/model"
	"github.com/mohitkumar/onboarding/persistence"
	"github.com/mohitkumar/onboarding/persistence/memory"
	"github.com/mohitkumar/onboarding/persistence/redis"
	"github.com/mohitkumar/onboarding/persistence/sqldb"
	"github.com/mohitkumar/onboarding/util"
)

const memoryCleanupInterval = time.Minute

// DIContiner builds and owns the storage backends selected by config.
type DIContiner struct {
	initialized       bool
	questionSetDao    persistence.QuestionSetDao
	flowDao           persistence.FlowDao
	submissionDao     persistence.SubmissionDao
	collector         analytics.FlowDataCollector
	FlowContextEncDec util.EncoderDecoder[model.FlowContext]
	redisClient       rd.UniversalClient
	db                *sql.DB
}

func (d *DIContiner) setInitialized() {
	d.initialized = true
}

func NewDiContainer() *DIContiner {
	return &DIContiner{
		initialized: false,
	}
}

func (d *DIContiner) Init(ctx context.Context, conf config.Config) error {
	d.FlowContextEncDec = util.NewJsonEncoderDecoder[model.FlowContext]()

	switch conf.StorageType {
	case config.STORAGE_TYPE_REDIS:
		rdConf := redis.Config{
			Addrs:        conf.RedisConfig.Addrs,
			Namespace:    conf.RedisConfig.Namespace,
			Password:     conf.RedisConfig.Password,
			PoolSize:     conf.RedisConfig.PoolSize,
			ConnectRetry: conf.RedisConfig.ConnectRetry,
		}
		d.redisClient = redis.NewClient(rdConf)
		if err := redis.WaitForRedis(ctx, d.redisClient, rdConf); err != nil {
			return err
		}
		d.flowDao = redis.NewRedisFlowDao(d.redisClient, rdConf, d.FlowContextEncDec)
		d.questionSetDao = redis.NewRedisQuestionSetDao(d.redisClient, rdConf)
		d.submissionDao = redis.NewRedisSubmissionDao(d.redisClient, rdConf)
	case config.STORAGE_TYPE_INMEM:
		d.flowDao = memory.NewFlowStore(memoryCleanupInterval)
		d.questionSetDao = memory.NewQuestionSetStore()
		d.submissionDao = memory.NewSubmissionStore()
	default:
		return fmt.Errorf("unknown storage type %q", conf.StorageType)
	}

	// submissions stay with the flow storage unless a database is configured
	switch conf.SubmissionStoreType {
	case config.SUBMISSION_STORE_SQLITE, config.SUBMISSION_STORE_POSTGRES:
		driver := sqldb.DRIVER_SQLITE
		if conf.SubmissionStoreType == config.SUBMISSION_STORE_POSTGRES {
			driver = sqldb.DRIVER_POSTGRES
		}
		db, err := sqldb.Open(driver, conf.DatabaseURL)
		if err != nil {
			return err
		}
		d.db = db
		d.submissionDao = sqldb.NewSubmissionDao(db, driver)
	}

	collector, err := analytics.NewDataCollector(conf.AnalyticsConfig)
	if err != nil {
		return err
	}
	d.collector = collector
	d.setInitialized()
	return nil
}

// Ping checks every network backend in use.
func (d *DIContiner) Ping(ctx context.Context) error {
	if d.redisClient != nil {
		if err := d.redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	if d.db != nil {
		if err := d.db.PingContext(ctx); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	}
	return nil
}

func (d *DIContiner) Close() error {
	var errs []error
	if d.collector != nil {
		errs = append(errs, d.collector.Close())
	}
	if d.db != nil {
		errs = append(errs, d.db.Close())
	}
	if d.redisClient != nil {
		errs = append(errs, d.redisClient.Close())
	}
	return errors.Join(errs...)
}

func (d *DIContiner) GetQuestionSetDao() persistence.QuestionSetDao {
	d.mustBeInitialized()
	return d.questionSetDao
}

func (d *DIContiner) GetFlowDao() persistence.FlowDao {
	d.mustBeInitialized()
	return d.flowDao
}

func (d *DIContiner) GetSubmissionDao() persistence.SubmissionDao {
	d.mustBeInitialized()
	return d.submissionDao
}

func (d *DIContiner) GetDataCollector() analytics.FlowDataCollector {
	d.mustBeInitialized()
	return d.collector
}

func (d *DIContiner) mustBeInitialized() {
	if !d.initialized {
		panic("persistence not initalized")
	}
}
