package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	rd "github.com/go-redis/redis/v9"
	"go.uber.org/zap"

	"github.com/mohitkumar/onboarding/logger"
)

type baseDao struct {
	redisClient rd.UniversalClient
	namespace   string
}

func newBaseDao(client rd.UniversalClient, conf Config) *baseDao {
	return &baseDao{
		redisClient: client,
		namespace:   conf.Namespace,
	}
}

func NewClient(conf Config) rd.UniversalClient {
	return rd.NewUniversalClient(&rd.UniversalOptions{
		Addrs:    conf.Addrs,
		Password: conf.Password,
		PoolSize: conf.PoolSize,
	})
}

// WaitForRedis pings until redis answers or conf.ConnectRetry has elapsed.
// A zero ConnectRetry pings once.
func WaitForRedis(ctx context.Context, client rd.UniversalClient, conf Config) error {
	if conf.ConnectRetry <= 0 {
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis %v unreachable: %w", conf.Addrs, err)
		}
		return nil
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxElapsedTime = conf.ConnectRetry
	ping := func() error {
		return client.Ping(ctx).Err()
	}
	notify := func(err error, wait time.Duration) {
		logger.Warn("redis not ready, retrying", zap.Strings("addrs", conf.Addrs), zap.Duration("wait", wait), zap.Error(err))
	}
	if err := backoff.RetryNotify(ping, backoff.WithContext(b, ctx), notify); err != nil {
		return fmt.Errorf("redis %v unreachable: %w", conf.Addrs, err)
	}
	return nil
}

func (bs *baseDao) getNamespaceKey(args ...string) string {
	return fmt.Sprintf("%s:%s", bs.namespace, strings.Join(args, ":"))
}
