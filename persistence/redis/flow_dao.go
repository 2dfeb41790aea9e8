package redis

import (
	"context"
	"errors"
	"time"

	rd "github.com/go-redis/redis/v9"
	"go.uber.org/zap"

	"github.com/mohitkumar/onboarding/logger"
	"github.com/mohitkumar/onboarding/model"
	"github.com/mohitkumar/onboarding/persistence"
	"github.com/mohitkumar/onboarding/util"
)

var _ persistence.FlowDao = new(redisFlowDao)

type redisFlowDao struct {
	baseDao
	encoderDecoder util.EncoderDecoder[model.FlowContext]
}

func NewRedisFlowDao(client rd.UniversalClient, conf Config, encoderDecoder util.EncoderDecoder[model.FlowContext]) *redisFlowDao {
	return &redisFlowDao{
		baseDao:        *newBaseDao(client, conf),
		encoderDecoder: encoderDecoder,
	}
}

func (rf *redisFlowDao) SaveFlowContext(ctx context.Context, flowCtx *model.FlowContext, ttl time.Duration) error {
	key := rf.getNamespaceKey(persistence.FLOW_PREFIX, flowCtx.Id)
	data, err := rf.encoderDecoder.Encode(*flowCtx)
	if err != nil {
		return err
	}
	if err := rf.redisClient.Set(ctx, key, data, ttl).Err(); err != nil {
		logger.Error("error in saving flow context", zap.String("flowId", flowCtx.Id), zap.Error(err))
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (rf *redisFlowDao) GetFlowContext(ctx context.Context, flowId string) (*model.FlowContext, error) {
	key := rf.getNamespaceKey(persistence.FLOW_PREFIX, flowId)
	val, err := rf.redisClient.Get(ctx, key).Result()
	if errors.Is(err, rd.Nil) {
		return nil, persistence.ErrNotFound
	}
	if err != nil {
		logger.Error("error in getting flow context", zap.String("flowId", flowId), zap.Error(err))
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	return rf.encoderDecoder.Decode([]byte(val))
}

func (rf *redisFlowDao) DeleteFlowContext(ctx context.Context, flowId string) error {
	key := rf.getNamespaceKey(persistence.FLOW_PREFIX, flowId)
	if err := rf.redisClient.Del(ctx, key).Err(); err != nil {
		logger.Error("error in deleting flow context", zap.String("flowId", flowId), zap.Error(err))
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}
