package redis

import (
	"context"
	"errors"

	rd "github.com/go-redis/redis/v9"

	"github.com/mohitkumar/onboarding/model"
	"github.com/mohitkumar/onboarding/persistence"
	"github.com/mohitkumar/onboarding/util"
)

var _ persistence.QuestionSetDao = new(redisQuestionSetDao)

type redisQuestionSetDao struct {
	baseDao
	encoderDecoder util.EncoderDecoder[model.QuestionSet]
}

func NewRedisQuestionSetDao(client rd.UniversalClient, conf Config) *redisQuestionSetDao {
	return &redisQuestionSetDao{
		baseDao:        *newBaseDao(client, conf),
		encoderDecoder: util.NewJsonEncoderDecoder[model.QuestionSet](),
	}
}

func (rq *redisQuestionSetDao) Save(ctx context.Context, set model.QuestionSet) error {
	key := rq.getNamespaceKey(persistence.QUESTION_SET_PREFIX, set.Name)
	data, err := rq.encoderDecoder.Encode(set)
	if err != nil {
		return err
	}
	if err := rq.redisClient.Set(ctx, key, data, 0).Err(); err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (rq *redisQuestionSetDao) Delete(ctx context.Context, name string) error {
	key := rq.getNamespaceKey(persistence.QUESTION_SET_PREFIX, name)
	if err := rq.redisClient.Del(ctx, key).Err(); err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (rq *redisQuestionSetDao) Get(ctx context.Context, name string) (*model.QuestionSet, error) {
	key := rq.getNamespaceKey(persistence.QUESTION_SET_PREFIX, name)
	val, err := rq.redisClient.Get(ctx, key).Result()
	if errors.Is(err, rd.Nil) {
		return nil, persistence.ErrNotFound
	}
	if err != nil {
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	return rq.encoderDecoder.Decode([]byte(val))
}
