package redis

import (
	"context"
	"errors"

	rd "github.com/go-redis/redis/v9"

	"github.com/mohitkumar/onboarding/model"
	"github.com/mohitkumar/onboarding/persistence"
	"github.com/mohitkumar/onboarding/util"
)

var _ persistence.SubmissionDao = new(redisSubmissionDao)

type redisSubmissionDao struct {
	baseDao
	encoderDecoder util.EncoderDecoder[model.Submission]
}

func NewRedisSubmissionDao(client rd.UniversalClient, conf Config) *redisSubmissionDao {
	return &redisSubmissionDao{
		baseDao:        *newBaseDao(client, conf),
		encoderDecoder: util.NewJsonEncoderDecoder[model.Submission](),
	}
}

func (rs *redisSubmissionDao) SaveSubmission(ctx context.Context, submission model.Submission) error {
	key := rs.getNamespaceKey(persistence.SUBMISSION_PREFIX, submission.QuestionSet)
	data, err := rs.encoderDecoder.Encode(submission)
	if err != nil {
		return err
	}
	if err := rs.redisClient.HSet(ctx, key, submission.FlowId, string(data)).Err(); err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	if err := rs.redisClient.Set(ctx, rs.getNamespaceKey(persistence.SUBMISSION_PREFIX, "index", submission.FlowId), submission.QuestionSet, 0).Err(); err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (rs *redisSubmissionDao) GetSubmission(ctx context.Context, flowId string) (*model.Submission, error) {
	setName, err := rs.redisClient.Get(ctx, rs.getNamespaceKey(persistence.SUBMISSION_PREFIX, "index", flowId)).Result()
	if errors.Is(err, rd.Nil) {
		return nil, persistence.ErrNotFound
	}
	if err != nil {
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	val, err := rs.redisClient.HGet(ctx, rs.getNamespaceKey(persistence.SUBMISSION_PREFIX, setName), flowId).Result()
	if errors.Is(err, rd.Nil) {
		return nil, persistence.ErrNotFound
	}
	if err != nil {
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	return rs.encoderDecoder.Decode([]byte(val))
}
