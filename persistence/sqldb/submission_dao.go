package sqldb

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/mohitkumar/onboarding/logger"
	"github.com/mohitkumar/onboarding/model"
	"github.com/mohitkumar/onboarding/persistence"
	"github.com/mohitkumar/onboarding/util"
)

var _ persistence.SubmissionDao = new(sqlSubmissionDao)

type sqlSubmissionDao struct {
	db             *sql.DB
	driver         string
	encoderDecoder util.EncoderDecoder[model.AnswerMap]
}

func NewSubmissionDao(db *sql.DB, driver string) *sqlSubmissionDao {
	return &sqlSubmissionDao{
		db:             db,
		driver:         driver,
		encoderDecoder: util.NewJsonEncoderDecoder[model.AnswerMap](),
	}
}

// SaveSubmission replaces an earlier submission of the same flow.
func (d *sqlSubmissionDao) SaveSubmission(ctx context.Context, submission model.Submission) error {
	answers, err := d.encoderDecoder.Encode(submission.Answers)
	if err != nil {
		return err
	}
	_, err = d.db.ExecContext(ctx, rebind(d.driver, `
		INSERT INTO submission (flow_id, question_set, answers, completed_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (flow_id) DO UPDATE SET
			question_set = excluded.question_set,
			answers = excluded.answers,
			completed_at = excluded.completed_at
	`), submission.FlowId, submission.QuestionSet, string(answers), submission.CompletedAt.UTC())
	if err != nil {
		logger.Error("failed to insert submission", zap.String("flowId", submission.FlowId), zap.Error(err))
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (d *sqlSubmissionDao) GetSubmission(ctx context.Context, flowId string) (*model.Submission, error) {
	var (
		submission model.Submission
		answers    string
	)
	err := d.db.QueryRowContext(ctx, rebind(d.driver, `
		SELECT flow_id, question_set, answers, completed_at FROM submission WHERE flow_id = ?
	`), flowId).Scan(&submission.FlowId, &submission.QuestionSet, &answers, &submission.CompletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, persistence.ErrNotFound
	}
	if err != nil {
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	decoded, err := d.encoderDecoder.Decode([]byte(answers))
	if err != nil {
		return nil, err
	}
	submission.Answers = *decoded
	return &submission, nil
}
