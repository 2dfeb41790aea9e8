package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mohitkumar/onboarding/model"
)

type StorageLayerError struct {
	Message string
}

func (e StorageLayerError) Error() string {
	return fmt.Sprintf("storage layer error %s", e.Message)
}

var ErrNotFound = errors.New("not found")

const FLOW_PREFIX string = "FLOW"
const QUESTION_SET_PREFIX string = "QSET"
const SUBMISSION_PREFIX string = "SUBMISSION"

type QuestionSetDao interface {
	Save(ctx context.Context, set model.QuestionSet) error
	Get(ctx context.Context, name string) (*model.QuestionSet, error)
	Delete(ctx context.Context, name string) error
}

// FlowDao keeps open flows. Entries expire after ttl so abandoned flows go away.
type FlowDao interface {
	SaveFlowContext(ctx context.Context, flowCtx *model.FlowContext, ttl time.Duration) error
	GetFlowContext(ctx context.Context, flowId string) (*model.FlowContext, error)
	DeleteFlowContext(ctx context.Context, flowId string) error
}

type SubmissionDao interface {
	SaveSubmission(ctx context.Context, submission model.Submission) error
	GetSubmission(ctx context.Context, flowId string) (*model.Submission, error)
}
