package memory

import (
	"context"
	"time"

	c "github.com/patrickmn/go-cache"

	"github.com/mohitkumar/onboarding/model"
	"github.com/mohitkumar/onboarding/persistence"
)

var _ persistence.FlowDao = new(FlowStore)
var _ persistence.QuestionSetDao = new(QuestionSetStore)
var _ persistence.SubmissionDao = new(SubmissionStore)

// FlowStore keeps flow contexts in process. Values are copied in and out so
// callers never share state with the cache.
type FlowStore struct {
	cache *c.Cache
}

func NewFlowStore(cleanupInterval time.Duration) *FlowStore {
	return &FlowStore{
		cache: c.New(c.NoExpiration, cleanupInterval),
	}
}

func (s *FlowStore) SaveFlowContext(_ context.Context, flowCtx *model.FlowContext, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.NoExpiration
	}
	s.cache.Set(flowCtx.Id, copyFlowContext(flowCtx), ttl)
	return nil
}

func (s *FlowStore) GetFlowContext(_ context.Context, flowId string) (*model.FlowContext, error) {
	val, found := s.cache.Get(flowId)
	if !found {
		return nil, persistence.ErrNotFound
	}
	return copyFlowContext(val.(*model.FlowContext)), nil
}

func (s *FlowStore) DeleteFlowContext(_ context.Context, flowId string) error {
	s.cache.Delete(flowId)
	return nil
}

func (s *FlowStore) Count() int {
	return s.cache.ItemCount()
}

func copyFlowContext(flowCtx *model.FlowContext) *model.FlowContext {
	res := *flowCtx
	res.State = flowCtx.State.Copy()
	return &res
}

type QuestionSetStore struct {
	cache *c.Cache
}

func NewQuestionSetStore() *QuestionSetStore {
	return &QuestionSetStore{
		cache: c.New(c.NoExpiration, 0),
	}
}

func (s *QuestionSetStore) Save(_ context.Context, set model.QuestionSet) error {
	s.cache.Set(set.Name, set, c.NoExpiration)
	return nil
}

func (s *QuestionSetStore) Get(_ context.Context, name string) (*model.QuestionSet, error) {
	val, found := s.cache.Get(name)
	if !found {
		return nil, persistence.ErrNotFound
	}
	set := val.(model.QuestionSet)
	return &set, nil
}

func (s *QuestionSetStore) Delete(_ context.Context, name string) error {
	s.cache.Delete(name)
	return nil
}

type SubmissionStore struct {
	cache *c.Cache
}

func NewSubmissionStore() *SubmissionStore {
	return &SubmissionStore{
		cache: c.New(c.NoExpiration, 0),
	}
}

func (s *SubmissionStore) SaveSubmission(_ context.Context, submission model.Submission) error {
	submission.Answers = submission.Answers.Copy()
	s.cache.Set(submission.FlowId, submission, c.NoExpiration)
	return nil
}

func (s *SubmissionStore) GetSubmission(_ context.Context, flowId string) (*model.Submission, error) {
	val, found := s.cache.Get(flowId)
	if !found {
		return nil, persistence.ErrNotFound
	}
	submission := val.(model.Submission)
	submission.Answers = submission.Answers.Copy()
	return &submission, nil
}
