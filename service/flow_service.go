package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mohitkumar/onboarding/analytics"
	"github.com/mohitkumar/onboarding/flow"
	"github.com/mohitkumar/onboarding/logger"
	"github.com/mohitkumar/onboarding/metadata"
	"github.com/mohitkumar/onboarding/metrics"
	"github.com/mohitkumar/onboarding/model"
	"github.com/mohitkumar/onboarding/persistence"
	"github.com/mohitkumar/onboarding/util"
)

var ErrFlowNotFound = errors.New("flow not found")

const (
	EVENT_SELECT  = "select"
	EVENT_ADVANCE = "advance"
	EVENT_RETREAT = "retreat"
)

// FlowService hosts open flows. Every event loads the stored state, applies
// one transition and stores the result. Events for the same flow id are
// applied one at a time in arrival order.
type FlowService struct {
	metadataService  metadata.MetadataService
	flowDao          persistence.FlowDao
	submissionDao    persistence.SubmissionDao
	collector        analytics.FlowDataCollector
	flowTTL          time.Duration
	completionWorker *util.Worker[model.Submission]
	locks            map[string]*flowLock
	locksMu          sync.Mutex
	now              func() time.Time
}

type flowLock struct {
	sync.Mutex
	refs int
}

func NewFlowService(metadataService metadata.MetadataService, flowDao persistence.FlowDao, submissionDao persistence.SubmissionDao,
	collector analytics.FlowDataCollector, flowTTL time.Duration, workerCapacity int, wg *sync.WaitGroup) *FlowService {
	s := &FlowService{
		metadataService: metadataService,
		flowDao:         flowDao,
		submissionDao:   submissionDao,
		collector:       collector,
		flowTTL:         flowTTL,
		locks:           make(map[string]*flowLock),
		now:             time.Now,
	}
	s.completionWorker = util.NewWorker("completion-worker", wg, s.recordCompletion, workerCapacity)
	return s
}

func (s *FlowService) Start() {
	s.completionWorker.Start()
}

// Stop stops the completion worker once the queued events are recorded.
func (s *FlowService) Stop() error {
	s.completionWorker.Stop()
	return nil
}

func (s *FlowService) Open(ctx context.Context, questionSet string, variant string) (*model.FlowContext, error) {
	set, err := s.metadataService.GetQuestionSet(ctx, questionSet)
	if err != nil {
		return nil, err
	}
	f := flow.New(set.Questions, nil)
	now := s.now()
	flowCtx := &model.FlowContext{
		Id:          uuid.NewString(),
		QuestionSet: set.Name,
		Variant:     model.ToVariant(variant),
		Questions:   set.Questions,
		Status:      f.Status(),
		State:       f.Snapshot(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.flowDao.SaveFlowContext(ctx, flowCtx, s.flowTTL); err != nil {
		return nil, fmt.Errorf("failed to save flow %s: %w", flowCtx.Id, err)
	}
	metrics.RecordOpened(ctx, set.Name, string(flowCtx.Variant))
	s.collector.RecordOpen(set.Name, flowCtx.Id, flowCtx.Variant)
	logger.Debug("flow opened", zap.String("questionSet", set.Name), zap.String("id", flowCtx.Id))
	return flowCtx, nil
}

func (s *FlowService) Get(ctx context.Context, flowId string) (*model.FlowContext, error) {
	return s.getFlowContext(ctx, flowId)
}

func (s *FlowService) Select(ctx context.Context, flowId string, questionId int, value string) (*model.FlowView, error) {
	return s.apply(ctx, flowId, EVENT_SELECT, func(f *flow.Flow) bool {
		return f.SelectOption(questionId, value)
	})
}

func (s *FlowService) Advance(ctx context.Context, flowId string) (*model.FlowView, error) {
	return s.apply(ctx, flowId, EVENT_ADVANCE, func(f *flow.Flow) bool {
		return f.Advance()
	})
}

func (s *FlowService) Retreat(ctx context.Context, flowId string) (*model.FlowView, error) {
	return s.apply(ctx, flowId, EVENT_RETREAT, func(f *flow.Flow) bool {
		return f.Retreat()
	})
}

// Close discards the flow. The returned context carries the CLOSED status
// and empty state; the stored flow is gone afterwards.
func (s *FlowService) Close(ctx context.Context, flowId string) (*model.FlowView, error) {
	unlock := s.lock(flowId)
	defer unlock()

	flowCtx, err := s.getFlowContext(ctx, flowId)
	if err != nil {
		return nil, err
	}
	reached := flowCtx.State
	f := flow.Restore(flowCtx.Questions, flowCtx.State, nil)
	f.OnClose(func() {
		metrics.RecordClosed(ctx, flowCtx.QuestionSet, reached.Progress)
		s.collector.RecordAbandon(flowCtx.QuestionSet, flowCtx.Id, reached.CurrentIndex, reached.Progress)
	})
	if err := s.flowDao.DeleteFlowContext(ctx, flowId); err != nil {
		return nil, fmt.Errorf("failed to delete flow %s: %w", flowId, err)
	}
	f.Close()
	flowCtx.Status = f.Status()
	flowCtx.State = f.Snapshot()
	flowCtx.UpdatedAt = s.now()
	return &model.FlowView{Accepted: true, Flow: flowCtx}, nil
}

func (s *FlowService) GetSubmission(ctx context.Context, flowId string) (*model.Submission, error) {
	sub, err := s.submissionDao.GetSubmission(ctx, flowId)
	if errors.Is(err, persistence.ErrNotFound) {
		return nil, fmt.Errorf("%w: no submission for %s", ErrFlowNotFound, flowId)
	}
	return sub, err
}

func (s *FlowService) apply(ctx context.Context, flowId string, event string, transition func(f *flow.Flow) bool) (*model.FlowView, error) {
	unlock := s.lock(flowId)
	defer unlock()

	flowCtx, err := s.getFlowContext(ctx, flowId)
	if err != nil {
		return nil, err
	}
	var completed model.AnswerMap
	f := flow.Restore(flowCtx.Questions, flowCtx.State, func(answers model.AnswerMap) {
		completed = answers
	})
	unsubscribe := f.Subscribe(func(state model.FlowState) {
		s.collector.RecordStep(flowCtx.QuestionSet, flowCtx.Id, state.CurrentIndex, state.Progress)
	})
	accepted := transition(f)
	unsubscribe()
	if !accepted {
		metrics.RecordRefused(ctx, flowCtx.QuestionSet, event)
		return &model.FlowView{Accepted: false, Flow: flowCtx}, nil
	}

	flowCtx.State = f.Snapshot()
	flowCtx.Status = f.Status()
	flowCtx.UpdatedAt = s.now()
	if !f.Completed() {
		if err := s.flowDao.SaveFlowContext(ctx, flowCtx, s.flowTTL); err != nil {
			return nil, fmt.Errorf("failed to save flow %s: %w", flowId, err)
		}
		return &model.FlowView{Accepted: true, Flow: flowCtx}, nil
	}

	// save before delete: on a failed save the stored flow stays at the last
	// question and advance can be retried
	sub := model.Submission{
		FlowId:      flowCtx.Id,
		QuestionSet: flowCtx.QuestionSet,
		Answers:     completed,
		CompletedAt: flowCtx.UpdatedAt,
	}
	if err := s.submissionDao.SaveSubmission(ctx, sub); err != nil {
		logger.Error("failed to save submission", zap.String("id", flowId), zap.Error(err))
		return nil, fmt.Errorf("failed to save submission %s: %w", flowId, err)
	}
	if err := s.flowDao.DeleteFlowContext(ctx, flowId); err != nil {
		return nil, fmt.Errorf("failed to delete completed flow %s: %w", flowId, err)
	}
	metrics.RecordCompleted(ctx, flowCtx.QuestionSet)
	s.completionWorker.Sender() <- sub
	logger.Info("flow completed", zap.String("questionSet", flowCtx.QuestionSet), zap.String("id", flowId))
	return &model.FlowView{Accepted: true, Flow: flowCtx}, nil
}

func (s *FlowService) recordCompletion(sub model.Submission) error {
	s.collector.RecordCompletion(sub.QuestionSet, sub.FlowId, sub.Answers)
	return nil
}

func (s *FlowService) getFlowContext(ctx context.Context, flowId string) (*model.FlowContext, error) {
	flowCtx, err := s.flowDao.GetFlowContext(ctx, flowId)
	if errors.Is(err, persistence.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrFlowNotFound, flowId)
	}
	if err != nil {
		logger.Error("failed to load flow", zap.String("id", flowId), zap.Error(err))
		return nil, err
	}
	return flowCtx, nil
}

func (s *FlowService) lock(flowId string) func() {
	s.locksMu.Lock()
	l, ok := s.locks[flowId]
	if !ok {
		l = &flowLock{}
		s.locks[flowId] = l
	}
	l.refs++
	s.locksMu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		s.locksMu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, flowId)
		}
		s.locksMu.Unlock()
	}
}
