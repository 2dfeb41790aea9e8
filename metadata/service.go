package metadata

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mohitkumar/onboarding/flow"
	"github.com/mohitkumar/onboarding/logger"
	"github.com/mohitkumar/onboarding/model"
	"github.com/mohitkumar/onboarding/persistence"
)

var (
	ErrQuestionSetNotFound = errors.New("question set not found")
	ErrInvalidQuestionSet  = errors.New("invalid question set")
)

type MetadataService interface {
	GetQuestionSet(ctx context.Context, name string) (*model.QuestionSet, error)
	SaveQuestionSet(ctx context.Context, set model.QuestionSet) error
	DeleteQuestionSet(ctx context.Context, name string) error
	// LoadQuestionSets stores the default set and every set found in dir.
	// An empty dir loads only the default.
	LoadQuestionSets(ctx context.Context, dir string) error
}

type MetadataServiceImpl struct {
	storage persistence.QuestionSetDao
}

func NewMetadataService(storage persistence.QuestionSetDao) MetadataService {
	return &MetadataServiceImpl{
		storage: storage,
	}
}

func (s *MetadataServiceImpl) GetQuestionSet(ctx context.Context, name string) (*model.QuestionSet, error) {
	set, err := s.storage.Get(ctx, name)
	if errors.Is(err, persistence.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrQuestionSetNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	return set, nil
}

func (s *MetadataServiceImpl) SaveQuestionSet(ctx context.Context, set model.QuestionSet) error {
	if err := flow.Validate(&set); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidQuestionSet, err)
	}
	return s.storage.Save(ctx, set)
}

func (s *MetadataServiceImpl) DeleteQuestionSet(ctx context.Context, name string) error {
	return s.storage.Delete(ctx, name)
}

func (s *MetadataServiceImpl) LoadQuestionSets(ctx context.Context, dir string) error {
	sets := []model.QuestionSet{Default()}
	if dir != "" {
		fromDir, err := LoadDir(dir)
		if err != nil {
			return fmt.Errorf("failed to load question sets from %s: %w", dir, err)
		}
		sets = append(sets, fromDir...)
	}
	for _, set := range sets {
		if err := s.storage.Save(ctx, set); err != nil {
			return err
		}
		logger.Info("question set loaded", zap.String("name", set.Name), zap.Int("questions", len(set.Questions)))
	}
	return nil
}
