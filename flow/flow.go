package flow

import (
	"fmt"

	"github.com/mohitkumar/onboarding/model"
)

// Validate checks a question set before it is served to anyone.
func Validate(set *model.QuestionSet) error {
	if set == nil {
		return fmt.Errorf("question set is nil")
	}
	if set.Name == "" {
		return fmt.Errorf("question set name is empty")
	}
	validQuestionId := make(map[int]any)
	for _, q := range set.Questions {
		if _, ok := validQuestionId[q.Id]; ok {
			return fmt.Errorf("question id %d is duplicate", q.Id)
		}
		validQuestionId[q.Id] = ""
		if !q.Type.Valid() {
			return fmt.Errorf("question %d has invalid type %d", q.Id, int(q.Type))
		}
		if q.Title == "" {
			return fmt.Errorf("question %d has no title", q.Id)
		}
		values := make(map[string]any)
		for _, opt := range q.Options {
			if opt.Value == "" {
				return fmt.Errorf("question %d has an option without value", q.Id)
			}
			if _, ok := values[opt.Value]; ok {
				return fmt.Errorf("question %d has duplicate option value %s", q.Id, opt.Value)
			}
			values[opt.Value] = ""
		}
		if q.Required && q.Type != model.TEXT && len(q.Options) == 0 {
			return fmt.Errorf("required question %d has no options", q.Id)
		}
	}
	return nil
}
