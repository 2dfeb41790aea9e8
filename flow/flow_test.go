package flow

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mohitkumar/onboarding/model"
)

func TestValidate(t *testing.T) {
	valid := func() *model.QuestionSet {
		return &model.QuestionSet{Name: "signup", Questions: twoQuestions()}
	}
	require.NoError(t, Validate(valid()))
	require.Error(t, Validate(nil))

	for scenario, mutate := range map[string]func(s *model.QuestionSet){
		"empty name":           func(s *model.QuestionSet) { s.Name = "" },
		"duplicate id":         func(s *model.QuestionSet) { s.Questions[1].Id = 1 },
		"unknown type":         func(s *model.QuestionSet) { s.Questions[0].Type = model.QuestionType(0) },
		"missing title":        func(s *model.QuestionSet) { s.Questions[0].Title = "" },
		"duplicate value":      func(s *model.QuestionSet) { s.Questions[0].Options[1].Value = "a" },
		"empty value":          func(s *model.QuestionSet) { s.Questions[1].Options[0].Value = "" },
		"required, no options": func(s *model.QuestionSet) { s.Questions[1].Options = nil },
	} {
		t.Run(scenario, func(t *testing.T) {
			s := valid()
			mutate(s)
			require.Error(t, Validate(s))
		})
	}

	s := valid()
	s.Questions = append(s.Questions, model.Question{Id: 3, Title: "about you", Type: model.TEXT, Required: true})
	require.NoError(t, Validate(s))
}
