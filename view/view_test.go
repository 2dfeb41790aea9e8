package view

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mohitkumar/onboarding/model"
)

func questions() []model.Question {
	return []model.Question{
		{Id: 1, Title: "Services", Type: model.MULTIPLE, Required: true, Options: []model.Option{
			{Id: "a", Label: "Class", Value: "class"}, {Id: "b", Label: "Sessions", Value: "sessions"},
		}},
		{Id: 2, Title: "Category", Note: "Only these", Type: model.SEARCH, Required: true, Options: []model.Option{
			{Id: "design", Label: "Design", Value: "design"},
			{Id: "webdev", Label: "Web Development", Value: "webdev"},
			{Id: "marketing", Label: "Digital Marketing", Value: "marketing"},
		}},
		{Id: 3, Title: "About you", Type: model.TEXT},
	}
}

func TestRenderFirstQuestion(t *testing.T) {
	screen := Render(Context{
		Questions: questions(),
		State:     model.FlowState{Answers: model.AnswerMap{1: {"sessions"}}},
		Variant:   model.DIALOG,
	})
	require.Equal(t, KIND_QUESTION, screen.Kind)
	require.Equal(t, "1", screen.Step)
	require.Equal(t, "multiple", screen.Type)
	require.Equal(t, 1, screen.Position)
	require.Equal(t, 3, screen.Total)
	require.True(t, screen.Closable)
	require.True(t, screen.PrevDisabled)
	require.False(t, screen.NextDisabled)
	require.InDelta(t, 33.33, screen.Progress, 0.01)
	require.Equal(t, []Option{
		{Id: "a", Label: "Class", Value: "class"},
		{Id: "b", Label: "Sessions", Value: "sessions", Selected: true},
	}, screen.Options)
}

func TestRenderSearchFilter(t *testing.T) {
	for query, want := range map[string][]string{
		"":         {"design", "webdev", "marketing"},
		"  ":       {"design", "webdev", "marketing"},
		"DIGITAL":  {"marketing"},
		"de":       {"design", "webdev"},
		"ment":     {"webdev"},
		"painting": {},
	} {
		screen := Render(Context{
			Questions: questions(),
			State:     model.FlowState{CurrentIndex: 1, Answers: model.AnswerMap{1: {"class"}, 2: {"marketing"}}},
			Variant:   model.PAGE,
			Query:     query,
		})
		values := []string{}
		for _, opt := range screen.Options {
			values = append(values, opt.Value)
			require.Equal(t, opt.Value == "marketing", opt.Selected)
		}
		require.Equal(t, want, values, query)
		require.Equal(t, SEARCH_PLACEHOLDER, screen.Placeholder)
		require.Equal(t, "Only these", screen.Note)
		require.False(t, screen.Closable)
		require.False(t, screen.PrevDisabled)
	}
}

func TestRenderTextAndRequiredGuard(t *testing.T) {
	screen := Render(Context{
		Questions: questions(),
		State:     model.FlowState{CurrentIndex: 2, Answers: model.AnswerMap{3: {"I teach ink"}}},
	})
	require.Equal(t, "I teach ink", screen.Text)
	require.Empty(t, screen.Options)
	require.False(t, screen.NextDisabled)
	require.Equal(t, 3, screen.Position)

	screen = Render(Context{
		Questions: questions(),
		State:     model.FlowState{CurrentIndex: 1, Answers: model.AnswerMap{}},
	})
	require.True(t, screen.NextDisabled)
	require.Equal(t, 0.0, screen.Progress)
}

func TestRenderThankYou(t *testing.T) {
	screen := Render(Context{
		Questions: questions(),
		State:     model.FlowState{CurrentIndex: 3, Answers: model.AnswerMap{1: {"class"}, 2: {"design"}}},
		Variant:   model.DIALOG,
	})
	require.Equal(t, KIND_THANK_YOU, screen.Kind)
	require.Equal(t, THANK_YOU_TITLE, screen.Title)
	require.True(t, screen.NextDisabled)
	require.True(t, screen.PrevDisabled)
	require.Equal(t, 3, screen.Position)
	require.InDelta(t, 66.67, screen.Progress, 0.01)
}
