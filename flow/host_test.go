package flow

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mohitkumar/onboarding/model"
)

func TestHostVisibility(t *testing.T) {
	closes := 0
	var completed []model.AnswerMap
	h := NewHost(twoQuestions(), func(a model.AnswerMap) { completed = append(completed, a) }, func() { closes++ })
	require.False(t, h.IsOpen())

	f := h.Open()
	require.True(t, h.IsOpen())
	require.Same(t, f, h.Open())
	f.SelectOption(1, "a")

	h.Close()
	require.False(t, h.IsOpen())
	require.Nil(t, h.Flow())
	require.Equal(t, 1, closes)

	f = h.Open()
	require.Empty(t, f.Snapshot().Answers)

	f.Close()
	require.False(t, h.IsOpen())
	require.Equal(t, 2, closes)
	h.Close()
	require.Equal(t, 2, closes)
	require.Empty(t, completed)
}

func TestHostExample(t *testing.T) {
	var completed []model.AnswerMap
	h := NewHost(twoQuestions(), func(a model.AnswerMap) { completed = append(completed, a) }, nil)
	f := h.Open()

	require.True(t, f.SelectOption(1, "a"))
	require.True(t, f.Advance())
	require.True(t, f.SelectOption(2, "x"))
	require.Equal(t, 100.0, f.Snapshot().Progress)
	require.True(t, f.Advance())

	require.Equal(t, []model.AnswerMap{{1: {"a"}, 2: {"x"}}}, completed)
	require.True(t, h.IsOpen())
	_, ok := f.Current()
	require.False(t, ok)
}

func TestHostReopenAfterCompletionStartsFresh(t *testing.T) {
	closes := 0
	h := NewHost(twoQuestions(), nil, func() { closes++ })
	done := h.Open()
	done.SelectOption(1, "a")
	done.Advance()
	done.SelectOption(2, "x")
	require.True(t, done.Advance())
	require.True(t, done.Completed())

	f := h.Open()
	require.NotSame(t, done, f)
	require.False(t, f.Completed())
	require.Equal(t, 0, f.Snapshot().CurrentIndex)
	require.Empty(t, f.Snapshot().Answers)

	done.Close()
	require.True(t, h.IsOpen())
	require.Same(t, f, h.Flow())
	require.Equal(t, 0, closes)
}
