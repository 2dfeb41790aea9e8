package sqldb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mohitkumar/onboarding/model"
	"github.com/mohitkumar/onboarding/persistence"
)

func TestSqliteSubmissionDao(t *testing.T) {
	db, err := Open(DRIVER_SQLITE, filepath.Join(t.TempDir(), "submissions.db"))
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, CreateSchema(db))

	ctx := context.Background()
	dao := NewSubmissionDao(db, DRIVER_SQLITE)
	completedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sub := model.Submission{
		FlowId:      "f1",
		QuestionSet: "signup",
		Answers:     model.AnswerMap{1: {"class", "sessions"}, 2: {"design"}},
		CompletedAt: completedAt,
	}
	require.NoError(t, dao.SaveSubmission(ctx, sub))

	got, err := dao.GetSubmission(ctx, "f1")
	require.NoError(t, err)
	require.Equal(t, sub.Answers, got.Answers)
	require.Equal(t, "signup", got.QuestionSet)
	require.True(t, completedAt.Equal(got.CompletedAt))

	sub.Answers = model.AnswerMap{1: {"products"}}
	require.NoError(t, dao.SaveSubmission(ctx, sub))
	got, err = dao.GetSubmission(ctx, "f1")
	require.NoError(t, err)
	require.Equal(t, model.AnswerMap{1: {"products"}}, got.Answers)

	_, err = dao.GetSubmission(ctx, "f2")
	require.ErrorIs(t, err, persistence.ErrNotFound)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open("mysql", "")
	require.Error(t, err)
}

func TestRebind(t *testing.T) {
	q := "INSERT INTO t (a, b) VALUES (?, ?)"
	require.Equal(t, q, rebind(DRIVER_SQLITE, q))
	require.Equal(t, "INSERT INTO t (a, b) VALUES ($1, $2)", rebind(DRIVER_POSTGRES, q))
}
