package redis

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/mohitkumar/onboarding/model"
	"github.com/mohitkumar/onboarding/persistence"
	"github.com/mohitkumar/onboarding/util"
)

func testConfig() Config {
	return Config{
		Addrs:        []string{"localhost:6379"},
		Namespace:    "test-" + uuid.NewString(),
		ConnectRetry: 500 * time.Millisecond,
	}
}

func TestRedisDaos(t *testing.T) {
	conf := testConfig()
	client := NewClient(conf)
	defer client.Close()
	if err := WaitForRedis(context.Background(), client, conf); err != nil {
		t.Skipf("redis not available: %v", err)
	}

	for scenario, fn := range map[string]func(t *testing.T, conf Config){
		"flow context round trip": testFlowContext,
		"question set round trip": testQuestionSet,
		"submission round trip":   testSubmission,
	} {
		t.Run(scenario, func(t *testing.T) {
			fn(t, conf)
		})
	}
}

func testFlowContext(t *testing.T, conf Config) {
	ctx := context.Background()
	dao := NewRedisFlowDao(NewClient(conf), conf, util.NewJsonEncoderDecoder[model.FlowContext]())
	flowCtx := &model.FlowContext{
		Id:          uuid.NewString(),
		QuestionSet: "signup",
		Variant:     model.DIALOG,
		Status:      model.IN_PROGRESS,
		State:       model.FlowState{CurrentIndex: 1, Answers: model.AnswerMap{1: {"class", "products"}}, Progress: 25},
	}
	require.NoError(t, dao.SaveFlowContext(ctx, flowCtx, time.Minute))

	got, err := dao.GetFlowContext(ctx, flowCtx.Id)
	require.NoError(t, err)
	require.Equal(t, flowCtx.State, got.State)
	require.Equal(t, model.DIALOG, got.Variant)

	require.NoError(t, dao.DeleteFlowContext(ctx, flowCtx.Id))
	_, err = dao.GetFlowContext(ctx, flowCtx.Id)
	require.ErrorIs(t, err, persistence.ErrNotFound)
}

func testQuestionSet(t *testing.T, conf Config) {
	ctx := context.Background()
	dao := NewRedisQuestionSetDao(NewClient(conf), conf)
	set := model.QuestionSet{Name: "signup", Questions: []model.Question{{Id: 1, Title: "t", Type: model.MULTIPLE}}}
	require.NoError(t, dao.Save(ctx, set))

	got, err := dao.Get(ctx, "signup")
	require.NoError(t, err)
	require.Equal(t, model.MULTIPLE, got.Questions[0].Type)

	require.NoError(t, dao.Delete(ctx, "signup"))
	_, err = dao.Get(ctx, "signup")
	require.ErrorIs(t, err, persistence.ErrNotFound)
}

func testSubmission(t *testing.T, conf Config) {
	ctx := context.Background()
	dao := NewRedisSubmissionDao(NewClient(conf), conf)
	sub := model.Submission{FlowId: uuid.NewString(), QuestionSet: "signup", Answers: model.AnswerMap{2: {"design"}}}
	require.NoError(t, dao.SaveSubmission(ctx, sub))

	got, err := dao.GetSubmission(ctx, sub.FlowId)
	require.NoError(t, err)
	require.Equal(t, sub.Answers, got.Answers)

	_, err = dao.GetSubmission(ctx, "missing")
	require.ErrorIs(t, err, persistence.ErrNotFound)
}
