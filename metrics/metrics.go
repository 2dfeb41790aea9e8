package metrics

import (
	"context"

	"go.opencensus.io/plugin/ochttp"
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
	"go.opencensus.io/trace"
)

var (
	FlowsOpened       = stats.Int64("onboarding/flows_opened", "Number of flows opened", stats.UnitDimensionless)
	FlowsCompleted    = stats.Int64("onboarding/flows_completed", "Number of flows completed", stats.UnitDimensionless)
	FlowsClosed       = stats.Int64("onboarding/flows_closed", "Number of flows closed before completion", stats.UnitDimensionless)
	TransitionRefused = stats.Int64("onboarding/transitions_refused", "Number of refused transitions", stats.UnitDimensionless)
	CloseProgress     = stats.Float64("onboarding/close_progress", "Progress reached when a flow is closed", "%")
)

var (
	KeyQuestionSet = tag.MustNewKey("question_set")
	KeyVariant     = tag.MustNewKey("variant")
	KeyEvent       = tag.MustNewKey("event")
)

var (
	FlowsOpenedView = &view.View{
		Name:        "onboarding/flows_opened",
		Measure:     FlowsOpened,
		Description: "Flows opened by question set and variant",
		Aggregation: view.Count(),
		TagKeys:     []tag.Key{KeyQuestionSet, KeyVariant},
	}
	FlowsCompletedView = &view.View{
		Name:        "onboarding/flows_completed",
		Measure:     FlowsCompleted,
		Description: "Flows completed by question set",
		Aggregation: view.Count(),
		TagKeys:     []tag.Key{KeyQuestionSet},
	}
	FlowsClosedView = &view.View{
		Name:        "onboarding/flows_closed",
		Measure:     FlowsClosed,
		Description: "Flows closed by question set",
		Aggregation: view.Count(),
		TagKeys:     []tag.Key{KeyQuestionSet},
	}
	TransitionRefusedView = &view.View{
		Name:        "onboarding/transitions_refused",
		Measure:     TransitionRefused,
		Description: "Refused transitions by event",
		Aggregation: view.Count(),
		TagKeys:     []tag.Key{KeyQuestionSet, KeyEvent},
	}
	CloseProgressView = &view.View{
		Name:        "onboarding/close_progress",
		Measure:     CloseProgress,
		Description: "Distribution of progress reached on close",
		Aggregation: view.Distribution(0, 25, 50, 75, 100),
		TagKeys:     []tag.Key{KeyQuestionSet},
	}
)

var DefaultViews = []*view.View{
	FlowsOpenedView,
	FlowsCompletedView,
	FlowsClosedView,
	TransitionRefusedView,
	CloseProgressView,
}

// Register registers the flow views and the http server views and turns on
// trace sampling.
func Register() error {
	trace.ApplyConfig(trace.Config{DefaultSampler: trace.AlwaysSample()})
	if err := view.Register(DefaultViews...); err != nil {
		return err
	}
	return view.Register(ochttp.DefaultServerViews...)
}

func Unregister() {
	view.Unregister(DefaultViews...)
	view.Unregister(ochttp.DefaultServerViews...)
}

func RecordOpened(ctx context.Context, questionSet string, variant string) {
	record(ctx, []tag.Mutator{tag.Upsert(KeyQuestionSet, questionSet), tag.Upsert(KeyVariant, variant)}, FlowsOpened.M(1))
}

func RecordCompleted(ctx context.Context, questionSet string) {
	record(ctx, []tag.Mutator{tag.Upsert(KeyQuestionSet, questionSet)}, FlowsCompleted.M(1))
}

func RecordClosed(ctx context.Context, questionSet string, progress float64) {
	record(ctx, []tag.Mutator{tag.Upsert(KeyQuestionSet, questionSet)}, FlowsClosed.M(1), CloseProgress.M(progress))
}

func RecordRefused(ctx context.Context, questionSet string, event string) {
	record(ctx, []tag.Mutator{tag.Upsert(KeyQuestionSet, questionSet), tag.Upsert(KeyEvent, event)}, TransitionRefused.M(1))
}

func record(ctx context.Context, mutators []tag.Mutator, ms ...stats.Measurement) {
	// errors only come from invalid tag values, which drop the measurement
	_ = stats.RecordWithTags(ctx, mutators, ms...)
}
