package flow

import (
	"strings"

	"golang.org/x/exp/slices"

	"github.com/mohitkumar/onboarding/model"
)

// Flow is one run-through of a questionnaire. It is a synchronous reducer over
// model.FlowState and is not safe for concurrent use; callers serialise events.
type Flow struct {
	questions   []model.Question
	state       model.FlowState
	onComplete  func(model.AnswerMap)
	onClose     []func()
	subscribers map[int]func(model.FlowState)
	nextSubId   int
	completed   bool
	closed      bool
}

func New(questions []model.Question, onComplete func(model.AnswerMap)) *Flow {
	return &Flow{
		questions:   questions,
		state:       model.FlowState{Answers: make(model.AnswerMap)},
		onComplete:  onComplete,
		subscribers: make(map[int]func(model.FlowState)),
		completed:   len(questions) == 0,
	}
}

// Restore rebuilds a flow from a stored state. The index is clamped into
// [0, N] and progress is recomputed from the answers.
func Restore(questions []model.Question, state model.FlowState, onComplete func(model.AnswerMap)) *Flow {
	f := New(questions, onComplete)
	f.state = state.Copy()
	if f.state.Answers == nil {
		f.state.Answers = make(model.AnswerMap)
	}
	if f.state.CurrentIndex < 0 {
		f.state.CurrentIndex = 0
	}
	if f.state.CurrentIndex >= len(questions) {
		f.state.CurrentIndex = len(questions)
		f.completed = true
	}
	f.state.Progress = f.progress()
	return f
}

// Current returns the visible question; false once the flow reached the end.
func (f *Flow) Current() (model.Question, bool) {
	if f.closed || f.state.CurrentIndex >= len(f.questions) {
		return model.Question{}, false
	}
	return f.questions[f.state.CurrentIndex], true
}

func (f *Flow) Questions() []model.Question {
	return f.questions
}

func (f *Flow) Snapshot() model.FlowState {
	return f.state.Copy()
}

func (f *Flow) Completed() bool {
	return f.completed
}

func (f *Flow) Closed() bool {
	return f.closed
}

func (f *Flow) Status() model.FlowStatus {
	switch {
	case f.closed:
		return model.CLOSED
	case f.completed:
		return model.COMPLETED
	}
	return model.IN_PROGRESS
}

// SelectOption records a value for the visible question. Multiple-choice
// questions toggle the value, appending it when absent; every other type
// replaces the answer with the single value. Text answers are trimmed. Selections addressed to any
// other question are refused.
func (f *Flow) SelectOption(questionId int, value string) bool {
	q, ok := f.Current()
	if !ok || q.Id != questionId {
		return false
	}
	current := f.state.Answers[q.Id]
	switch q.Type {
	case model.MULTIPLE:
		if idx := slices.Index(current, value); idx >= 0 {
			next := make([]string, 0, len(current)-1)
			next = append(next, current[:idx]...)
			f.state.Answers[q.Id] = append(next, current[idx+1:]...)
		} else {
			next := make([]string, 0, len(current)+1)
			next = append(next, current...)
			f.state.Answers[q.Id] = append(next, value)
		}
	case model.SINGLE, model.SEARCH:
		f.state.Answers[q.Id] = []string{value}
	case model.TEXT:
		// blank text clears the answer
		if text := strings.TrimSpace(value); text != "" {
			f.state.Answers[q.Id] = []string{text}
		} else {
			delete(f.state.Answers, q.Id)
		}
	default:
		return false
	}
	f.state.Progress = f.progress()
	f.notify()
	return true
}

// CanProceed reports whether the visible question allows moving forward.
func (f *Flow) CanProceed() bool {
	q, ok := f.Current()
	if !ok {
		return false
	}
	return !q.Required || len(f.state.Answers[q.Id]) > 0
}

// Advance moves to the next question, or on the last question fires the
// completion callback once and parks the flow at the terminal index.
func (f *Flow) Advance() bool {
	if !f.CanProceed() {
		return false
	}
	if f.state.CurrentIndex < len(f.questions)-1 {
		f.state.CurrentIndex++
		f.notify()
		return true
	}
	f.state.CurrentIndex = len(f.questions)
	f.completed = true
	if f.onComplete != nil {
		f.onComplete(f.state.Answers.Copy())
	}
	f.notify()
	return true
}

func (f *Flow) Retreat() bool {
	if f.closed || f.completed || f.state.CurrentIndex == 0 {
		return false
	}
	f.state.CurrentIndex--
	f.notify()
	return true
}

// Close discards the state and tells close listeners to hide the flow.
func (f *Flow) Close() {
	if f.closed {
		return
	}
	f.closed = true
	f.state = model.FlowState{Answers: make(model.AnswerMap)}
	for _, fn := range f.onClose {
		fn()
	}
	f.subscribers = make(map[int]func(model.FlowState))
}

func (f *Flow) OnClose(fn func()) {
	f.onClose = append(f.onClose, fn)
}

// Subscribe registers fn to receive a snapshot after every applied transition.
func (f *Flow) Subscribe(fn func(model.FlowState)) func() {
	id := f.nextSubId
	f.nextSubId++
	f.subscribers[id] = fn
	return func() {
		delete(f.subscribers, id)
	}
}

func (f *Flow) notify() {
	if len(f.subscribers) == 0 {
		return
	}
	ids := make([]int, 0, len(f.subscribers))
	for id := range f.subscribers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if fn, ok := f.subscribers[id]; ok {
			fn(f.state.Copy())
		}
	}
}

func (f *Flow) progress() float64 {
	return Progress(f.questions, f.state.Answers)
}

// Progress is the share of questions holding at least one answer, in percent.
func Progress(questions []model.Question, answers model.AnswerMap) float64 {
	if len(questions) == 0 {
		return 0
	}
	answered := 0
	for _, q := range questions {
		if len(answers[q.Id]) > 0 {
			answered++
		}
	}
	return float64(answered) / float64(len(questions)) * 100
}
