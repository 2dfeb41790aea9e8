package model

import (
	"fmt"
	"time"
)

// AnswerMap holds, per question id, the selected option values in selection order.
type AnswerMap map[int][]string

func (a AnswerMap) Copy() AnswerMap {
	res := make(AnswerMap, len(a))
	for k, v := range a {
		values := make([]string, len(v))
		copy(values, v)
		res[k] = values
	}
	return res
}

type FlowState struct {
	CurrentIndex int       `json:"currentIndex"`
	Answers      AnswerMap `json:"answers"`
	Progress     float64   `json:"progress"`
}

func (s FlowState) Copy() FlowState {
	return FlowState{
		CurrentIndex: s.CurrentIndex,
		Answers:      s.Answers.Copy(),
		Progress:     s.Progress,
	}
}

type FlowStatus int

const IN_PROGRESS FlowStatus = 1
const COMPLETED FlowStatus = 2
const CLOSED FlowStatus = 3

func (s FlowStatus) String() string {
	switch s {
	case IN_PROGRESS:
		return "IN_PROGRESS"
	case COMPLETED:
		return "COMPLETED"
	case CLOSED:
		return "CLOSED"
	}
	return "UNDEFINED"
}

func (s FlowStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *FlowStatus) UnmarshalText(text []byte) error {
	switch string(text) {
	case "IN_PROGRESS":
		*s = IN_PROGRESS
	case "COMPLETED":
		*s = COMPLETED
	case "CLOSED":
		*s = CLOSED
	case "UNDEFINED":
		*s = 0
	default:
		return fmt.Errorf("invalid flow status %q", string(text))
	}
	return nil
}

type Variant string

const DIALOG Variant = "dialog"
const PAGE Variant = "page"

func ToVariant(v string) Variant {
	if Variant(v) == PAGE {
		return PAGE
	}
	return DIALOG
}

// FlowContext is the stored form of one open flow.
type FlowContext struct {
	Id          string     `json:"id"`
	QuestionSet string     `json:"questionSet"`
	Variant     Variant    `json:"variant"`
	Questions   []Question `json:"questions"`
	Status      FlowStatus `json:"status"`
	State       FlowState  `json:"state"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// FlowView is the outcome of one event applied to a flow. Accepted is false
// when the flow refused the transition.
type FlowView struct {
	Accepted bool         `json:"accepted"`
	Flow     *FlowContext `json:"flow"`
}

type Submission struct {
	FlowId      string    `json:"flowId"`
	QuestionSet string    `json:"questionSet"`
	Answers     AnswerMap `json:"answers"`
	CompletedAt time.Time `json:"completedAt"`
}

type FlowOpenRequest struct {
	QuestionSet string `json:"questionSet"`
	Variant     string `json:"variant"`
}

type FlowSelectRequest struct {
	QuestionId int    `json:"questionId"`
	Value      string `json:"value"`
}
