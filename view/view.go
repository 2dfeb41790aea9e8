package view

import (
	"strconv"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/mohitkumar/onboarding/flow"
	"github.com/mohitkumar/onboarding/model"
)

type Kind string

const KIND_QUESTION Kind = "question"
const KIND_THANK_YOU Kind = "thank_you"

const THANK_YOU_TITLE string = "Thank you for answering!"
const SEARCH_PLACEHOLDER string = "Search categories..."

type Context struct {
	Questions []model.Question
	State     model.FlowState
	Variant   model.Variant
	// Query filters the options of a search question by label.
	Query string
}

type Option struct {
	Id       string `json:"id"`
	Label    string `json:"label"`
	Value    string `json:"value"`
	Selected bool   `json:"selected"`
}

// Screen is everything a client needs to draw one step of a flow.
type Screen struct {
	Kind         Kind          `json:"kind"`
	Variant      model.Variant `json:"variant"`
	Step         string        `json:"step,omitempty"`
	QuestionId   int           `json:"questionId,omitempty"`
	Title        string        `json:"title"`
	Subtitle     string        `json:"subtitle,omitempty"`
	Note         string        `json:"note,omitempty"`
	Type         string        `json:"type,omitempty"`
	Options      []Option      `json:"options,omitempty"`
	Placeholder  string        `json:"placeholder,omitempty"`
	Query        string        `json:"query,omitempty"`
	Text         string        `json:"text,omitempty"`
	Progress     float64       `json:"progress"`
	Position     int           `json:"position"`
	Total        int           `json:"total"`
	NextDisabled bool          `json:"nextDisabled"`
	PrevDisabled bool          `json:"prevDisabled"`
	Closable     bool          `json:"closable"`
}

func Render(ctx Context) Screen {
	f := flow.Restore(ctx.Questions, ctx.State, nil)
	state := f.Snapshot()
	screen := Screen{
		Variant:      ctx.Variant,
		Progress:     state.Progress,
		Total:        len(ctx.Questions),
		NextDisabled: !f.CanProceed(),
		PrevDisabled: state.CurrentIndex == 0 || f.Completed(),
		Closable:     ctx.Variant == model.DIALOG,
	}
	q, ok := f.Current()
	if !ok {
		screen.Kind = KIND_THANK_YOU
		screen.Title = THANK_YOU_TITLE
		screen.Position = len(ctx.Questions)
		return screen
	}
	selected := state.Answers[q.Id]
	screen.Kind = KIND_QUESTION
	screen.Position = state.CurrentIndex + 1
	screen.Step = strconv.Itoa(q.Id)
	screen.QuestionId = q.Id
	screen.Title = q.Title
	screen.Subtitle = q.Subtitle
	screen.Note = q.Note
	screen.Type = q.Type.String()

	switch q.Type {
	case model.TEXT:
		if len(selected) > 0 {
			screen.Text = selected[0]
		}
		return screen
	case model.SEARCH:
		screen.Placeholder = SEARCH_PLACEHOLDER
		screen.Query = ctx.Query
	}
	screen.Options = make([]Option, 0, len(q.Options))
	for _, opt := range q.Options {
		if q.Type == model.SEARCH && !matches(opt.Label, ctx.Query) {
			continue
		}
		screen.Options = append(screen.Options, Option{
			Id:       opt.Id,
			Label:    opt.Label,
			Value:    opt.Value,
			Selected: slices.Contains(selected, opt.Value),
		})
	}
	return screen
}

func matches(label string, query string) bool {
	query = strings.TrimSpace(query)
	return query == "" || strings.Contains(strings.ToLower(label), strings.ToLower(query))
}
