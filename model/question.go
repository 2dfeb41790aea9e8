package model

import (
	"fmt"
	"strings"
)

type QuestionType int

const SINGLE QuestionType = 1
const MULTIPLE QuestionType = 2
const SEARCH QuestionType = 3
const TEXT QuestionType = 4

var questionTypeNames = map[QuestionType]string{
	SINGLE:   "single",
	MULTIPLE: "multiple",
	SEARCH:   "search",
	TEXT:     "text",
}

func ToQuestionType(name string) (QuestionType, error) {
	for qt, n := range questionTypeNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return qt, nil
		}
	}
	return 0, fmt.Errorf("invalid question type %q", name)
}

func (qt QuestionType) String() string {
	if n, ok := questionTypeNames[qt]; ok {
		return n
	}
	return fmt.Sprintf("QuestionType(%d)", int(qt))
}

func (qt QuestionType) Valid() bool {
	_, ok := questionTypeNames[qt]
	return ok
}

func (qt QuestionType) MarshalText() ([]byte, error) {
	if !qt.Valid() {
		return nil, fmt.Errorf("invalid question type %d", int(qt))
	}
	return []byte(qt.String()), nil
}

func (qt *QuestionType) UnmarshalText(text []byte) error {
	t, err := ToQuestionType(string(text))
	if err != nil {
		return err
	}
	*qt = t
	return nil
}

type Option struct {
	Id    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

type Question struct {
	Id       int          `json:"id" yaml:"id"`
	Title    string       `json:"title" yaml:"title"`
	Subtitle string       `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Note     string       `json:"note,omitempty" yaml:"note,omitempty"`
	Type     QuestionType `json:"type" yaml:"type"`
	Options  []Option     `json:"options,omitempty" yaml:"options,omitempty"`
	Required bool         `json:"required,omitempty" yaml:"required,omitempty"`
}

// QuestionSet is a named, ordered questionnaire. It is immutable once served.
type QuestionSet struct {
	Name      string     `json:"name" yaml:"name"`
	Questions []Question `json:"questions" yaml:"questions"`
}
