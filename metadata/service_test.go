package metadata

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mohitkumar/onboarding/model"
	"github.com/mohitkumar/onboarding/persistence/memory"
)

const teaSet = `
name: tea
questions:
  - id: 1
    title: Favourite tea?
    type: single
    required: true
    options:
      - {id: g, label: Green, value: green}
      - {id: b, label: Black, value: black}
  - id: 2
    title: Anything else?
    type: text
`

func TestDefaultQuestionSet(t *testing.T) {
	set := Default()
	require.Equal(t, DEFAULT_QUESTION_SET, set.Name)
	require.Len(t, set.Questions, 4)
	require.Equal(t, model.MULTIPLE, set.Questions[0].Type)
	require.True(t, set.Questions[0].Required)
	require.Equal(t, model.SEARCH, set.Questions[1].Type)
	require.NotEmpty(t, set.Questions[1].Note)
	require.Len(t, set.Questions[1].Options, 5)
	require.False(t, set.Questions[2].Required)
	require.Equal(t, "no", set.Questions[3].Options[1].Value)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tea.yml"), []byte(teaSet), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "coffee.json"), []byte(`{"name":"coffee","questions":[{"id":1,"title":"Beans?","type":"search","options":[{"id":"a","label":"Arabica","value":"arabica"}]}]}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignored"), 0644))

	sets, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, sets, 2)
	require.Equal(t, "coffee", sets[0].Name)
	require.Equal(t, model.SEARCH, sets[0].Questions[0].Type)
	require.Equal(t, "tea", sets[1].Name)
	require.Equal(t, model.TEXT, sets[1].Questions[1].Type)
}

func TestLoadFileRejectsInvalidSets(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"unknown_type.yaml": "name: x\nquestions:\n  - {id: 1, title: a, type: dropdown}\n",
		"duplicate.yaml":    "name: x\nquestions:\n  - {id: 1, title: a, type: text}\n  - {id: 1, title: b, type: text}\n",
		"unknown_key.json":  `{"name":"x","questions":[],"extra":true}`,
		"no_options.yaml":   "name: x\nquestions:\n  - {id: 1, title: a, type: single, required: true}\n",
		"set.toml":          "name = 'x'",
	} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		_, err := LoadFile(path)
		require.Error(t, err, name)
	}
}

func TestMetadataService(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tea.yaml"), []byte(teaSet), 0644))

	ctx := context.Background()
	svc := NewMetadataService(memory.NewQuestionSetStore())
	require.NoError(t, svc.LoadQuestionSets(ctx, dir))

	set, err := svc.GetQuestionSet(ctx, DEFAULT_QUESTION_SET)
	require.NoError(t, err)
	require.Len(t, set.Questions, 4)
	_, err = svc.GetQuestionSet(ctx, "tea")
	require.NoError(t, err)

	_, err = svc.GetQuestionSet(ctx, "coffee")
	require.ErrorIs(t, err, ErrQuestionSetNotFound)

	err = svc.SaveQuestionSet(ctx, model.QuestionSet{Name: "bad", Questions: []model.Question{{Id: 1, Title: "a"}}})
	require.ErrorIs(t, err, ErrInvalidQuestionSet)

	require.NoError(t, svc.DeleteQuestionSet(ctx, "tea"))
	_, err = svc.GetQuestionSet(ctx, "tea")
	require.ErrorIs(t, err, ErrQuestionSetNotFound)
}
