package metadata

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mohitkumar/onboarding/flow"
	"github.com/mohitkumar/onboarding/model"
)

//go:embed sets/signup.yaml
var defaultSet []byte

const DEFAULT_QUESTION_SET string = "signup"

// Default returns the built-in signup questionnaire.
func Default() model.QuestionSet {
	set, err := decode(defaultSet, ".yaml")
	if err != nil {
		panic(fmt.Sprintf("invalid default question set: %v", err))
	}
	return *set
}

// LoadFile reads a question set from a yaml or json file and validates it.
func LoadFile(path string) (*model.QuestionSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	set, err := decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// LoadDir loads every .yaml, .yml and .json file in dir, sorted by file name.
func LoadDir(dir string) ([]model.QuestionSet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var sets []model.QuestionSet
	seen := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || !isSetFile(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		set, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		if other, ok := seen[set.Name]; ok {
			return nil, fmt.Errorf("question set %s defined in both %s and %s", set.Name, other, path)
		}
		seen[set.Name] = path
		sets = append(sets, *set)
	}
	return sets, nil
}

func isSetFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

func decode(data []byte, ext string) (*model.QuestionSet, error) {
	var set model.QuestionSet
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&set); err != nil {
			return nil, err
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&set); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported question set format %q", ext)
	}
	if err := flow.Validate(&set); err != nil {
		return nil, err
	}
	return &set, nil
}
