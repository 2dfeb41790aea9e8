package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mohitkumar/onboarding/metadata"
	"github.com/mohitkumar/onboarding/model"
)

func TestWalkDefaultQuestionnaire(t *testing.T) {
	var out bytes.Buffer
	input := strings.Join([]string{
		"n",
		"2",
		"1",
		"2",
		"n",
		"/photo",
		"1",
		"n",
		"1",
		"n",
		"n",
	}, "\n")
	require.NoError(t, walk(metadata.Default(), model.PAGE, strings.NewReader(input), &out))

	text := out.String()
	require.Contains(t, text, "an answer is required")
	require.Contains(t, text, "Thank you for answering!")
	idx := strings.LastIndex(text, "{")
	var answers model.AnswerMap
	require.NoError(t, json.Unmarshal([]byte(text[idx:]), &answers))
	require.Equal(t, model.AnswerMap{1: {"sessions"}, 2: {"photo"}, 3: {"yes"}}, answers)
}

func TestWalkClose(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, walk(metadata.Default(), model.DIALOG, strings.NewReader("1\nq\n"), &out))
	require.Contains(t, out.String(), "closed")
	require.NotContains(t, out.String(), "Thank you")
}

func TestSetupConfigFromEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("ONBOARDING_HTTP_PORT=9191\nONBOARDING_SUBMISSION_STORE=sqlite\nONBOARDING_DATABASE_URL=/tmp/sub.db\n"), 0644))
	defer func() {
		for _, k := range []string{"ONBOARDING_HTTP_PORT", "ONBOARDING_SUBMISSION_STORE", "ONBOARDING_DATABASE_URL"} {
			os.Unsetenv(k)
		}
	}()

	c := &cli{}
	cmd, err := newCommand()
	require.NoError(t, err)
	require.NoError(t, cmd.Flags().Set("env-file", envFile))
	require.NoError(t, c.setupConfig(cmd, nil))
	require.Equal(t, 9191, c.cfg.HttpPort)
	require.Equal(t, "/tmp/sub.db", c.cfg.DatabaseURL)
	require.Equal(t, []string{"localhost:6379"}, c.cfg.RedisConfig.Addrs)
}
