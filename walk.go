package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mohitkumar/onboarding/flow"
	"github.com/mohitkumar/onboarding/metadata"
	"github.com/mohitkumar/onboarding/model"
	"github.com/mohitkumar/onboarding/view"
)

const walkHelp = "number: toggle option, n: next, p: previous, /text: search, q: close"

func newWalkCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "walk",
		Short: "Answer a questionnaire in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := cmd.Flags().GetString("file")
			if err != nil {
				return err
			}
			variant, err := cmd.Flags().GetString("variant")
			if err != nil {
				return err
			}
			set := metadata.Default()
			if file != "" {
				loaded, err := metadata.LoadFile(file)
				if err != nil {
					return err
				}
				set = *loaded
			}
			return walk(set, model.ToVariant(variant), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().String("file", "", "question set file, defaults to the built-in signup questionnaire")
	cmd.Flags().String("variant", string(model.PAGE), "dialog or page")
	return cmd
}

// walk drives one flow from line based input until it completes, is closed
// or the input ends.
func walk(set model.QuestionSet, variant model.Variant, in io.Reader, out io.Writer) error {
	var answers model.AnswerMap
	host := flow.NewHost(set.Questions, func(a model.AnswerMap) {
		answers = a
	}, func() {
		fmt.Fprintln(out, "closed")
	})
	f := host.Open()
	query := ""
	scanner := bufio.NewScanner(in)
	fmt.Fprintln(out, walkHelp)
	for host.IsOpen() {
		screen := view.Render(view.Context{Questions: f.Questions(), State: f.Snapshot(), Variant: variant, Query: query})
		printScreen(out, screen)
		if screen.Kind == view.KIND_THANK_YOU {
			break
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "n":
			if !f.Advance() {
				fmt.Fprintln(out, "an answer is required")
			}
			query = ""
		case line == "p":
			f.Retreat()
			query = ""
		case line == "q":
			host.Close()
		case strings.HasPrefix(line, "/"):
			query = strings.TrimPrefix(line, "/")
		case screen.Type == model.TEXT.String():
			f.SelectOption(screen.QuestionId, line)
		default:
			idx, err := strconv.Atoi(line)
			if err != nil || idx < 1 || idx > len(screen.Options) {
				fmt.Fprintln(out, walkHelp)
				continue
			}
			f.SelectOption(screen.QuestionId, screen.Options[idx-1].Value)
		}
	}
	if answers == nil {
		return nil
	}
	res, err := json.MarshalIndent(answers, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(res))
	return nil
}

func printScreen(out io.Writer, screen view.Screen) {
	if screen.Kind == view.KIND_THANK_YOU {
		fmt.Fprintln(out, screen.Title)
		return
	}
	fmt.Fprintf(out, "\n[%d of %d, %.0f%%] %s. %s\n", screen.Position, screen.Total, screen.Progress, screen.Step, screen.Title)
	if screen.Subtitle != "" {
		fmt.Fprintln(out, screen.Subtitle)
	}
	if screen.Note != "" {
		fmt.Fprintln(out, screen.Note)
	}
	if screen.Type == model.TEXT.String() {
		fmt.Fprintf(out, "> %s\n", screen.Text)
		return
	}
	if screen.Placeholder != "" {
		fmt.Fprintf(out, "%s %s\n", screen.Placeholder, screen.Query)
	}
	for i, opt := range screen.Options {
		mark := " "
		if opt.Selected {
			mark = "x"
		}
		fmt.Fprintf(out, "  %d [%s] %s\n", i+1, mark, opt.Label)
	}
}
