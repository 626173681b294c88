package main

import (
	"github.com/spf13/cobra"

	"github.com/zero-day-ai/graphqa/cmd/graphqa/internal"
)

func newAskCmd(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "ask QUESTION...",
		Short: "Answer one question from the knowledge graph",
		Long: `Answer one question. The words of QUESTION are joined with spaces, the
matching facts are retrieved from the graph and the configured language
model answers from those facts only.

With --output json the answer is printed together with the facts it was
grounded on.`,
		Example: `  graphqa ask What is Paris the capital of?
  graphqa ask -o json "Who founded Tesla?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: env.runAsk,
	}
}

func (e *environment) runAsk(cmd *cobra.Command, args []string) error {
	a, err := e.buildApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := withQueryTimeout(cmd.Context(), e.cfg.Query.Timeout)
	defer cancel()

	result, err := a.pipeline.Ask(ctx, question(args))
	if err != nil {
		return err
	}

	if e.format == internal.FormatJSON {
		return e.formatter(cmd).PrintValue(result)
	}
	return e.formatter(cmd).PrintLines([]string{result.Answer})
}
