package main

import (
	"github.com/spf13/cobra"

	"github.com/zero-day-ai/graphqa/cmd/graphqa/internal"
	"github.com/zero-day-ai/graphqa/internal/graphrag"
)

// factsOutput is the JSON shape of `graphqa facts`.
type factsOutput struct {
	Question string          `json:"question"`
	Terms    []string        `json:"terms"`
	Facts    []graphrag.Fact `json:"facts"`
}

func newFactsCmd(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "facts QUESTION...",
		Short: "Print the facts retrieved for a question without answering it",
		Args:  cobra.MinimumNArgs(1),
		RunE:  env.runFacts,
	}
}

func (e *environment) runFacts(cmd *cobra.Command, args []string) error {
	a, err := e.buildRetrieval(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := withQueryTimeout(cmd.Context(), e.cfg.Query.Timeout)
	defer cancel()

	q := question(args)
	facts, err := a.source.Retrieve(ctx, q)
	if err != nil {
		return err
	}

	if e.format == internal.FormatJSON {
		return e.formatter(cmd).PrintValue(factsOutput{
			Question: q,
			Terms:    graphrag.ExtractTerms(q),
			Facts:    facts,
		})
	}

	if len(facts) == 0 {
		if !e.flags.Quiet {
			cmd.PrintErrln("No facts found for", q)
		}
		return nil
	}
	lines := make([]string, len(facts))
	for i, f := range facts {
		lines[i] = f.Text
	}
	return e.formatter(cmd).PrintLines(lines)
}
