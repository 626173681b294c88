package main

import (
	"context"
	"sort"

	"github.com/spf13/cobra"

	"github.com/zero-day-ai/graphqa/cmd/graphqa/internal"
	"github.com/zero-day-ai/graphqa/internal/llm/providers"
	"github.com/zero-day-ai/graphqa/internal/types"
)

// healthOutput is the JSON shape of `graphqa health`.
type healthOutput struct {
	Status     types.HealthStatus            `json:"status"`
	Components map[string]types.HealthStatus `json:"components"`
}

func newHealthCmd(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the knowledge graph and completion backend",
		Long: `Connect to the knowledge graph and ping the completion backend, then
report the state of each. The command exits non-zero when any component is
unhealthy.`,
		Args: cobra.NoArgs,
		RunE: env.runHealth,
	}
}

func (e *environment) runHealth(cmd *cobra.Command, args []string) error {
	ctx, cancel := withQueryTimeout(cmd.Context(), e.cfg.Query.Timeout)
	defer cancel()

	components := map[string]types.HealthStatus{
		"graph": e.graphHealth(ctx),
		"llm":   e.providerHealth(ctx),
	}
	overall := types.Combine(components)

	if e.format == internal.FormatJSON {
		if err := e.formatter(cmd).PrintValue(healthOutput{Status: overall, Components: components}); err != nil {
			return err
		}
	} else {
		names := make([]string, 0, len(components))
		for name := range components {
			names = append(names, name)
		}
		sort.Strings(names)

		rows := make([][]string, 0, len(names))
		for _, name := range names {
			s := components[name]
			rows = append(rows, []string{name, s.State.String(), s.Message})
		}
		if err := e.formatter(cmd).PrintTable([]string{"component", "state", "message"}, rows); err != nil {
			return err
		}
	}

	if overall.State == types.HealthStateUnhealthy {
		return internal.NewCLIError(internal.ExitError, "One or more components are unhealthy")
	}
	return nil
}

func (e *environment) graphHealth(ctx context.Context) types.HealthStatus {
	client, err := e.newGraphClient(e.cfg.Graph.ClientConfig())
	if err != nil {
		return types.Unhealthy("invalid configuration: " + err.Error())
	}
	if err := client.Connect(ctx); err != nil {
		return types.Unhealthy("connect failed: " + err.Error())
	}
	defer func() {
		if err := client.Close(context.WithoutCancel(ctx)); err != nil {
			e.logger.Warn("failed to close graph client", "error", err)
		}
	}()
	return client.Health(ctx)
}

func (e *environment) providerHealth(ctx context.Context) types.HealthStatus {
	provider, err := providers.NewProvider(e.cfg.LLM.ProviderConfig())
	if err != nil {
		return types.Unhealthy("invalid configuration: " + err.Error())
	}
	return provider.Health(ctx)
}
