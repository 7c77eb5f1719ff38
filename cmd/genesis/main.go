package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"agent-genesis/internal/di"
	"agent-genesis/internal/domain/entity"
	"agent-genesis/internal/infrastructure/env"
)

func main() {
	rootCmd := newRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "genesis",
		Short:        "Turn a natural-language request into a validated agent",
		SilenceUsage: true,
	}
	root.AddCommand(newBuildCommand())
	return root
}

func newBuildCommand() *cobra.Command {
	var (
		timeout     time.Duration
		artifactDir string
	)

	cmd := &cobra.Command{
		Use:   "build <instruction>",
		Short: "Build, vet and register an agent from an instruction",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			instruction := strings.Join(args, " ")
			envService := env.NewEnvService()

			container, err := di.NewContainer(di.Config{
				Provider:         envService.GetDefault("GENESIS_LLM_PROVIDER", "openrouter"),
				OpenRouterAPIKey: envService.Get("OPENROUTER_API_KEY"),
				OpenRouterModel:  envService.GetDefault("OPENROUTER_MODEL_NAME", "openai/gpt-4o-mini"),
				OllamaModel:      envService.GetDefault("OLLAMA_MODEL", "llama3"),
				OllamaServerURL:  envService.Get("OLLAMA_SERVER_URL"),
				ArtifactDir:      artifactDir,
			})
			if err != nil {
				return err
			}
			defer container.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			outcome, err := container.Builder.Build(ctx, instruction)
			if err != nil {
				var upstream *entity.UpstreamError
				if errors.As(err, &upstream) {
					return fmt.Errorf("build aborted by stage %q: %w", upstream.Stage, upstream.Err)
				}
				return err
			}

			return printOutcome(cmd, outcome)
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Minute, "overall build timeout")
	cmd.Flags().StringVar(&artifactDir, "artifact-dir", "agents", "directory for emitted agent artifacts")
	return cmd
}

func printOutcome(cmd *cobra.Command, outcome *entity.Outcome) error {
	switch outcome.Status {
	case entity.OutcomeAccepted:
		color.New(color.FgGreen, color.Bold).Fprintln(cmd.OutOrStdout(), "ACCEPTED")
	case entity.OutcomeEscalated:
		color.New(color.FgYellow, color.Bold).Fprintln(cmd.OutOrStdout(), "ESCALATED: human review required")
	case entity.OutcomeRejected:
		color.New(color.FgRed, color.Bold).Fprintln(cmd.OutOrStdout(), "REJECTED")
	}

	report := outcome.Report()
	data, err := yaml.Marshal(report)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))

	for _, a := range outcome.Attempts {
		fmt.Fprintf(cmd.OutOrStdout(), "attempt %d: accepted=%v avg=%.2f variance=%.3f mutation=%s\n",
			a.Index, a.Verdict.Accepted, a.Verdict.AverageScore, a.Verdict.Variance, a.Mutation)
	}
	return nil
}
