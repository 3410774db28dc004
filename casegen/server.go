package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/casegen/casegen/server/app"
	"github.com/casegen/casegen/server/conf"
	"github.com/casegen/casegen/server/modules/generator"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := conf.LoadConfig(configPath); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return app.Run(ctx)
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate <user story>",
	Short: "Generate test cases for a user story and print them as JSON",
	Example: `  casegen generate "As a user, I want to reset my password" --type negative --count 3
  casegen generate "As an admin, I want to export reports" --provider mock`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := newGenerator(cmd)
		if err != nil {
			return err
		}

		testType, _ := cmd.Flags().GetString("type")
		complexity, _ := cmd.Flags().GetString("complexity")
		count, _ := cmd.Flags().GetInt("count")

		ctx := cmd.Context()
		if timeout := conf.GetConfig().AI.Timeout.Duration; 0 < timeout {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		cases, err := g.Generate(ctx, args[0], testType, complexity, count)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(cases)
	},
}

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Print the configured provider and its models",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := newGenerator(cmd)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "provider: %v\n", g.Name())
		for _, m := range g.SupportedModels() {
			mark := " "
			if m == g.Model() {
				mark = "*"
			}
			fmt.Fprintf(out, "%v %v\n", mark, m)
		}
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{generateCmd, modelsCmd} {
		cmd.Flags().String("provider", "", "openai, huggingface, gemini or mock (default from config)")
		cmd.Flags().String("model", "", "model to use instead of the provider default")
	}
	generateCmd.Flags().StringP("type", "t", generator.TypeFunctional, "functional, edge or negative")
	generateCmd.Flags().String("complexity", generator.ComplexityMedium, "simple, medium or complex")
	generateCmd.Flags().IntP("count", "n", generator.DefaultCount, "number of test cases")
	generateCmd.Flags().Duration("delay", -1, "artificial delay of the mock provider (default from config)")
}

func newGenerator(cmd *cobra.Command) (generator.Generator, error) {
	if err := conf.LoadConfig(configPath); err != nil {
		return nil, err
	}
	cfg := conf.GetConfig()

	if p, _ := cmd.Flags().GetString("provider"); p != "" {
		cfg.AI.Provider = p
	}
	if f := cmd.Flags().Lookup("delay"); f != nil && f.Changed {
		d, _ := cmd.Flags().GetDuration("delay")
		cfg.AI.MockDelay.Duration = d
	}

	g, err := generator.New(cmd.Context(), cfg.AI)
	if err != nil {
		return nil, err
	}
	if m, _ := cmd.Flags().GetString("model"); m != "" {
		if err := g.SetModel(m); err != nil {
			return nil, err
		}
	}
	return g, nil
}
