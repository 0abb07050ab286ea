package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"assay/internal/narrative"
)

func narrateCmd() *cli.Command {
	return &cli.Command{
		Name:      "narrate",
		Usage:     "Analyze a repository and generate a prose narrative via an LLM",
		ArgsUsage: "[path]",
		Description: `Runs the full analysis, then sends the result to an OpenAI-compatible
API to generate a structured narrative: summary, strengths, risks,
and recommendations.

The API key is read from the environment variable named by the
narrative.api_key_env config setting (default OPENAI_API_KEY).`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "model",
				Usage: "Override the configured chat model",
			},
		},
		Action: runNarrateCmd,
	}
}

func runNarrateCmd(c *cli.Context) error {
	if c.Args().Len() > 1 {
		return cli.Exit("narrate accepts a single path", 2)
	}
	path := "."
	if c.Args().Len() == 1 {
		path = c.Args().First()
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	apiKey := os.Getenv(cfg.Narrative.APIKeyEnv)
	if apiKey == "" {
		return cli.Exit(fmt.Sprintf("narrative generation requires %s to be set", cfg.Narrative.APIKeyEnv), 2)
	}

	model := cfg.Narrative.Model
	if m := c.String("model"); m != "" {
		model = m
	}
	gen, err := narrative.NewOpenAI(apiKey, cfg.Narrative.BaseURL,
		narrative.WithModel(model),
		narrative.WithMaxTokens(cfg.Narrative.MaxTokens),
	)
	if err != nil {
		return err
	}

	result, err := analyzePath(c.Context, c, cfg, path)
	if err != nil {
		return fmt.Errorf("analyzing %s: %w", path, err)
	}

	n, err := gen.Generate(c.Context, result)
	if err != nil {
		return fmt.Errorf("generating narrative: %w", err)
	}

	printNarrative(n)
	return nil
}

func printNarrative(n *narrative.Narrative) {
	color.Cyan("Summary")
	fmt.Println(n.Summary)

	printBullets("Strengths", n.Strengths)
	printBullets("Risks", n.Risks)
	printBullets("Recommendations", n.Recommendations)
}

func printBullets(title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Println()
	color.Cyan(title)
	for _, item := range items {
		fmt.Printf("  - %s\n", item)
	}
}
