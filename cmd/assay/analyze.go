package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"assay/internal/output"
	"assay/internal/progress"
	"assay/internal/vcs"
	"assay/pkg/analyzer"
	"assay/pkg/config"
	"assay/pkg/pipeline"
	"assay/pkg/report"
	"assay/pkg/snapshot"
)

func analyzeCmd() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Aliases:   []string{"run"},
		Usage:     "Analyze repositories and produce a scored report",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "exclude",
				Aliases: []string{"e"},
				Usage:   "Additional exclude patterns (repeatable)",
			},
			&cli.StringFlag{
				Name:  "git-ref",
				Usage: "Analyze a git revision (branch, tag, or hash) instead of the working tree",
			},
		},
		Action: runAnalyzeCmd,
	}
}

func runAnalyzeCmd(c *cli.Context) error {
	paths := getPaths(c)
	if c.String("git-ref") != "" && len(paths) > 1 {
		return cli.Exit("--git-ref accepts a single path", 2)
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	cfg.Exclude = append(cfg.Exclude, c.StringSlice("exclude")...)

	formatter, err := output.NewFormatter(resolveFormat(c, cfg), c.String("output"), true)
	if err != nil {
		return err
	}
	defer formatter.Close()

	for i, path := range paths {
		result, err := analyzePath(c.Context, c, cfg, path)
		if err != nil {
			return fmt.Errorf("analyzing %s: %w", path, err)
		}

		if len(paths) > 1 && formatter.Format() == output.FormatText {
			if i > 0 {
				fmt.Fprintln(formatter.Writer())
			}
			if formatter.Colored() {
				color.Cyan("== %s ==", path)
			} else {
				fmt.Fprintf(formatter.Writer(), "== %s ==\n", path)
			}
		}
		if err := formatter.Output(output.NewResultView(result)); err != nil {
			return err
		}
	}
	return nil
}

// analyzePath loads one repository snapshot and runs the full pipeline on it.
func analyzePath(ctx context.Context, c *cli.Context, cfg *config.Config, path string) (*report.AnalysisResult, error) {
	src, err := resolveSource(c, path)
	if err != nil {
		return nil, err
	}

	out := progressWriter(c)
	loadBar := progress.NewTracker(out, "loading", 0)
	snap, err := pipeline.Fetch(ctx, src,
		snapshot.WithIgnore(cfg.ShouldExclude),
		snapshot.WithMaxFileSize(cfg.MaxFileSize),
		snapshot.WithProgress(func(current, total int, path string) {
			loadBar.ChangeMax(total)
			loadBar.Tick()
		}),
	)
	if err != nil {
		loadBar.FinishError(err)
		return nil, err
	}
	loadBar.FinishSuccess()

	table := cfg.RuleTable()
	opts := []pipeline.Option{
		pipeline.WithRules(table),
		pipeline.WithQuality(cfg.QualityProvider(table)),
		pipeline.WithWeights(cfg.Weights),
		pipeline.WithLogger(newLogger(c.Bool("verbose"))),
	}

	runBar := progress.NewTracker(out, "analyzing", pipeline.Stages)
	opts = append(opts, pipeline.WithProgress(analyzer.NewTracker(func(current, total int, stage string) {
		runBar.Tick()
	})))

	orch := pipeline.New(opts...)
	defer orch.Close()

	result, err := orch.Run(ctx, snap)
	if err != nil {
		runBar.FinishError(err)
		return nil, err
	}
	runBar.FinishSuccess()
	return result, nil
}

// resolveSource picks the snapshot source: a git tree when --git-ref is
// set, the working directory otherwise.
func resolveSource(c *cli.Context, path string) (snapshot.ContentSource, error) {
	ref := c.String("git-ref")
	if ref == "" {
		return snapshot.NewFilesystem(path), nil
	}

	repo, err := vcs.DefaultOpener().PlainOpenWithDetect(path)
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	hash, err := repo.ResolveRevision(ref)
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", ref, err)
	}
	commit, err := repo.CommitObject(hash)
	if err != nil {
		return nil, fmt.Errorf("reading commit %s: %w", hash, err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("reading tree for %s: %w", hash, err)
	}
	return snapshot.NewTree(tree), nil
}

// resolveFormat gives the --format flag precedence over the config file.
func resolveFormat(c *cli.Context, cfg *config.Config) output.Format {
	if f := c.String("format"); f != "" {
		return output.ParseFormat(f)
	}
	return output.ParseFormat(cfg.Format)
}
