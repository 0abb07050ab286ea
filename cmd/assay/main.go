package main

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"assay/pkg/config"
)

var (
	version = "dev"
	commit  = "none"    //nolint:unused // set via ldflags at build time
	date    = "unknown" //nolint:unused // set via ldflags at build time
)

// getPaths returns paths from positional args, defaulting to ["."]
func getPaths(c *cli.Context) []string {
	if c.Args().Len() > 0 {
		return c.Args().Slice()
	}
	return []string{"."}
}

// loadConfig resolves the effective configuration: an explicit --config
// path wins, otherwise known config file names are searched.
func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.Load(path)
	}
	return config.LoadOrDefault(), nil
}

// newLogger builds the CLI logger. Analyzer degradation warnings stay on
// stderr so they never corrupt JSON or TOON output on stdout.
func newLogger(verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}

// progressWriter returns where progress bars draw, or io.Discard when the
// user disabled them.
func progressWriter(c *cli.Context) io.Writer {
	if c.Bool("no-progress") {
		return io.Discard
	}
	return os.Stderr
}

func main() {
	app := &cli.App{
		Name:    "assay",
		Usage:   "Repository analysis CLI",
		Version: version,
		Description: `Assay analyzes repositories for technology stack, dependency health,
README quality, project structure, security and performance findings,
technical debt, and produces a calibrated 0-100 score.

Analysis is deterministic: the same repository content always yields
the same result.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (TOML, YAML, or JSON)",
				EnvVars: []string{"ASSAY_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, json, markdown, toon",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write output to file",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose output",
			},
			&cli.BoolFlag{
				Name:  "no-progress",
				Usage: "Disable progress bars",
			},
		},
		Commands: []*cli.Command{
			analyzeCmd(),
			narrateCmd(),
			mcpCmd(),
			rulesCmd(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}
