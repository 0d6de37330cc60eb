package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/issuegloss/internal/config"
	"github.com/issuegloss/internal/fetch"
	"github.com/issuegloss/internal/logging"
	"github.com/issuegloss/internal/notify"
	"github.com/issuegloss/internal/vault"
	"github.com/issuegloss/internal/youtrack"
)

// FetchCommand returns the fetch command
func FetchCommand() *cli.Command {
	return &cli.Command{
		Name:  "fetch",
		Usage: "Fetch issue details and annotate a note with their titles",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"d"},
				Usage:   "Print the annotated note without writing it",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable verbose output for this command",
			},
		},
		ArgsUsage: "[NOTE]",
		Action:    runFetch,
	}
}

func runFetch(c *cli.Context) error {
	logging.Setup(c.Bool("verbose"))

	// Load configuration
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	v, err := vault.New(cfg.Vault.Path)
	if err != nil {
		return fmt.Errorf("failed to open vault: %w", err)
	}

	// First-run convenience: make sure the sample note exists
	created, err := v.EnsureSampleNote()
	if err != nil {
		log.Warn().Err(err).Msg("could not create sample note")
	} else if created {
		fmt.Printf("Created %s in %s\n", vault.SampleNoteName, v.Root())
	}

	if c.NArg() > 0 {
		if err := v.SetActive(c.Args().Get(0)); err != nil {
			return fmt.Errorf("failed to select note: %w", err)
		}
	}

	tracker := youtrack.NewClient(youtrack.Config{
		Host:  cfg.Tracker.Host,
		Token: cfg.Tracker.Token,
	})

	service := fetch.NewService(v, tracker, notify.NewConsole(nil), fetch.Config{
		NoticeDuration:      cfg.NoticeDuration(),
		ErrorNoticeDuration: cfg.ErrorNoticeDuration(),
		DryRun:              c.Bool("dry-run"),
	})

	return service.Run(context.Background())
}
