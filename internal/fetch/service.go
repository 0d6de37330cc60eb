package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/issuegloss/internal/annotate"
	"github.com/issuegloss/internal/youtrack"
)

// Vault is the document surface the pipeline reads and writes.
type Vault interface {
	ActiveFile() (string, bool)
	Read(name string) (string, error)
	Modify(name, text string) error
}

// Notifier surfaces user-facing notices. The duration is how long a host with
// timed notices keeps the message visible.
type Notifier interface {
	Notify(message string, d time.Duration)
}

// TitleResolver resolves an issue identifier to its title.
type TitleResolver interface {
	GetIssueTitle(ctx context.Context, id string) (string, error)
}

// Config holds the fetch service configuration
type Config struct {
	NoticeDuration      time.Duration
	ErrorNoticeDuration time.Duration
	DryRun              bool
	Out                 io.Writer
}

// Service represents the annotation pipeline over the active note
type Service struct {
	vault    Vault
	tracker  TitleResolver
	notifier Notifier
	config   Config
}

// NewService creates a new fetch service
func NewService(vault Vault, tracker TitleResolver, notifier Notifier, config Config) *Service {
	return &Service{
		vault:    vault,
		tracker:  tracker,
		notifier: notifier,
		config:   config,
	}
}

// Run executes one annotation pass over the active note. Lookup failures are
// surfaced as notices and never abort the pass; only host I/O failures return
// a non-nil error.
func (s *Service) Run(ctx context.Context) error {
	passID := uuid.New().String()
	logger := log.With().Str("pass_id", passID).Logger()

	name, ok := s.vault.ActiveFile()
	if !ok {
		logger.Debug().Msg("no active note")
		s.notifier.Notify("No active note to process.", s.config.NoticeDuration)
		return nil
	}
	logger.Info().Str("note", name).Msg("starting annotation pass")

	text, err := s.vault.Read(name)
	if err != nil {
		return fmt.Errorf("failed to read note: %w", err)
	}

	annotator := &annotate.Annotator{
		Resolve: s.resolveTitle(logger),
		Notify: func(message string) {
			s.notifier.Notify(message, s.config.NoticeDuration)
		},
	}

	res := annotator.Annotate(ctx, text)
	logger.Debug().Int("tokens", res.Tokens).Int("inserted", res.Inserted).Msg("annotation pass finished")

	if !res.Changed {
		s.notifier.Notify("No issues found or nothing to change.", s.config.NoticeDuration)
		return nil
	}

	if s.config.DryRun {
		out := s.config.Out
		if out == nil {
			out = os.Stdout
		}
		fmt.Fprintln(out, res.Text)
		s.notifier.Notify(fmt.Sprintf("Dry run: %d annotation(s) not written.", res.Inserted), s.config.NoticeDuration)
		return nil
	}

	if err := s.vault.Modify(name, res.Text); err != nil {
		return fmt.Errorf("failed to write note: %w", err)
	}
	logger.Info().Str("note", name).Int("inserted", res.Inserted).Msg("note updated")
	s.notifier.Notify(fmt.Sprintf("Inserted %d title(s) into %s.", res.Inserted, name), s.config.NoticeDuration)
	return nil
}

// resolveTitle adapts the tracker to the annotator's resolver and folds in
// the failure policy: a missing token short-circuits without any network call
// and inserts nothing, while any other lookup failure substitutes the
// not-found placeholder so the pass keeps going.
func (s *Service) resolveTitle(logger zerolog.Logger) annotate.Resolver {
	return func(ctx context.Context, id string) string {
		title, err := s.tracker.GetIssueTitle(ctx, id)
		if err != nil {
			if errors.Is(err, youtrack.ErrMissingToken) {
				logger.Warn().Msg("no API token configured")
				s.notifier.Notify("YouTrack API token is not configured.", s.config.ErrorNoticeDuration)
				return ""
			}
			logger.Error().Err(err).Str("issue", id).Msg("issue lookup failed")
			s.notifier.Notify(fmt.Sprintf("Failed to fetch %s: %v", id, err), s.config.ErrorNoticeDuration)
			return youtrack.NotFoundTitle
		}
		return title
	}
}
