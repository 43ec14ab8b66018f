package salutation

import (
	"context"
	"fmt"
	"time"

	"github.com/productioncity/salutation/internal/metrics"
	"github.com/productioncity/salutation/pkg/contacts"
	"github.com/productioncity/salutation/pkg/errors"
	"github.com/productioncity/salutation/pkg/reconcile"
)

// BackfillFailure identifies a contact the backfill could not update.
type BackfillFailure struct {
	ContactID string `json:"contact_id" yaml:"contact_id"`
	Error     string `json:"error" yaml:"error"`
}

// BackfillReport summarizes a backfill run.
type BackfillReport struct {
	Processed int               `json:"processed" yaml:"processed"`
	Updated   int               `json:"updated" yaml:"updated"`
	Skipped   int               `json:"skipped" yaml:"skipped"`
	Failed    int               `json:"failed" yaml:"failed"`
	Failures  []BackfillFailure `json:"failures,omitempty" yaml:"failures,omitempty"`
	Duration  time.Duration     `json:"duration" yaml:"duration"`
}

// Backfill walks every person and fills name parts that are blank and not
// pinned. Each contact is its own atomic unit; a failure, panics included,
// is logged and counted and the walk continues. Only failing to list the
// contacts, or a canceled context, aborts the run.
func (s *service) Backfill(ctx context.Context) (report BackfillReport, err error) {
	start := time.Now()
	defer func() {
		report.Duration = time.Since(start)
		s.metrics.ObserveBackfillDuration(report.Duration)
	}()

	s.logger.Info().Msg("Starting to update existing contacts")

	people, err := s.store.Search(ctx, contacts.Query{Category: contacts.Person})
	if err != nil {
		return report, fmt.Errorf("searching contacts: %w", err)
	}

	for _, p := range people {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Processed++

		log := s.logger.With().Str("contact_id", p.ID).Logger()
		log.Debug().Str("name", p.Name).Msg("Processing contact")

		updated, err := s.backfillOne(ctx, p.ID)
		switch {
		case err != nil:
			report.Failed++
			report.Failures = append(report.Failures, BackfillFailure{ContactID: p.ID, Error: err.Error()})
			s.metrics.IncrementBackfill(metrics.OutcomeFailed)
			log.Error().Err(err).Msg("Failed to update contact")
		case updated:
			report.Updated++
			s.metrics.IncrementBackfill(metrics.OutcomeUpdated)
			log.Info().Msg("Successfully updated contact")
		default:
			report.Skipped++
			s.metrics.IncrementBackfill(metrics.OutcomeSkipped)
			log.Debug().Msg("No updates needed")
		}
	}

	s.logger.Info().
		Int("processed", report.Processed).
		Int("updated", report.Updated).
		Int("skipped", report.Skipped).
		Int("failed", report.Failed).
		Msg("Completed updating existing contacts")
	return report, nil
}

func (s *service) backfillOne(ctx context.Context, id string) (updated bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			updated = false
			err = errors.NewBackfillError(id, fmt.Errorf("panic: %v", r))
		}
	}()

	var res reconcile.Result
	c, err := s.store.Atomic(ctx, id, func(_ context.Context, cur contacts.Contact) (contacts.Changes, error) {
		res = s.policy.Backfill(cur)
		if res.Changed() {
			s.logger.Debug().
				Str("contact_id", id).
				Strs("fields", res.Changes.Fields()).
				Msg("Updating contact with derived name parts")
		}
		return res.Changes, nil
	})
	if err != nil {
		return false, errors.NewBackfillError(id, err)
	}
	if !res.Changed() {
		return false, nil
	}

	s.observe(c, res)
	return true, nil
}
