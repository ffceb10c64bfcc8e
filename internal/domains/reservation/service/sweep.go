package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"

	"innkeep/internal/domains/reservation/model"
	"innkeep/internal/domains/reservation/state"
	"innkeep/shared/constant"
	"innkeep/shared/timezone"
)

// Sweep force-expires stays past their checkout date: every Booked or
// CheckedIn reservation whose check-out is today or earlier moves to
// CheckedOut and frees its room. Each reservation is handled
// independently; one failure never blocks the rest. Returns the number
// of reservations checked out.
func (s *serviceImpl) Sweep(ctx context.Context) (count int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Sweep")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.ensureLoaded(ctx); err != nil {
		return 0, err
	}

	today := timezone.Today()

	for _, res := range s.store.reservationList() {
		if !state.DueForCheckout(res, today) {
			continue
		}

		// Booked stays must pass through CheckedIn first
		if res.Status == model.StatusBooked {
			if _, stepErr := s.transition(ctx, res.ID, nil, model.StatusCheckedIn, model.ActionAutoCheckout); stepErr != nil {
				log.Error().Err(stepErr).Int64("reservation_id", res.ID).Msg("sweep failed to check in overdue stay")

				continue
			}
		}

		if _, stepErr := s.transition(ctx, res.ID, nil, model.StatusCheckedOut, model.ActionAutoCheckout); stepErr != nil {
			log.Error().Err(stepErr).Int64("reservation_id", res.ID).Msg("sweep failed to check out overdue stay")

			continue
		}

		count++
	}

	if count > 0 {
		log.Info().Int("count", count).Msg("auto-checkout sweep completed")
	}

	return count, nil
}

// StartSweep runs the sweep once immediately and then on the
// configured interval.
func (s *serviceImpl) StartSweep(ctx context.Context) error {
	if !s.cfg.Sweep.Enable {
		log.Info().Msg("auto-checkout sweep disabled")

		return nil
	}

	scheduler, err := gocron.NewScheduler(gocron.WithLocation(timezone.GetLocation()))
	if err != nil {
		return fmt.Errorf("failed to create sweep scheduler: %w", err)
	}

	interval := time.Duration(s.cfg.Sweep.IntervalSeconds) * time.Second
	if interval <= 0 {
		interval = time.Minute
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if _, sweepErr := s.Sweep(ctx); sweepErr != nil {
				log.Error().Err(sweepErr).Msg("auto-checkout sweep failed")
			}
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule sweep: %w", err)
	}

	s.scheduler = scheduler
	scheduler.Start()

	log.Info().Dur("interval", interval).Msg("auto-checkout sweep started")

	return nil
}

func (s *serviceImpl) StopSweep() {
	if s.scheduler == nil {
		return
	}

	if err := s.scheduler.Shutdown(); err != nil {
		log.Warn().Err(err).Msg("failed to shut down sweep scheduler")
	}
}
