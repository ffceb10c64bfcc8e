package service

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"innkeep/infras/realtime"
	"innkeep/internal/domains/reservation/model"
	roomModel "innkeep/internal/domains/room/model"
)

// Bind subscribes the lifecycle manager to the room and reservation
// change streams. Pushed state is server-authoritative: an incoming
// patch always replaces the local row, whatever optimistic write may
// be in flight.
func (s *serviceImpl) Bind(rt realtime.Realtime) {
	rt.Subscribe(roomModel.TableName, s.onRoomEvent)
	rt.Subscribe(model.TableName, s.onReservationEvent)
}

func (s *serviceImpl) onRoomEvent(event realtime.Event) {
	if event.Type != realtime.EventUpdate {
		return
	}

	var rec roomModel.Room
	if err := json.Unmarshal(event.New, &rec); err != nil {
		log.Warn().Err(err).Msg("unreadable room change payload")

		return
	}

	if !s.store.patchRoomStatus(rec.ID, rec.Status) {
		log.Debug().Int64("room_id", rec.ID).Msg("room change for unknown row ignored")
	}
}

func (s *serviceImpl) onReservationEvent(event realtime.Event) {
	switch event.Type {
	case realtime.EventInsert:
		// a fresh row's relations cannot be assembled from the payload
		if err := s.Refresh(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to refresh after reservation insert")
		}
	case realtime.EventUpdate:
		var rec model.ReservationRecord
		if err := json.Unmarshal(event.New, &rec); err != nil {
			log.Warn().Err(err).Msg("unreadable reservation change payload")

			return
		}

		if !s.store.patchReservation(rec) {
			// unknown row, treat like an insert
			if err := s.Refresh(context.Background()); err != nil {
				log.Error().Err(err).Msg("failed to refresh after reservation change")
			}
		}
	case realtime.EventDelete:
		// reservations are never destroyed, only soft-terminal
	}
}
