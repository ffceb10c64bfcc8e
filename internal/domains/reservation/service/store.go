package service

import (
	"sort"
	"sync"

	guestModel "innkeep/internal/domains/guest/model"
	"innkeep/internal/domains/reservation/model"
	roomModel "innkeep/internal/domains/room/model"
	staffModel "innkeep/internal/domains/staff/model"
)

// Snapshot is a point-in-time copy of the collections for pure
// consumers (metrics, availability).
type Snapshot struct {
	Reservations []model.Reservation
	Rooms        []roomModel.Room
	Payments     []model.PaymentRecord
}

// store owns the in-memory collections. Writes come from two places,
// the lifecycle paths and the realtime handlers, so access is guarded
// by a single RWMutex. Every reservation carries a version; a patch is
// only applied over a lower version, which keeps a stale optimistic
// write from clobbering an authoritative one.
type store struct {
	mu sync.RWMutex

	loaded       bool
	reservations map[int64]model.Reservation
	rooms        map[int64]roomModel.Room
	roomTypes    map[int64]roomModel.RoomType
	guests       map[int64]guestModel.Guest
	staff        map[int64]staffModel.Staff
	links        map[int64][]model.GuestLinkRecord
	payments     map[int64][]model.PaymentRecord
}

func newStore() *store {
	return &store{
		reservations: map[int64]model.Reservation{},
		rooms:        map[int64]roomModel.Room{},
		roomTypes:    map[int64]roomModel.RoomType{},
		guests:       map[int64]guestModel.Guest{},
		staff:        map[int64]staffModel.Staff{},
		links:        map[int64][]model.GuestLinkRecord{},
		payments:     map[int64][]model.PaymentRecord{},
	}
}

func (s *store) replaceAll(
	reservations map[int64]model.Reservation,
	rooms map[int64]roomModel.Room,
	roomTypes map[int64]roomModel.RoomType,
	guests map[int64]guestModel.Guest,
	staff map[int64]staffModel.Staff,
	links map[int64][]model.GuestLinkRecord,
	payments map[int64][]model.PaymentRecord,
) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// carry versions forward so in-flight patches stay ordered
	for id, res := range reservations {
		if prev, ok := s.reservations[id]; ok && prev.Version > res.Version {
			res.Version = prev.Version
			reservations[id] = res
		}
	}

	s.loaded = true
	s.reservations = reservations
	s.rooms = rooms
	s.roomTypes = roomTypes
	s.guests = guests
	s.staff = staff
	s.links = links
	s.payments = payments
}

func (s *store) isLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loaded
}

func (s *store) related() model.Related {
	return model.Related{
		Rooms:    s.rooms,
		Staff:    s.staff,
		Guests:   s.guests,
		Links:    s.links,
		Payments: s.payments,
	}
}

func (s *store) reservationList() []model.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]model.Reservation, 0, len(s.reservations))
	for _, res := range s.reservations {
		list = append(list, res)
	}

	// newest stay first, matching the front-desk listing
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CheckIn.Equal(list[j].CheckIn) {
			return list[i].CheckIn.After(list[j].CheckIn)
		}

		return list[i].ID > list[j].ID
	})

	return list
}

func (s *store) roomList() []roomModel.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]roomModel.Room, 0, len(s.rooms))
	for _, room := range s.rooms {
		list = append(list, roomModel.Resolve(room, s.roomTypes))
	}

	sort.Slice(list, func(i, j int) bool { return list[i].Number < list[j].Number })

	return list
}

func (s *store) paymentList() []model.PaymentRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]model.PaymentRecord, 0)
	for _, rows := range s.payments {
		list = append(list, rows...)
	}

	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })

	return list
}

func (s *store) snapshot() Snapshot {
	return Snapshot{
		Reservations: s.reservationList(),
		Rooms:        s.roomList(),
		Payments:     s.paymentList(),
	}
}

func (s *store) reservation(id int64) (model.Reservation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, ok := s.reservations[id]

	return res, ok
}

func (s *store) room(id int64) (roomModel.Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	room, ok := s.rooms[id]
	if !ok {
		return roomModel.Room{}, false
	}

	return roomModel.Resolve(room, s.roomTypes), true
}

func (s *store) roomType(id int64) (roomModel.RoomType, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	roomType, ok := s.roomTypes[id]

	return roomType, ok
}

// setStatus applies an optimistic status write (and optional staff
// assignment) to the in-memory row. The write only lands if the row's
// version still equals baseVersion, the version the caller read; an
// authoritative realtime patch arriving in between bumps the version
// and makes the stale write lose. Returns the updated copy.
func (s *store) setStatus(id int64, status string, staffID *int64, baseVersion uint64) (model.Reservation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, ok := s.reservations[id]
	if !ok || res.Version != baseVersion {
		return model.Reservation{}, false
	}

	res.Status = status
	if staffID != nil {
		res.StaffID = staffID
		if member, found := s.staff[*staffID]; found {
			res.Staff = &member
		}
	}

	res.Version++
	s.reservations[id] = res

	return res, true
}

// patchReservation applies an authoritative row patch from the change
// stream. Server state always wins, so the version is bumped past the
// current one rather than compared against the payload.
func (s *store) patchReservation(rec model.ReservationRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.reservations[rec.ID]
	if !ok {
		return false
	}

	res, err := model.FromWire(rec, s.related())
	if err != nil {
		return false
	}

	res.Version = current.Version + 1
	s.reservations[rec.ID] = res

	return true
}

func (s *store) patchRoomStatus(id int64, status string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[id]
	if !ok {
		return false
	}

	room.Status = status
	s.rooms[id] = room

	return true
}
