package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"

	"innkeep/config"
	"innkeep/infras/otel"
	"innkeep/infras/realtime"
	guestModel "innkeep/internal/domains/guest/model"
	guestRepo "innkeep/internal/domains/guest/repository"
	"innkeep/internal/domains/reservation/model"
	"innkeep/internal/domains/reservation/model/dto"
	"innkeep/internal/domains/reservation/repository"
	"innkeep/internal/domains/reservation/state"
	roomModel "innkeep/internal/domains/room/model"
	roomRepo "innkeep/internal/domains/room/repository"
	staffModel "innkeep/internal/domains/staff/model"
	staffRepo "innkeep/internal/domains/staff/repository"
	"innkeep/shared"
	"innkeep/shared/cache"
	"innkeep/shared/constant"
	gDto "innkeep/shared/dto"
	"innkeep/shared/failure"
	"innkeep/shared/timezone"
)

const cacheRoomTypes = "roomtype:all"

// Reservation is the lifecycle manager. It is the sole owner of the
// in-memory reservation and room collections; the room and metrics
// services read through it.
type Reservation interface {
	Refresh(ctx context.Context) error
	List(ctx context.Context) ([]dto.ReservationResponse, error)
	MyBookings(ctx context.Context, email string) ([]dto.ReservationResponse, error)
	Get(ctx context.Context, id int64) (dto.ReservationResponse, error)
	Create(ctx context.Context, guestEmail string, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	CreateWalkIn(ctx context.Context, staffID int64, req dto.WalkInReservationRequest) (dto.ReservationResponse, error)
	UpdateStatus(ctx context.Context, id int64, staffID *int64, req dto.UpdateStatusRequest) (dto.ReservationResponse, error)
	CheckAvailability(ctx context.Context, req dto.AvailabilityRequest) (dto.AvailabilityResponse, error)
	UnavailableDates(ctx context.Context, roomID int64) ([]dto.UnavailableDateResponse, error)

	Sweep(ctx context.Context) (int, error)
	StartSweep(ctx context.Context) error
	StopSweep()

	Bind(rt realtime.Realtime)

	Snapshot(ctx context.Context) (Snapshot, error)
	Rooms(ctx context.Context) ([]roomModel.Room, error)
	Room(ctx context.Context, id int64) (roomModel.Room, error)
	RoomTypes(ctx context.Context) ([]roomModel.RoomType, error)
	HasBlockingStay(ctx context.Context, roomID int64) (bool, error)
	ApplyRoomStatus(id int64, status string)
}

type serviceImpl struct {
	repo      repository.Reservation
	roomRepo  roomRepo.Room
	guestRepo guestRepo.Guest
	staffRepo staffRepo.Staff
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel

	store     *store
	scheduler gocron.Scheduler
}

func New(
	repo repository.Reservation,
	roomRepo roomRepo.Room,
	guestRepo guestRepo.Guest,
	staffRepo staffRepo.Staff,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Reservation {
	return &serviceImpl{
		repo:      repo,
		roomRepo:  roomRepo,
		guestRepo: guestRepo,
		staffRepo: staffRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		store:     newStore(),
	}
}

// Refresh re-fetches every collection wholesale and replaces the
// in-memory state. Used after any write whose server-assigned fields
// cannot be assembled locally, and on reservation inserts pushed by
// the change stream.
func (s *serviceImpl) Refresh(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Refresh")
	defer scope.End()
	defer scope.TraceIfError(err)

	records, err := s.repo.GetAll(ctx, gDto.FilterGroup{})
	if err != nil {
		return fmt.Errorf("failed to fetch reservations: %w", err)
	}

	rooms, err := s.roomRepo.GetAll(ctx, gDto.FilterGroup{})
	if err != nil {
		return fmt.Errorf("failed to fetch rooms: %w", err)
	}

	roomTypes, err := s.fetchRoomTypes(ctx)
	if err != nil {
		return err
	}

	links, err := s.repo.GetAllGuestLinks(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch reservation guests: %w", err)
	}

	payments, err := s.repo.GetAllPayments(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch payments: %w", err)
	}

	guests, err := s.fetchGuests(ctx, links)
	if err != nil {
		return err
	}

	staff, err := s.fetchStaff(ctx)
	if err != nil {
		return err
	}

	roomIndex := model.IndexRooms(rooms)
	typeIndex := roomModel.IndexTypes(roomTypes)
	linkIndex := model.IndexLinks(links)
	paymentIndex := model.IndexPayments(payments)

	rel := model.Related{
		Rooms:    roomIndex,
		Staff:    staff,
		Guests:   guests,
		Links:    linkIndex,
		Payments: paymentIndex,
	}

	reservations := make(map[int64]model.Reservation, len(records))

	for _, rec := range records {
		res, mapErr := model.FromWire(rec, rel)
		if mapErr != nil {
			log.Warn().Err(mapErr).Int64("reservation_id", rec.ID).Msg("skipping unmappable reservation row")

			continue
		}

		reservations[res.ID] = res
	}

	s.store.replaceAll(reservations, roomIndex, typeIndex, guests, staff, linkIndex, paymentIndex)

	return nil
}

// ensureLoaded lazily performs the initial full fetch.
func (s *serviceImpl) ensureLoaded(ctx context.Context) error {
	if s.store.isLoaded() {
		return nil
	}

	return s.Refresh(ctx)
}

func (s *serviceImpl) fetchRoomTypes(ctx context.Context) ([]roomModel.RoomType, error) {
	key := shared.BuildCacheKey(cacheRoomTypes)

	var cached []roomModel.RoomType
	if err := s.cache.Get(ctx, key, &cached); err == nil && len(cached) > 0 {
		return cached, nil
	}

	roomTypes, err := s.roomRepo.GetAllTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch room types: %w", err)
	}

	if err := s.cache.Save(ctx, key, roomTypes, s.cfg.Cache.TTL); err != nil {
		log.Warn().Err(err).Msg("failed to cache room types")
	}

	return roomTypes, nil
}

// fetchGuests resolves every guest referenced by a reservation link.
// The guest table read is a single unfiltered fetch; the collection is
// small and the links need arbitrary ids.
func (s *serviceImpl) fetchGuests(ctx context.Context, links []model.GuestLinkRecord) (map[int64]guestModel.Guest, error) {
	guests := make(map[int64]guestModel.Guest)

	seen := map[int64]bool{}
	for _, link := range links {
		if seen[link.GuestID] {
			continue
		}

		seen[link.GuestID] = true

		guest, err := s.guestRepo.ResolveByID(ctx, link.GuestID)
		if err != nil {
			if failure.GetCode(err) == http.StatusNotFound {
				continue
			}

			return nil, fmt.Errorf("failed to fetch guest %d: %w", link.GuestID, err)
		}

		guests[guest.ID] = guest
	}

	return guests, nil
}

func (s *serviceImpl) fetchStaff(ctx context.Context) (map[int64]staffModel.Staff, error) {
	rows, err := s.staffRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staff: %w", err)
	}

	staff := make(map[int64]staffModel.Staff, len(rows))
	for _, member := range rows {
		staff[member.ID] = member
	}

	return staff, nil
}

func (s *serviceImpl) List(ctx context.Context) (res []dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	return s.responses(s.store.reservationList()), nil
}

// MyBookings returns the reservations where the signed-in guest is a
// linked occupant.
func (s *serviceImpl) MyBookings(ctx context.Context, email string) (res []dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MyBookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	if email == constant.Empty {
		return nil, failure.ErrNotSignedIn
	}

	if err = s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	mine := make([]model.Reservation, 0)

	for _, reservation := range s.store.reservationList() {
		for _, link := range reservation.Guests {
			if link.Guest.Email == email {
				mine = append(mine, reservation)

				break
			}
		}
	}

	return s.responses(mine), nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.ensureLoaded(ctx); err != nil {
		return dto.ReservationResponse{}, err
	}

	reservation, ok := s.store.reservation(id)
	if !ok {
		return dto.ReservationResponse{}, failure.NotFound(model.EntityName)
	}

	return s.response(reservation), nil
}

func (s *serviceImpl) CheckAvailability(ctx context.Context, req dto.AvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	checkIn, err := model.ParseDate(req.CheckIn)
	if err != nil {
		return dto.AvailabilityResponse{}, failure.BadRequestFromString("invalid check-in date")
	}

	checkOut, err := model.ParseDate(req.CheckOut)
	if err != nil {
		return dto.AvailabilityResponse{}, failure.BadRequestFromString("invalid check-out date")
	}

	if err = s.ensureLoaded(ctx); err != nil {
		return dto.AvailabilityResponse{}, err
	}

	available, err := s.available(ctx, req.RoomID, checkIn, checkOut)
	if err != nil {
		return dto.AvailabilityResponse{}, err
	}

	return dto.AvailabilityResponse{RoomID: req.RoomID, Available: available}, nil
}

// available layers the room-level Maintenance override on top of the
// date-conflict scan.
func (s *serviceImpl) available(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (bool, error) {
	room, ok := s.store.room(roomID)
	if !ok {
		return false, failure.NotFound(roomModel.EntityName)
	}

	if room.Status == roomModel.StatusMaintenance {
		return false, nil
	}

	return state.IsAvailable(s.store.reservationList(), roomID, checkIn, checkOut), nil
}

func (s *serviceImpl) UnavailableDates(ctx context.Context, roomID int64) (res []dto.UnavailableDateResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UnavailableDates")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	dates := state.UnavailableDates(s.store.reservationList(), roomID)

	res = make([]dto.UnavailableDateResponse, 0, len(dates))
	for _, day := range dates {
		severity := "booked"
		if day.Pending {
			severity = "pending"
		}

		res = append(res, dto.UnavailableDateResponse{
			Date:     model.FormatDate(day.Date),
			Severity: severity,
		})
	}

	return res, nil
}

func (s *serviceImpl) Snapshot(ctx context.Context) (Snapshot, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return Snapshot{}, err
	}

	return s.store.snapshot(), nil
}

func (s *serviceImpl) Rooms(ctx context.Context) ([]roomModel.Room, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	return s.store.roomList(), nil
}

func (s *serviceImpl) Room(ctx context.Context, id int64) (roomModel.Room, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return roomModel.Room{}, err
	}

	room, ok := s.store.room(id)
	if !ok {
		return roomModel.Room{}, failure.NotFound(roomModel.EntityName)
	}

	return room, nil
}

func (s *serviceImpl) RoomTypes(ctx context.Context) ([]roomModel.RoomType, error) {
	return s.fetchRoomTypes(ctx)
}

// HasBlockingStay reports whether a non-terminal reservation covers
// today on the room, which blocks manual status overrides.
func (s *serviceImpl) HasBlockingStay(ctx context.Context, roomID int64) (bool, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return false, err
	}

	today := timezone.Today()

	for _, res := range s.store.reservationList() {
		if res.RoomID != roomID || model.Terminal(res.Status) {
			continue
		}

		if !res.CheckIn.After(today) && res.CheckOut.After(today) {
			return true, nil
		}
	}

	return false, nil
}

// ApplyRoomStatus patches the in-memory room after an external write.
func (s *serviceImpl) ApplyRoomStatus(id int64, status string) {
	s.store.patchRoomStatus(id, status)
}

func (s *serviceImpl) responses(reservations []model.Reservation) []dto.ReservationResponse {
	res := make([]dto.ReservationResponse, 0, len(reservations))
	for _, reservation := range reservations {
		res = append(res, s.response(reservation))
	}

	return res
}

func (s *serviceImpl) response(reservation model.Reservation) dto.ReservationResponse {
	return dto.NewReservationResponse(reservation, state.Nights(reservation.CheckIn, reservation.CheckOut))
}
