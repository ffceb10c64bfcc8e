package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"innkeep/config"
	"innkeep/infras/otel/mocks"
	guestMocks "innkeep/internal/domains/guest/mocks"
	guestModel "innkeep/internal/domains/guest/model"
	guestDto "innkeep/internal/domains/guest/model/dto"
	resMocks "innkeep/internal/domains/reservation/mocks"
	"innkeep/internal/domains/reservation/model"
	"innkeep/internal/domains/reservation/model/dto"
	"innkeep/internal/domains/reservation/repository"
	"innkeep/internal/domains/reservation/service"
	roomMocks "innkeep/internal/domains/room/mocks"
	roomModel "innkeep/internal/domains/room/model"
	staffMocks "innkeep/internal/domains/staff/mocks"
	staffModel "innkeep/internal/domains/staff/model"
	cacheMocks "innkeep/shared/cache/mocks"
	"innkeep/shared/failure"
	"innkeep/shared/timezone"
)

// fixture simulates the backend's collections; the mocked repositories
// read and append to these slices so a refresh always observes the
// effects of earlier writes.
type fixture struct {
	repo      *resMocks.MockReservation
	roomRepo  *roomMocks.MockRoom
	guestRepo *guestMocks.MockGuest
	staffRepo *staffMocks.MockStaff

	records  []model.ReservationRecord
	rooms    []roomModel.Room
	types    []roomModel.RoomType
	links    []model.GuestLinkRecord
	payments []model.PaymentRecord
	guests   map[int64]guestModel.Guest
	staff    []staffModel.Staff
	logs     []model.LogRecord

	nextID int64

	svc service.Reservation
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &fixture{
		repo:      resMocks.NewMockReservation(ctrl),
		roomRepo:  roomMocks.NewMockRoom(ctrl),
		guestRepo: guestMocks.NewMockGuest(ctrl),
		staffRepo: staffMocks.NewMockStaff(ctrl),
		guests:    map[int64]guestModel.Guest{},
		nextID:    100,
	}

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ any) ([]model.ReservationRecord, error) {
			return append([]model.ReservationRecord(nil), f.records...), nil
		}).AnyTimes()
	f.repo.EXPECT().GetAllGuestLinks(gomock.Any()).
		DoAndReturn(func(_ context.Context) ([]model.GuestLinkRecord, error) {
			return append([]model.GuestLinkRecord(nil), f.links...), nil
		}).AnyTimes()
	f.repo.EXPECT().GetAllPayments(gomock.Any()).
		DoAndReturn(func(_ context.Context) ([]model.PaymentRecord, error) {
			return append([]model.PaymentRecord(nil), f.payments...), nil
		}).AnyTimes()

	f.roomRepo.EXPECT().GetAll(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ any) ([]roomModel.Room, error) {
			return append([]roomModel.Room(nil), f.rooms...), nil
		}).AnyTimes()
	f.roomRepo.EXPECT().GetAllTypes(gomock.Any()).
		DoAndReturn(func(_ context.Context) ([]roomModel.RoomType, error) {
			return append([]roomModel.RoomType(nil), f.types...), nil
		}).AnyTimes()

	f.guestRepo.EXPECT().ResolveByID(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id int64) (guestModel.Guest, error) {
			guest, ok := f.guests[id]
			if !ok {
				return guestModel.Guest{}, failure.NotFound("guest")
			}

			return guest, nil
		}).AnyTimes()

	f.staffRepo.EXPECT().GetAll(gomock.Any()).
		DoAndReturn(func(_ context.Context) ([]staffModel.Staff, error) {
			return append([]staffModel.Staff(nil), f.staff...), nil
		}).AnyTimes()

	f.svc = service.New(f.repo, f.roomRepo, f.guestRepo, f.staffRepo, &config.Config{}, mockCache, mocks.NewOtel())

	return f
}

// expectWrites wires the mutation paths to mutate the fixture's
// simulated backend.
func (f *fixture) expectWrites() {
	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, row repository.NewReservation) (model.ReservationRecord, error) {
			f.nextID++
			rec := model.ReservationRecord{
				ID:          f.nextID,
				RoomID:      row.RoomID,
				StaffID:     row.StaffID,
				CheckIn:     row.CheckIn,
				CheckOut:    row.CheckOut,
				Status:      row.Status,
				TotalAmount: row.TotalAmount,
			}
			f.records = append(f.records, rec)

			return rec, nil
		}).AnyTimes()

	f.repo.EXPECT().InsertGuestLink(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, row repository.NewGuestLink) error {
			f.links = append(f.links, model.GuestLinkRecord{
				ID:            int64(len(f.links) + 1),
				ReservationID: row.ReservationID,
				GuestID:       row.GuestID,
				GuestType:     row.GuestType,
			})

			return nil
		}).AnyTimes()

	f.repo.EXPECT().InsertPayment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, row repository.NewPayment) error {
			f.payments = append(f.payments, model.PaymentRecord{
				ID:            int64(len(f.payments) + 1),
				ReservationID: row.ReservationID,
				Amount:        row.Amount,
				Method:        row.Method,
				Status:        row.Status,
			})

			return nil
		}).AnyTimes()

	f.repo.EXPECT().InsertLog(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, row model.LogRecord) error {
			f.logs = append(f.logs, row)

			return nil
		}).AnyTimes()

	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id int64, patch map[string]any) error {
			for i, rec := range f.records {
				if rec.ID != id {
					continue
				}

				if status, ok := patch[model.FieldStatus].(string); ok {
					f.records[i].Status = status
				}

				if staffID, ok := patch[model.FieldStaffID].(int64); ok {
					f.records[i].StaffID = &staffID
				}
			}

			return nil
		}).AnyTimes()

	f.roomRepo.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id int64, status string) error {
			for i, room := range f.rooms {
				if room.ID == id {
					f.rooms[i].Status = status
				}
			}

			return nil
		}).AnyTimes()
}

func (f *fixture) addRoom(id int64, number string, rate float64) {
	typeID := int64(1)
	if len(f.types) == 0 {
		f.types = append(f.types, roomModel.RoomType{ID: typeID, Name: "Single", BaseRate: rate})
	}

	f.rooms = append(f.rooms, roomModel.Room{ID: id, Number: number, RoomTypeID: typeID, Status: roomModel.StatusAvailable})
}

func (f *fixture) addGuest(id int64, email string) {
	f.guests[id] = guestModel.Guest{ID: id, FirstName: "Maria", LastName: "Santos", Email: email}
}

func day(offset int) string {
	return model.FormatDate(timezone.Today().AddDate(0, 0, offset))
}

func TestReservationService_Create(t *testing.T) {
	f := newFixture(t)
	f.expectWrites()
	f.addRoom(101, "101", 1200)
	f.addGuest(42, "maria@example.com")

	f.guestRepo.EXPECT().ResolveByEmail(gomock.Any(), "maria@example.com").
		Return(f.guests[42], nil)

	res, err := f.svc.Create(context.Background(), "maria@example.com", dto.CreateReservationRequest{
		RoomID:        101,
		CheckIn:       "2025-07-01",
		CheckOut:      "2025-07-03",
		PaymentMethod: model.PaymentMethodGCash,
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusPending, res.Status)
	assert.Equal(t, 2, res.Nights)
	assert.Equal(t, 2400.0, res.TotalAmount)
	require.NotNil(t, res.Room)
	assert.Equal(t, "101", res.Room.Number)
	require.Len(t, res.Guests, 1)
	assert.Equal(t, model.GuestTypePrimary, res.Guests[0].GuestType)
	require.Len(t, res.Payments, 1)
	assert.Equal(t, model.PaymentStatusPending, res.Payments[0].Status)

	// double-booking the same range is refused
	f.guestRepo.EXPECT().ResolveByEmail(gomock.Any(), "maria@example.com").
		Return(f.guests[42], nil)

	_, err = f.svc.Create(context.Background(), "maria@example.com", dto.CreateReservationRequest{
		RoomID:        101,
		CheckIn:       "2025-07-02",
		CheckOut:      "2025-07-04",
		PaymentMethod: model.PaymentMethodCash,
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))

	// an adjacent stay is fine
	f.guestRepo.EXPECT().ResolveByEmail(gomock.Any(), "maria@example.com").
		Return(f.guests[42], nil)

	_, err = f.svc.Create(context.Background(), "maria@example.com", dto.CreateReservationRequest{
		RoomID:        101,
		CheckIn:       "2025-07-03",
		CheckOut:      "2025-07-05",
		PaymentMethod: model.PaymentMethodCash,
	})
	assert.NoError(t, err)
}

func TestReservationService_Create_RequiresSignIn(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), "", dto.CreateReservationRequest{})
	assert.ErrorIs(t, err, failure.ErrNotSignedIn)
}

func TestReservationService_Create_PaymentBestEffort(t *testing.T) {
	f := newFixture(t)
	f.addRoom(101, "101", 1200)
	f.addGuest(42, "maria@example.com")

	f.guestRepo.EXPECT().ResolveByEmail(gomock.Any(), "maria@example.com").
		Return(f.guests[42], nil)

	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, row repository.NewReservation) (model.ReservationRecord, error) {
			rec := model.ReservationRecord{ID: 500, RoomID: row.RoomID, CheckIn: row.CheckIn, CheckOut: row.CheckOut, Status: row.Status, TotalAmount: row.TotalAmount}
			f.records = append(f.records, rec)

			return rec, nil
		})
	f.repo.EXPECT().InsertGuestLink(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, row repository.NewGuestLink) error {
			f.links = append(f.links, model.GuestLinkRecord{ID: 1, ReservationID: row.ReservationID, GuestID: row.GuestID, GuestType: row.GuestType})

			return nil
		})
	f.repo.EXPECT().InsertPayment(gomock.Any(), gomock.Any()).
		Return(errors.New("payment table unavailable"))

	res, err := f.svc.Create(context.Background(), "maria@example.com", dto.CreateReservationRequest{
		RoomID:        101,
		CheckIn:       "2025-07-01",
		CheckOut:      "2025-07-03",
		PaymentMethod: model.PaymentMethodCard,
	})

	// the reservation survives the failed payment write
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, res.Status)
	assert.Empty(t, res.Payments)
}

func TestReservationService_CreateWalkIn(t *testing.T) {
	f := newFixture(t)
	f.expectWrites()
	f.addRoom(101, "101", 1200)
	f.staff = append(f.staff, staffModel.Staff{ID: 5, FirstName: "Ana", LastName: "Lim", Role: "FrontDesk"})

	f.guestRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, guest guestModel.Guest) (guestModel.Guest, error) {
			guest.ID = 7
			f.guests[7] = guest

			return guest, nil
		})

	res, err := f.svc.CreateWalkIn(context.Background(), 5, dto.WalkInReservationRequest{
		Guest: dtoWalkInGuest("juan@example.com"),
		RoomID: 101, CheckIn: day(0), CheckOut: day(2),
		PaymentMethod: model.PaymentMethodCash,
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusPending, res.Status)
	require.NotNil(t, res.Staff)
	assert.Equal(t, "Ana Lim", res.Staff.FullName)

	// walk-in creation writes its own audit entry
	require.Len(t, f.logs, 1)
	assert.Equal(t, model.ActionWalkIn, f.logs[0].Action)
	assert.Equal(t, model.StatusPending, f.logs[0].NewStatus)
}

func TestReservationService_UpdateStatus(t *testing.T) {
	f := newFixture(t)
	f.expectWrites()
	f.addRoom(101, "101", 1200)
	f.addGuest(42, "maria@example.com")

	staffID := int64(5)
	f.staff = append(f.staff, staffModel.Staff{ID: 5, FirstName: "Ana", LastName: "Lim"})

	// future stay: approval stops at Booked
	f.records = append(f.records, model.ReservationRecord{
		ID: 1, RoomID: 101, CheckIn: day(3), CheckOut: day(5), Status: model.StatusPending, TotalAmount: 2400,
	})

	res, err := f.svc.UpdateStatus(context.Background(), 1, &staffID, dto.UpdateStatusRequest{Status: model.StatusBooked})
	require.NoError(t, err)
	assert.Equal(t, model.StatusBooked, res.Status)
	require.Len(t, f.logs, 1)
	assert.Equal(t, model.ActionApproved, f.logs[0].Action)

	// illegal step is rejected with a conflict
	_, err = f.svc.UpdateStatus(context.Background(), 1, &staffID, dto.UpdateStatusRequest{Status: model.StatusPending})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))

	// cancellation frees the room defensively
	res, err = f.svc.UpdateStatus(context.Background(), 1, &staffID, dto.UpdateStatusRequest{Status: model.StatusCancelled})
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, res.Status)
	assert.Equal(t, roomModel.StatusAvailable, f.rooms[0].Status)

	// terminal states have no exits
	_, err = f.svc.UpdateStatus(context.Background(), 1, &staffID, dto.UpdateStatusRequest{Status: model.StatusBooked})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
}

func TestReservationService_UpdateStatus_AutoCheckIn(t *testing.T) {
	f := newFixture(t)
	f.expectWrites()
	f.addRoom(101, "101", 1200)
	f.addGuest(42, "maria@example.com")

	staffID := int64(5)

	// the stay starts today, approval must land as CheckedIn
	f.records = append(f.records, model.ReservationRecord{
		ID: 1, RoomID: 101, CheckIn: day(0), CheckOut: day(2), Status: model.StatusPending, TotalAmount: 2400,
	})

	res, err := f.svc.UpdateStatus(context.Background(), 1, &staffID, dto.UpdateStatusRequest{Status: model.StatusBooked})
	require.NoError(t, err)

	assert.Equal(t, model.StatusCheckedIn, res.Status)
	assert.Equal(t, roomModel.StatusOccupied, f.rooms[0].Status)

	require.Len(t, f.logs, 2)
	assert.Equal(t, model.ActionApproved, f.logs[0].Action)
	assert.Equal(t, model.ActionCheckedIn, f.logs[1].Action)
}

func TestReservationService_Sweep(t *testing.T) {
	f := newFixture(t)
	f.expectWrites()
	f.addRoom(101, "101", 1200)
	f.addRoom(102, "102", 1200)
	f.addGuest(42, "maria@example.com")

	// overdue stay, occupying the room
	f.records = append(f.records, model.ReservationRecord{
		ID: 1, RoomID: 101, CheckIn: day(-3), CheckOut: day(-1), Status: model.StatusCheckedIn, TotalAmount: 2400,
	})
	f.rooms[0].Status = roomModel.StatusOccupied

	// current stay, untouched
	f.records = append(f.records, model.ReservationRecord{
		ID: 2, RoomID: 102, CheckIn: day(0), CheckOut: day(2), Status: model.StatusCheckedIn, TotalAmount: 2400,
	})
	f.rooms[1].Status = roomModel.StatusOccupied

	count, err := f.svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	assert.Equal(t, model.StatusCheckedOut, f.records[0].Status)
	assert.Equal(t, roomModel.StatusAvailable, f.rooms[0].Status)
	assert.Equal(t, model.StatusCheckedIn, f.records[1].Status)
	assert.Equal(t, roomModel.StatusOccupied, f.rooms[1].Status)

	// the sweep writes through the audit trail
	require.Len(t, f.logs, 1)
	assert.Equal(t, model.ActionAutoCheckout, f.logs[0].Action)

	// idempotent: a second run finds nothing to do
	count, err = f.svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Len(t, f.logs, 1)
}

func TestReservationService_List_NewestFirst(t *testing.T) {
	f := newFixture(t)
	f.addRoom(101, "101", 1200)

	f.records = append(f.records,
		model.ReservationRecord{ID: 1, RoomID: 101, CheckIn: "2025-07-01", CheckOut: "2025-07-03", Status: model.StatusBooked},
		model.ReservationRecord{ID: 2, RoomID: 101, CheckIn: "2025-09-01", CheckOut: "2025-09-03", Status: model.StatusPending},
		model.ReservationRecord{ID: 3, RoomID: 101, CheckIn: "2025-08-01", CheckOut: "2025-08-03", Status: model.StatusBooked},
	)

	list, err := f.svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, int64(2), list[0].ID)
	assert.Equal(t, int64(3), list[1].ID)
	assert.Equal(t, int64(1), list[2].ID)
}

func TestReservationService_MyBookings(t *testing.T) {
	f := newFixture(t)
	f.addRoom(101, "101", 1200)
	f.addGuest(42, "maria@example.com")
	f.addGuest(43, "other@example.com")

	f.records = append(f.records,
		model.ReservationRecord{ID: 1, RoomID: 101, CheckIn: "2025-07-01", CheckOut: "2025-07-03", Status: model.StatusBooked},
		model.ReservationRecord{ID: 2, RoomID: 101, CheckIn: "2025-08-01", CheckOut: "2025-08-03", Status: model.StatusPending},
	)
	f.links = append(f.links,
		model.GuestLinkRecord{ID: 1, ReservationID: 1, GuestID: 42, GuestType: model.GuestTypePrimary},
		model.GuestLinkRecord{ID: 2, ReservationID: 2, GuestID: 43, GuestType: model.GuestTypePrimary},
	)

	mine, err := f.svc.MyBookings(context.Background(), "maria@example.com")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, int64(1), mine[0].ID)

	_, err = f.svc.MyBookings(context.Background(), "")
	assert.ErrorIs(t, err, failure.ErrNotSignedIn)
}

func TestReservationService_EndToEnd(t *testing.T) {
	f := newFixture(t)
	f.expectWrites()
	f.addRoom(101, "101", 1200)
	f.addGuest(42, "maria@example.com")
	f.staff = append(f.staff, staffModel.Staff{ID: 5, FirstName: "Ana", LastName: "Lim"})

	staffID := int64(5)

	// guest books a two-night stay starting today
	f.guestRepo.EXPECT().ResolveByEmail(gomock.Any(), "maria@example.com").
		Return(f.guests[42], nil)

	booked, err := f.svc.Create(context.Background(), "maria@example.com", dto.CreateReservationRequest{
		RoomID:        101,
		CheckIn:       day(0),
		CheckOut:      day(2),
		PaymentMethod: model.PaymentMethodGCash,
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, booked.Status)
	assert.Equal(t, 2400.0, booked.TotalAmount)

	// approval today auto-promotes straight to CheckedIn
	res, err := f.svc.UpdateStatus(context.Background(), booked.ID, &staffID, dto.UpdateStatusRequest{Status: model.StatusBooked})
	require.NoError(t, err)
	assert.Equal(t, model.StatusCheckedIn, res.Status)
	assert.Equal(t, roomModel.StatusOccupied, f.rooms[0].Status)

	// checkout frees the room
	res, err = f.svc.UpdateStatus(context.Background(), booked.ID, &staffID, dto.UpdateStatusRequest{Status: model.StatusCheckedOut})
	require.NoError(t, err)
	assert.Equal(t, model.StatusCheckedOut, res.Status)
	assert.Equal(t, roomModel.StatusAvailable, f.rooms[0].Status)

	// the stay now counts toward revenue
	snapshot, err := f.svc.Snapshot(context.Background())
	require.NoError(t, err)

	var revenue float64
	for _, reservation := range snapshot.Reservations {
		if model.CountsTowardRevenue(reservation.Status) {
			revenue += reservation.TotalAmount
		}
	}

	assert.Equal(t, 2400.0, revenue)
}

func TestReservationService_HasBlockingStay(t *testing.T) {
	f := newFixture(t)
	f.addRoom(101, "101", 1200)
	f.addRoom(102, "102", 1200)

	f.records = append(f.records,
		model.ReservationRecord{ID: 1, RoomID: 101, CheckIn: day(-1), CheckOut: day(1), Status: model.StatusCheckedIn},
		model.ReservationRecord{ID: 2, RoomID: 102, CheckIn: day(-5), CheckOut: day(-3), Status: model.StatusCheckedOut},
	)

	blocking, err := f.svc.HasBlockingStay(context.Background(), 101)
	require.NoError(t, err)
	assert.True(t, blocking)

	blocking, err = f.svc.HasBlockingStay(context.Background(), 102)
	require.NoError(t, err)
	assert.False(t, blocking)
}

func dtoWalkInGuest(email string) guestDto.WalkInGuestRequest {
	return guestDto.WalkInGuestRequest{
		FirstName: "Juan",
		LastName:  "Dela Cruz",
		Email:     email,
		Phone:     "09171234567",
	}
}
