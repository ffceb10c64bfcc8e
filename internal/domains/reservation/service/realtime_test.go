package service_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"innkeep/infras/realtime"
	rtMocks "innkeep/infras/realtime/mocks"
	"innkeep/internal/domains/reservation/model"
	roomModel "innkeep/internal/domains/room/model"
)

// bindHandlers wires the service to a mocked change stream and returns
// the captured per-table handlers.
func bindHandlers(t *testing.T, f *fixture) map[string]realtime.Handler {
	t.Helper()

	ctrl := gomock.NewController(t)
	rt := rtMocks.NewMockRealtime(ctrl)

	handlers := map[string]realtime.Handler{}
	rt.EXPECT().Subscribe(gomock.Any(), gomock.Any()).Times(2).DoAndReturn(
		func(table string, handler realtime.Handler) {
			handlers[table] = handler
		},
	)

	f.svc.Bind(rt)

	require.Contains(t, handlers, model.TableName)
	require.Contains(t, handlers, roomModel.TableName)

	return handlers
}

func TestReservationService_RealtimeUpdatePatchesRow(t *testing.T) {
	f := newFixture(t)
	f.addRoom(101, "101", 1200)
	f.records = append(f.records,
		model.ReservationRecord{ID: 1, RoomID: 101, CheckIn: "2025-07-01", CheckOut: "2025-07-03", Status: model.StatusPending},
	)

	// prime the store
	_, err := f.svc.List(context.Background())
	require.NoError(t, err)

	handlers := bindHandlers(t, f)

	payload, err := json.Marshal(model.ReservationRecord{
		ID: 1, RoomID: 101, CheckIn: "2025-07-01", CheckOut: "2025-07-03", Status: model.StatusBooked,
	})
	require.NoError(t, err)

	handlers[model.TableName](realtime.Event{
		Type:  realtime.EventUpdate,
		Table: model.TableName,
		New:   payload,
	})

	res, err := f.svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, model.StatusBooked, res.Status)
}

func TestReservationService_RealtimeInsertRefreshes(t *testing.T) {
	f := newFixture(t)
	f.addRoom(101, "101", 1200)

	// prime the store while the backend is empty
	list, err := f.svc.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, list)

	handlers := bindHandlers(t, f)

	// a row appears remotely; the insert event must trigger a refetch
	f.records = append(f.records,
		model.ReservationRecord{ID: 7, RoomID: 101, CheckIn: "2025-07-01", CheckOut: "2025-07-03", Status: model.StatusPending},
	)

	handlers[model.TableName](realtime.Event{
		Type:  realtime.EventInsert,
		Table: model.TableName,
		New:   json.RawMessage(`{"reservation_id":7}`),
	})

	list, err = f.svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(7), list[0].ID)
}

func TestReservationService_RealtimeRoomStatus(t *testing.T) {
	f := newFixture(t)
	f.addRoom(101, "101", 1200)

	_, err := f.svc.Rooms(context.Background())
	require.NoError(t, err)

	handlers := bindHandlers(t, f)

	payload, err := json.Marshal(roomModel.Room{ID: 101, Number: "101", Status: roomModel.StatusMaintenance})
	require.NoError(t, err)

	handlers[roomModel.TableName](realtime.Event{
		Type:  realtime.EventUpdate,
		Table: roomModel.TableName,
		New:   payload,
	})

	room, err := f.svc.Room(context.Background(), 101)
	require.NoError(t, err)
	assert.Equal(t, roomModel.StatusMaintenance, room.Status)
}
