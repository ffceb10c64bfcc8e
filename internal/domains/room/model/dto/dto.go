package dto

import "innkeep/internal/domains/room/model"

type UpdateRoomStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Available Occupied Maintenance"`
}

type RoomTypeResponse struct {
	ID       int64   `json:"roomtypeId"`
	Name     string  `json:"name"`
	BaseRate float64 `json:"baseRate"`
}

type RoomResponse struct {
	ID       int64             `json:"roomId"`
	Number   string            `json:"roomNumber"`
	Status   string            `json:"status"`
	RoomType *RoomTypeResponse `json:"roomType,omitempty"`
}

func NewRoomTypeResponse(roomType model.RoomType) RoomTypeResponse {
	return RoomTypeResponse{
		ID:       roomType.ID,
		Name:     roomType.Name,
		BaseRate: roomType.BaseRate,
	}
}

func NewRoomResponse(room model.Room) RoomResponse {
	res := RoomResponse{
		ID:     room.ID,
		Number: room.Number,
		Status: room.Status,
	}

	if room.RoomType != nil {
		roomType := NewRoomTypeResponse(*room.RoomType)
		res.RoomType = &roomType
	}

	return res
}

func NewRoomsResponse(rooms []model.Room) []RoomResponse {
	res := make([]RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		res = append(res, NewRoomResponse(room))
	}

	return res
}
