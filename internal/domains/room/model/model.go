package model

const (
	TableName  = "room"
	EntityName = "room"

	FieldID     = "room_id"
	FieldNumber = "room_number"
	FieldTypeID = "roomtype_id"
	FieldStatus = "status"

	TypeTableName  = "roomtype"
	TypeEntityName = "roomtype"

	FieldTypeName = "type_name"
	FieldBaseRate = "base_rate"
)

const (
	StatusAvailable   = "Available"
	StatusOccupied    = "Occupied"
	StatusMaintenance = "Maintenance"
)

// Room is the wire record; RoomType is resolved in memory because the
// data gateway reads one collection at a time.
type Room struct {
	ID         int64  `json:"room_id"`
	Number     string `json:"room_number"`
	RoomTypeID int64  `json:"roomtype_id"`
	Status     string `json:"status"`

	RoomType *RoomType `json:"-"`
}

type RoomType struct {
	ID       int64   `json:"roomtype_id"`
	Name     string  `json:"type_name"`
	BaseRate float64 `json:"base_rate"`
}

// Rate returns the nightly rate, zero when the type is unresolved.
func (r Room) Rate() float64 {
	if r.RoomType == nil {
		return 0
	}

	return r.RoomType.BaseRate
}

func ValidStatus(status string) bool {
	switch status {
	case StatusAvailable, StatusOccupied, StatusMaintenance:
		return true
	}

	return false
}

// IndexTypes keys room types by id for foreign-key resolution.
func IndexTypes(types []RoomType) map[int64]RoomType {
	index := make(map[int64]RoomType, len(types))
	for _, roomType := range types {
		index[roomType.ID] = roomType
	}

	return index
}

// Resolve attaches the referenced room type from the index. Unknown
// references stay nil rather than failing the whole read.
func Resolve(room Room, types map[int64]RoomType) Room {
	if roomType, ok := types[room.RoomTypeID]; ok {
		room.RoomType = &roomType
	}

	return room
}
