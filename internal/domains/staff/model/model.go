package model

const (
	TableName  = "staff"
	EntityName = "staff"

	FieldID     = "staff_id"
	FieldEmail  = "email"
	FieldRole   = "role"
	FieldStatus = "status"
)

const StatusActive = "Active"

type Staff struct {
	ID         int64  `json:"staff_id"`
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Role       string `json:"role"`
	Shift      string `json:"shift"`
	Status     string `json:"status"`
}

func (s Staff) FullName() string {
	name := s.FirstName
	if s.MiddleName != "" {
		name += " " + s.MiddleName
	}

	return name + " " + s.LastName
}
