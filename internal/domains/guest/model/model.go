package model

const (
	TableName  = "guest"
	EntityName = "guest"

	FieldID    = "guest_id"
	FieldEmail = "email"
)

type Guest struct {
	ID         int64  `json:"guest_id"`
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

func (g Guest) FullName() string {
	name := g.FirstName
	if g.MiddleName != "" {
		name += " " + g.MiddleName
	}

	return name + " " + g.LastName
}
