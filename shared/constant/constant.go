package constant

// Context key types to avoid collisions
type contextKey string

const (
	ContextKeyActorType  contextKey = "actor_type"
	ContextKeyActorEmail contextKey = "actor_email"
	ContextKeyGuestID    contextKey = "guest_id"
	ContextKeyStaffID    contextKey = "staff_id"
	ContextKeyStaffRole  contextKey = "staff_role"
)

const (
	ActorTypeGuest = "Guest"
	ActorTypeStaff = "Staff"
)

// Staff roles. These scope UI navigation only; they are not a security
// boundary on the hosted backend.
const (
	RoleManager          = "Manager"
	RoleFrontDesk        = "FrontDesk"
	RoleHousekeeping     = "Housekeeping"
	RoleConcierge        = "Concierge"
	RoleAccountant       = "Accountant"
	RoleReservationAgent = "ReservationAgent"
)

const (
	RequestParamOrder = "order"
	RequestParamID    = "id"
)

const (
	DateFormat     = "2006-01-02"
	DateTimeFormat = "2006-01-02T15:04:05Z07:00"
)

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"
	OtelGatewayScopeName    = "gateway"
	OtelRealtimeScopeName   = "realtime"
)

const (
	RequestHeaderAuthorization = "Authorization"
	RequestHeaderContentType   = "Content-Type"
	RequestHeaderAPIKey        = "apikey"
	RequestHeaderPrefer        = "Prefer"
	RequestHeaderRequestID     = "X-Request-ID"
)

const (
	ContentTypeJSON = "application/json"
)

const (
	ResponseErrorPrepareShutdown = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorUnhealthy       = "SERVER UNHEALTHY"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

const (
	Asterix = "*"
	Empty   = ""
)
