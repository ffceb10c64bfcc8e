package di

import (
	"innkeep/config"
	"innkeep/infras/realtime"
	"innkeep/infras/session"
	reservationService "innkeep/internal/domains/reservation/service"
	"innkeep/transport/http"
)

// App is the assembled service: the HTTP surface plus the long-lived
// pieces main wires together at startup (sweep scheduler, realtime
// change stream, session store).
type App struct {
	Config    *config.Config
	HTTP      *http.HTTP
	Lifecycle reservationService.Reservation
	Realtime  realtime.Realtime
	Sessions  *session.Store
}
