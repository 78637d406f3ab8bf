package model

import "time"

// ReservationStatus is the booking service's lifecycle state for a
// reservation.
type ReservationStatus string

const (
	StatusWaiting  ReservationStatus = "waiting"
	StatusStarting ReservationStatus = "starting"
	StatusUpdating ReservationStatus = "updating"
	StatusReady    ReservationStatus = "ready"
	StatusSDRReady ReservationStatus = "sdr-ready"
	StatusEnding   ReservationStatus = "ending"
	StatusEnded    ReservationStatus = "ended"
	StatusUnknown  ReservationStatus = "unknown"
)

func ParseReservationStatus(s string) ReservationStatus {
	switch ReservationStatus(s) {
	case StatusWaiting, StatusStarting, StatusUpdating, StatusReady,
		StatusSDRReady, StatusEnding, StatusEnded:
		return ReservationStatus(s)
	default:
		return StatusUnknown
	}
}

// IsReady reports whether the server is joinable.
func (s ReservationStatus) IsReady() bool {
	return s == StatusReady || s == StatusSDRReady
}

// IsTerminal reports whether the reservation is over.
func (s ReservationStatus) IsTerminal() bool {
	return s == StatusEnding || s == StatusEnded
}

// Server is a bookable game server offered by the booking service.
type Server struct {
	ID      int32
	Name    string
	Address string
}

// Reservation is the booking service's view of a booked slot. The
// service owns its lifetime; this is a cached read model.
type Reservation struct {
	ID           ReservationID
	Status       ReservationStatus
	StartsAt     time.Time
	EndsAt       time.Time
	Password     string
	RconPassword string
	FirstMap     Map
	ConfigID     *int32
	Server       Server
}

func (r *Reservation) ConnectInfo() ConnectInfo {
	return ConnectInfo{Address: r.Server.Address, Password: r.Password}
}
