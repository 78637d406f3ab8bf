package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// GuildID identifies a team's chat guild. UserID identifies a guild
// member. Both are chat-platform snowflakes.
type GuildID int64

type UserID int64

// ReservationID identifies a reservation on the booking service.
type ReservationID int32

// MatchID identifies an official match on the league API.
type MatchID int32

var (
	// ErrInvalidGameDetails is returned when a stored game row's
	// nullable columns match neither or both detail shapes. Such a row
	// is corrupt and is never coerced into a valid Game.
	ErrInvalidGameDetails = errors.New("game row has invalid detail columns")

	// ErrGameNotHosted is returned when a reservation id is requested
	// from a game that has no booked reservation.
	ErrGameNotHosted = errors.New("game does not have a hosted reservation")

	// ErrInvalidConnectCommand is returned when connect info cannot be
	// parsed from a pasted console command.
	ErrInvalidConnectCommand = errors.New(`connect info must look like: connect 1.2.3.4:27015; password "letmein"`)
)

type GameKind int16

const (
	KindScrim GameKind = iota
	KindMatch
)

func (k GameKind) String() string {
	if k == KindMatch {
		return "Match"
	}
	return "Scrim"
}

// Duration is the nominal length of a game of this kind.
func (k GameKind) Duration() time.Duration {
	if k == KindMatch {
		return 2 * time.Hour
	}
	return time.Hour
}

// ConnectInfo is the address and password needed to join a game server.
type ConnectInfo struct {
	Address  string
	Password string
}

// ParseConnectCommand parses a pasted `connect <addr>; password "<pw>"`
// console command.
func ParseConnectCommand(s string) (ConnectInfo, error) {
	s = strings.TrimSpace(s)

	rest, ok := strings.CutPrefix(s, "connect ")
	if !ok {
		return ConnectInfo{}, ErrInvalidConnectCommand
	}

	addr, rest, ok := strings.Cut(rest, ";")
	if !ok {
		return ConnectInfo{}, ErrInvalidConnectCommand
	}
	addr = unquote(strings.TrimSpace(addr))

	pw, ok := strings.CutPrefix(strings.TrimSpace(rest), "password ")
	if !ok {
		return ConnectInfo{}, ErrInvalidConnectCommand
	}
	pw = unquote(strings.TrimSpace(pw))

	return ConnectInfo{Address: addr, Password: pw}, nil
}

func unquote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}

// ConnectCommand renders the console command a player pastes to join.
func (c ConnectInfo) ConnectCommand() string {
	return fmt.Sprintf("connect %s; password %q", c.Address, c.Password)
}

type ServerKind int16

const (
	// ServerUndecided means no venue has been chosen yet. It is the
	// zero value of GameServer.
	ServerUndecided ServerKind = iota
	// ServerHosted means a reservation on the booking service backs
	// this game.
	ServerHosted
	// ServerJoined means the other party hosts and supplied connect
	// info directly.
	ServerJoined
)

// GameServer is the three-way venue state of a game. Exactly one
// variant holds at a time: ReservationID is meaningful only when Kind
// is ServerHosted, Connect only when Kind is ServerJoined.
type GameServer struct {
	Kind          ServerKind
	ReservationID ReservationID
	Connect       ConnectInfo
}

func HostedServer(id ReservationID) GameServer {
	return GameServer{Kind: ServerHosted, ReservationID: id}
}

func JoinedServer(info ConnectInfo) GameServer {
	return GameServer{Kind: ServerJoined, Connect: info}
}

func (s GameServer) IsHosted() bool { return s.Kind == ServerHosted }

func (s GameServer) IsJoined() bool { return s.Kind == ServerJoined }

// HostedReservationID returns the backing reservation id, or
// ErrGameNotHosted for joined or undecided games.
func (s GameServer) HostedReservationID() (ReservationID, error) {
	if s.Kind != ServerHosted {
		return 0, ErrGameNotHosted
	}
	return s.ReservationID, nil
}

// Details carries the kind-specific fields of a game. It is a closed
// union: ScrimDetails or MatchDetails.
type Details interface {
	Kind() GameKind
}

// ScrimDetails describes an informal practice game arranged against a
// contact on the chat platform. All fields are stored locally.
type ScrimDetails struct {
	Opponent UserID
	Format   GameFormat
	Maps     MapList
}

func (ScrimDetails) Kind() GameKind { return KindScrim }

// MatchDetails describes an official league match. Format, opponent,
// and maps are derived from the league API with the match id; they are
// never stored locally.
type MatchDetails struct {
	MatchID MatchID
}

func (MatchDetails) Kind() GameKind { return KindMatch }

// Game is a scheduled game. (GuildID, StartsAt) is its natural key: a
// team cannot have two games starting at the same instant.
type Game struct {
	GuildID  GuildID
	StartsAt time.Time
	Server   GameServer
	Details  Details
}

// BookingWindow is the reservation window communicated to the booking
// service: fifteen minutes of padding on both sides of the game.
func (g *Game) BookingWindow() (start, end time.Time) {
	return g.StartsAt.Add(-15 * time.Minute),
		g.StartsAt.Add(g.Details.Kind().Duration() + 15*time.Minute)
}

// GameRow is the raw nullable-column shape of a game as persisted.
// Nothing outside Decode and Row should interpret these fields; every
// read path decodes into a Game immediately.
type GameRow struct {
	GuildID         int64
	StartsAt        time.Time
	ReservationID   *int32
	ConnectAddress  *string
	ConnectPassword *string
	Opponent        *int64
	GameFormat      *int16
	Maps            []string
	LeagueMatchID   *int32
}

// Decode reconstructs the Game sum types from the nullable columns.
// The match is total: a combination fitting neither exactly one server
// variant nor exactly one detail variant is ErrInvalidGameDetails.
func (r GameRow) Decode() (*Game, error) {
	g := &Game{
		GuildID:  GuildID(r.GuildID),
		StartsAt: r.StartsAt,
	}

	hasConnect := r.ConnectAddress != nil && r.ConnectPassword != nil
	switch {
	case r.ReservationID != nil && !hasConnect && r.ConnectAddress == nil && r.ConnectPassword == nil:
		g.Server = HostedServer(ReservationID(*r.ReservationID))
	case r.ReservationID == nil && hasConnect:
		g.Server = JoinedServer(ConnectInfo{Address: *r.ConnectAddress, Password: *r.ConnectPassword})
	case r.ReservationID == nil && r.ConnectAddress == nil && r.ConnectPassword == nil:
		g.Server = GameServer{}
	default:
		return nil, fmt.Errorf("%w: reservation and connect columns conflict", ErrInvalidGameDetails)
	}

	hasScrim := r.Opponent != nil && r.GameFormat != nil && r.Maps != nil
	noScrim := r.Opponent == nil && r.GameFormat == nil && r.Maps == nil
	switch {
	case hasScrim && r.LeagueMatchID == nil:
		maps := make(MapList, len(r.Maps))
		for i, m := range r.Maps {
			maps[i] = Map(m)
		}
		g.Details = ScrimDetails{
			Opponent: UserID(*r.Opponent),
			Format:   GameFormat(*r.GameFormat),
			Maps:     maps,
		}
	case noScrim && r.LeagueMatchID != nil:
		g.Details = MatchDetails{MatchID: MatchID(*r.LeagueMatchID)}
	default:
		return nil, fmt.Errorf("%w: scrim and match columns conflict", ErrInvalidGameDetails)
	}

	return g, nil
}

// Row flattens the Game back into its nullable-column shape.
func (g *Game) Row() GameRow {
	r := GameRow{
		GuildID:  int64(g.GuildID),
		StartsAt: g.StartsAt,
	}

	switch g.Server.Kind {
	case ServerHosted:
		id := int32(g.Server.ReservationID)
		r.ReservationID = &id
	case ServerJoined:
		addr, pw := g.Server.Connect.Address, g.Server.Connect.Password
		r.ConnectAddress = &addr
		r.ConnectPassword = &pw
	}

	switch d := g.Details.(type) {
	case ScrimDetails:
		opponent := int64(d.Opponent)
		format := int16(d.Format)
		maps := make([]string, len(d.Maps))
		for i, m := range d.Maps {
			maps[i] = string(m)
		}
		r.Opponent = &opponent
		r.GameFormat = &format
		r.Maps = maps
	case MatchDetails:
		id := int32(d.MatchID)
		r.LeagueMatchID = &id
	}

	return r
}
