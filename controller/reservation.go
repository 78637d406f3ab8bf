package controller

import (
	"math/rand/v2"
	"strings"

	"github.com/vidhanio/scheduletf/model"
	"github.com/vidhanio/scheduletf/serveme"
)

const alphanumerics = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randAlphanumeric(n int) string {
	var b strings.Builder
	b.Grow(n)
	for range n {
		b.WriteByte(alphanumerics[rand.IntN(len(alphanumerics))])
	}
	return b.String()
}

// gamePasswords generates the join and rcon passwords for a new
// reservation, e.g. "scrim.x7k2m9qa" and "scrim.rcon.<32 chars>".
func gamePasswords(kind model.GameKind) (password, rcon string) {
	prefix := "scrim"
	if kind == model.KindMatch {
		prefix = "match"
	}
	return prefix + "." + randAlphanumeric(8), prefix + ".rcon." + randAlphanumeric(32)
}

// reservationPayload is the map and server config a reservation should
// start on. Only scrims carry a map list; officials leave the server on
// its defaults.
func reservationPayload(g *model.Game) (first model.Map, configID *int32) {
	d, ok := g.Details.(model.ScrimDetails)
	if !ok || len(d.Maps) == 0 {
		return "", nil
	}

	first, _ = d.Maps.First()
	if cfg, ok := first.ServerConfigFor(g.Details.Kind(), d.Format); ok {
		id := cfg.ID
		configID = &id
	}
	return first, configID
}

// createReservation books a fresh server for the game's window,
// preferring the Chicago and Kansas server pools.
func (c *controller) createReservation(key string, g *model.Game) (*model.Reservation, error) {
	start, end := g.BookingWindow()

	servers, err := c.serveme.FindServers(key, start, end)
	if err != nil {
		return nil, err
	}

	var server *model.Server
	for i := range servers {
		if strings.HasPrefix(servers[i].Address, "chi") || strings.HasPrefix(servers[i].Address, "ks") {
			server = &servers[i]
			break
		}
	}
	if server == nil {
		return nil, ErrNoServemeServers
	}

	first, configID := reservationPayload(g)
	password, rcon := gamePasswords(g.Details.Kind())

	return c.serveme.CreateReservation(key, &serveme.CreateRequest{
		StartsAt:      start,
		EndsAt:        end,
		ServerID:      server.ID,
		Password:      password,
		Rcon:          rcon,
		FirstMap:      first,
		ConfigID:      configID,
		EnablePlugins: true,
		EnableDemos:   true,
	})
}

// editReservation grows an existing reservation to cover the game's
// window. The window only ever grows: the start can move earlier and
// the end later, never the reverse, so a reservation shared by several
// games covers all of them. The first map and config are only touched
// when this game is the earliest on the reservation. An edit with
// nothing to change is skipped entirely.
func (c *controller) editReservation(key string, g *model.Game) (*model.Reservation, error) {
	id, err := g.Server.HostedReservationID()
	if err != nil {
		return nil, err
	}

	res, err := c.serveme.GetReservation(key, id)
	if err != nil {
		return nil, err
	}

	start, end := g.BookingWindow()

	var req serveme.EditRequest
	if start.Before(res.StartsAt) {
		req.StartsAt = &start
	}
	if end.After(res.EndsAt) {
		req.EndsAt = &end
	}

	if !start.After(res.StartsAt) {
		if first, configID := reservationPayload(g); first != "" && first != res.FirstMap {
			req.FirstMap = &first
			req.ConfigID = configID
		}
	}

	if req.IsEmpty() {
		return res, nil
	}
	return c.serveme.EditReservation(key, id, &req)
}
