package web

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/unrolled/render"

	"github.com/vidhanio/scheduletf/controller"
	"github.com/vidhanio/scheduletf/model"
)

func rootHandler(_ controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.Text(w, http.StatusOK, "scheduletf")
	}
}

func healthHandler(_ controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.Text(w, http.StatusOK, "ok")
	}
}

// gameView is the JSON shape of a scheduled game. Optional fields are
// omitted rather than rendered null.
type gameView struct {
	StartsAt      time.Time `json:"starts_at"`
	Kind          string    `json:"kind"`
	Server        string    `json:"server"`
	ReservationID *int32    `json:"reservation_id,omitempty"`
	Connect       string    `json:"connect,omitempty"`
	Opponent      *int64    `json:"opponent,omitempty"`
	Format        string    `json:"format,omitempty"`
	Maps          []string  `json:"maps,omitempty"`
	MatchID       *int32    `json:"match_id,omitempty"`
}

func newGameView(g *model.Game) gameView {
	v := gameView{
		StartsAt: g.StartsAt,
		Kind:     g.Details.Kind().String(),
		Server:   "undecided",
	}

	switch {
	case g.Server.IsHosted():
		v.Server = "hosted"
		id := int32(g.Server.ReservationID)
		v.ReservationID = &id
	case g.Server.IsJoined():
		v.Server = "joined"
		v.Connect = g.Server.Connect.ConnectCommand()
	}

	switch d := g.Details.(type) {
	case model.ScrimDetails:
		if d.Opponent != 0 {
			opponent := int64(d.Opponent)
			v.Opponent = &opponent
		}
		v.Format = d.Format.String()
		maps := make([]string, len(d.Maps))
		for i, m := range d.Maps {
			maps[i] = string(m)
		}
		v.Maps = maps
	case model.MatchDetails:
		id := int32(d.MatchID)
		v.MatchID = &id
	}

	return v
}

func scheduleHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guildID, err := parseGuildID(r)
		if err != nil {
			render.JSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		games, err := ctrl.ListUpcomingGames(r.Context(), guildID, nil)
		if err != nil {
			render.JSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}

		views := make([]gameView, len(games))
		for i, g := range games {
			views[i] = newGameView(g)
		}

		render.JSON(w, http.StatusOK, map[string]any{
			"guild_id": int64(guildID),
			"games":    views,
		})
	}
}

func refreshScheduleHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guildID, err := parseGuildID(r)
		if err != nil {
			render.JSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		if err := ctrl.RefreshSchedule(r.Context(), guildID); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, controller.ErrNoScheduleChannel) {
				status = http.StatusConflict
			}
			render.JSON(w, status, map[string]string{"error": err.Error()})
			return
		}

		render.Text(w, http.StatusOK, "schedule refresh completed successfully")
	}
}

func parseGuildID(r *http.Request) (model.GuildID, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "guildID"), 10, 64)
	if err != nil {
		return 0, err
	}
	return model.GuildID(id), nil
}
