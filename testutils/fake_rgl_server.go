package testutils

import (
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
)

// FakeRGLServer imitates the parts of the RGL.gg API the bot reads:
// matches, teams, seasons, and player profiles.
type FakeRGLServer struct {
	s *httptest.Server
}

// IDs served by the fake. Anything else returns 404.
const (
	FakeRGLMatchID    = 101234
	FakeRGLTeamID     = 13001
	FakeRGLOpponentID = 13002
	FakeRGLSeasonID   = 148
	FakeRGLSteamID    = 76561198012345678
)

func NewFakeRGLServer() *FakeRGLServer {
	r := chi.NewRouter()
	r.Route("/v0", func(r chi.Router) {
		r.Get("/matches/{id}", rglMatchHandler)
		r.Get("/teams/{id}", rglTeamHandler)
		r.Get("/seasons/{id}", rglSeasonHandler)
		r.Get("/profile/{id}", rglProfileHandler)
	})

	return &FakeRGLServer{
		s: httptest.NewServer(r),
	}
}

func (f *FakeRGLServer) Close() {
	f.s.Close()
}

func (f *FakeRGLServer) URL() string {
	return f.s.URL
}

func rglMatchHandler(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "id") != "101234" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]any{
		"matchId":   FakeRGLMatchID,
		"seasonId":  FakeRGLSeasonID,
		"matchDate": "2024-09-18T21:30:00-04:00",
		"matchName": "Week 3 - Process",
		"teams": []map[string]any{
			{"teamName": "fake team", "teamId": FakeRGLTeamID},
			{"teamName": "rival team", "teamId": FakeRGLOpponentID},
		},
		"maps": []map[string]any{
			{"mapName": "cp_process_f12"},
		},
	})
}

func rglTeamHandler(w http.ResponseWriter, r *http.Request) {
	switch chi.URLParam(r, "id") {
	case "13001":
		writeJSON(w, map[string]any{
			"teamId":   FakeRGLTeamID,
			"teamName": "fake team",
			"seasonId": FakeRGLSeasonID,
		})
	case "13002":
		writeJSON(w, map[string]any{
			"teamId":   FakeRGLOpponentID,
			"teamName": "rival team",
			"seasonId": FakeRGLSeasonID,
		})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func rglSeasonHandler(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "id") != "148" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]any{
		"name":       "Sixes S16",
		"formatName": "Sixes",
	})
}

func rglProfileHandler(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "id") != "76561198012345678" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]any{
		// RGL serves steam ids as strings on the profile endpoint.
		"steamId": "76561198012345678",
		"avatar":  "https://avatars.example.com/fake.jpg",
		"name":    "fakeplayer",
		"currentTeams": map[string]any{
			"sixes": map[string]any{
				"id":           FakeRGLTeamID,
				"name":         "fake team",
				"divisionName": "RGL-Main",
			},
			"highlander": nil,
		},
	})
}
