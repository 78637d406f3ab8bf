package testutils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
)

// FakeServemeServer imitates the serveme.tf API with an in-memory
// reservation store. It counts requests per endpoint so tests can
// verify caching and skipped edits.
type FakeServemeServer struct {
	s *httptest.Server

	mu           sync.Mutex
	nextID       int32
	reservations map[int32]*fakeReservation
	counts       map[string]int
	maps         []string
}

type fakeReservation struct {
	ID       int32   `json:"id"`
	Status   string  `json:"status"`
	StartsAt string  `json:"starts_at"`
	EndsAt   string  `json:"ends_at"`
	Password string  `json:"password"`
	Rcon     string  `json:"rcon"`
	FirstMap string  `json:"first_map"`
	ConfigID *int32  `json:"server_config_id"`
	Server   fakeSrv `json:"server"`
}

type fakeSrv struct {
	ID        int32  `json:"id"`
	Name      string `json:"name"`
	IPAndPort string `json:"ip_and_port"`
}

var fakeServers = []fakeSrv{
	{ID: 42, Name: "chi-1.fakeboot.tf #42", IPAndPort: "chi-1.fakeboot.tf:27015"},
	{ID: 77, Name: "ks-2.fakeboot.tf #77", IPAndPort: "ks-2.fakeboot.tf:27015"},
	{ID: 99, Name: "la-3.fakeboot.tf #99", IPAndPort: "la-3.fakeboot.tf:27015"},
}

func NewFakeServemeServer() *FakeServemeServer {
	f := &FakeServemeServer{
		nextID:       9000,
		reservations: make(map[int32]*fakeReservation),
		counts:       make(map[string]int),
		maps: []string{
			"cp_process_f12", "cp_gullywash_f9", "koth_bagel_rc10",
			"koth_product_final", "pl_upward_f12", "cp_villa_b19", "ctf_doublecross",
		},
	}

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/reservations/find_servers", f.findServersHandler)
		r.Post("/reservations", f.createHandler)
		r.Get("/reservations", f.listHandler)
		r.Get("/reservations/{id}", f.getHandler)
		r.Patch("/reservations/{id}", f.editHandler)
		r.Delete("/reservations/{id}", f.deleteHandler)
		r.Post("/reservations/{id}/rcon", f.rconHandler)
		r.Get("/maps", f.mapsHandler)
	})
	f.s = httptest.NewServer(r)
	return f
}

func (f *FakeServemeServer) Close() {
	f.s.Close()
}

func (f *FakeServemeServer) URL() string {
	return f.s.URL
}

// Count returns the number of requests handled for an endpoint name,
// e.g. "get", "edit", "maps".
func (f *FakeServemeServer) Count(endpoint string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counts[endpoint]
}

// Reservation returns the current stored state of a reservation, or
// nil if it does not exist.
func (f *FakeServemeServer) Reservation(id int32) map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()

	res, ok := f.reservations[id]
	if !ok {
		return nil
	}
	out := map[string]any{
		"starts_at": res.StartsAt,
		"ends_at":   res.EndsAt,
		"first_map": res.FirstMap,
		"password":  res.Password,
		"rcon":      res.Rcon,
		"server_id": res.Server.ID,
	}
	if res.ConfigID != nil {
		out["server_config_id"] = *res.ConfigID
	}
	return out
}

// SetStatus overrides a stored reservation's status, e.g. to "ready".
func (f *FakeServemeServer) SetStatus(id int32, status string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if res, ok := f.reservations[id]; ok {
		res.Status = status
	}
}

// AddReservation seeds a reservation directly, for tests that need a
// live game without going through the create endpoint.
func (f *FakeServemeServer) AddReservation(id int32, status string, startsAt, endsAt time.Time, firstMap string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reservations[id] = &fakeReservation{
		ID:       id,
		Status:   status,
		StartsAt: startsAt.Format(time.RFC3339),
		EndsAt:   endsAt.Format(time.RFC3339),
		Password: "scrim.test1234",
		Rcon:     "scrim.rcon.test",
		FirstMap: firstMap,
		Server:   fakeServers[0],
	}
}

func (f *FakeServemeServer) findServersHandler(w http.ResponseWriter, r *http.Request) {
	f.count("find_servers")
	if !authorized(w, r) {
		return
	}
	writeJSON(w, map[string]any{"servers": fakeServers})
}

func (f *FakeServemeServer) createHandler(w http.ResponseWriter, r *http.Request) {
	f.count("create")
	if !authorized(w, r) {
		return
	}

	var body struct {
		Reservation struct {
			StartsAt string `json:"starts_at"`
			EndsAt   string `json:"ends_at"`
			ServerID int32  `json:"server_id"`
			Password string `json:"password"`
			Rcon     string `json:"rcon"`
			FirstMap string `json:"first_map"`
			ConfigID *int32 `json:"server_config_id"`
		} `json:"reservation"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	f.nextID++
	id := f.nextID
	srv := fakeServers[0]
	for _, s := range fakeServers {
		if s.ID == body.Reservation.ServerID {
			srv = s
		}
	}
	res := &fakeReservation{
		ID:       id,
		Status:   "waiting",
		StartsAt: body.Reservation.StartsAt,
		EndsAt:   body.Reservation.EndsAt,
		Password: body.Reservation.Password,
		Rcon:     body.Reservation.Rcon,
		FirstMap: body.Reservation.FirstMap,
		ConfigID: body.Reservation.ConfigID,
		Server:   srv,
	}
	f.reservations[id] = res
	f.mu.Unlock()

	// The real service answers creation with 201.
	writeJSONStatus(w, http.StatusCreated, map[string]any{"reservation": res})
}

func (f *FakeServemeServer) listHandler(w http.ResponseWriter, r *http.Request) {
	f.count("list")
	if !authorized(w, r) {
		return
	}

	f.mu.Lock()
	list := make([]*fakeReservation, 0, len(f.reservations))
	for _, res := range f.reservations {
		list = append(list, res)
	}
	f.mu.Unlock()

	writeJSON(w, map[string]any{"reservations": list})
}

func (f *FakeServemeServer) getHandler(w http.ResponseWriter, r *http.Request) {
	f.count("get")
	if !authorized(w, r) {
		return
	}

	f.mu.Lock()
	res, ok := f.reservations[parseID(r)]
	f.mu.Unlock()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]any{"reservation": res})
}

func (f *FakeServemeServer) editHandler(w http.ResponseWriter, r *http.Request) {
	f.count("edit")
	if !authorized(w, r) {
		return
	}

	var body struct {
		Reservation map[string]any `json:"reservation"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	res, ok := f.reservations[parseID(r)]
	if ok {
		if v, found := body.Reservation["starts_at"]; found {
			res.StartsAt = v.(string)
		}
		if v, found := body.Reservation["ends_at"]; found {
			res.EndsAt = v.(string)
		}
		if v, found := body.Reservation["first_map"]; found {
			res.FirstMap = v.(string)
		}
		if v, found := body.Reservation["server_config_id"]; found {
			id := int32(v.(float64))
			res.ConfigID = &id
		}
	}
	f.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]any{"reservation": res})
}

func (f *FakeServemeServer) deleteHandler(w http.ResponseWriter, r *http.Request) {
	f.count("delete")
	if !authorized(w, r) {
		return
	}

	f.mu.Lock()
	id := parseID(r)
	res, ok := f.reservations[id]
	if ok {
		delete(f.reservations, id)
	}
	f.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if res.Status == "waiting" {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	res.Status = "ended"
	writeJSON(w, map[string]any{"reservation": res})
}

func (f *FakeServemeServer) rconHandler(w http.ResponseWriter, r *http.Request) {
	f.count("rcon")
	if !authorized(w, r) {
		return
	}

	var body struct {
		Command string `json:"rcon_command"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	_, ok := f.reservations[parseID(r)]
	f.mu.Unlock()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "executed %q", body.Command)
}

func (f *FakeServemeServer) mapsHandler(w http.ResponseWriter, r *http.Request) {
	f.count("maps")
	if !authorized(w, r) {
		return
	}

	f.mu.Lock()
	maps := append([]string(nil), f.maps...)
	f.mu.Unlock()
	writeJSON(w, map[string]any{"maps": maps})
}

func (f *FakeServemeServer) count(endpoint string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts[endpoint]++
}

func authorized(w http.ResponseWriter, r *http.Request) bool {
	auth := strings.TrimPrefix(r.Header.Get("Authorization"), "Token token=")
	if auth == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return false
	}
	return true
}

func parseID(r *http.Request) int32 {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 32)
	return int32(id)
}

func writeJSON(w http.ResponseWriter, v any) {
	writeJSONStatus(w, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
