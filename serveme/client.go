// Package serveme is a client for the na.serveme.tf-compatible game
// server booking API. All calls authenticate with a per-team API key.
package serveme

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vidhanio/scheduletf/cache"
	"github.com/vidhanio/scheduletf/model"
)

const ServemeURL = "https://na.serveme.tf"

const (
	reservationTTL = 10 * time.Second
	mapListTTL     = 24 * time.Hour
)

type Client interface {
	// FindServers lists servers available for the whole window.
	FindServers(key string, start, end time.Time) ([]model.Server, error)
	GetReservation(key string, id model.ReservationID) (*model.Reservation, error)
	CreateReservation(key string, req *CreateRequest) (*model.Reservation, error)
	EditReservation(key string, id model.ReservationID, req *EditRequest) (*model.Reservation, error)
	// DeleteReservation cancels a reservation. The service returns the
	// final reservation state unless it was deleted outright, in which
	// case the result is nil.
	DeleteReservation(key string, id model.ReservationID) (*model.Reservation, error)
	// ListReservations returns the account's reservations, live from
	// the service (not the per-id cache).
	ListReservations(key string) ([]*model.Reservation, error)
	// RunCommand runs a console command on the reservation's server and
	// returns its output.
	RunCommand(key string, id model.ReservationID, command string) (string, error)
	// Maps lists every map installed on the service's servers, official
	// maps for the format first.
	Maps(key string, format model.GameFormat) (model.MapList, error)
}

type client struct {
	url          string
	httpClient   *http.Client
	reservations *cache.TTL[model.ReservationID, *model.Reservation]
	mapLists     *cache.TTL[model.GameFormat, model.MapList]
}

func New() (Client, error) {
	return NewForTest(ServemeURL), nil
}

func NewForTest(url string) Client {
	return &client{
		url: url,
		httpClient: &http.Client{
			Timeout: 1 * time.Minute,
		},
		reservations: cache.New[model.ReservationID, *model.Reservation](reservationTTL),
		mapLists:     cache.New[model.GameFormat, model.MapList](mapListTTL),
	}
}

// CreateRequest are the fields submitted when booking a server.
type CreateRequest struct {
	StartsAt      time.Time
	EndsAt        time.Time
	ServerID      int32
	Password      string
	Rcon          string
	FirstMap      model.Map
	ConfigID      *int32
	EnablePlugins bool
	EnableDemos   bool
}

// EditRequest are the changes submitted to an existing reservation.
// Nil fields are omitted from the request entirely.
type EditRequest struct {
	StartsAt *time.Time
	EndsAt   *time.Time
	FirstMap *model.Map
	ConfigID *int32
}

// IsEmpty reports whether the edit would change nothing. Callers skip
// the network call for empty edits.
func (r *EditRequest) IsEmpty() bool {
	return r.StartsAt == nil && r.EndsAt == nil && r.FirstMap == nil && r.ConfigID == nil
}

// The service wraps request and response bodies in a "reservation"
// envelope.
type reservationWrapper[T any] struct {
	Reservation T `json:"reservation"`
}

type reservationJSON struct {
	ID       int32  `json:"id"`
	Status   string `json:"status"`
	StartsAt string `json:"starts_at"`
	EndsAt   string `json:"ends_at"`
	Password string `json:"password"`
	Rcon     string `json:"rcon"`
	FirstMap string `json:"first_map"`
	ConfigID *int32 `json:"server_config_id"`
	Server   struct {
		ID        int32  `json:"id"`
		Name      string `json:"name"`
		IPAndPort string `json:"ip_and_port"`
	} `json:"server"`
}

func (j *reservationJSON) toReservation() (*model.Reservation, error) {
	startsAt, err := time.Parse(time.RFC3339, j.StartsAt)
	if err != nil {
		return nil, fmt.Errorf("error parsing reservation starts_at: %w", err)
	}
	endsAt, err := time.Parse(time.RFC3339, j.EndsAt)
	if err != nil {
		return nil, fmt.Errorf("error parsing reservation ends_at: %w", err)
	}

	return &model.Reservation{
		ID:           model.ReservationID(j.ID),
		Status:       model.ParseReservationStatus(j.Status),
		StartsAt:     startsAt,
		EndsAt:       endsAt,
		Password:     j.Password,
		RconPassword: j.Rcon,
		FirstMap:     model.Map(j.FirstMap),
		ConfigID:     j.ConfigID,
		Server: model.Server{
			ID:      j.Server.ID,
			Name:    j.Server.Name,
			Address: j.Server.IPAndPort,
		},
	}, nil
}

func (c *client) FindServers(key string, start, end time.Time) ([]model.Server, error) {
	body := map[string]any{
		"reservation": map[string]any{
			"starts_at": start.Format(time.RFC3339),
			"ends_at":   end.Format(time.RFC3339),
		},
	}

	var parsed struct {
		Servers []struct {
			ID        int32  `json:"id"`
			Name      string `json:"name"`
			IPAndPort string `json:"ip_and_port"`
		} `json:"servers"`
	}
	if err := c.do(key, http.MethodPost, "/api/reservations/find_servers", body, &parsed); err != nil {
		return nil, err
	}

	servers := make([]model.Server, 0, len(parsed.Servers))
	for _, s := range parsed.Servers {
		servers = append(servers, model.Server{ID: s.ID, Name: s.Name, Address: s.IPAndPort})
	}
	return servers, nil
}

func (c *client) GetReservation(key string, id model.ReservationID) (*model.Reservation, error) {
	return c.reservations.GetOrFetch(id, func() (*model.Reservation, error) {
		var parsed reservationWrapper[reservationJSON]
		err := c.do(key, http.MethodGet, fmt.Sprintf("/api/reservations/%d", id), nil, &parsed)
		if err != nil {
			return nil, err
		}
		return parsed.Reservation.toReservation()
	})
}

func (c *client) CreateReservation(key string, req *CreateRequest) (*model.Reservation, error) {
	reservation := map[string]any{
		"starts_at":      req.StartsAt.Format(time.RFC3339),
		"ends_at":        req.EndsAt.Format(time.RFC3339),
		"server_id":      req.ServerID,
		"password":       req.Password,
		"rcon":           req.Rcon,
		"enable_plugins": req.EnablePlugins,
		"enable_demos":   req.EnableDemos,
	}
	if req.FirstMap != "" {
		reservation["first_map"] = string(req.FirstMap)
	}
	if req.ConfigID != nil {
		reservation["server_config_id"] = *req.ConfigID
	}

	var parsed reservationWrapper[reservationJSON]
	err := c.do(key, http.MethodPost, "/api/reservations", map[string]any{"reservation": reservation}, &parsed)
	if err != nil {
		return nil, err
	}

	r, err := parsed.Reservation.toReservation()
	if err != nil {
		return nil, err
	}
	c.reservations.Put(r.ID, r)
	return r, nil
}

func (c *client) EditReservation(key string, id model.ReservationID, req *EditRequest) (*model.Reservation, error) {
	reservation := map[string]any{}
	if req.StartsAt != nil {
		reservation["starts_at"] = req.StartsAt.Format(time.RFC3339)
	}
	if req.EndsAt != nil {
		reservation["ends_at"] = req.EndsAt.Format(time.RFC3339)
	}
	if req.FirstMap != nil {
		reservation["first_map"] = string(*req.FirstMap)
	}
	if req.ConfigID != nil {
		reservation["server_config_id"] = *req.ConfigID
	}

	var parsed reservationWrapper[reservationJSON]
	err := c.do(key, http.MethodPatch, fmt.Sprintf("/api/reservations/%d", id),
		map[string]any{"reservation": reservation}, &parsed)
	if err != nil {
		return nil, err
	}

	r, err := parsed.Reservation.toReservation()
	if err != nil {
		return nil, err
	}
	c.reservations.Put(r.ID, r)
	return r, nil
}

func (c *client) DeleteReservation(key string, id model.ReservationID) (*model.Reservation, error) {
	req, err := c.newRequest(key, http.MethodDelete, fmt.Sprintf("/api/reservations/%d", id), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending http request: %w", err)
	}
	defer resp.Body.Close()

	c.reservations.Invalidate(id)

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var parsed reservationWrapper[reservationJSON]
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("error parsing response from serveme: %w", err)
	}
	return parsed.Reservation.toReservation()
}

func (c *client) ListReservations(key string) ([]*model.Reservation, error) {
	var parsed struct {
		Reservations []reservationJSON `json:"reservations"`
	}
	if err := c.do(key, http.MethodGet, "/api/reservations", nil, &parsed); err != nil {
		return nil, err
	}

	reservations := make([]*model.Reservation, 0, len(parsed.Reservations))
	for i := range parsed.Reservations {
		r, err := parsed.Reservations[i].toReservation()
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, r)
	}
	return reservations, nil
}

func (c *client) RunCommand(key string, id model.ReservationID, command string) (string, error) {
	body := map[string]any{"rcon_command": command}

	b, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("error encoding rcon request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost,
		fmt.Sprintf("%s/api/reservations/%d/rcon", c.url, id), bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("error creating http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", authHeader(key))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error sending http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading rcon response: %w", err)
	}
	return string(out), nil
}

func (c *client) Maps(key string, format model.GameFormat) (model.MapList, error) {
	return c.mapLists.GetOrFetch(format, func() (model.MapList, error) {
		var parsed struct {
			Maps []string `json:"maps"`
		}
		if err := c.do(key, http.MethodGet, "/api/maps", nil, &parsed); err != nil {
			return nil, err
		}

		maps := make(model.MapList, 0, len(parsed.Maps))
		for _, m := range parsed.Maps {
			maps = append(maps, model.Map(m))
		}
		model.SortMaps(maps, format)
		return maps, nil
	})
}

func (c *client) do(key, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("error encoding request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := c.newRequest(key, method, path, reader)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error sending http request: %w", err)
	}
	defer resp.Body.Close()

	// Creation answers 201; any 2xx carries a usable body.
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error parsing response from serveme: %w", err)
	}
	return nil
}

func (c *client) newRequest(key, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequest(method, c.url+path, body)
	if err != nil {
		return nil, fmt.Errorf("error creating http request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", authHeader(key))
	return req, nil
}

func authHeader(key string) string {
	return fmt.Sprintf("Token token=%s", key)
}
