package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/wricardo/mcp-training/roversim/rover/runs"
	"github.com/wricardo/mcp-training/roversim/rover/scenario"
	"github.com/wricardo/mcp-training/roversim/rover/service"
	"github.com/wricardo/mcp-training/roversim/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.NavigationService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server. hub may be nil.
func NewServer(navService service.NavigationService, hub *websocket.Hub) *Server {
	s := &Server{
		service: navService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// Navigation
	api.HandleFunc("/navigate", s.handleNavigate).Methods("POST")

	// Run history
	api.HandleFunc("/runs", s.handleListRuns).Methods("GET")
	api.HandleFunc("/runs/{id}", s.handleGetRun).Methods("GET")
	api.HandleFunc("/runs/{id}", s.handleDeleteRun).Methods("DELETE")

	// Scenarios
	api.HandleFunc("/scenarios", s.handleListScenarios).Methods("GET")
	api.HandleFunc("/scenarios", s.handleCreateScenario).Methods("POST")
	api.HandleFunc("/scenarios/{name}", s.handleGetScenario).Methods("GET")
	api.HandleFunc("/scenarios/{name}/run", s.handleRunScenario).Methods("POST")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// statusFor maps service errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidRequest), errors.Is(err, scenario.ErrInvalidScenario):
		return http.StatusBadRequest
	case errors.Is(err, runs.ErrRunNotFound), errors.Is(err, scenario.ErrScenarioNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func respondServiceError(w http.ResponseWriter, err error) {
	respondError(w, statusFor(err), err.Error())
}

// Navigation Handlers

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	var req service.NavigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	info, err := s.service.Navigate(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	s.publish(info)
	respondJSON(w, http.StatusOK, info)
}

func (s *Server) handleRunScenario(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSuffix(mux.Vars(r)["name"], ".json")

	info, err := s.service.RunScenario(r.Context(), name)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	s.publish(info)
	respondJSON(w, http.StatusOK, info)
}

// publish broadcasts a completed run and writes the compact server log line
func (s *Server) publish(info *service.RunInfo) {
	if s.hub != nil {
		topic := info.ScenarioName
		if topic == "" {
			topic = websocket.AllTopic
		}
		s.hub.BroadcastRun(topic, info)
	}

	if info.AttemptedTo != nil {
		log.Printf("[RUN] id=%s scenario=%s exec=%d/%d end=%s dir=%s status=%s attempt=(%d,%d)",
			info.ID, scenarioLabel(info), info.ExecutedCommands, info.RequestedCommands,
			info.Outcome.Position, info.Outcome.Heading, info.StopReasonCode,
			info.AttemptedTo.X, info.AttemptedTo.Y)
		return
	}
	log.Printf("[RUN] id=%s scenario=%s exec=%d/%d end=%s dir=%s status=%s",
		info.ID, scenarioLabel(info), info.ExecutedCommands, info.RequestedCommands,
		info.Outcome.Position, info.Outcome.Heading, info.Outcome.Status.Code())
}

func scenarioLabel(info *service.RunInfo) string {
	if info.ScenarioName == "" {
		return "-"
	}
	return info.ScenarioName
}

// Run Handlers

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	list, err := s.service.ListRuns(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	query := r.URL.Query()
	sortBy := query.Get("sort")    // "created" (default), "accessed"
	order := query.Get("order")    // "asc", "desc" (default)
	limitStr := query.Get("limit") // number of runs to return
	scenarioName := query.Get("scenario")

	if sortBy == "" {
		sortBy = "created"
	}
	if order == "" {
		order = "desc"
	}

	if scenarioName != "" {
		filtered := make([]*service.RunInfo, 0, len(list))
		for _, info := range list {
			if info.ScenarioName == scenarioName {
				filtered = append(filtered, info)
			}
		}
		list = filtered
	}
	total := len(list)

	sort.SliceStable(list, func(i, j int) bool {
		var ti, tj time.Time
		if sortBy == "accessed" {
			ti, tj = list[i].LastAccessedAt, list[j].LastAccessedAt
		} else {
			ti, tj = list[i].CreatedAt, list[j].CreatedAt
		}

		if order == "asc" {
			return ti.Before(tj)
		}
		return ti.After(tj)
	})

	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l < len(list) {
			list = list[:l]
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(list),
		"total": total,
		"runs":  list,
		"sort":  sortBy,
		"order": order,
	})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	info, err := s.service.GetRun(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, info)
}

func (s *Server) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	runID := mux.Vars(r)["id"]

	if err := s.service.DeleteRun(r.Context(), runID); err != nil {
		respondServiceError(w, err)
		return
	}

	if s.hub != nil {
		s.hub.BroadcastEvent(websocket.AllTopic, "run_deleted", map[string]string{"id": runID})
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Run %s deleted", runID),
	})
}

// Scenario Handlers

func (s *Server) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	infos, err := s.service.ListScenarios(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if infos == nil {
		infos = []*scenario.Info{}
	}
	respondJSON(w, http.StatusOK, infos)
}

func (s *Server) handleGetScenario(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSuffix(mux.Vars(r)["name"], ".json")

	sc, err := s.service.LoadScenario(r.Context(), name)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, sc)
}

func (s *Server) handleCreateScenario(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id,omitempty"`
		scenario.Scenario
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "Scenario name is required")
		return
	}

	id := req.ID
	if id == "" {
		id = req.Name
	}

	if err := s.service.SaveScenario(r.Context(), id, &req.Scenario); err != nil {
		respondServiceError(w, err)
		return
	}

	if s.hub != nil {
		s.hub.BroadcastEvent(id, "scenario_saved", map[string]string{"scenario_id": id})
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":     "Scenario saved successfully",
		"scenario_id": id,
	})
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		http.Error(w, "WebSocket not available", http.StatusServiceUnavailable)
		return
	}

	topic := r.URL.Query().Get("topic")
	if topic != "" && topic != websocket.AllTopic {
		if _, err := s.service.LoadScenario(r.Context(), topic); err != nil {
			http.Error(w, "Unknown scenario topic", http.StatusNotFound)
			return
		}
	}

	s.hub.ServeWS(w, r, topic)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
