// Package server exposes the scheduling engine over HTTP. It is a thin
// shaping layer: handlers parse parameters, fetch the task snapshot, call
// the engine, and serialize the result. All real work happens in the
// scheduler package.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/julianstephens/horizon/internal/constants"
	"github.com/julianstephens/horizon/internal/logger"
	"github.com/julianstephens/horizon/internal/models"
	"github.com/julianstephens/horizon/internal/scheduler"
	"github.com/julianstephens/horizon/internal/storage"
	"github.com/julianstephens/horizon/internal/utils"
	"github.com/julianstephens/horizon/internal/validation"
)

// Server serves the scheduling API over HTTP.
type Server struct {
	store  storage.Provider
	engine *scheduler.Engine
	addr   string
}

func New(store storage.Provider, engine *scheduler.Engine, addr string) *Server {
	return &Server{store: store, engine: engine, addr: addr}
}

// Handler returns the API routing table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/schedule", s.handleSchedule)
	mux.HandleFunc("/api/schedule/preview", s.handlePreview)
	mux.HandleFunc("/api/schedule/score", s.handleScore)
	mux.HandleFunc("/api/schedule/workload", s.handleWorkload)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// ListenAndServe blocks serving the API.
func (s *Server) ListenAndServe() error {
	logger.Info("http server listening", "addr", s.addr)
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return srv.ListenAndServe()
}

type scheduleParams struct {
	StartDate        string         `json:"start_date"`
	HorizonDays      int            `json:"horizon_days"`
	Project          string         `json:"project"`
	IncludeCompleted bool           `json:"include_completed"`
	SlotCapacities   map[string]int `json:"slot_capacities"`
	TaskIDs          []string       `json:"task_ids"`
}

// parseScheduleParams accepts either a JSON POST body or GET query
// parameters. The HTTP boundary is lenient: out-of-range horizons are
// clamped here rather than rejected.
func parseScheduleParams(r *http.Request) (scheduleParams, error) {
	p := scheduleParams{HorizonDays: constants.DefaultHorizonDays}

	if r.Method == http.MethodPost {
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			return p, errors.New("invalid JSON body")
		}
		if p.HorizonDays == 0 {
			p.HorizonDays = constants.DefaultHorizonDays
		}
	} else {
		q := r.URL.Query()
		p.StartDate = q.Get("start_date")
		p.Project = q.Get("project")
		p.IncludeCompleted = q.Get("include_completed") == "true"
		if v := q.Get("horizon_days"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return p, errors.New("horizon_days must be an integer")
			}
			p.HorizonDays = n
		}
		caps := map[string]int{}
		for _, slot := range scheduler.SlotNames {
			if v := q.Get(string(slot) + "_capacity"); v != "" {
				n, err := strconv.Atoi(v)
				if err != nil {
					return p, errors.New(string(slot) + "_capacity must be an integer")
				}
				caps[string(slot)] = n
			}
		}
		if len(caps) > 0 {
			p.SlotCapacities = caps
		}
		p.TaskIDs = q["task_ids"]
	}

	p.HorizonDays = clampHorizon(p.HorizonDays)
	return p, nil
}

func clampHorizon(days int) int {
	if days < constants.MinHorizonDays {
		return constants.MinHorizonDays
	}
	if days > constants.MaxHorizonDays {
		return constants.MaxHorizonDays
	}
	return days
}

func (p scheduleParams) capacities() *scheduler.Capacities {
	if p.SlotCapacities == nil {
		return nil
	}
	caps := scheduler.DefaultCapacities()
	if v, ok := p.SlotCapacities[string(scheduler.SlotMorning)]; ok {
		caps.Morning = v
	}
	if v, ok := p.SlotCapacities[string(scheduler.SlotAfternoon)]; ok {
		caps.Afternoon = v
	}
	if v, ok := p.SlotCapacities[string(scheduler.SlotEvening)]; ok {
		caps.Evening = v
	}
	return &caps
}

func (s *Server) fetchTasks(p scheduleParams) ([]models.Task, error) {
	tasks, err := s.store.GetTasks(storage.TaskFilter{
		IncludeCompleted: p.IncludeCompleted,
		Project:          p.Project,
	})
	if err != nil {
		return nil, err
	}
	if len(p.TaskIDs) == 0 {
		return tasks, nil
	}
	wanted := make(map[string]bool, len(p.TaskIDs))
	for _, id := range p.TaskIDs {
		wanted[id] = true
	}
	var filtered []models.Task
	for _, t := range tasks {
		if wanted[t.ID] {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	p, err := parseScheduleParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	tasks, err := s.fetchTasks(p)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load tasks")
		return
	}

	result, err := s.engine.Generate(scheduler.Request{
		Tasks:       tasks,
		StartDate:   p.StartDate,
		HorizonDays: p.HorizonDays,
		Capacities:  p.capacities(),
	})
	if err != nil {
		writeGenerateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	q := r.URL.Query()
	date := q.Get("date")
	if date == "" {
		date = utils.FormatDate(utils.Today())
	}

	tasks, err := s.fetchTasks(scheduleParams{Project: q.Get("project")})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load tasks")
		return
	}

	result, err := s.engine.Generate(scheduler.Request{
		Tasks:       tasks,
		StartDate:   date,
		HorizonDays: 1,
	})
	if err != nil {
		writeGenerateError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"date":       date,
		"schedule":   result.Day(date),
		"task_count": len(tasks),
	})
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var in struct {
		DueDate        string `json:"due_date"`
		Priority       string `json:"priority"`
		EnergyLevel    string `json:"energy_level"`
		TimePreference string `json:"time_preference"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	task := models.Task{
		Priority:        models.Priority(in.Priority),
		EnergyLevel:     models.EnergyLevel(in.EnergyLevel),
		TimePreference:  models.TimePreference(in.TimePreference),
		DueDate:         in.DueDate,
		DurationMinutes: 1, // scoring does not use duration
	}.WithDefaults()
	if issues := validation.ValidateTasks([]models.Task{task}); len(issues) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid input", "issues": issues})
		return
	}

	breakdown, err := s.engine.ScoreTask(scheduler.ScoreInput{
		DueDate:        task.DueDate,
		Priority:       task.Priority,
		EnergyLevel:    task.EnergyLevel,
		TimePreference: task.TimePreference,
	}, utils.Today())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, breakdown)
}

func (s *Server) handleWorkload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	p, err := parseScheduleParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	tasks, err := s.fetchTasks(p)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load tasks")
		return
	}

	result, err := s.engine.Generate(scheduler.Request{
		Tasks:       tasks,
		StartDate:   p.StartDate,
		HorizonDays: p.HorizonDays,
	})
	if err != nil {
		writeGenerateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scheduler.AnalyzeWorkload(result, tasks))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": constants.Version})
}

func writeGenerateError(w http.ResponseWriter, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid input", "issues": verr.Issues})
		return
	}
	logger.Error("schedule generation failed", "error", err)
	writeError(w, http.StatusInternalServerError, "failed to generate schedule")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
