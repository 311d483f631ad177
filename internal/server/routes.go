package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/lazypower/lifeclock/internal/engine"
	"github.com/lazypower/lifeclock/internal/longevity"
)

// maxBodyBytes bounds request bodies; every payload here is a few fields.
const maxBodyBytes = 64 << 10

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

// fail maps engine errors onto status codes.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, longevity.ErrInvalidInput) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	writeError(w, http.StatusInternalServerError, err.Error())
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.engine.User(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleSetLifeExpectancy(w http.ResponseWriter, r *http.Request) {
	var req engine.LifeExpectancyRequest
	if !decode(w, r, &req) {
		return
	}
	u, err := s.engine.OverrideLifeExpectancy(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleCountdown(w http.ResponseWriter, r *http.Request) {
	c, err := s.engine.Countdown(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleNutritionScore(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FoodName string `json:"foodName"`
	}
	if !decode(w, r, &req) {
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]int{"score": s.engine.NutritionScore(req.FoodName)})
}

func (s *Server) handleListFood(w http.ResponseWriter, r *http.Request) {
	entries, err := s.engine.RecentFood(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleTodayFood(w http.ResponseWriter, r *http.Request) {
	entries, err := s.engine.TodayFood(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleAddFood(w http.ResponseWriter, r *http.Request) {
	var req engine.FoodRequest
	if !decode(w, r, &req) {
		return
	}
	entry, err := s.engine.LogFood(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleListExercise(w http.ResponseWriter, r *http.Request) {
	entries, err := s.engine.RecentExercise(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleAddExercise(w http.ResponseWriter, r *http.Request) {
	var req engine.ExerciseRequest
	if !decode(w, r, &req) {
		return
	}
	entry, err := s.engine.LogExercise(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleListSleep(w http.ResponseWriter, r *http.Request) {
	entries, err := s.engine.RecentSleep(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleAddSleep(w http.ResponseWriter, r *http.Request) {
	var req engine.SleepRequest
	if !decode(w, r, &req) {
		return
	}
	entry, err := s.engine.LogSleep(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, entry)
}
