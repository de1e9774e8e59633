package server

import (
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/horizonfin/horizon/internal/advisory"
	"github.com/horizonfin/horizon/internal/calculation"
	"github.com/horizonfin/horizon/internal/domain"
	"github.com/horizonfin/horizon/internal/storage"
)

func (s *Server) handleWelcome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to the Retirement App API",
		"version": Version,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":      "healthy",
		"message":     "API is running successfully",
		"environment": env,
	})
}

func (s *Server) handleRetirementStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "active",
		"message": "Retirement planning service is available",
	})
}

// profileID parses the {profileID} route parameter; a non-numeric id is a
// 400, not a 404.
func profileID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "profileID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		writeError(w, http.StatusBadRequest, "invalid profile id "+strconv.Quote(raw))
		return 0, false
	}
	return id, true
}

func (s *Server) storeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "Profile not found")
	case errors.Is(err, storage.ErrEmailExists):
		writeError(w, http.StatusBadRequest, "Profile with this email already exists")
	default:
		s.log.Error().Err(err).Msg("storage error")
		writeError(w, http.StatusInternalServerError, "Database error: "+err.Error())
	}
}

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.store.ListProfiles(r.Context())
	if err != nil {
		s.storeError(w, err)
		return
	}
	if profiles == nil {
		profiles = []domain.Profile{}
	}
	writeJSON(w, http.StatusOK, profiles)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := profileID(w, r)
	if !ok {
		return
	}
	profile, err := s.store.GetProfile(r.Context(), id)
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleGetProfileByEmail(w http.ResponseWriter, r *http.Request) {
	profile, err := s.store.GetProfileByEmail(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var profile domain.Profile
	if !decodeBody(w, r, &profile) {
		return
	}
	if profile.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}
	if err := s.parser.ValidateProfile(&profile); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.store.CreateProfile(r.Context(), profile)
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := profileID(w, r)
	if !ok {
		return
	}

	var fields map[string]any
	if !decodeBody(w, r, &fields) {
		return
	}
	// Identity and bookkeeping fields are server-managed.
	for _, k := range []string{"id", "created_at", "updated_at", "last_calculation"} {
		delete(fields, k)
	}

	existing, err := s.store.GetProfile(r.Context(), id)
	if err != nil {
		s.storeError(w, err)
		return
	}
	merged, err := storage.MergeProfile(existing, fields)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.parser.ValidateProfile(&merged); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := s.store.UpdateProfile(r.Context(), id, fields)
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := profileID(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteProfile(r.Context(), id); err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Profile deleted successfully"})
}

func (s *Server) handleCloneProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := profileID(w, r)
	if !ok {
		return
	}
	clone, err := s.store.CloneProfile(r.Context(), id)
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clone)
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req calculationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	opts := req.options()
	if err := s.parser.ValidateScenario(opts); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := s.store.GetProfile(r.Context(), req.ProfileID)
	if err != nil {
		s.storeError(w, err)
		return
	}

	calc := s.engine.CalculateRetirement(profile, opts)
	if err := s.store.TouchCalculation(r.Context(), profile.ID, calc.CalculationDate); err != nil {
		s.log.Warn().Err(err).Int64("profile_id", profile.ID).Msg("failed to record calculation time")
	}
	writeJSON(w, http.StatusOK, calc)
}

func (s *Server) handleScenario(w http.ResponseWriter, r *http.Request) {
	var req scenarioRequest
	if !decodeBody(w, r, &req) {
		return
	}
	opts := req.options()
	if err := s.parser.ValidateScenario(opts); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := s.store.GetProfile(r.Context(), req.ProfileID)
	if err != nil {
		s.storeError(w, err)
		return
	}

	scenario, err := req.apply(profile)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.parser.ValidateProfile(&scenario); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// A scenario is exploratory: the stored profile keeps its last
	// calculation time.
	writeJSON(w, http.StatusOK, s.engine.CalculateRetirement(scenario, opts))
}

func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	id, ok := profileID(w, r)
	if !ok {
		return
	}

	rate := decimal.NewFromFloat(0.07)
	if raw := r.URL.Query().Get("expected_return_rate"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil || parsed.IsNegative() || parsed.GreaterThan(decimal.NewFromFloat(0.2)) {
			writeError(w, http.StatusBadRequest, "expected_return_rate must be between 0 and 0.2")
			return
		}
		rate = parsed
	}

	profile, err := s.store.GetProfile(r.Context(), id)
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.engine.CalculateRetirementReadiness(profile, rate, nil))
}

func (s *Server) handleRequiredSavings(w http.ResponseWriter, r *http.Request) {
	var req requiredSavingsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rate := decimal.NewFromFloat(0.07)
	if req.ExpectedReturnRate != nil {
		rate = *req.ExpectedReturnRate
	}
	inflation := decimal.NewFromFloat(0.03)
	if req.InflationRate != nil {
		inflation = *req.InflationRate
	}

	writeJSON(w, http.StatusOK, calculation.CalculateRequiredSavings(
		req.TargetMonthlyIncome, req.YearsToRetirement, rate, inflation))
}

func (s *Server) handleAssist(w http.ResponseWriter, r *http.Request) {
	var req assistRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Question == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}

	profile, err := s.store.GetProfile(r.Context(), req.ProfileID)
	if err != nil {
		s.storeError(w, err)
		return
	}

	opts := domain.DefaultScenarioOptions()
	if req.ExpectedReturnRate != nil {
		opts.ExpectedReturnRate = *req.ExpectedReturnRate
	}
	calc := s.engine.CalculateRetirement(profile, opts)

	resp, err := s.advisor.Assist(r.Context(), advisory.Request{
		Profile:  profile,
		Timeline: calc.Assumptions.Timeline,
		Question: req.Question,
		History:  req.History,
	})
	if errors.Is(err, advisory.ErrUnavailable) {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("assist failed")
		writeError(w, http.StatusBadGateway, "Assistant error: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
