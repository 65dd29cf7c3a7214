package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/xtding233/gacha-server/internal/domain"
	"github.com/xtding233/gacha-server/internal/logger"
	"github.com/xtding233/gacha-server/internal/pull"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// PullRequest is the body of POST /players/{playerID}/pulls. Times is not validated here;
// an unsupported count gets a no-op pull response.
type PullRequest struct {
	BannerType int    `json:"banner_type" validate:"required,gt=0"`
	Times      int    `json:"times"`
	RequestID  string `json:"request_id" validate:"omitempty,max=64"`
}

// ReloadResponse is the body of a successful POST /admin/reload.
type ReloadResponse struct {
	Version uint64 `json:"version"`
	Banners int    `json:"banners"`
}

func playerID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "playerID"), 10, 64)
	return id, err == nil && id > 0
}

func (s *Server) handleListBanners(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.composer.Listing(s.registry))
}

func (s *Server) handlePull(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	id, ok := playerID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidPlayerID)
		return
	}

	var req PullRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		log.Debug("Failed to decode pull request", "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest, validationDetails(err)...)
		return
	}

	resp, err := s.pulls.Pull(r.Context(), pull.Request{
		PlayerID:   id,
		BannerType: req.BannerType,
		Times:      req.Times,
		RequestID:  req.RequestID,
	})
	respondJSON(w, pullStatus(err), resp)
}

// pullStatus maps a pull error to an HTTP status. The body is always the pull response.
func pullStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, domain.ErrUnknownBanner), errors.Is(err, domain.ErrUnknownPlayer):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateRequest):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInsufficientCurrency), errors.Is(err, domain.ErrInsufficientCapacity):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusServiceUnavailable
	}
}

func (s *Server) handlePity(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidPlayerID)
		return
	}
	states, err := s.pulls.Pity(r.Context(), id)
	switch {
	case errors.Is(err, domain.ErrUnknownPlayer):
		respondError(w, http.StatusNotFound, ErrMsgUnknownPlayer)
	case err != nil:
		logger.FromContext(r.Context()).Error("Failed to read pity", "error", err)
		respondError(w, http.StatusServiceUnavailable, ErrMsgPityUnavailable)
	default:
		respondJSON(w, http.StatusOK, states)
	}
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.reload(r.Context()); err != nil {
		respondError(w, http.StatusUnprocessableEntity, ErrMsgReloadFailed, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, ReloadResponse{
		Version: s.registry.Version(),
		Banners: len(s.registry.List()),
	})
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if s.registry.Version() == 0 {
		respondJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable", Message: "no banners loaded"})
		return
	}
	if s.ready != nil {
		if err := s.ready(r.Context()); err != nil {
			logger.FromContext(r.Context()).Warn("Readiness check failed", "error", err)
			respondJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable", Message: ErrMsgNotReady})
			return
		}
	}
	respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func validationDetails(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]string, 0, len(verrs))
	for _, e := range verrs {
		out = append(out, fmt.Sprintf("%s failed %s", e.Field(), e.Tag()))
	}
	return out
}
