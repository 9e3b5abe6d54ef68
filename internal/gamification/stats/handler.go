package stats

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/lukasito25/momentum-vita-sub001/internal/telemetry/tracing"
	"github.com/lukasito25/momentum-vita-sub001/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=stats_test

type statsService interface {
	Get(ctx context.Context, userID string) (*GamificationStats, error)
	WeeklyReset(ctx context.Context, userID string) (*GamificationStats, error)
}

type Handler struct {
	service statsService
}

func NewHandler(service statsService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.get")
	defer span.End()

	vars := mux.Vars(r)
	userID := vars["userID"]
	if userID == "" {
		http.Error(w, "error, user ID is empty", http.StatusBadRequest)
		return
	}

	stats, err := h.service.Get(ctx, userID)
	if err != nil {
		log.Errorf("get stats for %s: %s", userID, err)
		http.Error(w, "get stats failed", http.StatusInternalServerError)
		return
	}

	statsJson, err := json.Marshal(stats)
	if err != nil {
		log.Errorf("marshal stats for %s: %s", userID, err)
		http.Error(w, "get stats failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, statsJson)
}

// HandleWeeklyReset serves the external scheduler that starts a new week.
// The scheduler has no feedback channel, so the fresh record is returned
// for the cron logs.
func (h *Handler) HandleWeeklyReset(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.weeklyreset")
	defer span.End()

	vars := mux.Vars(r)
	userID := vars["userID"]
	if userID == "" {
		http.Error(w, "error, user ID is empty", http.StatusBadRequest)
		return
	}

	stats, err := h.service.WeeklyReset(ctx, userID)
	if err != nil {
		log.Errorf("weekly reset for %s: %s", userID, err)
		http.Error(w, "weekly reset failed", http.StatusInternalServerError)
		return
	}

	statsJson, err := json.Marshal(stats)
	if err != nil {
		log.Errorf("marshal stats for %s: %s", userID, err)
		http.Error(w, "weekly reset failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, statsJson)
}
