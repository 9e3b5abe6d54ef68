package achievements

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/lukasito25/momentum-vita-sub001/internal/telemetry/tracing"
	"github.com/lukasito25/momentum-vita-sub001/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=achievements_test

type achievementsService interface {
	Catalog(ctx context.Context) ([]Achievement, error)
	UserAchievements(ctx context.Context, userID string) ([]UserAchievement, error)
}

type Handler struct {
	service achievementsService
}

func NewHandler(service achievementsService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) HandleGetCatalog(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.achievements.catalog")
	defer span.End()

	catalog, err := h.service.Catalog(ctx)
	if err != nil {
		log.Errorf("get achievement catalog: %s", err)
		http.Error(w, "get achievements failed", http.StatusInternalServerError)
		return
	}

	catalogJson, err := json.Marshal(catalog)
	if err != nil {
		log.Errorf("marshal achievement catalog: %s", err)
		http.Error(w, "get achievements failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, catalogJson)
}

func (h *Handler) HandleGetUserAchievements(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.achievements.user")
	defer span.End()

	vars := mux.Vars(r)
	userID := vars["userID"]
	if userID == "" {
		http.Error(w, "error, user ID is empty", http.StatusBadRequest)
		return
	}

	userAchievements, err := h.service.UserAchievements(ctx, userID)
	if err != nil {
		log.Errorf("get achievements for %s: %s", userID, err)
		http.Error(w, "get achievements failed", http.StatusInternalServerError)
		return
	}

	achievementsJson, err := json.Marshal(userAchievements)
	if err != nil {
		log.Errorf("marshal achievements for %s: %s", userID, err)
		http.Error(w, "get achievements failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, achievementsJson)
}
