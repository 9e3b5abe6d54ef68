package completion

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/lukasito25/momentum-vita-sub001/internal/telemetry/tracing"
	"github.com/lukasito25/momentum-vita-sub001/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=completion_test

type completionService interface {
	CompleteWorkout(ctx context.Context, req CompleteWorkoutRequest) (*CompleteWorkoutResult, error)
}

type Handler struct {
	service completionService
}

func NewHandler(service completionService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleCompleteWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.completion.completeWorkout")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	userID := mux.Vars(r)["userID"]
	if userID == "" {
		http.Error(w, "error, user ID is empty", http.StatusBadRequest)
		return
	}

	var req CompleteWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("complete workout, unmarshal json params: %s", err)
		http.Error(w, "complete workout failed", http.StatusBadRequest)
		return
	}
	req.UserID = userID

	if req.ProgramID == "" || req.DayName == "" {
		http.Error(w, "error, program ID or day name empty", http.StatusBadRequest)
		return
	}
	if req.Week < 1 {
		http.Error(w, "error, week must be positive", http.StatusBadRequest)
		return
	}
	if req.NutritionCompleted < 0 {
		http.Error(w, "error, negative nutrition count", http.StatusBadRequest)
		return
	}

	result, err := handler.service.CompleteWorkout(ctx, req)
	if result == nil {
		log.Errorf("complete workout for user %s: %s", userID, err)
		http.Error(w, "complete workout failed", http.StatusInternalServerError)
		return
	}
	if err != nil {
		// the workout is counted, only some of the follow-up writes
		// failed, the client keeps the partial result
		log.Errorf("complete workout for user %s applied partially: %s", userID, err)
	}

	resultJson, err := json.Marshal(result)
	if err != nil {
		log.Errorf("marshal complete workout result for user %s: %s", userID, err)
		http.Error(w, "complete workout failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, resultJson)
}
