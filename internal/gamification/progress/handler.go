package progress

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/lukasito25/momentum-vita-sub001/internal/gamification/achievements"
	"github.com/lukasito25/momentum-vita-sub001/internal/levels"
	"github.com/lukasito25/momentum-vita-sub001/internal/telemetry/tracing"
	"github.com/lukasito25/momentum-vita-sub001/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=progress_test

type progressService interface {
	Get(ctx context.Context, userID string) (*UserProgress, error)
	Upsert(ctx context.Context, p UserProgress) (*UserProgress, error)
	AddXP(ctx context.Context, userID string, amount int) (*UserProgress, error)
	SetCurrentProgram(ctx context.Context, userID, programID string) (*UserProgress, error)
	AdvanceWeek(ctx context.Context, userID string) (*UserProgress, error)
	CompleteProgram(ctx context.Context, userID, programID string) (*UserProgress, error)
}

type achievementsEvaluator interface {
	EvaluateAndAward(ctx context.Context, userID, metricType string, currentValue int) ([]achievements.Achievement, error)
}

type AddXPRequest struct {
	Amount int `json:"amount"`
}

type ProgramRequest struct {
	ProgramID string `json:"programId"`
}

type CompleteProgramResponse struct {
	Progress             *UserProgress              `json:"progress"`
	UnlockedAchievements []achievements.Achievement `json:"unlockedAchievements"`
}

// GetProgressResponse is the progress record plus the position within the
// current level, precomputed for the client's XP bar.
type GetProgressResponse struct {
	UserProgress
	LevelProgress levels.Progress `json:"levelProgress"`
}

type Handler struct {
	service   progressService
	evaluator achievementsEvaluator
}

func NewHandler(service progressService, evaluator achievementsEvaluator) *Handler {
	return &Handler{
		service:   service,
		evaluator: evaluator,
	}
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.get")
	defer span.End()

	vars := mux.Vars(r)
	userID := vars["userID"]
	if userID == "" {
		http.Error(w, "error, user ID is empty", http.StatusBadRequest)
		return
	}

	userProgress, err := handler.service.Get(ctx, userID)
	if err != nil {
		log.Errorf("get progress for %s: %s", userID, err)
		http.Error(w, "get progress failed", http.StatusInternalServerError)
		return
	}

	progressJson, err := json.Marshal(GetProgressResponse{
		UserProgress:  *userProgress,
		LevelProgress: levels.LevelProgress(userProgress.TotalXP),
	})
	if err != nil {
		log.Errorf("marshal progress for %s: %s", userID, err)
		http.Error(w, "get progress failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, progressJson)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.update")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	vars := mux.Vars(r)
	userID := vars["userID"]
	if userID == "" {
		http.Error(w, "error, user ID is empty", http.StatusBadRequest)
		return
	}

	var userProgress UserProgress
	if err := json.NewDecoder(r.Body).Decode(&userProgress); err != nil {
		log.Errorf("update progress, unmarshal json params: %s", err)
		http.Error(w, "update progress failed", http.StatusBadRequest)
		return
	}

	// the path segment is authoritative, whatever the payload says
	userProgress.UserID = userID

	updated, err := handler.service.Upsert(ctx, userProgress)
	if err != nil {
		log.Errorf("update progress for %s: %s", userID, err)
		http.Error(w, "update progress failed", http.StatusInternalServerError)
		return
	}

	updatedJson, err := json.Marshal(updated)
	if err != nil {
		log.Errorf("marshal updated progress for %s: %s", userID, err)
		http.Error(w, "update progress failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, updatedJson)
}

func (handler *Handler) HandleAddXP(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.addxp")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	vars := mux.Vars(r)
	userID := vars["userID"]
	if userID == "" {
		http.Error(w, "error, user ID is empty", http.StatusBadRequest)
		return
	}

	var req AddXPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("add xp, unmarshal json params: %s", err)
		http.Error(w, "add xp failed", http.StatusBadRequest)
		return
	}
	if req.Amount <= 0 {
		http.Error(w, "error, xp amount must be positive", http.StatusBadRequest)
		return
	}

	updated, err := handler.service.AddXP(ctx, userID, req.Amount)
	if err != nil {
		log.Errorf("add %d xp for %s: %s", req.Amount, userID, err)
		http.Error(w, "add xp failed", http.StatusInternalServerError)
		return
	}

	updatedJson, err := json.Marshal(updated)
	if err != nil {
		log.Errorf("marshal progress for %s: %s", userID, err)
		http.Error(w, "add xp failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, updatedJson)
}

func (handler *Handler) HandleSetProgram(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.program.set")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	vars := mux.Vars(r)
	userID := vars["userID"]
	if userID == "" {
		http.Error(w, "error, user ID is empty", http.StatusBadRequest)
		return
	}

	var req ProgramRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("set program, unmarshal json params: %s", err)
		http.Error(w, "set program failed", http.StatusBadRequest)
		return
	}
	if req.ProgramID == "" {
		http.Error(w, "error, program ID is required", http.StatusBadRequest)
		return
	}

	updated, err := handler.service.SetCurrentProgram(ctx, userID, req.ProgramID)
	if err != nil {
		log.Errorf("set program %s for %s: %s", req.ProgramID, userID, err)
		http.Error(w, "set program failed", http.StatusInternalServerError)
		return
	}

	updatedJson, err := json.Marshal(updated)
	if err != nil {
		log.Errorf("marshal progress for %s: %s", userID, err)
		http.Error(w, "set program failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, updatedJson)
}

func (handler *Handler) HandleAdvanceWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.program.advanceweek")
	defer span.End()

	vars := mux.Vars(r)
	userID := vars["userID"]
	if userID == "" {
		http.Error(w, "error, user ID is empty", http.StatusBadRequest)
		return
	}

	updated, err := handler.service.AdvanceWeek(ctx, userID)
	if err != nil {
		log.Errorf("advance week for %s: %s", userID, err)
		http.Error(w, "advance week failed", http.StatusInternalServerError)
		return
	}

	updatedJson, err := json.Marshal(updated)
	if err != nil {
		log.Errorf("marshal progress for %s: %s", userID, err)
		http.Error(w, "advance week failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, updatedJson)
}

func (handler *Handler) HandleCompleteProgram(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.program.complete")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	vars := mux.Vars(r)
	userID := vars["userID"]
	if userID == "" {
		http.Error(w, "error, user ID is empty", http.StatusBadRequest)
		return
	}

	var req ProgramRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("complete program, unmarshal json params: %s", err)
		http.Error(w, "complete program failed", http.StatusBadRequest)
		return
	}
	if req.ProgramID == "" {
		http.Error(w, "error, program ID is required", http.StatusBadRequest)
		return
	}

	updated, err := handler.service.CompleteProgram(ctx, userID, req.ProgramID)
	if err != nil {
		log.Errorf("complete program %s for %s: %s", req.ProgramID, userID, err)
		http.Error(w, "complete program failed", http.StatusInternalServerError)
		return
	}

	// a finished program can unlock achievements, but a failed pass never
	// rolls the completion back
	unlocked, err := handler.evaluator.EvaluateAndAward(
		ctx, userID, achievements.MetricProgramCompletion, len(updated.CompletedPrograms),
	)
	if err != nil {
		log.Errorf("program completion achievements pass for %s: %s", userID, err)
		unlocked = []achievements.Achievement{}
	}
	if len(unlocked) > 0 {
		if fresh, err := handler.service.Get(ctx, userID); err == nil {
			updated = fresh
		} else {
			log.Errorf("refresh progress after unlocks for %s: %s", userID, err)
		}
	}

	resp := CompleteProgramResponse{
		Progress:             updated,
		UnlockedAchievements: unlocked,
	}
	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("marshal complete program response for %s: %s", userID, err)
		http.Error(w, "complete program failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}
