package tracking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/lukasito25/momentum-vita-sub001/internal/telemetry/tracing"
	"github.com/lukasito25/momentum-vita-sub001/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=tracking_test

type trackingService interface {
	StartSession(ctx context.Context, userID string, req StartSessionRequest) (*WorkoutSession, error)
	GetActiveSession(ctx context.Context, userID string) (*WorkoutSession, error)
	ListSessions(ctx context.Context, userID string, limit int) ([]WorkoutSession, error)
	AbandonSession(ctx context.Context, userID, sessionID string) (*WorkoutSession, error)
	InitializeExercise(ctx context.Context, userID, sessionID string, req InitializeExerciseRequest) (*ExerciseTracking, error)
	CompleteSet(ctx context.Context, userID, sessionID, exerciseID string, req CompleteSetRequest) (*CompleteSetResponse, error)
	CompleteExercise(ctx context.Context, userID, sessionID, exerciseID string) (*ExerciseTracking, error)
}

type ListSessionsResponse struct {
	Sessions []WorkoutSession `json:"sessions"`
	Total    int              `json:"total"`
}

type Handler struct {
	service  trackingService
	analyzer *Analyzer
}

func NewHandler(service trackingService, sessions sessionsSource) *Handler {
	return &Handler{
		service:  service,
		analyzer: NewAnalyzer(sessions),
	}
}

func (handler *Handler) HandleStartSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.start")
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

	var req StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("start session, unmarshal json params: %s", err)
		http.Error(w, "start session failed", http.StatusBadRequest)
		return
	}

	if req.ProgramID == "" || req.DayName == "" {
		http.Error(w, "error, program ID or day name empty", http.StatusBadRequest)
		return
	}
	if req.Week < 1 {
		http.Error(w, "error, week must be positive", http.StatusBadRequest)
		return
	}

	session, err := handler.service.StartSession(ctx, userID, req)
	if err != nil {
		log.Errorf("start session for user %s: %s", userID, err)
		http.Error(w, "start session failed", http.StatusInternalServerError)
		return
	}

	handler.writeSession(w, session)
}

func (handler *Handler) HandleGetActiveSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.getActive")
	defer span.End()

	userID := mux.Vars(r)["userID"]
	if userID == "" {
		http.Error(w, "error, user ID is empty", http.StatusBadRequest)
		return
	}

	session, err := handler.service.GetActiveSession(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNoActiveSession) {
			http.Error(w, "no active session", http.StatusNotFound)
			return
		}
		log.Errorf("get active session for user %s: %s", userID, err)
		http.Error(w, "get active session failed", http.StatusInternalServerError)
		return
	}

	handler.writeSession(w, session)
}

func (handler *Handler) HandleListSessions(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.list")
	defer span.End()

	userID := mux.Vars(r)["userID"]
	if userID == "" {
		http.Error(w, "error, user ID is empty", http.StatusBadRequest)
		return
	}

	limit := 0
	limitStr := r.URL.Query().Get("limit")
	if limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
	}

	sessions, err := handler.service.ListSessions(ctx, userID, limit)
	if err != nil {
		log.Errorf("list sessions for user %s: %s", userID, err)
		http.Error(w, "list sessions failed", http.StatusInternalServerError)
		return
	}
	if sessions == nil {
		sessions = []WorkoutSession{}
	}

	respJson, err := json.Marshal(ListSessionsResponse{
		Sessions: sessions,
		Total:    len(sessions),
	})
	if err != nil {
		log.Errorf("marshal sessions for user %s: %s", userID, err)
		http.Error(w, "list sessions failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) HandleAbandonSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.abandon")
	defer span.End()

	vars := mux.Vars(r)
	userID := vars["userID"]
	sessionID := vars["sessionID"]
	if userID == "" || sessionID == "" {
		http.Error(w, "error, user ID or session ID empty", http.StatusBadRequest)
		return
	}

	session, err := handler.service.AbandonSession(ctx, userID, sessionID)
	if err != nil {
		handler.writeSessionError(w, "abandon session", userID, err)
		return
	}

	handler.writeSession(w, session)
}

func (handler *Handler) HandleInitializeExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.initExercise")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	vars := mux.Vars(r)
	userID := vars["userID"]
	sessionID := vars["sessionID"]
	if userID == "" || sessionID == "" {
		http.Error(w, "error, user ID or session ID empty", http.StatusBadRequest)
		return
	}

	var req InitializeExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("initialize exercise, unmarshal json params: %s", err)
		http.Error(w, "initialize exercise failed", http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "error, exercise name empty", http.StatusBadRequest)
		return
	}
	if req.ExerciseIndex < 0 {
		http.Error(w, "error, exercise index negative", http.StatusBadRequest)
		return
	}

	exercise, err := handler.service.InitializeExercise(ctx, userID, sessionID, req)
	if err != nil {
		handler.writeSessionError(w, "initialize exercise", userID, err)
		return
	}

	handler.writeExercise(w, exercise)
}

func (handler *Handler) HandleCompleteSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.completeSet")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	vars := mux.Vars(r)
	userID := vars["userID"]
	sessionID := vars["sessionID"]
	exerciseID := vars["exerciseID"]
	if userID == "" || sessionID == "" || exerciseID == "" {
		http.Error(w, "error, user ID, session ID or exercise ID empty", http.StatusBadRequest)
		return
	}

	var req CompleteSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("complete set, unmarshal json params: %s", err)
		http.Error(w, "complete set failed", http.StatusBadRequest)
		return
	}

	if req.Reps < 0 || req.Weight < 0 {
		http.Error(w, "error, negative reps or weight", http.StatusBadRequest)
		return
	}
	if req.RPE < 0 || req.RPE > 10 {
		http.Error(w, "error, rpe must be between 0 and 10", http.StatusBadRequest)
		return
	}

	resp, err := handler.service.CompleteSet(ctx, userID, sessionID, exerciseID, req)
	if err != nil {
		handler.writeSessionError(w, "complete set", userID, err)
		return
	}

	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("marshal complete set response for user %s: %s", userID, err)
		http.Error(w, "complete set failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) HandleCompleteExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.completeExercise")
	defer span.End()

	vars := mux.Vars(r)
	userID := vars["userID"]
	sessionID := vars["sessionID"]
	exerciseID := vars["exerciseID"]
	if userID == "" || sessionID == "" || exerciseID == "" {
		http.Error(w, "error, user ID, session ID or exercise ID empty", http.StatusBadRequest)
		return
	}

	exercise, err := handler.service.CompleteExercise(ctx, userID, sessionID, exerciseID)
	if err != nil {
		handler.writeSessionError(w, "complete exercise", userID, err)
		return
	}

	handler.writeExercise(w, exercise)
}

func (handler *Handler) HandleExerciseHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.history")
	defer span.End()

	userID := mux.Vars(r)["userID"]
	if userID == "" {
		http.Error(w, "error, user ID is empty", http.StatusBadRequest)
		return
	}

	exerciseName := r.URL.Query().Get("exercise")
	if exerciseName == "" {
		http.Error(w, "error, exercise param is empty", http.StatusBadRequest)
		return
	}

	history, err := handler.analyzer.History(ctx, userID, exerciseName)
	if err != nil {
		log.Errorf("exercise history for user %s [%s]: %s", userID, exerciseName, err)
		http.Error(w, "exercise history failed", http.StatusInternalServerError)
		return
	}

	historyJson, err := json.Marshal(history)
	if err != nil {
		log.Errorf("marshal exercise history for user %s: %s", userID, err)
		http.Error(w, "exercise history failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, historyJson)
}

// writeSessionError maps the recorder's domain errors onto status codes,
// anything unknown is a 500.
func (handler *Handler) writeSessionError(w http.ResponseWriter, op, userID string, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		http.Error(w, "session not found", http.StatusNotFound)
	case errors.Is(err, ErrExerciseNotFound):
		http.Error(w, "exercise not found", http.StatusNotFound)
	case errors.Is(err, ErrSetOutOfRange):
		http.Error(w, "error, set number out of range", http.StatusBadRequest)
	case errors.Is(err, ErrSessionFinished):
		http.Error(w, "error, session already finished", http.StatusBadRequest)
	default:
		log.Errorf("%s for user %s: %s", op, userID, err)
		http.Error(w, op+" failed", http.StatusInternalServerError)
	}
}

func (handler *Handler) writeSession(w http.ResponseWriter, session *WorkoutSession) {
	sessionJson, err := json.Marshal(session)
	if err != nil {
		log.Errorf("marshal session %s: %s", session.ID, err)
		http.Error(w, "marshal session failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, sessionJson)
}

func (handler *Handler) writeExercise(w http.ResponseWriter, exercise *ExerciseTracking) {
	exerciseJson, err := json.Marshal(exercise)
	if err != nil {
		log.Errorf("marshal exercise %s: %s", exercise.ExerciseID, err)
		http.Error(w, "marshal exercise failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, exerciseJson)
}
