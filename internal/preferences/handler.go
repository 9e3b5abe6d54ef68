package preferences

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/lukasito25/momentum-vita-sub001/internal/store"
	"github.com/lukasito25/momentum-vita-sub001/internal/telemetry/tracing"
	"github.com/lukasito25/momentum-vita-sub001/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=preferences_test

type prefsStore interface {
	Get(ctx context.Context, key string) (UserPreferences, error)
	Set(ctx context.Context, key string, val UserPreferences) error
}

type Handler struct {
	store prefsStore

	// NowFunc is used for the updated at timestamp, replaceable in tests.
	NowFunc func() time.Time
}

func NewHandler(prefsStore prefsStore) *Handler {
	return &Handler{
		store:   prefsStore,
		NowFunc: time.Now,
	}
}

// HandleGet returns the stored preferences of a user, or the defaults
// when the user never saved any.
func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.preferences.get")
	defer span.End()

	userID := mux.Vars(r)["userID"]
	if userID == "" {
		http.Error(w, "error, user ID is empty", http.StatusBadRequest)
		return
	}

	prefs, err := handler.store.Get(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		prefs = DefaultPreferences(userID)
	} else if err != nil {
		log.Errorf("get preferences for user %s: %s", userID, err)
		http.Error(w, "get preferences failed", http.StatusInternalServerError)
		return
	}

	handler.writePreferences(w, prefs)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.preferences.update")
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

	var prefs UserPreferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		log.Tracef("update preferences, unmarshal json params: %s", err)
		http.Error(w, "update preferences failed", http.StatusBadRequest)
		return
	}

	prefs.UserID = userID
	if ok := prefs.Normalize(); !ok {
		http.Error(w, "error, unknown unit system", http.StatusBadRequest)
		return
	}
	prefs.UpdatedAt = handler.NowFunc()

	if err := handler.store.Set(ctx, userID, prefs); err != nil {
		log.Errorf("update preferences for user %s: %s", userID, err)
		http.Error(w, "update preferences failed", http.StatusInternalServerError)
		return
	}

	handler.writePreferences(w, prefs)
}

func (handler *Handler) writePreferences(w http.ResponseWriter, prefs UserPreferences) {
	prefsJson, err := json.Marshal(prefs)
	if err != nil {
		log.Errorf("marshal preferences for user %s: %s", prefs.UserID, err)
		http.Error(w, "marshal preferences failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, prefsJson)
}
