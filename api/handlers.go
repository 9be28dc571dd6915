package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"loadboard/pkg/logger"
	"loadboard/pkg/models"
	"loadboard/pkg/seed"
	"loadboard/service"
)

type Handler struct {
	svc    service.IServiceManager
	tokens *Tokens
	log    logger.ILogger
}

func NewHandler(svc service.IServiceManager, tokens *Tokens, log logger.ILogger) *Handler {
	return &Handler{svc: svc, tokens: tokens, log: log}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.Error("request failed", logger.String("path", r.URL.Path), logger.Error(err))
	}
	writeError(w, status, err.Error())
}

// currentUser returns the logged-in user or writes a 401.
func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user := sessionFrom(r.Context()).User()
	if user == nil {
		writeError(w, http.StatusUnauthorized, service.ErrNotAuthenticated.Error())
		return nil, false
	}
	return user, true
}

func (h *Handler) currentDriver(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return nil, false
	}
	if user.Role != models.RoleDriver {
		writeError(w, http.StatusForbidden, "only drivers can do this")
		return nil, false
	}
	return user, true
}

type loginRequest struct {
	Role models.Role  `json:"role"`
	User *models.User `json:"user"`
}

type loginResponse struct {
	Token string           `json:"token"`
	State models.AuthState `json:"state"`
}

// Login opens a new session, either as a demo account for a role or as the given user.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	sessionID := uuid.NewString()
	var (
		store *service.AuthStore
		err   error
	)
	if req.User != nil {
		store, err = h.svc.Auth().Login(r.Context(), sessionID, req.User)
	} else {
		store, err = h.svc.Auth().LoginDemo(r.Context(), sessionID, req.Role)
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	token, err := h.tokens.Issue(sessionID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token, State: store.State()})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	st := h.svc.Auth().Logout(r.Context(), sessionFrom(r.Context()).Key())
	writeJSON(w, http.StatusOK, st)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionFrom(r.Context()).State())
}

func (h *Handler) UpdateSubscription(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Tier models.SubscriptionTier `json:"tier"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	st, err := h.svc.Auth().UpdateSubscription(r.Context(), sessionFrom(r.Context()).Key(), req.Tier)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *Handler) UpdateTruckTypes(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TruckTypes []string `json:"truck_types"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	store := sessionFrom(r.Context())
	store.UpdateTruckTypes(r.Context(), req.TruckTypes)
	writeJSON(w, http.StatusOK, store.State())
}

func (h *Handler) Plans(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, seed.Plans())
}

func (h *Handler) TruckTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, seed.TruckTypes)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	loads, err := h.svc.Loads().Feed(r.Context(), service.FeedSort(r.URL.Query().Get("sort")))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loads)
}

func (h *Handler) GetLoad(w http.ResponseWriter, r *http.Request) {
	load, err := h.svc.Loads().Load(r.Context(), mux.Vars(r)["load_id"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, load)
}

func (h *Handler) PostLoad(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	var in models.LoadInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	load, err := h.svc.Loads().PostLoad(r.Context(), user, in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, load)
}

func (h *Handler) ExpressInterest(w http.ResponseWriter, r *http.Request) {
	h.changeInterest(w, r, h.svc.Loads().ExpressInterest)
}

func (h *Handler) RemoveInterest(w http.ResponseWriter, r *http.Request) {
	h.changeInterest(w, r, h.svc.Loads().RemoveInterest)
}

func (h *Handler) changeInterest(w http.ResponseWriter, r *http.Request, change func(ctx context.Context, loadID, driverID string) error) {
	driver, ok := h.currentDriver(w, r)
	if !ok {
		return
	}
	loadID := mux.Vars(r)["load_id"]
	if err := change(r.Context(), loadID, driver.ID); err != nil {
		h.fail(w, r, err)
		return
	}
	mine, err := h.svc.Loads().MyInterestedLoads(r.Context(), driver.ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"my_interested_loads": mine})
}

// InterestedDrivers lists the roster entries interested in a load, capped by the caller's plan.
func (h *Handler) InterestedDrivers(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	drivers, err := h.svc.Loads().VisibleInterestedDrivers(r.Context(), mux.Vars(r)["load_id"], user.Subscription)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, drivers)
}

func (h *Handler) Scan(w http.ResponseWriter, r *http.Request) {
	added, err := h.svc.Loads().ScanAILoads(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{
		"added":            added,
		"ai_scanned_loads": h.svc.Loads().AIScannedLoads(),
	})
}

func (h *Handler) MyInterestedLoads(w http.ResponseWriter, r *http.Request) {
	driver, ok := h.currentDriver(w, r)
	if !ok {
		return
	}
	mine, err := h.svc.Loads().MyInterestedLoads(r.Context(), driver.ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mine)
}

func (h *Handler) MyLoads(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	if user.Role != models.RoleOwner {
		writeError(w, http.StatusForbidden, "only owners have posted loads")
		return
	}
	loads, err := h.svc.Loads().OwnerLoads(r.Context(), user.ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if loads == nil {
		loads = []*models.Load{}
	}
	writeJSON(w, http.StatusOK, loads)
}

func (h *Handler) Drivers(w http.ResponseWriter, r *http.Request) {
	drivers, err := h.svc.Loads().Drivers(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, drivers)
}
