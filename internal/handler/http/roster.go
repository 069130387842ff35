package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/Kalpa111334/Dutch-Trails-QR/internal/domain/roster"
	"github.com/Kalpa111334/Dutch-Trails-QR/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type RosterHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
	Resolve(w http.ResponseWriter, r *http.Request)
	CreateOverride(w http.ResponseWriter, r *http.Request)
	DeleteOverride(w http.ResponseWriter, r *http.Request)
}

type rosterHandlerImpl struct {
	rosterService roster.RosterService
}

func NewRosterHandler(rosterService roster.RosterService) RosterHandler {
	return &rosterHandlerImpl{
		rosterService: rosterService,
	}
}

// Create implements RosterHandler.
func (h *rosterHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req roster.CreateRosterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.rosterService.CreateRoster(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Roster created", result)
}

// Get implements RosterHandler.
func (h *rosterHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.rosterService.GetRoster(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements RosterHandler.
func (h *rosterHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := roster.RosterFilter{
		EmployeeID: q.Get("employee_id"),
		Page:       1,
		Limit:      20,
	}
	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			response.BadRequest(w, "invalid query parameter: page", nil)
			return
		}
		filter.Page = page
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 || limit > 100 {
			response.BadRequest(w, "invalid query parameter: limit", nil)
			return
		}
		filter.Limit = limit
	}
	if v := q.Get("active_on"); v != "" {
		activeOn, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.BadRequest(w, "invalid query parameter: active_on", nil)
			return
		}
		filter.ActiveOn = &activeOn
	}

	result, err := h.rosterService.ListRosters(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Rosters, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
	})
}

// Update implements RosterHandler.
func (h *rosterHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req roster.UpdateRosterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.rosterService.UpdateRoster(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Roster updated", result)
}

// Deactivate implements RosterHandler.
func (h *rosterHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.rosterService.DeactivateRoster(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Roster deactivated", nil)
}

// Resolve implements RosterHandler. It exposes the schedule resolution used
// by attendance recording so operators can inspect what applies to an
// employee on a date.
func (h *rosterHandlerImpl) Resolve(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")

	dateParam := r.URL.Query().Get("date")
	if dateParam == "" {
		response.BadRequest(w, "query parameter date is required", nil)
		return
	}
	date, err := time.Parse("2006-01-02", dateParam)
	if err != nil {
		response.BadRequest(w, "invalid query parameter: date", nil)
		return
	}

	resolved, err := h.rosterService.Resolve(r.Context(), employeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	payload := map[string]interface{}{
		"roster_id":            resolved.RosterID,
		"day_off":              resolved.DayOff,
		"grace_period_minutes": resolved.GracePeriodMinutes,
		"found":                resolved.Found,
	}
	if resolved.Found && !resolved.DayOff {
		payload["start_time"] = resolved.Start.String()
		payload["end_time"] = resolved.End.String()
	}

	response.Success(w, payload)
}

// CreateOverride implements RosterHandler.
func (h *rosterHandlerImpl) CreateOverride(w http.ResponseWriter, r *http.Request) {
	var req roster.CreateOverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.rosterService.CreateOverride(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Schedule override created", result)
}

// DeleteOverride implements RosterHandler.
func (h *rosterHandlerImpl) DeleteOverride(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.rosterService.DeleteOverride(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Schedule override deleted", nil)
}
