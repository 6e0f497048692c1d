package get_conflicts

import (
	"errors"
	"net/http"

	"github.com/Cappie92/bookme-sub002/internal/api/handlers"
	"github.com/Cappie92/bookme-sub002/internal/api/middleware"
	"github.com/Cappie92/bookme-sub002/internal/service/schedule"
)

const (
	msgInvalidWorkerID = "некорректный идентификатор работника"
	msgAccessDenied    = "нет прав на просмотр расписания этого работника"
)

// ConflictListResponse HTTP response model
type ConflictListResponse struct {
	OwnerID int64                           `json:"ownerId"`
	Days    []handlers.DayConflictsResponse `json:"days"`
}

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/workers/{workerId}/schedule/conflicts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "не указан пользователь")
		return
	}

	ownerID, err := handlers.PathInt64(r, "workerId")
	if err != nil {
		h.logger.Warn("GET /schedule/conflicts - Invalid worker id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWorkerID)
		return
	}

	includeDismissed := r.URL.Query().Get("includeDismissed") == "true"

	days, err := h.service.GetConflicts(r.Context(), callerID, ownerID, includeDismissed)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("GET /schedule/conflicts - Access denied: caller=%d, owner=%d", callerID, ownerID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /schedule/conflicts - Failed: owner=%d, error=%v", ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &ConflictListResponse{
		OwnerID: ownerID,
		Days:    handlers.FromDayConflicts(days),
	})
}
