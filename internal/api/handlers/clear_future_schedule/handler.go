package clear_future_schedule

import (
	"errors"
	"net/http"

	"github.com/Cappie92/bookme-sub002/internal/api/handlers"
	"github.com/Cappie92/bookme-sub002/internal/api/middleware"
	"github.com/Cappie92/bookme-sub002/internal/service/schedule"
)

const (
	msgInvalidWorkerID = "некорректный идентификатор работника"
	msgAccessDenied    = "нет прав на изменение расписания этого работника"
)

// ClearFutureResponse HTTP response model
type ClearFutureResponse struct {
	SlotsCleared       int `json:"slotsCleared"`
	PreservedConflicts int `json:"preservedConflicts"`
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

// Handle DELETE /api/v1/workers/{workerId}/schedule/future
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "не указан пользователь")
		return
	}

	ownerID, err := handlers.PathInt64(r, "workerId")
	if err != nil {
		h.logger.Warn("DELETE /schedule/future - Invalid worker id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWorkerID)
		return
	}

	result, err := h.service.ClearFuture(r.Context(), callerID, ownerID)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("DELETE /schedule/future - Access denied: caller=%d, owner=%d", callerID, ownerID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("DELETE /schedule/future - Failed: owner=%d, error=%v", ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /schedule/future - Cleared: owner=%d, slotsCleared=%d, preserved=%d",
		ownerID, result.SlotsCleared, result.PreservedConflicts)
	handlers.RespondJSON(w, http.StatusOK, &ClearFutureResponse{
		SlotsCleared:       result.SlotsCleared,
		PreservedConflicts: result.PreservedConflicts,
	})
}
