package get_weekly_schedule

import (
	"errors"
	"net/http"

	"github.com/Cappie92/bookme-sub002/internal/api/handlers"
	"github.com/Cappie92/bookme-sub002/internal/api/middleware"
	"github.com/Cappie92/bookme-sub002/internal/service/schedule"
)

const (
	msgInvalidWorkerID   = "некорректный идентификатор работника"
	msgInvalidWeekOffset = "некорректный параметр weekOffset"
	msgAccessDenied      = "нет прав на просмотр расписания этого работника"
)

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

// Handle GET /api/v1/workers/{workerId}/schedule/weekly
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "не указан пользователь")
		return
	}

	ownerID, err := handlers.PathInt64(r, "workerId")
	if err != nil {
		h.logger.Warn("GET /schedule/weekly - Invalid worker id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWorkerID)
		return
	}

	weekOffset, err := handlers.QueryInt(r, "weekOffset", 0)
	if err != nil {
		h.logger.Warn("GET /schedule/weekly - Invalid weekOffset: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWeekOffset)
		return
	}

	week, err := h.service.GetWeekly(r.Context(), callerID, ownerID, weekOffset)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("GET /schedule/weekly - Access denied: caller=%d, owner=%d", callerID, ownerID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("GET /schedule/weekly - Invalid input: owner=%d, error=%v", ownerID, err)
			handlers.RespondBadRequest(w, msgInvalidWeekOffset)

		default:
			h.logger.Error("GET /schedule/weekly - Failed: owner=%d, error=%v", ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromServiceModel(week))
}
