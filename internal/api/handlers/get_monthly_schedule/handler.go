package get_monthly_schedule

import (
	"errors"
	"net/http"
	"time"

	"github.com/Cappie92/bookme-sub002/internal/api/handlers"
	"github.com/Cappie92/bookme-sub002/internal/api/middleware"
	"github.com/Cappie92/bookme-sub002/internal/service/schedule"
)

const (
	msgInvalidWorkerID = "некорректный идентификатор работника"
	msgInvalidPeriod   = "некорректные параметры year/month"
	msgAccessDenied    = "нет прав на просмотр расписания этого работника"
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

// Handle GET /api/v1/workers/{workerId}/schedule/monthly
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "не указан пользователь")
		return
	}

	ownerID, err := handlers.PathInt64(r, "workerId")
	if err != nil {
		h.logger.Warn("GET /schedule/monthly - Invalid worker id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWorkerID)
		return
	}

	now := time.Now()
	year, err := handlers.QueryInt(r, "year", now.Year())
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}
	monthNum, err := handlers.QueryInt(r, "month", int(now.Month()))
	if err != nil || monthNum < 1 || monthNum > 12 {
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	month, err := h.service.GetMonthly(r.Context(), callerID, ownerID, year, time.Month(monthNum))
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("GET /schedule/monthly - Access denied: caller=%d, owner=%d", callerID, ownerID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("GET /schedule/monthly - Invalid input: owner=%d, error=%v", ownerID, err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /schedule/monthly - Failed: owner=%d, error=%v", ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromServiceModel(month))
}
