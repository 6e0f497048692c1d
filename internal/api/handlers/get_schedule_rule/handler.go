package get_schedule_rule

import (
	"errors"
	"net/http"

	"github.com/Cappie92/bookme-sub002/internal/api/handlers"
	"github.com/Cappie92/bookme-sub002/internal/api/middleware"
	"github.com/Cappie92/bookme-sub002/internal/service/schedule"
)

const (
	msgInvalidWorkerID = "некорректный идентификатор работника"
	msgRuleNotFound    = "правило расписания не найдено"
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

// Handle GET /api/v1/workers/{workerId}/schedule/rules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "не указан пользователь")
		return
	}

	ownerID, err := handlers.PathInt64(r, "workerId")
	if err != nil {
		h.logger.Warn("GET /schedule/rules - Invalid worker id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWorkerID)
		return
	}

	rule, err := h.service.GetRule(r.Context(), callerID, ownerID)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("GET /schedule/rules - Access denied: caller=%d, owner=%d", callerID, ownerID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, schedule.ErrRuleNotFound):
			h.logger.Info("GET /schedule/rules - Rule not found: owner=%d", ownerID)
			handlers.RespondNotFound(w, msgRuleNotFound)

		default:
			h.logger.Error("GET /schedule/rules - Failed: owner=%d, error=%v", ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainRule(rule))
}
