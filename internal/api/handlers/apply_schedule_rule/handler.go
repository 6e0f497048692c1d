package apply_schedule_rule

import (
	"errors"
	"net/http"

	"github.com/Cappie92/bookme-sub002/internal/api/handlers"
	"github.com/Cappie92/bookme-sub002/internal/api/middleware"
	applyRule "github.com/Cappie92/bookme-sub002/internal/usecase/apply_schedule_rule"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidWorkerID    = "некорректный идентификатор работника"
	msgInvalidRuleFields  = "некорректные дата или время в правиле, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidRule        = "некорректное правило повторяемости"
	msgAccessDenied       = "нет прав на изменение расписания этого работника"
)

type Handler struct {
	useCase ApplyScheduleRuleUseCase
	logger  Logger
}

func NewHandler(useCase ApplyScheduleRuleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/workers/{workerId}/schedule/rules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "не указан пользователь")
		return
	}

	ownerID, err := handlers.PathInt64(r, "workerId")
	if err != nil {
		h.logger.Warn("POST /schedule/rules - Invalid worker id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWorkerID)
		return
	}

	var req ApplyScheduleRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /schedule/rules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(callerID, ownerID)
	if err != nil {
		h.logger.Warn("POST /schedule/rules - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRuleFields)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, applyRule.ErrAccessDenied):
			h.logger.Warn("POST /schedule/rules - Access denied: caller=%d, owner=%d", callerID, ownerID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, applyRule.ErrInvalidRule):
			h.logger.Warn("POST /schedule/rules - Invalid rule: owner=%d, error=%v", ownerID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, applyRule.ErrInvalidInput):
			h.logger.Warn("POST /schedule/rules - Invalid input: owner=%d, error=%v", ownerID, err)
			handlers.RespondBadRequest(w, msgInvalidRule)

		default:
			h.logger.Error("POST /schedule/rules - Failed: owner=%d, error=%v", ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /schedule/rules - Materialized: owner=%d, slotsWritten=%d, conflictDays=%d",
		ownerID, result.SlotsWritten, len(result.Conflicts))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
