package update_weekly_schedule

import (
	"errors"
	"net/http"

	"github.com/Cappie92/bookme-sub002/internal/api/handlers"
	"github.com/Cappie92/bookme-sub002/internal/api/middleware"
	updateWeekly "github.com/Cappie92/bookme-sub002/internal/usecase/update_weekly_schedule"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidWorkerID    = "некорректный идентификатор работника"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgEmptyUpdate        = "запрос не содержит ни слотов, ни выделения"
	msgAccessDenied       = "нет прав на изменение расписания этого работника"
)

type Handler struct {
	useCase UpdateWeeklyScheduleUseCase
	logger  Logger
}

func NewHandler(useCase UpdateWeeklyScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/workers/{workerId}/schedule/weekly
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "не указан пользователь")
		return
	}

	ownerID, err := handlers.PathInt64(r, "workerId")
	if err != nil {
		h.logger.Warn("PUT /schedule/weekly - Invalid worker id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWorkerID)
		return
	}

	var req UpdateWeeklyScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /schedule/weekly - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(callerID, ownerID)
	if err != nil {
		h.logger.Warn("PUT /schedule/weekly - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateWeekly.ErrAccessDenied):
			h.logger.Warn("PUT /schedule/weekly - Access denied: caller=%d, owner=%d", callerID, ownerID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, updateWeekly.ErrEmptyUpdate):
			h.logger.Warn("PUT /schedule/weekly - Empty update: owner=%d", ownerID)
			handlers.RespondBadRequest(w, msgEmptyUpdate)

		case errors.Is(err, updateWeekly.ErrInvalidInput):
			h.logger.Warn("PUT /schedule/weekly - Invalid input: owner=%d, error=%v", ownerID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /schedule/weekly - Failed: owner=%d, error=%v", ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /schedule/weekly - Updated: owner=%d, slotsWritten=%d", ownerID, result.SlotsWritten)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
