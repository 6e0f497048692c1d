package resolve_conflict

import (
	"errors"
	"net/http"

	"github.com/Cappie92/bookme-sub002/internal/api/handlers"
	"github.com/Cappie92/bookme-sub002/internal/api/middleware"
	resolveConflict "github.com/Cappie92/bookme-sub002/internal/usecase/resolve_conflict"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidWorkerID    = "некорректный идентификатор работника"
	msgInvalidFields      = "некорректные дата или время конфликта, ожидается YYYY-MM-DD и HH:MM"
	msgAccessDenied       = "нет прав на изменение расписания этого работника"
)

type Handler struct {
	useCase ResolveConflictUseCase
	logger  Logger
}

func NewHandler(useCase ResolveConflictUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/workers/{workerId}/schedule/conflicts/resolve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "не указан пользователь")
		return
	}

	ownerID, err := handlers.PathInt64(r, "workerId")
	if err != nil {
		h.logger.Warn("POST /schedule/conflicts/resolve - Invalid worker id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWorkerID)
		return
	}

	var req ResolveConflictRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /schedule/conflicts/resolve - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(callerID, ownerID)
	if err != nil {
		h.logger.Warn("POST /schedule/conflicts/resolve - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFields)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, resolveConflict.ErrAccessDenied):
			h.logger.Warn("POST /schedule/conflicts/resolve - Access denied: caller=%d, owner=%d", callerID, ownerID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, resolveConflict.ErrInvalidInput):
			h.logger.Warn("POST /schedule/conflicts/resolve - Invalid input: owner=%d, error=%v", ownerID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /schedule/conflicts/resolve - Failed: owner=%d, error=%v", ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /schedule/conflicts/resolve - Resolved: owner=%d, action=%s, slotsAffected=%d",
		ownerID, result.Action, result.SlotsAffected)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
