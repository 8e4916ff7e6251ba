package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/assistant"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/handler/http/response"
)

type AssistantHandler interface {
	Query(w http.ResponseWriter, r *http.Request)
}

type AssistantHandlerImpl struct {
	assistantService assistant.AssistantService
}

func NewAssistantHandler(assistantService assistant.AssistantService) AssistantHandler {
	return &AssistantHandlerImpl{assistantService: assistantService}
}

// Query implements AssistantHandler.
func (a *AssistantHandlerImpl) Query(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrUnauthorized(w, r)
	if !ok {
		return
	}

	var req assistant.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("AssistantQuery decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := a.assistantService.Ask(r.Context(), claims, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}
