package assistant

import (
	"context"

	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/auth"
)

type AssistantService interface {
	// Ask answers an HR admin's question. Generation and execution failures
	// are reported in the answer text rather than as errors.
	Ask(ctx context.Context, claims auth.Claims, req QueryRequest) (QueryResponse, error)
}
