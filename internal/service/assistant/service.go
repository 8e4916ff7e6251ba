package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/assistant"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/auth"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/pkg/metrics"
)

const noResults = "No results found"

// Outcome labels for the assistant query counter.
const (
	outcomeAnswered        = "answered"
	outcomeGenerationError = "generation_error"
	outcomeExecutionError  = "execution_error"
	outcomeAnswerError     = "answer_error"
)

// LLM completes a single prompt.
type LLM interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type AssistantServiceImpl struct {
	llm      LLM
	db       assistant.QueryRunner
	selector *ExampleSelector
	k        int
	metrics  *metrics.Collection
	now      func() time.Time
}

// NewAssistantService builds the question → SQL → answer chain. A nil llm or
// db leaves the assistant disabled.
func NewAssistantService(llm LLM, db assistant.QueryRunner, examples []assistant.Example, k int, m *metrics.Collection) *AssistantServiceImpl {
	return &AssistantServiceImpl{
		llm:      llm,
		db:       db,
		selector: NewExampleSelector(examples),
		k:        k,
		metrics:  m,
		now:      time.Now,
	}
}

// Ask implements assistant.AssistantService. Only HR admins may ask.
func (s *AssistantServiceImpl) Ask(ctx context.Context, claims auth.Claims, req assistant.QueryRequest) (assistant.QueryResponse, error) {
	if !claims.IsHRAdmin() {
		return assistant.QueryResponse{}, auth.ErrForbidden
	}

	start := s.now()
	resp, err := s.Answer(ctx, req.Query)
	if err != nil {
		return assistant.QueryResponse{}, err
	}
	resp.ProcessingTimeMS = s.now().Sub(start).Milliseconds()

	slog.Info("Assistant query answered", "emp_id", claims.EmployeeID, "duration_ms", resp.ProcessingTimeMS)
	return resp, nil
}

// Answer runs the chain for question. Failures after the question is accepted
// are reported in the answer text.
func (s *AssistantServiceImpl) Answer(ctx context.Context, question string) (assistant.QueryResponse, error) {
	if s.llm == nil || s.db == nil {
		return assistant.QueryResponse{}, assistant.ErrDisabled
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return assistant.QueryResponse{}, assistant.ErrEmptyQuestion
	}

	resp := assistant.QueryResponse{Question: question}

	query, err := s.generateSQL(ctx, question)
	if err != nil {
		slog.Error("Assistant failed to generate SQL", "error", err)
		s.metrics.ObserveAssistantQuery(outcomeGenerationError)
		resp.Answer = fmt.Sprintf("Error generating SQL query: %v", err)
		return resp, nil
	}
	resp.SQL = query

	result, err := s.db.Run(ctx, query)
	if err != nil {
		slog.Error("Assistant failed to execute SQL", "sql", query, "error", err)
		s.metrics.ObserveAssistantQuery(outcomeExecutionError)
		resp.Answer = fmt.Sprintf("Error executing SQL query: %v. Please check your question and try again.", err)
		return resp, nil
	}
	if strings.TrimSpace(result) == "" {
		result = noResults
	}

	answer, err := s.generateAnswer(ctx, question, query, result)
	if err != nil {
		slog.Error("Assistant failed to generate answer", "error", err)
		s.metrics.ObserveAssistantQuery(outcomeAnswerError)
		resp.Answer = fmt.Sprintf("Found results but couldn't generate a proper response: %s", result)
		return resp, nil
	}

	s.metrics.ObserveAssistantQuery(outcomeAnswered)
	resp.Answer = answer
	return resp, nil
}

func (s *AssistantServiceImpl) generateSQL(ctx context.Context, question string) (string, error) {
	tableInfo, err := s.db.TableInfo(ctx)
	if err != nil {
		return "", err
	}

	prompt, err := render(sqlPrompt, sqlPromptData{
		Dialect:   s.db.Dialect(),
		TableInfo: tableInfo,
		Examples:  s.selector.Select(question, s.k),
		Question:  question,
	})
	if err != nil {
		return "", err
	}

	raw, err := s.llm.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	slog.Debug("Assistant generated SQL", "raw", raw)

	query := CleanSQL(raw)
	if err := ValidateSQL(query); err != nil {
		return "", err
	}
	return query, nil
}

func (s *AssistantServiceImpl) generateAnswer(ctx context.Context, question, query, result string) (string, error) {
	prompt, err := render(answerPrompt, answerPromptData{Question: question, SQL: query, Result: result})
	if err != nil {
		return "", err
	}
	answer, err := s.llm.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}
