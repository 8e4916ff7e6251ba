package assistant

import "github.com/hrstreamline/hrstreamline-backend-go/internal/pkg/validator"

type QueryRequest struct {
	Query string `json:"query"`
}

func (r *QueryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Query) {
		errs = append(errs, validator.ValidationError{
			Field:   "query",
			Message: "query is required",
		})
	}
	if len(r.Query) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "query",
			Message: "query must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type QueryResponse struct {
	Question         string `json:"question"`
	SQL              string `json:"sql,omitempty"`
	Answer           string `json:"answer"`
	ProcessingTimeMS int64  `json:"processing_time_ms"`
}
