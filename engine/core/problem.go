package core

import (
	"errors"
	"net/http"
)

// ProblemDocument models the canonical error envelope for API responses.
type ProblemDocument struct {
	Status  int    `json:"status"            example:"400"`
	Error   string `json:"error"             example:"Bad Request"`
	Details string `json:"details,omitempty" example:"intervalMinutes must be greater than zero"`
	Type    string `json:"type,omitempty"    example:"about:blank"`
}

// Problem captures the information returned in an RFC 7807 error response.
type Problem struct {
	Type   string
	Title  string
	Status int
	Detail string
}

// NormalizeProblem ensures the provided problem includes canonical defaults.
func NormalizeProblem(problem *Problem) *Problem {
	if problem == nil {
		problem = &Problem{}
	}
	if problem.Status == 0 {
		problem.Status = http.StatusInternalServerError
	}
	if problem.Title == "" {
		problem.Title = http.StatusText(problem.Status)
	}
	if problem.Type == "" {
		problem.Type = "about:blank"
	}
	return problem
}

// BuildProblemBody assembles the serialized representation of the problem.
func BuildProblemBody(problem *Problem) map[string]any {
	body := map[string]any{
		"status": problem.Status,
		"error":  problem.Title,
	}
	if problem.Detail != "" {
		body["details"] = problem.Detail
	}
	if problem.Type != "" {
		body["type"] = problem.Type
	}
	return body
}

// ProblemFromError maps a domain error to its transport representation.
// Non-domain errors collapse to an opaque internal failure so storage
// details never reach the caller.
func ProblemFromError(err error) *Problem {
	var domErr *Error
	if !errors.As(err, &domErr) {
		return NormalizeProblem(&Problem{Status: http.StatusInternalServerError})
	}
	status := http.StatusInternalServerError
	detail := domErr.Detail
	switch domErr.Kind {
	case KindNotFound:
		status = http.StatusNotFound
	case KindInvalid:
		status = http.StatusBadRequest
	case KindConflict:
		status = http.StatusConflict
	case KindStorage:
		detail = ""
	}
	if detail != "" && domErr.Entity != "" {
		detail = domErr.Entity + ": " + detail
	}
	return NormalizeProblem(&Problem{Status: status, Detail: detail})
}
