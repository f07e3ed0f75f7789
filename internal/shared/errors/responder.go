package errors

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the media type for Problem Details responses.
const ContentTypeProblemJSON = "application/problem+json"

// ErrorMapper maps an application error to a ProblemDetail. It reports false
// when the error is not one it recognises.
type ErrorMapper func(err error) (ProblemDetail, bool)

// Responder writes problem+json responses. Errors pass through the mappers in
// order; an error no mapper claims is answered with Fallback.
type Responder struct {
	// BaseURI is prepended to relative problem type URIs.
	BaseURI  string
	Fallback ProblemDetail
	mappers  []ErrorMapper
}

func NewResponder(baseURI string, fallback ProblemDetail, mappers ...ErrorMapper) *Responder {
	return &Responder{BaseURI: baseURI, Fallback: fallback, mappers: mappers}
}

// Respond sends the problem with its own status. Instance defaults to the
// request path.
func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if r.BaseURI != "" && len(problem.Type) > 0 && problem.Type[0] == '/' {
		problem.Type = r.BaseURI + problem.Type
	}
	if problem.Instance == "" {
		problem.Instance = c.Request.URL.Path
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.JSON(problem.Status, problem)
}

// RespondError maps err and responds. A ProblemDetail anywhere in the chain is
// sent as is.
func (r *Responder) RespondError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			r.Respond(c, problem)
			return
		}
	}
	var problem ProblemDetail
	if errors.As(err, &problem) {
		r.Respond(c, problem)
		return
	}
	r.Respond(c, r.Fallback.WithDetail(err.Error()))
}

// RespondStatus answers a transport failure, such as an undecodable body or a
// bad path parameter, with the problem template for status.
func (r *Responder) RespondStatus(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	r.Respond(c, ProblemForStatus(status).WithDetail(err.Error()))
}

// NotFound sends a 404 naming the missing resource.
func (r *Responder) NotFound(c *gin.Context, resourceType string, identifier any) {
	r.Respond(c, NewNotFoundProblem(resourceType, identifier))
}

// ValidationFailed sends a 422 carrying one message per rejected field.
func (r *Responder) ValidationFailed(c *gin.Context, fieldErrors map[string]string) {
	r.Respond(c, NewValidationProblem(fieldErrors))
}
