package errors_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	apierrors "github.com/Apurer/go-gin-order-flow/internal/shared/errors"
)

var errKnown = errors.New("known failure")

func knownMapper(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, errKnown) {
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func serve(t *testing.T, respond func(c *gin.Context)) (*httptest.ResponseRecorder, apierrors.ProblemDetail) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/flows/f1/submit", nil)
	respond(c)

	var problem apierrors.ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	require.Equal(t, apierrors.ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	return rec, problem
}

func TestRespondError(t *testing.T) {
	responder := apierrors.NewResponder("", apierrors.ErrBadGateway, knownMapper)

	cases := map[string]struct {
		err        error
		wantStatus int
		wantType   string
	}{
		"mapped error": {
			err:        fmt.Errorf("submit: %w", errKnown),
			wantStatus: http.StatusConflict,
			wantType:   apierrors.TypeConflict,
		},
		"wrapped problem detail passes through": {
			err:        fmt.Errorf("lookup: %w", apierrors.ErrNotFound.WithDetail("gone")),
			wantStatus: http.StatusNotFound,
			wantType:   apierrors.TypeNotFound,
		},
		"unclaimed error uses fallback": {
			err:        errors.New("restaurant unreachable"),
			wantStatus: http.StatusBadGateway,
			wantType:   apierrors.TypeBadGateway,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rec, problem := serve(t, func(c *gin.Context) { responder.RespondError(c, tc.err) })
			require.Equal(t, tc.wantStatus, rec.Code)
			require.Equal(t, tc.wantStatus, problem.Status)
			require.Equal(t, tc.wantType, problem.Type)
			require.Equal(t, "/flows/f1/submit", problem.Instance)
		})
	}
}

func TestRespondError_FallbackCarriesDetail(t *testing.T) {
	responder := apierrors.NewResponder("", apierrors.ErrInternal)
	rec, problem := serve(t, func(c *gin.Context) { responder.RespondError(c, errors.New("disk full")) })
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "disk full", problem.Detail)
}

func TestRespondError_BaseURIPrefixesRelativeType(t *testing.T) {
	responder := apierrors.NewResponder("https://pizza.example", apierrors.ErrInternal, knownMapper)
	_, problem := serve(t, func(c *gin.Context) { responder.RespondError(c, errKnown) })
	require.Equal(t, "https://pizza.example"+apierrors.TypeConflict, problem.Type)
}

func TestRespondStatus(t *testing.T) {
	responder := apierrors.NewResponder("", apierrors.ErrBadGateway)

	cases := map[string]struct {
		status   int
		wantType string
	}{
		"bad request": {status: http.StatusBadRequest, wantType: apierrors.TypeBadRequest},
		"not found":   {status: http.StatusNotFound, wantType: apierrors.TypeNotFound},
		"conflict":    {status: http.StatusConflict, wantType: apierrors.TypeConflict},
		"internal":    {status: http.StatusInternalServerError, wantType: apierrors.TypeInternal},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rec, problem := serve(t, func(c *gin.Context) {
				responder.RespondStatus(c, tc.status, errors.New("invalid body"))
			})
			require.Equal(t, tc.status, rec.Code)
			require.Equal(t, tc.wantType, problem.Type)
			require.Equal(t, "invalid body", problem.Detail)
		})
	}
}

func TestRespondStatus_NilErrorWritesNothing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/cart", nil)

	apierrors.NewResponder("", apierrors.ErrInternal).RespondStatus(c, http.StatusBadRequest, nil)
	require.False(t, c.Writer.Written())
}

func TestValidationFailed(t *testing.T) {
	responder := apierrors.NewResponder("", apierrors.ErrBadGateway)
	fields := map[string]string{"phone": "Please provide a valid phone number"}

	rec, problem := serve(t, func(c *gin.Context) { responder.ValidationFailed(c, fields) })
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Equal(t, apierrors.TypeUnprocessable, problem.Type)
	require.Equal(t, map[string]any{"phone": "Please provide a valid phone number"}, problem.Extensions["fields"])
}

func TestNotFound(t *testing.T) {
	responder := apierrors.NewResponder("", apierrors.ErrBadGateway)
	rec, problem := serve(t, func(c *gin.Context) { responder.NotFound(c, "flow", "f1") })
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "flow", problem.Extensions["resourceType"])
	require.Equal(t, "f1", problem.Extensions["identifier"])
}
