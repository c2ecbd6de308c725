package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(method, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var out APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestDataResponseUsesStatus(t *testing.T) {
	c, rec := newContext(http.MethodGet, "")
	require.NoError(t, BadRequestResponse(c, "nope"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	out := decode(t, rec)
	assert.Equal(t, 400, out.Status)
	assert.Equal(t, "Bad Request", out.Message)
}

func TestAppErrorResponse(t *testing.T) {
	c, rec := newContext(http.MethodGet, "")
	require.NoError(t, AppErrorResponse(c, TooManyRequestsError("Rate limit exceeded. Please try again later.")))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "Rate limit exceeded. Please try again later.", decode(t, rec).Message)

	c, rec = newContext(http.MethodGet, "")
	require.NoError(t, AppErrorResponse(c, assert.AnError))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestUpstreamAppErrorClampsStatus(t *testing.T) {
	assert.Equal(t, http.StatusServiceUnavailable, UpstreamAppError(503, "x").Status)
	assert.Equal(t, http.StatusBadGateway, UpstreamAppError(302, "x").Status)
}

type sampleRequest struct {
	Name    string `json:"name" validate:"required"`
	Horizon int    `json:"horizon" default:"5" validate:"gte=1,lte=60"`
}

func TestReadAndValidateRequest(t *testing.T) {
	c, _ := newContext(http.MethodPost, `{"name":"azuki"}`)
	var req sampleRequest
	assert.Nil(t, ReadAndValidateRequest(c, &req))
	assert.Equal(t, 5, req.Horizon)

	c, _ = newContext(http.MethodPost, `{"horizon":99}`)
	req = sampleRequest{}
	errs, ok := ReadAndValidateRequest(c, &req).([]ValidationError)
	require.True(t, ok)
	require.Len(t, errs, 2)
	assert.Equal(t, "name", errs[0].Field)
	assert.Equal(t, "ERR_REQUIRED", errs[0].Code)
	assert.Equal(t, "ERR_LTE", errs[1].Code)
	assert.Equal(t, "60", errs[1].Params["max"])
}

func TestReadAndValidateRequestBadJSON(t *testing.T) {
	c, _ := newContext(http.MethodPost, `{"name":`)
	var req sampleRequest
	errs, ok := ReadAndValidateRequest(c, &req).([]ValidationError)
	require.True(t, ok)
	assert.Equal(t, "ERR_UNKNOWN", errs[0].Code)
}

type samplePoint struct {
	Price float64 `json:"price" validate:"gt=0"`
}

type nestedRequest struct {
	Points []samplePoint `json:"points" validate:"required,min=1,dive"`
	Limit  int           `query:"limit" validate:"lte=10"`
}

func TestValidateStructNestedPath(t *testing.T) {
	req := nestedRequest{Points: []samplePoint{{Price: 1}, {Price: -1}}, Limit: 11}

	errs, ok := ValidateStruct(context.Background(), &req).([]ValidationError)
	require.True(t, ok)
	require.Len(t, errs, 2)
	assert.Equal(t, "points[1].price", errs[0].Field)
	assert.Equal(t, "points[1].price must be greater than 0", errs[0].Message)
	assert.Equal(t, "limit", errs[1].Field)
}

func TestAppErrorCodes(t *testing.T) {
	assert.Equal(t, "ERR_NOT_FOUND", NotFoundError("x").Code)
	assert.Equal(t, "ERR_METHOD_NOT_ALLOWED", MethodNotAllowedError("x").Code)
	assert.Equal(t, http.StatusInternalServerError, InternalError("x").Status)

	err := UnauthorizedError("bad token").WithError(assert.AnError)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "bad token")
}
