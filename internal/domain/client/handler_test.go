package client

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debtledger/internal/pkg/validator"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validator.RegisterSet("company", []string{"Avon", "Scentia", "Zermat"}))

	svc, _ := setupTestService(t, false)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func doJSONRequest(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decodeClient(t *testing.T, rr *httptest.ResponseRecorder) Client {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	require.True(t, env.Success, rr.Body.String())
	var c Client
	require.NoError(t, json.Unmarshal(env.Data, &c))
	return c
}

func TestClientEndpoints_PaymentFlow(t *testing.T) {
	r := setupTestRouter(t)

	rr := doJSONRequest(r, http.MethodPost, "/api/v1/clients", map[string]any{"name": "Ana", "debt": 100, "company": "Avon"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	created := decodeClient(t, rr)
	assert.Equal(t, "100", created.Debt)
	assert.Equal(t, StatusUnpaid, created.Status)

	rr = doJSONRequest(r, http.MethodPost, "/api/v1/clients/Ana/payments", map[string]any{"amount": "40"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	c := decodeClient(t, rr)
	assert.Equal(t, "60.00", c.Debt)
	assert.Equal(t, StatusUnpaid, c.Status)

	rr = doJSONRequest(r, http.MethodPost, "/api/v1/clients/Ana/payments", map[string]any{"amount": 60})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	c = decodeClient(t, rr)
	assert.Equal(t, "0", c.Debt)
	assert.Equal(t, StatusPaid, c.Status)

	rr = doJSONRequest(r, http.MethodGet, "/api/v1/clients/Ana/payments", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	var payments []Payment
	require.NoError(t, json.Unmarshal(env.Data, &payments))
	assert.Len(t, payments, 2)
}

func TestClientEndpoints_StatusAndDebt(t *testing.T) {
	r := setupTestRouter(t)
	rr := doJSONRequest(r, http.MethodPost, "/api/v1/clients", map[string]any{"name": "Ana María", "debt": "75", "company": "Zermat"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	path := "/api/v1/clients/" + url.PathEscape("Ana María")

	rr = doJSONRequest(r, http.MethodPost, path+"/paid", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, StatusPaid, decodeClient(t, rr).Status)

	rr = doJSONRequest(r, http.MethodPost, path+"/unpaid", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, StatusUnpaid, decodeClient(t, rr).Status)

	rr = doJSONRequest(r, http.MethodPatch, path+"/debt", map[string]any{"debt": "12.34"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "12.34", decodeClient(t, rr).Debt)
}

func TestClientEndpoints_ListAndDelete(t *testing.T) {
	r := setupTestRouter(t)
	for _, body := range []map[string]any{
		{"name": "Ana", "debt": "1", "company": "Avon"},
		{"name": "Luis", "debt": "2", "company": "Scentia"},
		{"name": "Bea", "debt": "3", "company": "Avon"},
	} {
		rr := doJSONRequest(r, http.MethodPost, "/api/v1/clients", body)
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	list := func(path string) ClientListResponse {
		rr := doJSONRequest(r, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var env envelope
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
		var out ClientListResponse
		require.NoError(t, json.Unmarshal(env.Data, &out))
		return out
	}

	assert.Equal(t, 3, list("/api/v1/clients").Total)
	assert.Equal(t, 2, list("/api/v1/clients?company=Avon").Total)

	rr := doJSONRequest(r, http.MethodDelete, "/api/v1/clients/Ana", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	rr = doJSONRequest(r, http.MethodDelete, "/api/v1/clients/Ana", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	avon := list("/api/v1/clients?company=Avon")
	require.Equal(t, 1, avon.Total)
	assert.Equal(t, "Bea", avon.Clients[0].Name)
}

func TestClientEndpoints_Errors(t *testing.T) {
	r := setupTestRouter(t)

	rr := doJSONRequest(r, http.MethodPost, "/api/v1/clients", "{not json")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_JSON")

	rr = doJSONRequest(r, http.MethodPost, "/api/v1/clients", map[string]any{"name": "Ana", "debt": "1", "company": "Natura"})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.Equal(t, "company", env.Error.Details["Company"])

	rr = doJSONRequest(r, http.MethodPost, "/api/v1/clients", map[string]any{"name": "Ana", "company": "Avon"})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	rr = doJSONRequest(r, http.MethodGet, "/api/v1/clients/ghost", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "CLIENT_NOT_FOUND")

	rr = doJSONRequest(r, http.MethodPost, "/api/v1/clients/ghost/payments", map[string]any{"amount": "5"})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doJSONRequest(r, http.MethodPost, "/api/v1/clients/ghost/paid", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAmount_UnmarshalJSON(t *testing.T) {
	var req RecordPaymentRequest
	require.NoError(t, json.Unmarshal([]byte(`{"amount": 12.50}`), &req))
	assert.Equal(t, Amount("12.50"), req.Amount)

	require.NoError(t, json.Unmarshal([]byte(`{"amount": "abc"}`), &req))
	assert.Equal(t, Amount("abc"), req.Amount)

	assert.Error(t, json.Unmarshal([]byte(`{"amount": true}`), &req))
}
