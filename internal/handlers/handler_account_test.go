package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/velopix/pix_backend/internal/core/services"
	"github.com/velopix/pix_backend/internal/dto"
	"github.com/velopix/pix_backend/internal/handlers"
	"github.com/velopix/pix_backend/internal/repositories/snapshot"
	"github.com/velopix/pix_backend/pkg/config"
)

// newTestRouter builds the full HTTP surface over a throwaway snapshot store.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), "snapshot.json")
	store := snapshot.New(path, false, nil)
	require.NoError(t, store.Load(context.Background()))
	repos := snapshot.NewRepositories(store)

	r := gin.New()
	cfg := &config.Config{RateLimit: "1000-S"}
	handlers.RegisterRoutes(r, cfg, services.NewServiceContainer(repos, repos))
	return r
}

func performRequest(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

type AccountHandlerTestSuite struct {
	suite.Suite
	router *gin.Engine
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	suite.router = newTestRouter(suite.T())
}

func (suite *AccountHandlerTestSuite) createAccount(name, document, balance string) dto.AccountResponse {
	w := performRequest(suite.router, http.MethodPost, "/api/v1/accounts", gin.H{
		"name":           name,
		"document":       document,
		"documentType":   "PERSONAL",
		"initialBalance": balance,
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	return decodeBody[dto.AccountResponse](suite.T(), w)
}

func (suite *AccountHandlerTestSuite) TestHealthCheck() {
	w := performRequest(suite.router, http.MethodGet, "/health", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount() {
	account := suite.createAccount("Ana Souza", "12345678900", "5000.00")

	suite.NotEmpty(account.AccountID)
	suite.Equal("Ana Souza", account.Name)
	suite.Equal("5000", account.Balance.String())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_InvalidDocumentType() {
	w := performRequest(suite.router, http.MethodPost, "/api/v1/accounts", gin.H{
		"name":         "Ana Souza",
		"document":     "12345678900",
		"documentType": "PASSPORT",
	})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_WithKeys() {
	account := suite.createAccount("Ana Souza", "12345678900", "100.00")

	w := performRequest(suite.router, http.MethodPost, "/api/v1/accounts/"+account.AccountID+"/keys", gin.H{
		"keyType":  "EMAIL",
		"keyValue": "ana@example.com",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = performRequest(suite.router, http.MethodGet, "/api/v1/accounts/"+account.AccountID, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	fetched := decodeBody[dto.AccountWithKeysResponse](suite.T(), w)
	suite.Equal(account.AccountID, fetched.AccountID)
	suite.Require().Len(fetched.Keys, 1)
	suite.Equal("ana@example.com", fetched.Keys[0].KeyValue)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	w := performRequest(suite.router, http.MethodGet, "/api/v1/accounts/"+uuid.NewString(), nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AccountHandlerTestSuite) TestGetAccountBalance() {
	account := suite.createAccount("Ana Souza", "12345678900", "123.45")

	w := performRequest(suite.router, http.MethodGet, "/api/v1/accounts/"+account.AccountID+"/balance", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	balance := decodeBody[dto.AccountBalanceResponse](suite.T(), w)
	suite.Equal(account.AccountID, balance.AccountID)
	suite.Equal("123.45", balance.Balance.String())
}

func (suite *AccountHandlerTestSuite) TestRegisterKey_Duplicate() {
	account := suite.createAccount("Ana Souza", "12345678900", "100.00")
	body := gin.H{"keyType": "EMAIL", "keyValue": "ana@example.com"}

	w := performRequest(suite.router, http.MethodPost, "/api/v1/accounts/"+account.AccountID+"/keys", body)
	suite.Require().Equal(http.StatusCreated, w.Code)

	w = performRequest(suite.router, http.MethodPost, "/api/v1/accounts/"+account.AccountID+"/keys", body)
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AccountHandlerTestSuite) TestRevokeKey() {
	account := suite.createAccount("Ana Souza", "12345678900", "100.00")

	w := performRequest(suite.router, http.MethodPost, "/api/v1/accounts/"+account.AccountID+"/keys", gin.H{
		"keyType":  "EMAIL",
		"keyValue": "ana@example.com",
	})
	suite.Require().Equal(http.StatusCreated, w.Code)
	key := decodeBody[dto.PaymentKeyResponse](suite.T(), w)

	w = performRequest(suite.router, http.MethodDelete, "/api/v1/keys/"+key.KeyID, nil)
	suite.Equal(http.StatusNoContent, w.Code)

	w = performRequest(suite.router, http.MethodDelete, "/api/v1/keys/"+uuid.NewString(), nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func TestAccountHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
