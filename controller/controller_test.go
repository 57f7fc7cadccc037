package controller

import (
	_ "awards-backend/docs"
	"awards-backend/metrics"
	"awards-backend/models"
	"awards-backend/utils/logger"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/smithy-go"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockDatabaseClient is a mock implementation of dal.DatabaseClientInterface
type MockDatabaseClient struct {
	mock.Mock
}

func (m *MockDatabaseClient) GetItem(ctx context.Context, config models.QueryConfig, result interface{}) error {
	return m.Called(ctx, config, result).Error(0)
}

func (m *MockDatabaseClient) PutItemIfNotExists(ctx context.Context, tableName, keyName string, item interface{}) error {
	return m.Called(ctx, tableName, keyName, item).Error(0)
}

func (m *MockDatabaseClient) QueryByIndex(ctx context.Context, config models.QueryConfig, results interface{}) error {
	return m.Called(ctx, config, results).Error(0)
}

func (m *MockDatabaseClient) CreateTable(ctx context.Context, input *dynamodb.CreateTableInput) error {
	return m.Called(ctx, input).Error(0)
}

func (m *MockDatabaseClient) DescribeTable(ctx context.Context, tableName string) (*dynamodb.DescribeTableOutput, error) {
	args := m.Called(ctx, tableName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dynamodb.DescribeTableOutput), args.Error(1)
}

// ControllerTestSuite drives the fully wired router over a mocked store
type ControllerTestSuite struct {
	suite.Suite
	ctx    context.Context
	config *models.Config
	logger logger.Logger
	db     *MockDatabaseClient
	router *gin.Engine
}

func (suite *ControllerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.ctx = context.Background()
	suite.config = &models.Config{
		AppName:             "Awards Nominations",
		AppVersion:          "1.0.0",
		AppHost:             "localhost",
		AppPort:             "8080",
		BasePath:            "/api",
		LogLevel:            "error",
		LogFormat:           "json",
		JWTSecret:           "test-secret",
		JWTExpiresIn:        24 * time.Hour,
		AWSRegion:           "us-east-1",
		DynamoDBTablePrefix: "test",
		CORSOrigins:         []string{"https://awards.example.com"},
	}
	suite.logger = logger.NewLoggerWithOutput(suite.config.LogLevel, suite.config.LogFormat, io.Discard)
	suite.db = new(MockDatabaseClient)

	reg := prometheus.NewRegistry()
	c := NewController(suite.ctx, suite.config, suite.logger, suite.db, metrics.New(reg), reg, nil)
	suite.router = gin.New()
	c.RegisterRoutes(suite.router)
}

func (suite *ControllerTestSuite) TearDownTest() {
	suite.db.AssertExpectations(suite.T())
}

func (suite *ControllerTestSuite) submit(body interface{}) (*httptest.ResponseRecorder, models.NominationResponse) {
	raw, err := json.Marshal(body)
	suite.Require().NoError(err)
	req := httptest.NewRequest(http.MethodPost, "/api/nominations", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var resp models.NominationResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func (suite *ControllerTestSuite) TestSubmit_StoresNormalizedNomination() {
	body := nominationBody()
	body["nominationText"] = "  <script>alert('x')</script>" + longStatement + "  "
	body["nomineeInfo"].(map[string]interface{})["organization"] = "   "

	var stored *models.Nomination
	suite.db.On("PutItemIfNotExists", mock.Anything, "test_nominations", "id", mock.AnythingOfType("*models.Nomination")).
		Run(func(args mock.Arguments) { stored = args.Get(3).(*models.Nomination) }).
		Return(nil).Once()

	w, resp := suite.submit(body)

	suite.Equal(http.StatusOK, w.Code)
	suite.True(resp.Success)
	_, err := uuid.Parse(resp.NominationID)
	suite.NoError(err)

	suite.Require().NotNil(stored)
	suite.Equal(resp.NominationID, stored.ID)
	suite.Equal(models.NominationStatusPending, stored.Status)
	suite.Equal(longStatement, stored.NominationText)
	suite.Equal("ada@example.com", *stored.NomineeInfo.Email)
	suite.Nil(stored.NomineeInfo.Organization)
	suite.False(stored.CreatedAt.IsZero())
}

func (suite *ControllerTestSuite) TestSubmit_ShortStatementNeverReachesStore() {
	body := nominationBody()
	body["nominationText"] = "0123456789"

	w, resp := suite.submit(body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(resp.Error, "50")
	suite.db.AssertNotCalled(suite.T(), "PutItemIfNotExists", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ControllerTestSuite) TestSubmit_StoreUnavailable() {
	suite.db.On("PutItemIfNotExists", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("dial tcp: connection refused")).Once()

	w, resp := suite.submit(nominationBody())

	suite.Equal(http.StatusServiceUnavailable, w.Code)
	suite.False(resp.Success)
	suite.Equal("Database error", resp.Error)
	suite.Equal("dial tcp: connection refused", resp.Details)
}

func (suite *ControllerTestSuite) TestSubmit_ProviderRejection() {
	suite.db.On("PutItemIfNotExists", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&smithy.GenericAPIError{Code: "ConditionalCheckFailedException", Message: "exists"}).Once()

	w, resp := suite.submit(nominationBody())

	suite.Equal(http.StatusServiceUnavailable, w.Code)
	suite.Equal("DynamoDB error", resp.Error)
	suite.Equal("ConditionalCheckFailedException", resp.Details)
}

func (suite *ControllerTestSuite) TestPublicRoutes() {
	tests := []struct {
		method string
		path   string
		want   int
		body   string
	}{
		{http.MethodGet, "/health", http.StatusOK, `"status":"healthy"`},
		{http.MethodGet, "/swagger/doc.json", http.StatusOK, `"Awards Nominations API"`},
		{http.MethodGet, "/swagger", http.StatusOK, "swagger-ui"},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		suite.router.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
		suite.Equal(tt.want, w.Code, tt.path)
		suite.Contains(w.Body.String(), tt.body, tt.path)
	}
}

func (suite *ControllerTestSuite) TestMetricsExposeSubmissions() {
	body := nominationBody()
	body["agreedToTerms"] = false
	suite.submit(body)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `awards_nominations_submitted_total{outcome="invalid"} 1`)
}

func (suite *ControllerTestSuite) TestAdminRoutesRequireToken() {
	for _, path := range []string{
		"/api/admin/nominations",
		"/api/admin/nominations/abc",
		"/api/admin/infrastructure/status",
	} {
		w := httptest.NewRecorder()
		suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		suite.Equal(http.StatusUnauthorized, w.Code, path)
	}
}

func (suite *ControllerTestSuite) TestCORSPreflight() {
	req := httptest.NewRequest(http.MethodOptions, "/api/nominations", nil)
	req.Header.Set("Origin", "https://awards.example.com")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.Equal("https://awards.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	suite.True(strings.Contains(w.Header().Get("Access-Control-Allow-Methods"), "POST"))
}

func TestControllerTestSuite(t *testing.T) {
	suite.Run(t, new(ControllerTestSuite))
}
