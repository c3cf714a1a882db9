package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/budget-tracker/backend/config"
	"github.com/budget-tracker/backend/internal/infra/dependency"
	"github.com/budget-tracker/backend/internal/integration/email"
	"github.com/budget-tracker/backend/internal/integration/persistence/model"
	"github.com/budget-tracker/backend/internal/integration/realtime"
	"github.com/budget-tracker/backend/test/integration/mock"
)

const (
	testJWTSecret    = "test-jwt-secret-key-for-testing-purposes"
	testResendAPIKey = "re_test_key"
	testTokenIssuer  = "budget-tracker"
	resendEmailsPath = "/emails"
)

var tags string

func init() {
	flag.StringVar(&tags, "scenarios", "", "tags to run")
}

func TestFeatures(t *testing.T) {
	flag.Parse()

	suite := godog.TestSuite{
		Name: "budget-tracker-api",
		ScenarioInitializer: func(s *godog.ScenarioContext) {
			InitializeScenario(s)
		},
		Options: &godog.Options{
			Format:      "pretty",
			Paths:       []string{"../features"},
			Tags:        tags,
			Concurrency: 1,
			Strict:      true,
			TestingT:    t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

type testContext struct {
	uri               string
	headers           map[string]string
	client            *http.Client
	response          *response
	db                *mock.Db
	redis             *redis.Client
	resend            *mock.ApiMock
	advice            *mock.Advice
	timeMock          *mock.Time
	serverPort        int
	accessToken       string
	refreshToken      string
	currentUserID     uuid.UUID
	currentUserEmail  string
	transactionIDs    []uuid.UUID
	lastTransactionID uuid.UUID
	stream            *websocket.Conn
	redisStopped      bool
}

type response struct {
	status int
	body   any
	err    error
}

var serverInit sync.Once
var servicesInit sync.Once
var testDB *mock.Db
var testRedis *redis.Client
var testResend *mock.ApiMock
var testAdvice *mock.Advice
var testTime *mock.Time
var testHub *realtime.Hub
var testServerPort int
var portInit sync.Once

func initializePort() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
		_ = os.Setenv("SERVER_PORT", strconv.Itoa(testServerPort))
		_ = os.Setenv("ENV", "test")
	})
}

func initializeServices() {
	servicesInit.Do(func() {
		testRedis = mock.NewRedis()
		testResend = mock.NewApiServer()
		testResend.Start()
		testAdvice = mock.NewAdvice()
		testTime = mock.NewTime()
	})
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	initializePort()
	initializeServices()

	test := &testContext{
		uri:        fmt.Sprintf("http://localhost:%d", testServerPort),
		client:     &http.Client{Timeout: 10 * time.Second},
		redis:      testRedis,
		resend:     testResend,
		advice:     testAdvice,
		timeMock:   testTime,
		serverPort: testServerPort,
		db: mock.NewDb("budget_tracker", map[string]any{
			"users":              &model.UserModel{},
			"refresh_tokens":     &model.RefreshTokenModel{},
			"transactions":       &model.TransactionModel{},
			"households":         &model.HouseholdModel{},
			"financial_profiles": &model.FinancialProfileModel{},
			"savings_targets":    &model.SavingsTargetModel{},
		}),
	}

	testDB = test.db

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		test.after()
		return ctx, nil
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^the current time is "([^"]*)"$`, test.theCurrentTimeIs)

	// User setup steps
	ctx.Given(`^a user exists with email "([^"]*)"$`, test.aUserExistsWithEmail)
	ctx.Given(`^a user exists with email "([^"]*)" and password "([^"]*)"$`, test.aUserExistsWithEmailAndPassword)
	ctx.Given(`^the user is logged in with valid tokens$`, test.theUserIsLoggedInWithValidTokens)
	ctx.Given(`^I am logged in as "([^"]*)"$`, test.iAmLoggedInAs)
	ctx.Given(`^the access token has expired$`, test.theAccessTokenHasExpired)

	// Budget data setup steps
	ctx.Given(`^the user has the following transactions:$`, test.theUserHasTheFollowingTransactions)
	ctx.Given(`^the user has a household with (\d+) adults? and (\d+) child(?:ren)?$`, test.theUserHasAHousehold)
	ctx.Given(`^the user has a financial profile with:$`, test.theUserHasAFinancialProfileWith)
	ctx.Given(`^the user has a savings target of "([^"]*)" for (\d+)$`, test.theUserHasASavingsTargetFor)

	// External service steps
	ctx.Given(`^the advice service answers "([^"]*)"$`, test.theAdviceServiceAnswers)
	ctx.Given(`^the advice service fails$`, test.theAdviceServiceFails)
	ctx.Given(`^the advice service is not configured$`, test.theAdviceServiceIsNotConfigured)
	ctx.Given(`^the email provider fails with status (\d+)$`, test.theEmailProviderFailsWithStatus)
	ctx.Given(`^Redis is unavailable$`, test.redisIsUnavailable)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.Step(`^I open the summary stream$`, test.iOpenTheSummaryStream)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should not exist$`, test.theResponseFieldShouldNotExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items?$`, test.theResponseFieldShouldHaveItems)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)

	// External service assertion steps
	ctx.Then(`^the email provider should have received (\d+) emails?$`, test.theEmailProviderShouldHaveReceivedEmails)
	ctx.Then(`^the email sent to the provider should have "([^"]*)" as "([^"]*)"$`, test.theEmailSentToTheProviderShouldHave)
	ctx.Then(`^the advice prompt should contain "([^"]*)"$`, test.theAdvicePromptShouldContain)
	ctx.Then(`^the summary cache version of the user should be (\d+)$`, test.theSummaryCacheVersionOfTheUserShouldBe)
	ctx.Then(`^the summary stream should receive version (\d+)$`, test.theSummaryStreamShouldReceiveVersion)
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.refreshToken = ""
	t.currentUserID = uuid.Nil
	t.currentUserEmail = ""
	t.transactionIDs = nil
	t.lastTransactionID = uuid.Nil
	t.redisStopped = false

	t.timeMock.Reset()
	t.advice.Reset()
	t.resend.Reset()
	t.resend.SetResponse(-1, http.MethodPost, resendEmailsPath, http.StatusOK, map[string]any{
		"id": "re_test_message",
	})

	if err := mock.ClearRedis(t.redis); err != nil {
		return fmt.Errorf("failed to clear redis: %w", err)
	}
	if t.db != nil {
		return t.db.ClearDB()
	}
	return nil
}

func (t *testContext) after() {
	if t.stream != nil {
		_ = t.stream.Close()
		t.stream = nil
	}
	if t.redisStopped {
		_ = mock.RestartRedis()
		t.redisStopped = false
	}
}

func (t *testContext) startServer() error {
	var startErr error
	serverInit.Do(func() {
		gin.SetMode(gin.TestMode)

		cfg := config.Load()
		cfg.Server.Environment = "test"
		cfg.JWT.Secret = testJWTSecret
		cfg.Email.ResendAPIKey = testResendAPIKey
		cfg.Email.MaxAttempts = 2
		cfg.Email.RetryDelay = 0
		cfg.Summary.Timezone = "UTC"
		cfg.Summary.ThresholdsFile = ""

		sender := email.NewResendClient(cfg.Email.ResendAPIKey, "Budget Tracker", "alerts@budget-tracker.test",
			email.WithBaseURL(testResend.GetUrl()),
		)

		injector, err := dependency.NewInjector(cfg, testDB.DbConn, testRedis,
			dependency.WithEmailSender(sender),
			dependency.WithAdviceService(testAdvice),
			dependency.WithClock(testTime.Now),
		)
		if err != nil {
			startErr = fmt.Errorf("failed to build application: %w", err)
			return
		}

		testHub = injector.Hub

		server := &http.Server{
			Addr:    fmt.Sprintf(":%d", testServerPort),
			Handler: injector.Router.Setup("test"),
		}

		go func() {
			_ = server.ListenAndServe()
		}()
	})
	if startErr != nil {
		return startErr
	}

	// Wait for server to be ready
	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	return errors.New("API server did not become healthy")
}

func (t *testContext) theAPIServerIsRunning() error {
	return t.startServer()
}

func (t *testContext) theCurrentTimeIs(value string) error {
	now, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return fmt.Errorf("invalid time %q: %w", value, err)
	}
	t.timeMock.SetCurrentTime(now)
	return nil
}

func (t *testContext) aUserExistsWithEmail(email string) error {
	return t.createUser(email, "DefaultPass123!", "Test User")
}

func (t *testContext) aUserExistsWithEmailAndPassword(email, password string) error {
	return t.createUser(email, password, "Test User")
}

func (t *testContext) createUser(email, password, name string) error {
	userID := uuid.New()
	t.currentUserID = userID
	t.currentUserEmail = email

	now := time.Now().UTC()
	user := &model.UserModel{
		ID:           userID,
		Email:        email,
		Name:         name,
		PasswordHash: hashPassword(password),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return t.db.DbConn.Create(user).Error
}

func hashPassword(password string) string {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(fmt.Sprintf("failed to hash password: %v", err))
	}
	return string(hashedBytes)
}

func signToken(userID uuid.UUID, email, tokenType string, issuedAt time.Time, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    userID.String(),
		"email":      email,
		"token_type": tokenType,
		"exp":        jwt.NewNumericDate(issuedAt.Add(ttl)),
		"iat":        jwt.NewNumericDate(issuedAt),
		"nbf":        jwt.NewNumericDate(issuedAt),
		"iss":        testTokenIssuer,
		"sub":        userID.String(),
		"jti":        uuid.NewString(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
}

func (t *testContext) theUserIsLoggedInWithValidTokens() error {
	now := time.Now().UTC()

	accessToken, err := signToken(t.currentUserID, t.currentUserEmail, "access", now, 15*time.Minute)
	if err != nil {
		return fmt.Errorf("failed to generate access token: %w", err)
	}
	t.accessToken = accessToken

	refreshToken, err := signToken(t.currentUserID, t.currentUserEmail, "refresh", now, 7*24*time.Hour)
	if err != nil {
		return fmt.Errorf("failed to generate refresh token: %w", err)
	}
	t.refreshToken = refreshToken

	// Store refresh token in database
	refreshTokenModel := &model.RefreshTokenModel{
		ID:          uuid.New(),
		Token:       t.refreshToken,
		UserID:      t.currentUserID,
		Invalidated: false,
		ExpiresAt:   now.Add(7 * 24 * time.Hour),
		CreatedAt:   now,
	}

	return t.db.DbConn.Create(refreshTokenModel).Error
}

// iAmLoggedInAs switches the current user, creating it when missing.
func (t *testContext) iAmLoggedInAs(email string) error {
	var userModel model.UserModel
	if err := t.db.DbConn.Where("email = ?", email).First(&userModel).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := t.createUser(email, "SecurePass123!", "Test User "+email); err != nil {
			return err
		}
	} else {
		t.currentUserID = userModel.ID
		t.currentUserEmail = userModel.Email
	}

	return t.theUserIsLoggedInWithValidTokens()
}

func (t *testContext) theAccessTokenHasExpired() error {
	issuedAt := time.Now().UTC().Add(-time.Hour)
	token, err := signToken(t.currentUserID, t.currentUserEmail, "access", issuedAt, 15*time.Minute)
	if err != nil {
		return err
	}
	t.accessToken = token
	return nil
}

// theUserHasTheFollowingTransactions inserts rows given as | kind | category | amount | occurred_at |.
func (t *testContext) theUserHasTheFollowingTransactions(table *godog.Table) error {
	if len(table.Rows) < 2 {
		return errors.New("transactions table needs a header and at least one row")
	}

	columns := map[string]int{}
	for i, cell := range table.Rows[0].Cells {
		columns[cell.Value] = i
	}
	for _, required := range []string{"kind", "category", "amount", "occurred_at"} {
		if _, ok := columns[required]; !ok {
			return fmt.Errorf("transactions table is missing column %q", required)
		}
	}

	now := time.Now().UTC()
	for _, row := range table.Rows[1:] {
		cell := func(name string) string { return row.Cells[columns[name]].Value }

		amount, err := decimal.NewFromString(cell("amount"))
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", cell("amount"), err)
		}
		occurredAt, err := time.Parse(time.RFC3339, cell("occurred_at"))
		if err != nil {
			return fmt.Errorf("invalid occurred_at %q: %w", cell("occurred_at"), err)
		}

		tx := &model.TransactionModel{
			ID:         uuid.New(),
			UserID:     t.currentUserID,
			Amount:     amount.Round(2),
			Kind:       cell("kind"),
			Category:   cell("category"),
			OccurredAt: occurredAt.UTC(),
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := t.db.DbConn.Create(tx).Error; err != nil {
			return err
		}
		t.lastTransactionID = tx.ID
		t.transactionIDs = append(t.transactionIDs, tx.ID)
	}
	return nil
}

func (t *testContext) theUserHasAHousehold(adults, children int) error {
	household := &model.HouseholdModel{
		UserID:      t.currentUserID,
		NumAdults:   adults,
		NumChildren: children,
		UpdatedAt:   time.Now().UTC(),
	}
	return t.db.DbConn.Create(household).Error
}

// theUserHasAFinancialProfileWith reads a two-column | field | value | table.
func (t *testContext) theUserHasAFinancialProfileWith(table *godog.Table) error {
	values := map[string]decimal.Decimal{}
	for _, row := range table.Rows {
		if len(row.Cells) != 2 {
			return errors.New("financial profile rows need a field and a value")
		}
		amount, err := decimal.NewFromString(row.Cells[1].Value)
		if err != nil {
			// header row
			continue
		}
		values[row.Cells[0].Value] = amount
	}

	profile := &model.FinancialProfileModel{
		UserID:               t.currentUserID,
		HousingCost:          values["housing_cost"],
		FoodCost:             values["food_cost"],
		TransportationCost:   values["transportation_cost"],
		HealthcareCost:       values["healthcare_cost"],
		OtherNecessitiesCost: values["other_necessities_cost"],
		ChildcareCost:        values["childcare_cost"],
		Taxes:                values["taxes"],
		TotalExpenses:        values["total_expenses"],
		MedianFamilyIncome:   values["median_family_income"],
		UpdatedAt:            time.Now().UTC(),
	}
	return t.db.DbConn.Create(profile).Error
}

func (t *testContext) theUserHasASavingsTargetFor(amount string, year int) error {
	target, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid target %q: %w", amount, err)
	}
	now := time.Now().UTC()
	return t.db.DbConn.Create(&model.SavingsTargetModel{
		ID:           uuid.New(),
		UserID:       t.currentUserID,
		Year:         year,
		TargetAmount: target,
		CreatedAt:    now,
		UpdatedAt:    now,
	}).Error
}

func (t *testContext) theAdviceServiceAnswers(answer string) error {
	t.advice.SetAnswer(answer)
	return nil
}

func (t *testContext) theAdviceServiceFails() error {
	t.advice.SetError(errors.New("model returned a malformed response"))
	return nil
}

func (t *testContext) theAdviceServiceIsNotConfigured() error {
	t.advice.SetAvailable(false)
	return nil
}

func (t *testContext) theEmailProviderFailsWithStatus(status int) error {
	t.resend.SetResponse(-1, http.MethodPost, resendEmailsPath, status, map[string]any{
		"statusCode": status,
		"name":       "validation_error",
		"message":    "The request is invalid",
	})
	return nil
}

func (t *testContext) redisIsUnavailable() error {
	mock.StopRedis()
	t.redisStopped = true
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = "" // Clear access token to simulate unauthenticated request
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = t.replaceTokenPlaceholders(value)
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	path = t.replaceTokenPlaceholders(path)
	return t.executeRequest(method, path, nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	path = t.replaceTokenPlaceholders(path)

	var payload []byte
	if body != nil && body.Content != "" {
		content := t.replaceTokenPlaceholders(body.Content)
		payload = []byte(content)
	}
	return t.executeRequest(method, path, payload)
}

func (t *testContext) replaceTokenPlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{refresh_token}}", t.refreshToken)
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	content = strings.ReplaceAll(content, "{{transaction_id}}", t.lastTransactionID.String())
	content = strings.ReplaceAll(content, "{{user_id}}", t.currentUserID.String())
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var req *http.Request
	var err error

	url := t.uri + path

	if payload != nil {
		req, err = http.NewRequest(method, url, bytes.NewReader(payload))
	} else {
		req, err = http.NewRequest(method, url, nil)
	}
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}

	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{
		status: resp.StatusCode,
	}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody

	// Capture transaction ID from response if present
	if idStr, ok := responseBody["id"].(string); ok {
		if _, isTransaction := responseBody["kind"]; isTransaction {
			if id, err := uuid.Parse(idStr); err == nil {
				t.lastTransactionID = id
				t.transactionIDs = append(t.transactionIDs, id)
			}
		}
	}

	// Capture tokens issued by register and login
	if token, ok := responseBody["access_token"].(string); ok && token != "" {
		t.accessToken = token
	}
	if token, ok := responseBody["refresh_token"].(string); ok && token != "" {
		t.refreshToken = token
	}
	if user, ok := responseBody["user"].(map[string]any); ok {
		if idStr, ok := user["id"].(string); ok {
			if id, err := uuid.Parse(idStr); err == nil {
				t.currentUserID = id
			}
		}
	}

	return nil
}

func (t *testContext) iOpenTheSummaryStream() error {
	sessions := testHub.Len()

	url := strings.Replace(t.uri, "http://", "ws://", 1) + "/api/v1/summaries/ws?access_token=" + t.accessToken
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return fmt.Errorf("failed to open summary stream: %w", err)
	}
	t.stream = conn

	// The session joins the hub after the upgrade response is written.
	for i := 0; i < 50 && testHub.Len() <= sessions; i++ {
		time.Sleep(10 * time.Millisecond)
	}
	return nil
}

func (t *testContext) theSummaryStreamShouldReceiveVersion(version int) error {
	if t.stream == nil {
		return errors.New("summary stream is not open")
	}

	_ = t.stream.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		_, data, err := t.stream.ReadMessage()
		if err != nil {
			return fmt.Errorf("no summary frame with version %d received: %w", version, err)
		}

		var frame struct {
			Type    string `json:"type"`
			Version int64  `json:"version"`
		}
		if err := json.Unmarshal(data, &frame); err != nil {
			return fmt.Errorf("summary frame is not JSON: %w", err)
		}
		if frame.Type == "summaries" && frame.Version == int64(version) {
			return nil
		}
	}
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) responseObject() (map[string]any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	return body, nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	expectedValue = t.replaceTokenPlaceholders(expectedValue)
	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	if getFieldValue(body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldNotExist(field string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	if value := getFieldValue(body, field); value != nil {
		return fmt.Errorf("field '%s' expected to be absent, got %v", field, value)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	switch value := getFieldValue(body, field).(type) {
	case []any:
		if len(value) != count {
			return fmt.Errorf("field '%s' expected %d items, got %d: %v", field, count, len(value), value)
		}
	case map[string]any:
		if len(value) != count {
			return fmt.Errorf("field '%s' expected %d entries, got %d: %v", field, count, len(value), value)
		}
	case nil:
		if count != 0 {
			return fmt.Errorf("field '%s' not found in response: %v", field, body)
		}
	default:
		return fmt.Errorf("field '%s' is not a list: %v", field, value)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	if entity, ok := t.db.GetModel(table); ok {
		entityType := reflect.TypeOf(entity).Elem()
		entitySlice := reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0)
		entitySlicePtr := reflect.New(entitySlice.Type())
		entitySlicePtr.Elem().Set(entitySlice)

		result := t.db.DbConn.Unscoped().Find(entitySlicePtr.Interface())
		if result.Error != nil {
			return result.Error
		}

		count := entitySlicePtr.Elem().Len()
		if count != quantity {
			return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
		}
		return nil
	}
	return fmt.Errorf("table '%s' not found in models", table)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replaceTokenPlaceholders(content.Content)), &criteria); err != nil {
		return err
	}

	if entity, ok := t.db.GetModel(table); ok {
		entityType := reflect.TypeOf(entity).Elem()
		entitySlice := reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0)
		entitySlicePtr := reflect.New(entitySlice.Type())
		entitySlicePtr.Elem().Set(entitySlice)

		query := t.db.DbConn.Unscoped()
		for key, value := range criteria {
			query = query.Where(fmt.Sprintf("%s = ?", key), value)
		}

		result := query.Find(entitySlicePtr.Interface())
		if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		count := entitySlicePtr.Elem().Len()
		if count != quantity {
			return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
		}
		return nil
	}
	return fmt.Errorf("table '%s' not found in models", table)
}

func (t *testContext) theEmailProviderShouldHaveReceivedEmails(count int) error {
	if got := t.resend.CountRequests(http.MethodPost, resendEmailsPath); got != count {
		return fmt.Errorf("expected %d emails sent to the provider, got %d", count, got)
	}
	return nil
}

func (t *testContext) theEmailSentToTheProviderShouldHave(field, expected string) error {
	body := t.resend.GetRequestBody(http.MethodPost, resendEmailsPath, 0)
	if body == nil {
		return errors.New("no email was sent to the provider")
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in email request: %v", field, body)
	}
	if actual := fmt.Sprintf("%v", value); !strings.Contains(actual, t.replaceTokenPlaceholders(expected)) {
		return fmt.Errorf("email field '%s' expected to contain '%s', got '%s'", field, expected, actual)
	}
	return nil
}

func (t *testContext) theAdvicePromptShouldContain(expected string) error {
	prompts := t.advice.Prompts()
	if len(prompts) == 0 {
		return errors.New("the advice service was never called")
	}
	last := prompts[len(prompts)-1]
	if !strings.Contains(last, expected) {
		return fmt.Errorf("advice prompt does not contain '%s': %s", expected, last)
	}
	return nil
}

func (t *testContext) theSummaryCacheVersionOfTheUserShouldBe(version int) error {
	value, err := t.redis.Get(context.Background(), "summary:version:"+t.currentUserID.String()).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	if value != version {
		return fmt.Errorf("expected summary version %d, got %d", version, value)
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	var objectMap map[string]any
	switch v := object.(type) {
	case map[string]any:
		objectMap = v
	default:
		objectJSON, _ := json.Marshal(object)
		if err := json.Unmarshal(objectJSON, &objectMap); err != nil {
			return nil
		}
	}

	fields := strings.Split(dotSeparatedField, ".")
	var field any = objectMap

	for _, currentField := range fields {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			if arr, ok := field.([]any); ok && i < len(arr) {
				field = arr[i]
			} else {
				return nil
			}
		} else {
			if m, ok := field.(map[string]any); ok {
				field = m[currentField]
			} else {
				return nil
			}
		}
	}

	return field
}
