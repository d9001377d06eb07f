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
	"gorm.io/gorm"

	"github.com/finance-tracker/ledgerd/internal/application/usecase/account"
	"github.com/finance-tracker/ledgerd/internal/application/usecase/aggregator"
	"github.com/finance-tracker/ledgerd/internal/application/usecase/categorization"
	"github.com/finance-tracker/ledgerd/internal/application/usecase/category"
	"github.com/finance-tracker/ledgerd/internal/application/usecase/rule"
	"github.com/finance-tracker/ledgerd/internal/application/usecase/split"
	"github.com/finance-tracker/ledgerd/internal/application/usecase/transaction"
	"github.com/finance-tracker/ledgerd/internal/infra/server/router"
	"github.com/finance-tracker/ledgerd/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/ledgerd/internal/integration/entrypoint/middleware"
	"github.com/finance-tracker/ledgerd/internal/integration/persistence"
	"github.com/finance-tracker/ledgerd/internal/integration/persistence/model"
	"github.com/finance-tracker/ledgerd/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

var tags string

func init() {
	flag.StringVar(&tags, "scenarios", "", "tags to run")
}

func TestFeatures(t *testing.T) {
	flag.Parse()

	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../features"},
			Tags:     tags,
			Strict:   true,
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

// testContext holds per-scenario HTTP and database state, in the style of
// the server's own httptest-driven unit tests, only against a real router.
type testContext struct {
	uri              string
	headers          map[string]string
	client           *http.Client
	response         *response
	db               *mock.Db
	serverPort       int
	ownerID          string
	accessToken      string
	currentAccountID uuid.UUID
	currentRuleID    uuid.UUID
	lastCreatedID    uuid.UUID
}

type response struct {
	status int
	body   any
}

var serverInit sync.Once
var testDB *mock.Db
var testServerPort int
var portInit sync.Once

func initializePort() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
	})
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	initializePort()

	test := &testContext{
		uri:        fmt.Sprintf("http://localhost:%d", testServerPort),
		client:     &http.Client{Timeout: 10 * time.Second},
		serverPort: testServerPort,
		ownerID:    "11111111-1111-1111-1111-111111111111",
		db: mock.NewDb("ledgerd", map[string]any{
			"accounts":             &model.AccountModel{},
			"categories":           &model.CategoryModel{},
			"transactions":         &model.TransactionModel{},
			"rules":                &model.RuleModel{},
			"dismissed_suggestions": &model.DismissedSuggestionModel{},
			"imports":              &model.ImportModel{},
			"email_queue":          &model.EmailQueueModel{},
		}),
	}

	testDB = test.db

	ctx.Before(func(goCtx context.Context, sc *godog.Scenario) (context.Context, error) {
		test.before()
		return goCtx, nil
	})

	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^I am authenticated$`, test.iAmAuthenticated)
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^an account exists with name "([^"]*)" and type "([^"]*)"$`, test.anAccountExistsWithNameAndType)
	ctx.Given(`^a category exists with name "([^"]*)"$`, test.aCategoryExistsWithName)

	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

func (t *testContext) before() {
	t.headers = make(map[string]string)
	t.accessToken = ""
	t.currentAccountID = uuid.Nil
	t.currentRuleID = uuid.Nil
	t.lastCreatedID = uuid.Nil

	if t.db != nil {
		_ = t.db.ClearDB()
	}
}

// startServer builds the real dependency graph — repositories, use cases,
// controllers, router — against the in-memory sqlite database, exactly as
// main.go builds it against Postgres. Document ingestion is intentionally
// left out: it needs a durable riverqueue/pgx pool this harness does not
// provide, so /imports is not exercised here.
func (t *testContext) startServer() {
	serverInit.Do(func() {
		go func() {
			gin.SetMode(gin.TestMode)

			accountRepo := persistence.NewAccountRepository(testDB.DbConn)
			categoryRepo := persistence.NewCategoryRepository(testDB.DbConn)
			ruleRepo := persistence.NewRuleRepository(testDB.DbConn)
			transactionRepo := persistence.NewTransactionRepository(testDB.DbConn)
			importRepo := persistence.NewImportRepository(testDB.DbConn)

			orchestrator := categorization.NewOrchestrator(ruleRepo, transactionRepo, nil, false)
			_ = orchestrator

			accountUseCase := account.NewUseCase(accountRepo)
			splitUseCase := split.NewUseCase(transactionRepo)
			categoryListUseCase := category.NewListUseCase(categoryRepo)

			ruleCreateUseCase := rule.NewCreateUseCase(ruleRepo)
			ruleUpdateUseCase := rule.NewUpdateUseCase(ruleRepo)
			ruleDeleteUseCase := rule.NewDeleteUseCase(ruleRepo)
			ruleListUseCase := rule.NewListUseCase(ruleRepo)
			ruleReorderUseCase := rule.NewReorderUseCase(ruleRepo)
			ruleSuggestionUseCase := rule.NewSuggestionUseCase(ruleRepo)

			transactionListUseCase := transaction.NewListUseCase(transactionRepo)
			transactionGetUseCase := transaction.NewGetUseCase(transactionRepo)
			transactionPatchUseCase := transaction.NewPatchUseCase(transactionRepo, categoryRepo, ruleSuggestionUseCase)

			monthlyOverviewUseCase := aggregator.NewMonthlyOverviewUseCase(transactionRepo, categoryRepo)
			spendingTrendUseCase := aggregator.NewSpendingTrendUseCase(transactionRepo, categoryRepo)
			accountBreakdownUseCase := aggregator.NewAccountBreakdownUseCase(transactionRepo, accountRepo)

			healthController := controller.NewHealthController(func() bool { return testDB != nil && testDB.DbConn != nil })
			transactionController := controller.NewTransactionController(transactionListUseCase, transactionGetUseCase, transactionPatchUseCase, splitUseCase)
			accountController := controller.NewAccountController(accountUseCase)
			categoryController := controller.NewCategoryController(categoryListUseCase)
			ruleController := controller.NewRuleController(ruleCreateUseCase, ruleUpdateUseCase, ruleDeleteUseCase, ruleListUseCase, ruleReorderUseCase, ruleSuggestionUseCase)
			analyticsController := controller.NewAnalyticsController(monthlyOverviewUseCase, spendingTrendUseCase, accountBreakdownUseCase)
			_ = importRepo

			authMiddleware := middleware.NewAuthMiddleware(testJWTSecret, false)
			rateLimiter := middleware.NewRateLimiter(mock.NewRedis())

			r := router.NewRouter(
				healthController,
				transactionController,
				accountController,
				categoryController,
				ruleController,
				nil,
				analyticsController,
				authMiddleware,
				rateLimiter,
				"",
			)
			r.Setup()

			addr := fmt.Sprintf(":%d", testServerPort)
			server := &http.Server{Addr: addr, Handler: r.Engine()}
			_ = server.ListenAndServe()
		}()
	})

	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/healthz")
		if err == nil {
			resp.Body.Close()
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func (t *testContext) theAPIServerIsRunning() error {
	t.startServer()
	return nil
}

func (t *testContext) iAmAuthenticated() error {
	claims := jwt.MapClaims{
		"ownerId": t.ownerID,
		"email":   "owner@example.com",
		"exp":     time.Now().Add(1 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		return err
	}
	t.accessToken = signed
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	return nil
}

func (t *testContext) anAccountExistsWithNameAndType(name, accountType string) error {
	a := &model.AccountModel{
		ID:        uuid.New(),
		OwnerID:   t.ownerID,
		Name:      name,
		Type:      accountType,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := t.db.DbConn.Create(a).Error; err != nil {
		return err
	}
	t.currentAccountID = a.ID
	return nil
}

func (t *testContext) aCategoryExistsWithName(name string) error {
	c := &model.CategoryModel{
		ID:        uuid.New(),
		OwnerID:   &t.ownerID,
		Name:      name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	return t.db.DbConn.Create(c).Error
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replaceTokenPlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	path = t.replaceTokenPlaceholders(path)
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replaceTokenPlaceholders(body.Content))
	}
	return t.executeRequest(method, path, payload)
}

func (t *testContext) replaceTokenPlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	content = strings.ReplaceAll(content, "{{account_id}}", t.currentAccountID.String())
	content = strings.ReplaceAll(content, "{{rule_id}}", t.currentRuleID.String())
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

	t.response = &response{status: resp.StatusCode}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody

	if data, ok := responseBody["data"].(map[string]any); ok {
		if idStr, ok := data["id"].(string); ok {
			if id, err := uuid.Parse(idStr); err == nil {
				t.lastCreatedID = id
				if _, hasPriority := data["priority"]; hasPriority {
					t.currentRuleID = id
				}
				if _, hasType := data["type"]; hasType {
					t.currentAccountID = id
				}
			}
		}
	}

	return nil
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

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	if actual := fmt.Sprintf("%v", value); actual != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actual)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	if getFieldValue(body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
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
		} else if m, ok := field.(map[string]any); ok {
			field = m[currentField]
		} else {
			return nil
		}
	}

	return field
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	entity, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlice := reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0)
	entitySlicePtr := reflect.New(entitySlice.Type())
	entitySlicePtr.Elem().Set(entitySlice)

	result := t.db.DbConn.Unscoped().Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	if count := entitySlicePtr.Elem().Len(); count != quantity {
		return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
	}
	return nil
}
