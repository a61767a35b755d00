package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"mensa/internal/database"
	"mensa/internal/handlers"
	"mensa/internal/logger"
	"mensa/internal/middleware"
	"mensa/internal/services"
	"mensa/internal/validator"
)

// testAPIKey guards mutating routes in the integration stack, matching the
// production wiring.
const testAPIKey = "integration-test-key"

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB      *gorm.DB
	Manager *database.Manager
	Router  *gin.Engine
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupApp builds the full stack on a real file-backed database so the
// embedded migrations and catalog seeding run exactly as in production.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "mensa.db")
	manager, err := database.NewManager(dbPath)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = manager.Close() })

	if err := manager.Migrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	db := manager.DB()
	catalogService := services.NewCatalogService(db)
	planService := services.NewPlanService(db)
	lineResolver := services.NewLineResolver(db)

	if err := catalogService.Initialize(); err != nil {
		t.Fatalf("failed to seed catalog: %v", err)
	}

	catalogHandler := handlers.NewCatalogHandler(catalogService)
	planHandler := handlers.NewPlanHandler(planService, lineResolver)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")
	v1.GET("/catalog", catalogHandler.GetCatalog)
	v1.GET("/plans", planHandler.GetPlanDates)
	v1.GET("/plans/:date", planHandler.GetPlan)

	mutating := v1.Group("/", middleware.APIKeyAuth(testAPIKey))
	mutating.PUT("/plans/:date", planHandler.ReplacePlan)
	mutating.DELETE("/plans/:id", planHandler.DeletePlan)

	return &testApp{DB: db, Manager: manager, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
// A non-empty key is sent as the X-API-Key header.
func (app *testApp) request(method, path, body, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set("X-API-Key", key)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// replacePlan stores a plan via the API and returns the response plan object.
func (app *testApp) replacePlan(t *testing.T, date, body string) map[string]interface{} {
	t.Helper()
	rec := app.request("PUT", "/api/v1/plans/"+date, body, testAPIKey)
	if rec.Code != http.StatusOK {
		t.Fatalf("replace plan failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["plan"].(map[string]interface{})
}
