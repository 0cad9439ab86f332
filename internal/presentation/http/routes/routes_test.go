package routes_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/elitemotors/detailing-api/internal/application/service"
	"github.com/elitemotors/detailing-api/internal/config"
	"github.com/elitemotors/detailing-api/internal/infrastructure/cache"
	"github.com/elitemotors/detailing-api/internal/infrastructure/database"
	"github.com/elitemotors/detailing-api/internal/infrastructure/repository"
	"github.com/elitemotors/detailing-api/internal/presentation/http/handler"
	"github.com/elitemotors/detailing-api/internal/presentation/http/middleware"
	"github.com/elitemotors/detailing-api/internal/presentation/http/routes"
	"github.com/elitemotors/detailing-api/internal/tenant"
	"github.com/elitemotors/detailing-api/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	adminEmail    = "admin@elite.test"
	adminPassword = "s3cret-pass"
)

type testServer struct {
	router   *gin.Engine
	selector *tenant.Selector
	token    string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.AutoMigrate(db))

	cfg := &config.Config{
		App:       config.AppConfig{Name: "detailing-api"},
		Admin:     config.AdminConfig{Name: "Admin", Email: adminEmail, Password: adminPassword},
		RateLimit: config.RateLimitConfig{Requests: 1000, Duration: 1},
		Contact:   config.ContactConfig{WhatsAppNumber: "+91 98765 43210"},
	}

	customerRepo := repository.NewCustomerRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	typeRepo := repository.NewServiceTypeRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	partRepo := repository.NewSparePartRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	showroomRepo := repository.NewShowroomRepository(db)

	selector := tenant.NewSelector(repository.NewPreferenceRepository(db))
	qc := cache.New(nil, cache.TTLs{})
	jwtManager := utils.NewJWTManager("test-secret", time.Hour)
	authService, err := service.NewAuthService(cfg.Admin, jwtManager)
	require.NoError(t, err)

	handlers := &routes.Handlers{
		Health:      handler.NewHealthHandler(cfg.App.Name, selector, nil),
		Auth:        handler.NewAuthHandler(authService),
		Tenant:      handler.NewTenantHandler(service.NewTenantService(selector, qc)),
		Customer:    handler.NewCustomerHandler(service.NewCustomerService(customerRepo, vehicleRepo, saleRepo, qc)),
		ServiceType: handler.NewServiceTypeHandler(service.NewServiceTypeService(typeRepo, qc)),
		Servicing:   handler.NewServicingHandler(service.NewServicingService(serviceRepo, typeRepo, vehicleRepo, qc)),
		SparePart:   handler.NewSparePartHandler(service.NewSparePartService(partRepo, qc)),
		Sale:        handler.NewSaleHandler(service.NewSaleService(saleRepo, qc)),
		Showroom:    handler.NewShowroomHandler(service.NewShowroomService(showroomRepo, qc, cfg.Contact.WhatsAppNumber)),
		Dashboard:   handler.NewDashboardHandler(service.NewDashboardService(serviceRepo, saleRepo, repository.NewAnalyticsRepository(db), qc)),
		Report:      handler.NewReportHandler(service.NewReportService(serviceRepo, saleRepo, customerRepo, partRepo, qc)),
		Invoice:     handler.NewInvoiceHandler(service.NewInvoiceService(serviceRepo, saleRepo)),
	}

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		Selector:        selector,
		IdempotencyRepo: repository.NewIdempotencyRepository(db),
	})

	srv := &testServer{router: router, selector: selector}
	srv.token = srv.login(t)
	return srv
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

func (s *testServer) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out), string(env.Data))
	return out
}

func (s *testServer) login(t *testing.T) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    adminEmail,
		"password": adminPassword,
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	out := decode[struct {
		AccessToken string `json:"access_token"`
	}](t, rec)
	require.NotEmpty(t, out.AccessToken)
	return out.AccessToken
}

type idOnly struct {
	ID uuid.UUID `json:"id"`
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	rec := srv.do(t, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"database":"elite"`)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t)
	srv.token = ""

	rec := srv.do(t, http.MethodGet, "/api/v1/customers", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    adminEmail,
		"password": "wrong-password",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDatabaseHeaderSelectsTables(t *testing.T) {
	srv := newTestServer(t)
	shahi := map[string]string{middleware.TenantHeader: "shahi"}

	rec := srv.do(t, http.MethodPost, "/api/v1/customers", map[string]any{
		"name":  "Ravi Kumar",
		"phone": "9876543210",
		"vehicle": map[string]any{
			"make":                "Honda",
			"model":               "City",
			"year":                2020,
			"registration_number": "KA01AB1234",
		},
	}, shahi)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = srv.do(t, http.MethodGet, "/api/v1/customers", nil, shahi)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]idOnly](t, rec), 1)

	rec = srv.do(t, http.MethodGet, "/api/v1/customers", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]idOnly](t, rec), "active database is still elite")

	rec = srv.do(t, http.MethodGet, "/api/v1/customers", nil, map[string]string{middleware.TenantHeader: "mystery"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSwitchDatabase(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPut, "/api/v1/database", map[string]string{"database_type": "shahi"}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, tenant.Shahi, srv.selector.Current())

	rec = srv.do(t, http.MethodGet, "/api/v1/database", nil, nil)
	info := decode[service.TenantInfo](t, rec)
	assert.Equal(t, tenant.Shahi, info.Current)
	assert.ElementsMatch(t, []tenant.Type{tenant.Elite, tenant.Shahi}, info.Available)

	rec = srv.do(t, http.MethodPut, "/api/v1/database", map[string]string{"database_type": "other"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, tenant.Shahi, srv.selector.Current())
}

func createPart(t *testing.T, srv *testServer, stock, threshold int) uuid.UUID {
	t.Helper()
	rec := srv.do(t, http.MethodPost, "/api/v1/spare-parts", map[string]any{
		"part_name":         "Oil Filter",
		"part_number":       "OF-" + uuid.NewString()[:6],
		"quantity_in_stock": stock,
		"reorder_threshold": threshold,
		"unit_price":        50,
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[idOnly](t, rec).ID
}

func TestSaleIdempotencyAndInvoice(t *testing.T) {
	srv := newTestServer(t)
	partID := createPart(t, srv, 10, 2)

	body := map[string]any{
		"customer_name": "Walk-in",
		"sale_date":     "2024-03-15",
		"items": []map[string]any{
			{"spare_part_id": partID, "quantity": 2, "unit_price": 50},
		},
	}
	key := map[string]string{middleware.IdempotencyKeyHeader: "sale-1"}

	first := srv.do(t, http.MethodPost, "/api/v1/sales", body, key)
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())
	second := srv.do(t, http.MethodPost, "/api/v1/sales", body, key)
	require.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get(middleware.IdempotencyReplayedHeader))
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	rec := srv.do(t, http.MethodGet, "/api/v1/sales", nil, nil)
	sales := decode[[]idOnly](t, rec)
	require.Len(t, sales, 1)

	body["customer_name"] = "Someone Else"
	rec = srv.do(t, http.MethodPost, "/api/v1/sales", body, key)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/v1/sales/"+sales[0].ID.String()+"/invoice?tax_percent=18", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	inv := decode[service.Invoice](t, rec)
	assert.InDelta(t, 100, inv.Subtotal, 0.001)
	assert.InDelta(t, 18, inv.TaxAmount, 0.001)
	assert.InDelta(t, 118, inv.GrandTotal, 0.001)

	rec = srv.do(t, http.MethodGet, "/api/v1/sales/"+sales[0].ID.String()+"/invoice?tax_percent=120", nil, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSaleDateRangeIncludesToDay(t *testing.T) {
	srv := newTestServer(t)
	partID := createPart(t, srv, 10, 2)

	for _, day := range []string{"2026-01-01", "2026-01-31", "2026-02-01"} {
		rec := srv.do(t, http.MethodPost, "/api/v1/sales", map[string]any{
			"customer_name": "Walk-in",
			"sale_date":     day,
			"items": []map[string]any{
				{"spare_part_id": partID, "quantity": 1, "unit_price": 50},
			},
		}, nil)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := srv.do(t, http.MethodGet, "/api/v1/sales?from=2026-01-01&to=2026-01-31", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Len(t, decode[[]idOnly](t, rec), 2)

	rec = srv.do(t, http.MethodGet, "/api/v1/sales?from=2026-01-31&to=2026-01-31", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]idOnly](t, rec), 1)

	rec = srv.do(t, http.MethodGet, "/api/v1/sales?to=2026-01-31T00:00:00Z", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]idOnly](t, rec), 1, "a timestamp bound stays exclusive")
}

func TestMergedCustomersRejectHugePage(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/api/v1/customers/merged?page=4611686018427387904", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/v1/customers/merged?page=2&per_page=10", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestValidationErrors(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/v1/services", map[string]any{
		"vehicle_id":      uuid.New(),
		"service_type_id": uuid.New(),
		"service_date":    "15/03/2024",
	}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/v1/customers/not-a-uuid", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/v1/customers/"+uuid.NewString(), nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/v1/reports?year=abc", nil, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/v1/reports?year=1800", nil, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestLowStockAndReportExport(t *testing.T) {
	srv := newTestServer(t)
	createPart(t, srv, 1, 5)
	createPart(t, srv, 50, 5)

	rec := srv.do(t, http.MethodGet, "/api/v1/spare-parts/low-stock", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]service.LowStockItem](t, rec), 1)

	rec = srv.do(t, http.MethodGet, "/api/v1/reports/export?year=2024", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, handler.XLSXContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "report-2024.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), "Low Stock")
}

func TestShowroomIsPublic(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/v1/showroom/cars", map[string]any{
		"make":        "Porsche",
		"model":       "911 GT3",
		"year":        2023,
		"price":       25000000,
		"is_featured": true,
		"images":      []string{"https://cdn.test/gt3-1.jpg"},
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	carID := decode[idOnly](t, rec).ID

	srv.token = ""

	rec = srv.do(t, http.MethodGet, "/api/v1/showroom/hero", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, carID, decode[idOnly](t, rec).ID)

	rec = srv.do(t, http.MethodGet, "/api/v1/showroom/cars/"+carID.String()+"/contact", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	link := decode[struct {
		Link string `json:"link"`
	}](t, rec)
	assert.Contains(t, link.Link, "https://wa.me/919876543210?text=")

	rec = srv.do(t, http.MethodPost, "/api/v1/contact/inquiry", map[string]any{
		"car_id": carID,
		"name":   "Asha",
		"phone":  "9000000000",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = srv.do(t, http.MethodDelete, "/api/v1/showroom/cars/"+carID.String(), nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
