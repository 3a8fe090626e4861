package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sangkips/beatlicense-api/internal/application/export"
	"github.com/sangkips/beatlicense-api/internal/application/service"
	"github.com/sangkips/beatlicense-api/internal/config"
	"github.com/sangkips/beatlicense-api/internal/domain/entity"
	"github.com/sangkips/beatlicense-api/internal/domain/report"
	"github.com/sangkips/beatlicense-api/internal/presentation/http/handler"
	"github.com/sangkips/beatlicense-api/internal/presentation/http/middleware"
	"github.com/sangkips/beatlicense-api/pkg/coverstore"
	"github.com/sangkips/beatlicense-api/pkg/utils"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emptySources struct{}

func (emptySources) ListTrackLicenses(ctx context.Context, dr report.DateRange) ([]entity.TrackLicense, error) {
	return nil, nil
}

func (emptySources) ListSyncProposals(ctx context.Context, dr report.DateRange) ([]entity.SyncProposal, error) {
	return nil, nil
}

func (emptySources) ListCustomSyncRequests(ctx context.Context, dr report.DateRange) ([]entity.CustomSyncRequest, error) {
	return nil, nil
}

func (emptySources) ListWhiteLabelSetupFees(ctx context.Context, dr report.DateRange) ([]entity.WhiteLabelClient, error) {
	return nil, nil
}

func (emptySources) ListWhiteLabelPayments(ctx context.Context, dr report.DateRange) ([]entity.WhiteLabelPayment, error) {
	return nil, nil
}

func (emptySources) ListMembershipSubscriptions(ctx context.Context, dr report.DateRange, priceIDs []string) ([]entity.UserSubscription, error) {
	return nil, nil
}

type emptySettings struct{}

func (emptySettings) Get(ctx context.Context, key string) (*entity.AppSetting, error) {
	return nil, nil
}

func (emptySettings) Upsert(ctx context.Context, setting *entity.AppSetting) error {
	return nil
}

func newRouter(t *testing.T, mutate func(*config.Config)) (*gin.Engine, *utils.JWTManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.FromViper(viper.New())
	if mutate != nil {
		mutate(cfg)
	}
	jwtManager := utils.NewJWTManager("routes-secret", time.Hour)

	reports := service.NewSalesReportService(emptySources{}, nil, report.AggregateOptions{}, zerolog.Nop())
	settings := service.NewSettingsService(emptySettings{}, zerolog.Nop())
	exports := service.NewExportService(reports, settings, coverstore.NewNoneStore(),
		export.NewCSVExporter("$"), export.NewPDFExporter("$", 10, "beatlicense-api"), zerolog.Nop())

	done := make(chan struct{})
	t.Cleanup(func() { close(done) })

	router := Setup(&Handlers{
		Report:   handler.NewReportHandler(reports, exports),
		Settings: handler.NewSettingsHandler(settings),
	}, &Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
		Logger:     zerolog.Nop(),
		Done:       done,
	})
	return router, jwtManager
}

func call(r http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func token(t *testing.T, m *utils.JWTManager, permissions ...string) string {
	t.Helper()
	tok, err := m.GenerateAccessToken(uuid.New(), "user@example.com", nil, permissions)
	require.NoError(t, err)
	return tok
}

const salesPath = "/api/v1/reports/sales?start_date=2024-01-01&end_date=2024-01-31"

func TestSetup_PublicRoutes(t *testing.T) {
	r, _ := newRouter(t, nil)

	w := call(r, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "beatlicense-api")

	w = call(r, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestSetup_MetricsDisabled(t *testing.T) {
	r, _ := newRouter(t, func(c *config.Config) { c.Metrics.Enabled = false })
	assert.Equal(t, http.StatusNotFound, call(r, http.MethodGet, "/metrics", "", "").Code)
}

func TestSetup_ReportPermissions(t *testing.T) {
	r, m := newRouter(t, nil)

	assert.Equal(t, http.StatusUnauthorized, call(r, http.MethodGet, salesPath, "", "").Code)
	assert.Equal(t, http.StatusForbidden, call(r, http.MethodGet, salesPath, token(t, m), "").Code)

	viewer := token(t, m, middleware.PermissionViewReports)
	for _, path := range []string{
		salesPath,
		"/api/v1/reports/sales/earners?start_date=2024-01-01&end_date=2024-01-31",
		"/api/v1/reports/sales/export.csv?start_date=2024-01-01&end_date=2024-01-31",
		"/api/v1/reports/sales/export.pdf?start_date=2024-01-01&end_date=2024-01-31",
		"/api/v1/reports/settings",
	} {
		assert.Equal(t, http.StatusOK, call(r, http.MethodGet, path, viewer, "").Code, path)
	}
}

func TestSetup_SettingsRequireManagePermission(t *testing.T) {
	r, m := newRouter(t, nil)
	body := `{"default_cover_image":"covers/a.png"}`

	viewer := token(t, m, middleware.PermissionViewReports)
	assert.Equal(t, http.StatusForbidden, call(r, http.MethodPut, "/api/v1/reports/settings", viewer, body).Code)

	manager := token(t, m, middleware.PermissionManageSettings)
	assert.Equal(t, http.StatusOK, call(r, http.MethodPut, "/api/v1/reports/settings", manager, body).Code)
}

func TestSetup_RateLimit(t *testing.T) {
	r, m := newRouter(t, func(c *config.Config) {
		c.RateLimit.Requests = 2
		c.RateLimit.Duration = 3600
	})
	viewer := token(t, m, middleware.PermissionViewReports)

	assert.Equal(t, http.StatusOK, call(r, http.MethodGet, salesPath, viewer, "").Code)
	assert.Equal(t, http.StatusOK, call(r, http.MethodGet, salesPath, viewer, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, call(r, http.MethodGet, salesPath, viewer, "").Code)
}
