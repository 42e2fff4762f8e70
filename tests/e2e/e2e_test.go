package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"soccerspot/internal/app"
	"soccerspot/internal/config"
	"soccerspot/internal/database"
	"soccerspot/internal/domain"
	jwtsvc "soccerspot/internal/pkg/jwt"
	"soccerspot/internal/pricing"
	"soccerspot/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test_secret_key_32_characters_min"

var testNow = time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)

type E2ETestSuite struct {
	router     *gin.Engine
	db         *gorm.DB
	jwtService *jwtsvc.Service
	gateway    *fakeCinetPay
	fieldID    int64
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// fakeCinetPay stands in for the checkout API and remembers invoice amounts.
type fakeCinetPay struct {
	mu      sync.Mutex
	amounts map[string]float64
	status  string
}

func (f *fakeCinetPay) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body map[string]interface{}
	_ = json.NewDecoder(r.Body).Decode(&body)
	txID, _ := body["transaction_id"].(string)

	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/v2/payment":
		f.amounts[txID], _ = body["amount"].(float64)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"code":    "201",
			"message": "CREATED",
			"data":    map[string]string{"payment_token": "tok-" + txID, "payment_url": "https://checkout.test/" + txID},
		})
	case "/v2/payment/check":
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"code":    "00",
			"message": "SUCCES",
			"data":    map[string]interface{}{"amount": f.amounts[txID], "currency": "XOF", "status": f.status},
		})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:", nil)
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, repository.AutoMigrate(db))

	fake := &fakeCinetPay{amounts: map[string]float64{}, status: "ACCEPTED"}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		AppEnv:          "test",
		JWTSecret:       testSecret,
		Timezone:        "UTC",
		ShutdownTimeout: time.Second,
		RateLimitRPS:    1000,
		RateLimitBurst:  1000,
		MetricsEnabled:  true,
		CinetPay: config.CinetPayConfig{
			APIKey:   "key",
			SiteID:   "site",
			BaseURL:  srv.URL,
			Currency: "XOF",
			Timeout:  5 * time.Second,
		},
		Pricing: pricing.DefaultPolicy(),
	}

	router, err := app.NewRouter(app.Deps{
		DB:      db,
		Config:  cfg,
		Gateway: app.NewGateway(cfg.CinetPay),
		Now:     func() time.Time { return testNow },
	})
	require.NoError(t, err)

	net1h := pricing.Money(10000)
	field := &domain.Field{
		OwnerID:  10,
		Name:     "Stade de Marcory",
		City:     "Abidjan",
		Rates:    pricing.FieldRates{Net1h: &net1h},
		IsActive: true,
	}
	require.NoError(t, repository.NewFieldRepository(db).Create(testContext(t), field))

	return &E2ETestSuite{
		router:     router,
		db:         db,
		jwtService: jwtsvc.New(testSecret, time.Hour),
		gateway:    fake,
		fieldID:    field.ID,
	}
}

func (s *E2ETestSuite) token(t *testing.T, userID int64, role domain.UserRole) string {
	t.Helper()
	tok, err := s.jwtService.GenerateToken(userID, string(role))
	require.NoError(t, err)
	return tok
}

func (s *E2ETestSuite) makeRequest(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *E2ETestSuite) notify(txID string) *httptest.ResponseRecorder {
	form := url.Values{"cpm_trans_id": {txID}, "cpm_site_id": {"site"}}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/cinetpay/notify", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) *TestResponse {
	t.Helper()
	var resp TestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return &resp
}

func path(pattern string, id int64) string {
	return strings.Replace(pattern, ":id", strconv.FormatInt(id, 10), 1)
}

func bookingBody(fieldID int64, minutes int, code string) map[string]interface{} {
	return map[string]interface{}{
		"field_id":         fieldID,
		"start_time":       "2026-10-20T18:00:00Z",
		"duration_minutes": minutes,
		"promo_code":       code,
	}
}

// =============================================================================
// Flow 1: public price display
// =============================================================================

func TestFlow1_PublicPrices(t *testing.T) {
	suite := setupTestSuite(t)

	t.Run("GET /fields/:id/price", func(t *testing.T) {
		w := suite.makeRequest(http.MethodGet, path("/api/v1/fields/:id/price?minutes=60", suite.fieldID), nil, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := parseResponse(t, w)
		assert.Equal(t, float64(60), resp.Data["minutes"])
		assert.Equal(t, float64(10000), resp.Data["net_owner_amount"])
		assert.Equal(t, float64(10500), resp.Data["public_amount"])
		assert.Equal(t, float64(500), resp.Data["commission_amount"])
	})

	t.Run("proportional duration", func(t *testing.T) {
		w := suite.makeRequest(http.MethodGet, path("/api/v1/fields/:id/price?minutes=90", suite.fieldID), nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(15500), parseResponse(t, w).Data["public_amount"])
	})

	t.Run("GET /fields/:id/prices", func(t *testing.T) {
		w := suite.makeRequest(http.MethodGet, path("/api/v1/fields/:id/prices", suite.fieldID), nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		prices, ok := parseResponse(t, w).Data["prices"].([]interface{})
		require.True(t, ok)
		assert.Len(t, prices, 3)
	})

	t.Run("invalid duration and unknown field", func(t *testing.T) {
		w := suite.makeRequest(http.MethodGet, path("/api/v1/fields/:id/price?minutes=45", suite.fieldID), nil, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_DURATION", parseResponse(t, w).Error.Code)

		w = suite.makeRequest(http.MethodGet, "/api/v1/fields/999/price?minutes=60", nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("field without prices", func(t *testing.T) {
		bare := &domain.Field{OwnerID: 10, Name: "Bare", City: "Abidjan", IsActive: true}
		require.NoError(t, repository.NewFieldRepository(suite.db).Create(testContext(t), bare))

		w := suite.makeRequest(http.MethodGet, path("/api/v1/fields/:id/price?minutes=60", bare.ID), nil, "")
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "PRICE_NOT_CONFIGURED", parseResponse(t, w).Error.Code)
	})
}

// =============================================================================
// Flow 2: owner pricing and promotions
// =============================================================================

func TestFlow2_OwnerManagesRatesAndPromotions(t *testing.T) {
	suite := setupTestSuite(t)
	owner := suite.token(t, 10, domain.RoleOwner)
	rival := suite.token(t, 11, domain.RoleOwner)
	client := suite.token(t, 42, domain.RoleClient)
	ratesPath := path("/api/v1/owner/fields/:id/rates", suite.fieldID)
	rates := map[string]interface{}{"net_price_1h": 12000, "net_price_2h": 20000}

	t.Run("only the owner may change rates", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, suite.makeRequest(http.MethodPut, ratesPath, rates, "").Code)
		assert.Equal(t, http.StatusForbidden, suite.makeRequest(http.MethodPut, ratesPath, rates, client).Code)
		assert.Equal(t, http.StatusForbidden, suite.makeRequest(http.MethodPut, ratesPath, rates, rival).Code)
	})

	t.Run("PUT /owner/fields/:id/rates", func(t *testing.T) {
		w := suite.makeRequest(http.MethodPut, ratesPath, rates, owner)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		prices := parseResponse(t, w).Data["prices"].([]interface{})
		require.Len(t, prices, 3)
		twoHours := prices[2].(map[string]interface{})
		assert.Equal(t, float64(120), twoHours["minutes"])
		assert.Equal(t, float64(21000), twoHours["public_amount"])
	})

	t.Run("POST /owner/promotions", func(t *testing.T) {
		body := map[string]interface{}{"field_id": suite.fieldID, "title": "Soirée", "kind": "percent", "value": 20}

		w := suite.makeRequest(http.MethodPost, "/api/v1/owner/promotions", body, rival)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = suite.makeRequest(http.MethodPost, "/api/v1/owner/promotions", body, owner)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		body["value"] = 150
		w = suite.makeRequest(http.MethodPost, "/api/v1/owner/promotions", body, owner)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("GET /fields/:id/promotions", func(t *testing.T) {
		w := suite.makeRequest(http.MethodGet, path("/api/v1/fields/:id/promotions", suite.fieldID), nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, parseResponse(t, w).Data["promotions"], 1)
	})
}

// =============================================================================
// Flow 3: checkout with a promotion, payment and notification
// =============================================================================

func TestFlow3_CheckoutAndPayment(t *testing.T) {
	suite := setupTestSuite(t)
	owner := suite.token(t, 10, domain.RoleOwner)
	client := suite.token(t, 42, domain.RoleClient)

	w := suite.makeRequest(http.MethodPost, "/api/v1/owner/promotions", map[string]interface{}{
		"field_id": suite.fieldID, "title": "Vingt pourcent", "kind": "percent", "value": 20,
	}, owner)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	t.Run("POST /bookings/quote", func(t *testing.T) {
		w := suite.makeRequest(http.MethodPost, "/api/v1/bookings/quote", bookingBody(suite.fieldID, 60, ""), "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		data := parseResponse(t, w).Data
		assert.Equal(t, float64(8500), data["amount_to_charge"])
		assert.Equal(t, float64(8000), data["owner_payout"])
		assert.Equal(t, float64(2000), data["customer_savings"])

		impact := data["promotion"].(map[string]interface{})["impact"].(map[string]interface{})
		assert.Equal(t, float64(10500), impact["public_price_before"])
		assert.Equal(t, float64(0), impact["platform_delta"])
	})

	var bookingID int64
	t.Run("POST /bookings", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, suite.makeRequest(http.MethodPost, "/api/v1/bookings", bookingBody(suite.fieldID, 60, ""), "").Code)

		w := suite.makeRequest(http.MethodPost, "/api/v1/bookings", bookingBody(suite.fieldID, 60, ""), client)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		b := parseResponse(t, w).Data["booking"].(map[string]interface{})
		assert.Equal(t, "pending", b["status"])
		assert.Equal(t, "unpaid", b["payment_status"])
		bookingID = int64(b["id"].(float64))
	})

	var txID string
	t.Run("POST /payments/init", func(t *testing.T) {
		other := suite.token(t, 43, domain.RoleClient)
		w := suite.makeRequest(http.MethodPost, "/api/v1/payments/init", map[string]interface{}{"booking_id": bookingID}, other)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = suite.makeRequest(http.MethodPost, "/api/v1/payments/init", map[string]interface{}{"booking_id": bookingID}, client)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		data := parseResponse(t, w).Data
		assert.Equal(t, float64(8500), data["amount"])
		txID = data["transaction_id"].(string)
		assert.Equal(t, "https://checkout.test/"+txID, data["payment_url"])
	})

	t.Run("POST /payments/cinetpay/notify", func(t *testing.T) {
		w := suite.notify(txID)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "OK", w.Body.String())

		// repeated notifications are acknowledged
		assert.Equal(t, http.StatusOK, suite.notify(txID).Code)
		assert.Equal(t, http.StatusNotFound, suite.notify("unknown").Code)

		w = suite.makeRequest(http.MethodGet, path("/api/v1/bookings/:id", bookingID), nil, client)
		require.Equal(t, http.StatusOK, w.Code)
		b := parseResponse(t, w).Data["booking"].(map[string]interface{})
		assert.Equal(t, "paid", b["payment_status"])
		assert.Equal(t, "confirmed", b["status"])
		assert.Equal(t, float64(8000), b["owner_net_amount"])

		w = suite.makeRequest(http.MethodPost, "/api/v1/payments/init", map[string]interface{}{"booking_id": bookingID}, client)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("GET /metrics", func(t *testing.T) {
		w := suite.makeRequest(http.MethodGet, "/metrics", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "soccerspot_pricing_quotes_total")
		assert.Contains(t, w.Body.String(), "soccerspot_promotions_applied_total")
	})
}

// =============================================================================
// Flow 4: a fully discounted booking never reaches the gateway
// =============================================================================

func TestFlow4_FreeBooking(t *testing.T) {
	suite := setupTestSuite(t)
	owner := suite.token(t, 10, domain.RoleOwner)
	client := suite.token(t, 42, domain.RoleClient)

	w := suite.makeRequest(http.MethodPost, "/api/v1/owner/promotions", map[string]interface{}{
		"field_id": suite.fieldID, "title": "Offert", "code": "FREE", "kind": "percent", "value": 100, "max_uses": 1,
	}, owner)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = suite.makeRequest(http.MethodPost, "/api/v1/bookings/quote", bookingBody(suite.fieldID, 60, ""), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(10500), parseResponse(t, w).Data["amount_to_charge"])

	w = suite.makeRequest(http.MethodPost, "/api/v1/bookings", bookingBody(suite.fieldID, 60, "free"), client)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	b := parseResponse(t, w).Data["booking"].(map[string]interface{})
	assert.Equal(t, "confirmed", b["status"])
	assert.Equal(t, "free", b["payment_status"])

	w = suite.makeRequest(http.MethodPost, "/api/v1/payments/init", map[string]interface{}{"booking_id": b["id"]}, client)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "NOTHING_TO_PAY", parseResponse(t, w).Error.Code)

	// the single use is consumed, so the code no longer applies
	w = suite.makeRequest(http.MethodPost, "/api/v1/bookings/quote", bookingBody(suite.fieldID, 60, "FREE"), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(10500), parseResponse(t, w).Data["amount_to_charge"])
}

// testContext mirrors testing.T.Context (Go 1.24+) for older toolchains:
// the returned context is canceled when the test finishes.
func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
