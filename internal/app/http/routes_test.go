package routes

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"renomapro/config"
	"renomapro/database"
	"renomapro/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const e2eWebhookSecret = "whsec_e2e"

type stubBilling struct{}

func (stubBilling) CreateCustomer(email string, userID uint) (string, error) {
	return "cus_e2e_1", nil
}

func (stubBilling) CreateCheckoutSession(customerID, successURL, cancelURL string) (string, error) {
	return "https://checkout.stripe.test/e2e", nil
}

func newApp(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWTSecret:           "test-secret",
		AppURL:              "http://localhost:5173",
		StripeWebhookSecret: e2eWebhookSecret,
	}

	r := gin.New()
	RegisterRoutes(r, Deps{
		Cfg:     cfg,
		DB:      db,
		Store:   store.New(db),
		Billing: stubBilling{},
		Mailer:  nil,
	})
	return r
}

func do(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func stripeSignature(payload []byte, ts time.Time) string {
	mac := hmac.New(sha256.New, []byte(e2eWebhookSecret))
	fmt.Fprintf(mac, "%d.", ts.Unix())
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

// Full subscription lifecycle: register, start checkout, receive the paid
// invoice from Stripe, and see the flag on the next login.
func TestSubscriptionLifecycle(t *testing.T) {
	r := newApp(t)

	rec := do(r, http.MethodPost, "/api/register", "", gin.H{
		"name": "Jan", "email": "jan@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var reg map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reg))
	token := reg["token"].(string)

	rec = do(r, http.MethodPost, "/api/create-checkout-session", token, gin.H{})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "https://checkout.stripe.test/e2e")

	// Stripe delivers the paid invoice for the assigned customer
	payload := []byte(`{"id":"evt_1","type":"invoice.payment_succeeded","data":{"object":{"id":"in_1","customer":"cus_e2e_1"}}}`)
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", stripeSignature(payload, time.Now()))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	rec = do(r, http.MethodPost, "/api/login", "", gin.H{"email": "jan@example.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, rec.Code)
	var login map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	assert.Equal(t, true, login["subscribed"])
}

func TestHealth(t *testing.T) {
	r := newApp(t)

	rec := do(r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newApp(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/me"},
		{http.MethodPost, "/api/fachowcy"},
		{http.MethodPost, "/api/create-checkout-session"},
		{http.MethodGet, "/api/admin/leads"},
		{http.MethodGet, "/api/owner/stats"},
	} {
		rec := do(r, route.method, route.path, "", gin.H{})
		assert.Equal(t, http.StatusUnauthorized, rec.Code, route.path)
	}
}

// Public lead submission with no mailer configured returns an id and touches
// nothing else.
func TestLeadSubmission(t *testing.T) {
	r := newApp(t)

	rec := do(r, http.MethodPost, "/api/leads", "", gin.H{
		"name": "Jan", "phone": "123456789", "desc": "leak",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.NotZero(t, got["id"])
}

func TestGoogleSignInDisabledWithoutConfig(t *testing.T) {
	r := newApp(t)

	rec := do(r, http.MethodGet, "/auth/google", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
