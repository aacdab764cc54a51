package stripewebhook

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"renomapro/database"
	"renomapro/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSigningSecret = "whsec_test_secret"

func newWebhookRouter(t *testing.T, signingSecret string, allowUnverified bool) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	st := store.New(db)

	h := NewHandler(st, signingSecret, allowUnverified)
	r := gin.New()
	r.POST("/webhook", h.HandleWebhook)
	return r, st
}

// signPayload builds a Stripe-Signature header the way Stripe signs
// deliveries: v1 = HMAC-SHA256(secret, "<timestamp>.<payload>").
func signPayload(secret string, payload []byte, ts time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", ts.Unix())
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func postWebhook(r *gin.Engine, payload []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set("Stripe-Signature", signature)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func seedCustomer(t *testing.T, st *store.Store, customerID string) uint {
	t.Helper()
	user, err := st.CreateUser("Jan", "jan@example.com", "secret123", "")
	require.NoError(t, err)
	require.NoError(t, st.SetStripeCustomerID(user.ID, customerID))
	return user.ID
}

func invoicePaymentSucceeded(customerID string) []byte {
	return []byte(fmt.Sprintf(
		`{"id":"evt_1","type":"invoice.payment_succeeded","data":{"object":{"id":"in_1","customer":%q}}}`,
		customerID,
	))
}

func TestWebhookMarksSubscriberOnPaidInvoice(t *testing.T) {
	r, st := newWebhookRouter(t, testSigningSecret, false)
	userID := seedCustomer(t, st, "cus_123")

	payload := invoicePaymentSucceeded("cus_123")
	rec := postWebhook(r, payload, signPayload(testSigningSecret, payload, time.Now()))

	require.Equal(t, http.StatusOK, rec.Code)

	user, err := st.UserByID(userID)
	require.NoError(t, err)
	assert.True(t, user.Subscribed)
}

func TestWebhookRejectsForgedSignature(t *testing.T) {
	r, st := newWebhookRouter(t, testSigningSecret, false)
	userID := seedCustomer(t, st, "cus_123")

	payload := invoicePaymentSucceeded("cus_123")
	rec := postWebhook(r, payload, signPayload("whsec_wrong_secret", payload, time.Now()))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	user, err := st.UserByID(userID)
	require.NoError(t, err)
	assert.False(t, user.Subscribed, "forged event must never reach MarkSubscribed")
}

func TestWebhookRejectsMissingSignature(t *testing.T) {
	r, st := newWebhookRouter(t, testSigningSecret, false)
	userID := seedCustomer(t, st, "cus_123")

	rec := postWebhook(r, invoicePaymentSucceeded("cus_123"), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	user, err := st.UserByID(userID)
	require.NoError(t, err)
	assert.False(t, user.Subscribed)
}

func TestWebhookRejectsTamperedPayload(t *testing.T) {
	r, st := newWebhookRouter(t, testSigningSecret, false)
	userID := seedCustomer(t, st, "cus_123")

	signed := invoicePaymentSucceeded("cus_999")
	signature := signPayload(testSigningSecret, signed, time.Now())
	// deliver a different body under the old signature
	rec := postWebhook(r, invoicePaymentSucceeded("cus_123"), signature)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	user, err := st.UserByID(userID)
	require.NoError(t, err)
	assert.False(t, user.Subscribed)
}

func TestWebhookAcknowledgesOtherEventTypes(t *testing.T) {
	r, st := newWebhookRouter(t, testSigningSecret, false)
	userID := seedCustomer(t, st, "cus_123")

	for _, eventType := range []string{"checkout.session.completed", "customer.subscription.updated"} {
		payload := []byte(fmt.Sprintf(
			`{"id":"evt_2","type":%q,"data":{"object":{"id":"obj_1","customer":"cus_123"}}}`,
			eventType,
		))
		rec := postWebhook(r, payload, signPayload(testSigningSecret, payload, time.Now()))
		assert.Equal(t, http.StatusOK, rec.Code, eventType)
	}

	user, err := st.UserByID(userID)
	require.NoError(t, err)
	assert.False(t, user.Subscribed, "only invoice.payment_succeeded flips the flag")
}

func TestWebhookIdempotentRedelivery(t *testing.T) {
	r, st := newWebhookRouter(t, testSigningSecret, false)
	userID := seedCustomer(t, st, "cus_123")

	payload := invoicePaymentSucceeded("cus_123")
	for i := 0; i < 2; i++ {
		rec := postWebhook(r, payload, signPayload(testSigningSecret, payload, time.Now()))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	user, err := st.UserByID(userID)
	require.NoError(t, err)
	assert.True(t, user.Subscribed)
}

func TestWebhookUnknownCustomerIsAcknowledged(t *testing.T) {
	r, _ := newWebhookRouter(t, testSigningSecret, false)

	payload := invoicePaymentSucceeded("cus_unknown")
	rec := postWebhook(r, payload, signPayload(testSigningSecret, payload, time.Now()))
	assert.Equal(t, http.StatusOK, rec.Code)
}

// Failure-closed: no signing secret and no explicit insecure opt-in.
func TestWebhookRejectsUnsignedWhenNotOptedIn(t *testing.T) {
	r, st := newWebhookRouter(t, "", false)
	userID := seedCustomer(t, st, "cus_123")

	rec := postWebhook(r, invoicePaymentSucceeded("cus_123"), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	user, err := st.UserByID(userID)
	require.NoError(t, err)
	assert.False(t, user.Subscribed)
}

func TestWebhookInsecureModeAcceptsUnsigned(t *testing.T) {
	r, st := newWebhookRouter(t, "", true)
	userID := seedCustomer(t, st, "cus_123")

	rec := postWebhook(r, invoicePaymentSucceeded("cus_123"), "")
	require.Equal(t, http.StatusOK, rec.Code)

	user, err := st.UserByID(userID)
	require.NoError(t, err)
	assert.True(t, user.Subscribed)
}
