package stripewebhook

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"renomapro/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/webhook"
)

const maxBodyBytes = 65536

type Handler struct {
	Store *store.Store

	// SigningSecret verifies event provenance. When empty, events are
	// rejected unless AllowUnverified is set (local testing only).
	SigningSecret   string
	AllowUnverified bool
}

func NewHandler(st *store.Store, signingSecret string, allowUnverified bool) *Handler {
	return &Handler{Store: st, SigningSecret: signingSecret, AllowUnverified: allowUnverified}
}

// POST /webhook
//
// Every parsed event is acknowledged so Stripe stops retrying; only
// invoice.payment_succeeded mutates state.
func (h *Handler) HandleWebhook(c *gin.Context) {
	payload, err := readBody(c, maxBodyBytes)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Error reading request body"})
		return
	}

	var event stripe.Event
	switch {
	case h.SigningSecret != "":
		event, err = webhook.ConstructEventWithOptions(
			payload,
			c.GetHeader("Stripe-Signature"),
			h.SigningSecret,
			webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
		)
		if err != nil {
			// reason included for operator debugging
			c.JSON(http.StatusBadRequest, gin.H{"error": "Signature verification failed", "details": err.Error()})
			return
		}
	case h.AllowUnverified:
		if err := json.Unmarshal(payload, &event); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed event payload"})
			return
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Webhook signing secret not configured"})
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		// Informational only. Subscription state flips on invoice payment.

	case "invoice.payment_succeeded":
		var inv stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse invoice"})
			return
		}
		if inv.Customer != nil && inv.Customer.ID != "" {
			if err := h.Store.MarkSubscribed(inv.Customer.ID); err != nil {
				// 500 so Stripe retries the delivery
				log.Printf("marking customer %s subscribed failed: %v", inv.Customer.ID, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update subscription"})
				return
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

func readBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}
