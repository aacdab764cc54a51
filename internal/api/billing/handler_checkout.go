package billing

import (
	"log"
	"net/http"

	"renomapro/internal/billing"
	"renomapro/internal/store"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Store  *store.Store
	Client billing.Client
	AppURL string
}

func NewHandler(st *store.Store, client billing.Client, appURL string) *Handler {
	return &Handler{Store: st, Client: client, AppURL: appURL}
}

// POST /api/create-checkout-session
//
// Ensures the caller has a Stripe customer, then starts a hosted
// subscription-checkout session and returns the redirect URL. Provider
// failures are logged in full and surfaced as a generic error.
func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	if h.Client == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe not configured on server"})
		return
	}

	var body struct {
		SuccessURL string `json:"successUrl"`
		CancelURL  string `json:"cancelUrl"`
	}
	// Both fields are optional; an empty body is fine.
	_ = c.ShouldBindJSON(&body)

	userID := c.GetUint("user_id")
	user, err := h.Store.UserByID(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	if user.StripeCustomerID == nil || *user.StripeCustomerID == "" {
		customerID, err := h.Client.CreateCustomer(user.Email, user.ID)
		if err != nil {
			log.Printf("stripe customer creation failed for user %d: %v", user.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe error"})
			return
		}
		if err := h.Store.SetStripeCustomerID(user.ID, customerID); err != nil {
			log.Printf("storing stripe customer for user %d failed: %v", user.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe error"})
			return
		}
		// Re-read to pick up whichever concurrent write won.
		user, err = h.Store.UserByID(user.ID)
		if err != nil || user.StripeCustomerID == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe error"})
			return
		}
	}

	successURL := body.SuccessURL
	if successURL == "" {
		successURL = h.AppURL + "/?checkout=success"
	}
	cancelURL := body.CancelURL
	if cancelURL == "" {
		cancelURL = h.AppURL + "/?checkout=cancel"
	}

	url, err := h.Client.CreateCheckoutSession(*user.StripeCustomerID, successURL, cancelURL)
	if err != nil {
		log.Printf("stripe checkout session failed for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
