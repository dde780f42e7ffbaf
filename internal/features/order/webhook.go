package order

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/webhook"
)

// stripeWebhookHandler speaks Stripe's wire contract instead of the API
// envelope: a signed raw body in, a plain "ok" or a "Webhook Error: ..."
// string out. Stripe retries anything that is not a 2xx.
func (h *handler) stripeWebhookHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, fmt.Sprintf("Webhook Error: %v", err), http.StatusBadRequest)
		return
	}

	event, err := webhook.ConstructEvent(body, r.Header.Get("Stripe-Signature"), h.webhookSecret)
	if err != nil {
		logrus.WithError(err).Warn("rejected stripe webhook")
		http.Error(w, fmt.Sprintf("Webhook Error: %v", err), http.StatusBadRequest)
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			http.Error(w, fmt.Sprintf("Webhook Error: %v", err), http.StatusBadRequest)
			return
		}

		paid := session.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid
		if err := h.service.HandleCheckoutCompleted(r.Context(), session.Metadata["orderId"], paid); err != nil {
			logrus.WithError(err).WithField("orderID", session.Metadata["orderId"]).
				Error("failed to reconcile completed checkout")
			http.Error(w, fmt.Sprintf("Webhook Error: %v", err), http.StatusInternalServerError)
			return
		}
	default:
		logrus.WithField("eventType", event.Type).Info("ignoring unhandled stripe event")
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "ok")
}
