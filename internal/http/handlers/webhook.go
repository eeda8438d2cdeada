package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"

	"oasisweb/internal/domain"
	"oasisweb/internal/mail"
	"oasisweb/internal/payments"
	"oasisweb/internal/sqlinline"
)

const maxWebhookBody = 1 << 20

// StripeWebhook reconciles provider payment events with pending donations.
// Signature or payload problems are the only 400s; everything past the
// conditional update is best-effort and the endpoint still acknowledges, so
// the provider does not retry events whose state transition already landed.
func (a *App) StripeWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "unreadable payload")
		return
	}
	defer r.Body.Close()

	sig := r.Header.Get("Stripe-Signature")
	if err := payments.VerifySignature(payload, sig, a.Cfg.StripeWebhookSecret, a.now(), payments.DefaultTolerance); err != nil {
		a.Logger.Warn().Err(err).Msg("webhook signature rejected")
		a.error(w, http.StatusBadRequest, "bad_signature", "signature verification failed")
		return
	}

	event, err := payments.ParseEvent(payload)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_payload", "malformed event")
		return
	}

	switch event.Type {
	case payments.EventPaymentSucceeded:
		a.handlePaymentSucceeded(r.Context(), event)
	case payments.EventPaymentFailed:
		a.handlePaymentFailed(r.Context(), event)
	default:
		a.Logger.Debug().Str("type", event.Type).Msg("webhook event ignored")
	}

	a.json(w, http.StatusOK, map[string]bool{"received": true})
}

func (a *App) handlePaymentSucceeded(ctx context.Context, event *payments.Event) {
	pi, err := event.PaymentIntent()
	if err != nil {
		a.Logger.Warn().Err(err).Msg("webhook intent payload unreadable")
		return
	}

	var donation domain.Donation
	row := a.SQL.QueryRow(ctx, sqlinline.QCompleteDonation, pi.ID)
	err = row.Scan(&donation.ID, &donation.DonorName, &donation.DonorEmail,
		&donation.Amount, &donation.Category, &donation.Frequency, &donation.Anonymous,
		&donation.PaymentReference, &donation.Notes, &donation.CompletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// Duplicate delivery or unknown intent: the transition already
		// happened (or never will), nothing to notify.
		a.Logger.Info().Str("payment_intent", pi.ID).Msg("success event matched no pending donation")
		return
	}
	if err != nil {
		a.Logger.Error().Err(err).Str("payment_intent", pi.ID).Msg("donation completion failed")
		return
	}

	a.logActivity(ctx, domain.ActionDonationCompleted,
		fmt.Sprintf("don #%d confirmé (%s FCFA, %s)", donation.ID, mail.FormatAmount(donation.Amount), donation.PaymentReference), nil)

	completedAt := a.now()
	if donation.CompletedAt != nil {
		completedAt = *donation.CompletedAt
	}
	fields := mail.DonationFields{
		ID:               donation.ID,
		DonorName:        deref(donation.DonorName),
		DonorEmail:       deref(donation.DonorEmail),
		Amount:           donation.Amount,
		Category:         string(donation.Category),
		Frequency:        string(donation.Frequency),
		Anonymous:        donation.Anonymous,
		PaymentReference: donation.PaymentReference,
		Notes:            donation.Notes,
		When:             completedAt,
	}
	if !donation.Anonymous && fields.DonorEmail != "" {
		subject, body := a.Templates.DonationConfirmed(fields)
		a.notify(ctx, fields.DonorEmail, subject, body)
	}
	alertSubject, alertBody := a.Templates.DonationAlert(fields)
	a.notify(ctx, a.Cfg.AdminEmail, alertSubject, alertBody)

	if donation.Frequency == domain.FrequencyMonthly {
		a.startSubscription(ctx, donation, pi.Customer)
	}
}

// startSubscription turns a settled monthly gift into a provider-side
// recurring plan. Failures are logged only; the donation itself is settled.
func (a *App) startSubscription(ctx context.Context, donation domain.Donation, customerID string) {
	if !a.Payments.Enabled() || customerID == "" {
		return
	}
	priceID, err := a.Payments.CreateRecurringPrice(ctx, donation.Amount, a.Cfg.DonationCurrency,
		fmt.Sprintf("Don mensuel - %s", a.Cfg.SiteName))
	if err != nil {
		a.Logger.Error().Err(err).Int64("donation_id", donation.ID).Msg("recurring price creation failed")
		return
	}
	sub, err := a.Payments.CreateSubscription(ctx, customerID, priceID, map[string]string{
		"donation_id":       itoa(donation.ID),
		"payment_reference": donation.PaymentReference,
	})
	if err != nil {
		a.Logger.Error().Err(err).Int64("donation_id", donation.ID).Msg("subscription creation failed")
		return
	}

	var subID int64
	var createdAt time.Time
	row := a.SQL.QueryRow(ctx, sqlinline.QInsertSubscription, donation.ID, sub.ID, priceID, sub.Status)
	if err := row.Scan(&subID, &createdAt); err != nil {
		a.Logger.Error().Err(err).Int64("donation_id", donation.ID).Str("provider_subscription", sub.ID).Msg("subscription insert failed")
	}
}

func (a *App) handlePaymentFailed(ctx context.Context, event *payments.Event) {
	pi, err := event.PaymentIntent()
	if err != nil {
		a.Logger.Warn().Err(err).Msg("webhook intent payload unreadable")
		return
	}

	var donationID int64
	var donorName, donorEmail *string
	var anonymous bool
	row := a.SQL.QueryRow(ctx, sqlinline.QFailDonation, pi.ID, pi.FailureReason())
	err = row.Scan(&donationID, &donorName, &donorEmail, &anonymous)
	if errors.Is(err, pgx.ErrNoRows) {
		a.Logger.Info().Str("payment_intent", pi.ID).Msg("failure event matched no pending donation")
		return
	}
	if err != nil {
		a.Logger.Error().Err(err).Str("payment_intent", pi.ID).Msg("donation failure update failed")
		return
	}

	a.logActivity(ctx, domain.ActionDonationFailed,
		fmt.Sprintf("don #%d échoué: %s", donationID, pi.FailureReason()), nil)

	if !anonymous && deref(donorEmail) != "" {
		subject, body := a.Templates.DonationFailed(deref(donorName))
		a.notify(ctx, deref(donorEmail), subject, body)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
