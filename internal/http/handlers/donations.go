package handlers

import (
	"fmt"
	"net/http"

	"oasisweb/internal/domain"
	"oasisweb/internal/mail"
	"oasisweb/internal/payments"
	"oasisweb/internal/sqlinline"
	"oasisweb/internal/validate"
)

type donationRequest struct {
	DonorName  string `json:"donor_name"`
	DonorEmail string `json:"donor_email"`
	Amount     int64  `json:"amount"`
	Category   string `json:"category"`
	Frequency  string `json:"frequency"`
	Anonymous  bool   `json:"anonymous"`
	Notes      string `json:"notes"`
}

func (a *App) validateDonation(req *donationRequest) []string {
	var errs []string
	if req.Amount < a.Cfg.DonationMinAmount {
		errs = append(errs, fmt.Sprintf("Le montant minimum est de %s FCFA.", mail.FormatAmount(a.Cfg.DonationMinAmount)))
	}
	if !domain.IsValidCategory(req.Category) {
		errs = append(errs, "La catégorie de don est invalide.")
	}
	if !domain.IsValidFrequency(req.Frequency) {
		errs = append(errs, "La fréquence de don est invalide.")
	}
	if !req.Anonymous {
		if validate.Sanitize(req.DonorName) == "" {
			errs = append(errs, "Le nom du donateur est requis.")
		}
		if !validate.Email(req.DonorEmail) {
			errs = append(errs, "L'adresse email est invalide.")
		}
	} else if req.DonorEmail != "" && !validate.Email(req.DonorEmail) {
		errs = append(errs, "L'adresse email est invalide.")
	}
	return errs
}

// DonationsIntent opens a charge attempt with the payment processor and
// records the donation as pending. The row is only written once the
// processor call has succeeded, so a provider outage leaves no trace.
func (a *App) DonationsIntent(w http.ResponseWriter, r *http.Request) {
	if !a.allow(w, r, "donation", policyDonation) {
		return
	}
	if !a.Cfg.PaymentsEnabled() {
		a.error(w, http.StatusServiceUnavailable, "payments_disabled", "Les paiements en ligne sont indisponibles pour le moment.")
		return
	}

	var req donationRequest
	if err := decodeJSON(r, &req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "Requête invalide.")
		return
	}
	if errs := a.validateDonation(&req); len(errs) > 0 {
		a.validationError(w, errs)
		return
	}

	donorName := validate.Sanitize(req.DonorName)
	donorEmail := validate.Sanitize(req.DonorEmail)
	notes := validate.Sanitize(req.Notes)
	reference := a.newPaymentReference()

	intent, err := a.Payments.CreateIntent(r.Context(), payments.IntentRequest{
		Amount:      req.Amount,
		Currency:    a.Cfg.DonationCurrency,
		DonorName:   donorName,
		DonorEmail:  donorEmail,
		Category:    req.Category,
		Frequency:   req.Frequency,
		Anonymous:   req.Anonymous,
		Description: fmt.Sprintf("Don %s - %s", mail.FrequencyLabel(req.Frequency), a.Cfg.SiteName),
		Reference:   reference,
	})
	if err != nil {
		a.Logger.Error().Err(err).Msg("payment intent creation failed")
		a.error(w, http.StatusInternalServerError, "provider_error", "Le paiement n'a pas pu être initialisé. Veuillez réessayer plus tard.")
		return
	}

	var donation domain.Donation
	row := a.SQL.QueryRow(r.Context(), sqlinline.QInsertPendingDonation,
		nullIf(donorName), nullIf(donorEmail), req.Amount, a.Cfg.DonationCurrency,
		req.Category, req.Frequency, req.Anonymous, reference, intent.ID, notes)
	if err := row.Scan(&donation.ID, &donation.CreatedAt); err != nil {
		// The provider intent now has no matching row; the webhook will
		// land on zero rows and no donation will be recorded.
		a.Logger.Error().Err(err).Str("payment_intent", intent.ID).Msg("pending donation insert failed after intent creation")
		a.internalError(w)
		return
	}

	a.logActivity(r.Context(), domain.ActionDonationReceived,
		fmt.Sprintf("don #%d en attente (%s FCFA, %s)", donation.ID, mail.FormatAmount(req.Amount), reference), nil)

	a.json(w, http.StatusCreated, map[string]any{
		"id":                donation.ID,
		"client_secret":     intent.ClientSecret,
		"payment_reference": reference,
	})
}

// DonationsOffline records a donation in one step when no payment processor
// is configured. The two submission paths are mutually exclusive by config.
func (a *App) DonationsOffline(w http.ResponseWriter, r *http.Request) {
	if !a.allow(w, r, "donation", policyDonation) {
		return
	}
	if a.Cfg.PaymentsEnabled() {
		a.error(w, http.StatusConflict, "payments_enabled", "Les dons passent par le paiement en ligne.")
		return
	}

	var req donationRequest
	if err := decodeJSON(r, &req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "Requête invalide.")
		return
	}
	if errs := a.validateDonation(&req); len(errs) > 0 {
		a.validationError(w, errs)
		return
	}

	donorName := validate.Sanitize(req.DonorName)
	donorEmail := validate.Sanitize(req.DonorEmail)
	notes := validate.Sanitize(req.Notes)
	reference := a.newPaymentReference()

	var donation domain.Donation
	row := a.SQL.QueryRow(r.Context(), sqlinline.QInsertCompletedDonation,
		nullIf(donorName), nullIf(donorEmail), req.Amount, a.Cfg.DonationCurrency,
		req.Category, req.Frequency, req.Anonymous, reference, notes)
	if err := row.Scan(&donation.ID, &donation.CreatedAt); err != nil {
		a.Logger.Error().Err(err).Msg("donation insert failed")
		a.internalError(w)
		return
	}

	a.logActivity(r.Context(), domain.ActionDonationReceived,
		fmt.Sprintf("don #%d reçu (%s FCFA, %s)", donation.ID, mail.FormatAmount(req.Amount), reference), nil)

	fields := mail.DonationFields{
		ID:               donation.ID,
		DonorName:        donorName,
		DonorEmail:       donorEmail,
		Amount:           req.Amount,
		Category:         req.Category,
		Frequency:        req.Frequency,
		Anonymous:        req.Anonymous,
		PaymentReference: reference,
		Notes:            notes,
		When:             donation.CreatedAt,
	}
	if !req.Anonymous && donorEmail != "" {
		subject, body := a.Templates.DonationAck(fields)
		a.notify(r.Context(), donorEmail, subject, body)
	}
	alertSubject, alertBody := a.Templates.DonationAlert(fields)
	a.notify(r.Context(), a.Cfg.AdminEmail, alertSubject, alertBody)

	a.json(w, http.StatusCreated, map[string]any{
		"id":                donation.ID,
		"payment_reference": reference,
		"message":           "Merci pour votre don ! Un reçu vous a été envoyé par email.",
	})
}

func nullIf(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
