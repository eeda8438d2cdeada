package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"

	"oasisweb/internal/domain"
	"oasisweb/internal/sqlinline"
	"oasisweb/internal/validate"
)

type newsletterRequest struct {
	Email string `json:"email"`
}

func (a *App) NewsletterSubscribe(w http.ResponseWriter, r *http.Request) {
	if !a.allow(w, r, "newsletter", policyNewsletter) {
		return
	}

	var req newsletterRequest
	if err := decodeJSON(r, &req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "Requête invalide.")
		return
	}
	email := validate.Sanitize(req.Email)
	if !validate.Email(email) {
		a.validationError(w, []string{"L'adresse email est invalide."})
		return
	}

	id, subscribedAt, created, err := a.upsertSubscriber(r.Context(), email)
	if errors.Is(err, domain.ErrAlreadySubscribed) {
		a.error(w, http.StatusConflict, "already_subscribed", "Cette adresse email est déjà abonnée à notre newsletter.")
		return
	}
	if err != nil {
		a.Logger.Error().Err(err).Msg("newsletter upsert failed")
		a.internalError(w)
		return
	}

	if created {
		a.logActivity(r.Context(), domain.ActionNewsletterJoin, "abonnement #"+itoa(id)+" pour "+email, nil)
		subject, body := a.Templates.NewsletterWelcome()
		a.notify(r.Context(), email, subject, body)
		alertSubject, alertBody := a.Templates.NewsletterAlert(id, email, subscribedAt)
		a.notify(r.Context(), a.Cfg.AdminEmail, alertSubject, alertBody)
	} else {
		a.logActivity(r.Context(), domain.ActionNewsletterRejoin, "réabonnement #"+itoa(id)+" pour "+email, nil)
		subject, body := a.Templates.NewsletterResubscribed()
		a.notify(r.Context(), email, subject, body)
	}

	a.json(w, http.StatusCreated, map[string]any{
		"id":      id,
		"message": "Merci de votre abonnement à notre newsletter !",
	})
}

// upsertSubscriber inserts a new active subscriber, reactivates an inactive
// one in place (the id survives unsubscribe cycles), or reports
// ErrAlreadySubscribed. created is true only for brand-new rows.
func (a *App) upsertSubscriber(ctx context.Context, email string) (id int64, subscribedAt time.Time, created bool, err error) {
	var status string
	err = a.SQL.QueryRow(ctx, sqlinline.QSelectSubscriberByEmail, email).Scan(&id, &status)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		err = a.SQL.QueryRow(ctx, sqlinline.QInsertSubscriber, email).Scan(&id, &subscribedAt)
		return id, subscribedAt, true, err
	case err != nil:
		return 0, time.Time{}, false, err
	}

	if status == string(domain.SubscriberActive) {
		return id, subscribedAt, false, domain.ErrAlreadySubscribed
	}
	err = a.SQL.QueryRow(ctx, sqlinline.QReactivateSubscriber, email).Scan(&id, &subscribedAt)
	return id, subscribedAt, false, err
}
