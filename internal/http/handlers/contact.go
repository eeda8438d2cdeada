package handlers

import (
	"net/http"
	"regexp"

	"oasisweb/internal/domain"
	"oasisweb/internal/sqlinline"
	"oasisweb/internal/validate"
)

var nameRegexp = regexp.MustCompile(`^[\p{L}\s'\-]+$`)

var contactRules = validate.Rules{
	"name": {
		Required:  true,
		MinLength: 2,
		MaxLength: 100,
		Pattern:   nameRegexp,
		Message:   "Le nom ne doit contenir que des lettres.",
	},
	"email": {
		Required: true,
		Check: func(v string) string {
			if !validate.Email(v) {
				return "L'adresse email est invalide."
			}
			return ""
		},
	},
	"phone": {
		Check: func(v string) string {
			if !validate.Phone(v) {
				return "Le numéro de téléphone est invalide."
			}
			return ""
		},
	},
	"subject": {
		MaxLength: 200,
	},
	"message": {
		Required:  true,
		MinLength: 10,
		MaxLength: 2000,
	},
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (a *App) ContactCreate(w http.ResponseWriter, r *http.Request) {
	if !a.allow(w, r, "contact", policyContact) {
		return
	}

	var req contactRequest
	if err := decodeJSON(r, &req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "Requête invalide.")
		return
	}

	fields := map[string]string{
		"name":    req.Name,
		"email":   req.Email,
		"phone":   req.Phone,
		"subject": req.Subject,
		"message": req.Message,
	}
	if errs := contactRules.Fields(fields); len(errs) > 0 {
		a.validationError(w, errs)
		return
	}

	name := validate.Sanitize(req.Name)
	email := validate.Sanitize(req.Email)
	phone := validate.Sanitize(req.Phone)
	subject := validate.Sanitize(req.Subject)
	message := validate.Sanitize(req.Message)

	var msg domain.ContactMessage
	row := a.SQL.QueryRow(r.Context(), sqlinline.QInsertContactMessage,
		name, email, phone, subject, message)
	if err := row.Scan(&msg.ID, &msg.CreatedAt); err != nil {
		a.Logger.Error().Err(err).Msg("contact message insert failed")
		a.internalError(w)
		return
	}

	a.logActivity(r.Context(), domain.ActionContactMessage, "message #"+itoa(msg.ID)+" de "+email, nil)

	alertSubject, alertBody := a.Templates.ContactAlert(msg.ID, name, email, phone, subject, message)
	a.notify(r.Context(), a.Cfg.AdminEmail, alertSubject, alertBody)
	ackSubject, ackBody := a.Templates.ContactAck(name, message)
	a.notify(r.Context(), email, ackSubject, ackBody)

	a.json(w, http.StatusCreated, map[string]any{
		"id":      msg.ID,
		"message": "Votre message a été envoyé avec succès. Nous vous répondrons dans les plus brefs délais.",
	})
}
