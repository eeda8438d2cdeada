package handlers

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"

	"oasisweb/internal/domain"
	"oasisweb/internal/mail"
	"oasisweb/internal/sqlinline"
	"oasisweb/internal/validate"
)

var joinRules = validate.Rules{
	"fullname": {
		Required:  true,
		MinLength: 2,
		MaxLength: 100,
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
		Required: true,
		Check: func(v string) string {
			if !validate.BeninPhone(v) {
				return "Le numéro de téléphone est invalide (format béninois attendu)."
			}
			return ""
		},
	},
	"address": {
		Required:  true,
		MinLength: 10,
	},
	"motivation": {
		Required:  true,
		MinLength: 50,
	},
}

type joinRequest struct {
	FullName     string `json:"fullname"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Age          int    `json:"age"`
	Address      string `json:"address"`
	Profession   string `json:"profession"`
	Organization string `json:"organization"`
	Motivation   string `json:"motivation"`
	Skills       string `json:"skills"`
	Availability string `json:"availability"`
	HearAbout    string `json:"hear_about"`
	JoinType     string `json:"join_type"`
	Newsletter   bool   `json:"newsletter"`
	Privacy      bool   `json:"privacy"`
}

func (a *App) JoinCreate(w http.ResponseWriter, r *http.Request) {
	if !a.allow(w, r, "join", policyJoin) {
		return
	}

	var req joinRequest
	if err := decodeJSON(r, &req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "Requête invalide.")
		return
	}

	errs := joinRules.Fields(map[string]string{
		"fullname":   req.FullName,
		"email":      req.Email,
		"phone":      req.Phone,
		"address":    req.Address,
		"motivation": req.Motivation,
	})
	if req.Age != 0 && (req.Age < 18 || req.Age > 100) {
		errs = append(errs, "L'âge doit être compris entre 18 et 100 ans.")
	}
	if !domain.IsValidJoinType(req.JoinType) {
		errs = append(errs, "Le type d'adhésion est invalide.")
	}
	if !req.Privacy {
		errs = append(errs, "Vous devez accepter la politique de confidentialité.")
	}
	if len(errs) > 0 {
		a.validationError(w, errs)
		return
	}

	email := validate.Sanitize(req.Email)

	var existingID int64
	err := a.SQL.QueryRow(r.Context(), sqlinline.QSelectUserIDByEmail, email).Scan(&existingID)
	if err == nil {
		a.error(w, http.StatusConflict, "duplicate_email", "Une candidature existe déjà avec cette adresse email.")
		return
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		a.Logger.Error().Err(err).Msg("user lookup failed")
		a.internalError(w)
		return
	}

	user := domain.User{
		FullName:     validate.Sanitize(req.FullName),
		Email:        email,
		Phone:        validate.Sanitize(req.Phone),
		Age:          req.Age,
		Address:      validate.Sanitize(req.Address),
		Profession:   validate.Sanitize(req.Profession),
		Organization: validate.Sanitize(req.Organization),
		Motivation:   validate.Sanitize(req.Motivation),
		Skills:       validate.Sanitize(req.Skills),
		Availability: validate.Sanitize(req.Availability),
		HearAbout:    validate.Sanitize(req.HearAbout),
		JoinType:     domain.JoinType(req.JoinType),
		Newsletter:   req.Newsletter,
	}

	row := a.SQL.QueryRow(r.Context(), sqlinline.QInsertUser,
		user.FullName, user.Email, user.Phone, user.Age, user.Address,
		user.Profession, user.Organization, user.Motivation, user.Skills,
		user.Availability, user.HearAbout, string(user.JoinType), user.Newsletter)
	if err := row.Scan(&user.ID, &user.CreatedAt); err != nil {
		a.Logger.Error().Err(err).Msg("user insert failed")
		a.internalError(w)
		return
	}

	a.logActivity(r.Context(), domain.ActionUserRegistration,
		"candidature #"+itoa(user.ID)+" ("+string(user.JoinType)+") de "+user.Email, &user.ID)

	if user.Newsletter {
		// Best-effort opt-in; the application stands even if this fails.
		if _, _, _, err := a.upsertSubscriber(r.Context(), user.Email); err != nil && !errors.Is(err, domain.ErrAlreadySubscribed) {
			a.Logger.Warn().Err(err).Str("email", user.Email).Msg("join newsletter opt-in failed")
		}
	}

	alertSubject, alertBody := a.Templates.JoinAlert(joinAlertFields(user))
	a.notify(r.Context(), a.Cfg.AdminEmail, alertSubject, alertBody)
	ackSubject, ackBody := a.Templates.JoinAck(user.FullName, user.Email, string(user.JoinType), user.CreatedAt)
	a.notify(r.Context(), user.Email, ackSubject, ackBody)

	a.json(w, http.StatusCreated, map[string]any{
		"id":      user.ID,
		"status":  string(domain.UserStatusPending),
		"message": "Votre candidature a été envoyée avec succès. Nous vous contacterons bientôt.",
	})
}

func joinAlertFields(u domain.User) mail.JoinAlertFields {
	return mail.JoinAlertFields{
		ID:           u.ID,
		FullName:     u.FullName,
		Email:        u.Email,
		Phone:        u.Phone,
		Age:          u.Age,
		Address:      u.Address,
		Profession:   u.Profession,
		Organization: u.Organization,
		Motivation:   u.Motivation,
		Skills:       u.Skills,
		Availability: u.Availability,
		HearAbout:    u.HearAbout,
		JoinType:     string(u.JoinType),
		Newsletter:   u.Newsletter,
	}
}
