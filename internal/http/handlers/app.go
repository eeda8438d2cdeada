package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"oasisweb/internal/domain"
	"oasisweb/internal/infra"
	"oasisweb/internal/mail"
	"oasisweb/internal/middleware"
	"oasisweb/internal/payments"
	"oasisweb/internal/ratelimit"
	"oasisweb/internal/sqlinline"
)

// Per-form submission policies, matched to the public site's abuse profile.
var (
	policyContact    = ratelimit.Policy{Limit: 3, Window: 300 * time.Second}
	policyJoin       = ratelimit.Policy{Limit: 2, Window: 600 * time.Second}
	policyNewsletter = ratelimit.Policy{Limit: 3, Window: 300 * time.Second}
	policyDonation   = ratelimit.Policy{Limit: 5, Window: 300 * time.Second}
)

type App struct {
	SQL       infra.SQLExecutor
	Logger    zerolog.Logger
	Mailer    mail.Mailer
	Payments  *payments.Client
	Limiter   *ratelimit.Store
	Cfg       *infra.Config
	Templates mail.Templates

	// now is swappable for tests.
	now func() time.Time
}

func NewApp(sql infra.SQLExecutor, logger zerolog.Logger, mailer mail.Mailer, pay *payments.Client, limiter *ratelimit.Store, cfg *infra.Config) *App {
	return &App{
		SQL:      sql,
		Logger:   logger,
		Mailer:   mailer,
		Payments: pay,
		Limiter:  limiter,
		Cfg:      cfg,
		Templates: mail.Templates{
			SiteName:    cfg.SiteName,
			SiteEmail:   cfg.SiteEmail,
			SiteAddress: cfg.SiteAddress,
			SitePhone:   cfg.SitePhone,
		},
		now: time.Now,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]string{"error": errCode, "message": message})
}

func (a *App) validationError(w http.ResponseWriter, errs []string) {
	a.json(w, http.StatusBadRequest, map[string]any{
		"error":    "validation_failed",
		"messages": errs,
	})
}

func (a *App) internalError(w http.ResponseWriter) {
	a.error(w, http.StatusInternalServerError, "internal", "Une erreur est survenue. Veuillez réessayer plus tard.")
}

// allow applies the per-action rate limit and writes the 429 response itself
// when the caller is over quota.
func (a *App) allow(w http.ResponseWriter, r *http.Request, action string, p ratelimit.Policy) bool {
	if a.Limiter.Allow(action, ratelimit.ClientKey(r), p) {
		return true
	}
	a.error(w, http.StatusTooManyRequests, "rate_limited", "Trop de tentatives. Veuillez réessayer plus tard.")
	return false
}

// logActivity appends an audit entry. Failures are logged and swallowed: the
// audit trail never vetoes the action it records.
func (a *App) logActivity(ctx context.Context, action, details string, userID *int64) {
	info := middleware.ClientInfoFromContext(ctx)
	_, err := a.SQL.Exec(ctx, sqlinline.QInsertActivity,
		action, details, userID, info.IP, info.UserAgent, info.Country)
	if err != nil {
		a.Logger.Warn().Err(err).Str("action", action).Msg("activity log write failed")
	}
}

// notify dispatches a mail and records an email_sent audit entry on success.
func (a *App) notify(ctx context.Context, to, subject, body string) bool {
	if !a.Mailer.Send(to, subject, body) {
		return false
	}
	a.logActivity(ctx, domain.ActionEmailSent, fmt.Sprintf("to=%s subject=%s", to, subject), nil)
	return true
}

// newPaymentReference builds the human-readable receipt reference, e.g.
// OED-20260830-3F2A1B9C0D.
func (a *App) newPaymentReference() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:10]
	return fmt.Sprintf("OED-%s-%s", a.now().Format("20060102"), suffix)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	return dec.Decode(v)
}
