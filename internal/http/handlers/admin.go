package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"oasisweb/internal/domain"
	"oasisweb/internal/middleware"
	"oasisweb/internal/sqlinline"
)

const adminTokenTTL = 24 * time.Hour

type adminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (a *App) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "Requête invalide.")
		return
	}

	if req.Username != a.Cfg.AdminUsername ||
		bcrypt.CompareHashAndPassword([]byte(a.Cfg.AdminPasswordHash), []byte(req.Password)) != nil {
		a.error(w, http.StatusUnauthorized, "invalid_credentials", "Identifiants invalides.")
		return
	}

	token, err := middleware.IssueAdminToken(a.Cfg.JWTSecret, req.Username, adminTokenTTL)
	if err != nil {
		a.Logger.Error().Err(err).Msg("admin token signing failed")
		a.internalError(w)
		return
	}

	a.logActivity(r.Context(), domain.ActionAdminLogin, "connexion de "+req.Username, nil)

	a.json(w, http.StatusOK, map[string]any{
		"token":      token,
		"expires_in": int(adminTokenTTL.Seconds()),
	})
}

func (a *App) AdminStats(w http.ResponseWriter, r *http.Request) {
	var totalUsers, pendingUsers, completedDonations, activeSubscribers, newMessages int64
	var donationTotal int64
	row := a.SQL.QueryRow(r.Context(), sqlinline.QAdminStats)
	if err := row.Scan(&totalUsers, &pendingUsers, &completedDonations, &donationTotal, &activeSubscribers, &newMessages); err != nil {
		a.Logger.Error().Err(err).Msg("stats query failed")
		a.internalError(w)
		return
	}

	a.json(w, http.StatusOK, map[string]any{
		"total_users":         totalUsers,
		"pending_users":       pendingUsers,
		"completed_donations": completedDonations,
		"donation_total":      donationTotal,
		"active_subscribers":  activeSubscribers,
		"new_messages":        newMessages,
	})
}

func (a *App) AdminUsers(w http.ResponseWriter, r *http.Request) {
	rows, err := a.SQL.Query(r.Context(), sqlinline.QListRecentUsers, listLimit(r))
	if err != nil {
		a.Logger.Error().Err(err).Msg("user list query failed")
		a.internalError(w)
		return
	}
	defer rows.Close()

	items := []map[string]any{}
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.FullName, &u.Email, &u.Phone, &u.JoinType, &u.Status, &u.CreatedAt); err != nil {
			a.Logger.Error().Err(err).Msg("user row scan failed")
			continue
		}
		items = append(items, map[string]any{
			"id":         u.ID,
			"fullname":   u.FullName,
			"email":      u.Email,
			"phone":      u.Phone,
			"join_type":  u.JoinType,
			"status":     u.Status,
			"created_at": u.CreatedAt,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) AdminMessages(w http.ResponseWriter, r *http.Request) {
	rows, err := a.SQL.Query(r.Context(), sqlinline.QListRecentMessages, listLimit(r))
	if err != nil {
		a.Logger.Error().Err(err).Msg("message list query failed")
		a.internalError(w)
		return
	}
	defer rows.Close()

	items := []map[string]any{}
	for rows.Next() {
		var m domain.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Subject, &m.Message, &m.Status, &m.CreatedAt); err != nil {
			a.Logger.Error().Err(err).Msg("message row scan failed")
			continue
		}
		items = append(items, map[string]any{
			"id":         m.ID,
			"name":       m.Name,
			"email":      m.Email,
			"phone":      m.Phone,
			"subject":    m.Subject,
			"message":    m.Message,
			"status":     m.Status,
			"created_at": m.CreatedAt,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) AdminDonations(w http.ResponseWriter, r *http.Request) {
	rows, err := a.SQL.Query(r.Context(), sqlinline.QListRecentDonations, listLimit(r))
	if err != nil {
		a.Logger.Error().Err(err).Msg("donation list query failed")
		a.internalError(w)
		return
	}
	defer rows.Close()

	items := []map[string]any{}
	for rows.Next() {
		var d domain.Donation
		if err := rows.Scan(&d.ID, &d.DonorName, &d.DonorEmail, &d.Amount, &d.Currency,
			&d.Category, &d.Frequency, &d.Anonymous, &d.PaymentReference, &d.Status, &d.CreatedAt); err != nil {
			a.Logger.Error().Err(err).Msg("donation row scan failed")
			continue
		}
		donorName := deref(d.DonorName)
		donorEmail := deref(d.DonorEmail)
		if d.Anonymous {
			donorName = "Anonyme"
			donorEmail = ""
		}
		items = append(items, map[string]any{
			"id":                d.ID,
			"donor_name":        donorName,
			"donor_email":       donorEmail,
			"amount":            d.Amount,
			"currency":          d.Currency,
			"category":          d.Category,
			"frequency":         d.Frequency,
			"anonymous":         d.Anonymous,
			"payment_reference": d.PaymentReference,
			"status":            d.Status,
			"created_at":        d.CreatedAt,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) AdminActivity(w http.ResponseWriter, r *http.Request) {
	rows, err := a.SQL.Query(r.Context(), sqlinline.QListRecentActivity, listLimit(r))
	if err != nil {
		a.Logger.Error().Err(err).Msg("activity list query failed")
		a.internalError(w)
		return
	}
	defer rows.Close()

	items := []map[string]any{}
	for rows.Next() {
		var e domain.ActivityEntry
		if err := rows.Scan(&e.ID, &e.Action, &e.Details, &e.UserID, &e.IPAddress, &e.UserAgent, &e.Country, &e.CreatedAt); err != nil {
			a.Logger.Error().Err(err).Msg("activity row scan failed")
			continue
		}
		items = append(items, map[string]any{
			"id":         e.ID,
			"action":     e.Action,
			"details":    e.Details,
			"user_id":    e.UserID,
			"ip_address": e.IPAddress,
			"user_agent": e.UserAgent,
			"country":    e.Country,
			"created_at": e.CreatedAt,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) AdminUserApprove(w http.ResponseWriter, r *http.Request) {
	a.adminUserTransition(w, r, sqlinline.QApproveUser, domain.ActionUserApproved, "approuvée")
}

func (a *App) AdminUserReject(w http.ResponseWriter, r *http.Request) {
	a.adminUserTransition(w, r, sqlinline.QRejectUser, domain.ActionUserRejected, "rejetée")
}

func (a *App) adminUserTransition(w http.ResponseWriter, r *http.Request, query, action, verb string) {
	id, err := pathID(r)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "Identifiant invalide.")
		return
	}

	tag, err := a.SQL.Exec(r.Context(), query, id)
	if err != nil {
		a.Logger.Error().Err(err).Int64("user_id", id).Msg("user status update failed")
		a.internalError(w)
		return
	}
	if tag.RowsAffected() == 0 {
		a.error(w, http.StatusConflict, "state_conflict", "Cette candidature a déjà été traitée.")
		return
	}

	a.logActivity(r.Context(), action, "candidature #"+itoa(id)+" "+verb, &id)
	a.json(w, http.StatusOK, map[string]any{"id": id, "message": "Candidature " + verb + "."})
}

func (a *App) AdminMessageRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "Identifiant invalide.")
		return
	}

	tag, err := a.SQL.Exec(r.Context(), sqlinline.QMarkMessageRead, id)
	if err != nil {
		a.Logger.Error().Err(err).Int64("message_id", id).Msg("message read update failed")
		a.internalError(w)
		return
	}
	if tag.RowsAffected() > 0 {
		a.logActivity(r.Context(), domain.ActionMessageRead, "message #"+itoa(id)+" lu", nil)
	}

	a.json(w, http.StatusOK, map[string]any{"id": id, "updated": tag.RowsAffected() > 0})
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func listLimit(r *http.Request) int {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > 200 {
		limit = 200
	}
	return limit
}
