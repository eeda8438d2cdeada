package handlers

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"oasisweb/internal/domain"
	"oasisweb/internal/sqlinline"
)

const validJoinBody = `{
	"fullname": "Awa Dossou",
	"email": "awa@example.com",
	"phone": "+229 97 12 34 56",
	"age": 28,
	"address": "Quartier Zongo, Djougou, Donga",
	"motivation": "Je souhaite contribuer activement aux programmes d'éducation et d'autonomisation des femmes dans ma communauté.",
	"join_type": "volunteer",
	"privacy": true
}`

func TestJoinCreate(t *testing.T) {
	var recordedActions []string
	sql := &fakeSQL{}
	sql.execFn = func(query string, args ...any) (pgconn.CommandTag, error) {
		if query == sqlinline.QInsertActivity {
			recordedActions = append(recordedActions, args[0].(string))
		}
		return okExec(query)
	}
	sql.queryRowFn = func(query string, args ...any) pgx.Row {
		switch query {
		case sqlinline.QSelectUserIDByEmail:
			return SimpleRow{} // no existing application
		case sqlinline.QInsertUser:
			return NewSimpleRow(func(dest ...any) error {
				*dest[0].(*int64) = 42
				*dest[1].(*time.Time) = time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
				return nil
			})
		}
		t.Fatalf("unexpected QueryRow: %.60s", query)
		return nil
	}
	sql.t = t
	app, mailer := newTestApp(t, sql, nil)

	rec := postJSON(t, app.JoinCreate, "/v1/join", validJoinBody)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d (%s)", rec.Code, http.StatusCreated, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"pending"`) {
		t.Fatalf("response missing pending status: %s", rec.Body.String())
	}

	if len(mailer.sent) != 2 {
		t.Fatalf("mails sent = %d, want 2 (staff alert + applicant ack)", len(mailer.sent))
	}
	if mailer.sent[0].To != "admin@example.org" || mailer.sent[1].To != "awa@example.com" {
		t.Fatalf("mail recipients = %q, %q", mailer.sent[0].To, mailer.sent[1].To)
	}

	var sawRegistration bool
	for _, action := range recordedActions {
		if action == domain.ActionUserRegistration {
			sawRegistration = true
		}
	}
	if !sawRegistration {
		t.Fatalf("no %s activity recorded; got %v", domain.ActionUserRegistration, recordedActions)
	}
}

func TestJoinCreateDuplicateEmail(t *testing.T) {
	sql := &fakeSQL{}
	sql.queryRowFn = func(query string, args ...any) pgx.Row {
		if query != sqlinline.QSelectUserIDByEmail {
			t.Fatalf("unexpected QueryRow: %.60s", query)
		}
		return NewSimpleRow(func(dest ...any) error {
			*dest[0].(*int64) = 11
			return nil
		})
	}
	sql.t = t
	app, mailer := newTestApp(t, sql, nil)

	rec := postJSON(t, app.JoinCreate, "/v1/join", validJoinBody)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
	if len(mailer.sent) != 0 {
		t.Fatalf("mails sent = %d, want 0", len(mailer.sent))
	}
}

func TestJoinCreateValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "privacy not accepted", body: strings.Replace(validJoinBody, `"privacy": true`, `"privacy": false`, 1)},
		{name: "bad join type", body: strings.Replace(validJoinBody, `"volunteer"`, `"sponsor"`, 1)},
		{name: "foreign phone", body: strings.Replace(validJoinBody, `"+229 97 12 34 56"`, `"+33 6 12 34 56 78"`, 1)},
		{name: "underage", body: strings.Replace(validJoinBody, `"age": 28`, `"age": 15`, 1)},
		{name: "short motivation", body: strings.Replace(validJoinBody,
			`"Je souhaite contribuer activement aux programmes d'éducation et d'autonomisation des femmes dans ma communauté."`,
			`"Trop court."`, 1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sql := &fakeSQL{t: t}
			app, _ := newTestApp(t, sql, nil)

			rec := postJSON(t, app.JoinCreate, "/v1/join", tc.body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, http.StatusBadRequest, rec.Body.String())
			}
			if len(sql.queryRowCalls) != 0 {
				t.Fatalf("database touched on invalid input: %v", sql.queryRowCalls)
			}
		})
	}
}
