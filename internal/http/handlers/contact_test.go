package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"oasisweb/internal/sqlinline"
)

func postJSON(t *testing.T, handler http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "203.0.113.9:4321"
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestContactCreate(t *testing.T) {
	sql := &fakeSQL{
		execFn: okExec,
		queryRowFn: func(query string, args ...any) pgx.Row {
			if query != sqlinline.QInsertContactMessage {
				return SimpleRow{}
			}
			return NewSimpleRow(func(dest ...any) error {
				*dest[0].(*int64) = 7
				*dest[1].(*time.Time) = time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
				return nil
			})
		},
	}
	sql.t = t
	app, mailer := newTestApp(t, sql, nil)

	rec := postJSON(t, app.ContactCreate, "/v1/contact",
		`{"name":"Awa Dossou","email":"awa@example.com","message":"Bonjour, je souhaite en savoir plus sur vos programmes."}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d (%s)", rec.Code, http.StatusCreated, rec.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response json: %v", err)
	}
	if resp["id"].(float64) != 7 {
		t.Fatalf("id = %v, want 7", resp["id"])
	}

	// Staff alert plus visitor acknowledgment.
	if len(mailer.sent) != 2 {
		t.Fatalf("mails sent = %d, want 2", len(mailer.sent))
	}
	if mailer.sent[0].To != "admin@example.org" {
		t.Fatalf("first mail to %q, want admin", mailer.sent[0].To)
	}
	if mailer.sent[1].To != "awa@example.com" {
		t.Fatalf("second mail to %q, want visitor", mailer.sent[1].To)
	}
}

func TestContactCreateValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing fields", body: `{}`},
		{name: "short name", body: `{"name":"A","email":"a@b.co","message":"Un message suffisamment long."}`},
		{name: "bad email", body: `{"name":"Awa Dossou","email":"not-an-email","message":"Un message suffisamment long."}`},
		{name: "short message", body: `{"name":"Awa Dossou","email":"a@b.co","message":"court"}`},
		{name: "digits in name", body: `{"name":"Awa 42","email":"a@b.co","message":"Un message suffisamment long."}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sql := &fakeSQL{t: t} // any SQL call fails the test
			app, mailer := newTestApp(t, sql, nil)

			rec := postJSON(t, app.ContactCreate, "/v1/contact", tc.body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
			if len(mailer.sent) != 0 {
				t.Fatalf("mails sent = %d, want 0", len(mailer.sent))
			}
		})
	}
}

func TestContactCreateRateLimited(t *testing.T) {
	sql := &fakeSQL{
		execFn: okExec,
		queryRowFn: func(query string, args ...any) pgx.Row {
			return NewSimpleRow(func(dest ...any) error {
				*dest[0].(*int64) = 1
				*dest[1].(*time.Time) = time.Now()
				return nil
			})
		},
	}
	sql.t = t
	app, _ := newTestApp(t, sql, nil)

	body := `{"name":"Awa Dossou","email":"awa@example.com","message":"Bonjour, je souhaite en savoir plus sur vos programmes."}`
	for i := 0; i < 3; i++ {
		if rec := postJSON(t, app.ContactCreate, "/v1/contact", body); rec.Code != http.StatusCreated {
			t.Fatalf("attempt %d status = %d, want %d", i+1, rec.Code, http.StatusCreated)
		}
	}
	rec := postJSON(t, app.ContactCreate, "/v1/contact", body)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("fourth attempt status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
}
