package handlers

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"oasisweb/internal/infra"
	"oasisweb/internal/mail"
	"oasisweb/internal/payments"
	"oasisweb/internal/ratelimit"
)

// fakeSQL scripts the SQLExecutor contract per query constant. Unscripted
// calls fail the test so handlers cannot silently hit the database in ways a
// test did not anticipate.
type fakeSQL struct {
	t *testing.T

	execFn     func(query string, args ...any) (pgconn.CommandTag, error)
	queryRowFn func(query string, args ...any) pgx.Row
	queryFn    func(query string, args ...any) (pgx.Rows, error)

	execCalls     []string
	queryRowCalls []string
}

func (f *fakeSQL) Exec(_ context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	f.execCalls = append(f.execCalls, query)
	if f.execFn == nil {
		f.t.Fatalf("unexpected Exec: %.60s", query)
	}
	return f.execFn(query, args...)
}

func (f *fakeSQL) QueryRow(_ context.Context, query string, args ...any) pgx.Row {
	f.queryRowCalls = append(f.queryRowCalls, query)
	if f.queryRowFn == nil {
		f.t.Fatalf("unexpected QueryRow: %.60s", query)
		return nil
	}
	return f.queryRowFn(query, args...)
}

func (f *fakeSQL) Query(_ context.Context, query string, args ...any) (pgx.Rows, error) {
	if f.queryFn == nil {
		f.t.Fatalf("unexpected Query: %.60s", query)
		return nil, fmt.Errorf("unexpected query")
	}
	return f.queryFn(query, args...)
}

// okExec accepts any Exec (activity log writes) and reports one row touched.
func okExec(string, ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

// recordingMailer captures outbound mail instead of sending it.
type recordingMailer struct {
	sent []sentMail
}

func (m *recordingMailer) Send(to, subject, body string) bool {
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return true
}

func testConfig() *infra.Config {
	return &infra.Config{
		AppEnv:            "test",
		SiteName:          "OASIS ÉDUCATION ET DÉVELOPPEMENT",
		SiteEmail:         "contact@example.org",
		AdminEmail:        "admin@example.org",
		JWTSecret:         "test-secret",
		AdminUsername:     "admin",
		DonationMinAmount: 1000,
		DonationCurrency:  "XOF",
	}
}

func newTestApp(t *testing.T, sql *fakeSQL, cfg *infra.Config) (*App, *recordingMailer) {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}
	mailer := &recordingMailer{}
	pay := payments.NewClient(payments.Options{
		SecretKey: cfg.StripeSecretKey,
		BaseURL:   cfg.StripeBaseURL,
	})
	app := NewApp(sql, zerolog.Nop(), mailer, pay, ratelimit.NewStore(), cfg)
	app.now = func() time.Time { return time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC) }
	return app, mailer
}

var _ mail.Mailer = (*recordingMailer)(nil)
var _ infra.SQLExecutor = (*fakeSQL)(nil)
