package infra

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ADMIN_EMAIL", "")
	t.Setenv("SMTP_FROM", "")
	t.Setenv("DONATION_MIN_AMOUNT", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.DonationMinAmount != 1000 {
		t.Fatalf("DonationMinAmount mismatch: got %d want 1000", cfg.DonationMinAmount)
	}
	if cfg.DonationCurrency != "XOF" {
		t.Fatalf("DonationCurrency mismatch: got %q want %q", cfg.DonationCurrency, "XOF")
	}
	if cfg.AdminEmail != cfg.SiteEmail {
		t.Fatalf("AdminEmail should fall back to SiteEmail, got %q", cfg.AdminEmail)
	}
	if cfg.SMTPFrom != cfg.SiteEmail {
		t.Fatalf("SMTPFrom should fall back to SiteEmail, got %q", cfg.SMTPFrom)
	}
	if cfg.HTTPReadTimeout != 15*time.Second {
		t.Fatalf("HTTPReadTimeout mismatch: got %v", cfg.HTTPReadTimeout)
	}
	if cfg.PaymentsEnabled() {
		t.Fatal("PaymentsEnabled should be false without STRIPE_SECRET_KEY")
	}
}

func TestLoadConfigRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "test-secret")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for missing DATABASE_URL")
	}
}

func TestLoadConfigRequiresWebhookSecretWithStripeKey(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("STRIPE_WEBHOOK_SECRET", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error when STRIPE_SECRET_KEY is set without STRIPE_WEBHOOK_SECRET")
	}
}

func TestLoadConfigPaymentsEnabled(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_123")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if !cfg.PaymentsEnabled() {
		t.Fatal("PaymentsEnabled should be true with STRIPE_SECRET_KEY")
	}
}

func TestLoadConfigParsesAllowedOrigins(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://oasis-education-dev.org, https://www.oasis-education-dev.org ")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	want := []string{"https://oasis-education-dev.org", "https://www.oasis-education-dev.org"}
	if len(cfg.AllowedOrigins) != len(want) {
		t.Fatalf("AllowedOrigins mismatch: got %#v want %#v", cfg.AllowedOrigins, want)
	}
	for i := range want {
		if cfg.AllowedOrigins[i] != want[i] {
			t.Fatalf("AllowedOrigins[%d] = %q, want %q", i, cfg.AllowedOrigins[i], want[i])
		}
	}
}
