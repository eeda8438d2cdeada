package mail

import (
	"strings"
	"testing"
	"time"
)

var testTemplates = Templates{
	SiteName:    "OASIS ÉDUCATION ET DÉVELOPPEMENT",
	SiteEmail:   "contact@oasis-education-dev.org",
	SiteAddress: "Djougou, Donga, Bénin",
	SitePhone:   "+229 XX XX XX XX",
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1 000"},
		{25000, "25 000"},
		{1234567, "1 234 567"},
		{-5000, "-5 000"},
	}
	for _, tc := range tests {
		if got := FormatAmount(tc.in); got != tc.want {
			t.Fatalf("FormatAmount(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestContactAlertEscapesUserValues(t *testing.T) {
	_, body := testTemplates.ContactAlert(7, "<script>x</script>", "a@b.co", "", "", "hello <b>world</b>")
	if strings.Contains(body, "<script>") {
		t.Fatal("user-supplied markup must be escaped")
	}
	if !strings.Contains(body, "&lt;script&gt;") {
		t.Fatal("expected escaped markup in body")
	}
}

func TestDonationAlertMasksAnonymousDonor(t *testing.T) {
	fields := DonationFields{
		ID:               3,
		DonorName:        "Jane Doe",
		DonorEmail:       "jane@example.org",
		Amount:           25000,
		Category:         "education",
		Frequency:        "one-time",
		Anonymous:        true,
		PaymentReference: "OED-20260815-ABCDEF1234",
		When:             time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC),
	}
	_, body := testTemplates.DonationAlert(fields)
	if strings.Contains(body, "Jane Doe") || strings.Contains(body, "jane@example.org") {
		t.Fatal("anonymous donor identity must not appear in the staff alert")
	}
	if !strings.Contains(body, "Anonyme") {
		t.Fatal("expected the donor to be shown as Anonyme")
	}
	if !strings.Contains(body, "25 000") {
		t.Fatal("expected formatted amount in body")
	}
}

func TestDonationConfirmedIncludesDetails(t *testing.T) {
	fields := DonationFields{
		DonorName:        "Jane Doe",
		Amount:           50000,
		Category:         "women",
		Frequency:        "monthly",
		PaymentReference: "OED-20260815-ABCDEF1234",
		When:             time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC),
	}
	subject, body := testTemplates.DonationConfirmed(fields)
	if !strings.Contains(subject, testTemplates.SiteName) {
		t.Fatalf("subject should carry the site name: %q", subject)
	}
	for _, want := range []string{"50 000", "Autonomisation Des Femmes", "Don Mensuel", "OED-20260815-ABCDEF1234"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q", want)
		}
	}
}

func TestNewsletterTemplatesAreDistinct(t *testing.T) {
	welcomeSubject, welcomeBody := testTemplates.NewsletterWelcome()
	backSubject, backBody := testTemplates.NewsletterResubscribed()
	if welcomeSubject == backSubject {
		t.Fatal("welcome and resubscribe subjects must differ")
	}
	if welcomeBody == backBody {
		t.Fatal("welcome and resubscribe bodies must differ")
	}
	if !strings.Contains(backBody, "réactivé") {
		t.Fatal("resubscribe body should mention reactivation")
	}
}

func TestCategoryLabelFallsBackToGeneral(t *testing.T) {
	if got := CategoryLabel("unknown"); got != CategoryLabel("general") {
		t.Fatalf("unknown category should fall back to general, got %q", got)
	}
}
