package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestAdminAuth(t *testing.T) {
	const secret = "test-secret"

	valid, err := IssueAdminToken(secret, "admin", time.Hour)
	if err != nil {
		t.Fatalf("IssueAdminToken() error = %v", err)
	}
	expired, err := IssueAdminToken(secret, "admin", -time.Minute)
	if err != nil {
		t.Fatalf("IssueAdminToken() error = %v", err)
	}
	otherSecret, err := IssueAdminToken("other-secret", "admin", time.Hour)
	if err != nil {
		t.Fatalf("IssueAdminToken() error = %v", err)
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantAdmin  string
	}{
		{
			name:       "valid token",
			header:     "Bearer " + valid,
			wantStatus: http.StatusOK,
			wantAdmin:  "admin",
		},
		{
			name:       "missing header",
			header:     "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			header:     "Basic " + valid,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired token",
			header:     "Bearer " + expired,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "foreign secret",
			header:     "Bearer " + otherSecret,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage token",
			header:     "Bearer not-a-token",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var gotAdmin string
			handler := AdminAuth(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if admin, ok := AdminFromContext(r.Context()); ok {
					gotAdmin = admin.Username
				}
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			if gotAdmin != tc.wantAdmin {
				t.Fatalf("admin = %q, want %q", gotAdmin, tc.wantAdmin)
			}
		})
	}
}
