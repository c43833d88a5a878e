package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mlsaran/smarttimetable/internal/constants"
)

func newTestClient(t *testing.T, token string, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewWithHTTPClient(srv.URL, StaticToken(token), srv.Client())
}

func TestRequestCarriesBearerToken(t *testing.T) {
	var gotAuth, gotRequestID string
	c := newTestClient(t, "tok-abc", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{"id":1,"email":"a@b.edu","role":"scheduler"}`))
	})

	if _, err := c.Me(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer tok-abc" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
	if gotRequestID == "" {
		t.Error("expected an X-Request-ID header on every request")
	}
}

func TestAnonymousRequestOmitsAuthorization(t *testing.T) {
	var gotAuth string
	hasAuth := false
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, hasAuth = r.Header["Authorization"]
		w.Write([]byte(`{"id":3,"status":"approved","version":1,"created_by":1,"periods":[],"created_at":"2026-01-05T10:00:00Z"}`))
	})

	if _, err := c.GetPublicTimetable(context.Background(), "spring-2026"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hasAuth {
		t.Errorf("anonymous call must not send Authorization, got %q", gotAuth)
	}
}

func TestErrorMessageExtraction(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"detail field", `{"detail":"invalid otp"}`, "invalid otp"},
		{"message field", `{"message":"too many requests"}`, "too many requests"},
		{"detail wins", `{"detail":"a","message":"b"}`, "a"},
		{"plain string", `"gone"`, "gone"},
		{"garbage", `<html>nope</html>`, "an error occurred while communicating with the server"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(tc.body))
			})

			err := c.Login(context.Background(), "a@b.edu")
			var berr *BackendError
			if !errors.As(err, &berr) {
				t.Fatalf("expected a BackendError, got %v", err)
			}
			if berr.Status != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", berr.Status)
			}
			if berr.Message != tc.want {
				t.Errorf("expected message %q, got %q", tc.want, berr.Message)
			}
		})
	}
}

func TestVerifyOTPReturnsAccessToken(t *testing.T) {
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/verify-otp/" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"access_token":"tok-xyz"}`))
	})

	token, err := c.VerifyOTP(context.Background(), "a@b.edu", "424242")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "tok-xyz" {
		t.Errorf("expected tok-xyz, got %q", token)
	}
}

func TestGenerateDecodesVariantList(t *testing.T) {
	c := newTestClient(t, "t", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id":11,"status":"draft","version":1,"created_by":1,"periods":[],"created_at":"2026-01-05T10:00:00Z"},
			{"id":12,"status":"draft","version":1,"created_by":1,"periods":[],"created_at":"2026-01-05T10:00:00Z"}
		]`))
	})

	outcome, err := c.Generate(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Infeasible != nil {
		t.Fatalf("unexpected infeasibility: %+v", outcome.Infeasible)
	}
	if len(outcome.Variants) != 2 || outcome.Variants[0].ID != 11 {
		t.Errorf("unexpected variants: %+v", outcome.Variants)
	}
}

func TestGenerateDecodesInfeasibility(t *testing.T) {
	c := newTestClient(t, "t", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"error":"no feasible assignment",
			"suggestions":[{"type":"add_room","message":"add one more room","solution":"rooms"}]
		}`))
	})

	outcome, err := c.Generate(context.Background(), 3)
	if err != nil {
		t.Fatalf("infeasibility is a success response, got error %v", err)
	}
	if outcome.Infeasible == nil {
		t.Fatal("expected the infeasibility diagnostic")
	}
	if outcome.Infeasible.Error != "no feasible assignment" {
		t.Errorf("unexpected diagnostic: %+v", outcome.Infeasible)
	}
	if len(outcome.Infeasible.Suggestions) != 1 || outcome.Infeasible.Suggestions[0].Type != "add_room" {
		t.Errorf("unexpected suggestions: %+v", outcome.Infeasible.Suggestions)
	}
	if outcome.Variants != nil {
		t.Error("an infeasible outcome must carry no variants")
	}
}

func TestListTimetablesStatusFilter(t *testing.T) {
	var gotStatus string
	c := newTestClient(t, "t", func(w http.ResponseWriter, r *http.Request) {
		gotStatus = r.URL.Query().Get("status")
		w.Write([]byte(`[]`))
	})

	if _, err := c.ListTimetables(context.Background(), constants.StatusPending); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotStatus != "pending" {
		t.Errorf("expected status filter pending, got %q", gotStatus)
	}

	if _, err := c.ListTimetables(context.Background(), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotStatus != "" {
		t.Errorf("expected no status filter, got %q", gotStatus)
	}
}

func TestExportPDFDecodesArtifact(t *testing.T) {
	c := newTestClient(t, "t", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/timetables/7/pdf/" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"filename":"timetable_7.pdf","content_type":"application/pdf","content":"aGVsbG8="}`))
	})

	art, err := c.ExportPDF(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if art.Filename != "timetable_7.pdf" || art.ContentType != "application/pdf" || art.Content != "aGVsbG8=" {
		t.Errorf("unexpected artifact: %+v", art)
	}
}

func TestApprovePayload(t *testing.T) {
	var body string
	c := newTestClient(t, "t", func(w http.ResponseWriter, r *http.Request) {
		buf, _ := io.ReadAll(r.Body)
		body = string(buf)
		w.Write([]byte(`{"id":7,"status":"approved","version":1,"created_by":1,"periods":[],"created_at":"2026-01-05T10:00:00Z"}`))
	})

	tt, err := c.Approve(context.Background(), 7, true, "ok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tt.Status != constants.StatusApproved {
		t.Errorf("expected approved, got %s", tt.Status)
	}
	if body != `{"approved":true,"comment":"ok"}` {
		t.Errorf("unexpected request body: %s", body)
	}
}
