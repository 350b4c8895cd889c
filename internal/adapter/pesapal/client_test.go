package pesapal

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, baseURL string) *HTTPClient {
	t.Helper()
	client, err := NewHTTPClient(baseURL, "key", "secret", "https://shop.example/callback", testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	client.now = func() time.Time { return time.Unix(1700000000, 0) }
	return client
}

func TestNewHTTPClientValidatesURL(t *testing.T) {
	if _, err := NewHTTPClient("://bad-url", "k", "s", "cb", testLogger()); err == nil {
		t.Fatal("expected error for invalid url")
	}
	if _, err := NewHTTPClient("/relative", "k", "s", "cb", testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
}

func TestCreatePaymentPage(t *testing.T) {
	var tokenQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/api/get-token") {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		tokenQuery = r.URL.Query()
		_ = json.NewEncoder(w).Encode(map[string]string{"token": "tok-1"})
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	page, err := client.CreatePaymentPage(context.Background(), PaymentRequest{
		OrderID:   10,
		Amount:    5000,
		Email:     "amina@example.com",
		Phone:     "0712345678",
		FirstName: "Amina",
		LastName:  "Wanjiru",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if page.Reference != "ORD_10_1700000000" {
		t.Fatalf("unexpected reference: %s", page.Reference)
	}
	if tokenQuery.Get("consumer_key") != "key" || tokenQuery.Get("signature") == "" {
		t.Fatalf("token request not signed: %v", tokenQuery)
	}

	parsed, err := url.Parse(page.IframeURL)
	if err != nil {
		t.Fatalf("iframe url does not parse: %v", err)
	}
	if !strings.HasSuffix(parsed.Path, "/PostPesapalDirectOrder") {
		t.Fatalf("unexpected iframe path: %s", parsed.Path)
	}
	query := parsed.Query()
	if query.Get("pesapal_merchant_reference") != page.Reference {
		t.Fatalf("reference missing from iframe url: %s", page.IframeURL)
	}
	if query.Get("pesapal_signature") == "" || query.Get("pesapal_response_type") != "JSON" {
		t.Fatalf("unexpected iframe query: %v", query)
	}

	raw, err := base64.StdEncoding.DecodeString(query.Get("pesapal_request_data"))
	if err != nil {
		t.Fatalf("payload is not base64: %v", err)
	}
	doc := string(raw)
	for _, want := range []string{
		"<Reference>ORD_10_1700000000</Reference>",
		"<Amount>5000.00</Amount>",
		"<Currency>KES</Currency>",
		"<CustomerEmail>amina@example.com</CustomerEmail>",
		"<CustomerFirstName>Amina</CustomerFirstName>",
		"<CallbackUrl>https://shop.example/callback</CallbackUrl>",
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("payload missing %s:\n%s", want, doc)
		}
	}
}

func TestCreatePaymentPageFailsWithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	if _, err := client.CreatePaymentPage(context.Background(), PaymentRequest{OrderID: 1, Amount: 100}); err == nil {
		t.Fatal("expected error when token is missing")
	}
}

func TestVerifyPayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/api/get-token"):
			_ = json.NewEncoder(w).Encode(map[string]string{"token": "tok-1"})
		case strings.HasSuffix(r.URL.Path, "/api/query-payment-details"):
			q := r.URL.Query()
			if q.Get("token") != "tok-1" || q.Get("pesapal_merchant_reference") != "ORD_10_1" {
				t.Fatalf("unexpected query: %v", q)
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"status":    "COMPLETED",
				"reference": "ORD_10_1",
				"amount":    5000.0,
			})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	status, err := client.VerifyPayment(context.Background(), "ORD_10_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.Status != "COMPLETED" || status.Reference != "ORD_10_1" {
		t.Fatalf("unexpected status: %+v", status)
	}
	if status.Currency != "KES" {
		t.Fatalf("expected KES default currency, got %s", status.Currency)
	}
}

func TestVerifyPaymentGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/api/get-token") {
			_ = json.NewEncoder(w).Encode(map[string]string{"token": "tok-1"})
			return
		}
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	if _, err := client.VerifyPayment(context.Background(), "ORD_10_1"); err == nil {
		t.Fatal("expected error from server")
	}
}

func TestSignIsDeterministic(t *testing.T) {
	client := newTestClient(t, "https://pesapal.example/api")
	params := map[string]string{"b": "2", "a": "1"}
	first := client.sign(params)
	second := client.sign(map[string]string{"a": "1", "b": "2"})
	if first == "" || first != second {
		t.Fatalf("expected stable signature, got %q and %q", first, second)
	}
}
