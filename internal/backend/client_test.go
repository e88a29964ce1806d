package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/paulkamani9/overtune/internal/platform/errors"
	"github.com/paulkamani9/overtune/internal/session"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return client
}

func TestNewRequiresBaseURL(t *testing.T) {
	t.Parallel()

	if _, err := New(Config{BaseURL: "   "}); err == nil {
		t.Fatal("expected error for blank base url")
	}
}

func TestLessonsReturnsCatalog(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/lessons" {
			t.Errorf("path = %q, want /lessons", r.URL.Path)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("expected X-Request-ID header")
		}
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":"l-1","subject":"Piano","location":"Online","price":30,"spaces":5}]}`))
	})

	lessons, err := client.Lessons(context.Background())
	if err != nil {
		t.Fatalf("Lessons() error = %v", err)
	}
	if len(lessons) != 1 || lessons[0].ID != "l-1" {
		t.Fatalf("lessons = %+v, want one lesson l-1", lessons)
	}
}

func TestLessonsTransportFailureIsUnavailable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // connection refused from here on

	client, err := New(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = client.Lessons(context.Background())
	if !apperrors.IsUnavailable(err) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
	if err.Error() != ConnectErrorMessage {
		t.Fatalf("message = %q, want connect message", err.Error())
	}
}

func TestLessonsMalformedBodyIsUnavailable(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	})

	if _, err := client.Lessons(context.Background()); !apperrors.IsUnavailable(err) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
}

func TestSearchRejectsBlankQuery(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(http.ResponseWriter, *http.Request) {
		t.Error("no request expected for blank query")
	})

	_, err := client.Search(context.Background(), "   ")
	if apperrors.KindOf(err) != apperrors.KindInvalidInput {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestSearchEscapesQuery(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "piano & drums" {
			t.Errorf("q = %q, want %q", got, "piano & drums")
		}
		_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
	})

	lessons, err := client.Search(context.Background(), "piano & drums")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(lessons) != 0 {
		t.Fatalf("lessons = %+v, want empty", lessons)
	}
}

func TestLoginReturnsCredentials(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("%s %s, want POST /auth/login", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["email"] != "ada@example.com" {
			t.Errorf("email = %q", body["email"])
		}
		_, _ = w.Write([]byte(`{"success":true,"token":"token-123","user":{"id":"u-1","name":"Ada","email":"ada@example.com","phone":"0700"}}`))
	})

	creds, err := client.Login(context.Background(), "ada@example.com", "pw")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if creds.Token != "token-123" || creds.User.Name != "Ada" {
		t.Fatalf("creds = %+v", creds)
	}
}

func TestLoginRejectionCarriesBackendMessage(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"message":"Invalid credentials"}`))
	})

	_, err := client.Login(context.Background(), "ada@example.com", "bad")
	if apperrors.KindOf(err) != apperrors.KindRejected {
		t.Fatalf("expected rejection, got %v", err)
	}
	if err.Error() != "Invalid credentials" {
		t.Fatalf("message = %q, want backend message verbatim", err.Error())
	}
}

func TestLoginRejectionFallsBackToDefaultMessage(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false}`))
	})

	_, err := client.Login(context.Background(), "ada@example.com", "bad")
	if err == nil || err.Error() != "Login failed. Please try again." {
		t.Fatalf("message = %v, want login fallback", err)
	}
}

func TestRegisterSendsProfileData(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/register" {
			t.Errorf("path = %q, want /auth/register", r.URL.Path)
		}
		var input session.RegisterInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if input.Name != "Ada" || input.Phone != "0700" {
			t.Errorf("input = %+v", input)
		}
		_, _ = w.Write([]byte(`{"success":true,"token":"token-123","user":{"id":"u-1","name":"Ada","email":"ada@example.com","phone":"0700"}}`))
	})

	input := session.RegisterInput{Name: "Ada", Email: "ada@example.com", Phone: "0700", Password: "pw"}
	creds, err := client.Register(context.Background(), input)
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if !creds.Valid() {
		t.Fatalf("creds = %+v, want valid", creds)
	}
}

func TestOrdersRequiresToken(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(http.ResponseWriter, *http.Request) {
		t.Error("no request expected without token")
	})

	_, err := client.Orders(context.Background(), "")
	if apperrors.KindOf(err) != apperrors.KindUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

func TestOrdersSendsBearerToken(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer token-123" {
			t.Errorf("Authorization = %q", got)
		}
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":"o-1","name":"Ada","phone":"0700","lessons":[{"id":"l-1","quantity":2}]}]}`))
	})

	orders, err := client.Orders(context.Background(), "token-123")
	if err != nil {
		t.Fatalf("Orders() error = %v", err)
	}
	if len(orders) != 1 || orders[0].Lessons[0].Quantity != 2 {
		t.Fatalf("orders = %+v", orders)
	}
}

func TestSubmitOrderAnonymousOmitsAuthorization(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("Authorization = %q, want unset", got)
		}
		var req OrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if req.Name != "Ada" || len(req.Lessons) != 1 || req.Lessons[0].ID != "l-1" {
			t.Errorf("request = %+v", req)
		}
		_, _ = w.Write([]byte(`{"success":true}`))
	})

	order := OrderRequest{Name: "Ada", Phone: "0700", Lessons: []OrderLine{{ID: "l-1", Quantity: 1}}}
	if err := client.SubmitOrder(context.Background(), "", order); err != nil {
		t.Fatalf("SubmitOrder() error = %v", err)
	}
}

func TestSubmitOrderAttachesTokenWhenPresent(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer token-123" {
			t.Errorf("Authorization = %q", got)
		}
		_, _ = w.Write([]byte(`{"success":true}`))
	})

	order := OrderRequest{Name: "Ada", Phone: "0700", Lessons: []OrderLine{{ID: "l-1", Quantity: 1}}}
	if err := client.SubmitOrder(context.Background(), "token-123", order); err != nil {
		t.Fatalf("SubmitOrder() error = %v", err)
	}
}

func TestSubmitOrderRejectionKeepsBackendMessage(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"success":false,"message":"Not enough spaces"}`))
	})

	err := client.SubmitOrder(context.Background(), "", OrderRequest{Name: "Ada"})
	if apperrors.KindOf(err) != apperrors.KindRejected {
		t.Fatalf("expected rejection, got %v", err)
	}
	if err.Error() != "Not enough spaces" {
		t.Fatalf("message = %q, want %q", err.Error(), "Not enough spaces")
	}
}
