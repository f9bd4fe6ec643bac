package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// testValkeyClient returns a Redis client connected to the test Valkey.
// Skips the test if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests to isolate from dev data.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "session:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// requestWithCookie turns a recorded Create response into a request
// carrying its session cookie.
func requestWithCookie(w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest("GET", "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestSessionCreateAndGet(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client, false)

	w := httptest.NewRecorder()
	ctx := context.Background()

	data := &Data{
		UserID:      uuid.New(),
		Email:       "test@session.local",
		DisplayName: "Test User",
		Role:        "admin",
		TwoFADone:   false,
	}

	sessionID, err := store.Create(ctx, w, data)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sessionID == "" {
		t.Error("expected non-empty session ID")
	}

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == CookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("expected a session cookie")
	}
	if !cookie.HttpOnly {
		t.Error("cookie should be HttpOnly")
	}
	if cookie.Secure {
		t.Error("cookie should not be Secure when the store is not")
	}

	got, err := store.Get(ctx, requestWithCookie(w))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("expected session data")
	}
	if got.UserID != data.UserID || got.Email != data.Email || got.Role != data.Role {
		t.Errorf("round-trip mismatch: %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be stamped on create")
	}
}

func TestSessionGetWithoutCookie(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client, false)

	got, err := store.Get(context.Background(), httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Error("no cookie should mean no session, not an error")
	}
}

func TestSessionGetUnknownID(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client, false)

	r := httptest.NewRequest("GET", "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: "deadbeef"})

	got, err := store.Get(context.Background(), r)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Error("unknown session ID should resolve to nil")
	}
}

func TestSessionUpdate(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client, false)
	ctx := context.Background()

	w := httptest.NewRecorder()
	data := &Data{UserID: uuid.New(), Email: "2fa@session.local", Role: "admin"}
	if _, err := store.Create(ctx, w, data); err != nil {
		t.Fatalf("Create: %v", err)
	}

	r := requestWithCookie(w)
	data.TwoFADone = true
	if err := store.Update(ctx, r, data); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := store.Get(ctx, r)
	if err != nil || got == nil {
		t.Fatalf("Get after update: %v", err)
	}
	if !got.TwoFADone {
		t.Error("TwoFADone should survive the update")
	}
}

func TestSessionDestroy(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client, false)
	ctx := context.Background()

	w := httptest.NewRecorder()
	if _, err := store.Create(ctx, w, &Data{UserID: uuid.New(), Email: "bye@session.local"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	r := requestWithCookie(w)
	w2 := httptest.NewRecorder()
	if err := store.Destroy(ctx, w2, r); err != nil {
		t.Fatalf("Destroy: %v", err)
	}

	// Cookie must be expired on the response.
	var cleared bool
	for _, c := range w2.Result().Cookies() {
		if c.Name == CookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("destroy should expire the cookie")
	}

	got, err := store.Get(ctx, r)
	if err != nil {
		t.Fatalf("Get after destroy: %v", err)
	}
	if got != nil {
		t.Error("session should be gone after destroy")
	}
}

func TestSessionDestroyWithoutCookie(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client, false)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)
	if err := store.Destroy(context.Background(), w, r); err != nil {
		t.Errorf("Destroy without cookie should be a no-op, got %v", err)
	}
}

func TestGenerateIDUnique(t *testing.T) {
	a, err := generateID()
	if err != nil {
		t.Fatalf("generateID: %v", err)
	}
	b, err := generateID()
	if err != nil {
		t.Fatalf("generateID: %v", err)
	}
	if len(a) != idLength*2 {
		t.Errorf("id length: got %d, want %d", len(a), idLength*2)
	}
	if a == b {
		t.Error("ids should be unique")
	}
}
