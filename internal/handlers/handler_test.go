// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL or Valkey are
// unavailable.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"pixyo/internal/ai"
	"pixyo/internal/database"
	"pixyo/internal/middleware"
	"pixyo/internal/models"
	"pixyo/internal/session"
	"pixyo/internal/store"
)

// mockProvider implements ai.Provider and ai.ImageProvider for handler
// tests without touching a real API.
type mockProvider struct {
	name      string
	model     string
	text      string
	textErr   error
	imageData []byte
	imageErr  error
}

func (m *mockProvider) Name() string  { return m.name }
func (m *mockProvider) Model() string { return m.model }

func (m *mockProvider) Generate(_ context.Context, _, _ string) (string, error) {
	return m.text, m.textErr
}

func (m *mockProvider) GenerateImage(_ context.Context, _ ai.ImageRequest) (*ai.ImageResult, error) {
	if m.imageErr != nil {
		return nil, m.imageErr
	}
	return &ai.ImageResult{Data: m.imageData, ContentType: "image/png", Model: m.model}, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "pixyo")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "pixyo")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		for _, pattern := range []string{"session:*", "unsplash:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB       *sql.DB
	Valkey   *redis.Client
	Sessions *session.Store
	Users    *store.UserStore
	Profiles *store.ProfileStore
	Designs  *store.DesignStore
	UsageLog *store.UsageLogStore
	GenLog   *store.GenerationLogStore
	Waitlist *store.WaitlistStore
	Registry *ai.Registry
	Mock     *mockProvider

	AuthH     *Auth
	ProfilesH *Profiles
	DesignsH  *Designs
	GenerateH *Generate
	UsageH    *Usage
	TrackH    *Track
	WaitlistH *Waitlist
}

// newTestEnv creates a complete test environment with all handler
// dependencies. Storage is left unconfigured (nil) so upload endpoints
// degrade the documented way.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	sessions := session.NewStore(vk, false)
	users := store.NewUserStore(db)
	profiles := store.NewProfileStore(db)
	designs := store.NewDesignStore(db)
	usageLogs := store.NewUsageLogStore(db)
	genLogs := store.NewGenerationLogStore(db)
	waitlist := store.NewWaitlistStore(db)

	mock := &mockProvider{
		name:      "mock",
		model:     "mock-model-1",
		text:      "a vivid, specific prompt",
		imageData: []byte("not-really-a-png"),
	}
	registry := ai.NewRegistry("mock", map[string]ai.ProviderConfig{})
	registry.Register("mock", mock)

	return &testEnv{
		DB:       db,
		Valkey:   vk,
		Sessions: sessions,
		Users:    users,
		Profiles: profiles,
		Designs:  designs,
		UsageLog: usageLogs,
		GenLog:   genLogs,
		Waitlist: waitlist,
		Registry: registry,
		Mock:     mock,

		AuthH:     NewAuth(sessions, users),
		ProfilesH: NewProfiles(profiles, nil),
		DesignsH:  NewDesigns(designs, profiles, nil),
		GenerateH: NewGenerate(registry, usageLogs, genLogs),
		UsageH:    NewUsage(usageLogs),
		TrackH:    NewTrack(genLogs),
		WaitlistH: NewWaitlist(waitlist),
	}
}

// seedTestUser creates a throwaway account and removes it on cleanup.
func seedTestUser(t *testing.T, env *testEnv, email, password string, meta *models.UserMetadata) *models.User {
	t.Helper()

	ctx := context.Background()
	env.DB.Exec("DELETE FROM users WHERE email = $1", email)
	u, err := env.Users.Create(ctx, email, password, "Test User", meta)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	t.Cleanup(func() {
		env.DB.Exec("DELETE FROM users WHERE id = $1", u.ID)
	})
	return u
}

// seedTestProfile creates a brand profile owned by ownerID and removes
// it (cascading its designs) on cleanup.
func seedTestProfile(t *testing.T, env *testEnv, ownerID, name string) *models.Profile {
	t.Helper()

	p, err := env.Profiles.Create(context.Background(), &models.Profile{
		OwnerID:     ownerID,
		Name:        name,
		ColorDark:   "#1a1a2e",
		ColorLight:  "#f5f5f5",
		ColorAccent: "#e94560",
	})
	if err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	t.Cleanup(func() {
		env.DB.Exec("DELETE FROM profiles WHERE id = $1", p.ID)
	})
	return p
}

// testSession builds session data as LoadSession would have populated it.
func testSession(userID uuid.UUID, email, role string, twoFADone bool) *session.Data {
	return &session.Data{
		UserID:      userID,
		Email:       email,
		DisplayName: "Test User",
		Role:        role,
		TwoFADone:   twoFADone,
	}
}

// withSession attaches session data to a request context.
func withSession(r *http.Request, sess *session.Data) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), middleware.SessionKey, sess))
}

// withURLParam adds a chi URL parameter to a request.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// withURLParamAndSession adds both a chi URL param and session data.
func withURLParamAndSession(r *http.Request, key, value string, sess *session.Data) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, middleware.SessionKey, sess)
	return r.WithContext(ctx)
}
