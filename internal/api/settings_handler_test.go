package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"portfolio/internal/portfolio"
)

func newSettingsRouter(t *testing.T, db *gorm.DB, cache responseCache) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewSettingsHandler(db, cache, nil, time.Minute)
	router := gin.New()
	router.GET("/api/settings", h.Get)
	router.GET("/api/cv", h.CVLink)
	return router
}

type settingsEnvelope struct {
	Success  bool             `json:"success"`
	Settings settingsResponse `json:"settings"`
}

func TestGetSettings_CreatesDefaultsOnFirstRequest(t *testing.T) {
	db := newTestDB(t)
	router := newSettingsRouter(t, db, nil)

	w := performRequest(router, http.MethodGet, "/api/settings")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}

	var env settingsEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !env.Success || env.Settings.SiteTitle != "My Portfolio" {
		t.Fatalf("unexpected response: %+v", env)
	}
	if env.Settings.GithubURL != "" {
		t.Fatalf("github_url should be empty without a username, got %q", env.Settings.GithubURL)
	}
}

func TestGetSettings_DerivesGithubURL(t *testing.T) {
	db := newTestDB(t)

	settings, err := portfolio.GetSettings(context.Background(), db)
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	settings.GithubUsername = "ada"
	if err := portfolio.SaveSettings(context.Background(), db, &settings); err != nil {
		t.Fatalf("save settings: %v", err)
	}

	router := newSettingsRouter(t, db, nil)
	w := performRequest(router, http.MethodGet, "/api/settings")

	var env settingsEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if env.Settings.GithubURL != "https://github.com/ada" {
		t.Fatalf("github_url = %q", env.Settings.GithubURL)
	}
}

func TestGetSettings_CachesPayload(t *testing.T) {
	db := newTestDB(t)
	cache := newFakeCache()
	router := newSettingsRouter(t, db, cache)

	first := performRequest(router, http.MethodGet, "/api/settings")
	if first.Code != http.StatusOK {
		t.Fatalf("status = %d", first.Code)
	}
	if _, ok := cache.data[settingsCacheKey]; !ok {
		t.Fatal("settings payload should be cached")
	}

	second := performRequest(router, http.MethodGet, "/api/settings")
	if second.Body.String() != first.Body.String() {
		t.Fatal("second request should be served from cache")
	}
}

func TestCVLink_StaticFallback(t *testing.T) {
	db := newTestDB(t)
	router := newSettingsRouter(t, db, nil)

	w := performRequest(router, http.MethodGet, "/api/cv")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool   `json:"success"`
		URL     string `json:"url"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.URL != "/static/cv/cv.pdf" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestCVLink_MissingPath(t *testing.T) {
	db := newTestDB(t)

	settings, err := portfolio.GetSettings(context.Background(), db)
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	settings.CVFilePath = ""
	if err := portfolio.SaveSettings(context.Background(), db, &settings); err != nil {
		t.Fatalf("save settings: %v", err)
	}

	router := newSettingsRouter(t, db, nil)
	w := performRequest(router, http.MethodGet, "/api/cv")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}
