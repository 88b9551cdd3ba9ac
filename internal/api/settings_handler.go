package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"portfolio/internal/api/middleware"
	"portfolio/internal/database"
	"portfolio/internal/portfolio"
	"portfolio/internal/storage"
)

const (
	settingsCacheKey = "cache:settings"
	cvLinkExpiry     = 5 * time.Minute
)

// SettingsHandler 负责公开的站点设置与 CV 下载链接。
type SettingsHandler struct {
	db       *gorm.DB
	cache    responseCache
	storage  *storage.Client
	cacheTTL time.Duration
}

// NewSettingsHandler 构造 SettingsHandler。
func NewSettingsHandler(db *gorm.DB, cache responseCache, storageClient *storage.Client, cacheTTL time.Duration) *SettingsHandler {
	return &SettingsHandler{
		db:       db,
		cache:    cache,
		storage:  storageClient,
		cacheTTL: cacheTTL,
	}
}

type settingsResponse struct {
	SiteTitle      string          `json:"site_title"`
	Tagline        string          `json:"tagline"`
	AboutMe        string          `json:"about_me"`
	Email          string          `json:"email"`
	GithubUsername string          `json:"github_username"`
	GithubURL      string          `json:"github_url"`
	LinkedinURL    string          `json:"linkedin_url"`
	SocialLinks    json.RawMessage `json:"social_links,omitempty"`
}

func newSettingsResponse(s database.PortfolioSettings) settingsResponse {
	resp := settingsResponse{
		SiteTitle:      s.SiteTitle,
		Tagline:        s.Tagline,
		AboutMe:        s.AboutMe,
		Email:          s.Email,
		GithubUsername: s.GithubUsername,
		LinkedinURL:    s.LinkedinURL,
	}
	if s.GithubUsername != "" {
		resp.GithubURL = fmt.Sprintf("https://github.com/%s", s.GithubUsername)
	}
	if len(s.SocialLinks) > 0 {
		resp.SocialLinks = json.RawMessage(s.SocialLinks)
	}
	return resp
}

// Get 返回公开的站点配置；首次访问会创建默认单例。
func (h *SettingsHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	if raw, ok := readCachedJSON(ctx, h.cache, settingsCacheKey); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
		return
	}

	settings, err := portfolio.GetSettings(ctx, h.db)
	if err != nil {
		middleware.LoggerFromContext(c).Error("load settings failed", "error", err)
		Internal(c, "error retrieving settings")
		return
	}

	payload, err := json.Marshal(gin.H{
		"success":  true,
		"settings": newSettingsResponse(settings),
	})
	if err != nil {
		Internal(c, "error retrieving settings")
		return
	}

	writeCachedJSON(ctx, h.cache, settingsCacheKey, payload, h.cacheTTL)
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

// CVLink 返回 CV 文件的下载地址。
// 启用对象存储时生成限时预签名链接，否则退回静态路径。
func (h *SettingsHandler) CVLink(c *gin.Context) {
	ctx := c.Request.Context()

	settings, err := portfolio.GetSettings(ctx, h.db)
	if err != nil {
		middleware.LoggerFromContext(c).Error("load settings failed", "error", err)
		Internal(c, "error retrieving cv link")
		return
	}

	if settings.CVFilePath == "" {
		NotFound(c, "cv not available")
		return
	}

	if h.storage == nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "url": "/static/" + settings.CVFilePath})
		return
	}

	signedURL, err := h.storage.GeneratePresignedURL(ctx, settings.CVFilePath, cvLinkExpiry)
	if err != nil {
		if storage.IsNoSuchKey(err) {
			NotFound(c, "cv not available")
			return
		}
		middleware.LoggerFromContext(c).Error("presign cv failed", "error", err)
		Internal(c, "error retrieving cv link")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "url": signedURL})
}
