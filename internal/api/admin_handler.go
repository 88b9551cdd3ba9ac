package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"portfolio/internal/api/middleware"
	"portfolio/internal/auth"
	"portfolio/internal/config"
	"portfolio/internal/database"
	"portfolio/internal/portfolio"
	"portfolio/internal/storage"
)

// AdminHandler 负责管理端登录、留言处理与站点设置更新。
type AdminHandler struct {
	db          *gorm.DB
	store       *portfolio.Store
	authService *auth.AuthService
	cache       responseCache
	storage     *storage.Client
	pagination  config.PaginationConfig
}

// NewAdminHandler 构造 AdminHandler。
func NewAdminHandler(db *gorm.DB, store *portfolio.Store, authService *auth.AuthService, cache responseCache, storageClient *storage.Client, pagination config.PaginationConfig) *AdminHandler {
	return &AdminHandler{
		db:          db,
		store:       store,
		authService: authService,
		cache:       cache,
		storage:     storageClient,
		pagination:  pagination,
	}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 校验账号密码并签发令牌对。
func (h *AdminHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "username and password are required")
		return
	}

	admin, err := h.store.FindAdminByUsername(c.Request.Context(), req.Username)
	if err != nil {
		// 账号不存在与密码错误返回同一种响应，避免枚举用户名。
		Unauthorized(c)
		return
	}

	if !auth.CheckPasswordHash(req.Password, admin.PasswordHash) {
		Unauthorized(c)
		return
	}

	pair, err := h.authService.GenerateTokenPair(admin.ID)
	if err != nil {
		middleware.LoggerFromContext(c).Error("generate token pair failed", "error", err)
		Internal(c, "failed to issue tokens")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":              true,
		"access_token":         pair.AccessToken,
		"refresh_token":        pair.RefreshToken,
		"expires_in":           int(h.authService.AccessTokenTTL().Seconds()),
		"must_change_password": admin.MustChangePassword,
	})
}

type messageResponse struct {
	ID         uint       `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Subject    string     `json:"subject"`
	Message    string     `json:"message"`
	IsRead     bool       `json:"is_read"`
	RepliedAt  *time.Time `json:"replied_at"`
	AdminNotes string     `json:"admin_notes"`
	CreatedAt  time.Time  `json:"created_at"`
}

func newMessageResponse(m database.ContactMessage) messageResponse {
	return messageResponse{
		ID:         m.ID,
		Name:       m.Name,
		Email:      m.Email,
		Subject:    m.Subject,
		Message:    m.Message,
		IsRead:     m.IsRead,
		RepliedAt:  m.RepliedAt,
		AdminNotes: m.AdminNotes,
		CreatedAt:  m.CreatedAt,
	}
}

// ListMessages 返回一页留言，最新的在前，可按已读状态过滤。
func (h *AdminHandler) ListMessages(c *gin.Context) {
	page := portfolio.ParsePageRequest(
		c.Query("page"),
		c.Query("page_size"),
		h.pagination.DefaultPageSize,
		h.pagination.MaxPageSize,
	)

	messages, meta, err := h.store.ListMessages(c.Request.Context(), portfolio.MessageListOptions{
		Status: c.Query("status"),
		Page:   page,
	})
	if err != nil {
		middleware.LoggerFromContext(c).Error("list messages failed", "error", err)
		Internal(c, "failed to list messages")
		return
	}

	items := make([]messageResponse, 0, len(messages))
	for _, m := range messages {
		items = append(items, newMessageResponse(m))
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"messages":   items,
		"pagination": meta,
	})
}

type updateMessageRequest struct {
	IsRead     *bool   `json:"is_read"`
	AdminNotes *string `json:"admin_notes"`
	Replied    *bool   `json:"replied"`
}

// UpdateMessage 应用管理端对单条留言的修改。
func (h *AdminHandler) UpdateMessage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "invalid message id")
		return
	}

	var req updateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	updates := map[string]any{}
	if req.IsRead != nil {
		updates["is_read"] = *req.IsRead
	}
	if req.AdminNotes != nil {
		updates["admin_notes"] = *req.AdminNotes
	}
	if req.Replied != nil {
		if *req.Replied {
			updates["replied_at"] = time.Now()
		} else {
			updates["replied_at"] = nil
		}
	}
	if len(updates) == 0 {
		BadRequest(c, "nothing to update")
		return
	}

	ctx := c.Request.Context()
	if _, err := h.store.GetMessage(ctx, uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "message not found")
			return
		}
		Internal(c, "failed to load message")
		return
	}

	if err := h.store.UpdateMessage(ctx, uint(id), updates); err != nil {
		middleware.LoggerFromContext(c).Error("update message failed", "message_id", id, "error", err)
		Internal(c, "failed to update message")
		return
	}

	msg, err := h.store.GetMessage(ctx, uint(id))
	if err != nil {
		Internal(c, "failed to reload message")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": newMessageResponse(*msg)})
}

type updateSettingsRequest struct {
	SiteTitle      string          `json:"site_title"`
	Tagline        string          `json:"tagline"`
	AboutMe        string          `json:"about_me"`
	Email          string          `json:"email"`
	GithubUsername string          `json:"github_username"`
	LinkedinURL    string          `json:"linkedin_url"`
	CVFilePath     string          `json:"cv_file_path"`
	SocialLinks    datatypes.JSON  `json:"social_links"`
}

// UpdateSettings 原地更新站点设置单例，并让公开缓存失效。
func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	ctx := c.Request.Context()
	settings, err := portfolio.GetSettings(ctx, h.db)
	if err != nil {
		middleware.LoggerFromContext(c).Error("load settings failed", "error", err)
		Internal(c, "failed to load settings")
		return
	}

	settings.SiteTitle = req.SiteTitle
	settings.Tagline = req.Tagline
	settings.AboutMe = req.AboutMe
	settings.Email = req.Email
	settings.GithubUsername = req.GithubUsername
	settings.LinkedinURL = req.LinkedinURL
	settings.CVFilePath = req.CVFilePath
	settings.SocialLinks = req.SocialLinks

	if err := portfolio.SaveSettings(ctx, h.db, &settings); err != nil {
		var fe portfolio.FieldErrors
		if errors.As(err, &fe) {
			ValidationFailed(c, fe)
			return
		}
		middleware.LoggerFromContext(c).Error("save settings failed", "error", err)
		Internal(c, "failed to save settings")
		return
	}

	invalidateCache(ctx, h.cache, settingsCacheKey)

	c.JSON(http.StatusOK, gin.H{"success": true, "settings": newSettingsResponse(settings)})
}
