package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio/internal/api/middleware"
	"portfolio/internal/config"
	"portfolio/internal/database"
	"portfolio/internal/portfolio"
)

// SkillHandler 负责技能列表接口。
type SkillHandler struct {
	store      *portfolio.Store
	cache      responseCache
	pagination config.PaginationConfig
	cacheTTL   time.Duration
}

// NewSkillHandler 构造 SkillHandler。
func NewSkillHandler(store *portfolio.Store, cache responseCache, pagination config.PaginationConfig, cacheTTL time.Duration) *SkillHandler {
	return &SkillHandler{
		store:      store,
		cache:      cache,
		pagination: pagination,
		cacheTTL:   cacheTTL,
	}
}

type skillResponse struct {
	ID                 uint   `json:"id"`
	Name               string `json:"name"`
	IconURL            string `json:"icon_url"`
	Category           string `json:"category"`
	ProficiencyLevel   int    `json:"proficiency_level"`
	ProficiencyDisplay string `json:"proficiency_display"`
	YearsExperience    *uint  `json:"years_experience"`
}

func newSkillResponse(s database.Skill) skillResponse {
	return skillResponse{
		ID:                 s.ID,
		Name:               s.Name,
		IconURL:            s.IconURL,
		Category:           s.Category,
		ProficiencyLevel:   s.ProficiencyLevel,
		ProficiencyDisplay: portfolio.ProficiencyDisplay(s.ProficiencyLevel),
		YearsExperience:    s.YearsExperience,
	}
}

// List 返回一页精选技能。
// 未知分类得到空结果；超出范围的页号得到空页，均不报错。
func (h *SkillHandler) List(c *gin.Context) {
	page := portfolio.ParsePageRequest(
		c.Query("page"),
		c.Query("page_size"),
		h.pagination.DefaultPageSize,
		h.pagination.MaxPageSize,
	)
	category := c.Query("category")

	ctx := c.Request.Context()
	cacheKey := fmt.Sprintf("cache:skills:p%d:s%d:cat=%s", page.Page, page.PageSize, category)
	if raw, ok := readCachedJSON(ctx, h.cache, cacheKey); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
		return
	}

	skills, meta, err := h.store.ListSkills(ctx, portfolio.SkillListOptions{
		Category: category,
		Page:     page,
	})
	if err != nil {
		middleware.LoggerFromContext(c).Error("list skills failed", "error", err)
		Internal(c, "error retrieving skills")
		return
	}

	items := make([]skillResponse, 0, len(skills))
	for _, s := range skills {
		items = append(items, newSkillResponse(s))
	}

	payload, err := json.Marshal(gin.H{
		"success":    true,
		"skills":     items,
		"pagination": meta,
	})
	if err != nil {
		Internal(c, "error retrieving skills")
		return
	}

	writeCachedJSON(ctx, h.cache, cacheKey, payload, h.cacheTTL)
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}
