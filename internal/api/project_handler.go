package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"portfolio/internal/api/middleware"
	"portfolio/internal/config"
	"portfolio/internal/database"
	"portfolio/internal/portfolio"
)

// ProjectHandler 负责项目列表接口。
type ProjectHandler struct {
	store      *portfolio.Store
	cache      responseCache
	pagination config.PaginationConfig
	cacheTTL   time.Duration
}

// NewProjectHandler 构造 ProjectHandler。
func NewProjectHandler(store *portfolio.Store, cache responseCache, pagination config.PaginationConfig, cacheTTL time.Duration) *ProjectHandler {
	return &ProjectHandler{
		store:      store,
		cache:      cache,
		pagination: pagination,
		cacheTTL:   cacheTTL,
	}
}

type projectCategoryResponse struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type projectTechnologyResponse struct {
	Name    string `json:"name"`
	IconURL string `json:"icon_url"`
}

type projectResponse struct {
	ID                  uint                        `json:"id"`
	Title               string                      `json:"title"`
	Description         string                      `json:"description"`
	DetailedDescription string                      `json:"detailed_description"`
	GithubURL           *string                     `json:"github_url"`
	DemoURL             *string                     `json:"demo_url"`
	FeaturedImage       *string                     `json:"featured_image"`
	Category            *projectCategoryResponse    `json:"category"`
	Status              string                      `json:"status"`
	StatusDisplay       string                      `json:"status_display"`
	Technologies        []projectTechnologyResponse `json:"technologies"`
	StartDate           *string                     `json:"start_date"`
	EndDate             *string                     `json:"end_date"`
	DurationDisplay     string                      `json:"duration_display"`
}

func formatDate(d *datatypes.Date) *string {
	if d == nil {
		return nil
	}
	s := time.Time(*d).Format("2006-01-02")
	return &s
}

func newProjectResponse(p database.Project) projectResponse {
	resp := projectResponse{
		ID:                  p.ID,
		Title:               p.Title,
		Description:         p.Description,
		DetailedDescription: p.DetailedDescription,
		GithubURL:           p.GithubURL,
		DemoURL:             p.DemoURL,
		FeaturedImage:       p.FeaturedImage,
		Status:              p.Status,
		StatusDisplay:       portfolio.StatusDisplay(p.Status),
		Technologies:        make([]projectTechnologyResponse, 0, len(p.Technologies)),
		StartDate:           formatDate(p.StartDate),
		EndDate:             formatDate(p.EndDate),
		DurationDisplay:     portfolio.DurationDisplay(p.StartDate, p.EndDate),
	}
	if p.Category != nil {
		resp.Category = &projectCategoryResponse{
			Name:  p.Category.Name,
			Color: p.Category.Color,
		}
	}
	for _, tech := range p.Technologies {
		resp.Technologies = append(resp.Technologies, projectTechnologyResponse{
			Name:    tech.Name,
			IconURL: tech.IconURL,
		})
	}
	return resp
}

// List 返回一页精选项目，分类与技术标签在同一次查询中预加载。
func (h *ProjectHandler) List(c *gin.Context) {
	page := portfolio.ParsePageRequest(
		c.Query("page"),
		c.Query("page_size"),
		h.pagination.DefaultPageSize,
		h.pagination.MaxPageSize,
	)
	category := c.Query("category")
	status := c.Query("status")

	ctx := c.Request.Context()
	cacheKey := fmt.Sprintf("cache:projects:p%d:s%d:cat=%s:status=%s", page.Page, page.PageSize, category, status)
	if raw, ok := readCachedJSON(ctx, h.cache, cacheKey); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
		return
	}

	projects, meta, err := h.store.ListProjects(ctx, portfolio.ProjectListOptions{
		Category: category,
		Status:   status,
		Page:     page,
	})
	if err != nil {
		middleware.LoggerFromContext(c).Error("list projects failed", "error", err)
		Internal(c, "error retrieving projects")
		return
	}

	items := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		items = append(items, newProjectResponse(p))
	}

	payload, err := json.Marshal(gin.H{
		"success":    true,
		"projects":   items,
		"pagination": meta,
	})
	if err != nil {
		Internal(c, "error retrieving projects")
		return
	}

	writeCachedJSON(ctx, h.cache, cacheKey, payload, h.cacheTTL)
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}
