package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio/internal/api/middleware"
	"portfolio/internal/config"
	"portfolio/internal/database"
	"portfolio/internal/portfolio"
)

// ExperienceHandler 负责经历列表接口。
type ExperienceHandler struct {
	store      *portfolio.Store
	pagination config.PaginationConfig
}

// NewExperienceHandler 构造 ExperienceHandler。
func NewExperienceHandler(store *portfolio.Store, pagination config.PaginationConfig) *ExperienceHandler {
	return &ExperienceHandler{store: store, pagination: pagination}
}

type experienceResponse struct {
	ID           uint     `json:"id"`
	Title        string   `json:"title"`
	Organization string   `json:"organization"`
	Location     string   `json:"location"`
	Description  string   `json:"description"`
	Kind         string   `json:"kind"`
	StartDate    string   `json:"start_date"`
	EndDate      *string  `json:"end_date"`
	IsCurrent    bool     `json:"is_current"`
	Technologies []string `json:"technologies"`
}

func newExperienceResponse(e database.Experience) experienceResponse {
	resp := experienceResponse{
		ID:           e.ID,
		Title:        e.Title,
		Organization: e.Organization,
		Location:     e.Location,
		Description:  e.Description,
		Kind:         e.Kind,
		StartDate:    time.Time(e.StartDate).Format("2006-01-02"),
		EndDate:      formatDate(e.EndDate),
		IsCurrent:    e.IsCurrent,
		Technologies: make([]string, 0, len(e.Technologies)),
	}
	for _, tech := range e.Technologies {
		resp.Technologies = append(resp.Technologies, tech.Name)
	}
	return resp
}

// List 返回一页精选经历，可按类型过滤。
func (h *ExperienceHandler) List(c *gin.Context) {
	page := portfolio.ParsePageRequest(
		c.Query("page"),
		c.Query("page_size"),
		h.pagination.DefaultPageSize,
		h.pagination.MaxPageSize,
	)

	experiences, meta, err := h.store.ListExperiences(c.Request.Context(), portfolio.ExperienceListOptions{
		Kind: c.Query("kind"),
		Page: page,
	})
	if err != nil {
		middleware.LoggerFromContext(c).Error("list experiences failed", "error", err)
		Internal(c, "error retrieving experience entries")
		return
	}

	items := make([]experienceResponse, 0, len(experiences))
	for _, e := range experiences {
		items = append(items, newExperienceResponse(e))
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"experience": items,
		"pagination": meta,
	})
}
