package portfolio

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"portfolio/internal/database"
)

// Store 封装作品集数据的 GORM 查询。
// 列表查询只返回 is_featured 的记录，排序与展示顺序保持稳定。
type Store struct {
	db *gorm.DB
}

// NewStore 构造 Store。
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// SkillListOptions 是技能列表的过滤与分页参数。
type SkillListOptions struct {
	Category string
	Page     PageRequest
}

// ProjectListOptions 是项目列表的过滤与分页参数。
// Category 按分类名做大小写不敏感的包含匹配。
type ProjectListOptions struct {
	Category string
	Status   string
	Page     PageRequest
}

// ExperienceListOptions 是经历列表的过滤与分页参数。
type ExperienceListOptions struct {
	Kind string
	Page PageRequest
}

// MessageListOptions 是留言列表的过滤与分页参数。
// Status 取值 "read" / "unread"；空串返回全部。
type MessageListOptions struct {
	Status string
	Page   PageRequest
}

// ListSkills 按展示顺序返回一页技能。
// 未知分类不会报错，只会得到空结果。
func (s *Store) ListSkills(ctx context.Context, opts SkillListOptions) ([]database.Skill, PageMeta, error) {
	query := s.db.WithContext(ctx).
		Model(&database.Skill{}).
		Where("is_featured = ?", true)
	if opts.Category != "" {
		query = query.Where("category = ?", opts.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, PageMeta{}, err
	}

	var skills []database.Skill
	if err := query.
		Order("display_order, name").
		Limit(opts.Page.PageSize).
		Offset(opts.Page.Offset()).
		Find(&skills).Error; err != nil {
		return nil, PageMeta{}, err
	}

	return skills, NewPageMeta(total, opts.Page), nil
}

// ListProjects 返回一页项目，单趟预加载分类与技术标签，避免逐条回表。
func (s *Store) ListProjects(ctx context.Context, opts ProjectListOptions) ([]database.Project, PageMeta, error) {
	query := s.db.WithContext(ctx).
		Model(&database.Project{}).
		Where("projects.is_featured = ?", true)
	if opts.Category != "" {
		pattern := "%" + strings.ToLower(opts.Category) + "%"
		query = query.
			Joins("JOIN project_categories ON project_categories.id = projects.category_id").
			Where("LOWER(project_categories.name) LIKE ?", pattern)
	}
	if opts.Status != "" {
		query = query.Where("projects.status = ?", opts.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, PageMeta{}, err
	}

	var projects []database.Project
	if err := query.
		Preload("Category").
		Preload("Technologies").
		Order("projects.display_order, projects.created_at DESC").
		Limit(opts.Page.PageSize).
		Offset(opts.Page.Offset()).
		Find(&projects).Error; err != nil {
		return nil, PageMeta{}, err
	}

	return projects, NewPageMeta(total, opts.Page), nil
}

// ListExperiences 按展示顺序与起始日期倒序返回一页经历。
func (s *Store) ListExperiences(ctx context.Context, opts ExperienceListOptions) ([]database.Experience, PageMeta, error) {
	query := s.db.WithContext(ctx).
		Model(&database.Experience{}).
		Where("is_featured = ?", true)
	if opts.Kind != "" {
		query = query.Where("kind = ?", opts.Kind)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, PageMeta{}, err
	}

	var experiences []database.Experience
	if err := query.
		Preload("Technologies").
		Order("display_order, start_date DESC").
		Limit(opts.Page.PageSize).
		Offset(opts.Page.Offset()).
		Find(&experiences).Error; err != nil {
		return nil, PageMeta{}, err
	}

	return experiences, NewPageMeta(total, opts.Page), nil
}

// CreateMessage 持久化一条新留言，初始为未读。
func (s *Store) CreateMessage(ctx context.Context, msg *database.ContactMessage) error {
	msg.IsRead = false
	return s.db.WithContext(ctx).Create(msg).Error
}

// ListMessages 返回一页留言，最新的在前。
func (s *Store) ListMessages(ctx context.Context, opts MessageListOptions) ([]database.ContactMessage, PageMeta, error) {
	query := s.db.WithContext(ctx).Model(&database.ContactMessage{})
	switch opts.Status {
	case "read":
		query = query.Where("is_read = ?", true)
	case "unread":
		query = query.Where("is_read = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, PageMeta{}, err
	}

	var messages []database.ContactMessage
	if err := query.
		Order("created_at DESC").
		Limit(opts.Page.PageSize).
		Offset(opts.Page.Offset()).
		Find(&messages).Error; err != nil {
		return nil, PageMeta{}, err
	}

	return messages, NewPageMeta(total, opts.Page), nil
}

// GetMessage 按 ID 返回留言。
func (s *Store) GetMessage(ctx context.Context, id uint) (*database.ContactMessage, error) {
	var msg database.ContactMessage
	if err := s.db.WithContext(ctx).First(&msg, id).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

// UpdateMessage 应用管理端对留言的修改（已读状态、备注、回复时间）。
func (s *Store) UpdateMessage(ctx context.Context, id uint, updates map[string]any) error {
	return s.db.WithContext(ctx).
		Model(&database.ContactMessage{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// FindAdminByUsername 按用户名查找管理员账号。
func (s *Store) FindAdminByUsername(ctx context.Context, username string) (*database.AdminUser, error) {
	var admin database.AdminUser
	if err := s.db.WithContext(ctx).
		Where("username = ?", username).
		First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}
