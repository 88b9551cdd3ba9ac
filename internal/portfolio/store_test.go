package portfolio

import (
	"context"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"portfolio/internal/database"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedSkill(t *testing.T, db *gorm.DB, name, category string, order uint, featured bool) database.Skill {
	t.Helper()
	s := database.Skill{
		Name:             name,
		Category:         category,
		ProficiencyLevel: 3,
		IsFeatured:       featured,
		DisplayOrder:     order,
	}
	if err := db.Create(&s).Error; err != nil {
		t.Fatalf("seed skill %s: %v", name, err)
	}
	// 列默认值为 true，零值 false 需要显式写回
	if !featured {
		if err := db.Model(&s).Update("is_featured", false).Error; err != nil {
			t.Fatalf("unfeature skill %s: %v", name, err)
		}
	}
	return s
}

func TestListSkills_FilterAndOrder(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	store := NewStore(db)

	seedSkill(t, db, "Go", CategoryLanguage, 2, true)
	seedSkill(t, db, "Python", CategoryLanguage, 1, true)
	seedSkill(t, db, "Redis", CategoryDatabase, 3, true)
	seedSkill(t, db, "COBOL", CategoryLanguage, 4, false)

	skills, meta, err := store.ListSkills(ctx, SkillListOptions{
		Category: CategoryLanguage,
		Page:     PageRequest{Page: 1, PageSize: 10},
	})
	if err != nil {
		t.Fatalf("list skills: %v", err)
	}
	if meta.TotalItems != 2 {
		t.Fatalf("total_items = %d, want 2 (hidden skill must not count)", meta.TotalItems)
	}
	if len(skills) != 2 || skills[0].Name != "Python" || skills[1].Name != "Go" {
		t.Fatalf("unexpected order: %+v", skills)
	}
}

func TestListSkills_UnknownCategoryIsEmpty(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	store := NewStore(db)
	seedSkill(t, db, "Go", CategoryLanguage, 1, true)

	skills, meta, err := store.ListSkills(ctx, SkillListOptions{
		Category: "underwater-basket-weaving",
		Page:     PageRequest{Page: 1, PageSize: 10},
	})
	if err != nil {
		t.Fatalf("list skills: %v", err)
	}
	if len(skills) != 0 || meta.TotalItems != 0 {
		t.Fatalf("unknown category should yield empty page, got %d items total=%d", len(skills), meta.TotalItems)
	}
	if meta.TotalPages != 1 {
		t.Fatalf("empty set should still report one page, got %d", meta.TotalPages)
	}
}

func TestListSkills_PageBeyondRange(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	store := NewStore(db)
	for i := 0; i < 3; i++ {
		seedSkill(t, db, fmt.Sprintf("Skill%d", i), CategoryTool, uint(i), true)
	}

	skills, meta, err := store.ListSkills(ctx, SkillListOptions{
		Page: PageRequest{Page: 99, PageSize: 2},
	})
	if err != nil {
		t.Fatalf("list skills: %v", err)
	}
	if len(skills) != 0 {
		t.Fatalf("page beyond range should be empty, got %d items", len(skills))
	}
	if meta.Page != 99 || meta.TotalItems != 3 || meta.TotalPages != 2 {
		t.Fatalf("metadata should still reflect the real counts: %+v", meta)
	}
	if meta.HasNext {
		t.Fatal("page beyond range must not report has_next")
	}
}

func TestListProjects_CategorySubstringMatch(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	store := NewStore(db)

	web := database.ProjectCategory{Name: "Web Application", Color: "#3B82F6"}
	tool := database.ProjectCategory{Name: "Tool", Color: "#F59E0B"}
	if err := db.Create(&web).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	if err := db.Create(&tool).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}

	goSkill := seedSkill(t, db, "Go", CategoryLanguage, 1, true)

	projects := []database.Project{
		{Title: "Site", Description: "d", CategoryID: &web.ID, Status: StatusCompleted, IsFeatured: true, Technologies: []database.Skill{goSkill}},
		{Title: "CLI", Description: "d", CategoryID: &tool.ID, Status: StatusActive, IsFeatured: true},
		{Title: "Hidden", Description: "d", CategoryID: &web.ID, Status: StatusCompleted, IsFeatured: false},
	}
	for i := range projects {
		if err := db.Create(&projects[i]).Error; err != nil {
			t.Fatalf("seed project: %v", err)
		}
		if !projects[i].IsFeatured {
			if err := db.Model(&projects[i]).Update("is_featured", false).Error; err != nil {
				t.Fatalf("unfeature project: %v", err)
			}
		}
	}

	// 大小写不敏感的包含匹配："web" 命中 "Web Application"。
	got, meta, err := store.ListProjects(ctx, ProjectListOptions{
		Category: "web",
		Page:     PageRequest{Page: 1, PageSize: 10},
	})
	if err != nil {
		t.Fatalf("list projects: %v", err)
	}
	if meta.TotalItems != 1 || len(got) != 1 || got[0].Title != "Site" {
		t.Fatalf("expected only the featured web project, got %+v", got)
	}
	if got[0].Category == nil || got[0].Category.Name != "Web Application" {
		t.Fatalf("category should be preloaded, got %+v", got[0].Category)
	}
	if len(got[0].Technologies) != 1 || got[0].Technologies[0].Name != "Go" {
		t.Fatalf("technologies should be preloaded, got %+v", got[0].Technologies)
	}
}

func TestListProjects_StatusFilter(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	store := NewStore(db)

	for _, p := range []database.Project{
		{Title: "A", Description: "d", Status: StatusActive, IsFeatured: true},
		{Title: "B", Description: "d", Status: StatusCompleted, IsFeatured: true},
		{Title: "C", Description: "d", Status: StatusCompleted, IsFeatured: true},
	} {
		if err := db.Create(&p).Error; err != nil {
			t.Fatalf("seed project: %v", err)
		}
	}

	got, meta, err := store.ListProjects(ctx, ProjectListOptions{
		Status: StatusCompleted,
		Page:   PageRequest{Page: 1, PageSize: 10},
	})
	if err != nil {
		t.Fatalf("list projects: %v", err)
	}
	if meta.TotalItems != 2 || len(got) != 2 {
		t.Fatalf("expected 2 completed projects, got %d total=%d", len(got), meta.TotalItems)
	}
}

func TestListExperiences_KindFilter(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	store := NewStore(db)

	for _, e := range []database.Experience{
		{Title: "Dev", Organization: "Acme", Kind: KindWork, StartDate: *datePtr(2022, 6, 1), IsFeatured: true},
		{Title: "BSc", Organization: "Uni", Kind: KindEducation, StartDate: *datePtr(2017, 9, 1), IsFeatured: true},
	} {
		if err := db.Create(&e).Error; err != nil {
			t.Fatalf("seed experience: %v", err)
		}
	}

	got, meta, err := store.ListExperiences(ctx, ExperienceListOptions{
		Kind: KindEducation,
		Page: PageRequest{Page: 1, PageSize: 10},
	})
	if err != nil {
		t.Fatalf("list experiences: %v", err)
	}
	if meta.TotalItems != 1 || len(got) != 1 || got[0].Title != "BSc" {
		t.Fatalf("expected only the education entry, got %+v", got)
	}
}

func TestCreateMessage_ForcesUnread(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	store := NewStore(db)

	msg := database.ContactMessage{
		Name:    "Ada",
		Email:   "ada@example.com",
		Subject: "Hi",
		Message: "Hello",
		IsRead:  true, // 调用方无法伪造已读状态
	}
	if err := store.CreateMessage(ctx, &msg); err != nil {
		t.Fatalf("create message: %v", err)
	}

	var stored database.ContactMessage
	if err := db.First(&stored, msg.ID).Error; err != nil {
		t.Fatalf("reload message: %v", err)
	}
	if stored.IsRead {
		t.Fatal("new message must be stored as unread")
	}
}

func TestListMessages_StatusFilter(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	store := NewStore(db)

	for i := 0; i < 3; i++ {
		msg := database.ContactMessage{Name: "A", Email: "a@b.co", Subject: "s", Message: "m"}
		if err := store.CreateMessage(ctx, &msg); err != nil {
			t.Fatalf("seed message: %v", err)
		}
		if i == 0 {
			if err := store.UpdateMessage(ctx, msg.ID, map[string]any{"is_read": true}); err != nil {
				t.Fatalf("mark read: %v", err)
			}
		}
	}

	unread, meta, err := store.ListMessages(ctx, MessageListOptions{
		Status: "unread",
		Page:   PageRequest{Page: 1, PageSize: 10},
	})
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if meta.TotalItems != 2 || len(unread) != 2 {
		t.Fatalf("expected 2 unread messages, got %d total=%d", len(unread), meta.TotalItems)
	}

	read, meta, err := store.ListMessages(ctx, MessageListOptions{
		Status: "read",
		Page:   PageRequest{Page: 1, PageSize: 10},
	})
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if meta.TotalItems != 1 || len(read) != 1 {
		t.Fatalf("expected 1 read message, got %d total=%d", len(read), meta.TotalItems)
	}
}
