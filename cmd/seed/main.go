package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"portfolio/internal/config"
	"portfolio/internal/database"
	"portfolio/internal/portfolio"
)

// 初始化作品集数据：技能、项目分类、项目、经历与站点设置。
// --force 会把已有记录的字段重置为种子值。
func main() {
	force := flag.Bool("force", false, "覆盖已存在记录的字段")
	flag.Parse()

	cfg := config.MustLoad()

	db, err := database.InitDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := seedSkills(tx, *force); err != nil {
			return fmt.Errorf("seed skills: %w", err)
		}
		if err := seedCategories(tx); err != nil {
			return fmt.Errorf("seed categories: %w", err)
		}
		if err := seedProjects(tx, *force); err != nil {
			return fmt.Errorf("seed projects: %w", err)
		}
		if err := seedExperiences(tx, *force); err != nil {
			return fmt.Errorf("seed experiences: %w", err)
		}
		if _, err := portfolio.GetSettings(context.Background(), tx); err != nil {
			return fmt.Errorf("seed settings: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Fatalf("populate portfolio data: %v", err)
	}

	log.Println("successfully populated portfolio data")
}

func iconURL(parts string) string {
	return "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/" + parts
}

func uintPtr(v uint) *uint { return &v }

func seedSkills(tx *gorm.DB, force bool) error {
	skills := []database.Skill{
		{Name: "Go", IconURL: iconURL("go/go-original.svg"), Category: portfolio.CategoryLanguage, ProficiencyLevel: 4, YearsExperience: uintPtr(5), DisplayOrder: 1},
		{Name: "Python", IconURL: iconURL("python/python-original.svg"), Category: portfolio.CategoryLanguage, ProficiencyLevel: 4, YearsExperience: uintPtr(6), DisplayOrder: 2},
		{Name: "Gin", IconURL: iconURL("go/go-original-wordmark.svg"), Category: portfolio.CategoryFramework, ProficiencyLevel: 4, DisplayOrder: 3},
		{Name: "Django", IconURL: iconURL("django/django-plain.svg"), Category: portfolio.CategoryFramework, ProficiencyLevel: 3, DisplayOrder: 4},
		{Name: "FastAPI", IconURL: iconURL("fastapi/fastapi-original.svg"), Category: portfolio.CategoryFramework, ProficiencyLevel: 3, DisplayOrder: 5},
		{Name: "PostgreSQL", IconURL: iconURL("postgresql/postgresql-original.svg"), Category: portfolio.CategoryDatabase, ProficiencyLevel: 3, DisplayOrder: 6},
		{Name: "Redis", IconURL: iconURL("redis/redis-original.svg"), Category: portfolio.CategoryDatabase, ProficiencyLevel: 3, DisplayOrder: 7},
		{Name: "Git", IconURL: iconURL("git/git-original.svg"), Category: portfolio.CategoryTool, ProficiencyLevel: 3, DisplayOrder: 8},
		{Name: "Docker", IconURL: iconURL("docker/docker-original.svg"), Category: portfolio.CategoryCloud, ProficiencyLevel: 3, DisplayOrder: 9},
		{Name: "NGINX", IconURL: iconURL("nginx/nginx-original.svg"), Category: portfolio.CategoryTool, ProficiencyLevel: 2, DisplayOrder: 10},
		{Name: "HTML", IconURL: iconURL("html5/html5-original.svg"), Category: portfolio.CategoryLanguage, ProficiencyLevel: 3, DisplayOrder: 11},
		{Name: "JavaScript", IconURL: iconURL("javascript/javascript-original.svg"), Category: portfolio.CategoryLanguage, ProficiencyLevel: 2, DisplayOrder: 12},
	}

	for _, seed := range skills {
		seed.IsFeatured = true
		if fe := portfolio.ValidateSkill(&seed); fe != nil {
			return fmt.Errorf("skill %q: %w", seed.Name, fe)
		}

		var existing database.Skill
		err := tx.Where("name = ?", seed.Name).First(&existing).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			if err := tx.Create(&seed).Error; err != nil {
				return err
			}
			log.Printf("created skill: %s", seed.Name)
		case err != nil:
			return err
		case force:
			seed.ID = existing.ID
			if err := tx.Save(&seed).Error; err != nil {
				return err
			}
			log.Printf("updated skill: %s", seed.Name)
		}
	}
	return nil
}

func seedCategories(tx *gorm.DB) error {
	categories := []database.ProjectCategory{
		{Name: "Web Application", Color: "#3B82F6"},
		{Name: "API", Color: "#10B981"},
		{Name: "Library", Color: "#8B5CF6"},
		{Name: "Tool", Color: "#F59E0B"},
	}

	for _, seed := range categories {
		if fe := portfolio.ValidateCategory(&seed); fe != nil {
			return fmt.Errorf("category %q: %w", seed.Name, fe)
		}

		var existing database.ProjectCategory
		err := tx.Where("name = ?", seed.Name).First(&existing).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			if err := tx.Create(&seed).Error; err != nil {
				return err
			}
			log.Printf("created category: %s", seed.Name)
		case err != nil:
			return err
		}
	}
	return nil
}

func date(year int, month time.Month, day int) *datatypes.Date {
	d := datatypes.Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
	return &d
}

func seedProjects(tx *gorm.DB, force bool) error {
	var webCategory database.ProjectCategory
	if err := tx.Where("name = ?", "Web Application").First(&webCategory).Error; err != nil {
		return fmt.Errorf("load web category: %w", err)
	}

	projects := []database.Project{
		{
			Title:               "Digital Library",
			Description:         "A platform for managing and reading digital books.",
			DetailedDescription: "Full digital library management system with user accounts, advanced search and loan tracking.",
			GithubURL:           strPtr("https://github.com/example/digital-library"),
			CategoryID:          &webCategory.ID,
			Status:              portfolio.StatusCompleted,
			DisplayOrder:        1,
			StartDate:           date(2023, time.February, 1),
			EndDate:             date(2023, time.August, 15),
		},
		{
			Title:               "Task Manager",
			Description:         "An application for organizing and tracking daily tasks.",
			DetailedDescription: "Task management web app with categories, filters and completion tracking.",
			GithubURL:           strPtr("https://github.com/example/task-manager"),
			CategoryID:          &webCategory.ID,
			Status:              portfolio.StatusCompleted,
			DisplayOrder:        2,
			StartDate:           date(2023, time.September, 1),
			EndDate:             date(2024, time.January, 20),
		},
		{
			Title:        "Portfolio Backend",
			Description:  "The API serving this very portfolio.",
			GithubURL:    strPtr("https://github.com/example/portfolio"),
			CategoryID:   &webCategory.ID,
			Status:       portfolio.StatusActive,
			DisplayOrder: 3,
			StartDate:    date(2024, time.March, 10),
		},
	}

	techByProject := map[string][]string{
		"Digital Library":   {"Python", "Django", "HTML", "JavaScript"},
		"Task Manager":      {"Python", "FastAPI", "PostgreSQL", "HTML"},
		"Portfolio Backend": {"Go", "Gin", "PostgreSQL", "Redis", "Docker"},
	}

	for _, seed := range projects {
		seed.IsFeatured = true
		if fe := portfolio.ValidateProject(&seed); fe != nil {
			return fmt.Errorf("project %q: %w", seed.Title, fe)
		}

		var existing database.Project
		err := tx.Where("title = ?", seed.Title).First(&existing).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			if err := tx.Create(&seed).Error; err != nil {
				return err
			}
			log.Printf("created project: %s", seed.Title)
		case err != nil:
			return err
		case force:
			seed.ID = existing.ID
			if err := tx.Save(&seed).Error; err != nil {
				return err
			}
			log.Printf("updated project: %s", seed.Title)
		default:
			seed.ID = existing.ID
		}

		var techs []database.Skill
		if err := tx.Where("name IN ?", techByProject[seed.Title]).Find(&techs).Error; err != nil {
			return err
		}
		if err := tx.Model(&seed).Association("Technologies").Replace(techs); err != nil {
			return fmt.Errorf("link technologies for %q: %w", seed.Title, err)
		}
	}
	return nil
}

func seedExperiences(tx *gorm.DB, force bool) error {
	experiences := []database.Experience{
		{
			Title:        "Backend Developer",
			Organization: "Acme Software",
			Location:     "Remote",
			Description:  "Building and operating Go services.",
			Kind:         portfolio.KindWork,
			StartDate:    *date(2022, time.June, 1),
			IsCurrent:    true,
			DisplayOrder: 1,
		},
		{
			Title:        "B.Sc. Computer Science",
			Organization: "State University",
			Description:  "Focus on distributed systems.",
			Kind:         portfolio.KindEducation,
			StartDate:    *date(2017, time.September, 1),
			EndDate:      date(2021, time.June, 30),
			DisplayOrder: 2,
		},
	}

	for _, seed := range experiences {
		seed.IsFeatured = true
		if fe := portfolio.ValidateExperience(&seed); fe != nil {
			return fmt.Errorf("experience %q: %w", seed.Title, fe)
		}

		var existing database.Experience
		err := tx.Where("title = ? AND organization = ?", seed.Title, seed.Organization).First(&existing).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			if err := tx.Create(&seed).Error; err != nil {
				return err
			}
			log.Printf("created experience: %s", seed.Title)
		case err != nil:
			return err
		case force:
			seed.ID = existing.ID
			if err := tx.Save(&seed).Error; err != nil {
				return err
			}
			log.Printf("updated experience: %s", seed.Title)
		}
	}
	return nil
}

func strPtr(s string) *string { return &s }
