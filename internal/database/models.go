package database

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Skill 表示作品集中的一项技术能力。
type Skill struct {
	gorm.Model
	Name             string `gorm:"uniqueIndex;size:100;not null"`
	IconURL          string `gorm:"size:512"`
	Category         string `gorm:"size:50;index;default:tool"`
	ProficiencyLevel int    `gorm:"default:3;check:proficiency_level >= 1 AND proficiency_level <= 4"`
	YearsExperience  *uint
	IsFeatured       bool `gorm:"default:true;index"`
	DisplayOrder     uint `gorm:"default:0;index"`
}

// ProjectCategory 表示项目分类，带展示颜色。
type ProjectCategory struct {
	gorm.Model
	Name        string `gorm:"uniqueIndex;size:100;not null"`
	Description string `gorm:"type:text"`
	Color       string `gorm:"size:7;default:#3B82F6"`
}

// Project 表示作品集中的一个项目。
// Technologies 通过中间表关联 Skill；分类删除后置空外键。
type Project struct {
	gorm.Model
	Title               string `gorm:"size:200;not null"`
	Description         string `gorm:"type:text;not null"`
	DetailedDescription string `gorm:"type:text"`
	GithubURL           *string
	DemoURL             *string
	FeaturedImage       *string
	CategoryID          *uint            `gorm:"index"`
	Category            *ProjectCategory `gorm:"constraint:OnDelete:SET NULL"`
	Technologies        []Skill          `gorm:"many2many:project_technologies"`
	Status              string           `gorm:"size:20;index;default:completed"`
	IsFeatured          bool             `gorm:"default:true;index"`
	DisplayOrder        uint             `gorm:"default:0;index"`
	StartDate           *datatypes.Date
	EndDate             *datatypes.Date
}

// Experience 表示一段工作、教育或认证经历。
type Experience struct {
	gorm.Model
	Title        string `gorm:"size:200;not null"`
	Organization string `gorm:"size:200;not null"`
	Location     string `gorm:"size:200"`
	Description  string `gorm:"type:text"`
	Kind         string `gorm:"size:20;index;default:work"`
	StartDate    datatypes.Date
	EndDate      *datatypes.Date
	IsCurrent    bool    `gorm:"default:false;index"`
	Technologies []Skill `gorm:"many2many:experience_technologies"`
	IsFeatured   bool    `gorm:"default:true;index"`
	DisplayOrder uint    `gorm:"default:0"`
}

// ContactMessage 表示联系表单提交的留言。
// 仅由公开表单创建；已读状态与备注仅由管理端修改。
type ContactMessage struct {
	gorm.Model
	Name       string `gorm:"size:100;not null"`
	Email      string `gorm:"size:254;not null"`
	Subject    string `gorm:"size:200;not null"`
	Message    string `gorm:"type:text;not null"`
	IsRead     bool   `gorm:"default:false;index"`
	RepliedAt  *time.Time
	AdminNotes string `gorm:"type:text"`
}

// PortfolioSettings 是站点配置的单例记录，主键固定为 1。
// 任何保存路径都复用这一行，不允许出现第二行。
type PortfolioSettings struct {
	ID             uint   `gorm:"primaryKey"`
	SiteTitle      string `gorm:"size:200"`
	Tagline        string `gorm:"size:300"`
	AboutMe        string `gorm:"type:text"`
	Email          string `gorm:"size:254"`
	GithubUsername string `gorm:"size:100"`
	LinkedinURL    string `gorm:"size:512"`
	CVFilePath     string `gorm:"size:200"`
	SocialLinks    datatypes.JSON
	UpdatedAt      time.Time
}

// AdminUser 表示管理端账号，仅由 cmd/admin 创建。
type AdminUser struct {
	gorm.Model
	Username           string `gorm:"uniqueIndex;size:64"`
	PasswordHash       string `gorm:"size:255"`
	MustChangePassword bool   `gorm:"default:false"`
}
