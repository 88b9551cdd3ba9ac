package portfolio

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// 技能分类的封闭取值集合。
const (
	CategoryLanguage  = "language"
	CategoryFramework = "framework"
	CategoryDatabase  = "database"
	CategoryTool      = "tool"
	CategoryCloud     = "cloud"
)

// 项目状态的封闭取值集合。
const (
	StatusActive     = "active"
	StatusCompleted  = "completed"
	StatusArchived   = "archived"
	StatusInProgress = "in_progress"
)

// 经历类型的封闭取值集合。
const (
	KindWork          = "work"
	KindEducation     = "education"
	KindCertification = "certification"
	KindVolunteer     = "volunteer"
)

// 熟练度等级边界。
const (
	ProficiencyMin = 1
	ProficiencyMax = 4
)

// MaxYearsExperience 限制单项技能的经验年限上限。
const MaxYearsExperience = 50

var skillCategories = map[string]bool{
	CategoryLanguage:  true,
	CategoryFramework: true,
	CategoryDatabase:  true,
	CategoryTool:      true,
	CategoryCloud:     true,
}

var projectStatuses = map[string]string{
	StatusActive:     "Active",
	StatusCompleted:  "Completed",
	StatusArchived:   "Archived",
	StatusInProgress: "In Progress",
}

var experienceKinds = map[string]bool{
	KindWork:          true,
	KindEducation:     true,
	KindCertification: true,
	KindVolunteer:     true,
}

var proficiencyNames = map[int]string{
	1: "Basic",
	2: "Intermediate",
	3: "Advanced",
	4: "Expert",
}

// IsSkillCategory 判断字符串是否为合法技能分类。
func IsSkillCategory(s string) bool { return skillCategories[s] }

// IsProjectStatus 判断字符串是否为合法项目状态。
func IsProjectStatus(s string) bool { _, ok := projectStatuses[s]; return ok }

// IsExperienceKind 判断字符串是否为合法经历类型。
func IsExperienceKind(s string) bool { return experienceKinds[s] }

// ProficiencyDisplay 返回熟练度等级的展示名；越界返回空串。
func ProficiencyDisplay(level int) string { return proficiencyNames[level] }

// StatusDisplay 返回项目状态的展示名；未知状态原样返回。
func StatusDisplay(status string) string {
	if name, ok := projectStatuses[status]; ok {
		return name
	}
	return status
}

// DurationDisplay 以年份区间描述项目周期。
func DurationDisplay(start, end *datatypes.Date) string {
	if start == nil {
		return "Date not specified"
	}
	startYear := time.Time(*start).Year()
	if end == nil {
		return fmt.Sprintf("Since %d", startYear)
	}
	endYear := time.Time(*end).Year()
	if startYear == endYear {
		return fmt.Sprintf("%d", startYear)
	}
	return fmt.Sprintf("%d - %d", startYear, endYear)
}
