package portfolio

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"portfolio/internal/database"
)

// FieldErrors 按字段聚合校验失败信息，可直接序列化进响应。
type FieldErrors map[string][]string

// Error 实现 error 接口，便于写入日志。
func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, msgs := range fe {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(msgs, "; ")))
	}
	return strings.Join(parts, ", ")
}

// Add 追加一条字段错误。
func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

// OrNil 在没有任何错误时返回 nil，便于直接作为返回值。
func (fe FieldErrors) OrNil() FieldErrors {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

// IsValidEmail 校验邮箱格式。
func IsValidEmail(email string) bool { return emailPattern.MatchString(email) }

// ValidateSkill 校验技能记录的全部不变量。
func ValidateSkill(s *database.Skill) FieldErrors {
	fe := FieldErrors{}
	if strings.TrimSpace(s.Name) == "" {
		fe.Add("name", "name is required")
	}
	if !IsSkillCategory(s.Category) {
		fe.Add("category", fmt.Sprintf("unknown category %q", s.Category))
	}
	if s.ProficiencyLevel < ProficiencyMin || s.ProficiencyLevel > ProficiencyMax {
		fe.Add("proficiency_level", fmt.Sprintf("proficiency level must be between %d and %d", ProficiencyMin, ProficiencyMax))
	}
	if s.YearsExperience != nil && *s.YearsExperience > MaxYearsExperience {
		fe.Add("years_experience", fmt.Sprintf("years of experience cannot exceed %d", MaxYearsExperience))
	}
	return fe.OrNil()
}

// ValidateCategory 校验项目分类，颜色必须是 #RRGGBB。
func ValidateCategory(c *database.ProjectCategory) FieldErrors {
	fe := FieldErrors{}
	if strings.TrimSpace(c.Name) == "" {
		fe.Add("name", "name is required")
	}
	if c.Color != "" && !colorPattern.MatchString(c.Color) {
		fe.Add("color", "must be a valid hex color (e.g. #3B82F6)")
	}
	return fe.OrNil()
}

// ValidateProject 校验项目记录；结束日期不得早于开始日期。
func ValidateProject(p *database.Project) FieldErrors {
	fe := FieldErrors{}
	if strings.TrimSpace(p.Title) == "" {
		fe.Add("title", "title is required")
	}
	if strings.TrimSpace(p.Description) == "" {
		fe.Add("description", "description is required")
	}
	if !IsProjectStatus(p.Status) {
		fe.Add("status", fmt.Sprintf("unknown status %q", p.Status))
	}
	if p.StartDate != nil && p.EndDate != nil {
		if time.Time(*p.EndDate).Before(time.Time(*p.StartDate)) {
			fe.Add("end_date", "end date must not precede start date")
		}
	}
	return fe.OrNil()
}

// ValidateExperience 校验经历记录；进行中的经历不能有结束日期。
func ValidateExperience(e *database.Experience) FieldErrors {
	fe := FieldErrors{}
	if strings.TrimSpace(e.Title) == "" {
		fe.Add("title", "title is required")
	}
	if strings.TrimSpace(e.Organization) == "" {
		fe.Add("organization", "organization is required")
	}
	if !IsExperienceKind(e.Kind) {
		fe.Add("kind", fmt.Sprintf("unknown experience kind %q", e.Kind))
	}
	if e.EndDate != nil {
		if time.Time(*e.EndDate).Before(time.Time(e.StartDate)) {
			fe.Add("end_date", "end date must not precede start date")
		}
		if e.IsCurrent {
			fe.Add("end_date", "an ongoing entry cannot have an end date")
		}
	}
	return fe.OrNil()
}

// ContactInput 是联系表单的原始输入，校验前统一去除首尾空白。
type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Trim 去除所有字段的首尾空白。
func (in *ContactInput) Trim() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)
}

// Validate 返回字段级错误；全部通过时返回 nil。
func (in *ContactInput) Validate() FieldErrors {
	fe := FieldErrors{}
	if in.Name == "" {
		fe.Add("name", "name is required")
	} else if strings.ContainsAny(in.Name, "\r\n") {
		fe.Add("name", "must not contain line breaks")
	}
	if in.Email == "" {
		fe.Add("email", "email is required")
	} else if !IsValidEmail(in.Email) {
		fe.Add("email", "must be a valid email address")
	}
	// 主题会进入通知邮件头，带换行的值等同于注入任意邮件头
	if in.Subject == "" {
		fe.Add("subject", "subject is required")
	} else if strings.ContainsAny(in.Subject, "\r\n") {
		fe.Add("subject", "must not contain line breaks")
	}
	if in.Message == "" {
		fe.Add("message", "message is required")
	}
	return fe.OrNil()
}

// ValidateSettings 校验站点设置的可校验字段。
func ValidateSettings(s *database.PortfolioSettings) FieldErrors {
	fe := FieldErrors{}
	if strings.TrimSpace(s.SiteTitle) == "" {
		fe.Add("site_title", "site title is required")
	}
	if s.Email != "" && !IsValidEmail(s.Email) {
		fe.Add("email", "must be a valid email address")
	}
	return fe.OrNil()
}
