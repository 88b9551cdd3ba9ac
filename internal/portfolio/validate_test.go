package portfolio

import (
	"testing"
	"time"

	"gorm.io/datatypes"

	"portfolio/internal/database"
)

func datePtr(year int, month time.Month, day int) *datatypes.Date {
	d := datatypes.Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
	return &d
}

func TestValidateSkill(t *testing.T) {
	years := uint(3)
	valid := database.Skill{Name: "Go", Category: CategoryLanguage, ProficiencyLevel: 4, YearsExperience: &years}
	if fe := ValidateSkill(&valid); fe != nil {
		t.Fatalf("valid skill rejected: %v", fe)
	}

	tooMany := uint(51)
	cases := []struct {
		name  string
		skill database.Skill
		field string
	}{
		{"blank name", database.Skill{Name: "  ", Category: CategoryTool, ProficiencyLevel: 2}, "name"},
		{"unknown category", database.Skill{Name: "Go", Category: "hobby", ProficiencyLevel: 2}, "category"},
		{"proficiency too low", database.Skill{Name: "Go", Category: CategoryTool, ProficiencyLevel: 0}, "proficiency_level"},
		{"proficiency too high", database.Skill{Name: "Go", Category: CategoryTool, ProficiencyLevel: 5}, "proficiency_level"},
		{"too many years", database.Skill{Name: "Go", Category: CategoryTool, ProficiencyLevel: 2, YearsExperience: &tooMany}, "years_experience"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fe := ValidateSkill(&tc.skill)
			if fe == nil {
				t.Fatal("expected validation error, got nil")
			}
			if len(fe[tc.field]) == 0 {
				t.Fatalf("expected error on field %q, got %v", tc.field, fe)
			}
		})
	}
}

func TestValidateCategory(t *testing.T) {
	if fe := ValidateCategory(&database.ProjectCategory{Name: "API", Color: "#10B981"}); fe != nil {
		t.Fatalf("valid category rejected: %v", fe)
	}
	if fe := ValidateCategory(&database.ProjectCategory{Name: "API"}); fe != nil {
		t.Fatalf("empty color should be allowed: %v", fe)
	}
	for _, color := range []string{"10B981", "#10B98", "#GGGGGG", "#10B9811"} {
		fe := ValidateCategory(&database.ProjectCategory{Name: "API", Color: color})
		if fe == nil || len(fe["color"]) == 0 {
			t.Fatalf("color %q should be rejected, got %v", color, fe)
		}
	}
}

func TestValidateProject_DateOrder(t *testing.T) {
	p := database.Project{
		Title:       "Portfolio",
		Description: "Backend",
		Status:      StatusActive,
		StartDate:   datePtr(2024, time.March, 1),
		EndDate:     datePtr(2024, time.January, 1),
	}
	fe := ValidateProject(&p)
	if fe == nil || len(fe["end_date"]) == 0 {
		t.Fatalf("end date before start date should be rejected, got %v", fe)
	}

	p.EndDate = datePtr(2024, time.June, 1)
	if fe := ValidateProject(&p); fe != nil {
		t.Fatalf("valid project rejected: %v", fe)
	}
}

func TestValidateProject_Status(t *testing.T) {
	p := database.Project{Title: "X", Description: "Y", Status: "abandoned"}
	fe := ValidateProject(&p)
	if fe == nil || len(fe["status"]) == 0 {
		t.Fatalf("unknown status should be rejected, got %v", fe)
	}
}

func TestValidateExperience(t *testing.T) {
	base := database.Experience{
		Title:        "Backend Developer",
		Organization: "Acme",
		Kind:         KindWork,
		StartDate:    *datePtr(2022, time.June, 1),
	}
	if fe := ValidateExperience(&base); fe != nil {
		t.Fatalf("valid experience rejected: %v", fe)
	}

	withEnd := base
	withEnd.EndDate = datePtr(2021, time.January, 1)
	if fe := ValidateExperience(&withEnd); fe == nil || len(fe["end_date"]) == 0 {
		t.Fatalf("end before start should be rejected, got %v", fe)
	}

	current := base
	current.IsCurrent = true
	current.EndDate = datePtr(2024, time.January, 1)
	if fe := ValidateExperience(&current); fe == nil || len(fe["end_date"]) == 0 {
		t.Fatalf("ongoing entry with end date should be rejected, got %v", fe)
	}
}

func TestContactInput_Validate(t *testing.T) {
	valid := ContactInput{Name: "Ada", Email: "ada@example.com", Subject: "Hi", Message: "Hello"}
	if fe := valid.Validate(); fe != nil {
		t.Fatalf("valid input rejected: %v", fe)
	}

	empty := ContactInput{}
	fe := empty.Validate()
	if fe == nil {
		t.Fatal("empty input should fail")
	}
	for _, field := range []string{"name", "email", "subject", "message"} {
		if len(fe[field]) == 0 {
			t.Fatalf("expected error on %q, got %v", field, fe)
		}
	}

	for _, email := range []string{"not-an-email", "a@b", "a b@c.d", "@example.com"} {
		in := ContactInput{Name: "Ada", Email: email, Subject: "Hi", Message: "Hello"}
		fe := in.Validate()
		if fe == nil || len(fe["email"]) == 0 {
			t.Fatalf("email %q should be rejected, got %v", email, fe)
		}
	}
}

func TestContactInput_RejectsHeaderInjection(t *testing.T) {
	cases := []struct {
		name  string
		input ContactInput
		field string
	}{
		{
			"crlf in subject",
			ContactInput{Name: "Ada", Email: "ada@example.com", Subject: "hi\r\nBcc: victim@example.com", Message: "Hello"},
			"subject",
		},
		{
			"bare newline in subject",
			ContactInput{Name: "Ada", Email: "ada@example.com", Subject: "hi\nX-Spam: yes", Message: "Hello"},
			"subject",
		},
		{
			"newline in name",
			ContactInput{Name: "Ada\nLovelace", Email: "ada@example.com", Subject: "Hi", Message: "Hello"},
			"name",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.input.Trim()
			fe := tc.input.Validate()
			if fe == nil || len(fe[tc.field]) == 0 {
				t.Fatalf("line breaks in %s must be rejected, got %v", tc.field, fe)
			}
		})
	}

	// 正文里的换行是合法的
	multiline := ContactInput{Name: "Ada", Email: "ada@example.com", Subject: "Hi", Message: "line one\nline two"}
	if fe := multiline.Validate(); fe != nil {
		t.Fatalf("multi-line message body should be accepted: %v", fe)
	}
}

func TestContactInput_Trim(t *testing.T) {
	in := ContactInput{Name: "  Ada ", Email: " ada@example.com ", Subject: " Hi ", Message: " Hello "}
	in.Trim()
	if in.Name != "Ada" || in.Email != "ada@example.com" || in.Subject != "Hi" || in.Message != "Hello" {
		t.Fatalf("trim failed: %+v", in)
	}
}

func TestValidateSettings(t *testing.T) {
	s := database.PortfolioSettings{SiteTitle: "My Portfolio", Email: "me@example.com"}
	if fe := ValidateSettings(&s); fe != nil {
		t.Fatalf("valid settings rejected: %v", fe)
	}

	s.SiteTitle = " "
	if fe := ValidateSettings(&s); fe == nil || len(fe["site_title"]) == 0 {
		t.Fatalf("blank title should be rejected, got %v", fe)
	}

	s.SiteTitle = "My Portfolio"
	s.Email = "broken"
	if fe := ValidateSettings(&s); fe == nil || len(fe["email"]) == 0 {
		t.Fatalf("invalid email should be rejected, got %v", fe)
	}
}

func TestDisplayHelpers(t *testing.T) {
	if got := ProficiencyDisplay(4); got != "Expert" {
		t.Fatalf("ProficiencyDisplay(4) = %q", got)
	}
	if got := ProficiencyDisplay(0); got != "" {
		t.Fatalf("out-of-range proficiency should map to empty string, got %q", got)
	}
	if got := StatusDisplay(StatusInProgress); got != "In Progress" {
		t.Fatalf("StatusDisplay = %q", got)
	}

	if got := DurationDisplay(nil, nil); got != "Date not specified" {
		t.Fatalf("DurationDisplay(nil, nil) = %q", got)
	}
	if got := DurationDisplay(datePtr(2023, 1, 1), nil); got != "Since 2023" {
		t.Fatalf("open-ended duration = %q", got)
	}
	if got := DurationDisplay(datePtr(2023, 1, 1), datePtr(2023, 11, 1)); got != "2023" {
		t.Fatalf("same-year duration = %q", got)
	}
	if got := DurationDisplay(datePtr(2022, 1, 1), datePtr(2024, 3, 1)); got != "2022 - 2024" {
		t.Fatalf("multi-year duration = %q", got)
	}
}
