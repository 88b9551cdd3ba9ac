package portfolio

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"portfolio/internal/database"
)

// SettingsID 是站点设置单例记录的固定主键。
const SettingsID uint = 1

// DefaultSettings 返回首次访问时写入的默认站点配置。
func DefaultSettings() database.PortfolioSettings {
	return database.PortfolioSettings{
		ID:             SettingsID,
		SiteTitle:      "My Portfolio",
		Tagline:        "Backend Developer",
		AboutMe:        "",
		Email:          "",
		GithubUsername: "",
		LinkedinURL:    "",
		CVFilePath:     "cv/cv.pdf",
	}
}

// GetSettings 返回唯一的站点设置记录，首次访问时按默认值创建。
// 并发首次访问依赖主键冲突去重：DoNothing 后统一回读，保证最终只有一行。
func GetSettings(ctx context.Context, db *gorm.DB) (database.PortfolioSettings, error) {
	var settings database.PortfolioSettings
	err := db.WithContext(ctx).First(&settings, SettingsID).Error
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return settings, fmt.Errorf("query settings: %w", err)
	}

	seed := DefaultSettings()
	if err := db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&seed).Error; err != nil {
		return settings, fmt.Errorf("create default settings: %w", err)
	}

	if err := db.WithContext(ctx).First(&settings, SettingsID).Error; err != nil {
		return settings, fmt.Errorf("reload settings: %w", err)
	}
	return settings, nil
}

// SaveSettings 原地更新单例记录。主键被强制固定，不可能产生第二行。
func SaveSettings(ctx context.Context, db *gorm.DB, settings *database.PortfolioSettings) error {
	if fe := ValidateSettings(settings); fe != nil {
		return fe
	}

	// 先确保单例存在，避免 Save 在空表上插入任意主键。
	if _, err := GetSettings(ctx, db); err != nil {
		return err
	}

	settings.ID = SettingsID
	if err := db.WithContext(ctx).Save(settings).Error; err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
