package api

import (
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"portfolio/internal/api/middleware"
	"portfolio/internal/portfolio"
)

const maxCVBytes = 10 * 1024 * 1024

// UploadCV 接收新的 CV 文件，写入对象存储并更新站点设置。
// 未启用对象存储时返回 409。
func (h *AdminHandler) UploadCV(c *gin.Context) {
	if h.storage == nil {
		Conflict(c, "object storage is not enabled")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "file is required")
		return
	}
	if fileHeader.Size <= 0 || fileHeader.Size > maxCVBytes {
		BadRequest(c, "file size must be between 1 byte and 10 MiB")
		return
	}
	if !strings.EqualFold(path.Ext(fileHeader.Filename), ".pdf") {
		BadRequest(c, "only pdf files are accepted")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		Internal(c, "failed to read upload")
		return
	}
	defer file.Close()

	ctx := c.Request.Context()
	objectKey := fmt.Sprintf("cv/%s", path.Base(fileHeader.Filename))
	if _, err := h.storage.UploadFile(ctx, objectKey, file, fileHeader.Size, "application/pdf"); err != nil {
		middleware.LoggerFromContext(c).Error("upload cv failed", "error", err)
		Internal(c, "failed to store cv")
		return
	}

	settings, err := portfolio.GetSettings(ctx, h.db)
	if err != nil {
		Internal(c, "failed to load settings")
		return
	}
	settings.CVFilePath = objectKey
	if err := portfolio.SaveSettings(ctx, h.db, &settings); err != nil {
		middleware.LoggerFromContext(c).Error("save cv path failed", "error", err)
		Internal(c, "failed to update settings")
		return
	}

	invalidateCache(ctx, h.cache, settingsCacheKey)

	c.JSON(http.StatusOK, gin.H{"success": true, "cv_file_path": objectKey})
}
