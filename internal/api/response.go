package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio/internal/portfolio"
)

// 所有响应共用 {"success": bool, ...} 信封。
// 校验失败附带字段级错误；其余失败只携带一条通用描述。

func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "error": msg})
}

func AbortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
}

func Unauthorized(c *gin.Context)           { Error(c, http.StatusUnauthorized, "unauthorized") }
func BadRequest(c *gin.Context, msg string) { Error(c, http.StatusBadRequest, msg) }
func Forbidden(c *gin.Context, msg string)  { Error(c, http.StatusForbidden, msg) }
func NotFound(c *gin.Context, msg string)   { Error(c, http.StatusNotFound, msg) }
func Conflict(c *gin.Context, msg string)   { Error(c, http.StatusConflict, msg) }
func Internal(c *gin.Context, msg string)   { Error(c, http.StatusInternalServerError, msg) }
func TooManyRequests(c *gin.Context, msg string) {
	Error(c, http.StatusTooManyRequests, msg)
}

// ValidationFailed 返回 400 与字段级错误映射。
func ValidationFailed(c *gin.Context, fe portfolio.FieldErrors) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "errors": fe})
}
