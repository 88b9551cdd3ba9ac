package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Double-Submit Cookie 式 CSRF 防护。
// 浏览器读取 csrf_token Cookie 并在写请求时携带 X-CSRF-Token 头；
// 跨站攻击者拿不到 Cookie 值，因此伪造不出匹配的头。
const (
	CSRFTokenCookieName = "csrf_token"
	CSRFTokenHeaderName = "X-CSRF-Token"

	csrfTokenBytes  = 32
	csrfTokenExpiry = 24 * time.Hour
)

func generateCSRFToken() (string, error) {
	buf := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func setCSRFCookie(c *gin.Context, token string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	// HttpOnly=false：前端 JS 需要读取该 Cookie 回填请求头。
	c.SetCookie(CSRFTokenCookieName, token, int(csrfTokenExpiry.Seconds()), "/", "", secure, false)
}

func abortForbidden(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": msg})
}

// CSRFMiddleware 给所有响应下发 csrf_token Cookie，并校验写方法的令牌。
// secureCookie 指定 Cookie 是否仅限 HTTPS（本地调试时关闭）。
func CSRFMiddleware(secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookieToken, err := c.Cookie(CSRFTokenCookieName)
		if err != nil || cookieToken == "" {
			newToken, genErr := generateCSRFToken()
			if genErr != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error":   "failed to generate security token",
				})
				return
			}
			setCSRFCookie(c, newToken, secureCookie)
			cookieToken = newToken
		}

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		headerToken := c.GetHeader(CSRFTokenHeaderName)
		if headerToken == "" {
			abortForbidden(c, "missing CSRF token")
			return
		}
		if subtle.ConstantTimeCompare([]byte(headerToken), []byte(cookieToken)) != 1 {
			abortForbidden(c, "invalid CSRF token")
			return
		}

		c.Next()
	}
}
