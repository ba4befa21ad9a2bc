package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Разрешительные CORS-заголовки edge-прокси.
const (
	CORSAllowOrigin  = "*"
	CORSAllowMethods = "GET, POST, OPTIONS"
	CORSAllowHeaders = "authorization, x-client-info, apikey, content-type"
)

// CORS — ставит заголовки на каждый ответ (включая ошибки) и отвечает на preflight.
// Заголовки пишутся до c.Next(), поэтому попадают и в 400/5xx ответы обработчика.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", CORSAllowOrigin)
		h.Set("Access-Control-Allow-Methods", CORSAllowMethods)
		h.Set("Access-Control-Allow-Headers", CORSAllowHeaders)

		if c.Request.Method == http.MethodOptions {
			c.String(http.StatusOK, "ok")
			c.Abort()
			return
		}
		c.Next()
	}
}
