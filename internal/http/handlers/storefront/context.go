package storefront

import (
	"github.com/trustcart/internal/http/response"
	"github.com/trustcart/internal/logger"

	"github.com/gin-gonic/gin"
)

const deviceIDContextKey = "device_id"

// getDeviceID 从请求上下文取出设备标识（由设备令牌中间件写入）
func getDeviceID(c *gin.Context) (string, bool) {
	value, ok := c.Get(deviceIDContextKey)
	if !ok {
		response.Unauthorized(c, "device token missing")
		return "", false
	}
	deviceID, ok := value.(string)
	if !ok || deviceID == "" {
		response.Unauthorized(c, "device token invalid")
		return "", false
	}
	return deviceID, true
}

func respondError(c *gin.Context, code int, msg string, err error) {
	if err != nil {
		logger.Errorw("storefront_request_failed",
			"path", c.Request.URL.Path,
			"code", code,
			"error", err,
		)
	}
	response.Error(c, code, msg)
}
