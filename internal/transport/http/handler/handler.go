// Package handler holds the thin per-resource gin handlers. They bind and
// validate input, call repos or the workout service, and map errors to
// status codes; they never touch the aggregate directly.
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	resp "workout-tracker/internal/transport/http/response"
)

// pathID 解析路径里的数字 ID；非法值和未命中一样按 404 处理
func pathID(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		resp.Fail(c, resp.CodeNotFound, "not found")
		return 0, false
	}
	return uint(v), true
}
