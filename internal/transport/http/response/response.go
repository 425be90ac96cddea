package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"workout-tracker/internal/repo"
)

type Resp struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
}

// New 构造函数（保证 data 不为 null）
func New(code int, msg string, data interface{}) Resp {
	if data == nil {
		data = struct{}{}
	}
	return Resp{Code: code, Msg: msg, Data: data}
}

// OK 成功响应，状态行 200
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, New(CodeOK, CodeMsgMap[CodeOK], data))
}

// NoContent 成功但无响应体（对齐 204 惯例）
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Fail 失败响应，状态行与业务码同步
func Fail(c *gin.Context, code int, customMsg string) {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	c.JSON(httpStatus(code), New(code, msg, struct{}{}))
}

// AbortErr 统一错误映射：未命中 → 404，其余落 500
func AbortErr(c *gin.Context, err error) {
	if errors.Is(err, repo.ErrNotFound) {
		Fail(c, CodeNotFound, err.Error())
		return
	}
	Fail(c, CodeServerError, err.Error())
}
