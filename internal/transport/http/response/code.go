package response

import "net/http"

// 业务码直接沿用 HTTP 语义，0 表示成功
const (
	CodeOK          = 0
	CodeBadRequest  = 400
	CodeNotFound    = 404
	CodeServerError = 500
)

var CodeMsgMap = map[int]string{
	CodeOK:          "OK",
	CodeBadRequest:  "Bad Request",
	CodeNotFound:    "Not Found",
	CodeServerError: "Internal Server Error",
}

func httpStatus(code int) int {
	if code == CodeOK {
		return http.StatusOK
	}
	if http.StatusText(code) != "" {
		return code
	}
	return http.StatusInternalServerError
}
