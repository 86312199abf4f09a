package common

import (
	// 外部依赖
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	// 内部引用
	code "github.com/scienceol/molcache/pkg/common/code"
)

type Error struct {
	Msg string `json:"msg"`
}

// Resp is the uniform response envelope. Business failures keep HTTP 200
// and surface through Code and Error.
type Resp struct {
	Code  code.Code `json:"code"`
	Error *Error    `json:"error,omitempty"`
	Data  any       `json:"data,omitempty"`
}

// RespT mirrors Resp with a typed payload, mostly for decoding in clients
// and tests.
type RespT[T any] struct {
	Code  code.Code `json:"code"`
	Error *Error    `json:"error,omitempty"`
	Data  T         `json:"data,omitempty"`
}

// Reply finishes the request: err nil renders data with Success, anything
// else renders the error envelope.
func Reply(ctx *gin.Context, err error, data ...any) {
	if err != nil {
		ReplyErr(ctx, err)
		return
	}
	ReplyOk(ctx, data...)
}

// ReplyOk renders a Success envelope, with data when given.
func ReplyOk(ctx *gin.Context, data ...any) {
	resp := &Resp{Code: code.Success}
	if len(data) > 0 {
		resp.Data = data[0]
	}
	ctx.JSON(http.StatusOK, resp)
}

// ReplyErr renders the error envelope for err. Extra msgs override the
// message derived from err.
func ReplyErr(ctx *gin.Context, err error, msgs ...string) {
	msg := code.Msg(err)
	if len(msgs) > 0 {
		msg = strings.Join(msgs, "; ")
	}
	ctx.JSON(http.StatusOK, &Resp{
		Code:  code.FromError(err),
		Error: &Error{Msg: msg},
	})
}
