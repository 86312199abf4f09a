package compound

import (
	// 外部依赖
	"github.com/gin-gonic/gin"

	// 内部引用
	common "github.com/scienceol/molcache/pkg/common"
	code "github.com/scienceol/molcache/pkg/common/code"
	coreCompound "github.com/scienceol/molcache/pkg/core/compound"
	logger "github.com/scienceol/molcache/pkg/middleware/logger"
)

type Handle struct {
	cService coreCompound.Service
}

func NewHandle(svc coreCompound.Service) *Handle {
	return &Handle{cService: svc}
}

func (h *Handle) Lookup(ctx *gin.Context) {
	req := &coreCompound.LookupReq{}
	if err := ctx.ShouldBindQuery(req); err != nil {
		logger.Errorf(ctx, "parse Lookup param err: %+v", err.Error())
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := h.cService.Lookup(ctx, req)
	common.Reply(ctx, err, resp)
}

func (h *Handle) Prefetch(ctx *gin.Context) {
	req := &coreCompound.PrefetchReq{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		logger.Errorf(ctx, "parse Prefetch param err: %+v", err.Error())
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := h.cService.Prefetch(ctx, req)
	common.Reply(ctx, err, resp)
}

func (h *Handle) Entries(ctx *gin.Context) {
	req := &coreCompound.EntriesReq{}
	if err := ctx.ShouldBindQuery(req); err != nil {
		logger.Errorf(ctx, "parse Entries param err: %+v", err.Error())
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := h.cService.Entries(ctx, req)
	common.Reply(ctx, err, resp)
}

func (h *Handle) Evict(ctx *gin.Context) {
	req := &coreCompound.EvictReq{}
	if err := ctx.ShouldBindQuery(req); err != nil {
		logger.Errorf(ctx, "parse Evict param err: %+v", err.Error())
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := h.cService.Evict(ctx, req)
	common.Reply(ctx, err, resp)
}

func (h *Handle) Stats(ctx *gin.Context) {
	resp, err := h.cService.Stats(ctx)
	common.Reply(ctx, err, resp)
}

func (h *Handle) Flush(ctx *gin.Context) {
	if err := h.cService.Flush(ctx); err != nil {
		logger.Errorf(ctx, "Flush err: %+v", err)
		common.ReplyErr(ctx, err)
		return
	}
	common.ReplyOk(ctx)
}
