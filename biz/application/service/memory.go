package service

import (
	"context"

	"github.com/google/wire"
	"github.com/xh-polaris/advisor-core-api/biz/adaptor"
	"github.com/xh-polaris/advisor-core-api/biz/application/dto/core_api"
	"github.com/xh-polaris/advisor-core-api/biz/domain/memory"
	"github.com/xh-polaris/advisor-core-api/biz/infra/util"
	"github.com/xh-polaris/advisor-core-api/pkg/errorx"
	"github.com/xh-polaris/advisor-core-api/pkg/logs"
	"github.com/xh-polaris/advisor-core-api/types/errno"
)

type IMemoryService interface {
	ListMemory(ctx context.Context, req *core_api.ListMemoryReq) (*core_api.ListMemoryResp, error)
	GetMemory(ctx context.Context, req *core_api.GetMemoryReq) (*core_api.GetMemoryResp, error)
	UpdateMemory(ctx context.Context, req *core_api.UpdateMemoryReq) (*core_api.UpdateMemoryResp, error)
	DeleteMemory(ctx context.Context, req *core_api.DeleteMemoryReq) (*core_api.DeleteMemoryResp, error)
	BatchDeleteMemory(ctx context.Context, req *core_api.BatchDeleteMemoryReq) (*core_api.BatchDeleteMemoryResp, error)
	SearchMemory(ctx context.Context, req *core_api.SearchMemoryReq) (*core_api.SearchMemoryResp, error)
}

type MemoryService struct {
	MemoryDomain *memory.MemoryDomain
}

var MemoryServiceSet = wire.NewSet(
	wire.Struct(new(MemoryService), "*"),
	wire.Bind(new(IMemoryService), new(*MemoryService)),
)

func (s *MemoryService) ListMemory(ctx context.Context, req *core_api.ListMemoryReq) (*core_api.ListMemoryResp, error) {
	// 鉴权
	uid, err := adaptor.ExtractUserId(ctx)
	if err != nil {
		logs.Errorf("extract user id error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.UnAuthErrCode)
	}

	ms, err := s.MemoryDomain.List(ctx, uid, req.Limit, req.Category)
	if err != nil {
		logs.Errorf("list memory error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.MemoryListErrCode)
	}

	return &core_api.ListMemoryResp{Resp: util.Success(), Memories: toMemoryViews(ms), Total: int64(len(ms))}, nil
}

func (s *MemoryService) GetMemory(ctx context.Context, req *core_api.GetMemoryReq) (*core_api.GetMemoryResp, error) {
	// 鉴权
	_, err := adaptor.ExtractUserId(ctx)
	if err != nil {
		logs.Errorf("extract user id error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.UnAuthErrCode)
	}

	m, err := s.MemoryDomain.Get(ctx, req.MemoryId)
	if err != nil {
		logs.Errorf("get memory error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.MemoryGetErrCode)
	}
	if m == nil {
		return nil, errorx.New(errno.MemoryNotFoundErrCode)
	}

	return &core_api.GetMemoryResp{Resp: util.Success(), Memory: toMemoryView(m)}, nil
}

func (s *MemoryService) UpdateMemory(ctx context.Context, req *core_api.UpdateMemoryReq) (*core_api.UpdateMemoryResp, error) {
	// 鉴权
	_, err := adaptor.ExtractUserId(ctx)
	if err != nil {
		logs.Errorf("extract user id error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.UnAuthErrCode)
	}

	m, err := s.MemoryDomain.Update(ctx, req.MemoryId, req.Content, req.Category)
	if err != nil {
		logs.Errorf("update memory error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.MemoryUpdateErrCode)
	}

	return &core_api.UpdateMemoryResp{Resp: util.Success(), Memory: toMemoryView(m)}, nil
}

func (s *MemoryService) DeleteMemory(ctx context.Context, req *core_api.DeleteMemoryReq) (*core_api.DeleteMemoryResp, error) {
	// 鉴权
	uid, err := adaptor.ExtractUserId(ctx)
	if err != nil {
		logs.Errorf("extract user id error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.UnAuthErrCode)
	}

	if ok := s.MemoryDomain.Delete(ctx, req.MemoryId, uid); !ok {
		return nil, errorx.New(errno.MemoryDeleteErrCode)
	}
	return &core_api.DeleteMemoryResp{Resp: util.Success()}, nil
}

func (s *MemoryService) BatchDeleteMemory(ctx context.Context, req *core_api.BatchDeleteMemoryReq) (*core_api.BatchDeleteMemoryResp, error) {
	// 鉴权
	uid, err := adaptor.ExtractUserId(ctx)
	if err != nil {
		logs.Errorf("extract user id error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.UnAuthErrCode)
	}

	deleted := s.MemoryDomain.BatchDelete(ctx, uid, req.Category)
	return &core_api.BatchDeleteMemoryResp{Resp: util.Success(), DeletedCount: deleted}, nil
}

func (s *MemoryService) SearchMemory(ctx context.Context, req *core_api.SearchMemoryReq) (*core_api.SearchMemoryResp, error) {
	// 鉴权
	uid, err := adaptor.ExtractUserId(ctx)
	if err != nil {
		logs.Errorf("extract user id error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.UnAuthErrCode)
	}

	ms := s.MemoryDomain.Search(ctx, uid, req.Query, req.TopK)
	return &core_api.SearchMemoryResp{Resp: util.Success(), Results: toMemoryViews(ms), Query: req.Query}, nil
}
