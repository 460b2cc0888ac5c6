package logs

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"
)

// logs 是日志门面, 统一走go-zero的logx
// 带Ctx的方法会关联链路信息(trace_id等)

func Info(v ...any) {
	logx.Info(v...)
}

func Infof(format string, v ...any) {
	logx.Infof(format, v...)
}

func Error(v ...any) {
	logx.Error(v...)
}

func Errorf(format string, v ...any) {
	logx.Errorf(format, v...)
}

// CondErrorf cond为true时才记录
func CondErrorf(cond bool, format string, v ...any) {
	if cond {
		logx.Errorf(format, v...)
	}
}

func CtxInfof(ctx context.Context, format string, v ...any) {
	logx.WithContext(ctx).Infof(format, v...)
}

// CtxWarnf 记录降级类事件; logx没有warn级别, 按info落盘
func CtxWarnf(ctx context.Context, format string, v ...any) {
	logx.WithContext(ctx).Infof(format, v...)
}

func CtxErrorf(ctx context.Context, format string, v ...any) {
	logx.WithContext(ctx).Errorf(format, v...)
}
