package errorx

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/xh-polaris/advisor-core-api/pkg/errorx/code"
)

// errorx 是携带业务错误码的error实现
// 最佳实践:
// - 业务处理链路的末端使用WrapByCode收敛为带码错误, adaptor.PostProcess给出用户友好响应
// - 错误码与默认文案在 types/errno 中预注册
// - 文案中的 {key} 占位符由 KV 填充

// StatusError 业务错误
type StatusError interface {
	error
	Code() int32
	Msg() string
	AffectStability() bool
}

type kv struct{ k, v string }

type Option func(*statusError)

// KV 填充文案中的 {k} 占位符
func KV(k, v string) Option {
	return func(e *statusError) {
		e.kvs = append(e.kvs, kv{k: k, v: v})
	}
}

// KVf 格式化填充
func KVf(k, format string, a ...any) Option {
	return KV(k, fmt.Sprintf(format, a...))
}

type statusError struct {
	code   int32
	msg    string
	affect bool
	kvs    []kv
	cause  error
	stack  string
}

func (e *statusError) Code() int32           { return e.code }
func (e *statusError) Msg() string           { return e.msg }
func (e *statusError) AffectStability() bool { return e.affect }
func (e *statusError) Unwrap() error         { return e.cause }

func (e *statusError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("code=%d, msg=%s", e.code, e.msg))
	if e.cause != nil {
		sb.WriteString(", cause=")
		sb.WriteString(e.cause.Error())
	}
	if e.stack != "" {
		sb.WriteString("\nstack:\n")
		sb.WriteString(e.stack)
	}
	return sb.String()
}

func render(c int32, opts ...Option) *statusError {
	e := &statusError{code: c, msg: "未知错误"}
	if d := code.Find(c); d != nil {
		e.msg, e.affect = d.Message, d.AffectStability
	}
	for _, opt := range opts {
		opt(e)
	}
	for _, p := range e.kvs {
		e.msg = strings.ReplaceAll(e.msg, "{"+p.k+"}", p.v)
	}
	e.stack = string(debug.Stack())
	return e
}

// New 依据注册过的错误码构造错误
func New(c int32, opts ...Option) error {
	return render(c, opts...)
}

// WrapByCode 将err包装为带码错误, err为nil时返回nil
// 若err本身已是StatusError则原样透传, 避免外层覆盖内层语义
func WrapByCode(err error, c int32, opts ...Option) error {
	if err == nil {
		return nil
	}
	var se StatusError
	if errors.As(err, &se) {
		return err
	}
	e := render(c, opts...)
	e.cause = err
	return e
}

// ErrorWithoutStack 打印错误但不携带堆栈, 用于日志
func ErrorWithoutStack(err error) string {
	if err == nil {
		return "<nil>"
	}
	var e *statusError
	if errors.As(err, &e) {
		s := fmt.Sprintf("code=%d, msg=%s", e.code, e.msg)
		if e.cause != nil {
			s += ", cause=" + e.cause.Error()
		}
		return s
	}
	return err.Error()
}
