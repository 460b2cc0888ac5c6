package errorx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xh-polaris/advisor-core-api/pkg/errorx/code"
)

func TestNewFillsRegisteredMessage(t *testing.T) {
	code.Register(90001, "消息长度超过上限{max}")

	err := New(90001, KVf("max", "%d", 10000))
	var se StatusError
	require.ErrorAs(t, err, &se)
	assert.EqualValues(t, 90001, se.Code())
	assert.Equal(t, "消息长度超过上限10000", se.Msg())
	assert.False(t, se.AffectStability())
}

func TestWrapByCode(t *testing.T) {
	code.Register(90002, "存储故障", code.WithAffectStability(true))

	assert.NoError(t, WrapByCode(nil, 90002))

	cause := errors.New("mongo timeout")
	err := WrapByCode(cause, 90002)
	var se StatusError
	require.ErrorAs(t, err, &se)
	assert.EqualValues(t, 90002, se.Code())
	assert.True(t, se.AffectStability())
	assert.ErrorIs(t, err, cause)

	// 已带码的错误透传, 外层不覆盖内层语义
	rewrapped := WrapByCode(err, 90001)
	require.ErrorAs(t, rewrapped, &se)
	assert.EqualValues(t, 90002, se.Code())
}

func TestErrorWithoutStack(t *testing.T) {
	code.Register(90003, "测试错误")
	s := ErrorWithoutStack(New(90003))
	assert.Equal(t, "code=90003, msg=测试错误", s)
	assert.Equal(t, "<nil>", ErrorWithoutStack(nil))
}
