package model

import (
	"errors"
	"strings"

	"github.com/cloudwego/eino/schema"
)

// ErrRefused 安全过滤拒答, 且策略配置为fail
var ErrRefused = errors.New("generation refused by safety filter")

// ErrNoUsableOutput 模型正常返回但没有可用文本
var ErrNoUsableOutput = errors.New("generation produced no usable output")

type outcome int

const (
	outcomeOK outcome = iota
	outcomeRefused
	outcomeUnusable
)

// 不同供应商的安全拦截在finish_reason上的叫法
var refusalFinishReasons = []string{
	"safety", "content_filter", "prohibited_content", "blocklist", "recitation",
}

// 拦截发生在响应前时只拿得到错误文本, 按关键词识别
var refusalErrMarkers = []string{
	"safety", "blocked", "prohibited_content", "harm_category",
}

// classify 把一次生成归入三种结局
// 识别路径: finish_reason / 拦截错误 / 空内容但带安全终止原因
func classify(msg *schema.Message, err error) outcome {
	if err != nil {
		s := strings.ToLower(err.Error())
		for _, m := range refusalErrMarkers {
			if strings.Contains(s, m) {
				return outcomeRefused
			}
		}
		return outcomeUnusable
	}
	if msg == nil {
		return outcomeUnusable
	}

	fr := strings.ToLower(finishReason(msg))
	for _, r := range refusalFinishReasons {
		if fr == r {
			return outcomeRefused
		}
	}
	if strings.TrimSpace(msg.Content) == "" {
		return outcomeUnusable
	}
	return outcomeOK
}
