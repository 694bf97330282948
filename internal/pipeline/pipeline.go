// Package pipeline 定义了一次行程规划请求发往模型的处理流程。
// 流程是一个有序的阶段列表，当前只有模型调用一个阶段，后续阶段通过 Use 追加。
package pipeline

import (
	"context"
	"fmt"

	"trip-planner-go/internal/config"
	"trip-planner-go/pkg/llm"
)

// SystemInstruction 是每次调用模型时固定发送的系统指令。
const SystemInstruction = "You are a concise, practical AI travel planner. " +
	"User input may describe an individual or a group with travel personalities. " +
	"Suggest exactly 3 destinations. For each: give a short reason, rough flight+lodging cost, " +
	"and how it matches the group's mix of personalities. " +
	"End with a line: 'Mood Harmony Score: X/10' (integer 1-10)."

// State 在各阶段之间传递。Response 为 nil 表示还没有阶段写入结果。
type State struct {
	UserInput string
	Response  *string
}

// Stage 是流程中的一个步骤，返回错误时流程立即终止。
type Stage func(ctx context.Context, st *State) error

// Pipeline 封装了模型客户端与阶段列表。构造后可被多次调用，不保存请求间状态。
type Pipeline struct {
	client llm.Client
	stages []Stage
}

// New 根据配置创建模型客户端。凭证缺失时返回 *errs.ConfigurationError，不发起任何网络请求。
func New(cfg config.LLMConfig) (*Pipeline, error) {
	client, err := llm.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return NewWithClient(client), nil
}

// NewWithClient 使用给定的客户端创建流程，默认只包含模型调用阶段。
func NewWithClient(client llm.Client) *Pipeline {
	p := &Pipeline{client: client}
	p.stages = []Stage{p.modelStage}
	return p
}

// Use 在现有阶段之后追加阶段。
func (p *Pipeline) Use(stages ...Stage) *Pipeline {
	p.stages = append(p.stages, stages...)
	return p
}

// Run 依次执行全部阶段，返回最终的模型文本。模型未返回内容时结果为空串。
func (p *Pipeline) Run(ctx context.Context, prompt string) (string, error) {
	st := &State{UserInput: prompt}
	for i, stage := range p.stages {
		if err := stage(ctx, st); err != nil {
			if i == 0 {
				return "", err
			}
			return "", fmt.Errorf("pipeline stage %d: %w", i, err)
		}
	}
	if st.Response == nil {
		return "", nil
	}
	return *st.Response, nil
}

// modelStage 发送 [系统指令, 用户输入] 两条消息并写回 Response。
func (p *Pipeline) modelStage(ctx context.Context, st *State) error {
	out, err := p.client.Send(ctx, SystemInstruction, st.UserInput)
	if err != nil {
		return err
	}
	st.Response = &out
	return nil
}
