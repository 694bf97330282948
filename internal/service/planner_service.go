// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"trip-planner-go/internal/config"
	"trip-planner-go/internal/model"
	"trip-planner-go/internal/pipeline"
	"trip-planner-go/internal/prompt"
	"trip-planner-go/internal/repository"
)

const (
	MinBudget    = 100
	MinDays      = 1
	MinGroupSize = 2
	MaxGroupSize = 10
)

// ErrInvalidInput 表示请求参数不满足表单约束。
var ErrInvalidInput = errors.New("invalid input")

// IndividualRequest 是个人行程的请求参数。
type IndividualRequest struct {
	Budget    float64 `json:"budget" binding:"required,gte=100"`
	Days      int     `json:"days" binding:"required,gte=1"`
	Airport   string  `json:"airport" binding:"required"`
	Continent string  `json:"continent"`
}

// GroupRequest 是团体行程的请求参数。
type GroupRequest struct {
	Days    int                 `json:"days" binding:"required,gte=1"`
	Members []model.MemberInput `json:"members" binding:"required,min=2,max=10,dive"`
}

// PlanResult 是一次规划的完整结果。
type PlanResult struct {
	TripID           uint               `json:"tripId"`
	Mode             model.TripMode     `json:"mode"`
	Prompt           string             `json:"prompt"`
	Response         string             `json:"response"`
	Score            int                `json:"score"`
	MoodDistribution []prompt.MoodCount `json:"moodDistribution,omitempty"`
}

// PlannerService 接口定义了行程规划相关的业务操作。
type PlannerService interface {
	PlanIndividual(ctx context.Context, req IndividualRequest) (*PlanResult, error)
	PlanGroup(ctx context.Context, req GroupRequest) (*PlanResult, error)
	RecentTrips(ctx context.Context, limit int) ([]model.Trip, error)
	TripMembers(ctx context.Context, tripID uint) ([]model.GroupMember, error)
}

type plannerService struct {
	tripRepo     repository.TripRepository
	llmCfg       config.LLMConfig
	historyLimit int

	mu       sync.Mutex
	pipeline *pipeline.Pipeline
}

// NewPlannerService 创建一个新的 PlannerService 实例。
// 模型流程在第一次规划时创建并缓存，凭证缺失的错误会在每次规划时返回。
// historyLimit 是 RecentTrips 未指定条数时的默认值。
func NewPlannerService(tripRepo repository.TripRepository, llmCfg config.LLMConfig, historyLimit int) PlannerService {
	return &plannerService{tripRepo: tripRepo, llmCfg: llmCfg, historyLimit: historyLimit}
}

// NewPlannerServiceWithPipeline 使用已构造好的流程创建 PlannerService。
func NewPlannerServiceWithPipeline(tripRepo repository.TripRepository, p *pipeline.Pipeline) PlannerService {
	return &plannerService{tripRepo: tripRepo, pipeline: p}
}

func (s *plannerService) getPipeline() (*pipeline.Pipeline, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pipeline != nil {
		return s.pipeline, nil
	}
	p, err := pipeline.New(s.llmCfg)
	if err != nil {
		return nil, err
	}
	s.pipeline = p
	return p, nil
}

// PlanIndividual 处理个人行程：校验、生成 prompt、调用模型、落库、解析评分。
func (s *plannerService) PlanIndividual(ctx context.Context, req IndividualRequest) (*PlanResult, error) {
	req.Airport = strings.TrimSpace(req.Airport)
	if err := validateIndividual(req); err != nil {
		return nil, err
	}

	text := prompt.BuildIndividualPrompt(prompt.IndividualInput{
		Budget:    req.Budget,
		Days:      req.Days,
		Airport:   req.Airport,
		Continent: req.Continent,
	})
	return s.plan(ctx, model.ModeIndividual, text, nil)
}

// PlanGroup 处理团体行程。成员的空大洲和空性格会被补成 unspecified。
func (s *plannerService) PlanGroup(ctx context.Context, req GroupRequest) (*PlanResult, error) {
	members := make([]model.MemberInput, 0, len(req.Members))
	for _, m := range req.Members {
		m.Name = strings.TrimSpace(m.Name)
		m.Airport = strings.TrimSpace(m.Airport)
		m.Continent = strings.TrimSpace(m.Continent)
		m.Continent = m.ContinentOrDefault()
		m.Mood = m.MoodOrDefault()
		members = append(members, m)
	}
	if err := validateGroup(req.Days, members); err != nil {
		return nil, err
	}

	text := prompt.BuildGroupPrompt(members, req.Days)
	res, err := s.plan(ctx, model.ModeGroup, text, members)
	if err != nil {
		return nil, err
	}
	res.MoodDistribution = prompt.MoodDistribution(members)
	return res, nil
}

// plan 依次执行：模型调用 -> 落库 -> 解析评分。模型调用失败时不会写入任何数据。
func (s *plannerService) plan(ctx context.Context, mode model.TripMode, text string, members []model.MemberInput) (*PlanResult, error) {
	p, err := s.getPipeline()
	if err != nil {
		return nil, err
	}

	response, err := p.Run(ctx, text)
	if err != nil {
		return nil, err
	}

	tripID, err := s.tripRepo.SaveTrip(ctx, mode, text, response, members)
	if err != nil {
		return nil, err
	}

	return &PlanResult{
		TripID:   tripID,
		Mode:     mode,
		Prompt:   text,
		Response: response,
		Score:    prompt.ExtractHarmonyScore(response),
	}, nil
}

// RecentTrips 返回最近的行程，limit 非正数时使用默认条数。
func (s *plannerService) RecentTrips(ctx context.Context, limit int) ([]model.Trip, error) {
	if limit <= 0 {
		limit = s.historyLimit
	}
	return s.tripRepo.FetchRecent(ctx, limit)
}

// TripMembers 返回某个团体行程的成员。
func (s *plannerService) TripMembers(ctx context.Context, tripID uint) ([]model.GroupMember, error) {
	return s.tripRepo.FindMembers(ctx, tripID)
}

// validBudget 要求预算是不小于下限的有限数，NaN 和 ±Inf 都不合法。
func validBudget(b float64) bool {
	return !math.IsNaN(b) && !math.IsInf(b, 0) && b >= MinBudget
}

func validateIndividual(req IndividualRequest) error {
	if !validBudget(req.Budget) {
		return fmt.Errorf("%w: budget must be at least %d", ErrInvalidInput, MinBudget)
	}
	if req.Days < MinDays {
		return fmt.Errorf("%w: days must be at least %d", ErrInvalidInput, MinDays)
	}
	if req.Airport == "" {
		return fmt.Errorf("%w: airport is required", ErrInvalidInput)
	}
	return nil
}

func validateGroup(days int, members []model.MemberInput) error {
	if days < MinDays {
		return fmt.Errorf("%w: days must be at least %d", ErrInvalidInput, MinDays)
	}
	if len(members) < MinGroupSize || len(members) > MaxGroupSize {
		return fmt.Errorf("%w: group size must be between %d and %d, got %d", ErrInvalidInput, MinGroupSize, MaxGroupSize, len(members))
	}
	for i, m := range members {
		switch {
		case m.Name == "":
			return fmt.Errorf("%w: member %d: name is required", ErrInvalidInput, i+1)
		case m.Airport == "":
			return fmt.Errorf("%w: member %d: airport is required", ErrInvalidInput, i+1)
		case !validBudget(m.Budget):
			return fmt.Errorf("%w: member %d: budget must be at least %d", ErrInvalidInput, i+1, MinBudget)
		case !model.IsKnownMood(m.Mood):
			return fmt.Errorf("%w: member %d: unknown mood %q", ErrInvalidInput, i+1, m.Mood)
		}
	}
	return nil
}
