package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"trip-planner-go/internal/config"
	"trip-planner-go/internal/model"
	"trip-planner-go/internal/repository"
	"trip-planner-go/internal/service"
	"trip-planner-go/pkg/database"
	"trip-planner-go/pkg/errs"
	"trip-planner-go/pkg/log"
)

// ConfigFile 由根命令的 --config 参数填充。
var ConfigFile string

// setup 加载配置、打开数据库并保证表结构最新。
func setup(ctx context.Context) (config.Config, repository.TripRepository, error) {
	cfg, err := config.Load(ConfigFile)
	if err != nil {
		return config.Config{}, nil, err
	}
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)

	db, err := database.Open(cfg.Database)
	if err != nil {
		return config.Config{}, nil, err
	}
	repo := repository.NewTripRepository(db)
	if err := repo.Initialize(ctx); err != nil {
		return config.Config{}, nil, err
	}
	return cfg, repo, nil
}

func newService(ctx context.Context) (service.PlannerService, error) {
	cfg, repo, err := setup(ctx)
	if err != nil {
		return nil, err
	}
	return service.NewPlannerService(repo, cfg.LLM, cfg.History.DefaultLimit), nil
}

// printPlan 输出模型建议；评分为 0 时不显示评分行。
func printPlan(w io.Writer, res *service.PlanResult) {
	if res.Mode == model.ModeGroup {
		fmt.Fprintf(w, "Group Trip #%d saved!\n\n", res.TripID)
	} else {
		fmt.Fprintf(w, "Trip #%d created\n\n", res.TripID)
	}
	fmt.Fprintln(w, res.Response)

	if len(res.MoodDistribution) > 0 {
		fmt.Fprintln(w, "\nGroup Personality Mix")
		for _, mc := range res.MoodDistribution {
			fmt.Fprintf(w, "  %-20s %s %d\n", mc.Mood, strings.Repeat("#", mc.Count), mc.Count)
		}
	}
	if res.Score > 0 {
		fmt.Fprintf(w, "\nMood Harmony Score: %d/10 [%s%s]\n", res.Score,
			strings.Repeat("=", res.Score), strings.Repeat(" ", 10-res.Score))
	}
}

// explain 把核心层错误转成面向终端用户的提示。
func explain(err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return err
	case errs.IsConfiguration(err):
		return fmt.Errorf("%w\nset LLM_API_KEY or GOOGLE_API_KEY in the environment or a .env file", err)
	case errs.IsTimeout(err):
		return fmt.Errorf("the model did not answer in time, nothing was saved: %w", err)
	case errs.IsRemote(err):
		return fmt.Errorf("the model call failed, nothing was saved: %w", err)
	default:
		return err
	}
}
