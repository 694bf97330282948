// Package repository 定义了与数据库进行数据交换的接口和实现。
package repository

import (
	"context"

	"gorm.io/gorm"

	"trip-planner-go/internal/model"
	"trip-planner-go/pkg/errs"
)

// DefaultRecentLimit 是 FetchRecent 在 limit 非正数时使用的条数。
const DefaultRecentLimit = 5

// TripRepository 接口定义了行程与团体成员相关的数据持久化操作。
type TripRepository interface {
	Initialize(ctx context.Context) error
	SaveTrip(ctx context.Context, mode model.TripMode, description, aiResponse string, members []model.MemberInput) (uint, error)
	FetchRecent(ctx context.Context, limit int) ([]model.Trip, error)
	CountMembers(ctx context.Context, tripID uint) (int64, error)
	FindMembers(ctx context.Context, tripID uint) ([]model.GroupMember, error)
}

type tripRepository struct {
	db *gorm.DB
}

// NewTripRepository 创建一个新的 TripRepository 实例。
func NewTripRepository(db *gorm.DB) TripRepository {
	return &tripRepository{db: db}
}

// Initialize 建表并补齐旧库缺失的 mood 列，可重复调用。
// 已有数据保持不变，旧行的 mood 为 NULL。
func (r *tripRepository) Initialize(ctx context.Context) error {
	m := r.db.WithContext(ctx).Migrator()

	if !m.HasTable(&model.Trip{}) {
		if err := m.CreateTable(&model.Trip{}); err != nil {
			return &errs.StorageError{Op: "initialize", Err: err}
		}
	}
	if !m.HasTable(&model.GroupMember{}) {
		if err := m.CreateTable(&model.GroupMember{}); err != nil {
			return &errs.StorageError{Op: "initialize", Err: err}
		}
		return nil
	}
	if !m.HasColumn(&model.GroupMember{}, "Mood") {
		if err := m.AddColumn(&model.GroupMember{}, "Mood"); err != nil {
			return &errs.StorageError{Op: "initialize", Err: err}
		}
	}
	return nil
}

// SaveTrip 在一个事务中写入行程以及（团体模式下的）全部成员，返回新行程的 ID。
// 任一写入失败时整个事务回滚。
func (r *tripRepository) SaveTrip(ctx context.Context, mode model.TripMode, description, aiResponse string, members []model.MemberInput) (uint, error) {
	trip := model.Trip{
		Mode:        mode,
		Description: description,
		AIResponse:  aiResponse,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&trip).Error; err != nil {
			return err
		}
		if mode != model.ModeGroup || len(members) == 0 {
			return nil
		}
		rows := make([]model.GroupMember, 0, len(members))
		for _, in := range members {
			row := in.ToGroupMember()
			row.TripID = trip.ID
			rows = append(rows, row)
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return 0, &errs.StorageError{Op: "save trip", Err: err}
	}
	return trip.ID, nil
}

// FetchRecent 按插入顺序倒序返回最近的 limit 条行程，不加载成员。
func (r *tripRepository) FetchRecent(ctx context.Context, limit int) ([]model.Trip, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	trips := make([]model.Trip, 0)
	if err := r.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&trips).Error; err != nil {
		return nil, &errs.StorageError{Op: "fetch recent", Err: err}
	}
	return trips, nil
}

// CountMembers 返回某个行程下的成员数。
func (r *tripRepository) CountMembers(ctx context.Context, tripID uint) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.GroupMember{}).Where("trip_id = ?", tripID).Count(&n).Error; err != nil {
		return 0, &errs.StorageError{Op: "count members", Err: err}
	}
	return n, nil
}

// FindMembers 按插入顺序返回某个行程下的成员。
func (r *tripRepository) FindMembers(ctx context.Context, tripID uint) ([]model.GroupMember, error) {
	members := make([]model.GroupMember, 0)
	if err := r.db.WithContext(ctx).Where("trip_id = ?", tripID).Order("id ASC").Find(&members).Error; err != nil {
		return nil, &errs.StorageError{Op: "find members", Err: err}
	}
	return members, nil
}
