// Package model 定义了与数据库表对应的 Go 结构体及领域常量。
package model

import "time"

// TripMode 区分个人行程与团体行程。
type TripMode string

const (
	ModeIndividual TripMode = "individual"
	ModeGroup      TripMode = "group"
)

// Valid 判断 mode 是否为已知取值。
func (m TripMode) Valid() bool {
	return m == ModeIndividual || m == ModeGroup
}

// Trip 是一次规划会话：发送给模型的 prompt 与模型返回的原始文本。
// 创建后不可修改。
type Trip struct {
	ID          uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	Mode        TripMode      `gorm:"type:text" json:"mode"`
	Description string        `gorm:"type:text" json:"description"`
	AIResponse  string        `gorm:"column:ai_response;type:text" json:"aiResponse"`
	CreatedAt   time.Time     `gorm:"autoCreateTime" json:"createdAt"`
	Members     []GroupMember `gorm:"foreignKey:TripID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Trip) TableName() string {
	return "trips"
}
