package model

// Unspecified 是大洲和性格未填写时的占位值。
const Unspecified = "unspecified"

// GroupMember 是团体行程中一名成员的属性，只会随 Trip 一起创建。
type GroupMember struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	TripID    uint    `gorm:"index;not null" json:"tripId"`
	Name      string  `gorm:"type:text" json:"name"`
	Budget    float64 `gorm:"type:real" json:"budget"`
	Airport   string  `gorm:"type:text" json:"airport"`
	Continent string  `gorm:"type:text" json:"continent"`
	// Mood 列晚于其它列加入，旧数据中可能为 NULL，因此不带默认值。
	Mood string `gorm:"type:text" json:"mood"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (GroupMember) TableName() string {
	return "group_members"
}

// MemberInput 是调用方提交的成员信息，落库前会补齐默认值。
type MemberInput struct {
	Name      string  `json:"name" binding:"required"`
	Budget    float64 `json:"budget" binding:"required,gte=100"`
	Airport   string  `json:"airport" binding:"required"`
	Continent string  `json:"continent"`
	Mood      string  `json:"mood"`
}

// ContinentOrDefault 返回大洲，空值时返回 Unspecified。
func (m MemberInput) ContinentOrDefault() string {
	if m.Continent == "" {
		return Unspecified
	}
	return m.Continent
}

// MoodOrDefault 返回性格标签，空值时返回 Unspecified。
func (m MemberInput) MoodOrDefault() string {
	if m.Mood == "" {
		return Unspecified
	}
	return m.Mood
}

// ToGroupMember 把输入转换为待插入的行，TripID 由存储层填写。
func (m MemberInput) ToGroupMember() GroupMember {
	return GroupMember{
		Name:      m.Name,
		Budget:    m.Budget,
		Airport:   m.Airport,
		Continent: m.ContinentOrDefault(),
		Mood:      m.MoodOrDefault(),
	}
}
