package db_models

// BaseModel carries the surrogate key and unix-second timestamps shared by
// every table.
type BaseModel struct {
	ID        uint  `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt int64 `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt int64 `gorm:"autoUpdateTime" json:"updatedAt"`
}
