package db_models

// FixedAlert is a predefined, free-of-charge alert template. Message may
// contain the {{PLATE}} placeholder, rendered at send time.
type FixedAlert struct {
	BaseModel
	Title   string `gorm:"size:100"`
	Message string `gorm:"type:text"`
	Icon    string `gorm:"size:50"`
}
