package model

import (
	"github.com/haierkeys/ephemeral-notes-service/pkg/timex"
)

// Note 笔记数据库模型
type Note struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Content   string     `gorm:"column:content;type:text;not null"`
	Owner     string     `gorm:"column:owner;type:varchar(64);index;not null"`
	// Timestamps are set by the repository, not by gorm tracking, so
	// updated_at stays NULL until the first content mutation.
	// 时间戳由仓储层显式设置，updated_at 在首次修改前保持 NULL
	CreatedAt timex.Time `gorm:"column:created_at;index;not null;autoCreateTime:false;autoUpdateTime:false"`
	UpdatedAt timex.Time `gorm:"column:updated_at;default:null;autoCreateTime:false;autoUpdateTime:false"`
}

// TableName 指定表名
func (Note) TableName() string {
	return "note"
}
