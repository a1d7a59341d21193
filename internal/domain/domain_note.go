// Package domain 定义领域模型和接口
package domain

import "time"

// Content length bounds, enforced before persistence
// 内容长度边界，在持久化之前校验
const (
	ContentMinLength = 1
	ContentMaxLength = 1000
)

// Note 笔记领域模型
type Note struct {
	ID        int64
	Content   string
	Owner     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsUpdated 判断笔记是否被修改过
func (n *Note) IsUpdated() bool {
	return !n.UpdatedAt.IsZero()
}
