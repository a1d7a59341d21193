package domain

import (
	"context"
	"time"
)

// NoteRepository 笔记数据访问接口
// 除 Update 与 DeleteOlderThan 外，所有操作都按归属身份过滤
type NoteRepository interface {
	// ListRecent 按创建时间倒序获取某身份的全部笔记，时间相同时按 ID 升序
	ListRecent(ctx context.Context, owner string) ([]*Note, error)

	// GetByID 获取某身份名下的单条笔记
	GetByID(ctx context.Context, id int64, owner string) (*Note, error)

	// Search 在某身份名下按内容子串搜索，排序同 ListRecent
	Search(ctx context.Context, owner string, substr string) ([]*Note, error)

	// Create 创建笔记，返回带 ID 与创建时间的完整记录
	Create(ctx context.Context, owner string, content string) (*Note, error)

	// Update 替换内容并刷新更新时间；不校验归属，调用方需先确认
	Update(ctx context.Context, id int64, content string) (*Note, error)

	// DeleteOlderThan 删除所有身份名下创建时间早于 cutoff 的笔记，返回删除数量
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
