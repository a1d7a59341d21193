package dao

import (
	"context"
	"time"

	"github.com/haierkeys/ephemeral-notes-service/internal/domain"
	"github.com/haierkeys/ephemeral-notes-service/internal/model"
	"github.com/haierkeys/ephemeral-notes-service/pkg/timex"
)

// noteRepository 实现 domain.NoteRepository 接口
type noteRepository struct {
	dao *Dao
}

// NewNoteRepository 创建 NoteRepository 实例
func NewNoteRepository(dao *Dao) domain.NoteRepository {
	return &noteRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *noteRepository) toDomain(m *model.Note) *domain.Note {
	if m == nil {
		return nil
	}
	return &domain.Note{
		ID:        m.ID,
		Content:   m.Content,
		Owner:     m.Owner,
		CreatedAt: m.CreatedAt.Time(),
		UpdatedAt: m.UpdatedAt.Time(),
	}
}

func (r *noteRepository) toDomainList(ms []*model.Note) []*domain.Note {
	notes := make([]*domain.Note, 0, len(ms))
	for _, m := range ms {
		notes = append(notes, r.toDomain(m))
	}
	return notes
}

// ListRecent 按创建时间倒序获取某身份的全部笔记
// 创建时间相同时按 ID 升序（即插入顺序）
func (r *noteRepository) ListRecent(ctx context.Context, owner string) ([]*domain.Note, error) {
	var ms []*model.Note
	err := r.dao.db.WithContext(ctx).
		Where("owner = ?", owner).
		Order("created_at DESC, id ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainList(ms), nil
}

// GetByID 获取某身份名下的单条笔记
// 未命中返回 gorm.ErrRecordNotFound
func (r *noteRepository) GetByID(ctx context.Context, id int64, owner string) (*domain.Note, error) {
	var m model.Note
	err := r.dao.db.WithContext(ctx).
		Where("id = ? AND owner = ?", id, owner).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Search 在某身份名下按内容子串搜索
func (r *noteRepository) Search(ctx context.Context, owner string, substr string) ([]*domain.Note, error) {
	var ms []*model.Note
	err := r.dao.db.WithContext(ctx).
		Where("owner = ? AND content LIKE ?", owner, "%"+substr+"%").
		Order("created_at DESC, id ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainList(ms), nil
}

// Create 创建笔记
func (r *noteRepository) Create(ctx context.Context, owner string, content string) (*domain.Note, error) {
	m := &model.Note{
		Content:   content,
		Owner:     owner,
		CreatedAt: timex.Now(),
	}
	if err := r.dao.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// Update 替换内容并刷新更新时间
// 不校验归属（调用方需先用 GetByID 确认），与读路径的过滤策略不同
func (r *noteRepository) Update(ctx context.Context, id int64, content string) (*domain.Note, error) {
	now := timex.Now()
	tx := r.dao.db.WithContext(ctx).
		Model(&model.Note{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"content":    content,
			"updated_at": now,
		})
	if tx.Error != nil {
		return nil, tx.Error
	}

	var m model.Note
	if err := r.dao.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// DeleteOlderThan 删除所有身份名下创建时间早于 cutoff 的笔记
// 单条按时间谓词的删除语句，天然幂等
func (r *noteRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tx := r.dao.db.WithContext(ctx).
		Where("created_at < ?", timex.Time(cutoff)).
		Delete(&model.Note{})
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}
