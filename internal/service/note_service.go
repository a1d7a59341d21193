// Package service 实现业务逻辑层
package service

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/haierkeys/ephemeral-notes-service/internal/domain"
	"github.com/haierkeys/ephemeral-notes-service/internal/dto"
	"github.com/haierkeys/ephemeral-notes-service/pkg/code"
	"github.com/haierkeys/ephemeral-notes-service/pkg/logger"
	"github.com/haierkeys/ephemeral-notes-service/pkg/markdown"
	"github.com/haierkeys/ephemeral-notes-service/pkg/timex"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// ServiceConfig 服务层配置
type ServiceConfig struct {
	// NoteRetention 笔记保留时间，超过即被清理
	NoteRetention time.Duration
	// ContentMaxLength 笔记内容最大字符数
	ContentMaxLength int
	// PreviewLength 纯文本预览长度
	PreviewLength int
}

// NoteService 定义笔记业务服务接口
type NoteService interface {
	// List 获取某身份的全部笔记，按创建时间倒序；首条附带完整 HTML
	List(ctx context.Context, owner string) []*dto.NoteDTO

	// Get 获取某身份名下的单条笔记，附带渲染后的 HTML
	Get(ctx context.Context, owner string, id int64) (*dto.NoteDTO, error)

	// Search 在某身份名下按内容子串搜索
	Search(ctx context.Context, owner string, query string) []*dto.NoteListItemDTO

	// Create 创建笔记
	Create(ctx context.Context, owner string, params *dto.NoteCreateRequest) (*dto.NoteDTO, error)

	// Update 更新笔记内容，调用方身份需拥有该笔记
	Update(ctx context.Context, owner string, id int64, params *dto.NoteUpdateRequest) (*dto.NoteDTO, error)

	// CleanupExpired 删除所有身份名下超过保留时间的笔记
	CleanupExpired(ctx context.Context) error
}

// noteService 实现 NoteService 接口
type noteService struct {
	noteRepo domain.NoteRepository
	config   *ServiceConfig
	logger   *zap.Logger
	sf       *singleflight.Group
}

// NewNoteService 创建 NoteService 实例
func NewNoteService(noteRepo domain.NoteRepository, config *ServiceConfig, lg *zap.Logger) NoteService {
	return &noteService{
		noteRepo: noteRepo,
		config:   config,
		logger:   lg,
		sf:       &singleflight.Group{},
	}
}

// domainToDTO 将领域模型转换为 DTO
func (s *noteService) domainToDTO(note *domain.Note) *dto.NoteDTO {
	if note == nil {
		return nil
	}
	d := &dto.NoteDTO{
		ID:        note.ID,
		Content:   note.Content,
		Preview:   markdown.Preview(note.Content, s.config.PreviewLength),
		CreatedAt: timex.Time(note.CreatedAt),
	}
	if note.IsUpdated() {
		updatedAt := timex.Time(note.UpdatedAt)
		d.UpdatedAt = &updatedAt
	}
	return d
}

// domainToListItemDTO 将领域模型转换为列表项 DTO
func (s *noteService) domainToListItemDTO(note *domain.Note) *dto.NoteListItemDTO {
	if note == nil {
		return nil
	}
	d := &dto.NoteListItemDTO{
		ID:        note.ID,
		Preview:   markdown.Preview(note.Content, s.config.PreviewLength),
		CreatedAt: timex.Time(note.CreatedAt),
	}
	if note.IsUpdated() {
		updatedAt := timex.Time(note.UpdatedAt)
		d.UpdatedAt = &updatedAt
	}
	return d
}

// validateContent 校验内容长度边界
// 绑定层已用 binding tag 校验过一次，这里守住服务入口
func (s *noteService) validateContent(content string) error {
	length := utf8.RuneCountInString(content)
	maxLength := s.config.ContentMaxLength
	if maxLength <= 0 {
		maxLength = domain.ContentMaxLength
	}
	if length < domain.ContentMinLength || length > maxLength {
		return code.ErrorNoteContentInvalid
	}
	return nil
}

// List 获取某身份的全部笔记
// 存储不可用时降级为空列表，只记录日志，不向调用方传播错误
func (s *noteService) List(ctx context.Context, owner string) []*dto.NoteDTO {
	notes, err := s.noteRepo.ListRecent(ctx, owner)
	if err != nil {
		s.logger.Error("note list degraded to empty",
			zap.String(logger.FieldOwner, owner),
			zap.Error(err))
		return []*dto.NoteDTO{}
	}

	result := make([]*dto.NoteDTO, 0, len(notes))
	for i, note := range notes {
		d := s.domainToDTO(note)
		// 首条（最近一条）附带完整 HTML，用于页面预览
		if i == 0 {
			d.HTML = markdown.RenderHTML(note.Content)
		}
		result = append(result, d)
	}
	return result
}

// Get 获取单条笔记
func (s *noteService) Get(ctx context.Context, owner string, id int64) (*dto.NoteDTO, error) {
	note, err := s.noteRepo.GetByID(ctx, id, owner)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorNoteNotFound
		}
		s.logger.Error("note get failed",
			zap.String(logger.FieldOwner, owner),
			zap.Int64(logger.FieldNoteID, id),
			zap.Error(err))
		return nil, code.ErrorNoteNotFound
	}

	d := s.domainToDTO(note)
	d.HTML = markdown.RenderHTML(note.Content)
	return d, nil
}

// Search 按内容子串搜索
// 与 List 相同的降级策略：存储不可用时返回空列表
func (s *noteService) Search(ctx context.Context, owner string, query string) []*dto.NoteListItemDTO {
	notes, err := s.noteRepo.Search(ctx, owner, query)
	if err != nil {
		s.logger.Error("note search degraded to empty",
			zap.String(logger.FieldOwner, owner),
			zap.Error(err))
		return []*dto.NoteListItemDTO{}
	}

	result := make([]*dto.NoteListItemDTO, 0, len(notes))
	for _, note := range notes {
		result = append(result, s.domainToListItemDTO(note))
	}
	return result
}

// Create 创建笔记
// 写入失败必须上抛，不能向用户虚报成功
func (s *noteService) Create(ctx context.Context, owner string, params *dto.NoteCreateRequest) (*dto.NoteDTO, error) {
	if err := s.validateContent(params.Content); err != nil {
		return nil, err
	}

	note, err := s.noteRepo.Create(ctx, owner, params.Content)
	if err != nil {
		s.logger.Error("note create failed",
			zap.String(logger.FieldOwner, owner),
			zap.Error(err))
		return nil, code.ErrorNoteCreateFailed
	}
	return s.domainToDTO(note), nil
}

// Update 更新笔记内容
// 先用归属过滤的 GetByID 确认所有权，再调用不校验归属的 Update
func (s *noteService) Update(ctx context.Context, owner string, id int64, params *dto.NoteUpdateRequest) (*dto.NoteDTO, error) {
	if err := s.validateContent(params.Content); err != nil {
		return nil, err
	}

	if _, err := s.noteRepo.GetByID(ctx, id, owner); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorNoteNotFound
		}
		return nil, code.ErrorNoteUpdateFailed
	}

	note, err := s.noteRepo.Update(ctx, id, params.Content)
	if err != nil {
		s.logger.Error("note update failed",
			zap.String(logger.FieldOwner, owner),
			zap.Int64(logger.FieldNoteID, id),
			zap.Error(err))
		return nil, code.ErrorNoteUpdateFailed
	}
	return s.domainToDTO(note), nil
}

// CleanupExpired 删除超过保留时间的笔记
// singleflight 合并同时刻的并发清理；删除按时间谓词执行，重复运行结果一致
func (s *noteService) CleanupExpired(ctx context.Context) error {
	_, err, _ := s.sf.Do("note_cleanup", func() (interface{}, error) {
		cutoff := time.Now().Add(-s.config.NoteRetention)
		deleted, err := s.noteRepo.DeleteOlderThan(ctx, cutoff)
		if err != nil {
			return nil, err
		}
		if deleted > 0 {
			s.logger.Info("expired notes evicted",
				zap.Int64(logger.FieldDeleted, deleted),
				zap.Time(logger.FieldCutoff, cutoff))
		}
		return deleted, nil
	})
	return err
}
