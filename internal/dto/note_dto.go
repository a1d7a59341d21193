// Package dto Defines data transfer objects (request parameters and response structs)
// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import (
	"github.com/haierkeys/ephemeral-notes-service/pkg/timex"
)

// NoteDTO Note data transfer object
// NoteDTO 笔记数据传输对象
type NoteDTO struct {
	ID        int64       `json:"id"`
	Content   string      `json:"content"`
	Preview   string      `json:"preview"`
	HTML      string      `json:"html,omitempty"`
	CreatedAt timex.Time  `json:"createdAt"`
	UpdatedAt *timex.Time `json:"updatedAt"`
}

// NoteListItemDTO List item without full content
// NoteListItemDTO 列表项，不携带完整内容
type NoteListItemDTO struct {
	ID        int64       `json:"id"`
	Preview   string      `json:"preview"`
	CreatedAt timex.Time  `json:"createdAt"`
	UpdatedAt *timex.Time `json:"updatedAt"`
}

// NoteCreateRequest Request parameters for creating a note
// NoteCreateRequest 创建笔记的请求参数
type NoteCreateRequest struct {
	Content string `json:"content" form:"content" binding:"required,min=1,max=1000"`
}

// NoteUpdateRequest Request parameters for updating note content
// NoteUpdateRequest 更新笔记内容的请求参数
type NoteUpdateRequest struct {
	Content string `json:"content" form:"content" binding:"required,min=1,max=1000"`
}

// NoteSearchRequest Request parameters for substring search
// NoteSearchRequest 子串搜索的请求参数
type NoteSearchRequest struct {
	Query string `json:"q" form:"q" binding:"required"`
}
