package logger

// 统一的日志字段命名常量
// 用于确保整个项目中日志字段命名的一致性，便于日志查询和分析
const (
	// FieldTraceID 追踪 ID 字段
	FieldTraceID = "traceId"

	// FieldOwner 笔记归属身份字段
	FieldOwner = "owner"

	// FieldNoteID 笔记 ID 字段
	FieldNoteID = "noteId"

	// FieldDuration 耗时字段
	FieldDuration = "duration"

	// FieldMethod 方法名称字段
	FieldMethod = "method"

	// FieldError 错误信息字段
	FieldError = "error"

	// FieldDeleted 删除数量字段
	FieldDeleted = "deleted"

	// FieldCutoff 清理截止时间字段
	FieldCutoff = "cutoff"
)
