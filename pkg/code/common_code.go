package code

// Common codes // 通用状态码
var (
	Success              = NewSuss(200, lang{en: "Success", zh_cn: "成功"})
	ErrorInvalidParams   = NewError(400, lang{en: "Invalid params", zh_cn: "入参错误"})
	ErrorNotFoundAPI     = NewError(404, lang{en: "Not found API", zh_cn: "找不到对应的API"})
	ErrorTooManyRequests = NewError(429, lang{en: "Too many requests", zh_cn: "请求过多"})
	ErrorServerInternal  = NewError(500, lang{en: "Server internal error", zh_cn: "服务内部错误"})
)

// Note codes // 笔记状态码
var (
	ErrorNoteNotFound       = NewError(10001, lang{en: "Note not found", zh_cn: "笔记不存在"})
	ErrorNoteCreateFailed   = NewError(10002, lang{en: "Note create failed", zh_cn: "笔记创建失败"})
	ErrorNoteUpdateFailed   = NewError(10003, lang{en: "Note update failed", zh_cn: "笔记更新失败"})
	ErrorNoteContentInvalid = NewError(10004, lang{en: "Note content length out of bounds", zh_cn: "笔记内容长度超出限制"})
)
