package logger

// 统一的日志字段命名常量
// 用于确保整个项目中日志字段命名的一致性，便于日志查询和分析
const (
	// FieldTraceID 追踪 ID 字段
	FieldTraceID = "traceId"

	// FieldUserID 用户身份 ID 字段
	FieldUserID = "userId"

	// FieldKind 身份类型字段 (anon / auth)
	FieldKind = "kind"

	// FieldSessionToken 会话 Token 字段
	FieldSessionToken = "sessionToken"

	// FieldPrincipal 认证主体标识字段
	FieldPrincipal = "principal"

	// FieldMethod 方法名称字段
	FieldMethod = "method"

	// FieldDuration 耗时字段
	FieldDuration = "duration"

	// FieldCount 数量字段
	FieldCount = "count"

	// FieldError 错误信息字段
	FieldError = "error"
)
