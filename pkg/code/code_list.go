package code

// 通用状态码
var (
	Success = NewSuss(1, lang{
		en:    "Success",
		zh_cn: "成功",
	})
	Failed = NewError(100, lang{
		en:    "Failed",
		zh_cn: "失败",
	})
	ErrorInvalidParams = NewError(10001, lang{
		en:    "Invalid Params",
		zh_cn: "入参错误",
	})
	ErrorServerInternal = NewError(10002, lang{
		en:    "Server Internal Error",
		zh_cn: "服务内部错误",
	})
	ErrorTooManyRequests = NewError(10003, lang{
		en:    "Too Many Requests",
		zh_cn: "请求过多",
	})
	ErrorNotFound = NewError(10004, lang{
		en:    "Resource Not Found",
		zh_cn: "资源不存在",
	})
	ErrorDBQuery = NewError(10010, lang{
		en:    "Database Query Error",
		zh_cn: "数据库查询错误",
	})
)

// 认证相关状态码
var (
	ErrorNotUserAuthToken = NewError(20001, lang{
		en:    "Auth Token Not Provided",
		zh_cn: "未提供认证 Token",
	})
	ErrorInvalidUserAuthToken = NewError(20002, lang{
		en:    "Invalid Auth Token",
		zh_cn: "认证 Token 无效",
	})
	ErrorNotAuthenticated = NewError(20003, lang{
		en:    "Not Authenticated",
		zh_cn: "当前请求未认证",
	})
	ErrorTokenGenerate = NewError(20004, lang{
		en:    "Token Generate Failed",
		zh_cn: "Token 生成失败",
	})
)

// 会话与身份相关状态码
var (
	ErrorUserNotFound = NewError(20101, lang{
		en:    "User Not Found",
		zh_cn: "用户不存在",
	})
	ErrorSessionTokenRequired = NewError(20102, lang{
		en:    "Session Token Not Provided",
		zh_cn: "未提供会话 Token",
	})
	ErrorVerificationFailed = NewError(20201, lang{
		en:    "Captcha Verification Failed",
		zh_cn: "人机验证失败",
	})
	ErrorVerificationUpstream = NewError(20202, lang{
		en:    "Captcha Verification Service Unavailable",
		zh_cn: "人机验证服务不可用",
	})
)
