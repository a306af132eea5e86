package dto

// CaptchaVerifyRequest 人机验证请求参数
// 会话 Token 经由 X-Session-Token 请求头传递，不在 body 中
type CaptchaVerifyRequest struct {
	CaptchaResponse string `json:"captchaResponse" form:"captchaResponse" binding:"required"` // 验证组件回传的 response token
}

// SessionDTO 新会话响应
type SessionDTO struct {
	SessionToken string `json:"sessionToken"` // 服务端生成的会话 Token
}

// UpgradeDTO 身份升级结果
type UpgradeDTO struct {
	UserID         int64 `json:"userId"`         // 认证身份的 ID
	ReparentedNote int64 `json:"reparentedNote"` // 本次转移的笔记数量
}
