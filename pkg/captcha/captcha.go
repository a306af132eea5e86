// Package captcha 提供人机验证服务（hCaptcha siteverify）客户端
package captcha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultSiteVerifyURL hCaptcha 官方校验接口地址
const DefaultSiteVerifyURL = "https://api.hcaptcha.com/siteverify"

// Config 验证客户端配置
type Config struct {
	// SiteVerifyURL 校验接口地址
	SiteVerifyURL string `yaml:"site-verify-url" default:"https://api.hcaptcha.com/siteverify"`
	// Secret 服务端密钥
	Secret string `yaml:"secret"`
	// Timeout 单次校验请求超时（秒）
	Timeout int `yaml:"timeout" default:"10"`
}

// Verifier 人机验证接口
// 以客户端提交的 response token 换取校验结果
type Verifier interface {
	Verify(ctx context.Context, responseToken string) (bool, error)
}

// VerifyResult siteverify 接口的响应结构
type VerifyResult struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// client 实现 Verifier 接口
type client struct {
	config     Config
	httpClient *http.Client
}

// NewClient 创建人机验证客户端
func NewClient(cfg Config) Verifier {
	if cfg.SiteVerifyURL == "" {
		cfg.SiteVerifyURL = DefaultSiteVerifyURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10
	}
	return &client{
		config: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

// Verify 调用外部校验接口
// 返回 (false, nil) 表示对方明确拒绝了 response token
// 返回 error 表示校验服务本身不可用
func (c *client) Verify(ctx context.Context, responseToken string) (bool, error) {
	form := url.Values{}
	form.Set("secret", c.config.Secret)
	form.Set("response", responseToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.SiteVerifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("captcha verify: unexpected status %d", resp.StatusCode)
	}

	var result VerifyResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, err
	}

	return result.Success, nil
}
