package routers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jamwt/anon-notes-service/internal/app"
	"github.com/jamwt/anon-notes-service/internal/dao"
	"github.com/jamwt/anon-notes-service/internal/model"
	"github.com/jamwt/anon-notes-service/internal/service"
	"github.com/jamwt/anon-notes-service/pkg/code"

	"github.com/creasty/defaults"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// okVerifier 总是通过的人机验证桩
type okVerifier struct{}

func (okVerifier) Verify(ctx context.Context, responseToken string) (bool, error) {
	return true, nil
}

// resEnvelope 统一响应结构
type resEnvelope struct {
	Code   int             `json:"code"`
	Status bool            `json:"status"`
	Data   json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T) (*gin.Engine, *app.App) {
	t.Helper()

	cfg := new(app.AppConfig)
	require.NoError(t, defaults.Set(cfg))
	cfg.Database.Type = "sqlite"
	cfg.Database.Path = ":memory:"
	cfg.Database.MaxIdleConns = 1
	cfg.Database.MaxOpenConns = 1

	db, err := dao.NewDBEngineWithConfig(dao.DatabaseConfig{
		Type:         cfg.Database.Type,
		Path:         cfg.Database.Path,
		MaxIdleConns: 1,
		MaxOpenConns: 1,
	}, nil)
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(db, ""))

	a, err := app.NewApp(cfg, zap.NewNop(), db)
	require.NoError(t, err)

	// 外部人机验证替换为桩，避免真实网络调用
	a.CaptchaService = service.NewCaptchaService(a.UserIdentityRepo, okVerifier{}, a.Logger())

	uni := ut.New(en.New(), en.New())
	return NewRouter(a, uni), a
}

func doRequest(r *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeRes(t *testing.T, w *httptest.ResponseRecorder) resEnvelope {
	t.Helper()
	var res resEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res), w.Body.String())
	return res
}

func TestRouter_SessionMint(t *testing.T) {
	r, _ := newTestServer(t)

	w := doRequest(r, http.MethodGet, "/api/session", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	res := decodeRes(t, w)
	assert.True(t, res.Status)

	var data struct {
		SessionToken string `json:"sessionToken"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &data))
	assert.NotEmpty(t, data.SessionToken)
}

// TestRouter_AnonToAuthScenario 覆盖匿名记笔记到登录归并的完整 HTTP 链路
func TestRouter_AnonToAuthScenario(t *testing.T) {
	r, a := newTestServer(t)

	anonHeaders := map[string]string{"X-Session-Token": "tok-1"}

	// 未通过验证前无法解析身份
	w := doRequest(r, http.MethodGet, "/api/user", "", anonHeaders)
	var appErr struct {
		Code int `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &appErr))
	assert.Equal(t, code.ErrorUserNotFound.Code(), appErr.Code)

	// 人机验证准入
	w = doRequest(r, http.MethodPost, "/api/session/captcha", `{"captchaResponse":"ok"}`, anonHeaders)
	res := decodeRes(t, w)
	require.True(t, res.Status, w.Body.String())

	// 匿名身份可见
	w = doRequest(r, http.MethodGet, "/api/user", "", anonHeaders)
	res = decodeRes(t, w)
	require.True(t, res.Status)
	var identity struct {
		ID   int64  `json:"id"`
		Kind string `json:"kind"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &identity))
	assert.Equal(t, "anon", identity.Kind)

	// 匿名记一条笔记
	w = doRequest(r, http.MethodPost, "/api/note", `{"note":"buy milk"}`, anonHeaders)
	res = decodeRes(t, w)
	require.True(t, res.Status, w.Body.String())

	// 登录后升级，笔记归并到认证身份
	token, err := a.TokenManager.Generate("user-42", "Jam")
	require.NoError(t, err)
	authHeaders := map[string]string{
		"X-Session-Token": "tok-1",
		"Authorization":   "Bearer " + token,
	}

	w = doRequest(r, http.MethodPost, "/api/user/upgrade", "", authHeaders)
	res = decodeRes(t, w)
	require.True(t, res.Status, w.Body.String())
	var upgrade struct {
		UserID         int64 `json:"userId"`
		ReparentedNote int64 `json:"reparentedNote"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &upgrade))
	assert.EqualValues(t, 1, upgrade.ReparentedNote)

	// 仅凭认证 Token 也能看到笔记
	w = doRequest(r, http.MethodGet, "/api/notes", "", map[string]string{
		"Authorization": "Bearer " + token,
	})
	res = decodeRes(t, w)
	require.True(t, res.Status)
	var list struct {
		List []struct {
			Note string `json:"note"`
		} `json:"list"`
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &list))
	require.Equal(t, 1, list.Count)
	assert.Equal(t, "buy milk", list.List[0].Note)

	// 升级后解析到认证身份
	w = doRequest(r, http.MethodGet, "/api/user", "", authHeaders)
	res = decodeRes(t, w)
	require.True(t, res.Status)
	require.NoError(t, json.Unmarshal(res.Data, &identity))
	assert.Equal(t, "auth", identity.Kind)
	assert.Equal(t, upgrade.UserID, identity.ID)

	// 重复升级是幂等的
	w = doRequest(r, http.MethodPost, "/api/user/upgrade", "", authHeaders)
	res = decodeRes(t, w)
	require.True(t, res.Status)
	require.NoError(t, json.Unmarshal(res.Data, &upgrade))
	assert.EqualValues(t, 0, upgrade.ReparentedNote)
}

func TestRouter_UpgradeRequiresAuth(t *testing.T) {
	r, _ := newTestServer(t)

	w := doRequest(r, http.MethodPost, "/api/user/upgrade", "", map[string]string{
		"X-Session-Token": "tok-1",
	})
	var appErr struct {
		Code int `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &appErr))
	assert.Equal(t, code.ErrorNotAuthenticated.Code(), appErr.Code)
}

func TestRouter_InvalidBearerRejected(t *testing.T) {
	r, _ := newTestServer(t)

	w := doRequest(r, http.MethodGet, "/api/notes", "", map[string]string{
		"Authorization": "Bearer not-a-jwt",
	})
	res := decodeRes(t, w)
	assert.False(t, res.Status)
	assert.Equal(t, code.ErrorInvalidUserAuthToken.Code(), res.Code)
}

func TestRouter_NoteRequiresResolvedUser(t *testing.T) {
	r, _ := newTestServer(t)

	w := doRequest(r, http.MethodPost, "/api/note", `{"note":"orphan"}`, map[string]string{
		"X-Session-Token": "tok-unknown",
	})
	var appErr struct {
		Code int `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &appErr))
	assert.Equal(t, code.ErrorUserNotFound.Code(), appErr.Code)
}

func TestRouter_NoteValidation(t *testing.T) {
	r, _ := newTestServer(t)

	w := doRequest(r, http.MethodPost, "/api/note", `{}`, map[string]string{
		"X-Session-Token": "tok-1",
	})
	res := decodeRes(t, w)
	assert.False(t, res.Status)
	assert.Equal(t, code.ErrorInvalidParams.Code(), res.Code)
}

func TestRouter_Health(t *testing.T) {
	r, _ := newTestServer(t)

	w := doRequest(r, http.MethodGet, "/api/health", "", nil)
	res := decodeRes(t, w)
	require.True(t, res.Status)

	var health struct {
		Status   string `json:"status"`
		Database string `json:"database"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "connected", health.Database)
}

func TestRouter_NotFound(t *testing.T) {
	r, _ := newTestServer(t)

	w := doRequest(r, http.MethodGet, "/api/nope", "", nil)
	res := decodeRes(t, w)
	assert.False(t, res.Status)
	assert.Equal(t, code.ErrorNotFound.Code(), res.Code)
}

func TestPrivateRouter_Metrics(t *testing.T) {
	r := NewPrivateRouterWithLogger("release", zap.NewNop())

	w := doRequest(r, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodGet, "/debug/vars", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "memstats")
}
