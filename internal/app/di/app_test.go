package di

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"petcare_backend/internal/api"
	"petcare_backend/internal/platform/config"
	"petcare_backend/internal/platform/db"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type testApp struct {
	t      *testing.T
	engine *gin.Engine
	redis  *miniredis.Miniredis
}

func testConfig() config.Config {
	return config.Config{
		Env: "local",
		Auth: config.AuthConfig{
			JWTSecret:          "integration-secret",
			SessionTokenTTL:    time.Hour,
			BcryptCost:         bcrypt.MinCost,
			ExposeResetToken:   true,
			ResetRequestLimit:  2,
			ResetRequestWindow: time.Hour,
		},
		Cache: config.CacheConfig{PetListTTL: time.Minute},
	}
}

func newTestApp(t *testing.T, withRedis bool) *testApp {
	t.Helper()

	conn, err := db.Open(context.Background(), db.Config{
		Driver:        db.DriverSQLite,
		SQLitePath:    filepath.Join(t.TempDir(), "petcare.db"),
		RunMigrations: true,
	})
	require.NoError(t, err)

	app := &testApp{t: t}
	infra := Infra{DB: conn, Registry: prometheus.NewRegistry()}
	if withRedis {
		app.redis = miniredis.RunT(t)
		infra.Redis = redis.NewClient(&redis.Options{Addr: app.redis.Addr()})
		t.Cleanup(func() { _ = infra.Redis.Close() })
	}

	app.engine, err = NewApp(testConfig(), infra)
	require.NoError(t, err)
	return app
}

func (a *testApp) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func (a *testApp) login(email, password string) string {
	a.t.Helper()

	w := a.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": email, "password": password})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	var resp api.TokenResponse
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(a.t, resp.Token)
	return resp.Token
}

// TestApp_CredentialFlow は登録からパスワード再設定、アカウント削除までの一連の流れを検証します。
func TestApp_CredentialFlow(t *testing.T) {
	app := newTestApp(t, false)

	// signup
	w := app.do(http.MethodPost, "/api/users/", "", gin.H{"email": "owner@example.com", "password": "Secr3t!X"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "password")

	w = app.do(http.MethodPost, "/api/users/", "", gin.H{"email": "owner@example.com", "password": "Secr3t!X"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = app.do(http.MethodPost, "/api/users/", "", gin.H{"email": "weak@example.com", "password": "password"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// login
	w = app.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "owner@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	token := app.login("owner@example.com", "Secr3t!X")

	// gate
	w = app.do(http.MethodGet, "/api/users/", "", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = app.do(http.MethodGet, "/api/users/", "garbage", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(http.MethodGet, "/api/users/", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "owner@example.com")

	w = app.do(http.MethodPatch, "/api/users/", token, gin.H{"name": "Hana"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Hana"`)

	// password reset
	w = app.do(http.MethodPost, "/api/auth/password/", "", gin.H{"email": "nobody@example.com"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(http.MethodPost, "/api/auth/password/", "", gin.H{"email": "owner@example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	var reset api.PasswordResetResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reset))
	require.NotEmpty(t, reset.Token)

	// リセットトークンはセッションとして使えない
	w = app.do(http.MethodGet, "/api/users/", reset.Token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(http.MethodPost, "/api/auth/password/confirm", "", gin.H{"token": reset.Token, "new_password": "weak"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = app.do(http.MethodPost, "/api/auth/password/confirm", "", gin.H{"token": token, "new_password": "NewP4ss!"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "session token must not confirm a reset")

	w = app.do(http.MethodPost, "/api/auth/password/confirm", "", gin.H{"token": reset.Token, "new_password": "NewP4ss!"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = app.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "owner@example.com", "password": "Secr3t!X"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	newToken := app.login("owner@example.com", "NewP4ss!")

	// 発行済みのセッションは期限まで有効
	w = app.do(http.MethodGet, "/api/users/", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// 回数制限（上限2回）
	w = app.do(http.MethodPost, "/api/auth/password/", "", gin.H{"email": "owner@example.com"})
	assert.Equal(t, http.StatusOK, w.Code)
	w = app.do(http.MethodPost, "/api/auth/password/", "", gin.H{"email": "owner@example.com"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// delete account
	w = app.do(http.MethodDelete, "/api/users/me/", newToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = app.do(http.MethodGet, "/api/users/", newToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 削除済みアカウントのセッションでペットは登録できない
	w = app.do(http.MethodPost, "/api/pets/", newToken, gin.H{
		"name": "Mugi", "breed": "Shiba", "birth": "2020-04-01", "gender": "male",
	})
	assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "user_not_found")
}

// TestApp_Pets はペットの登録から削除までと、他人のペットにアクセスできないことを検証します。
func TestApp_Pets(t *testing.T) {
	for _, withRedis := range []bool{false, true} {
		name := "without redis"
		if withRedis {
			name = "with redis"
		}
		t.Run(name, func(t *testing.T) {
			app := newTestApp(t, withRedis)

			for _, email := range []string{"alice@example.com", "bob@example.com"} {
				w := app.do(http.MethodPost, "/api/users/", "", gin.H{"email": email, "password": "Secr3t!X"})
				require.Equal(t, http.StatusCreated, w.Code)
			}
			alice := app.login("alice@example.com", "Secr3t!X")
			bob := app.login("bob@example.com", "Secr3t!X")

			w := app.do(http.MethodPost, "/api/pets/", alice, gin.H{
				"name": "Mugi", "breed": "Shiba", "birth": "2020-04-01", "gender": "male", "weight": 8.5,
			})
			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
			var pet api.PetResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pet))

			w = app.do(http.MethodGet, "/api/pets/", alice, nil)
			require.Equal(t, http.StatusOK, w.Code)
			var list []api.PetResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
			assert.Len(t, list, 1)

			if withRedis {
				assert.True(t, app.redis.Exists("pets:owner:1"), "list should be cached")
			}

			// 更新後の一覧に反映される
			w = app.do(http.MethodPatch, "/api/pets/"+itoa(pet.ID), alice, gin.H{"neutered": true})
			require.Equal(t, http.StatusOK, w.Code)
			w = app.do(http.MethodGet, "/api/pets/", alice, nil)
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
			require.Len(t, list, 1)
			assert.True(t, list[0].Neutered)

			// 他人のペットは見えない
			w = app.do(http.MethodGet, "/api/pets/"+itoa(pet.ID), bob, nil)
			assert.Equal(t, http.StatusNotFound, w.Code)
			w = app.do(http.MethodDelete, "/api/pets/"+itoa(pet.ID), bob, nil)
			assert.Equal(t, http.StatusNotFound, w.Code)
			w = app.do(http.MethodGet, "/api/pets/", bob, nil)
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
			assert.Empty(t, list)

			w = app.do(http.MethodGet, "/api/pets/", "", nil)
			assert.Equal(t, http.StatusForbidden, w.Code)

			w = app.do(http.MethodDelete, "/api/pets/"+itoa(pet.ID), alice, nil)
			assert.Equal(t, http.StatusNoContent, w.Code)
			w = app.do(http.MethodGet, "/api/pets/", alice, nil)
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
			assert.Empty(t, list)
		})
	}
}

// TestApp_PlatformEndpoints はヘルスチェック、レディネス、メトリクスを検証します。
func TestApp_PlatformEndpoints(t *testing.T) {
	app := newTestApp(t, true)

	w := app.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = app.do(http.MethodGet, "/readyz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"redis":"ok"`)

	app.do(http.MethodGet, "/api/pets/", "", nil)
	w = app.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `petcare_auth_gate_rejections_total{reason="missing_credentials"} 1`)

	app.redis.Close()
	w = app.do(http.MethodGet, "/readyz", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

// TestApp_CORS は全てのオリジンからのプリフライトが許可されることを検証します。
func TestApp_CORS(t *testing.T) {
	app := newTestApp(t, false)

	req := httptest.NewRequest(http.MethodOptions, "/api/pets/", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	w := httptest.NewRecorder()
	app.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
