package warehouseapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/stockbill/internal/auth"
	"github.com/talkincode/stockbill/internal/domain"
)

func credentials(email, password string) map[string]string {
	return map[string]string{"email": email, "password": password}
}

func TestLoginIssuesTokenWithEmailClaim(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(http.MethodPost, "/api/users/hash/register", credentials("ana@example.com", "s3cret!"), false)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(http.MethodPost, "/api/auth/login", credentials("ana@example.com", "s3cret!"), false)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp auth.LoginResponse
	decode(t, rec, &resp)
	assert.Equal(t, "ana@example.com", resp.Email)

	tokens, err := auth.NewTokenService(testSecret, 0)
	require.NoError(t, err)
	claims, err := tokens.Parse(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", claims.Email)

	// the issued token opens secured routes
	env.token = resp.Token
	rec = env.do(http.MethodGet, "/api/families", nil, true)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginFailuresLookTheSame(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(http.MethodPost, "/api/users/hash/register", credentials("ana@example.com", "s3cret!"), false)
	require.Equal(t, http.StatusOK, rec.Code)

	wrongPassword := env.do(http.MethodPost, "/api/auth/login", credentials("ana@example.com", "nope"), false)
	unknownEmail := env.do(http.MethodPost, "/api/auth/login", credentials("bob@example.com", "s3cret!"), false)

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestRegisterHidesSecretsAndRejectsDuplicates(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(http.MethodPost, "/api/users/hash/register", credentials("ana@example.com", "s3cret!"), false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "salt")

	var stored domain.User
	require.NoError(t, env.db().Where("email = ?", "ana@example.com").First(&stored).Error)
	assert.NotEqual(t, "s3cret!", stored.Password)
	assert.NotEmpty(t, stored.Salt)

	rec = env.do(http.MethodPost, "/api/users/hash/register", credentials("ana@example.com", "other"), false)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "DUPLICATE_EMAIL", errorCode(t, rec))
}

func TestRegisterValidatesPayload(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(http.MethodPost, "/api/users/hash/register", credentials("not-an-email", "x"), false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))
}

func TestHashLogin(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, http.StatusOK,
		env.do(http.MethodPost, "/api/users/hash/register", credentials("ana@example.com", "s3cret!"), false).Code)

	assert.Equal(t, http.StatusOK,
		env.do(http.MethodPost, "/api/users/hash/login", credentials("ana@example.com", "s3cret!"), false).Code)
	assert.Equal(t, http.StatusUnauthorized,
		env.do(http.MethodPost, "/api/users/hash/login", credentials("ana@example.com", "wrong"), false).Code)
}

func TestEncryptFlow(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(http.MethodPost, "/api/users/encrypt/register", credentials("eva@example.com", "clave"), false)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var stored domain.User
	require.NoError(t, env.db().Where("email = ?", "eva@example.com").First(&stored).Error)
	assert.NotEqual(t, "clave", stored.Password)
	assert.Empty(t, stored.Salt)

	assert.Equal(t, http.StatusOK,
		env.do(http.MethodPost, "/api/users/encrypt/login", credentials("eva@example.com", "clave"), false).Code)
	assert.Equal(t, http.StatusUnauthorized,
		env.do(http.MethodPost, "/api/users/encrypt/login", credentials("eva@example.com", "other"), false).Code)
	// an encrypted account cannot obtain a token through the hash check
	assert.Equal(t, http.StatusUnauthorized,
		env.do(http.MethodPost, "/api/auth/login", credentials("eva@example.com", "clave"), false).Code)
}

func TestConcurrentRegistrationsConflict(t *testing.T) {
	env := newTestEnv(t)
	body, err := json.Marshal(credentials("race@example.com", "s3cret!"))
	require.NoError(t, err)

	const workers = 8
	codes := make([]int, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/users/hash/register", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		wg.Add(1)
		go func(i int, req *http.Request) {
			defer wg.Done()
			codes[i] = env.send(req, false).Code
		}(i, req)
	}
	wg.Wait()

	var created, conflicts int
	for _, code := range codes {
		switch code {
		case http.StatusOK:
			created++
		case http.StatusConflict:
			conflicts++
		}
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, workers-1, conflicts)

	// the encrypt flow shares the same accounts
	rec := env.do(http.MethodPost, "/api/users/encrypt/register", credentials("race@example.com", "clave"), false)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "DUPLICATE_EMAIL", errorCode(t, rec))
}
