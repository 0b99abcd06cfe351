package warehouseapi

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/stockbill/internal/auth"
	"github.com/talkincode/stockbill/internal/domain"
	"github.com/talkincode/stockbill/internal/webserver"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type credentialsPayload struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=128"`
}

func registerUserRoutes(s *webserver.Server) {
	s.PubPOST("/auth/login", login)
	s.PubPOST("/users/hash/register", registerHashedUser)
	s.PubPOST("/users/hash/login", loginHashedUser)
	s.PubPOST("/users/encrypt/register", registerEncryptedUser)
	s.PubPOST("/users/encrypt/login", loginEncryptedUser)
}

func bindCredentials(c echo.Context) (*credentialsPayload, error) {
	var payload credentialsPayload
	if err := c.Bind(&payload); err != nil {
		return nil, fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse credentials", err.Error())
	}
	payload.Email = strings.TrimSpace(payload.Email)
	if err := c.Validate(&payload); err != nil {
		return nil, handleValidationError(c, err)
	}
	return &payload, nil
}

// unauthorized is the single answer for unknown users and wrong passwords
func unauthorized(c echo.Context) error {
	return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid email or password", nil)
}

func findUser(c echo.Context, email string) (*domain.User, error) {
	var user domain.User
	err := GetDB(c).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// checkUser answers 401 or 500 when the lookup failed, nil user meaning a response was written
func checkUser(c echo.Context, email string) (*domain.User, error) {
	user, err := findUser(c, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, unauthorized(c)
	} else if err != nil {
		return nil, fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query user", err.Error())
	}
	return user, nil
}

// @Summary Log in and receive a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body credentialsPayload true "Credentials"
// @Success 200 {object} auth.LoginResponse
// @Failure 401 {object} webserver.ErrorResponse
// @Router /api/auth/login [post]
func login(c echo.Context) error {
	payload, err := bindCredentials(c)
	if payload == nil {
		return err
	}
	user, err := checkUser(c, payload.Email)
	if user == nil {
		return err
	}
	if user.Salt == "" || !auth.VerifyPassword(payload.Password, user.Salt, user.Password) {
		return unauthorized(c)
	}

	cfg := appContext(c).Config()
	tokens, err := auth.NewTokenService(cfg.Auth.JwtSecret, time.Duration(cfg.Auth.TokenDays)*24*time.Hour)
	if err != nil {
		return err
	}
	resp, err := tokens.Issue(user.Email)
	if err != nil {
		return err
	}
	zap.L().Info("user logged in", zap.String("email", user.Email))
	return ok(c, resp)
}

// createUser relies on the unique email index to reject duplicates
func createUser(c echo.Context, user *domain.User) error {
	err := GetDB(c).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fail(c, http.StatusConflict, "DUPLICATE_EMAIL", "Email is already registered", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create user", err.Error())
	}
	return ok(c, user)
}

// @Summary Register a user with a salted password hash
// @Tags users
// @Param request body credentialsPayload true "Credentials"
// @Success 200 {object} domain.User
// @Failure 409 {object} webserver.ErrorResponse
// @Router /api/users/hash/register [post]
func registerHashedUser(c echo.Context) error {
	payload, err := bindCredentials(c)
	if payload == nil {
		return err
	}
	hashed, err := auth.Hash(payload.Password, "")
	if err != nil {
		return err
	}
	return createUser(c, &domain.User{
		Email:    payload.Email,
		Password: hashed.Hash,
		Salt:     hashed.Salt,
	})
}

// @Summary Check a password against its salted hash
// @Tags users
// @Param request body credentialsPayload true "Credentials"
// @Success 200
// @Failure 401 {object} webserver.ErrorResponse
// @Router /api/users/hash/login [post]
func loginHashedUser(c echo.Context) error {
	payload, err := bindCredentials(c)
	if payload == nil {
		return err
	}
	user, err := checkUser(c, payload.Email)
	if user == nil {
		return err
	}
	if user.Salt == "" || !auth.VerifyPassword(payload.Password, user.Salt, user.Password) {
		return unauthorized(c)
	}
	return ok(c, map[string]string{"email": user.Email})
}

func protector(c echo.Context) *auth.Protector {
	return auth.NewProtector(appContext(c).Config().Auth.EncryptionKey)
}

// @Summary Register a user with an encrypted password
// @Tags users
// @Param request body credentialsPayload true "Credentials"
// @Success 200 {object} domain.User
// @Failure 409 {object} webserver.ErrorResponse
// @Router /api/users/encrypt/register [post]
func registerEncryptedUser(c echo.Context) error {
	payload, err := bindCredentials(c)
	if payload == nil {
		return err
	}
	protected, err := protector(c).Protect(payload.Password)
	if err != nil {
		return err
	}
	return createUser(c, &domain.User{
		Email:    payload.Email,
		Password: protected,
	})
}

// @Summary Check a password by decrypting the stored one
// @Tags users
// @Param request body credentialsPayload true "Credentials"
// @Success 200
// @Failure 401 {object} webserver.ErrorResponse
// @Router /api/users/encrypt/login [post]
func loginEncryptedUser(c echo.Context) error {
	payload, err := bindCredentials(c)
	if payload == nil {
		return err
	}
	user, err := checkUser(c, payload.Email)
	if user == nil {
		return err
	}
	plain, err := protector(c).Unprotect(user.Password)
	if err != nil {
		return unauthorized(c)
	}
	if subtle.ConstantTimeCompare([]byte(plain), []byte(payload.Password)) != 1 {
		return unauthorized(c)
	}
	return ok(c, map[string]string{"email": user.Email})
}
