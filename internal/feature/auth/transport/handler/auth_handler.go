// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"catalog_backend/internal/api"
	"catalog_backend/internal/feature/auth/domain/entity"
	"catalog_backend/internal/feature/auth/transport/http/dto"
	jwtmw "catalog_backend/internal/platform/jwt"
	"catalog_backend/internal/shared/apperr"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Signup は指定されたメールアドレスとパスワードで新規ユーザーを登録します。
	Signup(ctx context.Context, email, password string) (*entity.User, error)
	// Signin はユーザーを認証し、成功時にアクセストークンを返します。
	Signin(ctx context.Context, email, password string) (string, error)
	// Me は認証済みユーザーを返します。
	Me(ctx context.Context, id uint) (*entity.User, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup はユーザー登録APIエンドポイントを処理します。
// - リクエストJSONをSignupReqにバインド
// - バリデーションエラー時は400を返却
// - メール重複時は409を返却
// - 成功時は201とユーザー情報を返却
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	user, err := h.auth.Signup(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("signup failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		api.WriteError(c, err)
		return
	}
	slog.Info("user signup successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// Signin はフォーム形式のログインを処理します。
// 未登録メールと誤ったパスワードは同じ401を返します。
func (h *AuthHandler) Signin(c *gin.Context) {
	var form dto.SigninForm
	if err := c.ShouldBind(&form); err != nil {
		slog.Warn("signin validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	token, err := h.auth.Signin(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, apperr.ErrUnauthorized) {
			// ユーザー列挙攻撃を防止するため、実際のエラーを公開しない
			slog.Warn("signin failed", "error", err, "remote_addr", c.ClientIP())
			c.Header("WWW-Authenticate", "Bearer")
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "incorrect email or password"})
			return
		}
		slog.Error("signin failed unexpectedly", "error", err, "remote_addr", c.ClientIP())
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Me は認証済みユーザーのプロフィールを返します。
func (h *AuthHandler) Me(c *gin.Context) {
	id, ok := jwtmw.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "could not validate credentials"})
		return
	}
	user, err := h.auth.Me(c.Request.Context(), id)
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
