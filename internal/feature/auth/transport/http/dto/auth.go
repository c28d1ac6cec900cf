// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import "catalog_backend/internal/feature/auth/domain/entity"

// SignupReq は/signupエンドポイントのJSONリクエストボディを表します。
// パスワード長の検証はユースケース側で行います。
type SignupReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SigninForm は/signinエンドポイントのフォームボディを表します。
// username にはメールアドレスを指定します。
type SigninForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// TokenResponse はサインイン成功時のレスポンスです。
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserResponse はユーザーの公開用表現です。パスワードハッシュは含みません。
type UserResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

// ToUserResponse はUserエンティティをレスポンス形式に変換します。
func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email}
}
