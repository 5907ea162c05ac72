package models

import "github.com/dgrijalva/jwt-go"

// Claims dữ liệu mã hóa trong access/refresh token.
// Subject là id của user, refresh token có thêm Id (jti) để mỗi lần cấp là một token khác nhau.
type Claims struct {
	Role string `json:"role"`
	jwt.StandardClaims
}
