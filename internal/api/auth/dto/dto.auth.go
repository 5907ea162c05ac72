// Package authdto chứa các input của domain auth.
package authdto

// LoginInput dữ liệu đăng nhập.
// Thiếu email hoặc mật khẩu được service báo lỗi riêng, không dùng tag required.
type LoginInput struct {
	Email    string `json:"email" validate:"omitempty,max=160"`
	Password string `json:"password" validate:"omitempty,max=200"`
}

// RefreshInput refresh token gửi trong body khi client không dùng cookie
type RefreshInput struct {
	RefreshToken string `json:"refreshToken"`
}

// UserCreateInput tạo tài khoản quản trị (dùng khi seed)
type UserCreateInput struct {
	Name     string `json:"name" validate:"omitempty,max=100"`
	Email    string `json:"email" validate:"required,email,max=160"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=super_admin editor"`
}
