package authsvc

import (
	"context"
	"strings"
	"time"

	authdto "github.com/doilonvl/salathai-be-demo/internal/api/auth/dto"
	models "github.com/doilonvl/salathai-be-demo/internal/api/auth/models"
	basesvc "github.com/doilonvl/salathai-be-demo/internal/api/base/service"
	"github.com/doilonvl/salathai-be-demo/internal/common"
	"github.com/doilonvl/salathai-be-demo/internal/global"
	"github.com/doilonvl/salathai-be-demo/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserService là cấu trúc chứa các phương thức liên quan đến tài khoản quản trị
type UserService struct {
	*basesvc.BaseServiceMongoImpl[models.User]
}

// NewUserService tạo mới UserService trên collection users
func NewUserService(db *mongo.Database) *UserService {
	return &UserService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.User](db.Collection(global.MongoDB_ColNames.Users)),
	}
}

// NormalizeEmail email luôn được lưu và tra cứu ở dạng chữ thường
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// GetByEmail tìm user theo email
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.FindOne(ctx, bson.M{"email": NormalizeEmail(email)}, nil)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID tìm user theo id dạng hex, id sai định dạng coi như không tồn tại
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, common.ErrNotFound
	}
	user, err := s.FindOneById(ctx, oid)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create tạo tài khoản local, mật khẩu được băm với cost cho trước
func (s *UserService) Create(ctx context.Context, input *authdto.UserCreateInput, cost int) (*models.User, error) {
	hash, err := HashPassword(input.Password, cost)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if !models.ValidRole(role) {
		role = models.RoleSuperAdmin
	}

	user, err := s.InsertOne(ctx, models.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        NormalizeEmail(input.Email),
		PasswordHash: hash,
		Provider:     models.ProviderLocal,
		Role:         role,
		IsActive:     true,
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// TouchLastLogin cập nhật lastLoginAt sau khi đăng nhập thành công
func (s *UserService) TouchLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	_, err := s.UpdateById(ctx, id, bson.M{"lastLoginAt": at})
	return err
}

// EnsureSuperAdmin tạo super admin đầu tiên nếu email chưa tồn tại.
// Trả về true khi có tài khoản mới được tạo.
func (s *UserService) EnsureSuperAdmin(ctx context.Context, name, email, password string, cost int) (bool, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return false, nil
	}

	exists, err := s.DocumentExists(ctx, bson.M{"email": NormalizeEmail(email)})
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	user, err := s.Create(ctx, &authdto.UserCreateInput{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     models.RoleSuperAdmin,
	}, cost)
	if err != nil {
		return false, err
	}

	logger.WithModule("auth").WithField("email", user.Email).Info("Đã tạo tài khoản super admin")
	return true, nil
}
