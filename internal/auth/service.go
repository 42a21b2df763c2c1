package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/fcbarera0210/biomachinis/internal/model/user"
	"github.com/fcbarera0210/biomachinis/pkg/response"
)

type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// Login 邮箱+密码登录
func (s *AuthService) Login(req LoginRequest) (*LoginResponse, *response.BusinessError) {
	// 1. 查询用户
	var foundUser user.User
	result := s.db.Where("email = ?", req.Email).First(&foundUser)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, response.NewBusinessError(
				response.WithErrorCode(response.Fail),
				response.WithErrorMessage("邮箱或密码错误"),
			)
		}
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("登录失败"),
			response.WithError(result.Error),
		)
	}

	// 2. 停用的账号不允许登录
	if !foundUser.IsActive {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Forbidden),
			response.WithErrorMessage("账号已被停用"),
		)
	}

	// 3. 校验密码
	if err := bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(req.Password)); err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("邮箱或密码错误"),
		)
	}

	// 4. 生成访问令牌
	accessToken, err := GenerateAccessToken(foundUser.ID, foundUser.Name, foundUser.Email)
	if err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("生成访问令牌失败"),
			response.WithError(err),
		)
	}

	return &LoginResponse{
		AccessToken: accessToken,
		User: &Identity{
			ID:    foundUser.ID,
			Name:  foundUser.Name,
			Email: foundUser.Email,
		},
	}, nil
}
