package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fcbarera0210/biomachinis/config"
	"github.com/fcbarera0210/biomachinis/internal/testutils"
	"github.com/fcbarera0210/biomachinis/pkg/response"
)

func setupTestConfig() {
	if config.Conf == nil {
		config.Conf = &config.AppConfig{}
	}
	if config.Conf.JWT.Secret == "" {
		config.Conf.JWT.Secret = "test-secret-key-for-testing-only"
		config.Conf.JWT.ExpireTime = 1
	}
}

// TestAuthServiceLogin 测试邮箱密码登录
func TestAuthServiceLogin(t *testing.T) {
	setupTestConfig()

	db := testutils.SetupTestDB(t)
	service := NewAuthService(db)

	testUser := testutils.CreateTestUser(db, testutils.WithPassword("password123"))
	inactive := testutils.CreateTestUser(db,
		testutils.WithPassword("password123"),
		testutils.WithInactive(),
	)

	tests := []struct {
		name         string
		req          LoginRequest
		expectError  bool
		expectedCode response.ResponseCode
		errorMsg     string
	}{
		{
			name: "successful login",
			req:  LoginRequest{Email: testUser.Email, Password: "password123"},
		},
		{
			name:         "wrong password",
			req:          LoginRequest{Email: testUser.Email, Password: "wrongpassword"},
			expectError:  true,
			expectedCode: response.Fail,
			errorMsg:     "邮箱或密码错误",
		},
		{
			name:         "unknown email",
			req:          LoginRequest{Email: "nadie@example.com", Password: "password123"},
			expectError:  true,
			expectedCode: response.Fail,
			errorMsg:     "邮箱或密码错误",
		},
		{
			name:         "inactive account",
			req:          LoginRequest{Email: inactive.Email, Password: "password123"},
			expectError:  true,
			expectedCode: response.Forbidden,
			errorMsg:     "账号已被停用",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, bizErr := service.Login(tt.req)

			if tt.expectError {
				if assert.NotNil(t, bizErr) {
					assert.Equal(t, tt.expectedCode, bizErr.Code)
					assert.Equal(t, tt.errorMsg, bizErr.Msg)
				}
				return
			}

			assert.Nil(t, bizErr)
			assert.NotEmpty(t, resp.AccessToken)
			assert.Equal(t, testUser.ID, resp.User.ID)
			assert.Equal(t, testUser.Email, resp.User.Email)

			// 令牌能解析回同一身份
			claims, err := ParseAccessToken(resp.AccessToken)
			assert.NoError(t, err)
			assert.Equal(t, testUser.ID, claims.UserID)
		})
	}
}

// TestAccessTokenRoundTrip 令牌生成与解析
func TestAccessTokenRoundTrip(t *testing.T) {
	setupTestConfig()

	token, err := GenerateAccessToken("user-1", "Nombre", "n@example.com")
	assert.NoError(t, err)

	claims, err := ParseAccessToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "Nombre", claims.Name)
	assert.Equal(t, "n@example.com", claims.Email)

	identity := claims.Identity()
	assert.Equal(t, "user-1", identity.ID)
}

// TestParseAccessTokenInvalid 非法令牌被拒绝
func TestParseAccessTokenInvalid(t *testing.T) {
	setupTestConfig()

	tests := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"garbage token", "not-a-jwt"},
		{"tampered token", "eyJhbGciOiJIUzI1NiJ9.eyJ1c2VyX2lkIjoiMSJ9.invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAccessToken(tt.token)
			assert.Error(t, err)
		})
	}
}
