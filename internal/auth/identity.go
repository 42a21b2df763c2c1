// Package auth 登录与当前用户身份
package auth

// Identity 当前请求的用户身份
// 所有变更操作都显式传入，不使用全局的"当前用户"状态；
// 为 nil 表示未认证
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
