package response

import (
	"errors"
	"testing"
)

// TestSuccessResponse 成功信封固定 code 和 message
func TestSuccessResponse(t *testing.T) {
	resp := SuccessResponse(map[string]string{"k": "v"})

	if resp.Code != Success {
		t.Errorf("SuccessResponse code = %d, want %d", resp.Code, Success)
	}
	if resp.Message != "success" {
		t.Errorf("SuccessResponse message = %q, want %q", resp.Message, "success")
	}
	if resp.Data == nil {
		t.Error("SuccessResponse data should carry the payload")
	}
}

// TestBusinessErrorResponse 业务错误转信封，内部错误不外泄
func TestBusinessErrorResponse(t *testing.T) {
	be := NewBusinessError(
		WithErrorCode(DuplicateSlug),
		WithErrorMessage("生成的 slug 已被占用"),
		WithError(errors.New("pq: duplicate key value violates unique constraint")),
	)

	resp := BusinessErrorResponse(be)

	if resp.Code != DuplicateSlug {
		t.Errorf("BusinessErrorResponse code = %d, want %d", resp.Code, DuplicateSlug)
	}
	if resp.Message != "生成的 slug 已被占用" {
		t.Errorf("BusinessErrorResponse message = %q", resp.Message)
	}
	if resp.Data != nil {
		t.Error("error response must not carry data")
	}
}

// TestBusinessErrorUnwrap BusinessError 实现 error 且可解包到底层错误
func TestBusinessErrorUnwrap(t *testing.T) {
	inner := errors.New("connection reset")
	be := NewBusinessError(
		WithErrorCode(Fail),
		WithErrorMessage("获取文章失败"),
		WithError(inner),
	)

	if be.Error() != "获取文章失败" {
		t.Errorf("Error() = %q, want user-facing message", be.Error())
	}
	if !errors.Is(be, inner) {
		t.Error("errors.Is should reach the wrapped error")
	}
}
