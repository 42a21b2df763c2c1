package response

// 业务错误码
const (
	// 失败
	Fail ResponseCode = 0
	// 参数解析错误
	ParseError ResponseCode = 1
	// 参数错误
	InvalidParameter ResponseCode = 2
	// 未认证
	Unauthorized ResponseCode = 3
	// 无权限
	Forbidden ResponseCode = 4
	// 资源不存在
	NotFound ResponseCode = 5
	// 名称重复
	DuplicateName ResponseCode = 6
	// slug重复
	DuplicateSlug ResponseCode = 7
	// 邮箱重复
	DuplicateEmail ResponseCode = 8
	// 禁止删除自己
	SelfDeletion ResponseCode = 9
	// 并发冲突，可重试
	Conflict ResponseCode = 10
)

type BusinessError struct {
	Code ResponseCode
	Msg  string
	Err  error
}

func (be *BusinessError) Error() string {
	return be.Msg
}

func (be *BusinessError) Unwrap() error {
	return be.Err
}

type ErrorOption func(*BusinessError)

func WithErrorCode(code ResponseCode) ErrorOption {
	return func(be *BusinessError) {
		be.Code = code
	}
}

func WithErrorMessage(msg string) ErrorOption {
	return func(be *BusinessError) {
		be.Msg = msg
	}
}

func WithError(err error) ErrorOption {
	return func(be *BusinessError) {
		be.Err = err
	}
}

func NewBusinessError(opts ...ErrorOption) *BusinessError {
	err := &BusinessError{
		Code: Fail,
		Msg:  "business error",
		Err:  nil,
	}
	for _, opt := range opts {
		opt(err)
	}
	return err
}
