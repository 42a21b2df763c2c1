// Package response 统一的响应信封和业务错误
// 所有接口的 HTTP 状态恒为 200，业务结果由 code 表达：
// Success(100) 表示成功，0~10 为各类业务失败（见 errors.go）。
// 前端据 code 分支处理，message 直接面向用户展示。
package response

type ResponseCode int

// 统一业务代码
const (
	Success = 100
)

// Response 响应信封
// Data 仅在成功时携带载荷，错误响应的 Data 恒为 nil
type Response struct {
	Message string       `json:"message"`
	Code    ResponseCode `json:"code"`
	Data    any          `json:"data"`
}

type ResponseOptions func(*Response)

func WithMessage(message string) ResponseOptions {
	return func(r *Response) {
		r.Message = message
	}
}

func WithCode(code ResponseCode) ResponseOptions {
	return func(r *Response) {
		r.Code = code
	}
}

func WithData(data any) ResponseOptions {
	return func(r *Response) {
		r.Data = data
	}
}

func CustomResponse(opts ...ResponseOptions) Response {
	response := Response{}
	for _, opt := range opts {
		opt(&response)
	}
	return response
}

func SuccessResponse(data any) Response {
	return Response{
		Message: "success",
		Code:    Success,
		Data:    data,
	}
}

func ErrorResponse(code ResponseCode, msg string) Response {
	return Response{
		Message: msg,
		Code:    code,
		Data:    nil,
	}
}

// BusinessErrorResponse 把业务错误转成响应信封
// 内部错误（Err 字段）不外泄，只返回面向用户的 message
func BusinessErrorResponse(be *BusinessError) Response {
	return ErrorResponse(be.Code, be.Msg)
}
