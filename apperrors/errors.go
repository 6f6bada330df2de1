// Package apperrors 定义热路径客户端的错误分类。
// 所有错误都必须携带足够的上下文（字段名、数值、HTTP 状态码），
// 调用方无需重新推导状态即可采取行动。
package apperrors

import (
	"errors"
	"fmt"
)

// Kind 错误类别，决定调用方的处理策略。
type Kind uint8

const (
	// KindUnknown 未分类错误。
	KindUnknown Kind = iota
	// KindConfig 配置错误：致命，立即暴露，永不重试。
	KindConfig
	// KindValidation 校验错误：本次调用致命，需调用方修正输入。
	KindValidation
	// KindStatus HTTP 非 2xx 响应。
	KindStatus
	// KindTransport 网络或解码失败。
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindValidation:
		return "validation"
	case KindStatus:
		return "status"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// Error 带类别的错误。HTTPStatus 仅在 KindStatus 下有意义。
type Error struct {
	kind   Kind
	msg    string
	status int
	cause  error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.cause }

// Kind 返回错误类别。
func (e *Error) Kind() Kind { return e.kind }

// HTTPStatus 返回触发错误的 HTTP 状态码，非 Status 错误返回 0。
func (e *Error) HTTPStatus() int { return e.status }

// Configf 构造配置错误。
func Configf(format string, args ...any) *Error {
	return &Error{kind: KindConfig, msg: fmt.Sprintf(format, args...)}
}

// Validationf 构造校验错误。
func Validationf(format string, args ...any) *Error {
	return &Error{kind: KindValidation, msg: fmt.Sprintf(format, args...)}
}

// StatusErr 构造 HTTP 状态错误，body 取服务端返回的原始内容。
func StatusErr(status int, body string) *Error {
	return &Error{
		kind:   KindStatus,
		msg:    fmt.Sprintf("unexpected status %d: %s", status, body),
		status: status,
	}
}

// Transportf 包装网络/解码失败。
func Transportf(cause error, format string, args ...any) *Error {
	return &Error{kind: KindTransport, msg: fmt.Sprintf(format, args...), cause: cause}
}

// KindOf 提取错误类别；非 *Error 返回 KindUnknown。
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindUnknown
}

// IsStatus 判断错误是否为 HTTP 状态类错误。
// 只有这一类错误允许触发 create→derive 的回退。
func IsStatus(err error) bool { return KindOf(err) == KindStatus }
