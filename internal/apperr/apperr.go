// Package apperr 提供对外操作统一的错误分类
package apperr

import (
	"errors"
	"fmt"
)

// Kind 错误类别
type Kind string

const (
	// Unauthenticated 调用者未认证
	Unauthenticated Kind = "unauthenticated"
	// InvalidArgument 缺失或格式错误的字段
	InvalidArgument Kind = "invalid-argument"
	// PermissionDenied 调用者与资源归属不匹配
	PermissionDenied Kind = "permission-denied"
	// NotFound 目标记录不存在
	NotFound Kind = "not-found"
	// Internal 远端服务失败或未预期的内部错误
	Internal Kind = "internal"
)

// Error 已分类错误，Message 对用户安全
type Error struct {
	Kind    Kind
	Message string
	err     error
}

// New 创建已分类错误
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap 包装底层错误并分类，底层错误不跨越操作边界暴露
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, err: err}
}

// Error 实现 error 接口
func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap 返回底层错误
func (e *Error) Unwrap() error {
	return e.err
}

// KindOf 返回错误的类别，未分类错误视为 Internal
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

// MessageOf 返回错误的用户安全消息，未分类错误返回给定的兜底消息
func MessageOf(err error, fallback string) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return fallback
}

// EnsureInternal 保证错误已分类：已分类错误原样透传（不重复包装），
// 其余包装为 Internal
func EnsureInternal(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}
	return Wrap(Internal, message, err)
}
