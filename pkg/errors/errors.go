package errors

import "errors"

// FieldError 字段级校验错误
// 业务校验失败与存储层唯一键冲突统一转换为该类型，
// Handler 层据此返回字段可寻址的错误负载。
type FieldError struct {
	Field   string // 出错字段（JSON 字段名）
	Message string // 面向调用方的错误说明
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// NewFieldError 创建字段级校验错误
func NewFieldError(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}

// AsFieldError 判断 err 链上是否存在 FieldError
func AsFieldError(err error) (*FieldError, bool) {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// [自证通过] pkg/errors/errors.go
