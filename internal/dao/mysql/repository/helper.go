package repository

import (
	"errors"
	"fmt"

	"travel_together_server/pkg/errorx"

	"gorm.io/gorm"
)

// wrapDBError 将 GORM 错误包装为带业务错误码的 CodeError
// 记录未命中映射为 CodeNotFound，其余映射为 CodeDBError
func wrapDBError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorx.Wrap(err, errorx.CodeNotFound, msg)
	}
	return errorx.Wrap(err, errorx.CodeDBError, msg)
}

// wrapDBErrorf 同 wrapDBError，支持格式化消息
func wrapDBErrorf(err error, format string, args ...any) error {
	return wrapDBError(err, fmt.Sprintf(format, args...))
}
