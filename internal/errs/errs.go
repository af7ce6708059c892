package errs

import (
	"errors"
	"fmt"
)

// Kind 错误类别
type Kind string

const (
	InvalidInput      Kind = "invalid_input"      // URL/用户名格式错误、空的职位描述等
	ConfigError       Kind = "config_error"       // 缺少上游凭证
	UpstreamError     Kind = "upstream_error"     // 外部API返回非成功状态
	ParseError        Kind = "parse_error"        // 文件内容无法读取或提取后为空
	GatewayError      Kind = "gateway_error"      // LLM调用失败
	MalformedResponse Kind = "malformed_response" // LLM返回非JSON或结构不符
	MissingProfile    Kind = "missing_profile"    // gap分析时没有已保存的档案
	EmptyInput        Kind = "empty_input"
)

// Error 带类别标记的错误
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New 创建指定类别的错误
func New(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// Wrap 包装已有错误
func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: err}
}

// KindOf 获取错误类别，非本包错误返回空串
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is 判断错误是否属于指定类别
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
