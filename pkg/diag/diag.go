// Package diag 提供引擎的诊断日志
//
// 只有两个级别：
//   - Urgent: 构造错误、无法恢复的配置问题（总是输出）
//   - Info:   资源缺失等可降级的情况（仅在 verbose 模式下输出）
//
// 每个包通过 For("Tag") 获取带前缀的 Logger，与 "[Tag] ..." 风格保持一致。
package diag

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

var root = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	TimeFormat:      "15:04:05.000",
	Level:           log.ErrorLevel,
})

// Logger 带前缀的诊断输出
// 前缀在输出时才附加，保证 SetVerbose/SetOutput 对已创建的 Logger 生效
type Logger struct {
	tag string
}

// For 返回带 tag 前缀的 Logger
func For(tag string) Logger {
	return Logger{tag: tag}
}

// SetVerbose 切换是否输出 Info 级别
func SetVerbose(verbose bool) {
	if verbose {
		root.SetLevel(log.InfoLevel)
	} else {
		root.SetLevel(log.ErrorLevel)
	}
}

// SetOutput 重定向输出（测试中使用 io.Discard 或 bytes.Buffer）
func SetOutput(w io.Writer) {
	root.SetOutput(w)
}

// Urgent 输出紧急诊断
func (lg Logger) Urgent(msg string, keyvals ...interface{}) {
	root.WithPrefix(lg.tag).Error(msg, keyvals...)
}

// Info 输出一般诊断
func (lg Logger) Info(msg string, keyvals ...interface{}) {
	root.WithPrefix(lg.tag).Info(msg, keyvals...)
}
