// Package notify 内容变更通知
// 变更服务在每次成功写入后发出一次通知，渲染/缓存层据此失效对应页面。
// 通知是尽力而为的：失败只记录日志，不影响写入结果。
package notify

import "log"

// Notifier 内容变更监听接口
type Notifier interface {
	// ContentChanged 按页面路径通知内容已变更
	ContentChanged(paths ...string)
}

// Nop 空实现，测试和无缓存部署时使用
type Nop struct{}

func (Nop) ContentChanged(paths ...string) {}

// Logger 仅记录日志的实现
type Logger struct{}

func (Logger) ContentChanged(paths ...string) {
	log.Printf("[biomachinis] 内容变更: %v", paths)
}
