// Package messages 加载消息列表并随机选取
package messages

import (
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"sync"
)

// Fallback 消息列表为空时使用的消息
const Fallback = "No jokes available"

// Load 读取消息文件，每行一条
// 读取失败时返回空列表和错误，调用方记录错误后继续运行
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return []string{}, fmt.Errorf("读取消息文件失败: %w", err)
	}
	return SplitLines(string(data)), nil
}

// SplitLines 按行切分，兼容 \r\n 和 \r，不保留末尾空行
func SplitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return []string{}
	}
	return strings.Split(s, "\n")
}

// Picker 从消息列表中均匀随机选取
type Picker struct {
	mu       sync.Mutex
	messages []string
	rng      *rand.Rand
}

// NewPicker 创建选取器，src 为 nil 时使用随机种子
func NewPicker(messages []string, src rand.Source) *Picker {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Picker{
		messages: messages,
		rng:      rand.New(src),
	}
}

// Pick 随机选取一条消息，列表为空时返回 Fallback
func (p *Picker) Pick() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.messages) == 0 {
		return Fallback
	}
	return p.messages[p.rng.IntN(len(p.messages))]
}

// Len 消息数量
func (p *Picker) Len() int {
	return len(p.messages)
}
