// Package session 维护会话计数并写入统计日志
package session

import (
	"math"
	"sync/atomic"
	"time"
)

// Counters 会话计数器，可在信号处理路径中安全使用
type Counters struct {
	attempts atomic.Int64
	hits     atomic.Int64
	misses   atomic.Int64
}

// Attempt 开始一次循环
func (c *Counters) Attempt() { c.attempts.Add(1) }

// Hit 成功点击一个地标
func (c *Counters) Hit() { c.hits.Add(1) }

// Miss 未找到地标
func (c *Counters) Miss() { c.misses.Add(1) }

// Snapshot 统计快照
type Snapshot struct {
	Attempts    int64   `json:"attempts"`
	Hits        int64   `json:"hits"`
	Misses      int64   `json:"misses"`
	Total       int64   `json:"total"`
	SuccessRate float64 `json:"success_rate"`
	SkipRate    float64 `json:"skip_rate"`
}

// Snapshot 获取当前统计
func (c *Counters) Snapshot() Snapshot {
	return NewSnapshot(c.attempts.Load(), c.hits.Load(), c.misses.Load())
}

// NewSnapshot 由计数构建快照，百分比保留一位小数，无数据时为 0
func NewSnapshot(attempts, hits, misses int64) Snapshot {
	s := Snapshot{
		Attempts: attempts,
		Hits:     hits,
		Misses:   misses,
		Total:    hits + misses,
	}
	if s.Total > 0 {
		s.SuccessRate = percent(s.Hits, s.Total)
		s.SkipRate = percent(s.Misses, s.Total)
	}
	return s
}

func percent(n, total int64) float64 {
	return math.Round(float64(n)/float64(total)*1000) / 10
}

// Report 会话报告
type Report struct {
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Loops       int       `json:"loops"`
	Interrupted bool      `json:"interrupted"`
	Stats       Snapshot  `json:"stats"`
}

// Duration 会话时长
func (r Report) Duration() time.Duration {
	if r.End.Before(r.Start) {
		return 0
	}
	return r.End.Sub(r.Start)
}
