// Package process 提供目标应用的进程检查
package process

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

// ErrNotRunning 目标进程未运行
var ErrNotRunning = errors.New("目标进程未运行")

// Info 进程信息
type Info struct {
	PID  int32  `json:"pid"`
	Name string `json:"name"`
	Path string `json:"path"`
}

// List 获取所有可读取名称的进程
func List() ([]Info, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, fmt.Errorf("获取进程列表失败: %w", err)
	}

	infos := make([]Info, 0, len(procs))
	for _, proc := range procs {
		name, err := proc.Name()
		if err != nil {
			continue
		}
		exe, _ := proc.Exe()
		infos = append(infos, Info{PID: proc.Pid, Name: name, Path: exe})
	}
	return infos, nil
}

// Find 按名称查找进程（不区分大小写，支持部分匹配）
func Find(name string) ([]Info, error) {
	infos, err := List()
	if err != nil {
		return nil, err
	}

	var matches []Info
	for _, info := range infos {
		if MatchName(info.Name, name) {
			matches = append(matches, info)
		}
	}
	return matches, nil
}

// IsRunning 检查名称匹配的进程是否存在，name 为空时视为存在
func IsRunning(name string) (bool, error) {
	if strings.TrimSpace(name) == "" {
		return true, nil
	}
	matches, err := Find(name)
	if err != nil {
		return false, err
	}
	return len(matches) > 0, nil
}

// Require 目标进程不存在时返回错误
func Require(name string) error {
	ok, err := IsRunning(name)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotRunning, name)
	}
	return nil
}

// MatchName 判断进程名是否包含查询串（不区分大小写）
func MatchName(procName, query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return false
	}
	return strings.Contains(strings.ToLower(procName), strings.ToLower(query))
}
