package process

import (
	"errors"
	"os"
	"testing"
)

func TestMatchName(t *testing.T) {
	tests := []struct {
		procName string
		query    string
		want     bool
	}{
		{"BlueStacks.exe", "bluestacks", true},
		{"HD-Player", "player", true},
		{"Google Chrome", "Chrome", true},
		{"firefox", "chrome", false},
		{"firefox", "", false},
		{"firefox", "  ", false},
	}

	for _, tt := range tests {
		if got := MatchName(tt.procName, tt.query); got != tt.want {
			t.Errorf("MatchName(%q, %q) = %v, want %v", tt.procName, tt.query, got, tt.want)
		}
	}
}

// selfInfo 在进程列表中找到当前测试进程
func selfInfo(t *testing.T) Info {
	t.Helper()
	infos, err := List()
	if err != nil {
		t.Fatalf("获取进程列表失败: %v", err)
	}
	for _, info := range infos {
		if int(info.PID) == os.Getpid() {
			return info
		}
	}
	t.Skip("进程列表中没有当前进程")
	return Info{}
}

func TestFindSelf(t *testing.T) {
	info := selfInfo(t)
	if info.Name == "" {
		t.Skip("无法读取当前进程名")
	}

	matches, err := Find(info.Name)
	if err != nil {
		t.Fatalf("查找进程失败: %v", err)
	}
	found := false
	for _, m := range matches {
		if m.PID == info.PID {
			found = true
		}
	}
	if !found {
		t.Errorf("应能找到当前进程 %s", info.Name)
	}

	if err := Require(info.Name); err != nil {
		t.Errorf("当前进程存在时 Require 不应报错: %v", err)
	}
}

func TestIsRunningEmptyName(t *testing.T) {
	ok, err := IsRunning("")
	if err != nil || !ok {
		t.Errorf("未指定目标进程时应视为运行中: ok=%v err=%v", ok, err)
	}
}

func TestRequireMissing(t *testing.T) {
	err := Require("no-such-process-7f3a9c")
	if !errors.Is(err, ErrNotRunning) {
		t.Errorf("不存在的进程应返回 ErrNotRunning, 实际: %v", err)
	}
}
