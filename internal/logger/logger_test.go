package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"DEBUG", DEBUG},
		{"debug", DEBUG},
		{"INFO", INFO},
		{"warning", WARN},
		{"WARN", WARN},
		{"error", ERROR},
		{"unknown", INFO},
		{"", INFO},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := New()
	l.SetNoColor(true)
	l.SetOutput(&buf)
	l.SetLevel(WARN)

	l.Info("不应输出 %d", 1)
	l.Warn("应输出 %d", 2)

	out := buf.String()
	if strings.Contains(out, "不应输出") {
		t.Errorf("INFO 日志不应输出: %q", out)
	}
	if !strings.Contains(out, "应输出 2") {
		t.Errorf("WARN 日志缺失: %q", out)
	}
}

func TestDisabled(t *testing.T) {
	var buf bytes.Buffer
	l := New()
	l.SetOutput(&buf)
	l.SetEnabled(false)

	l.Error("关闭后不输出")
	if buf.Len() != 0 {
		t.Errorf("禁用后仍有输出: %q", buf.String())
	}
}

func TestLogEvent(t *testing.T) {
	var buf bytes.Buffer
	l := New()
	l.SetNoColor(true)
	l.SetOutput(&buf)

	l.LogEvent("CLK", true, 12.5, "Images/1_HEART.png")
	l.LogEvent("CLK", false, 3, "Images/3_SEND_LIKE.png")

	out := buf.String()
	for _, want := range []string{"cat=CLK", "status=OK", "status=NG", "ms=12.5", "1_HEART.png"} {
		if !strings.Contains(out, want) {
			t.Errorf("输出缺少 %q: %q", want, out)
		}
	}
}

func TestSetFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.log")
	l := New()
	l.SetOutput(nil)

	if err := l.SetFile(true, path); err != nil {
		t.Fatalf("SetFile 失败: %v", err)
	}
	l.Info("写入文件")
	if err := l.Close(); err != nil {
		t.Fatalf("Close 失败: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("读取日志文件失败: %v", err)
	}
	if !strings.Contains(string(data), "写入文件") {
		t.Errorf("日志文件内容错误: %q", string(data))
	}
}
