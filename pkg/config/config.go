package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-playground/validator"
	"gopkg.in/yaml.v3"
)

// 地标名称
const (
	LandmarkRoseCheck = "rose_check"
	LandmarkHeart     = "heart"
	LandmarkComment   = "comment"
	LandmarkSendLike  = "send_like"
)

// 步骤动作
const (
	ActionRest        = "rest"
	ActionClick       = "click"
	ActionWait        = "wait"
	ActionTypeMessage = "type_message"
	ActionScroll      = "scroll"
)

// 截图后端
const (
	CaptureRobotgo    = "robotgo"
	CaptureScreenshot = "screenshot"
)

// Point 屏幕坐标
type Point struct {
	X int `yaml:"x" validate:"gte=0"`
	Y int `yaml:"y" validate:"gte=0"`
}

// Offset 点击偏移，可为负
type Offset struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Region 屏幕区域
type Region struct {
	X      int `yaml:"x" validate:"gte=0"`
	Y      int `yaml:"y" validate:"gte=0"`
	Width  int `yaml:"width" validate:"gt=0"`
	Height int `yaml:"height" validate:"gt=0"`
}

// MatchConfig 模板匹配配置
type MatchConfig struct {
	Threshold float64 `yaml:"threshold" validate:"gt=0,lte=1"`
	Grayscale bool    `yaml:"grayscale"`
	// Scales 模板缩放候选，为空时只用原尺寸
	Scales []float64 `yaml:"scales,omitempty" validate:"omitempty,dive,gt=0"`
	// Timeout 等待地标出现的时间，0 表示只查找一次
	Timeout time.Duration `yaml:"timeout,omitempty" validate:"gte=0"`
	// Region 搜索区域，为空时搜索全屏
	Region *Region `yaml:"region,omitempty"`
}

// CaptureConfig 截图配置
type CaptureConfig struct {
	Backend string `yaml:"backend" validate:"oneof=robotgo screenshot"`
	Display int    `yaml:"display" validate:"gte=0"`
}

// Step 单个序列步骤
type Step struct {
	Action   string        `yaml:"action" validate:"oneof=rest click wait type_message scroll"`
	Landmark string        `yaml:"landmark,omitempty"`
	Duration time.Duration `yaml:"duration,omitempty" validate:"gte=0"`
	Pixels   int           `yaml:"pixels,omitempty"`
	// Offset 相对地标中心的点击偏移
	Offset *Offset `yaml:"offset,omitempty"`
	// Double 双击地标
	Double bool `yaml:"double,omitempty"`
	// Right 右键点击地标
	Right bool `yaml:"right,omitempty"`
}

// SessionConfig 会话配置
type SessionConfig struct {
	Landmarks     map[string]string `yaml:"landmarks" validate:"required,dive,required"`
	Messages      string            `yaml:"messages" validate:"required"`
	StatsLog      string            `yaml:"stats_log" validate:"required"`
	History       string            `yaml:"history,omitempty"`
	Loops         int               `yaml:"loops" validate:"gte=1"`
	Wait          time.Duration     `yaml:"wait" validate:"gte=0"`
	TypeInterval  time.Duration     `yaml:"type_interval" validate:"gte=0"`
	Rest          Point             `yaml:"rest"`
	Match         MatchConfig       `yaml:"match"`
	Capture       CaptureConfig     `yaml:"capture"`
	TargetProcess string            `yaml:"target_process,omitempty"`
	TargetWindow  string            `yaml:"target_window,omitempty"`
	DetectStuck   bool              `yaml:"detect_stuck"`
	LogLevel      string            `yaml:"log_level" validate:"omitempty,oneof=debug info warn warning error DEBUG INFO WARN WARNING ERROR"`
	LogFile       string            `yaml:"log_file,omitempty"`
	Steps         []Step            `yaml:"steps" validate:"required,min=1,dive"`
}

// DefaultSteps 默认序列：爱心 -> 评论 -> 输入消息 -> 发送
func DefaultSteps() []Step {
	return []Step{
		{Action: ActionRest},
		{Action: ActionClick, Landmark: LandmarkHeart},
		{Action: ActionWait},
		{Action: ActionClick, Landmark: LandmarkComment},
		{Action: ActionWait},
		{Action: ActionTypeMessage},
		{Action: ActionWait},
		{Action: ActionClick, Landmark: LandmarkSendLike},
		{Action: ActionWait},
	}
}

// DefaultSessionConfig 默认会话配置
func DefaultSessionConfig() *SessionConfig {
	return &SessionConfig{
		Landmarks: map[string]string{
			LandmarkRoseCheck: "Images/0_CHECK_FOR_ROSE.png",
			LandmarkHeart:     "Images/1_HEART.png",
			LandmarkComment:   "Images/2_ADD_COMMENT.png",
			LandmarkSendLike:  "Images/3_SEND_LIKE.png",
		},
		Messages:     "jokes.txt",
		StatsLog:     "log.txt",
		Loops:        200,
		Wait:         3 * time.Second,
		TypeInterval: 10 * time.Millisecond,
		Rest:         Point{X: 100, Y: 150},
		Match: MatchConfig{
			Threshold: 0.5,
			Grayscale: true,
		},
		Capture: CaptureConfig{
			Backend: CaptureRobotgo,
		},
		DetectStuck: true,
		LogLevel:    "info",
		Steps:       DefaultSteps(),
	}
}

var validate = validator.New()

// Validate 校验配置
func (c *SessionConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("配置校验失败: %w", err)
	}

	for i, step := range c.Steps {
		if step.Action != ActionClick {
			continue
		}
		if step.Landmark == "" {
			return fmt.Errorf("步骤 %d: click 缺少 landmark", i+1)
		}
		if _, ok := c.Landmarks[step.Landmark]; !ok {
			return fmt.Errorf("步骤 %d: 未定义的 landmark %q", i+1, step.Landmark)
		}
	}
	return nil
}

// StepWait 返回步骤的等待时长（未指定时使用全局 Wait）
func (c *SessionConfig) StepWait(step Step) time.Duration {
	if step.Duration > 0 {
		return step.Duration
	}
	return c.Wait
}

// Manager 配置管理器
type Manager struct {
	configDir  string
	configFile string
	mu         sync.RWMutex
}

// NewManager 创建配置管理器
func NewManager() *Manager {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	return NewManagerWithDir(filepath.Join(homeDir, ".auto-swiper"))
}

// NewManagerWithDir 使用指定目录创建配置管理器
func NewManagerWithDir(configDir string) *Manager {
	return &Manager{
		configDir:  configDir,
		configFile: filepath.Join(configDir, "config.yaml"),
	}
}

// NewManagerWithFile 使用指定配置文件创建配置管理器
func NewManagerWithFile(configFile string) *Manager {
	return &Manager{
		configDir:  filepath.Dir(configFile),
		configFile: configFile,
	}
}

// ensureDir 确保配置目录存在
func (m *Manager) ensureDir() error {
	return os.MkdirAll(m.configDir, 0755)
}

// Load 加载配置，文件不存在时返回默认配置
func (m *Manager) Load() (*SessionConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, err := os.ReadFile(m.configFile)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultSessionConfig(), nil
	}
	if err != nil {
		return DefaultSessionConfig(), fmt.Errorf("读取配置文件失败: %w", err)
	}

	cfg := DefaultSessionConfig()
	// steps 整体替换，不与默认值合并
	cfg.Steps = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return DefaultSessionConfig(), fmt.Errorf("解析配置文件失败: %w", err)
	}
	if len(cfg.Steps) == 0 {
		cfg.Steps = DefaultSteps()
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save 保存配置
func (m *Manager) Save(cfg *SessionConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureDir(); err != nil {
		return fmt.Errorf("创建配置目录失败: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	if err := os.WriteFile(m.configFile, data, 0644); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}

	return nil
}

// Clear 清除配置
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := os.Stat(m.configFile); os.IsNotExist(err) {
		return nil
	}

	return os.Remove(m.configFile)
}

// GetConfigDir 获取配置目录
func (m *Manager) GetConfigDir() string {
	return m.configDir
}

// GetConfigFile 获取配置文件路径
func (m *Manager) GetConfigFile() string {
	return m.configFile
}

// Exists 检查配置文件是否存在
func (m *Manager) Exists() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, err := os.Stat(m.configFile)
	return err == nil
}

// 全局配置管理器
var defaultManager = NewManager()

// GetDefaultManager 获取默认配置管理器
func GetDefaultManager() *Manager {
	return defaultManager
}

// Load 使用默认管理器加载配置
func Load() (*SessionConfig, error) {
	return defaultManager.Load()
}

// Save 使用默认管理器保存配置
func Save(cfg *SessionConfig) error {
	return defaultManager.Save(cfg)
}

// Clear 使用默认管理器清除配置
func Clear() error {
	return defaultManager.Clear()
}
