package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/parthchandak02/auto-swiper/internal/logger"
	"github.com/parthchandak02/auto-swiper/pkg/auto/image"
	"github.com/parthchandak02/auto-swiper/pkg/auto/input"
	"github.com/parthchandak02/auto-swiper/pkg/auto/screen"
	"github.com/parthchandak02/auto-swiper/pkg/bot"
	"github.com/parthchandak02/auto-swiper/pkg/config"
	"github.com/parthchandak02/auto-swiper/pkg/console"
	"github.com/parthchandak02/auto-swiper/pkg/history"
	"github.com/parthchandak02/auto-swiper/pkg/messages"
	"github.com/parthchandak02/auto-swiper/pkg/permissions"
	"github.com/parthchandak02/auto-swiper/pkg/process"
	"github.com/parthchandak02/auto-swiper/pkg/session"
)

// 版本信息 (可通过 ldflags 注入)
var (
	Version   = "2.0.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// stuckDistance 画面哈希距离不超过该值视为停滞
const stuckDistance = 2

// historyLimit -history 显示的会话数
const historyLimit = 10

func main() {
	os.Exit(run())
}

func run() int {
	// 命令行参数
	var (
		configFile  = flag.String("config", "", "配置文件路径 (默认 ~/.auto-swiper/config.yaml)")
		loops       = flag.Int("loops", 0, "循环次数")
		wait        = flag.Duration("wait", 0, "每步之后的等待时间 (例: 3s)")
		threshold   = flag.Float64("threshold", 0, "匹配阈值 (0-1)")
		messageFile = flag.String("messages", "", "消息文件，每行一条")
		statsLog    = flag.String("log", "", "统计日志文件")
		logLevel    = flag.String("log-level", "", "诊断日志级别 (debug/info/warn/error)")
		noColor     = flag.Bool("no-color", false, "禁用彩色输出")
		showHistory = flag.Bool("history", false, "显示最近的会话记录")
		saveConfig  = flag.Bool("save", false, "保存配置到本地")
		demo        = flag.Bool("demo", false, "演示终端输出，不执行自动化")
		showVersion = flag.Bool("version", false, "显示版本信息")
		showHelp    = flag.Bool("help", false, "显示帮助信息")
	)

	flag.Parse()

	if *showVersion {
		printVersion()
		return 0
	}

	manager := config.GetDefaultManager()
	if *configFile != "" {
		manager = config.NewManagerWithFile(*configFile)
	}

	if *showHelp {
		printHelp(manager)
		return 0
	}

	// 加载配置
	cfg, err := manager.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] 加载配置失败: %v\n", err)
		return 1
	}

	// 命令行参数优先级高于配置文件
	if *loops > 0 {
		cfg.Loops = *loops
	}
	if *wait > 0 {
		cfg.Wait = *wait
	}
	if *threshold > 0 {
		cfg.Match.Threshold = *threshold
	}
	if *messageFile != "" {
		cfg.Messages = *messageFile
	}
	if *statsLog != "" {
		cfg.StatsLog = *statsLog
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] %v\n", err)
		return 1
	}

	logger.Default().SetLevel(logger.ParseLevel(cfg.LogLevel))
	logger.Default().SetNoColor(*noColor)
	if cfg.LogFile != "" {
		if err := logger.Default().SetFile(true, cfg.LogFile); err != nil {
			fmt.Fprintf(os.Stderr, "[WARN] 打开日志文件失败: %v\n", err)
		}
	}
	defer logger.Default().Close()

	// 保存配置
	if *saveConfig {
		if err := manager.Save(cfg); err != nil {
			logger.Warn("保存配置失败: %v", err)
		} else {
			logger.Info("配置已保存到 %s", manager.GetConfigFile())
		}
	}

	con := console.New(os.Stdout, *noColor)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *showHistory {
		return printHistory(ctx, con, cfg.History)
	}

	if *demo {
		if err := con.Demo(ctx, "v"+Version, cfg.Wait); err != nil {
			con.Interrupted()
		}
		return 0
	}

	// macOS 权限检查
	if runtime.GOOS == "darwin" {
		if !checkMacOSPermissions() {
			return 1
		}
	}

	return runSession(ctx, con, cfg)
}

// runSession 执行一次完整会话
func runSession(ctx context.Context, con *console.Console, cfg *config.SessionConfig) int {
	if err := process.Require(cfg.TargetProcess); errors.Is(err, process.ErrNotRunning) {
		con.Warn("Target process %q is not running", cfg.TargetProcess)
	} else if err != nil {
		logger.Warn("检查目标进程失败: %v", err)
	}
	if err := input.ActivateWindow(cfg.TargetWindow); err != nil {
		logger.Warn("%v", err)
	}

	capturer, err := screen.NewCapturer(cfg.Capture.Backend, cfg.Capture.Display)
	if err != nil {
		logger.Error("%v", err)
		return 1
	}

	locator := image.NewLocator(capturer)
	defer locator.Close()
	for _, path := range usedLandmarks(cfg) {
		// 缺失的地标在运行时按未找到计数
		if err := locator.Preload(path); err != nil {
			logger.Warn("%v", err)
		}
	}

	con.Banner("v"+Version, time.Now())

	list, err := messages.Load(cfg.Messages)
	picker := messages.NewPicker(list, nil)
	if err != nil {
		con.MessagesFailed(err)
	} else {
		con.MessagesLoaded(picker.Len(), cfg.Messages)
	}

	mouse := input.NewMouse()
	deps := bot.Deps{
		Clicker:   image.NewImageClicker(locator, mouse),
		Pointer:   mouse,
		Typist:    input.NewKeyboard(cfg.TypeInterval),
		Picker:    picker,
		Waiter:    con,
		Presenter: con,
	}
	if cfg.DetectStuck {
		deps.Stuck = bot.NewStuckCheck(capturer, stuckDistance)
	}

	runner, err := bot.New(cfg, deps)
	if err != nil {
		logger.Error("%v", err)
		return 1
	}

	report, runErr := runner.Run(ctx)
	finishSession(con, cfg, report)

	if runErr != nil {
		logger.Error("会话异常结束: %v", runErr)
		return 1
	}
	return 0
}

// finishSession 输出统计并持久化，中断后同样执行
func finishSession(con *console.Console, cfg *config.SessionConfig, report session.Report) {
	con.Stats("📊 Session Statistics", report.Stats)

	if err := session.NewStatsLog(cfg.StatsLog).Append(report); err != nil {
		con.MessagesFailed(err)
		logger.Error("写入统计日志失败: %v", err)
	}

	if cfg.History != "" {
		if err := recordHistory(cfg.History, report); err != nil {
			logger.Warn("%v", err)
		}
	}

	con.Summary(report)
}

func recordHistory(path string, report session.Report) error {
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	// 使用独立 ctx，中断后仍能写入
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err = store.Record(ctx, report)
	return err
}

func printHistory(ctx context.Context, con *console.Console, path string) int {
	if path == "" {
		fmt.Fprintln(os.Stderr, "[ERROR] 未配置 history，请在配置文件中设置 history 路径")
		return 1
	}
	store, err := history.Open(path)
	if err != nil {
		logger.Error("%v", err)
		return 1
	}
	defer store.Close()

	entries, err := store.Recent(ctx, historyLimit)
	if err != nil {
		logger.Error("%v", err)
		return 1
	}
	con.History(entries)
	return 0
}

// usedLandmarks 序列中引用的地标文件
func usedLandmarks(cfg *config.SessionConfig) []string {
	seen := make(map[string]bool)
	var paths []string
	for _, step := range cfg.Steps {
		if step.Action != config.ActionClick {
			continue
		}
		path := cfg.Landmarks[step.Landmark]
		if path != "" && !seen[path] {
			seen[path] = true
			paths = append(paths, path)
		}
	}
	return paths
}

// printVersion 打印版本信息
func printVersion() {
	fmt.Printf("Auto-Swiper v%s\n", Version)
	fmt.Printf("Build Time: %s\n", BuildTime)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}

// printHelp 打印帮助信息
func printHelp(manager *config.Manager) {
	fmt.Println("Auto-Swiper - 基于模板匹配的自动点赞/评论工具")
	fmt.Println()
	fmt.Println("用法:")
	fmt.Println("  autoswiper [选项]")
	fmt.Println()
	fmt.Println("选项:")
	fmt.Println("  -config string     配置文件路径")
	fmt.Println("  -loops int         循环次数 (默认 200)")
	fmt.Println("  -wait duration     每步之后的等待时间 (默认 3s)")
	fmt.Println("  -threshold float   匹配阈值 (默认 0.5)")
	fmt.Println("  -messages string   消息文件 (默认 jokes.txt)")
	fmt.Println("  -log string        统计日志文件 (默认 log.txt)")
	fmt.Println("  -log-level string  诊断日志级别 (默认 info)")
	fmt.Println("  -no-color          禁用彩色输出")
	fmt.Println("  -history           显示最近的会话记录")
	fmt.Println("  -save              保存配置到本地")
	fmt.Println("  -demo              演示终端输出，不执行自动化")
	fmt.Println("  -version           显示版本信息")
	fmt.Println("  -help              显示帮助信息")
	fmt.Println()
	fmt.Println("示例:")
	fmt.Println("  # 使用默认配置运行 200 次")
	fmt.Println("  autoswiper")
	fmt.Println()
	fmt.Println("  # 运行 20 次，每步等待 2 秒，并保存为默认配置")
	fmt.Println("  autoswiper -loops 20 -wait 2s -save")
	fmt.Println()
	fmt.Println("  # 查看终端效果")
	fmt.Println("  autoswiper -demo")
	fmt.Println()
	fmt.Printf("配置文件位置: %s\n", manager.GetConfigFile())
}

// checkMacOSPermissions 检查 macOS 权限，缺失时打开设置页面
func checkMacOSPermissions() bool {
	logger.Info("正在检查 macOS 权限...")
	status := permissions.CheckPermissions()
	logger.Info("辅助功能权限: %v, 屏幕录制权限: %v", status.Accessibility, status.ScreenRecording)

	if status.AllGranted {
		return true
	}
	if !status.Accessibility && permissions.RequestAccessibilityPermission() {
		status = permissions.CheckPermissions()
		if status.AllGranted {
			return true
		}
	}

	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, permissions.GetPermissionInstructions(status))
	permissions.OpenSettings(status)
	return false
}
