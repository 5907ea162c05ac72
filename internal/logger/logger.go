package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Tên các logger dùng trong hệ thống
const (
	AppLogger   = "app"
	AuditLogger = "audit"
	ErrorLogger = "error"
)

var (
	loggers   = make(map[string]*logrus.Logger)
	hooks     []*AsyncHook
	loggersMu sync.Mutex

	config  *LogConfig
	rootDir string
)

// Init khởi tạo hệ thống logging, cfg nil thì dùng DefaultConfig
func Init(cfg *LogConfig) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	config = cfg

	if err := initRootDir(); err != nil {
		return fmt.Errorf("failed to initialize root directory: %w", err)
	}

	if config.Output == "file" || config.Output == "both" {
		if err := os.MkdirAll(getLogPath(), 0755); err != nil {
			return fmt.Errorf("failed to create logs directory: %w", err)
		}
	}
	return nil
}

// initRootDir: ưu tiên LOG_ROOT_DIR, sau đó tìm thư mục chứa config/ đi lên từ working directory
func initRootDir() error {
	if rootDir != "" {
		return nil
	}

	if dir := os.Getenv("LOG_ROOT_DIR"); dir != "" {
		if resolved, err := filepath.EvalSymlinks(dir); err == nil {
			dir = resolved
		}
		rootDir = dir
		return nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("could not get working directory: %w", err)
	}

	current := wd
	for i := 0; i < 5; i++ {
		if _, err := os.Stat(filepath.Join(current, "config")); err == nil {
			rootDir = current
			return nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}

	rootDir = wd
	return nil
}

func getLogPath() string {
	if filepath.IsAbs(config.LogPath) {
		return config.LogPath
	}
	return filepath.Join(rootDir, config.LogPath)
}

// GetLogger trả về logger theo tên, tạo mới nếu chưa có
func GetLogger(name string) *logrus.Logger {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if config == nil {
		if err := Init(nil); err != nil {
			panic(fmt.Sprintf("Failed to initialize logger: %v", err))
		}
	}

	if l, ok := loggers[name]; ok {
		return l
	}

	l := createLogger(name)
	loggers[name] = l
	return l
}

func createLogger(name string) *logrus.Logger {
	l := logrus.New()

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)
	l.SetFormatter(newFormatter(config.Format))

	var writers []io.Writer
	if config.Output == "file" || config.Output == "both" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   getLogFilePath(name),
			MaxSize:    config.MaxSize,
			MaxBackups: config.MaxBackups,
			MaxAge:     config.MaxAge,
			Compress:   config.Compress,
		})
	}
	if config.Output == "stdout" || config.Output == "both" {
		writers = append(writers, os.Stdout)
	}

	if len(writers) > 0 {
		hook := NewAsyncHookWithWriters(writers, config.BufferSize)
		if name == ErrorLogger {
			hook.WithLevels(logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel, logrus.WarnLevel)
		}
		l.AddHook(hook)
		hooks = append(hooks, hook)
	}
	// Toàn bộ output đi qua hook
	l.SetOutput(io.Discard)
	l.SetReportCaller(true)

	l.WithFields(logrus.Fields{
		"logger": name,
		"level":  l.GetLevel().String(),
		"format": config.Format,
		"output": config.Output,
	}).Debug("Logger initialized successfully")

	return l
}

func newFormatter(format string) logrus.Formatter {
	if format == "json" {
		return &logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05.000",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
				logrus.FieldKeyFunc:  "function",
				logrus.FieldKeyFile:  "file",
			},
		}
	}
	return &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
		CallerPrettyfier: func(f *runtime.Frame) (string, string) {
			s := strings.Split(f.Function, ".")
			return s[len(s)-1], fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
		},
	}
}

func getLogFilePath(name string) string {
	var filename string
	switch name {
	case AppLogger:
		filename = config.AppFile
	case AuditLogger:
		filename = config.AuditFile
	case ErrorLogger:
		filename = config.ErrorFile
	default:
		filename = name + ".log"
	}
	return filepath.Join(getLogPath(), filename)
}

// Shutdown ghi hết log còn trong hàng đợi, gọi khi tắt server
func Shutdown() {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	for _, h := range hooks {
		_ = h.Close()
	}
	hooks = nil
	loggers = make(map[string]*logrus.Logger)
}

// GetAppLogger logger chính của ứng dụng
func GetAppLogger() *logrus.Logger {
	return GetLogger(AppLogger)
}

// GetAuditLogger logger ghi thao tác của admin
func GetAuditLogger() *logrus.Logger {
	return GetLogger(AuditLogger)
}

// GetErrorLogger chỉ nhận warn trở lên
func GetErrorLogger() *logrus.Logger {
	return GetLogger(ErrorLogger)
}
