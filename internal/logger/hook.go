package logger

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// AsyncHook đẩy log entry vào hàng đợi và ghi ra writers trong goroutine riêng,
// request không phải chờ file I/O
type AsyncHook struct {
	writers []io.Writer
	levels  []logrus.Level
	entries chan *logrus.Entry
	wg      sync.WaitGroup
	mu      sync.RWMutex
	closed  bool
	dropped atomic.Int64
}

// NewAsyncHook tạo hook cho một writer
func NewAsyncHook(writer io.Writer, bufferSize int) *AsyncHook {
	return NewAsyncHookWithWriters([]io.Writer{writer}, bufferSize)
}

// NewAsyncHookWithWriters tạo hook ghi ra nhiều writers (file, stdout)
func NewAsyncHookWithWriters(writers []io.Writer, bufferSize int) *AsyncHook {
	if bufferSize <= 0 {
		bufferSize = 1000
	}

	hook := &AsyncHook{
		writers: writers,
		levels:  logrus.AllLevels,
		entries: make(chan *logrus.Entry, bufferSize),
	}

	hook.wg.Add(1)
	go hook.run()

	return hook
}

// WithLevels giới hạn các level hook xử lý (error logger chỉ nhận error trở lên)
func (h *AsyncHook) WithLevels(levels ...logrus.Level) *AsyncHook {
	if len(levels) > 0 {
		h.levels = levels
	}
	return h
}

// Levels thuộc interface logrus.Hook
func (h *AsyncHook) Levels() []logrus.Level {
	return h.levels
}

// Fire không bao giờ block: hàng đợi đầy thì entry bị bỏ và tăng bộ đếm Dropped
func (h *AsyncHook) Fire(entry *logrus.Entry) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		// Đã Close thì ghi đồng bộ
		data, err := format(entry)
		if err != nil {
			return err
		}
		h.write(data)
		return nil
	}

	// Entry được tái sử dụng bởi logrus nên phải Dup trước khi đưa sang goroutine khác
	dup := entry.Dup()
	dup.Level = entry.Level
	dup.Message = entry.Message
	dup.Caller = entry.Caller

	select {
	case h.entries <- dup:
	default:
		h.dropped.Add(1)
	}
	return nil
}

// Dropped số entry bị bỏ do hàng đợi đầy
func (h *AsyncHook) Dropped() int64 {
	return h.dropped.Load()
}

func (h *AsyncHook) run() {
	defer h.wg.Done()

	for entry := range h.entries {
		h.handle(entry)
	}
}

func (h *AsyncHook) handle(entry *logrus.Entry) {
	// Logger goroutine không được làm sập server
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "[LOGGER PANIC] %v\n", r)
			debug.PrintStack()
		}
	}()

	data, err := format(entry)
	if err != nil {
		return
	}
	h.write(data)
}

func (h *AsyncHook) write(data []byte) {
	for _, w := range h.writers {
		_, _ = w.Write(data)
	}
}

func format(entry *logrus.Entry) ([]byte, error) {
	if entry.Logger != nil && entry.Logger.Formatter != nil {
		return entry.Logger.Formatter.Format(entry)
	}
	line, err := entry.String()
	if err != nil {
		return nil, err
	}
	return []byte(line), nil
}

// Close dừng nhận entry mới và đợi ghi hết hàng đợi
func (h *AsyncHook) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	close(h.entries)
	h.mu.Unlock()

	h.wg.Wait()
	return nil
}
