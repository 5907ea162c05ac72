package utility

import (
	"runtime/debug"

	"github.com/doilonvl/salathai-be-demo/internal/logger"
)

// GoProtect chạy f và bắt panic, dùng cho các goroutine chạy nền (gửi email đặt bàn...)
func GoProtect(f func()) {
	defer func() {
		if err := recover(); err != nil {
			logger.GetErrorLogger().WithFields(map[string]interface{}{
				"panic": err,
				"stack": string(debug.Stack()),
			}).Error("Đã bắt lỗi panic")
		}
	}()

	f()
}
