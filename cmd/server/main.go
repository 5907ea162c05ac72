package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/doilonvl/salathai-be-demo/internal/database"
	"github.com/doilonvl/salathai-be-demo/internal/global"
	"github.com/doilonvl/salathai-be-demo/internal/logger"
)

// initLogger khởi tạo và cấu hình logger cho toàn bộ ứng dụng
func initLogger() {
	// Logger tự đọc biến môi trường LOG_* để cấu hình
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	logger.GetAppLogger().Info("Logger system initialized successfully")
}

// resolvePath đường dẫn tương đối tính từ thư mục chứa config/env
func resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	currentDir, err := os.Getwd()
	if err != nil {
		return path
	}
	for {
		if _, err := os.Stat(filepath.Join(currentDir, "config", "env")); err == nil {
			return filepath.Join(currentDir, path)
		}
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return path
		}
		currentDir = parentDir
	}
}

// listen mở listener, bật TLS khi ENABLE_TLS và có đủ cert/key
func listen(address string) (net.Listener, error) {
	cfg := global.MongoDB_ServerConfig
	ln, err := net.Listen("tcp", address)
	if err != nil {
		return nil, err
	}
	if !cfg.EnableTLS || cfg.TLSCertFile == "" || cfg.TLSKeyFile == "" {
		return ln, nil
	}

	cert, err := tls.LoadX509KeyPair(resolvePath(cfg.TLSCertFile), resolvePath(cfg.TLSKeyFile))
	if err != nil {
		_ = ln.Close()
		return nil, fmt.Errorf("load TLS certificate: %w", err)
	}
	return tls.NewListener(ln, &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}), nil
}

// main_thread chạy Fiber server cho tới khi nhận SIGINT/SIGTERM
func main_thread(app *fiber.App) {
	log := logger.GetAppLogger()
	cfg := global.MongoDB_ServerConfig
	address := ":" + cfg.Address

	ln, err := listen(address)
	if err != nil {
		log.Fatalf("Error creating listener: %v", err)
	}
	log.WithFields(map[string]interface{}{
		"address": address,
		"tls":     cfg.EnableTLS,
	}).Info("Starting Fiber server...")

	go func() {
		if err := app.Listener(ln, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
			log.Fatalf("Error in Fiber Listener: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.WithError(err).Error("Server shutdown error")
	}
	if global.Redis_Client != nil {
		_ = global.Redis_Client.Close()
	}
	_ = database.CloseInstance(ctx, global.MongoDB_Session)
}

// Hàm main
func main() {
	initLogger()
	defer logger.Shutdown()

	// Khởi tạo các biến toàn cục
	InitGlobal()

	// Khởi tạo service, handler và route
	reg := InitRegistry()

	// Khởi tạo dữ liệu mặc định
	InitDefaultData(reg)

	main_thread(InitFiberApp(reg))
}
