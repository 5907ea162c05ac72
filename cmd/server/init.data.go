package main

import (
	"context"
	"time"

	"github.com/doilonvl/salathai-be-demo/internal/global"
	"github.com/doilonvl/salathai-be-demo/internal/logger"
)

// InitDefaultData tạo super admin từ SEED_ADMIN_* nếu được cấu hình
func InitDefaultData(reg *Registry) {
	log := logger.GetAppLogger()
	cfg := global.MongoDB_ServerConfig
	if cfg.SeedAdminEmail == "" {
		log.Info("🔄 [INIT] SEED_ADMIN_EMAIL not set, skip seeding admin")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	created, err := reg.Users.EnsureSuperAdmin(ctx, cfg.SeedAdminName, cfg.SeedAdminEmail, cfg.SeedAdminPassword, cfg.BcryptSaltRounds)
	if err != nil {
		log.WithError(err).Error("❌ [INIT] Failed to seed super admin")
		return
	}
	if created {
		log.Info("✅ [INIT] Super admin created")
	}
}
