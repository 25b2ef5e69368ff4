package main

import (
	"flag"
	"os"
	"strings"
	"syscall"

	"github.com/tokogitar/tokogitar/internal/app"
	"github.com/tokogitar/tokogitar/internal/config"
	"github.com/tokogitar/tokogitar/internal/logger"
	"github.com/tokogitar/tokogitar/internal/models"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if cfg.Server.Mode == "release" {
		if isWeakSecret(cfg.JWT.SecretKey) {
			stdLog.Fatalf("JWT secret terlalu lemah atau masih nilai bawaan, ganti dengan kunci acak yang kuat")
		}
	} else if isWeakSecret(cfg.JWT.SecretKey) {
		stdLog.Printf("peringatan: JWT secret terlalu lemah atau masih nilai bawaan")
	}

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("inisialisasi database gagal: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("migrasi database gagal: %v", err)
	}

	defaultAdminEmail := os.Getenv("TG_DEFAULT_ADMIN_EMAIL")
	defaultAdminPass := os.Getenv("TG_DEFAULT_ADMIN_PASSWORD")
	if cfg.Server.Mode == "release" && defaultAdminPass == "" {
		stdLog.Printf("peringatan: TG_DEFAULT_ADMIN_PASSWORD belum diset, inisialisasi admin bawaan dilewati")
	} else if err := models.InitDefaultAdmin(defaultAdminEmail, defaultAdminPass); err != nil {
		stdLog.Printf("peringatan: inisialisasi admin bawaan gagal: %v", err)
	}

	var mode string
	flag.StringVar(&mode, "mode", app.ModeAll, "mode start: all (default), api, worker")
	flag.Parse()

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	}); err != nil {
		stdLog.Fatalf("layanan berhenti dengan error: %v", err)
	}
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	if strings.Contains(normalized, "change-me") ||
		strings.Contains(normalized, "change-in-production") ||
		strings.Contains(normalized, "your-secret-key") {
		return true
	}
	return false
}
