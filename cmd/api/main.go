package main

import (
	"context"
	"log"
	"time"

	httpadp "preauth-tracker/internal/adapter/http"
	"preauth-tracker/internal/adapter/middleware"
	"preauth-tracker/internal/adapter/repository/gormdb"
	"preauth-tracker/internal/config"
	"preauth-tracker/internal/infrastructure/cache"
	"preauth-tracker/internal/infrastructure/db"
	"preauth-tracker/internal/infrastructure/session"
	"preauth-tracker/internal/usecase/authz"
	"preauth-tracker/internal/usecase/credential"
	recordUC "preauth-tracker/internal/usecase/record"
	"preauth-tracker/internal/usecase/stats"
	"preauth-tracker/pkg/id"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	ctx := context.Background()

	gdb, err := db.OpenGorm(cfg.DBDriver, cfg.DSN(), cfg.DBDebug)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	if err := gormdb.Migrate(gdb); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		log.Fatalf("db: %v", err)
	}

	rdb, err := cache.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	if rdb == nil {
		log.Printf("redis disabled: idempotent create and login throttling are off")
	}

	users := gormdb.NewUserRepository(gdb)
	records := gormdb.NewRecordRepository(gdb)
	settings := gormdb.NewSettingRepository(gdb)

	creds := credential.NewStore(users, credential.BcryptHasher{})
	created, err := creds.EnsureAdmin(ctx, cfg.AdminPassword)
	if err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	if created {
		log.Printf("seeded admin account; change its password after first login")
	}

	secret, err := session.LoadOrCreateSecret(ctx, cfg.SessionSecret, settings, id.NewSecret64)
	if err != nil {
		log.Fatalf("session secret: %v", err)
	}
	issuer, err := session.NewIssuer(secret)
	if err != nil {
		log.Fatalf("session: %v", err)
	}

	st := stats.NewUsecase(records, users)

	e := httpadp.NewEcho()
	httpadp.Register(e, httpadp.Deps{
		Health:   httpadp.NewHandler(sqlDB),
		Auth:     httpadp.NewAuthHandler(creds, issuer, cfg.CookieSecure),
		Records:  httpadp.NewRecordHandler(recordUC.NewUsecase(records), st),
		Users:    httpadp.NewUserHandler(creds, st),
		Verifier: issuer,
		Gate:     authz.NewGate(users),
		Redis:    rdb,
		IdempTTL: time.Duration(cfg.IdempTTLSecs) * time.Second,
		LoginLimiter: middleware.NewLoginLimiter(rdb, cfg.LoginMaxAttempts,
			time.Duration(cfg.LoginWindowSecs)*time.Second),
	})

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
