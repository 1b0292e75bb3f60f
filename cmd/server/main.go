package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"

	_ "modernc.org/sqlite"

	emailPkg "greenaudit/internal/adapters/email"
	web "greenaudit/internal/adapters/http"
	"greenaudit/internal/adapters/http/perf"
	"greenaudit/internal/adapters/storage"
	accountStore "greenaudit/internal/adapters/storage/account"
	"greenaudit/internal/adapters/storage/auditrecord"
	imageStore "greenaudit/internal/adapters/storage/images"
	"greenaudit/internal/adapters/storage/registry"
	"greenaudit/internal/application/orchestrators"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Initialize database with WAL mode, foreign keys, and busy timeout
	dbPath := envOrDefault("GREENAUDIT_DB", "greenaudit.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	// Health check
	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	// Run database migrations
	if err := storage.MigrateDB(db, dbPath); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	log.Println("Database initialized successfully!")

	// Performance instrumentation: wrap DB with timing, create collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector)

	// Create store instances (using timed DB for query instrumentation)
	acctStore := accountStore.NewSQLiteStore(timedDB)
	auditRegistry := registry.NewSQLiteStore(timedDB)
	recordStore := auditrecord.NewSQLiteStore(timedDB)
	stores := &web.Stores{
		Registry:     auditRegistry,
		RecordStore:  recordStore,
		ImageStore:   imageStore.NewSQLiteStore(timedDB),
		AccountStore: acctStore,
	}

	// Seed default admin account if no accounts exist
	adminEmail := envOrDefault("GREENAUDIT_ADMIN_EMAIL", "admin@greenaudit.ie")
	adminPassword := envOrDefault("GREENAUDIT_ADMIN_PASSWORD", "change me before launch")
	seedDeps := orchestrators.CreateAccountDeps{AccountStore: acctStore}
	if err := orchestrators.ExecuteSeedAdmin(context.Background(), seedDeps, adminEmail, adminPassword); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	// Seed a demo audit for development only
	if os.Getenv("GREENAUDIT_ENV") != "production" {
		sampleDeps := orchestrators.SeedDeps{
			Registry:    auditRegistry,
			RecordStore: recordStore,
		}
		if _, err := orchestrators.ExecuteSeedSampleAudit(context.Background(), sampleDeps); err != nil {
			log.Fatalf("failed to seed sample audit: %v", err)
		}
		log.Println("Sample audit loaded (dev mode)")
	}

	// Configure email sender
	resendKey := os.Getenv("GREENAUDIT_RESEND_API_KEY")
	emailFrom := envOrDefault("GREENAUDIT_EMAIL_FROM", "GreenAudit <noreply@greenaudit.ie>")
	emailReply := envOrDefault("GREENAUDIT_REPLY_TO", "info@greenaudit.ie")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom), emailFrom, emailReply)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), emailFrom, emailReply)
		if os.Getenv("GREENAUDIT_ENV") == "production" {
			log.Println("WARNING: GREENAUDIT_RESEND_API_KEY is not set; email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop; set GREENAUDIT_RESEND_API_KEY for real delivery)")
		}
	}

	// Create HTTP handler with middleware (pass collector for timing + dashboard)
	mux := web.NewMux("static", stores, collector)

	// Start server
	addr := envOrDefault("GREENAUDIT_ADDR", ":8080")
	log.Printf("GreenAudit %s starting on %s (env=%s, schema=%d)", version, addr, envOrDefault("GREENAUDIT_ENV", "development"), storage.LatestSchemaVersion())

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
