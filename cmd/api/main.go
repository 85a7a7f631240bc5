package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/frigiddesert/coffee-bakery-sign/internal/config"
	"github.com/frigiddesert/coffee-bakery-sign/internal/db"
	"github.com/frigiddesert/coffee-bakery-sign/internal/display"
	"github.com/frigiddesert/coffee-bakery-sign/internal/ingest"
	"github.com/frigiddesert/coffee-bakery-sign/internal/mail"
	"github.com/frigiddesert/coffee-bakery-sign/internal/menu"
	"github.com/frigiddesert/coffee-bakery-sign/internal/middleware"
	"github.com/frigiddesert/coffee-bakery-sign/internal/ocr"
	"github.com/frigiddesert/coffee-bakery-sign/internal/reconcile"
	"github.com/frigiddesert/coffee-bakery-sign/internal/storage"
	"github.com/frigiddesert/coffee-bakery-sign/internal/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres(cfg.DatabaseURL)
	defer pgDB.Close()

	// ───────────────────────── STORAGE ─────────────────────────
	r2Client, err := storage.NewR2ClientFromEnv(context.Background())
	if err != nil {
		log.Fatal("R2 init failed:", err)
	}
	if r2Client == nil {
		log.Println("photo archive disabled (R2_ENDPOINT not set)")
	}

	// ───────────────────────── CORE ─────────────────────────
	repo := display.NewPostgresRepository(pgDB)
	displayService := display.NewService(repo, cfg)
	displayHandler := display.NewHandler(displayService)
	webHandler := web.NewHandler(cfg.StatePollSeconds)

	catalog := menu.LoadCatalog(cfg.MenuItemsJSON, cfg.MenuItemsFile)
	log.Printf("menu catalog loaded (%d items)", len(catalog))

	matcher := reconcile.NewMatcher(catalog, cfg.CandidateCleaning)

	fetcher := &mail.Fetcher{
		Addr:           cfg.IMAPAddr,
		User:           cfg.GmailUser,
		Password:       cfg.GmailAppPassword,
		AllowedSenders: cfg.AllowedSenders,
		SubjectTrigger: cfg.EmailSubjectTrigger,
		SubjectPass:    cfg.EmailSubjectPasscode,
	}

	var archive ingest.Archive
	if r2Client != nil {
		archive = r2Client
	}

	ingestService := ingest.NewService(
		displayService,
		repo,
		ocr.NewMistralClient(cfg.MistralAPIKey),
		matcher,
		fetcher,
		archive,
		cfg,
	)

	// ───────────────────────── GIN ─────────────────────────
	r := newRouter(cfg, displayHandler, webHandler)

	// ───────────────────────── WORKERS ─────────────────────────
	ctx := context.Background()
	if cfg.GmailUser != "" && cfg.GmailAppPassword != "" {
		go ingestService.RunMailWorker(ctx)
	} else {
		log.Println("mail worker disabled (Gmail credentials not set)")
	}
	go ingestService.RunResetTicker(ctx)

	// ───────────────────────── START ─────────────────────────
	log.Printf("display service running on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func newRouter(cfg *config.Config, h *display.Handler, wh *web.Handler) *gin.Engine {
	r := gin.Default()
	r.HandleMethodNotAllowed = true

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Origin", "Content-Type", "X-Kiosk-Code"},
		MaxAge:       12 * time.Hour,
	}))

	r.GET("/", wh.Index)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/state", h.State)
		api.GET("/debug", h.Debug)

		guarded := api.Group("")
		guarded.Use(middleware.RequirePasscode(cfg.APIPasscode))
		{
			guarded.GET("/roast", h.Roast)
			guarded.POST("/roast", h.Roast)
			guarded.POST("/bake", h.Bake)
		}
	}

	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"ok": false, "error": "method not allowed"})
	})
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "not found"})
	})

	return r
}
