package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"go-eats-agent/internal/agent"
	"go-eats-agent/internal/browser"
	"go-eats-agent/internal/config"
	"go-eats-agent/internal/queue"
	"go-eats-agent/internal/telegram"
)

func main() {
	cfg := config.Load()
	log.Println("🔧 Config loaded")

	bot, err := telegram.NewBot(cfg.TelegramToken)
	if err != nil {
		log.Fatalf("❌ Failed to init Telegram bot: %v", err)
	}
	log.Println("🤖 Telegram bot initialized")

	//the shared browser lives for the whole process
	manager, err := browser.NewManager(cfg.Headless)
	if err != nil {
		log.Fatalf("❌ Failed to init browser: %v", err)
	}
	defer manager.Close()

	recommender := agent.New(cfg, manager)

	worker := queue.NewWorker(recommender.Run, bot)
	defer worker.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	worker.Start(ctx)

	if !cfg.TelegramWebhook {
		go bot.Listen(ctx, worker)
	}

	r := gin.Default()
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "healthy",
			"service":     "eats-agent",
			"queue_depth": worker.Depth(),
		})
	})

	r.POST("/webhook/telegram", func(c *gin.Context) {
		var update tgbotapi.Update
		if err := c.ShouldBindJSON(&update); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid update payload"})
			return
		}
		bot.HandleUpdate(update, worker)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{Addr: ":" + port, Handler: r}
	go func() {
		log.Printf("🚀 Server listening on port %s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("🛑 Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️ Server shutdown: %v", err)
	}

	worker.Stop()
	manager.Close()
	log.Println("🏁 Shutdown complete")
}
