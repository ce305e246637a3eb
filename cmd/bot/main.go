package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"accountabot/internal/activity"
	"accountabot/internal/assistant"
	"accountabot/internal/budget"
	"accountabot/internal/config"
	"accountabot/internal/finance"
	"accountabot/internal/gmail"
	"accountabot/internal/history"
	"accountabot/internal/llm"
	"accountabot/internal/loopguard"
	"accountabot/internal/notify"
	"accountabot/internal/personality"
	"accountabot/internal/reminder"
	"accountabot/internal/social"
	"accountabot/internal/spending"
	"accountabot/internal/web"
	"accountabot/internal/whatsapp"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	for _, path := range []string{cfg.SessionDBPath, cfg.ActivityFilePath, cfg.StyleFilePath} {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			log.Fatalf("failed to create data dir for %s: %v", path, err)
		}
	}

	llmClient, err := llm.NewFactory(cfg).CreateClient(string(cfg.LLMProvider))
	if err != nil {
		log.Fatalf("failed to create llm client: %v", err)
	}

	fin := finance.NewPlaidService(cfg.PlaidClientID, cfg.PlaidSecret, cfg.PlaidEnv, cfg.PlaidAccessToken)
	engine := personality.NewEngine(llmClient, history.NewManager(), cfg.StyleFilePath)

	activities, err := activity.NewLog(cfg.ActivityFilePath)
	if err != nil {
		log.Fatalf("failed to init activity log: %v", err)
	}

	chat := whatsapp.UserJID(cfg.AuthorizedNumber)
	guard := loopguard.New(chat)

	// The handler is bound after the assistant is built; the transport
	// only starts delivering events once Connect is called.
	var svc *assistant.Service
	wa, err := whatsapp.NewClient(cfg.SessionDBPath, func(ctx context.Context, m whatsapp.Message) {
		svc.HandleMessage(ctx, assistant.Message{
			ID:     m.ID,
			Chat:   m.Chat,
			Sender: m.Sender,
			Body:   m.Body,
			FromMe: m.FromMe,
		})
	})
	if err != nil {
		log.Fatalf("failed to create whatsapp client: %v", err)
	}

	dispatcher := notify.NewDispatcher(wa, chat, guard)
	reminders := reminder.NewStore(dispatcher)
	monitor := spending.NewMonitor(fin, dispatcher, engine.SpendingAlert,
		cfg.SpendingAlertThreshold, cfg.UnnecessaryCategories)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var email assistant.EmailChecker
	if gmailSvc, err := gmail.NewService(ctx, cfg.GmailCredentialsPath, cfg.GmailTokenPath, llmClient); err != nil {
		if errors.Is(err, gmail.ErrNotConfigured) {
			log.Printf("⚠️ Gmail not configured, email features disabled")
		} else {
			log.Printf("⚠️ Gmail init failed, email features disabled: %v", err)
		}
	} else {
		email = gmailSvc
	}

	svc = assistant.New(assistant.Deps{
		Dispatcher:   dispatcher,
		Guard:        guard,
		Engine:       engine,
		Finance:      fin,
		Email:        email,
		Reminders:    reminders,
		Budgets:      budget.NewManager(fin),
		Social:       social.NewTracker(cfg.MaxSocialMediaHours),
		Activities:   activities,
		SpendMonitor: monitor,
	})

	if err := wa.Connect(ctx); err != nil {
		log.Fatalf("failed to connect to whatsapp: %v", err)
	}

	reminders.Start()
	if err := svc.StartMonitoring(); err != nil {
		log.Fatalf("failed to start monitoring: %v", err)
	}

	server := web.NewServer(cfg.HTTPPort)
	server.Start()

	log.Printf("🤖 Assistant is up, talking to %s", chat)
	<-ctx.Done()

	log.Printf("Shutting down...")
	svc.StopMonitoring()
	reminders.Stop()
	wa.Disconnect()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️ Web server shutdown: %v", err)
	}
}
