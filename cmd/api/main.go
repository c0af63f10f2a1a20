package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/hireflowhq/hireflow-api/internal/config"
	"github.com/hireflowhq/hireflow-api/internal/database"
	"github.com/hireflowhq/hireflow-api/internal/handler"
	"github.com/hireflowhq/hireflow-api/internal/middleware"
	"github.com/hireflowhq/hireflow-api/internal/models"
	"github.com/hireflowhq/hireflow-api/internal/repository"
	"github.com/hireflowhq/hireflow-api/internal/router"
	"github.com/hireflowhq/hireflow-api/internal/service"
	"github.com/hireflowhq/hireflow-api/pkg/ai"
	cloud "github.com/hireflowhq/hireflow-api/pkg/cloudinary"
)

const feedSubject = "hireflow.events.feed"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Designation{},
		&models.Skill{},
		&models.InterviewType{},
		&models.JobApplicant{},
		&models.InterviewRound{},
		&models.RoundSkill{},
		&models.RoundMember{},
		&models.Interview{},
		&models.InterviewDetail{},
		&models.InterviewFeedback{},
		&models.SkillAssessment{},
		&models.EmailTemplate{},
		&models.EmailQueueItem{},
		&models.HRSettings{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = database.ConnectNATS(cfg.NATSURL)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Close()
	}

	var uploader service.FileUploader
	if cfg.CloudinaryCloudName != "" {
		cloudService, err := cloud.New(cloud.Config{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryUploadFolder,
		}, logger)
		if err != nil {
			log.Fatalf("failed to create cloudinary client: %v", err)
		}
		uploader = cloudService
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	roundRepo := repository.NewInterviewRoundRepository(db)
	interviewRepo := repository.NewInterviewRepository(db)
	applicantRepo := repository.NewApplicantRepository(db)
	masterRepo := repository.NewMasterRepository(db)
	emailRepo := repository.NewEmailRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)

	feed := service.NewEventFeed(natsConn, feedSubject, logger)
	mailer := service.NewMailService(emailRepo, feed, service.NewLogDelivery(logger), logger)

	roundService := service.NewRoundService(roundRepo, masterRepo, buildSuggester(cfg, logger), validate, logger)
	interviewService := service.NewInterviewService(interviewRepo, roundRepo, applicantRepo, mailer, feed, validate, logger)
	feedbackService := service.NewFeedbackService(feedbackRepo, interviewRepo, masterRepo, feed, validate, logger)
	applicantService := service.NewApplicantService(applicantRepo, interviewRepo, masterRepo, uploader, redisClient, cfg.SummaryCacheTTL, validate, logger)
	settingsService := service.NewSettingsService(settingsRepo, emailRepo, validate, logger)
	reminderService := service.NewReminderService(interviewRepo, settingsRepo, mailer, cfg.ReminderSweepInterval, cfg.FeedbackSweepInterval, logger)

	runCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	if err := settingsService.SeedDefaultTemplates(runCtx); err != nil {
		log.Fatalf("failed to seed email templates: %v", err)
	}

	feed.Start(runCtx)
	reminderService.Start(runCtx)

	roundHandler := handler.NewRoundHandler(roundService, logger)
	interviewHandler := handler.NewInterviewHandler(interviewService, feedbackService, logger)
	applicantHandler := handler.NewApplicantHandler(applicantService, logger)
	settingsHandler := handler.NewSettingsHandler(settingsService, logger)
	emailQueueHandler := handler.NewEmailQueueHandler(mailer, logger)
	feedHandler := handler.NewFeedHandler(feed, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		RoundHandler:      roundHandler,
		InterviewHandler:  interviewHandler,
		ApplicantHandler:  applicantHandler,
		SettingsHandler:   settingsHandler,
		EmailQueueHandler: emailQueueHandler,
		FeedHandler:       feedHandler,
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app, stopBackground)
}

// buildSuggester returns nil when no AI credentials are configured, which
// disables the question suggestion endpoint.
func buildSuggester(cfg config.Config, logger zerolog.Logger) service.QuestionSuggester {
	switch cfg.AIProvider {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil
		}
		suggester, err := ai.NewOpenAISuggester(ai.OpenAIConfig{
			APIKey: cfg.OpenAIAPIKey,
			Logger: logger,
		})
		if err != nil {
			log.Fatalf("failed to create openai suggester: %v", err)
		}
		return suggesterAdapter{suggester}
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			return nil
		}
		suggester, err := ai.NewAnthropicSuggester(ai.AnthropicConfig{APIKey: cfg.AnthropicAPIKey})
		if err != nil {
			log.Fatalf("failed to create anthropic suggester: %v", err)
		}
		return suggesterAdapter{suggester}
	default:
		return nil
	}
}

type suggesterAdapter struct {
	inner ai.Suggester
}

func (a suggesterAdapter) Suggest(ctx context.Context, round, interviewType string, skills []string) ([]string, error) {
	return a.inner.SuggestQuestions(ctx, ai.QuestionInput{
		Round:         round,
		InterviewType: interviewType,
		Skills:        skills,
	})
}

func waitForShutdown(app *fiber.App, stopBackground context.CancelFunc) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()
	stopBackground()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
