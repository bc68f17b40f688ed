package main

import (
	"context"
	"fmt"
	stdlog "log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"

	"github.com/rpupo63/student-projects-backend/api"
	"github.com/rpupo63/student-projects-backend/config"
	"github.com/rpupo63/student-projects-backend/database"
	"github.com/rpupo63/student-projects-backend/models"
	"github.com/rpupo63/student-projects-backend/services"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	c := config.New()
	if path := config.GetString(c, "SSM_PARAMETER_PATH", ""); path != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := config.LoadSSM(ctx, c, path)
		cancel()
		if err != nil {
			fmt.Printf("Error loading parameters from %s: %v\n", path, err)
			os.Exit(1)
		}
	}

	configureLogging(c)

	if err := config.Require(c, "JWT_SECRET"); err != nil {
		log.Fatal().Err(err).Msg("missing configuration")
	}

	db, err := openDatabase(c)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}

	// If generating models, run generation and exit
	if config.GetBool(c, "GENERATE_MODELS", false) {
		fmt.Println("Generating models and query helpers...")
		if err := models.GenerateModels(db, os.Stdout); err != nil {
			log.Fatal().Err(err).Msg("model generation failed")
		}
		return
	}

	// If generating column mismatch report, run report and exit
	if config.GetBool(c, "GENERATE_COLUMN_REPORT", false) {
		fmt.Println("Generating column mismatch report...")
		if err := models.GenerateColumnMismatchReport(db, os.Stdout); err != nil {
			log.Fatal().Err(err).Msg("column report failed")
		}
		return
	}

	currentDB := database.New(db)

	store := services.NewStore(currentDB)

	rdb := openRedis(c)
	reference := services.NewReferenceCache(store, rdb,
		config.GetDuration(c, "REFERENCE_CACHE_TTL_SECONDS", time.Second, 600))

	if config.GetBool(c, "AUTO_MIGRATE", true) {
		if err := currentDB.Migrate(); err != nil {
			log.Fatal().Err(err).Msg("migration failed")
		}
		// Seeding may have changed the reference lists cached by a previous deploy
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := reference.Invalidate(ctx); err != nil {
			log.Warn().Err(err).Msg("could not clear reference cache")
		}
		cancel()
	}

	notifiers := []services.Notifier{}
	if url := config.GetString(c, "AMQP_URL", ""); url != "" {
		publisher, err := services.NewPublisher(url, config.GetString(c, "AMQP_EXCHANGE", "student-projects"))
		if err != nil {
			log.Error().Err(err).Msg("application events disabled")
		} else {
			defer publisher.Close()
			notifiers = append(notifiers, services.NewEventNotifier(publisher))
		}
	}
	if apiKey := config.GetString(c, "RESEND_API_KEY", ""); apiKey != "" {
		sender := services.NewResendClient(apiKey, config.GetString(c, "RESEND_FROM_EMAIL", "noreply@student-projects.dev"))
		notifiers = append(notifiers, services.NewEmailNotifier(sender))
	}

	tokens := services.NewTokenIssuer(c["JWT_SECRET"],
		config.GetDuration(c, "JWT_TTL_HOURS", time.Hour, int(services.DefaultTokenTTL/time.Hour)))

	deps := api.Dependencies{
		Projects:     services.NewProjectService(store, reference),
		Applications: services.NewApplicationService(store, services.NewNotifier(notifiers...)),
		Accounts:     services.NewAccountService(store, tokens, reference),
		Tokens:       tokens,
		Health:       currentDB,
	}

	// Buffered so Start can still report ErrServerClosed after main stops reading
	errChannel := make(chan error, 2)

	server, err := api.NewServer(c, deps)
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

func configureLogging(c map[string]string) {
	level, err := zerolog.ParseLevel(strings.ToLower(config.GetString(c, "LOG_LEVEL", "info")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
}

// dsn prefers DATABASE_URL and falls back to the DB_* parts
func dsn(c map[string]string) string {
	if url := config.GetString(c, "DATABASE_URL", ""); url != "" {
		return url
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		config.GetString(c, "DB_HOST", "localhost"),
		config.GetString(c, "DB_USER", "postgres"),
		config.GetString(c, "DB_PASSWORD", ""),
		config.GetString(c, "DB_NAME", "student_projects"),
		config.GetString(c, "DB_PORT", "5432"),
		config.GetString(c, "DB_SSLMODE", "disable"),
	)
}

func openDatabase(c map[string]string) (*gorm.DB, error) {
	newLogger := logger.New(
		stdlog.New(os.Stdout, "\r\n", stdlog.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn(c),
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt:    false,
		Logger:         newLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	// Route reads to a replica when one is configured
	if replica := config.GetString(c, "DB_READ_REPLICA_URL", ""); replica != "" {
		err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.New(postgres.Config{DSN: replica, PreferSimpleProtocol: true})},
			Policy:   dbresolver.RandomPolicy{},
		}))
		if err != nil {
			return nil, fmt.Errorf("register read replica: %w", err)
		}
		log.Info().Msg("read replica registered")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(config.GetInt(c, "DB_MAX_OPEN_CONNS", 25))
	sqlDB.SetMaxIdleConns(config.GetInt(c, "DB_MAX_IDLE_CONNS", 5))
	sqlDB.SetConnMaxLifetime(config.GetDuration(c, "DB_CONN_MAX_LIFETIME_MINUTES", time.Minute, 30))

	// Test database connection
	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("test query: %w", err)
	}
	return db, nil
}

// openRedis returns nil when REDIS_ADDR is unset or unreachable; the reference
// cache then reads straight from the database.
func openRedis(c map[string]string) *redis.Client {
	addr := config.GetString(c, "REDIS_ADDR", "")
	if addr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: config.GetString(c, "REDIS_PASSWORD", ""),
		DB:       config.GetInt(c, "REDIS_DB", 0),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", addr).Msg("redis unavailable, reference cache disabled")
		_ = rdb.Close()
		return nil
	}
	return rdb
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
