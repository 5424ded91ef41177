package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"go.uber.org/zap"

	"github.com/oggyb/lessons-api/internal/config"
	"github.com/oggyb/lessons-api/internal/db/gormdb"
	"github.com/oggyb/lessons-api/internal/domain/lesson"
	"github.com/oggyb/lessons-api/internal/logger"
	lessonRepo "github.com/oggyb/lessons-api/internal/repository/gorm/lesson"
	userRepo "github.com/oggyb/lessons-api/internal/repository/gorm/user"
)

// seedCount is how many lessons every run inserts.
const seedCount = 30

var topics = []string{
	"Routing", "Controllers", "Transformers", "Error responses",
	"Pagination", "Authentication", "Token refresh", "Validation",
}

func main() {
	ctx := context.Background()

	// Load application configuration (DB, Redis, etc.) from env/.env.
	cfg := config.New()

	zl, err := logger.New(cfg.App.Env, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("[Seed] Failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	// Open a Postgres connection through our GORM adapter.
	gormAdapter, err := gormdb.New(cfg.PostgresDSN(), zl)
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = gormAdapter.Close() }()

	zl.Info("connected to database", zap.String("name", cfg.DB.Name))

	// 1) AutoMigrate: make sure the lessons and users tables exist.
	if err := gormAdapter.AutoMigrate(&lessonRepo.LessonModel{}, &userRepo.UserModel{}); err != nil {
		zl.Fatal("AutoMigrate failed", zap.Error(err))
	}
	zl.Info("tables are up to date")

	// 2) Insert sample lessons, roughly a third of them free.
	repo := lessonRepo.NewRepository(gormAdapter)

	for i := 0; i < seedCount; i++ {
		topic := topics[i%len(topics)]
		title := fmt.Sprintf("Lesson %d: %s", i+1, topic)
		body := fmt.Sprintf("Everything you need to know about %s, part %d.", topic, i/len(topics)+1)

		// Use the domain constructor so we respect domain rules.
		l, err := lesson.NewLesson(title, body, rand.Intn(3) == 0)
		if err != nil {
			zl.Fatal("invalid seed lesson", zap.Int("n", i+1), zap.Error(err))
		}

		if err := repo.Save(ctx, l); err != nil {
			zl.Fatal("failed to save lesson", zap.Int("n", i+1), zap.Error(err))
		}

		zl.Debug("created lesson", zap.Uint64("id", l.ID), zap.Bool("free", l.Free))
	}

	zl.Info("seeding done", zap.Int("inserted", seedCount), zap.String("table", "lessons"))
}
