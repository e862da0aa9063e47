package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Malay-Max/QuizWhiz-sub001/internal/config"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/database"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/logger"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/repository"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/service"

	"go.uber.org/zap"
)

// Loads a text-format question file into a category. The file uses the
// same line format as the import endpoint:
//
//	;;<question>;; {<option> - <option> - ...} [<correct option text>]
func main() {
	categoryID := flag.String("category", "", "target category id")
	file := flag.String("file", "", "path to the question file")
	flag.Parse()

	if *categoryID == "" || *file == "" {
		fmt.Println("Usage: seed_questions -category <id> -file <questions.txt>")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	l := logger.Get()

	payload, err := os.ReadFile(*file)
	if err != nil {
		l.Fatal("Failed to read question file", zap.String("file", *file), zap.Error(err))
	}

	db, err := database.NewSQLXSQLiteDB(cfg.Database.Path)
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	if err := database.MigrateUp(db.DB); err != nil {
		l.Fatal("Failed to run migrations", zap.Error(err))
	}

	questionRepo := repository.NewQuestionDatabaseAdapter(db)
	categoryRepo := repository.NewCategoryDatabaseAdapter(db)

	// Seeding never calls out to the LLM; explanations can be added later.
	importer := service.NewImportService(questionRepo, categoryRepo, nil, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	report, err := importer.ImportText(ctx, *categoryID, string(payload))
	if err != nil {
		l.Fatal("Import failed", zap.Error(err))
	}

	l.Info("Seeding finished",
		zap.Int("added", report.Added),
		zap.Int("failed", report.Failed),
	)
	for _, e := range report.Errors {
		l.Warn("Rejected line", zap.String("reason", e))
	}
	if report.Failed > 0 {
		os.Exit(1)
	}
}
