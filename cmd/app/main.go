package main

import (
	"fmt"
	"net/http"
	"os"

	"mestrace/cmd"
	mestrace_http "mestrace/internal/adapters/in/http"
	"mestrace/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := openDatabase(configs)

	app := cmd.NewCompositionRoot(configs, gormDB)

	jobManager := jobs.NewJobManager(
		app.CreateRefreshDowntimeSummariesCommandHandler(),
		app.Logger(),
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func openDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func startWebServer(app cmd.CompositionRoot, port string) {
	server := mestrace_http.NewServer(mestrace_http.Handlers{
		CreateMO:       app.CreateCreateMOCommandHandler(),
		ApproveMO:      app.CreateApproveMOCommandHandler(),
		RejectMO:       app.CreateRejectMOCommandHandler(),
		AllocateRM:     app.CreateAllocateRMCommandHandler(),
		CreatePipeline: app.CreateCreatePipelineCommandHandler(),
		CreateBatch:    app.CreateCreateBatchCommandHandler(),

		AssignOperator:   app.CreateAssignOperatorCommandHandler(),
		ReassignOperator: app.CreateReassignOperatorCommandHandler(),
		AllocateBatch:    app.CreateAllocateBatchCommandHandler(),
		ReceiveBatch:     app.CreateReceiveBatchCommandHandler(),
		StartProcessing:  app.CreateStartProcessingCommandHandler(),
		ReturnBatch:      app.CreateReturnBatchCommandHandler(),
		VerifyReceipt:    app.CreateVerifyReceiptCommandHandler(),
		ClearHold:        app.CreateClearHoldCommandHandler(),
		ResolveIssue:     app.CreateResolveIssueCommandHandler(),
		CompleteProcess:  app.CreateCompleteProcessCommandHandler(),

		RecordCompletion: app.CreateRecordCompletionCommandHandler(),
		StartRework:      app.CreateStartReworkCommandHandler(),
		CompleteRework:   app.CreateCompleteReworkCommandHandler(),
		CreateFIRework:   app.CreateCreateFIReworkCommandHandler(),
		StartFIRework:    app.CreateStartFIReworkCommandHandler(),
		CompleteFIRework: app.CreateCompleteFIReworkCommandHandler(),
		Reinspect:        app.CreateReinspectCommandHandler(),

		RecordFGQualityCheck: app.CreateRecordFGQualityCheckCommandHandler(),
		DispatchFG:           app.CreateDispatchFGCommandHandler(),

		StopProcess:   app.CreateStopProcessCommandHandler(),
		ResumeProcess: app.CreateResumeProcessCommandHandler(),

		RemainingToAllocate: app.CreateGetRemainingToAllocateQueryHandler(),
		UncompletedBatches:  app.CreateGetUncompletedBatchesQueryHandler(),
		BatchTimeline:       app.CreateGetBatchTimelineQueryHandler(),
		DowntimeSummary:     app.CreateGetDowntimeSummaryQueryHandler(),
	})

	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
