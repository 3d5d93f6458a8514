package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/workloop/workloop-backend-go/internal/config"
	appHTTP "github.com/workloop/workloop-backend-go/internal/handler/http"
	"github.com/workloop/workloop-backend-go/internal/pkg/cron"
	"github.com/workloop/workloop-backend-go/internal/pkg/database"
	"github.com/workloop/workloop-backend-go/internal/pkg/jwt"
	"github.com/workloop/workloop-backend-go/internal/pkg/storage"
	"github.com/workloop/workloop-backend-go/internal/pkg/ws"
	"github.com/workloop/workloop-backend-go/internal/repository/postgresql"
	authService "github.com/workloop/workloop-backend-go/internal/service/auth"
	chatService "github.com/workloop/workloop-backend-go/internal/service/chat"
	employeeService "github.com/workloop/workloop-backend-go/internal/service/employee"
	fileService "github.com/workloop/workloop-backend-go/internal/service/file"
	reportService "github.com/workloop/workloop-backend-go/internal/service/report"
	taskService "github.com/workloop/workloop-backend-go/internal/service/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	jwtRepo := postgresql.NewJWTRepository(db)
	taskRepo := postgresql.NewTaskRepository(db)
	reportRepo := postgresql.NewReportRepository(db)
	chatRepo := postgresql.NewChatRepository(db)

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	hub := ws.NewHub()

	fileSvc := fileService.NewFileService(fileStorage)
	authSvc := authService.NewAuthService(db, userRepo, companyRepo, jwtSvc, jwtRepo)
	taskSvc := taskService.NewTaskService(taskRepo, userRepo, hub)
	reportSvc := reportService.NewReportService(reportRepo, userRepo, hub)
	chatSvc := chatService.NewChatService(chatRepo, userRepo, hub)
	employeeSvc := employeeService.NewEmployeeService(db, userRepo, taskRepo, reportRepo, chatRepo)

	authHandler := appHTTP.NewAuthHandler(jwtSvc, authSvc)
	taskHandler := appHTTP.NewTaskHandler(taskSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)
	chatHandler := appHTTP.NewChatHandler(chatSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	fileHandler := appHTTP.NewFileHandler(fileSvc)
	wsHandler := appHTTP.NewWSHandler(hub, jwtSvc, chatSvc)

	scheduler := cron.NewScheduler()
	retentionJobs := cron.NewRetentionJobs(taskRepo, cfg.Retention.CompletedTaskTTL)
	retentionJobs.RegisterJobs(scheduler, cfg.Retention.SweepInterval)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		jwtSvc,
		authHandler,
		taskHandler,
		reportHandler,
		chatHandler,
		employeeHandler,
		fileHandler,
		wsHandler,
		cfg.Storage.BasePath,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
