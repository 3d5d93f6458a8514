package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/workloop/workloop-backend-go/internal/handler/http/middleware"
	"github.com/workloop/workloop-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	authHandler AuthHandler,
	taskHandler TaskHandler,
	reportHandler ReportHandler,
	chatHandler ChatHandler,
	employeeHandler EmployeeHandler,
	fileHandler FileHandler,
	wsHandler WSHandler,
	storageBasePath string,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "workloop"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	// Uploaded report attachments
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(storageBasePath))))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
		})

		// The upgrade request authenticates with a ticket, not a
		// bearer header, so it stays outside the verifier group.
		r.Get("/ws", wsHandler.Connect)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService))

			r.Get("/ws/token", wsHandler.Token)

			// Team lead only
			r.Route("/teamlead", func(r chi.Router) {
				r.Use(middleware.RequireTeamLead)
				r.Post("/task-assign/{employeeID}", taskHandler.Assign)
				r.Get("/tasks", taskHandler.ListCreated)
				r.Put("/report-status/{reportID}", reportHandler.Review)
				r.Get("/reports", reportHandler.ListForTeamLead)
				r.Get("/employees", employeeHandler.ListTeam)
				r.Delete("/delete-employee/{employeeID}", employeeHandler.Delete)
			})

			// Employee only
			r.Route("/employee", func(r chi.Router) {
				r.Use(middleware.RequireEmployee)
				r.Get("/tasks", taskHandler.ListAssigned)
				r.Put("/task-status/{taskID}", taskHandler.UpdateStatus)
				r.Get("/reports", reportHandler.ListOwn)
				r.Post("/reports", reportHandler.Submit)
				r.Post("/report-attachment", fileHandler.UploadReportAttachment)
				r.Put("/reports/{reportID}", reportHandler.Update)
				r.Delete("/reports/{reportID}", reportHandler.Delete)
			})

			r.Route("/chat", func(r chi.Router) {
				r.Post("/", chatHandler.SendMessage)
				r.Get("/{userID}", chatHandler.GetHistory)
				r.Delete("/{userID}", chatHandler.DeleteHistory)
			})

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", employeeHandler.GetProfile)
				r.Put("/", employeeHandler.UpdateProfile)
				r.Put("/password", employeeHandler.ChangePassword)
			})
		})
	})
	return r
}
