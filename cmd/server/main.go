package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/Temirlan472/Office_Board/internal/config"
	"github.com/Temirlan472/Office_Board/internal/database"
	"github.com/Temirlan472/Office_Board/internal/handlers"
	"github.com/Temirlan472/Office_Board/internal/realtime"
	"github.com/Temirlan472/Office_Board/internal/repository"
	"github.com/Temirlan472/Office_Board/internal/scheduler"
	"github.com/Temirlan472/Office_Board/internal/services"
	"github.com/Temirlan472/Office_Board/pkg/logger"
	"github.com/Temirlan472/Office_Board/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger()
	logger.Log.Info("Logger initialized")

	// Connect to MongoDB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	noticeRepo := repository.NewNoticeRepository(db)
	contactRepo := repository.NewContactRepository(db)

	// --- Services ---
	userService := services.NewUserService(userRepo)
	noticeService := services.NewNoticeService(noticeRepo, userRepo)
	contactService := services.NewContactService(contactRepo)
	dashboardService := services.NewDashboardService(userRepo, noticeRepo, contactRepo)

	// --- Presence hub + publish announcer ---
	hub := realtime.NewHub()
	announcer := scheduler.NewPublishAnnouncer(noticeRepo, hub)
	scheduler.StartNoticeCronJobs(cfg.AnnounceSpec, announcer)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(userService)
	noticeHandler := handlers.NewNoticeHandler(noticeService)
	contactHandler := handlers.NewContactHandler(contactService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	presenceHandler := handlers.NewPresenceHandler(hub)

	// Initialize Gorilla Mux router
	router := mux.NewRouter()

	// Notice routes: writes are admin only, reads are for any
	// authenticated account
	noticeRoutes := router.PathPrefix("/notice").Subrouter()
	noticeRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))

	noticeAdminRoutes := noticeRoutes.NewRoute().Subrouter()
	noticeAdminRoutes.Use(middleware.RequireRole("admin"))
	noticeAdminRoutes.HandleFunc("", noticeHandler.CreateNoticeHandler).Methods("POST")
	noticeAdminRoutes.HandleFunc("/{id}", noticeHandler.UpdateNoticeHandler).Methods("PUT")
	noticeAdminRoutes.HandleFunc("/{id}/status", noticeHandler.UpdateNoticeStatusHandler).Methods("PATCH")
	noticeAdminRoutes.HandleFunc("/{id}", noticeHandler.DeleteNoticeHandler).Methods("DELETE")

	noticeRoutes.HandleFunc("", noticeHandler.GetNoticesHandler).Methods("GET")
	noticeRoutes.HandleFunc("/my-notices", noticeHandler.GetMyNoticesHandler).Methods("GET")
	noticeRoutes.HandleFunc("/{id}", noticeHandler.GetNoticeHandler).Methods("GET")

	// User routes
	userRoutes := router.PathPrefix("/user").Subrouter()
	userRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))

	userAdminRoutes := userRoutes.NewRoute().Subrouter()
	userAdminRoutes.Use(middleware.RequireRole("admin"))
	userAdminRoutes.HandleFunc("/admin", userHandler.GetAdminsHandler).Methods("GET")
	userAdminRoutes.HandleFunc("/admin", userHandler.AddAdminHandler).Methods("POST")
	userAdminRoutes.HandleFunc("/admin/{id}", userHandler.UpdateAdminHandler).Methods("PUT")
	userAdminRoutes.HandleFunc("/admin/{id}", userHandler.DeleteAdminHandler).Methods("DELETE")

	userManageRoutes := userRoutes.NewRoute().Subrouter()
	userManageRoutes.Use(middleware.RequireRole("admin", "sub_admin"))
	userManageRoutes.HandleFunc("", userHandler.GetUsersHandler).Methods("GET")
	userManageRoutes.HandleFunc("/{id}", userHandler.UpdateUserStatusHandler).Methods("PUT")

	userRoutes.HandleFunc("/connect-partner", userHandler.ConnectPartnerHandler).Methods("POST")
	userRoutes.HandleFunc("/{id}", userHandler.GetUserHandler).Methods("GET")
	userRoutes.HandleFunc("/{id}", userHandler.UpdateProfileHandler).Methods("PATCH")
	userRoutes.HandleFunc("/{id}", userHandler.DeleteProfileHandler).Methods("DELETE")

	// Contact routes: creation is open to guests, the rest is admin only
	router.HandleFunc("/contact", contactHandler.CreateContactHandler).Methods("POST")

	contactRoutes := router.PathPrefix("/contact").Subrouter()
	contactRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	contactRoutes.Use(middleware.RequireRole("admin"))
	contactRoutes.HandleFunc("", contactHandler.GetContactsHandler).Methods("GET")
	contactRoutes.HandleFunc("/stats", contactHandler.GetStatsHandler).Methods("GET")
	contactRoutes.HandleFunc("/mark-read", contactHandler.MarkAsReadHandler).Methods("POST")
	contactRoutes.HandleFunc("/{id}", contactHandler.GetContactHandler).Methods("GET")
	contactRoutes.HandleFunc("/{id}", contactHandler.UpdateContactHandler).Methods("PATCH")
	contactRoutes.HandleFunc("/{id}", contactHandler.DeleteContactHandler).Methods("DELETE")

	// Dashboard routes
	dashboardRoutes := router.PathPrefix("/dashboard").Subrouter()
	dashboardRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	dashboardRoutes.Use(middleware.RequireRole("admin"))
	dashboardRoutes.HandleFunc("", dashboardHandler.GetDashboardHandler).Methods("GET")

	// Presence routes
	wsRoutes := router.PathPrefix("/ws").Subrouter()
	wsRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	wsRoutes.HandleFunc("", presenceHandler.ServeWSHandler).Methods("GET")

	wsAdminRoutes := wsRoutes.NewRoute().Subrouter()
	wsAdminRoutes.Use(middleware.RequireRole("admin"))
	wsAdminRoutes.HandleFunc("/online", presenceHandler.GetOnlineUsersHandler).Methods("GET")

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	// Start the HTTP server
	port := cfg.Port
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)

	fmt.Printf("Server running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
