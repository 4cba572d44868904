package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"repair-backend/internal/handlers"
	"repair-backend/internal/middleware"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	jobHandler *handlers.JobHandler,
	photoHandler *handlers.PhotoHandler,
	trackingHandler *handlers.TrackingHandler,
	receiptHandler *handlers.ReceiptHandler,
	notificationHandler *handlers.NotificationHandler,
	reportHandler *handlers.ReportHandler,
	dashboardHandler *handlers.DashboardHandler,
	smsLogHandler *handlers.SMSLogHandler,
	healthHandler *handlers.HealthHandler,
	monitoringHandler *handlers.MonitoringHandler,
	wsHandler *handlers.WSHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public routes - no authentication
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/track", trackingHandler.Track).Methods("GET", "POST")
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler())

	// Authenticated account info
	r.Handle("/auth/me", authMiddleware.Authenticate(
		http.HandlerFunc(authHandler.Me))).Methods("GET")

	// Staff API routes - Jobs
	jobsAPI := r.PathPrefix("/api/jobs").Subrouter()
	jobsAPI.Use(authMiddleware.Authenticate)
	jobsAPI.HandleFunc("", jobHandler.ListJobs).Methods("GET")
	jobsAPI.HandleFunc("", jobHandler.CreateJob).Methods("POST")
	jobsAPI.HandleFunc("/{job_id}", jobHandler.GetJob).Methods("GET")
	jobsAPI.HandleFunc("/{job_id}", jobHandler.UpdateJob).Methods("PUT")
	jobsAPI.HandleFunc("/{job_id}", jobHandler.DeleteJob).Methods("DELETE")
	jobsAPI.HandleFunc("/{job_id}/quick-action", jobHandler.QuickAction).Methods("POST")
	jobsAPI.HandleFunc("/{job_id}/photos", photoHandler.List).Methods("GET")
	jobsAPI.HandleFunc("/{job_id}/photos", photoHandler.Upload).Methods("POST")
	jobsAPI.HandleFunc("/{job_id}/receipt", receiptHandler.Get).Methods("GET")
	jobsAPI.HandleFunc("/{job_id}/receipt/pdf", receiptHandler.PDF).Methods("GET")
	jobsAPI.HandleFunc("/{job_id}/notify", notificationHandler.NotifyReady).Methods("POST")

	// Staff API routes - Photos by id
	photosAPI := r.PathPrefix("/api/photos").Subrouter()
	photosAPI.Use(authMiddleware.Authenticate)
	photosAPI.HandleFunc("/{photo_id}", photoHandler.Serve).Methods("GET")
	photosAPI.HandleFunc("/{photo_id}", photoHandler.Delete).Methods("DELETE")

	// Staff API routes - Notifications, dashboard, reports
	staffAPI := r.PathPrefix("/api").Subrouter()
	staffAPI.Use(authMiddleware.Authenticate)
	staffAPI.HandleFunc("/notifications/ready", notificationHandler.NotifyReadyBatch).Methods("POST")
	staffAPI.HandleFunc("/dashboard/stats", dashboardHandler.Stats).Methods("GET")
	staffAPI.HandleFunc("/reports/summary", reportHandler.Summary).Methods("GET")
	staffAPI.HandleFunc("/reports/summary/pdf", reportHandler.PDF).Methods("GET")
	staffAPI.HandleFunc("/ws/dashboard", wsHandler.DashboardEvents)

	// Admin-only API routes
	adminAPI := r.PathPrefix("/api/admin").Subrouter()
	adminAPI.Use(authMiddleware.RequireAdmin)
	adminAPI.HandleFunc("/users", userHandler.ListUsers).Methods("GET")
	adminAPI.HandleFunc("/users", userHandler.CreateUser).Methods("POST")
	adminAPI.HandleFunc("/users/{id}", userHandler.GetUser).Methods("GET")
	adminAPI.HandleFunc("/users/{id}", userHandler.UpdateUser).Methods("PUT")
	adminAPI.HandleFunc("/users/{id}", userHandler.DeleteUser).Methods("DELETE")
	adminAPI.HandleFunc("/sms-logs", smsLogHandler.List).Methods("GET")
	adminAPI.HandleFunc("/system/stats", monitoringHandler.SystemStats).Methods("GET")

	return r
}
