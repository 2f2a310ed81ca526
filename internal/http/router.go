package http

import (
	"net/http"

	"ca-backend/internal/handlers"
	"ca-backend/internal/middleware"
	"ca-backend/internal/monitoring"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	totpHandler *handlers.TOTPHandler,
	accessHandler *handlers.AccessHandler,
	customerHandler *handlers.CustomerHandler,
	documentHandler *handlers.DocumentHandler,
	credentialHandler *handlers.CredentialHandler,
	processHandler *handlers.ProcessHandler,
	sopHandler *handlers.SOPHandler,
	categoryHandler *handlers.ServiceCategoryHandler,
	agentHandler *handlers.ServiceAgentHandler,
	ticketHandler *handlers.ServiceTicketHandler,
	reportHandler *handlers.ReportHandler,
	healthHandler *handlers.HealthHandler,
	monitor *monitoring.Collector,
	authMiddleware *middleware.AuthMiddleware,
	accessMiddleware *middleware.AccessMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public routes
	r.HandleFunc("/health", healthHandler.Health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/auth/verify-2fa", authHandler.Verify2FA).Methods("POST")

	// Session routes
	authAPI := r.PathPrefix("/api/auth").Subrouter()
	authAPI.Use(authMiddleware.Authenticate)
	authAPI.HandleFunc("/me", authHandler.Me).Methods("GET")
	authAPI.HandleFunc("/2fa/setup", totpHandler.Setup).Methods("POST")
	authAPI.HandleFunc("/2fa/confirm", totpHandler.Confirm).Methods("POST")
	authAPI.HandleFunc("/2fa", totpHandler.Disable).Methods("DELETE")

	// Staff management is admin only, including creating new logins.
	usersAPI := r.PathPrefix("/api/users").Subrouter()
	usersAPI.Use(authMiddleware.Authenticate)
	usersAPI.Use(authMiddleware.RequireAdmin)
	usersAPI.HandleFunc("", userHandler.List).Methods("GET")
	usersAPI.HandleFunc("", authHandler.Signup).Methods("POST")
	usersAPI.HandleFunc("/{id:[0-9]+}", userHandler.Get).Methods("GET")
	usersAPI.HandleFunc("/{id:[0-9]+}", userHandler.Update).Methods("PUT")
	usersAPI.HandleFunc("/{id:[0-9]+}", userHandler.Delete).Methods("DELETE")

	adminAPI := r.PathPrefix("/api/admin").Subrouter()
	adminAPI.Use(authMiddleware.Authenticate)
	adminAPI.Use(authMiddleware.RequireAdmin)
	adminAPI.HandleFunc("/login-logs", userHandler.LoginLogs).Methods("GET")
	adminAPI.HandleFunc("/module-access", accessHandler.List).Methods("GET")
	adminAPI.HandleFunc("/module-access", accessHandler.Upsert).Methods("POST")
	adminAPI.HandleFunc("/module-access/{id:[0-9]+}", accessHandler.Delete).Methods("DELETE")
	adminAPI.HandleFunc("/monitoring/stats", monitor.StatsHandler).Methods("GET")
	adminAPI.HandleFunc("/monitoring/ws", monitor.StreamHandler)

	accessAPI := r.PathPrefix("/api/access").Subrouter()
	accessAPI.Use(authMiddleware.Authenticate)
	accessAPI.HandleFunc("/me", accessHandler.MyModules).Methods("GET")
	accessAPI.HandleFunc("/modules/{key}", accessHandler.CheckModule).Methods("GET")
	accessAPI.HandleFunc("/features/{module}/{feature}", accessHandler.CheckFeature).Methods("GET")

	// Customers and leads
	customersAPI := r.PathPrefix("/api/customers").Subrouter()
	customersAPI.Use(authMiddleware.Authenticate)
	customersAPI.Use(accessMiddleware.RequireModule("customers"))
	customersAPI.HandleFunc("", customerHandler.List).Methods("GET")
	customersAPI.HandleFunc("", customerHandler.Create).Methods("POST")
	customersAPI.HandleFunc("/search", customerHandler.Search).Methods("GET")
	customersAPI.HandleFunc("/{id:[0-9]+}", customerHandler.Get).Methods("GET")
	customersAPI.HandleFunc("/{id:[0-9]+}", customerHandler.Update).Methods("PUT")
	customersAPI.HandleFunc("/{id:[0-9]+}", customerHandler.Delete).Methods("DELETE")
	customersAPI.Handle("/{id:[0-9]+}/convert",
		accessMiddleware.RequireFeature("customers", "convert_lead")(
			http.HandlerFunc(customerHandler.ConvertLead))).Methods("POST")

	// Documents and document types
	documentsAPI := r.PathPrefix("/api/documents").Subrouter()
	documentsAPI.Use(authMiddleware.Authenticate)
	documentsAPI.Use(accessMiddleware.RequireModule("documents"))
	documentsAPI.HandleFunc("", documentHandler.List).Methods("GET")
	documentsAPI.HandleFunc("", documentHandler.Upload).Methods("POST")
	documentsAPI.HandleFunc("/types", documentHandler.ListTypes).Methods("GET")
	documentsAPI.HandleFunc("/types", documentHandler.CreateType).Methods("POST")
	documentsAPI.HandleFunc("/types/{id:[0-9]+}", documentHandler.UpdateType).Methods("PUT")
	documentsAPI.HandleFunc("/types/{id:[0-9]+}", documentHandler.DeleteType).Methods("DELETE")
	documentsAPI.HandleFunc("/{id:[0-9]+}", documentHandler.Get).Methods("GET")
	documentsAPI.HandleFunc("/{id:[0-9]+}/download", documentHandler.Download).Methods("GET")
	documentsAPI.HandleFunc("/{id:[0-9]+}/visibility", documentHandler.SetVisibility).Methods("PATCH")
	documentsAPI.HandleFunc("/{id:[0-9]+}", documentHandler.Delete).Methods("DELETE")

	// Credentials and credential types
	credentialsAPI := r.PathPrefix("/api/credentials").Subrouter()
	credentialsAPI.Use(authMiddleware.Authenticate)
	credentialsAPI.Use(accessMiddleware.RequireModule("credentials"))
	credentialsAPI.HandleFunc("", credentialHandler.List).Methods("GET")
	credentialsAPI.HandleFunc("", credentialHandler.Create).Methods("POST")
	credentialsAPI.HandleFunc("/types", credentialHandler.ListTypes).Methods("GET")
	credentialsAPI.HandleFunc("/types", credentialHandler.CreateType).Methods("POST")
	credentialsAPI.HandleFunc("/types/{id:[0-9]+}", credentialHandler.UpdateType).Methods("PUT")
	credentialsAPI.HandleFunc("/types/{id:[0-9]+}", credentialHandler.DeleteType).Methods("DELETE")
	credentialsAPI.HandleFunc("/customer/{customer_id:[0-9]+}", credentialHandler.ListByCustomer).Methods("GET")
	credentialsAPI.HandleFunc("/{id:[0-9]+}", credentialHandler.Get).Methods("GET")
	credentialsAPI.HandleFunc("/{id:[0-9]+}", credentialHandler.Update).Methods("PUT")
	credentialsAPI.HandleFunc("/{id:[0-9]+}", credentialHandler.Delete).Methods("DELETE")

	// Processes
	processesAPI := r.PathPrefix("/api/processes").Subrouter()
	processesAPI.Use(authMiddleware.Authenticate)
	processesAPI.Use(accessMiddleware.RequireModule("processes"))
	processesAPI.HandleFunc("", processHandler.List).Methods("GET")
	processesAPI.HandleFunc("", processHandler.Create).Methods("POST")
	processesAPI.HandleFunc("/{id:[0-9]+}", processHandler.Get).Methods("GET")
	processesAPI.HandleFunc("/{id:[0-9]+}", processHandler.Update).Methods("PUT")
	processesAPI.HandleFunc("/{id:[0-9]+}", processHandler.Delete).Methods("DELETE")

	// SOPs and their steps
	sopsAPI := r.PathPrefix("/api/sops").Subrouter()
	sopsAPI.Use(authMiddleware.Authenticate)
	sopsAPI.Use(accessMiddleware.RequireModule("sops"))
	sopsAPI.HandleFunc("", sopHandler.List).Methods("GET")
	sopsAPI.HandleFunc("", sopHandler.Create).Methods("POST")
	sopsAPI.HandleFunc("/{id:[0-9]+}", sopHandler.Get).Methods("GET")
	sopsAPI.HandleFunc("/{id:[0-9]+}", sopHandler.Update).Methods("PUT")
	sopsAPI.HandleFunc("/{id:[0-9]+}", sopHandler.Delete).Methods("DELETE")
	sopsAPI.HandleFunc("/{id:[0-9]+}/steps", sopHandler.ListSteps).Methods("GET")
	sopsAPI.HandleFunc("/{id:[0-9]+}/steps", sopHandler.CreateStep).Methods("POST")
	sopsAPI.HandleFunc("/{id:[0-9]+}/steps/reorder", sopHandler.ReorderSteps).Methods("PUT", "POST")
	sopsAPI.HandleFunc("/{id:[0-9]+}/steps/{step_id:[0-9]+}", sopHandler.UpdateStep).Methods("PUT")
	sopsAPI.HandleFunc("/{id:[0-9]+}/steps/{step_id:[0-9]+}/file", sopHandler.AttachStepFile).Methods("POST")
	sopsAPI.HandleFunc("/{id:[0-9]+}/steps/{step_id:[0-9]+}", sopHandler.DeleteStep).Methods("DELETE")

	// Service categories
	categoriesAPI := r.PathPrefix("/api/service-categories").Subrouter()
	categoriesAPI.Use(authMiddleware.Authenticate)
	categoriesAPI.Use(accessMiddleware.RequireModule("service_categories"))
	categoriesAPI.HandleFunc("", categoryHandler.List).Methods("GET")
	categoriesAPI.HandleFunc("", categoryHandler.Create).Methods("POST")
	categoriesAPI.HandleFunc("/{id:[0-9]+}", categoryHandler.Get).Methods("GET")
	categoriesAPI.HandleFunc("/{id:[0-9]+}", categoryHandler.Update).Methods("PUT")
	categoriesAPI.HandleFunc("/{id:[0-9]+}", categoryHandler.Delete).Methods("DELETE")

	// Service agents
	agentsAPI := r.PathPrefix("/api/service-agents").Subrouter()
	agentsAPI.Use(authMiddleware.Authenticate)
	agentsAPI.Use(accessMiddleware.RequireModule("service_agents"))
	agentsAPI.HandleFunc("", agentHandler.List).Methods("GET")
	agentsAPI.HandleFunc("", agentHandler.Create).Methods("POST")
	agentsAPI.HandleFunc("/{id:[0-9]+}", agentHandler.Get).Methods("GET")
	agentsAPI.HandleFunc("/{id:[0-9]+}", agentHandler.Update).Methods("PUT")
	agentsAPI.HandleFunc("/{id:[0-9]+}", agentHandler.Delete).Methods("DELETE")

	// Service tickets and their tasks
	ticketsAPI := r.PathPrefix("/api/service-tickets").Subrouter()
	ticketsAPI.Use(authMiddleware.Authenticate)
	ticketsAPI.Use(accessMiddleware.RequireModule("service_tickets"))
	ticketsAPI.HandleFunc("", ticketHandler.List).Methods("GET")
	ticketsAPI.HandleFunc("", ticketHandler.Create).Methods("POST")
	ticketsAPI.HandleFunc("/{id:[0-9]+}", ticketHandler.Get).Methods("GET")
	ticketsAPI.HandleFunc("/{id:[0-9]+}", ticketHandler.Update).Methods("PUT")
	ticketsAPI.HandleFunc("/{id:[0-9]+}", ticketHandler.Delete).Methods("DELETE")
	ticketsAPI.HandleFunc("/{id:[0-9]+}/tasks", ticketHandler.ListTasks).Methods("GET")
	ticketsAPI.HandleFunc("/{id:[0-9]+}/tasks", ticketHandler.CreateTask).Methods("POST")
	ticketsAPI.HandleFunc("/{id:[0-9]+}/tasks/{task_id:[0-9]+}", ticketHandler.UpdateTask).Methods("PUT")
	ticketsAPI.HandleFunc("/{id:[0-9]+}/tasks/{task_id:[0-9]+}", ticketHandler.DeleteTask).Methods("DELETE")

	// Reports
	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.Use(authMiddleware.Authenticate)
	reportsAPI.Use(accessMiddleware.RequireModule("reports"))
	reportsAPI.HandleFunc("/customers.csv", reportHandler.CustomerCSV).Methods("GET")
	reportsAPI.HandleFunc("/customers/{id:[0-9]+}.pdf", reportHandler.CustomerPDF).Methods("GET")

	return r
}
