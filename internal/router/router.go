package router

import (
	"github.com/gin-gonic/gin"

	"setflow/internal/domain"
	"setflow/internal/handler"
	"setflow/internal/middleware"
	"setflow/internal/service"
)

// Handlers bundles every HTTP handler the router wires up.
type Handlers struct {
	Auth         *handler.AuthHandler
	Organization *handler.OrganizationHandler
	Member       *handler.MemberHandler
	Invite       *handler.InviteHandler
	Client       *handler.ClientHandler
	Catalog      *handler.CatalogHandler
	Proposal     *handler.ProposalHandler
	Project      *handler.ProjectHandler
	Production   *handler.ProductionHandler
	Supplier     *handler.SupplierHandler
	Finance      *handler.FinanceHandler
	Notification *handler.NotificationHandler
	Assist       *handler.AssistHandler
	File         *handler.FileHandler
	Health       *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(authSvc service.AuthService, allowedOrigins []string, h Handlers) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.RefreshToken)
	auth.POST("/register", h.Auth.Register)

	// Invite acceptance is public: the token is the credential.
	v1.POST("/invites/accept", h.Invite.Accept)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))
	protected.Use(middleware.OrgGuard())

	// Organization settings
	protected.GET("/organization", h.Organization.Get)
	protected.PUT("/organization", middleware.RequireRole(domain.RoleOwner), h.Organization.Update)

	// Team members
	members := protected.Group("/members")
	members.GET("", h.Member.List)
	members.GET("/me", h.Member.Me)
	members.PUT("/me", h.Member.UpdateProfile)
	members.GET("/:id", h.Member.GetByID)
	members.PUT("/:id/role", middleware.RequireRole(domain.RoleOwner), h.Member.UpdateRole)
	members.DELETE("/:id", middleware.RequireMinRole(domain.RoleAdmin), h.Member.Remove)

	// Invites
	invites := protected.Group("/invites")
	invites.Use(middleware.RequireMinRole(domain.RoleProducer))
	invites.POST("", h.Invite.Create)
	invites.GET("", h.Invite.List)
	invites.POST("/:id/resend", h.Invite.Resend)
	invites.POST("/:id/revoke", h.Invite.Revoke)

	// Clients
	clients := protected.Group("/clients")
	clients.POST("", middleware.RequireMinRole(domain.RoleProducer), h.Client.Create)
	clients.GET("", h.Client.List)
	clients.GET("/:id", h.Client.GetByID)
	clients.PUT("/:id", middleware.RequireMinRole(domain.RoleProducer), h.Client.Update)
	clients.DELETE("/:id", middleware.RequireMinRole(domain.RoleAdmin), h.Client.Delete)

	// Service catalog
	catalog := protected.Group("/catalog")
	catalog.POST("", middleware.RequireMinRole(domain.RoleProducer), h.Catalog.Create)
	catalog.GET("", h.Catalog.List)
	catalog.GET("/:id", h.Catalog.GetByID)
	catalog.PUT("/:id", middleware.RequireMinRole(domain.RoleProducer), h.Catalog.Update)
	catalog.DELETE("/:id", middleware.RequireMinRole(domain.RoleAdmin), h.Catalog.Delete)

	// Proposals
	proposals := protected.Group("/proposals")
	proposals.Use(middleware.RequireMinRole(domain.RoleProducer))
	proposals.POST("", h.Proposal.Create)
	proposals.GET("", h.Proposal.List)
	proposals.GET("/:id", h.Proposal.GetByID)
	proposals.PUT("/:id", h.Proposal.Update)
	proposals.DELETE("/:id", h.Proposal.Delete)
	proposals.POST("/:id/send", h.Proposal.Send)
	proposals.POST("/:id/approve", h.Proposal.Approve)
	proposals.POST("/:id/reject", h.Proposal.Reject)

	// Projects
	projects := protected.Group("/projects")
	projects.POST("", middleware.RequireMinRole(domain.RoleProducer), h.Project.Create)
	projects.GET("", h.Project.List)
	projects.GET("/:id", h.Project.GetByID)
	projects.PUT("/:id", middleware.RequireMinRole(domain.RoleProducer), h.Project.Update)
	projects.DELETE("/:id", middleware.RequireMinRole(domain.RoleAdmin), h.Project.Delete)

	// Shooting days
	days := protected.Group("/shooting-days")
	days.POST("", middleware.RequireMinRole(domain.RoleProducer), h.Production.CreateShootingDay)
	days.GET("", h.Production.ListShootingDays)
	days.GET("/:id", h.Production.GetShootingDay)
	days.PUT("/:id", middleware.RequireMinRole(domain.RoleProducer), h.Production.UpdateShootingDay)
	days.DELETE("/:id", middleware.RequireMinRole(domain.RoleProducer), h.Production.DeleteShootingDay)

	// Call sheets and their attachments
	sheets := protected.Group("/call-sheets")
	sheets.POST("", middleware.RequireMinRole(domain.RoleProducer), h.Production.CreateCallSheet)
	sheets.GET("", h.Production.ListCallSheets)
	sheets.GET("/:id", h.Production.GetCallSheet)
	sheets.PUT("/:id", middleware.RequireMinRole(domain.RoleProducer), h.Production.UpdateCallSheet)
	sheets.POST("/:id/publish", middleware.RequireMinRole(domain.RoleProducer), h.Production.PublishCallSheet)
	sheets.DELETE("/:id", middleware.RequireMinRole(domain.RoleProducer), h.Production.DeleteCallSheet)
	sheets.POST("/:id/files", h.File.Upload)
	sheets.GET("/:id/files", h.File.List)

	// Files
	files := protected.Group("/files")
	files.GET("/:id/download", h.File.Download)
	files.DELETE("/:id", middleware.RequireMinRole(domain.RoleProducer), h.File.Delete)

	// Suppliers
	suppliers := protected.Group("/suppliers")
	suppliers.POST("", middleware.RequireMinRole(domain.RoleProducer), h.Supplier.Create)
	suppliers.GET("", h.Supplier.List)
	suppliers.GET("/:id", h.Supplier.GetByID)
	suppliers.PUT("/:id", middleware.RequireMinRole(domain.RoleProducer), h.Supplier.Update)
	suppliers.DELETE("/:id", middleware.RequireMinRole(domain.RoleAdmin), h.Supplier.Delete)
	suppliers.POST("/:id/link-profile", middleware.RequireMinRole(domain.RoleAdmin), h.Supplier.LinkProfile)
	suppliers.GET("/:id/transactions", middleware.RequireRole(domain.RoleOwner, domain.RoleAdmin, domain.RoleFinance), h.Supplier.Transactions)

	// Finance: bank accounts and transactions. Reads are open to the
	// finance role; writes are gated again in the service layer.
	accounts := protected.Group("/bank-accounts")
	accounts.Use(middleware.RequireRole(domain.RoleOwner, domain.RoleAdmin, domain.RoleFinance))
	accounts.POST("", h.Finance.CreateAccount)
	accounts.GET("", h.Finance.ListAccounts)
	accounts.GET("/:id", h.Finance.GetAccount)
	accounts.PUT("/:id", h.Finance.UpdateAccount)
	accounts.DELETE("/:id", h.Finance.DeleteAccount)
	accounts.GET("/:id/transactions", h.Finance.ListTransactions)
	accounts.GET("/:id/statement", h.Finance.ExportStatement)

	transactions := protected.Group("/transactions")
	transactions.Use(middleware.RequireRole(domain.RoleOwner, domain.RoleAdmin, domain.RoleFinance))
	transactions.POST("", h.Finance.CreateTransaction)
	transactions.DELETE("/:id", h.Finance.DeleteTransaction)

	// Notifications
	notifications := protected.Group("/notifications")
	notifications.GET("", h.Notification.List)
	notifications.POST("/:id/read", h.Notification.MarkRead)

	// AI assistance
	protected.POST("/assist", middleware.RequireMinRole(domain.RoleProducer), h.Assist.Complete)

	return r
}
