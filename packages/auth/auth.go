package auth

import (
	"tennis-stats-api/packages/auth/handlers"
	"tennis-stats-api/packages/auth/middleware"
	"tennis-stats-api/packages/auth/models"
	"tennis-stats-api/packages/auth/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Module struct {
	Handler           *handlers.TeamHandler
	MembershipService *services.MembershipService
	jwtSecret         string
}

func NewModule(db *gorm.DB, jwtSecret string, emails services.EmailService, log *logrus.Entry) *Module {
	membershipService := services.NewMembershipService(db, emails, log)
	return &Module{
		Handler:           handlers.NewTeamHandler(membershipService),
		MembershipService: membershipService,
		jwtSecret:         jwtSecret,
	}
}

func (m *Module) SetupRoutes(r *gin.Engine) {
	r.GET("/me/memberships", m.JWTMiddleware(), m.Handler.GetMyMemberships)

	teams := r.Group("/teams")
	teams.Use(m.JWTMiddleware())
	{
		teams.POST("", m.Handler.CreateTeam)
		teams.POST("/join", m.Handler.JoinTeam)
		teams.GET("/members", m.RequireMembership(), m.Handler.GetMembers)
		teams.PATCH("/members/:id", m.RequireMembership(), middleware.RequireRole(models.RoleAdmin), m.Handler.ReviewMember)
	}
}

func (m *Module) JWTMiddleware() gin.HandlerFunc {
	return middleware.JWTMiddleware(m.jwtSecret)
}

func (m *Module) RequireMembership() gin.HandlerFunc {
	return middleware.RequireMembership(m.MembershipService)
}
