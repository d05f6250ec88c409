package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"tennis-stats-api/packages/auth/middleware"
	"tennis-stats-api/packages/auth/models"
	"tennis-stats-api/packages/auth/services"

	"github.com/gin-gonic/gin"
)

type TeamHandler struct {
	membershipService *services.MembershipService
}

func NewTeamHandler(membershipService *services.MembershipService) *TeamHandler {
	return &TeamHandler{
		membershipService: membershipService,
	}
}

// CreateTeam creates a team owned by the caller
// @Summary Create a team
// @Description Create a team; the caller becomes its approved admin
// @Tags teams
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param team body models.CreateTeamRequest true "Team data"
// @Success 201 {object} models.Team
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /teams [post]
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	var req models.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profileID, _ := middleware.GetProfileID(c)
	email, _ := middleware.GetUserEmail(c)

	team, err := h.membershipService.CreateTeam(c.Request.Context(), profileID, email, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create team"})
		return
	}

	c.JSON(http.StatusCreated, team)
}

// JoinTeam asks to join a team
// @Summary Request to join a team
// @Description File a pending membership request for the team with the given slug
// @Tags teams
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.JoinTeamRequest true "Team slug"
// @Success 201 {object} models.TeamMember
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /teams/join [post]
func (h *TeamHandler) JoinTeam(c *gin.Context) {
	var req models.JoinTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profileID, _ := middleware.GetProfileID(c)
	email, _ := middleware.GetUserEmail(c)

	member, err := h.membershipService.RequestJoin(c.Request.Context(), profileID, email, req.Slug)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTeamNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Team not found"})
		case errors.Is(err, services.ErrAlreadyMember):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to request membership"})
		}
		return
	}

	c.JSON(http.StatusCreated, member)
}

// GetMyMemberships lists the caller's memberships
// @Summary List my memberships
// @Description List every team membership of the caller, whatever its status
// @Tags teams
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.TeamMember
// @Failure 500 {object} map[string]string
// @Router /me/memberships [get]
func (h *TeamHandler) GetMyMemberships(c *gin.Context) {
	profileID, _ := middleware.GetProfileID(c)

	members, err := h.membershipService.ListMemberships(c.Request.Context(), profileID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve memberships"})
		return
	}

	c.JSON(http.StatusOK, members)
}

// GetMembers lists the members of the caller's team
// @Summary List team members
// @Tags teams
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.TeamMember
// @Failure 403 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /teams/members [get]
func (h *TeamHandler) GetMembers(c *gin.Context) {
	auth, _ := middleware.GetAuthContext(c)

	members, err := h.membershipService.ListMembers(c.Request.Context(), auth)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve members"})
		return
	}

	c.JSON(http.StatusOK, members)
}

// ReviewMember approves or rejects a membership request
// @Summary Review a membership
// @Description Approve or reject a member of the caller's team (admin only)
// @Tags teams
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Member ID"
// @Param review body models.ReviewMemberRequest true "Decision"
// @Success 200 {object} models.TeamMember
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /teams/members/{id} [patch]
func (h *TeamHandler) ReviewMember(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID"})
		return
	}

	var req models.ReviewMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	auth, _ := middleware.GetAuthContext(c)
	member, err := h.membershipService.ReviewMember(c.Request.Context(), auth, uint(id), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotAdmin):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrMemberNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		case errors.Is(err, services.ErrCannotReviewSelf), errors.Is(err, services.ErrInvalidRole):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to review member"})
		}
		return
	}

	c.JSON(http.StatusOK, member)
}
