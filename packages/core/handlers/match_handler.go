package handlers

import (
	"net/http"

	"tennis-stats-api/packages/core/models"
	"tennis-stats-api/packages/core/services"

	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	matchService *services.MatchService
}

func NewMatchHandler(matchService *services.MatchService) *MatchHandler {
	return &MatchHandler{
		matchService: matchService,
	}
}

// GetMatches retrieves matches with pagination and filters
// @Summary List matches
// @Description List the team's matches, newest first, with optional filters
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number (default: 1)" default(1)
// @Param per_page query int false "Items per page (default: 20, max: 100)" default(20)
// @Param player_id query int false "Only matches this player took part in"
// @Param surface query string false "Surface, as recorded"
// @Param format query string false "Match format" Enums(singles,doubles)
// @Param status query string false "Match status" Enums(scheduled,in_progress,completed)
// @Param date_from query string false "From date (YYYY-MM-DD, inclusive)"
// @Param date_to query string false "To date (YYYY-MM-DD, inclusive)"
// @Success 200 {object} models.PaginatedMatchResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches [get]
func (h *MatchHandler) GetMatches(c *gin.Context) {
	auth, ok := requireAuth(c)
	if !ok {
		return
	}
	page, perPage, ok := parsePagination(c)
	if !ok {
		return
	}
	filter, ok := parseMatchFilter(c)
	if !ok {
		return
	}

	matches, err := h.matchService.GetMatches(c.Request.Context(), auth, filter, page, perPage)
	if err != nil {
		respondError(c, err, "Failed to retrieve matches")
		return
	}

	c.JSON(http.StatusOK, matches)
}

// GetMatch retrieves a match with its participants and sets
// @Summary Get a match
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} models.Match
// @Failure 404 {object} map[string]string
// @Router /matches/{id} [get]
func (h *MatchHandler) GetMatch(c *gin.Context) {
	auth, ok := requireAuth(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	match, err := h.matchService.GetMatchByID(c.Request.Context(), auth, id)
	if err != nil {
		respondError(c, err, "Failed to retrieve match")
		return
	}

	c.JSON(http.StatusOK, match)
}

// CreateMatch records a match with its participants
// @Summary Create a match
// @Description Singles take one participant per side, doubles two
// @Tags matches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param match body models.CreateMatchRequest true "Match data"
// @Success 201 {object} models.Match
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches [post]
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	auth, ok := requireAuth(c)
	if !ok {
		return
	}

	var req models.CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	match, err := h.matchService.CreateMatch(c.Request.Context(), auth, req)
	if err != nil {
		respondError(c, err, "Failed to create match")
		return
	}

	c.JSON(http.StatusCreated, match)
}

// UpdateMatch changes match details
// @Summary Update a match
// @Tags matches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param match body models.UpdateMatchRequest true "Fields to change"
// @Success 200 {object} models.Match
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /matches/{id} [patch]
func (h *MatchHandler) UpdateMatch(c *gin.Context) {
	auth, ok := requireAuth(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	match, err := h.matchService.UpdateMatch(c.Request.Context(), auth, id, req)
	if err != nil {
		respondError(c, err, "Failed to update match")
		return
	}

	c.JSON(http.StatusOK, match)
}

// UpdateMatchStatus moves a match forward in its lifecycle
// @Summary Update match status
// @Tags matches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param status body models.UpdateMatchStatusRequest true "New status"
// @Success 200 {object} models.Match
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /matches/{id}/status [patch]
func (h *MatchHandler) UpdateMatchStatus(c *gin.Context) {
	auth, ok := requireAuth(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateMatchStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	match, err := h.matchService.UpdateMatchStatus(c.Request.Context(), auth, id, req)
	if err != nil {
		respondError(c, err, "Failed to update match status")
		return
	}

	c.JSON(http.StatusOK, match)
}

// DeleteMatch removes a match and everything recorded under it
// @Summary Delete a match
// @Tags matches
// @Security BearerAuth
// @Param id path int true "Match ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /matches/{id} [delete]
func (h *MatchHandler) DeleteMatch(c *gin.Context) {
	auth, ok := requireAuth(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.matchService.DeleteMatch(c.Request.Context(), auth, id); err != nil {
		respondError(c, err, "Failed to delete match")
		return
	}

	c.Status(http.StatusNoContent)
}
