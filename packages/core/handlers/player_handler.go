package handlers

import (
	"net/http"
	"strings"

	"tennis-stats-api/packages/core/models"
	"tennis-stats-api/packages/core/services"

	"github.com/gin-gonic/gin"
)

type PlayerHandler struct {
	playerService *services.PlayerService
}

func NewPlayerHandler(playerService *services.PlayerService) *PlayerHandler {
	return &PlayerHandler{
		playerService: playerService,
	}
}

// GetAllPlayers retrieves the team roster with pagination
// @Summary List players
// @Description List the players of the caller's team
// @Tags players
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number (default: 1)" default(1)
// @Param per_page query int false "Items per page (default: 20, max: 100)" default(20)
// @Param order_by query string false "Sort field" Enums(last_name,first_name,skill_level,created_at)
// @Param direction query string false "Sort direction" Enums(ASC,DESC)
// @Success 200 {object} models.PaginatedPlayersResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /players [get]
func (h *PlayerHandler) GetAllPlayers(c *gin.Context) {
	auth, ok := requireAuth(c)
	if !ok {
		return
	}
	page, perPage, ok := parsePagination(c)
	if !ok {
		return
	}

	orderBy := c.DefaultQuery("order_by", "last_name")
	direction := strings.ToUpper(c.DefaultQuery("direction", "ASC"))

	players, err := h.playerService.GetAllPlayers(c.Request.Context(), auth, orderBy, direction, page, perPage)
	if err != nil {
		respondError(c, err, "Failed to retrieve players")
		return
	}

	c.JSON(http.StatusOK, players)
}

// GetPlayer retrieves a single player
// @Summary Get a player
// @Tags players
// @Security BearerAuth
// @Produce json
// @Param id path int true "Player ID"
// @Success 200 {object} models.Player
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /players/{id} [get]
func (h *PlayerHandler) GetPlayer(c *gin.Context) {
	auth, ok := requireAuth(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	player, err := h.playerService.GetPlayerByID(c.Request.Context(), auth, id)
	if err != nil {
		respondError(c, err, "Failed to retrieve player")
		return
	}

	c.JSON(http.StatusOK, player)
}

// CreatePlayer adds a player to the roster
// @Summary Create a player
// @Tags players
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param player body models.CreatePlayerRequest true "Player data"
// @Success 201 {object} models.Player
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /players [post]
func (h *PlayerHandler) CreatePlayer(c *gin.Context) {
	auth, ok := requireAuth(c)
	if !ok {
		return
	}

	var req models.CreatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	player, err := h.playerService.CreatePlayer(c.Request.Context(), auth, req)
	if err != nil {
		respondError(c, err, "Failed to create player")
		return
	}

	c.JSON(http.StatusCreated, player)
}

// UpdatePlayer changes the fields present in the body
// @Summary Update a player
// @Tags players
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Player ID"
// @Param player body models.UpdatePlayerRequest true "Fields to change"
// @Success 200 {object} models.Player
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /players/{id} [patch]
func (h *PlayerHandler) UpdatePlayer(c *gin.Context) {
	auth, ok := requireAuth(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req models.UpdatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	player, err := h.playerService.UpdatePlayer(c.Request.Context(), auth, id, req)
	if err != nil {
		respondError(c, err, "Failed to update player")
		return
	}

	c.JSON(http.StatusOK, player)
}

// DeletePlayer removes a player
// @Summary Delete a player
// @Description Hard delete; past match participations keep their display name
// @Tags players
// @Security BearerAuth
// @Param id path int true "Player ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /players/{id} [delete]
func (h *PlayerHandler) DeletePlayer(c *gin.Context) {
	auth, ok := requireAuth(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.playerService.DeletePlayer(c.Request.Context(), auth, id); err != nil {
		respondError(c, err, "Failed to delete player")
		return
	}

	c.Status(http.StatusNoContent)
}
