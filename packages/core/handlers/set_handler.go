package handlers

import (
	"net/http"

	"tennis-stats-api/packages/core/models"
	"tennis-stats-api/packages/core/services"

	"github.com/gin-gonic/gin"
)

type SetHandler struct {
	setService *services.SetService
}

func NewSetHandler(setService *services.SetService) *SetHandler {
	return &SetHandler{
		setService: setService,
	}
}

// GetSets lists the sets of a match
// @Summary List sets
// @Tags sets
// @Security BearerAuth
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {array} models.Set
// @Failure 404 {object} map[string]string
// @Router /matches/{id}/sets [get]
func (h *SetHandler) GetSets(c *gin.Context) {
	auth, ok := requireAuth(c)
	if !ok {
		return
	}
	matchID, ok := parseID(c, "id")
	if !ok {
		return
	}

	sets, err := h.setService.GetSets(c.Request.Context(), auth, matchID)
	if err != nil {
		respondError(c, err, "Failed to retrieve sets")
		return
	}

	c.JSON(http.StatusOK, sets)
}

// CreateSet appends a planned set
// @Summary Create a set
// @Description The set number follows the highest existing one
// @Tags sets
// @Security BearerAuth
// @Produce json
// @Param id path int true "Match ID"
// @Success 201 {object} models.Set
// @Failure 404 {object} map[string]string
// @Router /matches/{id}/sets [post]
func (h *SetHandler) CreateSet(c *gin.Context) {
	auth, ok := requireAuth(c)
	if !ok {
		return
	}
	matchID, ok := parseID(c, "id")
	if !ok {
		return
	}

	set, err := h.setService.CreateSet(c.Request.Context(), auth, matchID)
	if err != nil {
		respondError(c, err, "Failed to create set")
		return
	}

	c.JSON(http.StatusCreated, set)
}

func (h *SetHandler) setIDs(c *gin.Context) (uint, uint, bool) {
	matchID, ok := parseID(c, "id")
	if !ok {
		return 0, 0, false
	}
	setID, ok := parseID(c, "setId")
	if !ok {
		return 0, 0, false
	}
	return matchID, setID, true
}

// StartSet marks a set as started
// @Summary Start a set
// @Tags sets
// @Security BearerAuth
// @Produce json
// @Param id path int true "Match ID"
// @Param setId path int true "Set ID"
// @Success 200 {object} models.Set
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /matches/{id}/sets/{setId}/start [post]
func (h *SetHandler) StartSet(c *gin.Context) {
	auth, ok := requireAuth(c)
	if !ok {
		return
	}
	matchID, setID, ok := h.setIDs(c)
	if !ok {
		return
	}

	set, err := h.setService.StartSet(c.Request.Context(), auth, matchID, setID)
	if err != nil {
		respondError(c, err, "Failed to start set")
		return
	}

	c.JSON(http.StatusOK, set)
}

// CompleteSet marks a set as finished
// @Summary Complete a set
// @Tags sets
// @Security BearerAuth
// @Produce json
// @Param id path int true "Match ID"
// @Param setId path int true "Set ID"
// @Success 200 {object} models.Set
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /matches/{id}/sets/{setId}/complete [post]
func (h *SetHandler) CompleteSet(c *gin.Context) {
	auth, ok := requireAuth(c)
	if !ok {
		return
	}
	matchID, setID, ok := h.setIDs(c)
	if !ok {
		return
	}

	set, err := h.setService.CompleteSet(c.Request.Context(), auth, matchID, setID)
	if err != nil {
		respondError(c, err, "Failed to complete set")
		return
	}

	c.JSON(http.StatusOK, set)
}

// UpdateSetScore records games and tiebreak points
// @Summary Update set score
// @Tags sets
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param setId path int true "Set ID"
// @Param score body models.UpdateSetScoreRequest true "Score"
// @Success 200 {object} models.Set
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /matches/{id}/sets/{setId}/score [patch]
func (h *SetHandler) UpdateSetScore(c *gin.Context) {
	auth, ok := requireAuth(c)
	if !ok {
		return
	}
	matchID, setID, ok := h.setIDs(c)
	if !ok {
		return
	}

	var req models.UpdateSetScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	set, err := h.setService.UpdateSetScore(c.Request.Context(), auth, matchID, setID, req)
	if err != nil {
		respondError(c, err, "Failed to update set score")
		return
	}

	c.JSON(http.StatusOK, set)
}
