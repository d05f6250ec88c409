package handlers

import (
	"net/http"

	"tennis-stats-api/packages/core/models"
	"tennis-stats-api/packages/core/services"

	"github.com/gin-gonic/gin"
)

type SetStatsHandler struct {
	statsService *services.SetStatsService
}

func NewSetStatsHandler(statsService *services.SetStatsService) *SetStatsHandler {
	return &SetStatsHandler{
		statsService: statsService,
	}
}

func (h *SetStatsHandler) pair(c *gin.Context) (uint, uint, bool) {
	setID, ok := parseID(c, "setId")
	if !ok {
		return 0, 0, false
	}
	matchPlayerID, ok := parseID(c, "matchPlayerId")
	if !ok {
		return 0, 0, false
	}
	return setID, matchPlayerID, true
}

// GetSetStats retrieves the statistics of one player in one set
// @Summary Get set statistics
// @Description Technical, tactical and physical/mental records, defaults filled in
// @Tags stats
// @Security BearerAuth
// @Produce json
// @Param setId path int true "Set ID"
// @Param matchPlayerId path int true "Match player ID"
// @Success 200 {object} models.SetStatsView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /sets/{setId}/stats/{matchPlayerId} [get]
func (h *SetStatsHandler) GetSetStats(c *gin.Context) {
	auth, ok := requireAuth(c)
	if !ok {
		return
	}
	setID, matchPlayerID, ok := h.pair(c)
	if !ok {
		return
	}

	view, err := h.statsService.GetSetStats(c.Request.Context(), auth, setID, matchPlayerID)
	if err != nil {
		respondError(c, err, "Failed to retrieve set statistics")
		return
	}

	c.JSON(http.StatusOK, view)
}

// UpsertSetStats saves the statistics of one player in one set
// @Summary Save set statistics
// @Description The three records are written independently. 207 means some were saved and some were not.
// @Tags stats
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param setId path int true "Set ID"
// @Param matchPlayerId path int true "Match player ID"
// @Param stats body models.UpsertSetStatsRequest true "Statistics"
// @Success 200 {object} models.SaveSetStatsResponse
// @Success 207 {object} models.SaveSetStatsResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} models.SaveSetStatsResponse
// @Router /sets/{setId}/stats/{matchPlayerId} [put]
func (h *SetStatsHandler) UpsertSetStats(c *gin.Context) {
	auth, ok := requireAuth(c)
	if !ok {
		return
	}
	setID, matchPlayerID, ok := h.pair(c)
	if !ok {
		return
	}

	var req models.UpsertSetStatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, result, err := h.statsService.UpsertSetStats(c.Request.Context(), auth, setID, matchPlayerID, req)
	if err != nil {
		respondError(c, err, "Failed to save set statistics")
		return
	}

	c.JSON(saveStatus(result), response)
}
