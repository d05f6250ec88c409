package handlers

import (
	"net/http"
	"strconv"

	"tennis-stats-api/packages/core/services"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	analyticsService  *services.AnalyticsService
	headToHeadService *services.HeadToHeadService
}

func NewAnalyticsHandler(analyticsService *services.AnalyticsService, headToHeadService *services.HeadToHeadService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService:  analyticsService,
		headToHeadService: headToHeadService,
	}
}

// GetDashboard computes the team summaries
// @Summary Analytics dashboard
// @Description Record, surface and format splits, monthly trends, technical averages and top players
// @Tags analytics
// @Security BearerAuth
// @Produce json
// @Param player_id query int false "Only matches this player took part in"
// @Param surface query string false "Surface, as recorded"
// @Param format query string false "Match format" Enums(singles,doubles)
// @Param status query string false "Match status" Enums(scheduled,in_progress,completed)
// @Param date_from query string false "From date (YYYY-MM-DD, inclusive)"
// @Param date_to query string false "To date (YYYY-MM-DD, inclusive)"
// @Success 200 {object} analytics.Dashboard
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /analytics/dashboard [get]
func (h *AnalyticsHandler) GetDashboard(c *gin.Context) {
	auth, ok := requireAuth(c)
	if !ok {
		return
	}
	filter, ok := parseMatchFilter(c)
	if !ok {
		return
	}

	dashboard, err := h.analyticsService.GetDashboard(c.Request.Context(), auth, filter)
	if err != nil {
		respondError(c, err, "Failed to compute analytics")
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// GetTopPlayers ranks the roster by win rate
// @Summary Top players
// @Tags analytics
// @Security BearerAuth
// @Produce json
// @Param min_matches query int false "Minimum number of matches, 0 for none (default from configuration)"
// @Param date_from query string false "From date (YYYY-MM-DD, inclusive)"
// @Param date_to query string false "To date (YYYY-MM-DD, inclusive)"
// @Success 200 {array} analytics.PlayerRanking
// @Failure 400 {object} map[string]string
// @Router /analytics/top-players [get]
func (h *AnalyticsHandler) GetTopPlayers(c *gin.Context) {
	auth, ok := requireAuth(c)
	if !ok {
		return
	}
	filter, ok := parseMatchFilter(c)
	if !ok {
		return
	}

	var minMatches *int
	if raw := c.Query("min_matches"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_matches parameter"})
			return
		}
		minMatches = &v
	}

	rankings, err := h.analyticsService.GetTopPlayers(c.Request.Context(), auth, filter, minMatches)
	if err != nil {
		respondError(c, err, "Failed to rank players")
		return
	}

	c.JSON(http.StatusOK, rankings)
}

// GetHeadToHead compares two players over their common matches
// @Summary Head to head
// @Tags analytics
// @Security BearerAuth
// @Produce json
// @Param player1 query int true "First player ID"
// @Param player2 query int true "Second player ID"
// @Success 200 {object} analytics.HeadToHead
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /analytics/head-to-head [get]
func (h *AnalyticsHandler) GetHeadToHead(c *gin.Context) {
	auth, ok := requireAuth(c)
	if !ok {
		return
	}
	player1, ok := parseOptionalUint(c, "player1")
	if !ok {
		return
	}
	player2, ok := parseOptionalUint(c, "player2")
	if !ok {
		return
	}
	if player1 == 0 || player2 == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "player1 and player2 are required"})
		return
	}

	h2h, err := h.headToHeadService.Compare(c.Request.Context(), auth, player1, player2)
	if err != nil {
		respondError(c, err, "Failed to compare players")
		return
	}

	c.JSON(http.StatusOK, h2h)
}
