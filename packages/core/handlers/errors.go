package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"tennis-stats-api/packages/auth/middleware"
	authModels "tennis-stats-api/packages/auth/models"
	"tennis-stats-api/packages/core/live"
	"tennis-stats-api/packages/core/models"
	"tennis-stats-api/packages/core/services"
	"tennis-stats-api/packages/core/utils"
	"tennis-stats-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

var errorStatuses = []struct {
	err    error
	status int
}{
	{authModels.ErrNoMembership, http.StatusForbidden},
	{services.ErrPlayerNotFound, http.StatusNotFound},
	{services.ErrMatchNotFound, http.StatusNotFound},
	{services.ErrSetNotFound, http.StatusNotFound},
	{services.ErrMatchPlayerNotFound, http.StatusNotFound},
	{live.ErrSessionNotFound, http.StatusNotFound},
	{services.ErrInvalidParticipants, http.StatusBadRequest},
	{services.ErrStatsPairMismatch, http.StatusBadRequest},
	{services.ErrSamePlayer, http.StatusBadRequest},
	{utils.ErrUnknownEvent, http.StatusBadRequest},
	{services.ErrInvalidStatusTransition, http.StatusConflict},
	{services.ErrSetAlreadyStarted, http.StatusConflict},
	{services.ErrSetAlreadyCompleted, http.StatusConflict},
	{live.ErrNotReady, http.StatusConflict},
	{live.ErrSaveInFlight, http.StatusConflict},
}

// respondError maps known errors to their status and message. Anything else
// is logged and answered with a 500 carrying the fallback message.
func respondError(c *gin.Context, err error, fallback string) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			c.JSON(e.status, gin.H{"error": err.Error()})
			return
		}
	}
	logger.WithHTTPContext(c.Request.Method, c.FullPath(), c.Request.UserAgent()).
		WithError(err).
		Error(fallback)
	c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
}

func requireAuth(c *gin.Context) (authModels.AuthContext, bool) {
	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Team membership not resolved"})
		return authModels.AuthContext{}, false
	}
	return auth, true
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + param + " parameter"})
		return 0, false
	}
	return uint(id), true
}

func parseOptionalUint(c *gin.Context, key string) (uint, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + key + " parameter"})
		return 0, false
	}
	return uint(v), true
}

// parsePagination reads page and per_page, capping per_page at 100.
func parsePagination(c *gin.Context) (int, int, bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page parameter"})
		return 0, 0, false
	}

	perPage, err := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if err != nil || perPage < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid per_page parameter"})
		return 0, 0, false
	}
	if perPage > 100 {
		perPage = 100
	}
	return page, perPage, true
}

func parseMatchFilter(c *gin.Context) (models.MatchFilter, bool) {
	playerID, ok := parseOptionalUint(c, "player_id")
	if !ok {
		return models.MatchFilter{}, false
	}
	for _, key := range []string{"date_from", "date_to"} {
		if raw := c.Query(key); raw != "" {
			if _, err := time.Parse("2006-01-02", raw); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + key + " parameter, expected YYYY-MM-DD"})
				return models.MatchFilter{}, false
			}
		}
	}
	return models.MatchFilter{
		PlayerID: playerID,
		Surface:  c.Query("surface"),
		Format:   c.Query("format"),
		Status:   c.Query("status"),
		From:     c.Query("date_from"),
		To:       c.Query("date_to"),
	}, true
}

// saveStatus picks 200, 207 or 500 from a three-table save.
func saveStatus(result models.SaveResult) int {
	switch {
	case !result.Failed():
		return http.StatusOK
	case result.Partial():
		return http.StatusMultiStatus
	default:
		return http.StatusInternalServerError
	}
}
