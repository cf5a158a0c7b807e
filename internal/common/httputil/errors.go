// Package httputil maps domain errors onto HTTP responses. The engine never
// raises transport-shaped errors; this is the single place where its
// taxonomy becomes status codes.
package httputil

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"streamraiser-backend/internal/common/logger"
	catalogmodels "streamraiser-backend/internal/features/catalog/models"
	eventmodels "streamraiser-backend/internal/features/event/models"
	fundraisermodels "streamraiser-backend/internal/features/fundraiser/models"
	redeemmodels "streamraiser-backend/internal/features/redeem/models"
)

// Error writes the JSON error response for err.
func Error(c *gin.Context, err error) {
	switch {
	case errors.Is(err, redeemmodels.ErrRedeemNotFound),
		errors.Is(err, fundraisermodels.ErrFundraiserNotFound),
		errors.Is(err, eventmodels.ErrEventNotFound),
		errors.Is(err, catalogmodels.ErrRewardNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, redeemmodels.ErrTypeMismatch),
		errors.Is(err, redeemmodels.ErrInvalidPayload),
		errors.Is(err, redeemmodels.ErrUnknownAction),
		errors.Is(err, fundraisermodels.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, fundraisermodels.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, fundraisermodels.ErrAlreadyJoined):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
