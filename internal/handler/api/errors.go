package api

import (
	"errors"
	"fmt"

	models "NFTCast/internal/domain/models"
	xhttp "NFTCast/pkg/http"
)

const (
	msgNFTNotFound        = "NFT not found. Please check the contract address and token ID."
	msgCollectionNotFound = "Collection not found. Please check the collection slug."
	msgRateLimited        = "Rate limit exceeded. Please try again in a moment."
	msgUnauthorized       = "Invalid API credentials. Please check your OpenSea Bearer Token."
	msgMisconfigured      = "OpenSea Bearer Token not configured. Please set OPENSEA_BEARER_TOKEN."
)

// toAppError maps domain failures onto the HTTP error taxonomy.
func toAppError(err error, notFound string) *xhttp.AppError {
	var appErr *xhttp.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var upstream *models.UpstreamError
	switch {
	case errors.Is(err, models.ErrMalformedIdentifier):
		return xhttp.BadRequestError("Invalid NFT identifier. Use an OpenSea URL, a collection slug, or a contract address and token ID.").WithError(err)
	case errors.Is(err, models.ErrInvalidHorizon):
		return xhttp.BadRequestError(err.Error()).WithError(err)
	case errors.Is(err, models.ErrInvalidSeries):
		return xhttp.BadRequestError(err.Error()).WithError(err)
	case errors.Is(err, models.ErrUnknownModel):
		return xhttp.BadRequestError(err.Error()).WithError(err)
	case errors.Is(err, models.ErrNotFound):
		return xhttp.NotFoundError(notFound).WithError(err)
	case errors.Is(err, models.ErrRateLimited):
		return xhttp.TooManyRequestsError(msgRateLimited).WithError(err)
	case errors.Is(err, models.ErrUnauthorized):
		return xhttp.UnauthorizedError(msgUnauthorized).WithError(err)
	case errors.Is(err, models.ErrMisconfigured):
		return xhttp.InternalError(msgMisconfigured).WithError(err)
	case errors.As(err, &upstream):
		return xhttp.UpstreamAppError(upstream.Status, fmt.Sprintf("OpenSea API error: %d - %s", upstream.Status, upstream.Body)).WithError(err)
	default:
		return xhttp.InternalError("Internal server error").WithError(err)
	}
}
