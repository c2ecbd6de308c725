package api

import (
	"github.com/labstack/echo/v4"

	models "NFTCast/internal/domain/models"
	xhttp "NFTCast/pkg/http"
	xlogger "NFTCast/pkg/logger"
)

// NFT proxies token metadata from OpenSea.
func (h *Handler) NFT(c echo.Context) error {
	req := &models.NFTRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	ref := models.NFTRef{Chain: req.Chain, ContractAddress: req.ContractAddress, TokenID: req.TokenID}
	nft, err := h.market.GetNFT(c.Request().Context(), ref)
	if err != nil {
		h.logger.Error("opensea nft error",
			xlogger.String("contract", req.ContractAddress),
			xlogger.String("token_id", req.TokenID),
			xlogger.Error(err),
		)
		return xhttp.AppErrorResponse(c, toAppError(err, msgNFTNotFound))
	}
	return xhttp.SuccessResponse(c, nft)
}

func (h *Handler) NFTMethodNotAllowed(c echo.Context) error {
	return xhttp.AppErrorResponse(c, xhttp.MethodNotAllowedError("Method not allowed. Use POST to fetch NFT data."))
}

func (h *Handler) Collection(c echo.Context) error {
	req := &models.CollectionRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	stats, err := h.market.GetCollectionStats(c.Request().Context(), req.Slug)
	if err != nil {
		h.logger.Error("opensea collection error", xlogger.String("slug", req.Slug), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, toAppError(err, msgCollectionNotFound))
	}
	return xhttp.SuccessResponse(c, stats)
}
