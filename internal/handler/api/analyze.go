package api

import (
	"github.com/labstack/echo/v4"

	models "NFTCast/internal/domain/models"
	"NFTCast/internal/usecase"
	xhttp "NFTCast/pkg/http"
	xlogger "NFTCast/pkg/logger"
)

func (h *Handler) Analyze(c echo.Context) error {
	req := &models.AnalyzeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if req.Input == "" && (req.ContractAddress == "" || req.TokenID == "") {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("Provide an OpenSea URL or collection slug, or a contract address and token ID."))
	}

	res, err := h.analyze.Analyze(c.Request().Context(), usecase.AnalyzeParams{
		Input:           req.Input,
		Chain:           req.Chain,
		ContractAddress: req.ContractAddress,
		TokenID:         req.TokenID,
		Horizon:         req.Horizon,
	})
	if err != nil {
		h.logger.Error("analyze usecase error", xlogger.String("input", req.Input), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, toAppError(err, msgNFTNotFound))
	}
	return xhttp.SuccessResponse(c, res)
}

// Forecast runs the engine over a series supplied in the request body.
func (h *Handler) Forecast(c echo.Context) error {
	req := &models.ForecastRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.forecast.Forecast(c.Request().Context(), usecase.ForecastParams{
		Series:  req.Series,
		Model:   req.Model,
		Horizon: req.Horizon,
	})
	if err != nil {
		h.logger.Error("forecast usecase error", xlogger.String("model", req.Model), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, toAppError(err, msgNFTNotFound))
	}
	return xhttp.SuccessResponse(c, res)
}
