package api

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	models "NFTCast/internal/domain/models"
	svcmetrics "NFTCast/internal/service/metrics"
	"NFTCast/internal/usecase"
	xhttp "NFTCast/pkg/http"
	xlogger "NFTCast/pkg/logger"
)

const (
	liveWriteWait = 5 * time.Second
	liveReadLimit = 512
)

// Live upgrades to a websocket and streams simulated ticks until the client leaves.
// Text frames "pause" and "resume" control the stream.
func (h *Handler) Live(c echo.Context) error {
	req := &models.LiveRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already written the failure response
		h.logger.Warn("live upgrade failed", xlogger.Error(err))
		return nil
	}
	defer conn.Close()

	svcmetrics.LiveSessions.Inc()
	defer svcmetrics.LiveSessions.Dec()

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	cmds := make(chan usecase.LiveCommand, 1)
	go readLiveCommands(ctx, conn, cmds, cancel)

	err = h.ticker.Run(ctx, req.Price, cmds, func(t models.LiveTick) error {
		_ = conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
		return conn.WriteJSON(t)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		h.logger.Debug("live stream closed", xlogger.Error(err))
	}

	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return nil
}

// readLiveCommands owns cmds and closes it on the first read error.
func readLiveCommands(ctx context.Context, conn *websocket.Conn, cmds chan<- usecase.LiveCommand, cancel context.CancelFunc) {
	defer close(cmds)
	defer cancel()

	conn.SetReadLimit(liveReadLimit)
	for {
		kind, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if kind != websocket.TextMessage {
			continue
		}
		cmd := usecase.LiveCommand(strings.ToLower(strings.TrimSpace(string(msg))))
		if cmd != usecase.LivePause && cmd != usecase.LiveResume {
			continue
		}
		select {
		case cmds <- cmd:
		case <-ctx.Done():
			return
		}
	}
}
