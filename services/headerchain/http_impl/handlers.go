package http_impl

import (
	"fmt"
	"net/http"
	"time"

	"github.com/bitcoin-sv/headerchain/errors"
	"github.com/bitcoin-sv/headerchain/model"
	"github.com/labstack/echo/v4"
)

func (h *HTTP) Alive(c echo.Context) error {
	return c.String(http.StatusOK, fmt.Sprintf("HeaderChain service is alive. Uptime: %s\n", time.Since(h.startTime)))
}

func (h *HTTP) Health(checkLiveness bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		status, details, err := h.service.Health(c.Request().Context(), checkLiveness)
		if err != nil && status == http.StatusOK {
			status = http.StatusServiceUnavailable
		}

		return c.String(status, details)
	}
}

func (h *HTTP) Initialize(c echo.Context) error {
	prometheusHTTPRequests.WithLabelValues("init").Inc()

	req := &model.InitRequest{}
	if err := decodeBody(c, req); err != nil {
		return sendError(c, err)
	}

	if err := h.service.Initialize(c.Request().Context(), sender(c), req); err != nil {
		return sendError(c, err)
	}

	return c.JSON(http.StatusOK, struct{}{})
}

func (h *HTTP) UpdateBlockOffset(c echo.Context) error {
	prometheusHTTPRequests.WithLabelValues("update").Inc()

	req := &model.UpdateRequest{}
	if err := decodeBody(c, req); err != nil {
		return sendError(c, err)
	}

	if err := h.service.UpdateBlockOffset(c.Request().Context(), sender(c), req.BlockHeaders); err != nil {
		return sendError(c, err)
	}

	return c.JSON(http.StatusOK, struct{}{})
}

func (h *HTTP) GetContractInfo(c echo.Context) error {
	prometheusHTTPRequests.WithLabelValues("info").Inc()

	info, err := h.service.GetContractInfo(c.Request().Context())
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(http.StatusOK, info)
}

func sender(c echo.Context) string {
	return c.Request().Header.Get(SenderHeader)
}

func decodeBody(c echo.Context, target interface{}) error {
	if err := json.NewDecoder(c.Request().Body).Decode(target); err != nil {
		return errors.NewInvalidArgumentError("request body is not valid JSON", err)
	}

	return nil
}
