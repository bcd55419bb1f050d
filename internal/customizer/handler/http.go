package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/RandalBristow/pizza-palace-sub000/internal/customizer"
	"github.com/RandalBristow/pizza-palace-sub000/internal/customizer/dto"
	"github.com/RandalBristow/pizza-palace-sub000/internal/model"
	"github.com/RandalBristow/pizza-palace-sub000/internal/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HTTPHandler struct {
	uc     customizer.UseCase
	logger logger.ZapLogger
}

func NewHTTPHandler(uc customizer.UseCase, log logger.ZapLogger) *HTTPHandler {
	return &HTTPHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *HTTPHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sessions := rg.Group("/sessions")
	sessions.POST("", h.StartSession)
	sessions.GET("/:id", h.GetSession)
	sessions.POST("/:id/items", h.ChooseItem)
	sessions.PUT("/:id/toppings/:toppingId", h.SetTopping)
	sessions.DELETE("/:id/toppings/:toppingId", h.RemoveTopping)
	sessions.POST("/:id/confirm", h.Confirm)
	sessions.DELETE("/:id", h.Abandon)
}

func (h *HTTPHandler) StartSession(c *gin.Context) {
	var input dto.StartSessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	view, err := h.uc.StartSession(c.Request.Context(), &input)
	if err != nil {
		h.fail(c, "failed to start session", err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *HTTPHandler) GetSession(c *gin.Context) {
	view, err := h.uc.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "failed to get session", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type chooseItemRequest struct {
	PanelID string `json:"panel_id" binding:"required"`
	ItemID  string `json:"item_id" binding:"required"`
}

func (h *HTTPHandler) ChooseItem(c *gin.Context) {
	var req chooseItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	view, err := h.uc.ChooseItem(c.Request.Context(), &dto.ChooseItemInput{
		SessionID: c.Param("id"),
		PanelID:   req.PanelID,
		ItemID:    req.ItemID,
	})
	if err != nil {
		h.fail(c, "failed to choose item", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type setToppingRequest struct {
	Placement model.Placement `json:"placement"`
	Amount    model.Amount    `json:"amount"`
}

func (h *HTTPHandler) SetTopping(c *gin.Context) {
	var req setToppingRequest
	// An empty body means whole/normal. Chunked bodies report no length, so
	// only an empty decode counts as empty.
	if c.Request.Body != nil && c.Request.Body != http.NoBody {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	view, err := h.uc.SetTopping(c.Request.Context(), &dto.SetToppingInput{
		SessionID: c.Param("id"),
		ToppingID: c.Param("toppingId"),
		Placement: req.Placement,
		Amount:    req.Amount,
	})
	if err != nil {
		h.fail(c, "failed to set topping", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *HTTPHandler) RemoveTopping(c *gin.Context) {
	view, err := h.uc.RemoveTopping(c.Request.Context(), &dto.RemoveToppingInput{
		SessionID: c.Param("id"),
		ToppingID: c.Param("toppingId"),
	})
	if err != nil {
		h.fail(c, "failed to remove topping", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *HTTPHandler) Confirm(c *gin.Context) {
	line, err := h.uc.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "failed to confirm session", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"line": line})
}

func (h *HTTPHandler) Abandon(c *gin.Context) {
	if err := h.uc.Abandon(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, "failed to abandon session", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *HTTPHandler) fail(c *gin.Context, msg string, err error) {
	code := httpStatus(err)
	if code == http.StatusInternalServerError {
		h.logger.Error(msg, zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(code, gin.H{"error": err.Error()})
}
