package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/cadence/internal/app"
	"github.com/alexanderramin/cadence/internal/domain"
)

// listClients honours ?limit=; the dashboard asks for the first few.
func (h *handler) listClients(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			Error(c, http.StatusBadRequest, app.CodeValidation, "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	clients, err := h.clients.List(c.Request.Context(), limit)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	out := make([]clientDTO, 0, len(clients))
	for _, cl := range clients {
		out = append(out, toClientDTO(cl))
	}
	Success(c, http.StatusOK, out)
}

func (h *handler) getClient(c *gin.Context) {
	cl, err := h.clients.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	Success(c, http.StatusOK, toClientDTO(cl))
}

func (h *handler) createClient(c *gin.Context) {
	var req clientRequest
	if !h.bind(c, &req) {
		return
	}
	cl := &domain.Client{Name: req.Name, Email: req.Email}
	if err := h.clients.Create(c.Request.Context(), h.actor(c), cl); err != nil {
		fail(c, h.logger, err)
		return
	}
	Success(c, http.StatusCreated, toClientDTO(cl))
}

func (h *handler) updateClient(c *gin.Context) {
	var req clientRequest
	if !h.bind(c, &req) {
		return
	}
	ctx := c.Request.Context()
	cl, err := h.clients.Get(ctx, c.Param("id"))
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	cl.Name, cl.Email = req.Name, req.Email
	if err := h.clients.Update(ctx, h.actor(c), cl); err != nil {
		fail(c, h.logger, err)
		return
	}
	Success(c, http.StatusOK, toClientDTO(cl))
}

func (h *handler) deleteClient(c *gin.Context) {
	if err := h.clients.Delete(c.Request.Context(), h.actor(c), c.Param("id")); err != nil {
		fail(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
