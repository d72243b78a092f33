package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/immxrtalbeast/santa_bot/internal/api/http/converter"
	"github.com/immxrtalbeast/santa_bot/internal/service"
)

// CallerIDHeader carries the chat id of whoever calls an admin endpoint.
const CallerIDHeader = "X-Caller-ID"

type AdminController struct {
	admin service.AdminInteractor
}

func NewAdminController(admin service.AdminInteractor) *AdminController {
	return &AdminController{admin: admin}
}

func (c *AdminController) ListParticipants(ctx *gin.Context) {
	callerID, ok := parseCallerID(ctx)
	if !ok {
		return
	}

	participants, err := c.admin.ListParticipants(ctx.Request.Context(), callerID)
	if err != nil {
		writeAdminError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"participants": converter.ParticipantsToApi(participants)})
}

func (c *AdminController) ListDraws(ctx *gin.Context) {
	callerID, ok := parseCallerID(ctx)
	if !ok {
		return
	}

	records, err := c.admin.ListDraws(ctx.Request.Context(), callerID)
	if err != nil {
		writeAdminError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"draws": converter.DrawsToApi(records)})
}

func parseCallerID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.GetHeader(CallerIDHeader), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid caller id"})
		return 0, false
	}
	return id, true
}

func writeAdminError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, service.ErrUnauthorized) {
		status = http.StatusForbidden
	}
	ctx.JSON(status, gin.H{"error": err.Error()})
}
