package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/immxrtalbeast/santa_bot/internal/conversation"
	"github.com/immxrtalbeast/santa_bot/internal/storage"
	"github.com/immxrtalbeast/santa_bot/lib/logger/sl"
)

const maxPhotoSize = 10 << 20

type InteractionHandler interface {
	Handle(ctx context.Context, in conversation.Interaction) conversation.Reply
}

type InteractionController struct {
	handler InteractionHandler
	photos  storage.Storage
	log     *slog.Logger
}

func NewInteractionController(handler InteractionHandler, photos storage.Storage, log *slog.Logger) *InteractionController {
	return &InteractionController{handler: handler, photos: photos, log: log}
}

func (c *InteractionController) Interact(ctx *gin.Context) {
	var req conversation.Interaction
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	reply := c.handler.Handle(ctx.Request.Context(), req)
	ctx.JSON(http.StatusOK, gin.H{"reply": reply})
}

// UploadPhoto stores the photo and feeds its key to the conversation as the
// participant's next message.
func (c *InteractionController) UploadPhoto(ctx *gin.Context) {
	const op = "api.http.interaction.upload_photo"

	userID, err := strconv.ParseInt(ctx.PostForm("user_id"), 10, 64)
	if err != nil || userID == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	header, err := ctx.FormFile("photo")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "photo is required"})
		return
	}
	if header.Size > maxPhotoSize {
		ctx.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "photo is too large"})
		return
	}

	file, err := header.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "cannot read photo"})
		return
	}
	defer file.Close()

	key, err := c.photos.Save(ctx.Request.Context(), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		c.log.Error("failed to store photo", slog.String("op", op), slog.Int64("user_id", userID), sl.Err(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store photo"})
		return
	}

	reply := c.handler.Handle(ctx.Request.Context(), conversation.Interaction{
		UserID:   userID,
		Text:     ctx.PostForm("text"),
		PhotoRef: key,
	})
	ctx.JSON(http.StatusOK, gin.H{"reply": reply, "photo_ref": key})
}
