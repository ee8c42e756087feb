package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mellah-kais/cnam-server/internal/prompts"
	"github.com/mellah-kais/cnam-server/internal/services"
	"github.com/mellah-kais/cnam-server/internal/storage"
	"github.com/mellah-kais/cnam-server/internal/utils"
)

type VoiceHandler struct {
	svc       services.VoiceService
	extractor *services.FormExtractor
	scratch   *storage.Scratch
}

func NewVoiceHandler(svc services.VoiceService, extractor *services.FormExtractor, scratch *storage.Scratch) *VoiceHandler {
	return &VoiceHandler{svc: svc, extractor: extractor, scratch: scratch}
}

// VoiceToForm accepts one audio file and returns {transcript, data}. The
// uploaded artifact is written to scratch for the pipeline and removed on
// every exit path.
func (h *VoiceHandler) VoiceToForm(c *gin.Context) {
	const op = "VoiceHandler.VoiceToForm"

	fh, err := c.FormFile("audio")
	if err != nil {
		writeError(c, utils.E(utils.CodeNoAudio, op, "no audio file provided", err))
		return
	}

	lang := c.PostForm("lang")
	if lang == "" {
		lang = prompts.DefaultLanguage
	}

	file, err := fh.Open()
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, op, "failed to open upload", err))
		return
	}
	defer file.Close()

	audioBytes, err := io.ReadAll(file)
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, op, "failed to read upload", err))
		return
	}

	path, err := h.scratch.Put("upload", uuid.NewString(), audioBytes)
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, op, "failed to store upload", err))
		return
	}
	defer func() { _ = h.scratch.Remove(path) }()

	result, err := h.svc.ProcessVoiceToForm(c.Request.Context(), path, fh.Filename, fh.Size, lang)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

type TextToFormRequest struct {
	Text string `json:"text" binding:"required"`
	Lang string `json:"lang"`
}

// TextToForm runs extraction only, for already-transcribed input.
func (h *VoiceHandler) TextToForm(c *gin.Context) {
	var req TextToFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "VoiceHandler.TextToForm", "invalid request body", err))
		return
	}

	data, err := h.extractor.Extract(c.Request.Context(), req.Text, req.Lang)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transcript": req.Text,
		"data":       data,
	})
}
