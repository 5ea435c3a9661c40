package techcard

import (
	"errors"
	"mime/multipart"
	"net/http"

	"go-metallurg/internal/middleware"
	"go-metallurg/internal/shared/apperror"
	"go-metallurg/internal/shared/response"
	techcarderrors "go-metallurg/internal/techcard/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// pdfFields are the multipart field names accepted for the attachment, in
// lookup order. "drawing" is what the old upload-drawing form sent.
var pdfFields = []string{"pdf", "file", "drawing"}

type Handler struct {
	service        Service
	maxUploadBytes int64
	logger         *zap.Logger
}

func NewHandler(service Service, maxUploadBytes int64, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("techcard.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("techcard.handler")
	}
	return &Handler{service: service, maxUploadBytes: maxUploadBytes, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("techcard request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetAll(c *gin.Context) {
	filter := ListFilter{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Query:    c.Query("q"),
	}

	resp, err := h.service.GetAll(c.Request.Context(), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Paginate(c, http.StatusOK, resp)
}

func (h *Handler) GetById(c *gin.Context) {
	me, err := middleware.CurrentUser(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"), me.UserID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Stats(c *gin.Context) {
	resp, err := h.service.Stats(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Create(c *gin.Context) {
	me, err := middleware.CurrentUser(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	var req CreateTechCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), me.UserID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateTechCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Tech card deleted", nil)
}

func (h *Handler) formFile(c *gin.Context) (*multipart.FileHeader, error) {
	if h.maxUploadBytes > 0 {
		// multipart framing needs a little room above the file itself
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+1<<20)
	}

	for _, field := range pdfFields {
		fh, err := c.FormFile(field)
		if err == nil {
			return fh, nil
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, techcarderrors.ErrFileTooLarge.WithErr(err)
		}
	}
	return nil, techcarderrors.ErrFileRequired
}

func (h *Handler) UploadPDF(c *gin.Context) {
	fh, err := h.formFile(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	file, err := fh.Open()
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	defer file.Close()

	resp, err := h.service.AttachPDF(c.Request.Context(), c.Param("id"), Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        file,
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// UploadDrawing is the deprecated name of UploadPDF.
func (h *Handler) UploadDrawing(c *gin.Context) {
	c.Header("Deprecation", "true")
	c.Header("Link", `</api/techcards/`+c.Param("id")+`/upload-pdf>; rel="successor-version"`)
	h.UploadPDF(c)
}

func (h *Handler) DeletePDF(c *gin.Context) {
	resp, err := h.service.DetachPDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CreateExecution(c *gin.Context) {
	me, err := middleware.CurrentUser(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	var req CreateExecutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.RecordExecution(c.Request.Context(), c.Param("id"), me.UserID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetExecutions(c *gin.Context) {
	resp, err := h.service.GetExecutions(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Paginate(c, http.StatusOK, resp)
}

func (h *Handler) CreateAccess(c *gin.Context) {
	me, err := middleware.CurrentUser(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	var req CreateAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.RecordAccess(c.Request.Context(), c.Param("id"), me.UserID, req.Action)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAccessLog(c *gin.Context) {
	resp, err := h.service.GetAccessLog(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Paginate(c, http.StatusOK, resp)
}
