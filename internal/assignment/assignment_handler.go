package assignment

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	assignmenterrors "go-metallurg/internal/assignment/errors"
	"go-metallurg/internal/middleware"
	"go-metallurg/internal/shared/apperror"
	"go-metallurg/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service        Service
	maxUploadBytes int64
	logger         *zap.Logger
}

func NewHandler(service Service, maxUploadBytes int64, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("assignment.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("assignment.handler")
	}
	return &Handler{service: service, maxUploadBytes: maxUploadBytes, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("assignment request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func listFilter(c *gin.Context) ListFilter {
	return ListFilter{
		ShiftDate:        c.Query("shift_date"),
		ShiftType:        c.Query("shift_type"),
		OperatorID:       c.Query("operator_id"),
		Status:           c.Query("status"),
		TechCardID:       c.Query("tech_card_id"),
		ProductionPlanID: c.Query("production_plan_id"),
	}
}

func actorOf(c *gin.Context) (Actor, error) {
	me, err := middleware.CurrentUser(c)
	if err != nil {
		return Actor{}, err
	}
	return Actor{ID: me.UserID, Role: me.Role}, nil
}

func (h *Handler) GetAll(c *gin.Context) {
	resp, err := h.service.GetAll(c.Request.Context(), listFilter(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Paginate(c, http.StatusOK, resp)
}

func (h *Handler) GetMine(c *gin.Context) {
	me, err := middleware.CurrentUser(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.GetMine(c.Request.Context(), me.UserID, listFilter(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Paginate(c, http.StatusOK, resp)
}

func (h *Handler) GetById(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateAssignmentRequest
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

	response.Success(c, http.StatusOK, "Assignment deleted", nil)
}

func (h *Handler) Start(c *gin.Context) {
	actor, err := actorOf(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.Start(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Complete(c *gin.Context) {
	actor, err := actorOf(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	var req CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Complete(c.Request.Context(), c.Param("id"), actor, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// checkSpreadsheet accepts OOXML workbooks only; excelize cannot open the
// legacy binary .xls format.
func checkSpreadsheet(name string) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx":
		return nil
	case ".xls":
		return assignmenterrors.ErrLegacySpreadsheet
	}
	return assignmenterrors.ErrUnsupportedFile
}

func (h *Handler) UploadExcel(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+1<<20)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeServiceError(c, assignmenterrors.ErrFileTooLarge.WithErr(err))
			return
		}
		h.writeServiceError(c, assignmenterrors.ErrFileRequired)
		return
	}
	if err := checkSpreadsheet(fh.Filename); err != nil {
		h.writeServiceError(c, err)
		return
	}

	file, err := fh.Open()
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	defer file.Close()

	resp, err := h.service.Import(c.Request.Context(), file)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DownloadTemplate(c *gin.Context) {
	data, err := h.service.Template()
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+TemplateFilename+`"`)
	c.Data(http.StatusOK, XLSXContentType, data)
}
