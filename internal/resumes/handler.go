package resumes

import (
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-screener/internal/shared/server/respond"
)

const (
	defaultMaxUploadSize = 10 << 20 // 10MB
	defaultListLimit     = 100
	maxListLimit         = 500
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler. A non-positive maxUploadBytes selects 10MB.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadSize
	}
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches resume routes under /resume. parseMiddleware runs
// before the upload handler only.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, parseMiddleware ...gin.HandlerFunc) {
	g := rg.Group("/resume")
	g.POST("/parse", append(parseMiddleware, h.parse)...)
	g.GET("/all", h.list)
	g.GET("/summary", h.summary)
	g.GET("/:id", h.get)
	g.GET("/:id/file", h.download)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func (h *Handler) parse(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)

	fileHeader, err := formFile(c, "resume", "file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large", "file exceeds upload limit", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	res, err := h.Svc.Ingest(c.Request.Context(), RawDocument{FileName: fileHeader.Filename, Data: data})
	if err != nil {
		switch {
		case errors.Is(err, ErrMalformedInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "resume file is empty or unnamed", nil)
		case errors.Is(err, ErrExtractionFailed):
			c.Set("statusTransition", string(StatusExtracting)+"->"+string(StatusExtractionFailed))
			respond.Error(c, http.StatusUnprocessableEntity, "extraction_failed", "could not extract text from resume", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to parse resume", nil)
		}
		return
	}

	c.Set("resumeId", res.ID)
	c.Set("statusTransition", string(StatusAssembled)+"->"+string(StatusPersisted))
	respond.Created(c, strings.TrimSuffix(c.FullPath(), "parse")+res.ID, toParseResponse(res))
}

func (h *Handler) list(c *gin.Context) {
	limit := defaultListLimit
	offset := 0

	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	items, err := h.Svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list resumes", nil)
		return
	}
	respond.OK(c, items)
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set("resumeId", id)

	res, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		h.lookupError(c, err, "failed to fetch resume")
		return
	}
	respond.OK(c, res)
}

func (h *Handler) download(c *gin.Context) {
	id := c.Param("id")
	c.Set("resumeId", id)

	res, rc, err := h.Svc.OpenUpload(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNoArchive) {
			respond.Error(c, http.StatusNotFound, "not_found", "no archived file for resume", nil)
			return
		}
		h.lookupError(c, err, "failed to open resume file")
		return
	}
	defer rc.Close()

	contentType := res.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, -1, contentType, rc, map[string]string{
		"Content-Disposition": mime.FormatMediaType("attachment", map[string]string{"filename": res.FileName}),
	})
}

func (h *Handler) update(c *gin.Context) {
	id := c.Param("id")
	c.Set("resumeId", id)

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	res, err := h.Svc.UpdateAnnotations(c.Request.Context(), id, req.Notes, req.Tags)
	if err != nil {
		h.lookupError(c, err, "failed to update resume")
		return
	}
	respond.OK(c, res)
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	c.Set("resumeId", id)

	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		h.lookupError(c, err, "failed to delete resume")
		return
	}
	respond.OK(c, gin.H{"deleted": true})
}

func (h *Handler) summary(c *gin.Context) {
	sum, err := h.Svc.Summary(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to summarize resumes", nil)
		return
	}
	respond.OK(c, sum)
}

func (h *Handler) lookupError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", msg, nil)
	}
}

func formFile(c *gin.Context, fields ...string) (*multipart.FileHeader, error) {
	var firstErr error
	for _, field := range fields {
		fh, err := c.FormFile(field)
		if err == nil {
			return fh, nil
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, err
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, firstErr
}
