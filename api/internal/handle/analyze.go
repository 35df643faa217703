package handle

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"cash-reader/api/internal/logger"
	"cash-reader/api/internal/ocr/types"
)

const fileField = "file"

// Analyze answers POST /api/analyze. Analysis failures are reported with
// status 200 and an "error" field; only a malformed upload gets a 4xx.
func (h *Handle) Analyze(c *gin.Context) {
	fh, err := uploadedFile(c)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(c, http.StatusRequestEntityTooLarge, "upload too large")
			return
		}
		writeError(c, http.StatusBadRequest, "missing image file: "+err.Error())
		return
	}

	data, err := readAll(fh)
	if err != nil {
		writeError(c, http.StatusBadRequest, "cannot read upload: "+err.Error())
		return
	}

	counts, err := h.an.Analyze(c.Request.Context(), data)
	if err != nil {
		var ae *types.AnalysisError
		if errors.As(err, &ae) {
			c.Set("analysis_error", string(ae.Kind))
		}
		logger.WithError(err).WithField("request_id", c.GetString("request_id")).Debug("analysis failed")
		writeError(c, http.StatusOK, err.Error())
		return
	}
	c.JSON(http.StatusOK, counts)
}

// uploadedFile returns the "file" field, or the only file part when the
// client used another field name.
func uploadedFile(c *gin.Context) (*multipart.FileHeader, error) {
	fh, err := c.FormFile(fileField)
	if err == nil {
		return fh, nil
	}
	if !errors.Is(err, http.ErrMissingFile) {
		return nil, err
	}
	form, ferr := c.MultipartForm()
	if ferr != nil {
		return nil, err
	}
	for _, files := range form.File {
		if len(files) > 0 {
			return files[0], nil
		}
	}
	return nil, err
}

func readAll(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func writeError(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{"error": msg})
}
