package http

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// multipartOverhead is the slack allowed on top of the document limit for
// multipart boundaries and part headers.
const multipartOverhead int64 = 64 << 10

func (h *handler) processSessionID(c *gin.Context) (string, error) {
	id := c.Param("id")
	if id == "" {
		return "", errMissingSessionID
	}
	return id, nil
}

// processValidateKeyReq accepts the key in the body or the X-API-Key header.
func (h *handler) processValidateKeyReq(c *gin.Context) (validateKeyReq, error) {
	var req validateKeyReq
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			return req, err
		}
	}
	if req.APIKey == "" {
		req.APIKey = c.GetHeader(apiKeyHeader)
	}
	return req, nil
}

func (h *handler) processChatReq(c *gin.Context) (chatReq, error) {
	var req chatReq
	id, err := h.processSessionID(c)
	if err != nil {
		return req, err
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	req.SessionID = id
	req.APIKey = c.GetHeader(apiKeyHeader)
	return req, nil
}

func (h *handler) processCompareReq(c *gin.Context) (compareReq, error) {
	var req compareReq
	id, err := h.processSessionID(c)
	if err != nil {
		return req, err
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	req.SessionID = id
	req.APIKey = c.GetHeader(apiKeyHeader)
	return req, nil
}

// processDocumentReq reads the multipart "file" field, refusing anything
// larger than maxDocumentBytes.
func (h *handler) processDocumentReq(c *gin.Context) (documentReq, error) {
	var req documentReq
	id, err := h.processSessionID(c)
	if err != nil {
		return req, err
	}
	req.SessionID = id

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return req, errDocumentTooLarge
		}
		return req, errMissingFile
	}
	if fh.Size > h.maxDocumentBytes {
		return req, errDocumentTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return req, err
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, h.maxDocumentBytes+1))
	if err != nil {
		return req, err
	}
	if int64(len(raw)) > h.maxDocumentBytes {
		return req, errDocumentTooLarge
	}

	req.Name = filepath.Base(fh.Filename)
	req.Raw = raw
	return req, nil
}
