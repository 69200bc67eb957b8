package http

import (
	"strings"

	"github.com/gin-gonic/gin"

	"groq-chatbot/pkg/response"
)

// ValidateKey godoc
// @Summary     Validate an API key
// @Description Checks the format of a Groq API key without contacting the API.
// @Tags        Keys
// @Accept      json
// @Produce     json
// @Param       X-API-Key header string         false "Key to check when the body is empty"
// @Param       body      body   validateKeyReq false "Key to check"
// @Success     200 {object} validateKeyResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Router      /api/v1/keys/validate [POST]
func (h *handler) ValidateKey(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processValidateKeyReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	response.OK(c, h.newValidateKeyResp(h.uc.ValidateAPIKey(ctx, req.APIKey)))
}

// ListModels godoc
// @Summary     List models
// @Description Returns the models the configured providers can serve.
// @Tags        Models
// @Produce     json
// @Param       X-API-Key header string false "Groq API key"
// @Success     200 {object} listModelsResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     502 {object} response.Resp "Bad Gateway"
// @Router      /api/v1/models [GET]
func (h *handler) ListModels(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.ListModels(ctx, c.GetHeader(apiKeyHeader))
	if err != nil {
		h.l.Warnf(ctx, "uc.ListModels: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newListModelsResp(output))
}

// CreateSession godoc
// @Summary     Create a session
// @Description Starts an empty conversation session.
// @Tags        Sessions
// @Produce     json
// @Success     200 {object} sessionResp
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/sessions [POST]
func (h *handler) CreateSession(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.CreateSession(ctx)
	if err != nil {
		h.l.Errorf(ctx, "uc.CreateSession: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, newSessionResp(output))
}

// GetSession godoc
// @Summary     Get a session
// @Description Returns the history and the active document of a session.
// @Tags        Sessions
// @Produce     json
// @Param       id path string true "Session ID"
// @Success     200 {object} sessionResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/sessions/{id} [GET]
func (h *handler) GetSession(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := h.processSessionID(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.GetSession(ctx, id)
	if err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, newSessionResp(output))
}

// DeleteSession godoc
// @Summary     Delete a session
// @Tags        Sessions
// @Produce     json
// @Param       id path string true "Session ID"
// @Success     200 {object} response.Resp "OK"
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/sessions/{id} [DELETE]
func (h *handler) DeleteSession(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := h.processSessionID(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	if err := h.uc.DeleteSession(ctx, id); err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, nil)
}

// ResetSession godoc
// @Summary     Reset a session
// @Description Clears the history and the active document.
// @Tags        Sessions
// @Produce     json
// @Param       id path string true "Session ID"
// @Success     200 {object} sessionResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     409 {object} response.Resp "Conflict - interaction in progress"
// @Router      /api/v1/sessions/{id}/reset [POST]
func (h *handler) ResetSession(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := h.processSessionID(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.ResetSession(ctx, id)
	if err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, newSessionResp(output))
}

// LoadDocument godoc
// @Summary     Load a source document
// @Description Uploads a UTF-8 text file as the session's source document. The history is cleared.
// @Tags        Sessions
// @Accept      multipart/form-data
// @Produce     json
// @Param       id   path     string true "Session ID"
// @Param       file formData file   true "UTF-8 text file"
// @Success     200 {object} documentLoadResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     409 {object} response.Resp "Conflict - interaction in progress"
// @Failure     413 {object} response.Resp "Document too large"
// @Failure     422 {object} response.Resp "Document is not UTF-8"
// @Router      /api/v1/sessions/{id}/document [POST]
func (h *handler) LoadDocument(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processDocumentReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.LoadDocument(ctx, req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "uc.LoadDocument: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newDocumentLoadResp(output))
}

// Messages godoc
// @Summary     Get API messages
// @Description Returns the message list that the next request to the model would carry.
// @Tags        Sessions
// @Produce     json
// @Param       id path string true "Session ID"
// @Success     200 {object} messagesResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/sessions/{id}/messages [GET]
func (h *handler) Messages(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := h.processSessionID(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Messages(ctx, id)
	if err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newMessagesResp(output))
}

// Chat godoc
// @Summary     Ask one model
// @Description Sends the question with the session history to a single model.
// @Tags        Conversation
// @Accept      json
// @Produce     json
// @Param       id        path   string  true  "Session ID"
// @Param       X-API-Key header string  false "Groq API key"
// @Param       body      body   chatReq true  "Question"
// @Success     200 {object} chatResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     409 {object} response.Resp "Conflict - interaction in progress"
// @Failure     429 {object} response.Resp "Rate limited by the model API"
// @Failure     502 {object} response.Resp "Bad Gateway"
// @Router      /api/v1/sessions/{id}/chat [POST]
func (h *handler) Chat(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processChatReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Chat(ctx, req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "uc.Chat: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newChatResp(output))
}

// Compare godoc
// @Summary     Ask two models
// @Description Streams the question to two models at once. With Accept: text/event-stream the
// @Description answers arrive as "fragment" events followed by one "result" event; otherwise
// @Description the final result is returned as JSON. A failed slot is reported in the result
// @Description and the question is not kept in the history.
// @Tags        Conversation
// @Accept      json
// @Produce     json
// @Produce     text/event-stream
// @Param       id        path   string     true  "Session ID"
// @Param       X-API-Key header string     false "Groq API key"
// @Param       body      body   compareReq true  "Question"
// @Success     200 {object} compareResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     409 {object} response.Resp "Conflict - interaction in progress"
// @Router      /api/v1/sessions/{id}/compare [POST]
func (h *handler) Compare(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processCompareReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	if wantsEventStream(c) {
		h.compareStream(c, req)
		return
	}

	output, err := h.uc.Compare(ctx, req.toInput(nil))
	if err != nil {
		h.l.Warnf(ctx, "uc.Compare: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newCompareResp(output))
}

func wantsEventStream(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "text/event-stream")
}
