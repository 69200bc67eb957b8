package http

import (
	"context"
	"errors"
	"net/http"

	"groq-chatbot/internal/chat"
	pkgErrors "groq-chatbot/pkg/errors"
	"groq-chatbot/pkg/llmprovider"
	"groq-chatbot/pkg/response"
)

var (
	errMissingSessionID = pkgErrors.NewHTTPError(http.StatusBadRequest, "session id is required")
	errMissingFile      = pkgErrors.NewHTTPError(http.StatusBadRequest, "multipart field \"file\" is required")
	errDocumentTooLarge = pkgErrors.NewHTTPError(http.StatusRequestEntityTooLarge, "document exceeds the upload limit")
)

// mapError translates domain and provider errors into HTTP errors.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, chat.ErrSessionNotFound):
		return pkgErrors.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, chat.ErrSessionBusy):
		return pkgErrors.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, chat.ErrInvalidKeyFormat):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, chat.UserMessage(err))
	case errors.Is(err, chat.ErrEmptyQuestion),
		errors.Is(err, chat.ErrInvalidModel),
		errors.Is(err, chat.ErrInvalidTemp),
		errors.Is(err, llmprovider.ErrModelNotSupported),
		errors.Is(err, llmprovider.ErrInvalidRequest):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, chat.ErrDocumentDecode):
		return pkgErrors.NewHTTPError(http.StatusUnprocessableEntity, chat.MsgDocumentDecode)
	case errors.Is(err, llmprovider.ErrNoProvidersConfigured):
		return pkgErrors.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	}

	if isProviderError(err) {
		switch llmprovider.KindOf(err) {
		case llmprovider.KindAuthentication:
			return pkgErrors.NewHTTPError(http.StatusUnauthorized, chat.MsgAuthentication)
		case llmprovider.KindRateLimit:
			return pkgErrors.NewHTTPError(http.StatusTooManyRequests, chat.MsgRateLimit)
		case llmprovider.KindConnection:
			if errors.Is(err, context.DeadlineExceeded) {
				return pkgErrors.NewHTTPError(http.StatusGatewayTimeout, chat.MsgConnection)
			}
			return pkgErrors.NewHTTPError(http.StatusBadGateway, chat.MsgConnection)
		default:
			return pkgErrors.NewHTTPError(http.StatusBadGateway, chat.MsgUnclassified)
		}
	}

	return pkgErrors.NewHTTPError(http.StatusInternalServerError, response.DefaultErrorMessage)
}

func isProviderError(err error) bool {
	var pe *llmprovider.ProviderError
	return errors.As(err, &pe) ||
		errors.Is(err, llmprovider.ErrAllProvidersFailed) ||
		errors.Is(err, context.DeadlineExceeded)
}
