package httpapi

import (
	"errors"
	"net/http"

	"github.com/ManishR23/clink-chatbot/inventory"
)

//ErrorResponse represents an HTTP error
type ErrorResponse struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

//handleError returns a handlerResponse response for the given code
func handleError(code int, err error) *handlerResponse {
	return &handlerResponse{Code: code, Body: &ErrorResponse{Code: code, Error: http.StatusText(code)}, Err: err}
}

//notFoundHandler returns a 404 handlerResponse
func notFoundHandler(w http.ResponseWriter, r *http.Request) *handlerResponse {
	return handleError(http.StatusNotFound, errors.New("Could not find handler"))
}

//checkError checks an inventory.Error and returns a handlerResponse for it,
//or nil if there was no error
func checkError(err error) *handlerResponse {
	if err == nil {
		return nil
	}

	var e *inventory.Error
	if errors.As(err, &e) && e.Type == inventory.ErrorTypeUser {
		return handleError(http.StatusBadRequest, err)
	}
	return handleError(http.StatusInternalServerError, err)
}
