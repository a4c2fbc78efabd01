package httperr

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string         `json:"error_code"`
	Message string         `json:"message"`
	Slot    string         `json:"slot,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// ======================================================
// Mapeamento erro → HTTP
// ======================================================

var statusByCode = map[string]int{
	CodeBadInterval:   http.StatusBadRequest,
	CodePastDate:      http.StatusBadRequest,
	CodeMissingFields: http.StatusBadRequest,
	CodeInvalidInput:  http.StatusBadRequest,

	CodeForbidden: http.StatusForbidden,

	CodeCapacityExceeded:       http.StatusConflict,
	CodeIllegalTransition:      http.StatusConflict,
	CodeNumberAllocationFailed: http.StatusConflict,
	CodeDuplicate:              http.StatusConflict,
	CodeSupplierInUse:          http.StatusConflict,
}

// StatusFor devolve o status HTTP de um código de negócio.
func StatusFor(code string) int {
	if st, ok := statusByCode[code]; ok {
		return st
	}
	if strings.HasSuffix(code, "_NOT_FOUND") {
		return http.StatusNotFound
	}
	return http.StatusUnprocessableEntity
}

// FromError escreve a resposta adequada para err.
// Erros que não são de negócio viram 500 sem vazar detalhes.
func FromError(c *gin.Context, err error) {
	be, ok := AsBusiness(err)
	if !ok {
		Internal(c, "internal_error", "Erro interno.")
		return
	}

	msg := be.Message
	if msg == "" {
		msg = be.Code
	}

	c.JSON(StatusFor(be.Code), HTTPError{
		Code:    be.Code,
		Message: msg,
		Slot:    be.Slot,
		Details: be.Details,
	})
}
