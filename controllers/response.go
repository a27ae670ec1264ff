package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/fichas-api/utils"
)

// Error codes returned in the error envelope
const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeInvalidID        = "INVALID_ID"
	CodeFichaNotFound    = "FICHA_NOT_FOUND"
	CodeClienteDuplicado = "CLIENTE_DUPLICADO"
	CodePeriodoInvalido  = "PERIODO_INVALIDO"
	CodeDatabase         = "DATABASE_ERROR"
	CodeInternal         = "INTERNAL_ERROR"
)

const internalErrorMessage = "Erro interno do servidor"

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success":   true,
		"data":      data,
		"timestamp": timestamp(),
	})
}

func respondList(c *gin.Context, data interface{}, pagination utils.Pagination) {
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       data,
		"pagination": pagination,
		"timestamp":  timestamp(),
	})
}

func respondError(c *gin.Context, status int, code, message string, details interface{}) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
		"timestamp": timestamp(),
	})
}

// errorResponder hides raw error text from clients in production
type errorResponder struct {
	production bool
}

func (r errorResponder) internal(c *gin.Context, err error) {
	_ = c.Error(err)
	message := err.Error()
	if r.production {
		message = internalErrorMessage
	}
	respondError(c, http.StatusInternalServerError, CodeInternal, message, nil)
}
