package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Err struct {
	StatusCode int    `json:"-"`
	Msg        string `json:"error"`

	err error
}

func (e *Err) Error() string {
	return e.Msg
}

func NewErr(statusCode int, msg string, err error) *Err {
	return &Err{
		StatusCode: statusCode,
		Msg:        msg,
		err:        err,
	}
}

func ErrBadRequest(err error) *Err {
	return NewErr(http.StatusBadRequest, err.Error(), err)
}

func ErrWrongCredentials(err error) *Err {
	return NewErr(http.StatusUnauthorized, "wrong credentials", err)
}

func ErrUnauthorized(msg string) *Err {
	return NewErr(http.StatusUnauthorized, msg, nil)
}

func ErrPermissionDenied(err error) *Err {
	return NewErr(http.StatusForbidden, err.Error(), err)
}

func ErrNotFound(what, key string, value any) *Err {
	return NewErr(http.StatusNotFound, fmt.Sprintf("%v not found by %v (%v)", what, key, value), nil)
}

func ErrConflict(err error) *Err {
	return NewErr(http.StatusConflict, err.Error(), err)
}

func ErrInternalServerError(err error) *Err {
	return NewErr(http.StatusInternalServerError, "internal server error", err)
}

// RenderErr writes the error response. Internal errors are logged with the
// wrapped cause but never leak it to the client.
func RenderErr(ctx *gin.Context, err *Err) {
	if err.StatusCode >= http.StatusInternalServerError {
		zap.L().Error("internal error",
			zap.String("path", ctx.FullPath()),
			zap.Error(err.err),
		)
	}

	ctx.AbortWithStatusJSON(err.StatusCode, err)
}
