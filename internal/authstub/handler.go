// Package authstub is a stand-in for the storefront auth service, used for
// local development ("qkart stub") and as the backend in tests. It speaks
// the same {success, message} contract as the real service.
package authstub

import (
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"qkart/internal/log"
	"qkart/internal/registration"
)

// Messages returned by the stub.
const (
	MsgUsernameTaken   = "Username is already taken"
	MsgInvalidBody     = "Invalid request body"
	MsgUsernameInvalid = "Username should be 6 to 32 characters in length"
	MsgPasswordInvalid = "Password should be 6 to 32 characters in length"
	MsgInternal        = "Could not register user"
)

// RegisterRequest is the body of POST /auth/register. Lengths are UTF-16
// code units, the same unit the client validates in.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,utf16min=6,utf16max=32"`
	Password string `json:"password" binding:"required,utf16min=6,utf16max=32"`
}

type response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

var registerValidationsOnce sync.Once

// registerValidations adds the utf16min and utf16max tags to gin's validator.
func registerValidations() {
	registerValidationsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			log.Warn(log.CatStub, "Binding engine is not go-playground/validator")
			return
		}
		_ = v.RegisterValidation("utf16min", utf16Bound(func(n, limit int) bool { return n >= limit }))
		_ = v.RegisterValidation("utf16max", utf16Bound(func(n, limit int) bool { return n <= limit }))
	})
}

func utf16Bound(within func(n, limit int) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return within(registration.Length(fl.Field().String()), limit)
	}
}

type handler struct {
	store UserStore
}

func (h *handler) register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response{Message: bindingMessage(err)})
		return
	}

	user, err := h.store.Add(c.Request.Context(), req.Username)
	switch {
	case errors.Is(err, ErrUsernameTaken):
		log.Info(log.CatStub, "Duplicate registration", "username", req.Username)
		c.JSON(http.StatusBadRequest, response{Message: MsgUsernameTaken})
		return
	case err != nil:
		log.ErrorErr(log.CatStub, "Storing user failed", err, "username", req.Username)
		c.JSON(http.StatusInternalServerError, response{Message: MsgInternal})
		return
	}

	log.Info(log.CatStub, "Registered user", "username", user.Username, "id", user.ID)
	c.JSON(http.StatusCreated, response{Success: true})
}

func (h *handler) health(c *gin.Context) {
	n, err := h.store.Len(c.Request.Context())
	if err != nil {
		log.ErrorErr(log.CatStub, "Health check failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "users": n})
}

// bindingMessage turns a binding failure into the message the storefront shows.
func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return MsgInvalidBody
	}
	switch verrs[0].Field() {
	case "Username":
		return MsgUsernameInvalid
	case "Password":
		return MsgPasswordInvalid
	default:
		return MsgInvalidBody
	}
}
