package helper

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"microcourses/logger"
	"microcourses/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

const msgServerError = "Server Error"

// HTTPHelper writes every response envelope of the API.
type HTTPHelper struct {
	Translator ut.Translator
	Logger     logger.Logger
}

var (
	translatorOnce sync.Once
	translator     ut.Translator
)

// NewHTTPHelper registers english validation messages on gin's validator.
func NewHTTPHelper(log logger.Logger) *HTTPHelper {
	translatorOnce.Do(func() {
		uni := ut.New(en.New(), en.New())
		translator, _ = uni.GetTranslator("en")
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(jsonFieldName)
			_ = en_translations.RegisterDefaultTranslations(v, translator)
		}
	})
	return &HTTPHelper{Translator: translator, Logger: log}
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}

// GetStatusCode maps a service error to its HTTP status.
func (u *HTTPHelper) GetStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var (
		badRequest   models.ErrorBadRequest
		unauthorized models.ErrorUnauthorized
		forbidden    models.ErrorForbidden
		notFound     models.ErrorNotFound
		conflict     models.ErrorConflict
		tooMany      models.ErrorTooManyRequests
	)
	switch {
	case errors.As(err, &badRequest):
		return http.StatusBadRequest
	case errors.As(err, &unauthorized):
		return http.StatusUnauthorized
	case errors.As(err, &forbidden):
		return http.StatusForbidden
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &tooMany):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// SendError writes err as {msg}. Internal errors are logged and replaced by
// a generic message.
func (u *HTTPHelper) SendError(c *gin.Context, err error) {
	status := u.GetStatusCode(err)
	if status == http.StatusInternalServerError {
		u.logInternal(c, err)
		u.abort(c, status, msgServerError)
		return
	}
	u.abort(c, status, err.Error())
}

// SendValidationError turns a binding error into a 400.
func (u *HTTPHelper) SendValidationError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		messages := make([]string, 0, len(validationErrors))
		for _, fe := range validationErrors {
			if u.Translator != nil {
				messages = append(messages, fe.Translate(u.Translator))
			} else {
				messages = append(messages, fe.Error())
			}
		}
		u.SendBadRequest(c, strings.Join(messages, "; "))
		return
	}

	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		u.SendBadRequest(c, fmt.Sprintf("%s must be a %s", typeErr.Field, typeErr.Type.String()))
	case errors.Is(err, io.EOF):
		u.SendBadRequest(c, "Request body is required")
	default:
		u.SendBadRequest(c, "Invalid request body")
	}
}

func (u *HTTPHelper) SendBadRequest(c *gin.Context, message string) {
	u.abort(c, http.StatusBadRequest, message)
}

func (u *HTTPHelper) SendUnauthorizedError(c *gin.Context, message string) {
	u.abort(c, http.StatusUnauthorized, message)
}

func (u *HTTPHelper) SendForbiddenError(c *gin.Context, message string) {
	u.abort(c, http.StatusForbidden, message)
}

func (u *HTTPHelper) SendNotFoundError(c *gin.Context, message string) {
	u.abort(c, http.StatusNotFound, message)
}

func (u *HTTPHelper) SendTooManyRequests(c *gin.Context, message string) {
	u.abort(c, http.StatusTooManyRequests, message)
}

func (u *HTTPHelper) SendInternalError(c *gin.Context, err error) {
	u.logInternal(c, err)
	u.abort(c, http.StatusInternalServerError, msgServerError)
}

func (u *HTTPHelper) SendSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func (u *HTTPHelper) SendCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// SendMessage answers an action with {msg}.
func (u *HTTPHelper) SendMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, models.MessageResponse{Msg: message})
}

func (u *HTTPHelper) abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, models.MessageResponse{Msg: message})
}

func (u *HTTPHelper) logInternal(c *gin.Context, err error) {
	if u.Logger == nil {
		return
	}
	fields := map[string]interface{}{
		"request_id": RequestID(c),
		"method":     c.Request.Method,
		"path":       c.FullPath(),
	}
	args := []interface{}{err, fields}
	if user, ok := CurrentUser(c); ok {
		args = append(args, logger.Person{
			ID:    fmt.Sprint(user.ID),
			Name:  user.Name,
			Email: user.Email,
		})
	}
	u.Logger.Error(fmt.Sprintf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err), args...)
}
