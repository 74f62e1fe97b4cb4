package models

type ErrorBadRequest struct {
	Message string
}

func (e ErrorBadRequest) Error() string { return e.Message }

type ErrorUnauthorized struct {
	Message string
}

func (e ErrorUnauthorized) Error() string { return e.Message }

type ErrorForbidden struct {
	Message string
}

func (e ErrorForbidden) Error() string { return e.Message }

type ErrorNotFound struct {
	Message string
}

func (e ErrorNotFound) Error() string { return e.Message }

type ErrorConflict struct {
	Message string
}

func (e ErrorConflict) Error() string { return e.Message }

type ErrorTooManyRequests struct {
	Message string
}

func (e ErrorTooManyRequests) Error() string { return e.Message }

func BadRequest(msg string) error   { return ErrorBadRequest{Message: msg} }
func Unauthorized(msg string) error { return ErrorUnauthorized{Message: msg} }
func Forbidden(msg string) error    { return ErrorForbidden{Message: msg} }
func NotFound(msg string) error     { return ErrorNotFound{Message: msg} }
func Conflict(msg string) error     { return ErrorConflict{Message: msg} }
