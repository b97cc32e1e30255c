package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
)

// 错误消息直接透出给前端展示，保持英文
var (
	ErrFieldsMissing       = errors.New("please fill all the fields")
	ErrUserExists          = errors.New("user already exists")
	ErrUnknownUser         = errors.New("user not found")
	ErrPasswordIncorrect   = errors.New("invalid credentials")
	ErrNotAdmin            = errors.New("access denied, admin only")
	ErrUserNotFound        = errors.New("user not found")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrProfileExists       = errors.New("profile already exists")
	ErrPostNotFound        = errors.New("post not found")
	ErrNotPostOwner        = errors.New("not the owner of this post")
	ErrCommentEmpty        = errors.New("comment text is required")
	ErrTooManyFiles        = errors.New("too many files, at most 10 per post")
	ErrPostContentRequired = errors.New("title or description is required")
	ErrFileNotSupported    = errors.New("unsupported file type")
	ErrRoleInvalid         = errors.New("invalid role")
	UnauthorizedError      = errors.New("not authorized")
	UnExpectedError        = errors.New("unexpected error, please retry later")
)

var ErrorMap = map[error]int{
	ErrFieldsMissing:       BadRequest,
	ErrUserExists:          Conflict,
	ErrUnknownUser:         Unauthorized,
	ErrPasswordIncorrect:   Unauthorized,
	ErrNotAdmin:            Forbidden,
	ErrUserNotFound:        NotFound,
	ErrProfileNotFound:     NotFound,
	ErrProfileExists:       Conflict,
	ErrPostNotFound:        NotFound,
	ErrNotPostOwner:        Forbidden,
	ErrCommentEmpty:        BadRequest,
	ErrTooManyFiles:        BadRequest,
	ErrPostContentRequired: BadRequest,
	ErrFileNotSupported:    BadRequest,
	ErrRoleInvalid:         BadRequest,
	UnauthorizedError:      Unauthorized,
	UnExpectedError:        InternalServerError,
}
