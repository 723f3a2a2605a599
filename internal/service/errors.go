package service

import (
	"errors"
	"net/http"
)

const (
	BadRequest          = http.StatusBadRequest
	Unauthorized        = http.StatusUnauthorized
	Forbidden           = http.StatusForbidden
	NotFound            = http.StatusNotFound
	NotImplemented      = http.StatusNotImplemented
	InternalServerError = http.StatusInternalServerError
)

var (
	ErrParamInvalid          = errors.New("Invalid request parameters")
	ErrUserNotFound          = errors.New("User not found")
	ErrUserExist             = errors.New("Email already registered")
	ErrUserInactive          = errors.New("Inactive user")
	ErrInvalidCredentials    = errors.New("Incorrect email or password")
	ErrInvalidToken          = errors.New("Could not validate credentials")
	ErrInsufficientPrivilege = errors.New("The user doesn't have enough privileges")
	ErrInvalidRole           = errors.New("Invalid role")
	ErrInvalidStatus         = errors.New("Invalid post status")
	ErrPostNotFound          = errors.New("Post not found")
	ErrPostNotPublished      = errors.New("Post not published")
	ErrPostSlugExist         = errors.New("Slug already exists")
	ErrCategoryNotFound      = errors.New("Category not found")
	ErrLikeDuplicate         = errors.New("Post already liked")
	ErrLikeNotFound          = errors.New("Like not found")
	ErrFileNotSupported      = errors.New("Unsupported file type")
	ErrFileNotExist          = errors.New("File not found")
	ErrOAuthNotConfigured    = errors.New("Google login is not configured")
	ErrOAuthStateInvalid     = errors.New("Invalid or expired OAuth state")
	ErrOAuthEmailMissing     = errors.New("Email not provided by Google")
	UnExpectedError          = errors.New("Internal server error")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:          BadRequest,
	ErrUserNotFound:          NotFound,
	ErrUserExist:             BadRequest,
	ErrUserInactive:          BadRequest,
	ErrInvalidCredentials:    Unauthorized,
	ErrInvalidToken:          Unauthorized,
	ErrInsufficientPrivilege: Forbidden,
	ErrInvalidRole:           BadRequest,
	ErrInvalidStatus:         BadRequest,
	ErrPostNotFound:          NotFound,
	ErrPostNotPublished:      Forbidden,
	ErrPostSlugExist:         BadRequest,
	ErrCategoryNotFound:      NotFound,
	ErrLikeDuplicate:         BadRequest,
	ErrLikeNotFound:          NotFound,
	ErrFileNotSupported:      BadRequest,
	ErrFileNotExist:          NotFound,
	ErrOAuthNotConfigured:    NotImplemented,
	ErrOAuthStateInvalid:     BadRequest,
	ErrOAuthEmailMissing:     BadRequest,
	UnExpectedError:          InternalServerError,
}

// UpstreamError 第三方服务（Google、媒体存储）调用失败，原样透出对方的错误信息
type UpstreamError struct {
	Provider string
	Err      error
}

func (e *UpstreamError) Error() string {
	return e.Provider + ": " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func upstream(provider string, err error) error {
	return &UpstreamError{Provider: provider, Err: err}
}

// CodeOf 返回错误对应的状态码，未知错误返回 false
func CodeOf(err error) (int, bool) {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return InternalServerError, true
	}
	for sentinel, code := range ErrorMap {
		if errors.Is(err, sentinel) {
			return code, true
		}
	}
	return 0, false
}
