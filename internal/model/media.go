package model

import "errors"

// UploadResult is the stored location of an uploaded object.
type UploadResult struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// Avatar upload constants
const (
	MaxAvatarSizeBytes = 5 * 1024 * 1024 // 5MB
	AvatarWidth        = 200
	AvatarHeight       = 200
	AvatarFolder       = "avatars"
	AvatarExt          = ".jpg"
	ContentTypeJPEG    = "image/jpeg"
	AvatarCacheControl = "public, max-age=31536000"
)

// Media error codes (used in HTTP responses)
const (
	CodeFileTooLarge     = "FILE_TOO_LARGE"
	CodeInvalidImageType = "INVALID_IMAGE_TYPE"
)

var (
	ErrFileTooLarge     = errors.New("file too large")
	ErrInvalidImageType = errors.New("invalid image type")
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// IsAllowedImageType reports whether the content type may be uploaded as an avatar.
func IsAllowedImageType(contentType string) bool {
	return allowedImageTypes[contentType]
}
