package service

import (
	"Atlania/internal/api/dto"
	"Atlania/internal/model"
	"Atlania/internal/pkg/consts"
	"Atlania/internal/pkg/minio"
	"context"
	"errors"
	log "log/slog"
	"path"
	"strconv"
	"strings"
)

// MediaKind 上传类别
type MediaKind string

const (
	MediaKindImage MediaKind = "image"
	MediaKindVideo MediaKind = "video"
	MediaKindFile  MediaKind = "file"
)

// DefaultFolder 未指定目录时使用
func (k MediaKind) DefaultFolder() string {
	switch k {
	case MediaKindImage:
		return "images"
	case MediaKindVideo:
		return "videos"
	default:
		return "files"
	}
}

// Accepts 校验 Content-Type
func (k MediaKind) Accepts(contentType string) bool {
	switch k {
	case MediaKindImage:
		return strings.HasPrefix(contentType, consts.MimePrefixImage)
	case MediaKindVideo:
		return strings.HasPrefix(contentType, consts.MimePrefixVideo)
	case MediaKindFile:
		return true
	}
	return false
}

// MediaHost 对象存储
type MediaHost interface {
	Upload(ctx context.Context, in *minio.UploadInput) (*minio.UploadResult, error)
	Delete(ctx context.Context, fileID string) error
}

type MediaService interface {
	Upload(ctx context.Context, caller *model.User, kind MediaKind, req *dto.MediaUploadDTO) (*dto.MediaDTO, error)
	Delete(ctx context.Context, caller *model.User, fileID string) error
}

type mediaServiceImpl struct {
	host MediaHost
}

func NewMediaService(host MediaHost) MediaService {
	return &mediaServiceImpl{host: host}
}

func (s *mediaServiceImpl) Upload(ctx context.Context, caller *model.User, kind MediaKind, req *dto.MediaUploadDTO) (*dto.MediaDTO, error) {
	if err := RequireActive(caller); err != nil {
		return nil, err
	}
	if len(req.Data) == 0 || req.FileName == "" {
		return nil, ErrParamInvalid
	}
	if !kind.Accepts(req.ContentType) {
		return nil, ErrFileNotSupported
	}

	folder, err := cleanFolder(req.Folder)
	if err != nil {
		return nil, err
	}
	if folder == "" {
		folder = kind.DefaultFolder()
	}

	res, err := s.host.Upload(ctx, &minio.UploadInput{
		Data:        req.Data,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		Folder:      folder,
		Tags:        []string{string(kind), "user_" + strconv.FormatUint(caller.ID, 10)},
	})
	if err != nil {
		log.ErrorContext(ctx, "media upload failed", "kind", kind, "err", err)
		return nil, upstream("media", err)
	}
	log.InfoContext(ctx, "media uploaded", "file_id", res.FileID, "kind", kind, "user_id", caller.ID)

	return &dto.MediaDTO{
		FileID:       res.FileID,
		Name:         res.Name,
		URL:          res.URL,
		ThumbnailURL: res.ThumbnailURL,
		FileType:     res.FileType,
		Size:         res.Size,
		Width:        res.Width,
		Height:       res.Height,
	}, nil
}

// Delete 任何已登录的活跃用户都可删除
func (s *mediaServiceImpl) Delete(ctx context.Context, caller *model.User, fileID string) error {
	if err := RequireActive(caller); err != nil {
		return err
	}
	if fileID == "" {
		return ErrParamInvalid
	}
	if err := s.host.Delete(ctx, fileID); err != nil {
		if errors.Is(err, minio.ErrObjectNotFound) {
			return ErrFileNotExist
		}
		return upstream("media", err)
	}
	log.InfoContext(ctx, "media deleted", "file_id", fileID, "user_id", caller.ID)
	return nil
}

// cleanFolder 目录只能位于根目录之下
func cleanFolder(folder string) (string, error) {
	folder = strings.Trim(strings.TrimSpace(folder), "/")
	if folder == "" {
		return "", nil
	}
	cleaned := path.Clean(folder)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrParamInvalid
	}
	return cleaned, nil
}
