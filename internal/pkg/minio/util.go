package minio

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"path"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

const (
	FileTypeImage    = "image"
	FileTypeNonImage = "non-image"

	thumbnailSize = 320
)

// ErrObjectNotFound 文件不存在
var ErrObjectNotFound = errors.New("object not found")

// UploadInput 上传参数，Folder 相对于配置的根目录
type UploadInput struct {
	Data        []byte
	FileName    string
	ContentType string
	Folder      string
	Tags        []string
}

// UploadResult 上传结果
type UploadResult struct {
	FileID       string
	Name         string
	URL          string
	ThumbnailURL string
	FileType     string
	Size         int64
	Width        *int
	Height       *int
}

// Upload 上传文件，图片额外生成缩略图并返回宽高
func (h *MediaHost) Upload(ctx context.Context, in *UploadInput) (*UploadResult, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	objectName := ObjectName(h.rootFolder, in.Folder, in.FileName)
	_, err := h.client.PutObject(ctx, h.bucket, objectName, bytes.NewReader(in.Data), int64(len(in.Data)), minio.PutObjectOptions{
		ContentType: in.ContentType,
		UserTags:    TagMap(in.Tags),
	})
	if err != nil {
		return nil, errors.Wrap(err, "minio put object")
	}

	res := &UploadResult{
		FileID:   EncodeFileID(objectName),
		Name:     path.Base(objectName),
		URL:      h.publicURL(objectName),
		FileType: FileTypeNonImage,
		Size:     int64(len(in.Data)),
	}

	if !strings.HasPrefix(in.ContentType, "image/") {
		res.ThumbnailURL = res.URL
		return res, nil
	}

	res.FileType = FileTypeImage
	res.ThumbnailURL = res.URL
	meta, err := ProbeImage(in.Data)
	if err != nil {
		// 无法解码的图片只保留原文件
		return res, nil
	}
	res.Width, res.Height = &meta.Width, &meta.Height

	thumbName := thumbnailName(objectName)
	_, err = h.client.PutObject(ctx, h.bucket, thumbName, bytes.NewReader(meta.Thumbnail), int64(len(meta.Thumbnail)), minio.PutObjectOptions{
		ContentType: "image/jpeg",
		UserTags:    TagMap(in.Tags),
	})
	if err != nil {
		return nil, errors.Wrap(err, "minio put thumbnail")
	}
	res.ThumbnailURL = h.publicURL(thumbName)

	return res, nil
}

// Delete 删除文件及其缩略图，文件不存在返回 ErrObjectNotFound
func (h *MediaHost) Delete(ctx context.Context, fileID string) error {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	objectName, err := DecodeFileID(fileID)
	if err != nil {
		return ErrObjectNotFound
	}
	if h.rootFolder != "" && !strings.HasPrefix(objectName, h.rootFolder+"/") {
		return ErrObjectNotFound
	}

	if _, err = h.client.StatObject(ctx, h.bucket, objectName, minio.StatObjectOptions{}); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return ErrObjectNotFound
		}
		return errors.Wrap(err, "minio stat object")
	}

	if err = h.client.RemoveObject(ctx, h.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return errors.Wrap(err, "minio remove object")
	}
	// 缩略图可能不存在，RemoveObject 对不存在的 key 不报错
	if err = h.client.RemoveObject(ctx, h.bucket, thumbnailName(objectName), minio.RemoveObjectOptions{}); err != nil {
		return errors.Wrap(err, "minio remove thumbnail")
	}
	return nil
}

func (h *MediaHost) publicURL(objectName string) string {
	return h.publicBase + "/" + objectName
}

// ObjectName root/folder/uuid.ext，folder 中的 .. 会被清理掉
func ObjectName(root, folder, fileName string) string {
	folder = strings.Trim(path.Clean("/"+folder), "/")
	ext := strings.ToLower(path.Ext(fileName))
	return path.Join(root, folder, uuid.NewString()+ext)
}

func thumbnailName(objectName string) string {
	return path.Join(path.Dir(objectName), "thumbnails", path.Base(objectName)+".jpg")
}

// EncodeFileID 对象 key 中含有 /，编码后才能放进 URL 路径参数
func EncodeFileID(objectName string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(objectName))
}

// DecodeFileID EncodeFileID 的逆过程
func DecodeFileID(fileID string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(fileID)
	if err != nil {
		return "", err
	}
	name := string(raw)
	if name == "" || strings.Contains(name, "..") {
		return "", errors.New("invalid file id")
	}
	return name, nil
}

// TagMap S3 标签是键值对，这里以标签名为键
func TagMap(tags []string) map[string]string {
	if len(tags) == 0 {
		return nil
	}
	m := make(map[string]string, len(tags))
	for _, tag := range tags {
		if tag != "" {
			m[tag] = "true"
		}
	}
	return m
}

// ImageMeta 图片尺寸与 JPEG 缩略图
type ImageMeta struct {
	Width     int
	Height    int
	Thumbnail []byte
}

// ProbeImage 解析图片尺寸并生成不超过 thumbnailSize 的缩略图
func ProbeImage(data []byte) (*ImageMeta, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(err, "decode image")
	}
	bounds := img.Bounds()

	var thumb image.Image = img
	if bounds.Dx() > thumbnailSize || bounds.Dy() > thumbnailSize {
		thumb = imaging.Fit(img, thumbnailSize, thumbnailSize, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err = imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return nil, errors.Wrap(err, "encode thumbnail")
	}

	return &ImageMeta{
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
		Thumbnail: buf.Bytes(),
	}, nil
}
