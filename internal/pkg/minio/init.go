package minio

import (
	"Atlania/internal/api/config"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MediaHost 媒体文件托管，文件 ID 对调用方不透明
type MediaHost struct {
	client     *minio.Client
	bucket     string
	rootFolder string
	publicBase string
	timeout    time.Duration
}

// NewMediaHost 初始化 MinIO 客户端并确保主存储桶可公开读取
func NewMediaHost(ctx context.Context, cfg config.MinIOConfig) (*MediaHost, error) {
	var endpoint string
	var useSSL bool
	if cfg.InternalEndpoint != "" {
		endpoint = cfg.InternalEndpoint
		useSSL = cfg.InternalUseSSL
	} else {
		endpoint = cfg.ExternalEndpoint
		useSSL = cfg.ExternalUseSSL
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize minio client: %w", err)
	}

	external := cfg.ExternalEndpoint
	if external == "" {
		external = endpoint
	}
	scheme := "http"
	if cfg.ExternalUseSSL {
		scheme = "https"
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	h := &MediaHost{
		client:     client,
		bucket:     cfg.MainBucket,
		rootFolder: cfg.RootFolder,
		publicBase: fmt.Sprintf("%s://%s/%s", scheme, external, cfg.MainBucket),
		timeout:    timeout,
	}

	if err = h.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return h, nil
}

// ensureBucket 创建主存储桶并开放匿名读，上传后的链接可直接访问
func (h *MediaHost) ensureBucket(ctx context.Context) error {
	exists, err := h.client.BucketExists(ctx, h.bucket)
	if err != nil {
		return fmt.Errorf("failed to connect to minio server: %w", err)
	}
	if !exists {
		if err = h.client.MakeBucket(ctx, h.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", h.bucket, err)
		}
		log.Info("已创建媒体存储桶", "bucket", h.bucket)
	}

	policy := fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`, h.bucket)
	if err = h.client.SetBucketPolicy(ctx, h.bucket, policy); err != nil {
		return fmt.Errorf("设置存储桶读策略失败: %w", err)
	}
	return nil
}
