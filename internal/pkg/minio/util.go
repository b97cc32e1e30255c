package minio

import (
	"Atelier/internal/api/config"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
)

// Storage 基于全局客户端的对象存储访问器，满足 service.MediaStorage
type Storage struct{}

func NewStorage() *Storage {
	return &Storage{}
}

// Upload 上传文件到MinIO
func (s *Storage) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	if Client == nil {
		return "", fmt.Errorf("minio client is not initialized")
	}

	uploadInfo, err := Client.PutObject(ctx, MainBucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return uploadInfo.Key, nil
}

// Delete 删除MinIO中的文件
func (s *Storage) Delete(ctx context.Context, objectName string) error {
	if Client == nil {
		return fmt.Errorf("minio client is not initialized")
	}

	err := Client.RemoveObject(ctx, MainBucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// PublicURL 获取文件的公共访问URL
func (s *Storage) PublicURL(objectName string) string {
	return GetPublicURL(objectName)
}

// ObjectNameFromURL 从公共URL反推对象名，非本桶 URL 返回空串
func (s *Storage) ObjectNameFromURL(url string) string {
	marker := "/" + MainBucket + "/"
	idx := strings.Index(url, marker)
	if idx < 0 {
		return ""
	}
	return url[idx+len(marker):]
}

// GetPublicURL 构造对象的公共访问URL，优先走外部端点
func GetPublicURL(objectName string) string {
	cfg := config.Cfg.MinIO

	endpoint := cfg.ExternalEndpoint
	useSSL := cfg.ExternalUseSSL
	if endpoint == "" {
		endpoint = cfg.InternalEndpoint
		useSSL = cfg.InternalUseSSL
	}

	protocol := "http"
	if useSSL {
		protocol = "https"
	}

	return fmt.Sprintf("%s://%s/%s/%s", protocol, endpoint, MainBucket, objectName)
}
