package service

import (
	"context"
	"io"
)

// MediaStorage 对象存储抽象，生产实现为 internal/pkg/minio.Storage
type MediaStorage interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, objectName string) error
	PublicURL(objectName string) string
	ObjectNameFromURL(url string) string
}

// MediaFile 一个待上传的文件，Reader 已定位到起始位置
type MediaFile struct {
	Filename    string
	Size        int64
	ContentType string
	Reader      io.Reader
}
