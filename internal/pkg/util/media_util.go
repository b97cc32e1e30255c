package util

import (
	"io"
	"net/http"
	"path"
	"time"

	"github.com/google/uuid"
)

// GetSafeContentType 基于文件头嗅探真实类型，不信任客户端声明
func GetSafeContentType(reader io.ReadSeeker) (string, error) {
	buf := make([]byte, 512)
	n, err := reader.Read(buf)
	if err != nil && err != io.EOF {
		return "", err
	}
	if _, err = reader.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return http.DetectContentType(buf[:n]), nil
}

// NewObjectName 生成按日期分目录的对象名，保留原始扩展名
func NewObjectName(filename string) string {
	ext := path.Ext(filename)
	return time.Now().Format("2006/01/02/") + uuid.NewString() + ext
}
