package util

import (
	"bytes"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
)

// MakeThumbnail 生成头像缩略图（居中裁剪为 size x size 的 JPEG）
func MakeThumbnail(reader io.Reader, size int) (*bytes.Buffer, int64, error) {
	img, err := imaging.Decode(reader, imaging.AutoOrientation(true))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to decode image: %w", err)
	}

	thumb := imaging.Fill(img, size, size, imaging.Center, imaging.Lanczos)

	buf := &bytes.Buffer{}
	if err = imaging.Encode(buf, thumb, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, 0, fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	return buf, int64(buf.Len()), nil
}
