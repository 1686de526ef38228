package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// Storage 对象存储接口
type Storage interface {
	// Put 以流式写入保存对象，size 未知时传 -1
	Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	// PublicURL 返回对象的公开访问地址
	PublicURL(key string) string
}

// UploadKey 为上传文件生成存储键：uploads/<uuid>-<原始文件名>
func UploadKey(filename string) string {
	return fmt.Sprintf("uploads/%s-%s", uuid.New().String(), filename)
}
