// Package tool 实现工具调用的摄取管道：解析 multipart 请求，
// 并发地把文件流写入对象存储，汇聚结果后调用 AI 网关
package tool

import (
	"context"
	"encoding/json"
	"io"
	"mime/multipart"

	"golang.org/x/sync/errgroup"

	"github.com/kai-platform/kai-backend/internal/apperr"
	"github.com/kai-platform/kai-backend/internal/model"
	"github.com/kai-platform/kai-backend/internal/service/gateway"
	"github.com/kai-platform/kai-backend/internal/service/storage"
)

// 携带 JSON 编码工具载荷的控制字段名
const controlField = "data"

// Gateway AI 网关依赖
type Gateway interface {
	Send(ctx context.Context, payload gateway.Payload) (*gateway.Result, error)
}

// Service 工具摄取管道
type Service struct {
	storage storage.Storage
	gw      Gateway
}

// NewService 创建工具摄取管道
func NewService(store storage.Storage, gw Gateway) *Service {
	return &Service{storage: store, gw: gw}
}

// Invoke 消费 multipart 请求并调用 AI 网关。每个文件部分经
// io.Pipe 直通对象存储，不做整体缓冲；上传相互并发，全部结清
// 后才继续。任一上传失败则整个调用失败，不产生部分提交。
// 零文件是合法的普通工具调用；未识别的部分被忽略，容忍客户端
// 版本偏差
func (s *Service) Invoke(ctx context.Context, reader *multipart.Reader) (*gateway.Result, error) {
	g, gctx := errgroup.WithContext(ctx)

	var (
		control   *model.ToolRequest
		uploads   []*model.UploadedFile
		streamErr error
	)

parts:
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			streamErr = err
			break
		}

		switch {
		case part.FileName() != "":
			filename := part.FileName()
			contentType := part.Header.Get("Content-Type")
			key := storage.UploadKey(filename)
			uploaded := &model.UploadedFile{}
			uploads = append(uploads, uploaded)

			pr, pw := io.Pipe()
			g.Go(func() error {
				if err := s.storage.Put(gctx, key, pr, -1, contentType); err != nil {
					pr.CloseWithError(err)
					return err
				}
				*uploaded = model.UploadedFile{
					FilePath: key,
					URL:      s.storage.PublicURL(key),
					Filename: filename,
				}
				return nil
			})

			// 主循环按到达顺序喂流，存储端并发消费
			if _, err := io.Copy(pw, part); err != nil {
				pw.CloseWithError(err)
				streamErr = err
				break parts
			}
			pw.Close()

		case part.FormName() == controlField:
			var req model.ToolRequest
			if err := json.NewDecoder(part).Decode(&req); err != nil {
				streamErr = err
				break parts
			}
			control = &req

		default:
			// 未识别的字段不拒绝，直接跳过
		}
	}

	uploadErr := g.Wait()
	if streamErr != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to read multipart request", streamErr)
	}
	if uploadErr != nil {
		return nil, apperr.Wrap(apperr.Internal, "file upload failed", uploadErr)
	}
	if control == nil {
		return nil, apperr.New(apperr.InvalidArgument, "missing tool data")
	}

	toolData := control.ToolData
	if len(uploads) > 0 {
		files := make([]model.UploadedFile, 0, len(uploads))
		for _, uploaded := range uploads {
			files = append(files, *uploaded)
		}
		toolData.Inputs = append(toolData.Inputs, model.ToolInput{
			Name:  model.ToolInputFiles,
			Value: files,
		})
	}

	result, err := s.gw.Send(ctx, gateway.NewToolPayload(control.User, &toolData))
	if err != nil {
		return nil, apperr.EnsureInternal(err, "AI service call failed")
	}
	return result, nil
}
