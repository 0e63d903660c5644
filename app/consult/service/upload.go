package service

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"go-consult/app/consult"
	"go-consult/common/log"
	"go-consult/config"
)

var uploadExts = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

type UploadFileResp struct {
	Key string `json:"key"`
}

// UploadFile stores an image under a fresh uuid key and returns the key.
// Keys go into pin photoKey and tour stop image fields.
func UploadFile(ctx context.Context, header *multipart.FileHeader) (UploadFileResp, error) {
	var resp UploadFileResp
	err := log.WithTracer(ctx, PackageName, "upload file", func(ctx context.Context) error {
		ext := strings.ToLower(filepath.Ext(header.Filename))
		if _, ok := uploadExts[ext]; !ok {
			return errors.New("unsupported file type: " + ext)
		}
		file, err := header.Open()
		if err != nil {
			consult.Logger().WithContext(ctx).Error("open upload: ", err.Error())
			return err
		}
		defer file.Close()
		key := uuid.NewString() + ext
		_, err = consult.MinIOClient.PutObject(ctx, config.ExtConfig.MinIO.UploadBucket,
			key, file, header.Size, minio.PutObjectOptions{
				ContentType: header.Header.Get("Content-Type"),
			})
		if err != nil {
			consult.Logger().WithContext(ctx).Error("minio put upload: ", err.Error())
			return err
		}
		resp.Key = key
		return nil
	})
	return resp, err
}

type DownloadFileReq struct {
	Key string `form:"key"`
}

// DownloadFile streams a stored upload. The caller owns closing the reader.
func DownloadFile(ctx context.Context, req DownloadFileReq) (io.ReadCloser, string, error) {
	if req.Key == "" || strings.Contains(req.Key, "/") {
		return nil, "", ErrNotFound
	}
	obj, err := consult.MinIOClient.GetObject(ctx, config.ExtConfig.MinIO.UploadBucket,
		req.Key, minio.GetObjectOptions{})
	if err != nil {
		consult.Logger().WithContext(ctx).Error("minio get upload: ", err.Error())
		return nil, "", err
	}
	stat, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		return nil, "", ErrNotFound
	}
	return obj, stat.ContentType, nil
}
