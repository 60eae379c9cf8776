package s3

import (
	"context"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var Instance Provider

type Provider interface {
	UploadFile(ctx context.Context, objectName, filePath, contentType string) error
	DownloadFile(ctx context.Context, objectName, filePath string) error
}

func Connect(endpoint, accessKeyID, secretAccessKey, bucketName string, useSSL bool) error {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return errors.Wrap(err, "ошибка подключения к s3")
	}
	ctx := context.Background()
	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		return errors.Wrap(err, "ошибка проверки bucket")
	}
	if !exists {
		err = client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{})
		if err != nil {
			return errors.Wrap(err, "ошибка создания bucket")
		}
		log.WithField("bucket", bucketName).Info("Создан bucket")
	}
	Instance = &impl{
		client:     client,
		bucketName: bucketName,
	}
	return nil
}

type impl struct {
	client     *minio.Client
	bucketName string
}

func (i impl) UploadFile(ctx context.Context, objectName, filePath, contentType string) error {
	_, err := i.client.FPutObject(ctx, i.bucketName, objectName, filePath, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return errors.Wrap(err, "ошибка загрузки файла в s3")
	}
	return nil
}

func (i impl) DownloadFile(ctx context.Context, objectName, filePath string) error {
	err := i.client.FGetObject(ctx, i.bucketName, objectName, filePath, minio.GetObjectOptions{})
	if err != nil {
		return errors.Wrap(err, "ошибка получения файла из s3")
	}
	return nil
}
