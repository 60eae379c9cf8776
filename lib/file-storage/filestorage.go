package filestorage

import (
	"context"

	"access-request-backend/s3"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var Instance Provider

// Provider - хранилище сформированных печатных форм. Файл всегда остаётся
// на локальном диске, при включенном s3 дополнительно выгружается туда
type Provider interface {
	Store(ctx context.Context, objectName, localPath, contentType string) error
	Fetch(ctx context.Context, objectName, localPath string) error
}

func NewHandler(s3Enabled bool) Provider {
	return &impl{
		s3Enabled: s3Enabled,
		s3:        s3.Instance,
	}
}

type impl struct {
	s3Enabled bool
	s3        s3.Provider
}

func (i impl) Store(ctx context.Context, objectName, localPath, contentType string) error {
	if !i.s3Enabled || i.s3 == nil {
		return nil
	}
	err := i.s3.UploadFile(ctx, objectName, localPath, contentType)
	if err != nil {
		return errors.Wrap(err, "ошибка выгрузки файла в хранилище")
	}
	log.
		WithField("object_name", objectName).
		Info("Файл выгружен в хранилище")
	return nil
}

func (i impl) Fetch(ctx context.Context, objectName, localPath string) error {
	if !i.s3Enabled || i.s3 == nil {
		return errors.New("внешнее хранилище отключено")
	}
	err := i.s3.DownloadFile(ctx, objectName, localPath)
	if err != nil {
		return errors.Wrap(err, "ошибка получения файла из хранилища")
	}
	return nil
}
