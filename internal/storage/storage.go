package storage

import (
	"context"
	"fmt"
	"io"
)

// Типы бэкендов хранилища
const (
	TypeLocal        = "local"
	TypeCloudflareR2 = "cloudflare_r2"
)

// Storage - хранилище файлов анкет (хедшоты). Пути относительные,
// публичный URL собирает сам бэкенд.
type Storage interface {
	Save(ctx context.Context, path string, reader io.Reader, contentType string) error
	Delete(ctx context.Context, path string) error
	GetURL(path string) string
}

// Config - настройки хранилища из config.yaml
type Config struct {
	Type      string // local | cloudflare_r2
	BasePath  string // каталог для local
	BaseURL   string // база публичных URL
	Bucket    string
	Endpoint  string // https://<account_id>.r2.cloudflarestorage.com
	AccessKey string
	SecretKey string
}

// New выбирает бэкенд по конфигу. Пустой тип - локальное хранилище.
func New(cfg Config) (Storage, error) {
	switch cfg.Type {
	case TypeCloudflareR2:
		return NewCloudflareR2Storage(cfg)
	case TypeLocal, "":
		return NewLocalStorage(cfg)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
