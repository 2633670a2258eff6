// Package storage хранит загруженные файлы в каталоге media.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidPath путь выходит за пределы каталога хранилища
var ErrInvalidPath = errors.New("invalid file path")

// FileStorage определяет контракт хранилища файлов
type FileStorage interface {
	Save(file io.Reader, originalFileName string, prefix string) (filePath string, err error)
	Delete(filePath string) error
}

// LocalStorage хранит файлы на локальном диске
type LocalStorage struct {
	basePath string
}

// NewLocalStorage создаёт каталог хранилища при необходимости
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	return &LocalStorage{basePath: basePath}, nil
}

// Save сохраняет файл под уникальным именем и возвращает путь относительно корня хранилища
func (s *LocalStorage) Save(file io.Reader, originalFileName string, prefix string) (string, error) {
	ext := filepath.Ext(originalFileName)
	uniqueFileName := fmt.Sprintf("%s-%s%s", time.Now().Format("2006-01-02"), uuid.New().String(), ext)

	dir := filepath.Join(s.basePath, prefix)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(dir, uniqueFileName))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		return "", err
	}

	return filepath.ToSlash(filepath.Join(prefix, uniqueFileName)), nil
}

// Delete удаляет файл. Отсутствующий файл не считается ошибкой.
func (s *LocalStorage) Delete(filePath string) error {
	rel := filepath.FromSlash(filePath)
	if !filepath.IsLocal(rel) {
		return ErrInvalidPath
	}
	err := os.Remove(filepath.Join(s.basePath, rel))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
