package files

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// CheckFileType — true, если заявленный Content-Type начинается с prefix ("image/")
func CheckFileType(upload *multipart.FileHeader, prefix string) bool {
	return strings.HasPrefix(upload.Header.Get("Content-Type"), prefix)
}

// CheckFileSize — true, если файл больше maxKB килобайт. Такой файл отклоняем.
func CheckFileSize(upload *multipart.FileHeader, maxKB int64) bool {
	return upload.Size > maxKB*1024
}

// GetFilePath строит путь root/subfolder/filename
func GetFilePath(root, subfolder, filename string) string {
	return filepath.Join(root, subfolder, filename)
}

// Storage кладёт загруженные картинки в папку внутри web root
type Storage struct {
	root      string
	subfolder string
	newID     func() string
}

func NewStorage(root, subfolder string) *Storage {
	return &Storage{root: root, subfolder: subfolder, newID: uuid.NewString}
}

// Dir — папка, которую раздаём статикой
func (s *Storage) Dir() string {
	return filepath.Join(s.root, s.subfolder)
}

// Save пишет файл под именем "{uuid}_{оригинальное имя}" и возвращает это имя
func (s *Storage) Save(upload *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(s.Dir(), 0o755); err != nil {
		return "", errors.Wrap(err, "create image dir")
	}
	name := s.newID() + "_" + filepath.Base(upload.Filename)

	src, err := upload.Open()
	if err != nil {
		return "", errors.Wrapf(err, "open upload %q", upload.Filename)
	}
	defer src.Close()

	dst, err := os.Create(GetFilePath(s.root, s.subfolder, name))
	if err != nil {
		return "", errors.Wrapf(err, "create %q", name)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		_ = os.Remove(dst.Name())
		return "", errors.Wrapf(err, "write %q", name)
	}
	return name, errors.Wrapf(dst.Close(), "close %q", name)
}

// SaveAll сохраняет все файлы; при ошибке уже записанные удаляются
func (s *Storage) SaveAll(uploads []*multipart.FileHeader) ([]string, error) {
	names := make([]string, 0, len(uploads))
	for _, up := range uploads {
		name, err := s.Save(up)
		if err != nil {
			s.Remove(names...)
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

// Remove удаляет файлы; отсутствующие пропускаем, остальные ошибки только логируем
func (s *Storage) Remove(names ...string) {
	for _, name := range names {
		if name == "" {
			continue
		}
		err := os.Remove(GetFilePath(s.root, s.subfolder, filepath.Base(name)))
		if err != nil && !os.IsNotExist(err) {
			zap.L().Warn("failed to remove image", zap.String("file", name), zap.Error(err))
		}
	}
}
