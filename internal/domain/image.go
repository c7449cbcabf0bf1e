package domain

import "github.com/ColdBlood237/odin-inventory/pkg/e"

// Image — дескриптор изображения, сохранённого в объектном хранилище.
// Сами байты хранятся в MinIO и читаются по Key.
type Image struct {
	Key         string
	ContentType string
	Size        int64
}

func NewImage(key string, contentType string, size int64) *Image {
	return &Image{
		Key:         key,
		ContentType: contentType,
		Size:        size,
	}
}

// ImageExtension возвращает расширение файла по MIME-типу изображения.
// Поддерживает jpeg, jpg, png, webp. Для остальных — e.ErrUnsupportedMediaType.
func ImageExtension(mime string) (string, error) {
	switch mime {
	case "image/jpeg", "image/jpg":
		return "jpg", nil
	case "image/png":
		return "png", nil
	case "image/webp":
		return "webp", nil
	default:
		return "", e.ErrUnsupportedMediaType
	}
}
