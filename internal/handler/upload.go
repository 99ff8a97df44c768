package handlers

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gabriel-vasile/mimetype"

	"autoClassifieds/internal/models"
	"autoClassifieds/internal/service"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// openImage opens an uploaded part and sniffs its content type.
// The caller closes the returned file.
func openImage(header *multipart.FileHeader, maxSize int64) (service.ImageUpload, multipart.File, error) {
	if maxSize > 0 && header.Size > maxSize {
		return service.ImageUpload{}, nil, fmt.Errorf("file %s is larger than %d bytes: %w", header.Filename, maxSize, models.ErrInvalidInput)
	}

	file, err := header.Open()
	if err != nil {
		return service.ImageUpload{}, nil, fmt.Errorf("error opening %s: %w", header.Filename, models.ErrInvalidInput)
	}

	mt, err := mimetype.DetectReader(file)
	if err != nil {
		file.Close()
		return service.ImageUpload{}, nil, fmt.Errorf("error reading %s: %w", header.Filename, models.ErrInvalidInput)
	}

	if !allowedImageTypes[mt.String()] {
		file.Close()
		return service.ImageUpload{}, nil, fmt.Errorf("file %s has unsupported type %s: %w", header.Filename, mt.String(), models.ErrInvalidInput)
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		file.Close()
		return service.ImageUpload{}, nil, fmt.Errorf("error rewinding %s: %w", header.Filename, err)
	}

	return service.ImageUpload{
		FileName:    header.Filename,
		ContentType: mt.String(),
		Size:        header.Size,
		Reader:      file,
	}, file, nil
}
