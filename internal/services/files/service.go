package files

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Errors
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileNotFound        = errors.New("file not found")
)

// Config holds configuration for the file service
type Config struct {
	// Dir is the directory uploaded files are stored in
	Dir string
	// AllowedExtensions is the lowercase extension allow-list (without dots)
	AllowedExtensions []string
}

// DefaultConfig returns default file service configuration
func DefaultConfig() Config {
	return Config{
		Dir:               "static/products",
		AllowedExtensions: []string{"jpg", "jpeg", "png", "gif"},
	}
}

// Service stores uploaded product images on disk under random names
type Service struct {
	cfg Config
}

// New creates a new FileService, creating the storage directory if needed
func New(cfg Config) (*Service, error) {
	if cfg.Dir == "" {
		cfg.Dir = DefaultConfig().Dir
	}
	if len(cfg.AllowedExtensions) == 0 {
		cfg.AllowedExtensions = DefaultConfig().AllowedExtensions
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, err
	}
	return &Service{cfg: cfg}, nil
}

// Save writes the upload to disk and returns the generated file name
func (s *Service) Save(originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(originalName), "."))
	if !s.allowed(ext) {
		return "", ErrUnsupportedFileType
	}

	name := uuid.NewString() + "." + ext
	f, err := os.Create(filepath.Join(s.cfg.Dir, name))
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return name, nil
}

// Open opens a stored file by name for reading
func (s *Service) Open(name string) (*os.File, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return f, nil
}

// path resolves a stored file name, rejecting anything that would
// escape the storage directory.
func (s *Service) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", ErrFileNotFound
	}
	return filepath.Join(s.cfg.Dir, name), nil
}

func (s *Service) allowed(ext string) bool {
	for _, a := range s.cfg.AllowedExtensions {
		if ext == a {
			return true
		}
	}
	return false
}
