package res1d

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const (
	// Res1dProfile is the credential prefix used to identify store
	// credentials in the environment. For example "RES1D" matches
	// "RES1D_AWS_ACCESS_KEY_ID".
	Res1dProfile = "RES1D"

	AwsAccessKeyId     = "AWS_ACCESS_KEY_ID"
	AwsSecretAccessKey = "AWS_SECRET_ACCESS_KEY"
	AwsDefaultRegion   = "AWS_DEFAULT_REGION"
	AwsS3Bucket        = "AWS_S3_BUCKET"

	FileRootPath = "RES1D_FILE_ROOT_PATH"
)

type StoreType string

const (
	FILE StoreType = "FILE"
	S3   StoreType = "S3"
)

// ResultStore moves whole result files between the merger and their
// backing storage. The file content is opaque to the store.
type ResultStore interface {
	Get(path string) (io.ReadCloser, error)
	Put(path string, data []byte) error
	HandlesStoreType(storeType StoreType) bool
}

// FileResultStore implements ResultStore on the local file system.
type FileResultStore struct {
	rootPath  string
	storeType StoreType
}

// NewFileResultStore creates a local file system store. Paths resolve
// relative to RES1D_FILE_ROOT_PATH when that is set.
func NewFileResultStore() *FileResultStore {
	rootPath := os.Getenv(FileRootPath)
	return &FileResultStore{rootPath, FILE}
}

// HandlesStoreType determines if a store type is handled by this store
func (fs *FileResultStore) HandlesStoreType(storeType StoreType) bool {
	return fs.storeType == storeType
}

func (fs *FileResultStore) resolve(path string) string {
	if fs.rootPath == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(fs.rootPath, path)
}

func (fs *FileResultStore) Get(path string) (io.ReadCloser, error) {
	reader, err := os.Open(fs.resolve(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return reader, nil
}

func (fs *FileResultStore) Put(path string, data []byte) error {
	destPath := fs.resolve(path)
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return os.WriteFile(destPath, data, 0644)
}
