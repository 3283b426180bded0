package res1d

import (
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/aws-sdk-go-v2/config"
	filestore "github.com/usace/filesapi"
)

// S3ResultStore implements ResultStore for AWS S3, so merge inputs and the
// merged destination can live in a bucket.
type S3ResultStore struct {
	fs        filestore.FileStore
	storeType StoreType
}

// NewS3ResultStore produces a ResultStore backed by an S3 bucket based on
// profile-prefixed environment variables.
func NewS3ResultStore(profile string) (*S3ResultStore, error) {
	if profile == "" {
		profile = Res1dProfile
	}
	config := filestore.S3FSConfig{
		Credentials: filestore.S3FS_Static{
			S3Id:  os.Getenv(fmt.Sprintf("%s_%s", profile, AwsAccessKeyId)),
			S3Key: os.Getenv(fmt.Sprintf("%s_%s", profile, AwsSecretAccessKey)),
		},
		S3Region: os.Getenv(fmt.Sprintf("%s_%s", profile, AwsDefaultRegion)),
		S3Bucket: os.Getenv(fmt.Sprintf("%s_%s", profile, AwsS3Bucket)),
		AwsOptions: []func(*config.LoadOptions) error{
			config.WithRetryer(func() aws.Retryer {
				return retry.AddWithMaxAttempts(retry.NewStandard(), 5)
			}),
		},
	}
	fs, err := filestore.NewFileStore(config)
	if err != nil {
		return nil, err
	}
	return &S3ResultStore{fs, S3}, nil
}

// HandlesStoreType determines if a store type is handled by this store
func (ws *S3ResultStore) HandlesStoreType(storeType StoreType) bool {
	return ws.storeType == storeType
}

func (ws *S3ResultStore) Get(path string) (io.ReadCloser, error) {
	fsgoi := filestore.GetObjectInput{
		Path: filestore.PathConfig{Path: path},
	}
	return ws.fs.GetObject(fsgoi)
}

func (ws *S3ResultStore) Put(path string, data []byte) error {
	fspoi := filestore.PutObjectInput{
		Dest: filestore.PathConfig{Path: path},
		Source: filestore.ObjectSource{
			Data: data,
		},
	}
	_, err := ws.fs.PutObject(fspoi)
	return err
}
