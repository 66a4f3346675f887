package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/diillson/cnc-quote-go/internal/domain/repository"
	"github.com/diillson/cnc-quote-go/internal/shared/types"
	"go.uber.org/zap"
)

// ObjectAPI is the subset of the S3 client used by the repository.
type ObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3RepositoryImpl implementa o StorageRepository com cache de clientes por perfil.
type S3RepositoryImpl struct {
	clientCache map[string]ObjectAPI
	newClient   func(ctx context.Context, profile string) (ObjectAPI, error)
	mu          sync.Mutex
}

// NewS3Repository cria uma nova implementação do StorageRepository.
func NewS3Repository() repository.StorageRepository {
	return &S3RepositoryImpl{
		clientCache: make(map[string]ObjectAPI),
		newClient:   loadS3Client,
	}
}

func loadS3Client(ctx context.Context, profile string) (ObjectAPI, error) {
	var opts []func(*config.LoadOptions) error
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config for profile %s: %w", profile, err)
	}
	return s3.NewFromConfig(cfg), nil
}

func (r *S3RepositoryImpl) getClient(ctx context.Context, profile string) (ObjectAPI, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if client, ok := r.clientCache[profile]; ok {
		return client, nil
	}

	client, err := r.newClient(ctx, profile)
	if err != nil {
		return nil, err
	}

	r.clientCache[profile] = client
	return client, nil
}

// Open baixa um desenho de s3://bucket/key.
func (r *S3RepositoryImpl) Open(ctx context.Context, profile, uri string) (io.ReadCloser, error) {
	bucket, key, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}
	if key == "" || strings.HasSuffix(key, "/") {
		return nil, fmt.Errorf("%w: %s has no object key", types.ErrInvalidStorageURI, uri)
	}

	client, err := r.getClient(ctx, profile)
	if err != nil {
		return nil, err
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("error downloading %s: %w", uri, err)
	}

	zap.L().Named("s3").Debug("opened drawing", zap.String("bucket", bucket), zap.String("key", key))
	return out.Body, nil
}

// Upload envia um relatório local para s3://bucket/prefix. Quando o URI termina em "/"
// (ou não tem chave), o nome do arquivo local é anexado ao prefixo.
func (r *S3RepositoryImpl) Upload(ctx context.Context, profile, localPath, uri string) (string, error) {
	bucket, key, err := ParseURI(uri)
	if err != nil {
		return "", err
	}
	if key == "" || strings.HasSuffix(key, "/") {
		key = path.Join(key, filepath.Base(localPath))
	}

	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("error opening report for upload: %w", err)
	}
	defer file.Close()

	client, err := r.getClient(ctx, profile)
	if err != nil {
		return "", err
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   file,
	}
	if ct := mime.TypeByExtension(filepath.Ext(localPath)); ct != "" {
		input.ContentType = aws.String(ct)
	}

	if _, err := client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("error uploading %s to s3://%s/%s: %w", localPath, bucket, key, err)
	}

	dest := fmt.Sprintf("s3://%s/%s", bucket, key)
	zap.L().Named("s3").Debug("uploaded report", zap.String("source", localPath), zap.String("destination", dest))
	return dest, nil
}

// ParseURI splits s3://bucket/key into bucket and key.
func ParseURI(uri string) (bucket, key string, err error) {
	if !types.IsS3URI(uri) {
		return "", "", fmt.Errorf("%w: %s", types.ErrInvalidStorageURI, uri)
	}

	u, err := url.Parse(uri)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", types.ErrInvalidStorageURI, err)
	}
	if u.Host == "" {
		return "", "", fmt.Errorf("%w: %s has no bucket", types.ErrInvalidStorageURI, uri)
	}

	return u.Host, strings.TrimPrefix(u.Path, "/"), nil
}
