package draft

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var ErrBlobNotFound = errors.New("draft blob not found")

// BlobStore хранит файлы черновиков по строковому ключу.
type BlobStore interface {
	Put(ctx context.Context, key string, b Blob) error
	Get(ctx context.Context, key string) (Blob, error)
	Exist(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, key string) error
	// DeletePrefix удаляет все файлы, ключ которых начинается с prefix, и возвращает их количество.
	DeletePrefix(ctx context.Context, prefix string) (int, error)
}

type MemoryBlobStore struct {
	mu    sync.RWMutex
	blobs map[string]Blob
}

func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{blobs: make(map[string]Blob)}
}

func (s *MemoryBlobStore) Put(_ context.Context, key string, b Blob) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b.Data = bytes.Clone(b.Data)
	s.blobs[key] = b
	return nil
}

func (s *MemoryBlobStore) Get(_ context.Context, key string) (Blob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.blobs[key]
	if !ok {
		return Blob{}, ErrBlobNotFound
	}
	return b, nil
}

func (s *MemoryBlobStore) Exist(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.blobs[key]
	return ok, nil
}

func (s *MemoryBlobStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}

func (s *MemoryBlobStore) DeletePrefix(_ context.Context, prefix string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k := range s.blobs {
		if strings.HasPrefix(k, prefix) {
			delete(s.blobs, k)
			n++
		}
	}
	return n, nil
}

const (
	UploadTries = 5
	uploadDelay = time.Second * 2
)

// MinioBlobStore хранит файлы черновиков в бакете S3-совместимого хранилища.
type MinioBlobStore struct {
	client     *minio.Client
	bucketName string
}

// NewMinioBlobStore подключается к хранилищу и создает бакет, если его нет.
func NewMinioBlobStore(ctx context.Context, endpoint, accessKeyID, secretAccessKey string, useSSL bool, bucketName string) (*MinioBlobStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}

	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}
	return &MinioBlobStore{client: client, bucketName: bucketName}, nil
}

func (s *MinioBlobStore) Put(ctx context.Context, key string, b Blob) error {
	putOptions := minio.PutObjectOptions{ContentType: b.ContentType}

	var err error
	for i := range UploadTries {
		_, err = s.client.PutObject(ctx,
			s.bucketName,
			key,
			bytes.NewReader(b.Data),
			int64(len(b.Data)),
			putOptions,
		)
		if err == nil {
			return nil
		}
		resp := minio.ToErrorResponse(err)
		slog.Error("Upload draft blob to minio", "key", key, "try", i+1, "code", resp.StatusCode, "msg", resp.Message)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(uploadDelay):
		}
	}
	return err
}

func (s *MinioBlobStore) Get(ctx context.Context, key string) (Blob, error) {
	obj, err := s.client.GetObject(ctx, s.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return Blob{}, err
	}
	defer obj.Close()

	stat, err := obj.Stat()
	if err != nil {
		if isNoSuchKey(err) {
			return Blob{}, ErrBlobNotFound
		}
		return Blob{}, err
	}
	data, err := io.ReadAll(obj)
	if err != nil {
		return Blob{}, err
	}
	return Blob{Data: data, ContentType: stat.ContentType}, nil
}

func (s *MinioBlobStore) Exist(ctx context.Context, key string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucketName, key, minio.StatObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *MinioBlobStore) Delete(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.bucketName, key, minio.RemoveObjectOptions{})
}

func (s *MinioBlobStore) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	n := 0
	for obj := range s.client.ListObjects(ctx, s.bucketName, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return n, obj.Err
		}
		if err := s.Delete(ctx, obj.Key); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}
