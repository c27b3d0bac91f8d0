package draft

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"slices"
	"time"

	"github.com/fardilk/fardil-cms-site/internal/cms/editor/edtypes"
	stackErr "github.com/fardilk/fardil-cms-site/internal/cms/stack-error"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var draftFilesStored = promauto.NewCounter(prometheus.CounterOpts{
	Name: "cms_draft_files_stored_total",
	Help: "Files moved from staging into the draft blob store",
})

// Meta - состояние редактора статьи, которое сохраняется в черновик.
type Meta struct {
	Title           string          `json:"title"`
	MetaDescription string          `json:"metaDescription"`
	Blocks          []edtypes.Block `json:"blocks"`
	FeaturedImage   string          `json:"featuredImage,omitempty"`
}

// Service сохраняет и загружает черновики статей.
type Service struct {
	repo    *Repository
	blobs   BlobStore
	staging *Staging

	// AssetURL строит адрес, по которому отдается файл черновика.
	AssetURL func(key string) string
	now      func() time.Time
}

func NewService(repo *Repository, blobs BlobStore, staging *Staging) *Service {
	return &Service{
		repo:     repo,
		blobs:    blobs,
		staging:  staging,
		AssetURL: DefaultAssetURL,
		now:      time.Now,
	}
}

func DefaultAssetURL(key string) string {
	return "/api/drafts/assets/" + url.PathEscape(key) + "/"
}

func (s *Service) Blobs() BlobStore {
	return s.blobs
}

func (s *Service) Staging() *Staging {
	return s.staging
}

// Save переносит blob:-изображения и обложку в хранилище файлов, заменяет их адреса
// ссылками draft:// и сохраняет черновик. Возвращает количество сохраненных файлов.
// Дескрипторы, которых уже нет в staging, остаются как есть.
func (s *Service) Save(ctx context.Context, id string, meta Meta) (int, error) {
	if !ValidID(id) {
		return 0, ErrInvalidID
	}
	stored := 0
	var staged []string
	blocks := make([]edtypes.Block, len(meta.Blocks))
	for bi, b := range meta.Blocks {
		blocks[bi] = b
		img, ok := b.Data.(edtypes.ImageData)
		if !ok {
			continue
		}
		img.Images = slices.Clone(img.Images)
		for i, im := range img.Images {
			ref, err := s.persist(ctx, im.Src, func() string { return ImageKey(id, i, s.now()) })
			if err != nil {
				return stored, stackErr.TrackErrorStack(err).AddContext("draft", id).AddContext("block", b.ID)
			}
			if ref != "" {
				staged = append(staged, im.Src)
				img.Images[i].Src = ref.String()
				stored++
			}
		}
		blocks[bi].Data = img
	}

	featured := meta.FeaturedImage
	ref, err := s.persist(ctx, featured, func() string { return FeaturedKey(id, s.now()) })
	if err != nil {
		return stored, stackErr.TrackErrorStack(err).AddContext("draft", id)
	}
	if ref != "" {
		staged = append(staged, featured)
		featured = ref.String()
		stored++
	}

	rec := &Record{
		Key:             RecordKey(id),
		ArticleID:       id,
		Title:           meta.Title,
		MetaDescription: meta.MetaDescription,
		FeaturedImage:   featured,
		Blocks:          blocks,
	}
	if err := s.repo.Save(ctx, rec); err != nil {
		return stored, stackErr.TrackErrorStack(err).AddContext("draft", id)
	}
	// файлы уже в хранилище, дескрипторы больше не нужны
	for _, h := range staged {
		s.staging.Release(h)
	}
	draftFilesStored.Add(float64(stored))
	return stored, nil
}

// persist сохраняет файл blob:-дескриптора src под новым ключом.
// Пустая ссылка означает, что src не дескриптор или файл уже недоступен.
func (s *Service) persist(ctx context.Context, src string, newKey func() string) (Ref, error) {
	if !IsBlobHandle(src) {
		return "", nil
	}
	blob, ok := s.staging.Fetch(src)
	if !ok {
		slog.Debug("Staged blob is gone", "handle", src)
		return "", nil
	}
	key := newKey()
	if err := s.blobs.Put(ctx, key, blob); err != nil {
		return "", err
	}
	return NewRef(key), nil
}

// Load возвращает черновик статьи с разрешенными ссылками draft:// или nil, если черновика нет.
// Ссылки на отсутствующие файлы остаются без изменений.
func (s *Service) Load(ctx context.Context, id string) (*Meta, error) {
	if !ValidID(id) {
		return nil, ErrInvalidID
	}
	rec, err := s.repo.Get(ctx, RecordKey(id))
	if err != nil {
		return nil, stackErr.TrackErrorStack(err).AddContext("draft", id)
	}
	if rec == nil {
		return nil, nil
	}

	blocks := make([]edtypes.Block, len(rec.Blocks))
	for bi, b := range rec.Blocks {
		blocks[bi] = b
		img, ok := b.Data.(edtypes.ImageData)
		if !ok {
			continue
		}
		img.Images = slices.Clone(img.Images)
		for i, im := range img.Images {
			img.Images[i].Src = s.resolve(ctx, im.Src)
		}
		blocks[bi].Data = img
	}

	return &Meta{
		Title:           rec.Title,
		MetaDescription: rec.MetaDescription,
		Blocks:          blocks,
		FeaturedImage:   s.resolve(ctx, rec.FeaturedImage),
	}, nil
}

func (s *Service) resolve(ctx context.Context, src string) string {
	ref, ok := ParseRef(src)
	if !ok {
		return src
	}
	exists, err := s.blobs.Exist(ctx, ref.Key())
	if err != nil {
		slog.Warn("Check draft blob", "key", ref.Key(), "err", err)
		return src
	}
	if !exists {
		return src
	}
	return s.AssetURL(ref.Key())
}

// Asset возвращает файл черновика по ключу.
func (s *Service) Asset(ctx context.Context, key string) (Blob, error) {
	return s.blobs.Get(ctx, key)
}

// Clear удаляет запись черновика. Файлы остаются до очистки устаревших черновиков.
func (s *Service) Clear(ctx context.Context, id string) error {
	if !ValidID(id) {
		return ErrInvalidID
	}
	return s.repo.Delete(ctx, RecordKey(id))
}

// Purge удаляет запись черновика и все его файлы.
func (s *Service) Purge(ctx context.Context, id string) error {
	if !ValidID(id) {
		return ErrInvalidID
	}
	if _, err := s.blobs.DeletePrefix(ctx, AssetPrefix(id)); err != nil {
		return err
	}
	return s.Clear(ctx, id)
}

// PurgeExpired удаляет черновики, которые не обновлялись дольше ttl.
func (s *Service) PurgeExpired(ctx context.Context, ttl time.Duration) (int, error) {
	ids, err := s.repo.Expired(ctx, s.now().Add(-ttl))
	if err != nil {
		return 0, err
	}
	var errs []error
	n := 0
	for _, id := range ids {
		if err := s.Purge(ctx, id); err != nil {
			errs = append(errs, err)
			continue
		}
		n++
	}
	return n, errors.Join(errs...)
}
