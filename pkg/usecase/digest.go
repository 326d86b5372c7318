package usecase

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/md5calc/pkg/domain/model"
	"github.com/m-mizutani/md5calc/pkg/utils/async"
)

type digestUseCase struct {
	maxParallel int
}

// DigestOption is a functional option for digest use case
type DigestOption func(*digestUseCase)

// WithMaxParallel bounds the number of files read at once. Zero means unbounded.
func WithMaxParallel(n int) DigestOption {
	return func(uc *digestUseCase) {
		uc.maxParallel = n
	}
}

// NewDigest creates a new instance of DigestUseCase
func NewDigest(opts ...DigestOption) *digestUseCase {
	uc := &digestUseCase{}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// CalculateMD5 reads all files concurrently and calculates MD5 digest of each.
// If any file fails, no digest is returned.
func (uc *digestUseCase) CalculateMD5(ctx context.Context, files []model.SourceFile) (*model.DigestBatch, error) {
	batch := &model.DigestBatch{
		ID: model.NewBatchID(),
	}
	logger := ctxlog.From(ctx).With("batch_id", batch.ID)

	logger.Debug("Start calculating MD5",
		"file_count", len(files),
		"max_parallel", uc.maxParallel,
	)

	digests, err := async.Gather(ctx, len(files), uc.maxParallel, func(ctx context.Context, i int) (model.FileDigest, error) {
		return digestFile(ctx, files[i])
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to calculate MD5",
			goerr.V("batch_id", batch.ID),
			goerr.V("file_count", len(files)),
		)
	}

	batch.Files = digests
	logger.Info("Calculated MD5", "file_count", len(batch.Files))

	return batch, nil
}

func digestFile(ctx context.Context, file model.SourceFile) (model.FileDigest, error) {
	if err := ctx.Err(); err != nil {
		return model.FileDigest{}, goerr.Wrap(err, "digest cancelled", goerr.V("name", file.Name()))
	}

	data, err := readAll(file)
	if err != nil {
		return model.FileDigest{}, err
	}

	return model.FileDigest{
		Name: file.Name(),
		MD5:  md5Hex(data),
	}, nil
}

func readAll(file model.SourceFile) (data []byte, retErr error) {
	r, err := file.Open()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open file", goerr.V("name", file.Name()))
	}
	defer func() {
		if err := r.Close(); err != nil && retErr == nil {
			retErr = goerr.Wrap(err, "failed to close file", goerr.V("name", file.Name()))
		}
	}()

	data, err = io.ReadAll(r)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read file", goerr.V("name", file.Name()))
	}
	return data, nil
}

func md5Hex(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}
