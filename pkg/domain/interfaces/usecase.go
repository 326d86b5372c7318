package interfaces

import (
	"context"

	"github.com/m-mizutani/md5calc/pkg/domain/model"
)

// DigestUseCase defines the interface for batch digest calculation
type DigestUseCase interface {
	// CalculateMD5 reads every file and calculates its MD5 digest. It fails
	// as a whole if any file can not be read.
	CalculateMD5(ctx context.Context, files []model.SourceFile) (*model.DigestBatch, error)
}
