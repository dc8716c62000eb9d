package usecases

import (
	"context"

	"github.com/lintang-b-s/arterial/pkg/engine"
)

// GraphEngine. current snapshot and everything built on it. implemented by engine.Engine.
// each request reads one engine.State so it never mixes two snapshot generations.
type GraphEngine interface {
	GetState() engine.State
	Refresh(ctx context.Context) error
}
