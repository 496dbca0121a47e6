package tracing

import (
	"context"
	"time"

	"github.com/ordishs/gocore"
)

type statsKey struct{}

var defaultStat = gocore.NewStat("headerchain", true)

// NewStatFromContext creates a child of the stat carried by ctx, or of defaultParent when ctx
// carries none, and returns a context carrying the new stat.
func NewStatFromContext(ctx context.Context, key string, defaultParent *gocore.Stat, ignoreChildren ...bool) (time.Time, *gocore.Stat, context.Context) {
	parentStat, ok := ctx.Value(statsKey{}).(*gocore.Stat)
	if !ok {
		parentStat = defaultParent
	}

	ignore := true
	if len(ignoreChildren) > 0 {
		ignore = ignoreChildren[0]
	}

	stat := parentStat.NewStat(key, ignore)

	return time.Now(), stat, context.WithValue(ctx, statsKey{}, stat)
}

func StartStatFromContext(ctx context.Context, key string, ignoreChildren ...bool) (time.Time, *gocore.Stat, context.Context) {
	return NewStatFromContext(ctx, key, defaultStat, ignoreChildren...)
}
