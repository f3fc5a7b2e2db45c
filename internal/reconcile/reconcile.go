// Package reconcile computes which source documents need (re)indexing
// by diffing the vector index against the object store.
package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/hafizhArdhana/internalAssistant-AICompanyAssist/internal/blobstore"
)

// IndexScanner yields the set of source names already present in the
// index.
type IndexScanner interface {
	Sources(ctx context.Context) (map[string]struct{}, error)
}

// ObjectLister yields the objects stored under a prefix.
type ObjectLister interface {
	List(ctx context.Context, prefix string) ([]blobstore.ObjectInfo, error)
}

// Reconciler diffs the index against the object store.
type Reconciler struct {
	index IndexScanner
	store ObjectLister
	log   *slog.Logger
}

func New(index IndexScanner, store ObjectLister, log *slog.Logger) *Reconciler {
	return &Reconciler{index: index, store: store, log: log}
}

// WorkSet returns the source names requiring processing. When
// explicit is non-empty the caller already knows which sources
// changed (freshly uploaded files) and neither store is scanned.
//
// The diff is by name only: a source whose content changed in place
// while keeping its name is not detected and will not be re-indexed
// by this path.
func (r *Reconciler) WorkSet(ctx context.Context, prefix string, explicit []string) ([]string, error) {
	if len(explicit) > 0 {
		out := make([]string, len(explicit))
		copy(out, explicit)
		return out, nil
	}

	indexed, err := r.index.Sources(ctx)
	if err != nil {
		return nil, fmt.Errorf("list indexed sources: %w", err)
	}

	objects, err := r.store.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("list store objects: %w", err)
	}

	var work []string
	already := 0
	for _, obj := range objects {
		if _, ok := indexed[obj.Name]; ok {
			already++
			continue
		}
		work = append(work, obj.Name)
	}
	sort.Strings(work)

	r.log.Info("reconciled index against store",
		"prefix", prefix,
		"in_store", len(objects),
		"already_indexed", already,
		"new", len(work),
	)
	return work, nil
}
