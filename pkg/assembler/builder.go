package assembler

import (
	"context"

	"golang.org/x/sync/singleflight"

	"sdch/pkg/chunker"
	"sdch/pkg/embedding"
	"sdch/pkg/indexcache"
	"sdch/pkg/sdcherr"
	"sdch/pkg/tier"
)

// Builder produces and caches the chunk/embedding artifact backing tier
// 3 and tier 4 assembly, coalescing concurrent builds for the same
// document behind a single-flight group keyed by document id.
type Builder struct {
	Cache   *indexcache.Cache
	Gateway *embedding.Gateway
	group   singleflight.Group
}

// NewBuilder wires a Builder over the given index cache and embedding
// gateway. Gateway may be nil for deployments that never reach tier 4.
func NewBuilder(cache *indexcache.Cache, gateway *embedding.Gateway) *Builder {
	return &Builder{Cache: cache, Gateway: gateway}
}

// Build returns the cached artifact for a document, building it (chunk,
// and for tier 4, embed) on a cache miss. Concurrent callers for the same
// document id rendezvous on a single in-flight build rather than racing.
func (b *Builder) Build(ctx context.Context, doc Document) (indexcache.Artifact, error) {
	if artifact, found := b.Cache.Get(ctx, doc.ID); found {
		return artifact, nil
	}

	v, err, _ := b.group.Do(doc.ID, func() (interface{}, error) {
		return b.buildAndCache(ctx, doc)
	})
	if err != nil {
		return indexcache.Artifact{}, err
	}
	return v.(indexcache.Artifact), nil
}

func (b *Builder) buildAndCache(ctx context.Context, doc Document) (indexcache.Artifact, error) {
	if artifact, found := b.Cache.Get(ctx, doc.ID); found {
		return artifact, nil
	}

	chunks, err := chunker.Split(doc.CanonicalText, chunker.DefaultConfig())
	if err != nil {
		return indexcache.Artifact{}, sdcherr.New(sdcherr.TokenizerError, "failed to chunk document", err)
	}

	artifact := indexcache.Artifact{Chunks: chunks}

	if doc.Tier == tier.Tier4 && b.Gateway != nil {
		texts := make([]string, len(chunks))
		for i, c := range chunks {
			texts[i] = c.Text
		}

		outcome, err := b.Gateway.Embed(ctx, texts)
		if err == nil {
			artifact.Embedder = outcome.Embedder
			artifact.Dimension = outcome.Dimension
			artifact.Embeddings = outcome.Vectors
		}
		// embedding failure is swallowed here: tier 4 assembly falls back
		// to BM25-only when the artifact carries no embedder identity.
	}

	if ctx.Err() != nil {
		return indexcache.Artifact{}, sdcherr.New(sdcherr.Cancelled, "build cancelled", ctx.Err())
	}

	b.Cache.Put(ctx, doc.ID, artifact)
	return artifact, nil
}
