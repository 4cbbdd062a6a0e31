package dto

import (
	"github.com/google/uuid"

	"sdch/pkg/tier"
)

type QueryDocumentRequest struct {
	DocId uuid.UUID `json:"doc_id" validate:"required"`
	Query string    `json:"query" validate:"required"`
	TopK  int       `json:"top_k"`
}

type ChunkUsedResponse struct {
	Index  int     `json:"index"`
	Tokens int     `json:"tokens"`
	Score  float64 `json:"score"`
}

type QueryDocumentResponse struct {
	DocId            uuid.UUID              `json:"doc_id"`
	Query            string                 `json:"query"`
	Tier             tier.Tier              `json:"tier"`
	AssembledContext string                 `json:"assembled_context"`
	TokenCount       int                    `json:"token_count"`
	ChunksUsed       []ChunkUsedResponse    `json:"chunks_used"`
	StrategyNotes    string                 `json:"strategy_notes"`
	Budget           map[string]interface{} `json:"budget"`
}
