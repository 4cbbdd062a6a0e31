// Package tier classifies a document's token count into one of four
// processing strategies and exposes the fixed label/color/description
// enumeration returned as metadata with every upload response.
package tier

// Tier is the processing strategy selected for a document, 1 through 4.
type Tier int

const (
	Tier1 Tier = 1
	Tier2 Tier = 2
	Tier3 Tier = 3
	Tier4 Tier = 4
)

// Thresholds holds the configured token boundaries {tau1, tau2, tau3}.
type Thresholds struct {
	Tau1 int
	Tau2 int
	Tau3 int
}

// DefaultThresholds mirrors the defaults in the configuration table.
func DefaultThresholds() Thresholds {
	return Thresholds{Tau1: 12_000, Tau2: 25_000, Tau3: 50_000}
}

// Classify maps a token count to a tier using the configured thresholds.
// Tier = 1 if tokens <= tau1, 2 if <= tau2, 3 if <= tau3, 4 otherwise.
func Classify(tokens int, t Thresholds) Tier {
	switch {
	case tokens <= t.Tau1:
		return Tier1
	case tokens <= t.Tau2:
		return Tier2
	case tokens <= t.Tau3:
		return Tier3
	default:
		return Tier4
	}
}

// Label, Color and Description form the fixed human-readable enumeration
// associated with each tier.
var (
	labels = map[Tier]string{
		Tier1: "Direct Injection",
		Tier2: "Smart Trimming",
		Tier3: "Strategic Chunking",
		Tier4: "RAG Retrieval",
	}
	colors = map[Tier]string{
		Tier1: "#22c55e",
		Tier2: "#3b82f6",
		Tier3: "#f59e0b",
		Tier4: "#ef4444",
	}
	descriptions = map[Tier]string{
		Tier1: "Document is small enough to inject directly into the context window.",
		Tier2: "Document requires boilerplate removal before it fits the context window.",
		Tier3: "Document is chunked and ranked; only the most relevant chunks are used.",
		Tier4: "Document is large enough to require embedding-based retrieval.",
	}
)

func (t Tier) Label() string       { return labels[t] }
func (t Tier) Color() string       { return colors[t] }
func (t Tier) Description() string { return descriptions[t] }

// Result bundles a tier with its fixed metadata, the exact shape returned
// alongside every upload response.
type Result struct {
	Tier        Tier   `json:"tier"`
	Label       string `json:"label"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// Describe builds the Result metadata bundle for a tier.
func Describe(t Tier) Result {
	return Result{Tier: t, Label: t.Label(), Color: t.Color(), Description: t.Description()}
}
