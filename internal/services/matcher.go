package services

import (
	"context"
	"log"
	"math"
	"sort"
	"strings"

	"github.com/aida-nabila/code-map/internal/models"
)

type textGenerator interface {
	GenerateText(ctx context.Context, prompt string, temperature float32) (string, error)
}

type MatcherService interface {
	Match(ctx context.Context, userTestID int, userEmbedding []float32) ([]models.JobMatch, error)
}

type matcherService struct {
	index         *JobIndex
	generator     textGenerator
	promptBuilder *PromptBuilder
	topK          int
	temperature   float32
	rewrite       bool
}

func NewMatcherService(
	index *JobIndex,
	generator textGenerator,
	topK int,
	temperature float32,
	rewrite bool,
) MatcherService {
	return &matcherService{
		index:         index,
		generator:     generator,
		promptBuilder: NewPromptBuilder(),
		topK:          topK,
		temperature:   temperature,
		rewrite:       rewrite,
	}
}

// Match ranks every job in the index by cosine similarity to the user
// embedding and returns the top-K matches. Ordering is similarity
// descending with original index ascending on ties, so identical inputs
// always produce identical output.
func (m *matcherService) Match(ctx context.Context, userTestID int, userEmbedding []float32) ([]models.JobMatch, error) {
	if !m.index.Loaded() {
		return nil, ErrNotInitialized
	}
	if m.index.Len() == 0 {
		return nil, ErrNoJobs
	}

	records := m.index.Records()
	embeddings := m.index.Embeddings()

	similarities := make([]float64, len(embeddings))
	for i, emb := range embeddings {
		similarities[i] = CosineSimilarity(userEmbedding, emb)
	}

	order := make([]int, len(similarities))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return similarities[order[a]] > similarities[order[b]]
	})

	topK := m.topK
	if topK > len(order) {
		topK = len(order)
	}

	matches := make([]models.JobMatch, 0, topK)
	for _, idx := range order[:topK] {
		record := records[idx]
		similarity := similarities[idx]

		description := record.Description
		if m.rewrite {
			description = m.rewriteDescription(ctx, idx, description)
		}

		matches = append(matches, models.JobMatch{
			UserTestID:           userTestID,
			JobIndex:             idx,
			SimilarityScore:      similarity,
			SimilarityPercentage: math.Round(similarity*100*100) / 100,
			JobTitle:             record.Title,
			JobDescription:       description,
			RequiredSkills:       splitListColumn(record.Extra["Required Skills"]),
			RequiredKnowledge:    splitListColumn(record.Extra["Required Knowledge"]),
		})
	}

	return matches, nil
}

// rewriteDescription runs the cleanup pass for one match. A failure is
// isolated to that match: the raw description is returned instead.
func (m *matcherService) rewriteDescription(ctx context.Context, jobIndex int, description string) string {
	prompt := m.promptBuilder.BuildRewritePrompt(description)

	rewritten, err := m.generator.GenerateText(ctx, prompt, m.temperature)
	if err != nil {
		log.Printf("⚠️  Failed to rewrite description for job %d, using original: %v\n", jobIndex, err)
		return description
	}

	return strings.TrimSpace(rewritten)
}

// CosineSimilarity computes the cosine of the angle between two vectors
// in [-1,1]. Mismatched lengths or a zero-magnitude vector score 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func splitListColumn(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
