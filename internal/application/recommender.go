package application

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/drewhq/drew/internal/domain/entity"
	repo "github.com/drewhq/drew/internal/domain/repository"
	"github.com/drewhq/drew/internal/infrastructure/ai"
)

// Recommender runs the planning agent: it extracts search intent from the
// user's message, finds candidate activities by semantic search, asks the
// model to rank them, and saves the results on the project. Model failures
// degrade to a deterministic reply; the agent never surfaces them as errors.
type Recommender struct {
	Projects        repo.ProjectRepository
	Activities      repo.ActivityRepository
	Recommendations repo.RecommendationRepository
	AI              *ai.Client
	Logger          *logrus.Logger
}

func NewRecommender(projects repo.ProjectRepository, activities repo.ActivityRepository, recs repo.RecommendationRepository, aiClient *ai.Client, logger *logrus.Logger) *Recommender {
	return &Recommender{
		Projects:        projects,
		Activities:      activities,
		Recommendations: recs,
		AI:              aiClient,
		Logger:          logger,
	}
}

// AgentReply is what a chat turn returns to the client.
type AgentReply struct {
	Message                string                  `json:"message"`
	SuggestedQuestions     []string                `json:"suggestedQuestions"`
	Recommendations        []entity.Recommendation `json:"recommendations"`
	RefreshRecommendations bool                    `json:"refreshRecommendations"`
}

const candidateLimit = 12

const intentSystemPrompt = `You extract search filters from a user planning a group event.
Reply with strict JSON only, no markdown:
{"query": "free-text description of what to search for",
 "category": "" or one of the mentioned activity categories,
 "location": "" or the city/area mentioned,
 "maxBudget": 0 or the per-person budget mentioned,
 "participants": 0 or the group size mentioned}`

const rankSystemPromptFmt = `You are an event-planning assistant ranking activities for a user.
The numbered list below contains the candidate activities. Score how well each
fits the user's request.

%s

Reply in EXACTLY this format, one block per activity worth recommending (max 5),
blocks separated by a line containing only ---:

ACTIVITY: <number from the list>
SCORE: <0-100>
REASONING: <one sentence on why this fits>
CRITERIA: <comma-separated matched criteria>

After the blocks, add:

MESSAGE: <one or two sentences presenting the recommendations>
QUESTION: <a short follow-up question the user might ask>
QUESTION: <another one>`

type intentResult struct {
	Query        string  `json:"query"`
	Category     string  `json:"category"`
	Location     string  `json:"location"`
	MaxBudget    float64 `json:"maxBudget"`
	Participants int     `json:"participants"`
}

// Chat handles one agent turn for a project the user owns.
func (r *Recommender) Chat(ctx context.Context, userID, projectID, prompt string) (*AgentReply, error) {
	p, err := r.Projects.GetByID(ctx, projectID)
	if err != nil || p == nil || p.UserID != userID {
		return nil, ErrProjectNotFound
	}

	intent := r.extractIntent(ctx, prompt)
	filter := entity.ActivityFilter{
		Category:     intent.Category,
		Location:     intent.Location,
		MaxPrice:     intent.MaxBudget,
		Participants: intent.Participants,
		Limit:        candidateLimit,
	}

	candidates := r.findCandidates(ctx, intent.Query, prompt, filter)
	if len(candidates) == 0 {
		return &AgentReply{
			Message: "I couldn't find activities matching that yet. " +
				"Try broadening the location or budget, or tell me more about the occasion.",
			SuggestedQuestions: []string{
				"What activities work for a team of 10?",
				"Show me something outdoors",
			},
		}, nil
	}

	ranked, message, questions := r.rank(ctx, prompt, candidates)

	recs := make([]entity.Recommendation, 0, len(ranked))
	for _, rk := range ranked {
		a := candidates[rk.index]
		recs = append(recs, entity.Recommendation{
			ID:                uuid.NewString(),
			ProjectID:         p.ID,
			ActivityID:        a.ID,
			UserID:            userID,
			Title:             a.Title,
			ShortDescription:  a.ShortDescription,
			ThumbnailURL:      a.ThumbnailURL,
			ReasonToRecommend: rk.reasoning,
			MatchedCriteria:   rk.criteria,
			Score:             rk.score,
		})
	}
	r.replaceRecommendations(ctx, p.ID, recs)

	return &AgentReply{
		Message:                message,
		SuggestedQuestions:     questions,
		Recommendations:        recs,
		RefreshRecommendations: true,
	}, nil
}

func (r *Recommender) extractIntent(ctx context.Context, prompt string) intentResult {
	out := intentResult{Query: prompt}
	if !r.AI.Enabled() {
		return out
	}
	raw, err := r.AI.ChatCompletion(ctx, []ai.Message{
		{Role: "system", Content: intentSystemPrompt},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		r.warn(err, "intent extraction failed")
		return out
	}
	var parsed intentResult
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &parsed); err != nil {
		r.warn(err, "intent parse failed")
		return out
	}
	if strings.TrimSpace(parsed.Query) == "" {
		parsed.Query = prompt
	}
	return parsed
}

// findCandidates prefers vector search and falls back to the SQL listing
// with a text filter when embeddings are unavailable.
func (r *Recommender) findCandidates(ctx context.Context, query, prompt string, filter entity.ActivityFilter) []entity.Activity {
	if r.AI.Enabled() {
		if vec, err := r.AI.Embed(ctx, query); err == nil {
			items, sErr := r.Activities.SearchByEmbedding(ctx, vec, filter)
			if sErr == nil && len(items) > 0 {
				return items
			}
			if sErr != nil {
				r.warn(sErr, "vector search failed")
			}
		} else {
			r.warn(err, "embed query failed")
		}
	}
	filter.Search = prompt
	items, _, err := r.Activities.List(ctx, filter)
	if err != nil {
		r.warn(err, "candidate listing failed")
		return nil
	}
	return items
}

type rankedActivity struct {
	index     int
	score     float64
	reasoning string
	criteria  []string
}

func (r *Recommender) rank(ctx context.Context, prompt string, candidates []entity.Activity) ([]rankedActivity, string, []string) {
	if r.AI.Enabled() {
		var list strings.Builder
		for i, a := range candidates {
			fmt.Fprintf(&list, "%d. %s - %s (category: %s, price: %.0f, group: %d-%d)\n",
				i+1, a.Title, a.ShortDescription, a.Category, a.Price, a.MinParticipants, a.MaxParticipants)
		}
		raw, err := r.AI.ChatCompletion(ctx, []ai.Message{
			{Role: "system", Content: fmt.Sprintf(rankSystemPromptFmt, list.String())},
			{Role: "user", Content: prompt},
		})
		if err == nil {
			if ranked, message, questions := parseRankResponse(raw, len(candidates)); len(ranked) > 0 {
				return ranked, message, questions
			}
			r.warn(nil, "rank response unparseable")
		} else {
			r.warn(err, "rank call failed")
		}
	}
	return fallbackRanking(candidates)
}

// fallbackRanking keeps the agent useful without a model: candidates stay in
// search order with descending scores.
func fallbackRanking(candidates []entity.Activity) ([]rankedActivity, string, []string) {
	n := len(candidates)
	if n > 5 {
		n = 5
	}
	ranked := make([]rankedActivity, 0, n)
	for i := 0; i < n; i++ {
		ranked = append(ranked, rankedActivity{
			index:     i,
			score:     float64(90 - i*7),
			reasoning: "Closely matches what you described.",
		})
	}
	return ranked,
		"Here are some activities that match what you're looking for.",
		[]string{
			"Can you show me cheaper options?",
			"What's available for a bigger group?",
		}
}

// parseRankResponse reads the block format produced by the ranking prompt.
// Unknown lines are skipped; blocks referencing out-of-range activities are
// dropped.
func parseRankResponse(raw string, numCandidates int) ([]rankedActivity, string, []string) {
	var (
		ranked    []rankedActivity
		message   string
		questions []string
		cur       *rankedActivity
	)
	flush := func() {
		if cur != nil && cur.index >= 0 && cur.index < numCandidates {
			ranked = append(ranked, *cur)
		}
		cur = nil
	}
	for _, line := range strings.Split(stripCodeFence(raw), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "---" || line == "===":
			flush()
		case hasPrefixFold(line, "ACTIVITY:"):
			flush()
			n, err := strconv.Atoi(strings.TrimSpace(valueAfterColon(line)))
			if err != nil {
				continue
			}
			cur = &rankedActivity{index: n - 1, score: 50}
		case hasPrefixFold(line, "SCORE:"):
			if cur == nil {
				continue
			}
			if v, err := strconv.ParseFloat(strings.TrimSpace(valueAfterColon(line)), 64); err == nil {
				if v < 0 {
					v = 0
				}
				if v > 100 {
					v = 100
				}
				cur.score = v
			}
		case hasPrefixFold(line, "REASONING:"):
			if cur != nil {
				cur.reasoning = strings.TrimSpace(valueAfterColon(line))
			}
		case hasPrefixFold(line, "CRITERIA:"):
			if cur != nil {
				cur.criteria = splitCriteria(valueAfterColon(line))
			}
		case hasPrefixFold(line, "MESSAGE:"):
			flush()
			message = strings.TrimSpace(valueAfterColon(line))
		case hasPrefixFold(line, "QUESTION:"):
			flush()
			if q := strings.TrimSpace(valueAfterColon(line)); q != "" {
				questions = append(questions, q)
			}
		}
	}
	flush()
	if message == "" && len(ranked) > 0 {
		message = "Here are some activities that match what you're looking for."
	}
	return ranked, message, questions
}

func valueAfterColon(line string) string {
	if i := strings.Index(line, ":"); i >= 0 {
		return line[i+1:]
	}
	return ""
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func splitCriteria(s string) []string {
	var out []string
	for _, c := range strings.Split(s, ",") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if i := strings.Index(s, "\n"); i >= 0 {
			s = s[i+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

// replaceRecommendations swaps a project's saved recommendations for the
// latest ranking. Best effort; the reply already carries the new list.
func (r *Recommender) replaceRecommendations(ctx context.Context, projectID string, recs []entity.Recommendation) {
	old, err := r.Recommendations.ListByProject(ctx, projectID)
	if err == nil {
		for _, rec := range old {
			if dErr := r.Recommendations.Delete(ctx, rec.ID); dErr != nil {
				r.warn(dErr, "delete stale recommendation failed")
			}
		}
	}
	for i := range recs {
		if cErr := r.Recommendations.Create(ctx, &recs[i]); cErr != nil {
			r.warn(cErr, "save recommendation failed")
		}
	}
}

func (r *Recommender) warn(err error, msg string) {
	if r.Logger == nil {
		return
	}
	if err != nil {
		r.Logger.WithError(err).Warn(msg)
	} else {
		r.Logger.Warn(msg)
	}
}
