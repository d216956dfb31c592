package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drewhq/drew/internal/domain/entity"
)

func TestParseRankResponse(t *testing.T) {
	raw := `ACTIVITY: 2
SCORE: 95
REASONING: Great for large groups.
CRITERIA: group size, outdoors
---
ACTIVITY: 1
SCORE: 140
REASONING: Over budget but close.
---
ACTIVITY: 9
SCORE: 80
REASONING: Does not exist.
---
MESSAGE: Two strong matches for your offsite.
QUESTION: What's your budget per person?
QUESTION: Any date in mind?`

	ranked, message, questions := parseRankResponse(raw, 3)
	require.Len(t, ranked, 2, "the out-of-range block is dropped")

	assert.Equal(t, 1, ranked[0].index)
	assert.Equal(t, 95.0, ranked[0].score)
	assert.Equal(t, "Great for large groups.", ranked[0].reasoning)
	assert.Equal(t, []string{"group size", "outdoors"}, ranked[0].criteria)

	assert.Equal(t, 0, ranked[1].index)
	assert.Equal(t, 100.0, ranked[1].score, "scores clamp to 100")

	assert.Equal(t, "Two strong matches for your offsite.", message)
	assert.Equal(t, []string{"What's your budget per person?", "Any date in mind?"}, questions)
}

func TestParseRankResponseDefaultsAndFencing(t *testing.T) {
	raw := "```\nACTIVITY: 1\nREASONING: fine\n```"
	ranked, message, _ := parseRankResponse(raw, 1)
	require.Len(t, ranked, 1)
	assert.Equal(t, 50.0, ranked[0].score, "missing score defaults to 50")
	assert.NotEmpty(t, message, "a fallback message fills in when the model omits one")
}

func TestParseRankResponseNegativeScoreClampsToZero(t *testing.T) {
	ranked, _, _ := parseRankResponse("ACTIVITY: 1\nSCORE: -3", 1)
	require.Len(t, ranked, 1)
	assert.Equal(t, 0.0, ranked[0].score)
}

func TestParseRankResponseEmpty(t *testing.T) {
	ranked, message, questions := parseRankResponse("I cannot help with that.", 3)
	assert.Empty(t, ranked)
	assert.Empty(t, message)
	assert.Empty(t, questions)
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence(`{"a":1}`))
}

func TestFallbackRankingCapsAtFive(t *testing.T) {
	candidates := make([]entity.Activity, 8)
	ranked, message, questions := fallbackRanking(candidates)
	require.Len(t, ranked, 5)
	assert.Equal(t, 90.0, ranked[0].score)
	assert.Equal(t, 83.0, ranked[1].score)
	assert.NotEmpty(t, message)
	assert.NotEmpty(t, questions)
}

func newTestRecommender(projects *fakeProjectRepo, activities *fakeActivityRepo) (*Recommender, *fakeRecommendationRepo) {
	recs := newFakeRecommendationRepo()
	return &Recommender{
		Projects:        projects,
		Activities:      activities,
		Recommendations: recs,
	}, recs
}

func TestChatRejectsForeignProject(t *testing.T) {
	projects := newFakeProjectRepo(&entity.Project{ID: "p1", UserID: "owner"})
	r, _ := newTestRecommender(projects, &fakeActivityRepo{})

	_, err := r.Chat(context.Background(), "intruder", "p1", "anything")
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestChatWithoutCandidates(t *testing.T) {
	projects := newFakeProjectRepo(&entity.Project{ID: "p1", UserID: "u1"})
	r, recs := newTestRecommender(projects, &fakeActivityRepo{})

	reply, err := r.Chat(context.Background(), "u1", "p1", "underwater basket weaving")
	require.NoError(t, err)
	assert.False(t, reply.RefreshRecommendations)
	assert.Empty(t, reply.Recommendations)
	assert.NotEmpty(t, reply.Message)
	assert.NotEmpty(t, reply.SuggestedQuestions)
	assert.Empty(t, recs.recs)
}

func TestChatWithoutModelFallsBackAndPersists(t *testing.T) {
	projects := newFakeProjectRepo(&entity.Project{ID: "p1", UserID: "u1"})
	activities := &fakeActivityRepo{activities: []entity.Activity{
		{ID: "a1", Title: "Escape Room", ShortDescription: "Puzzle your way out", ThumbnailURL: "https://img/a1"},
		{ID: "a2", Title: "Kayak Tour", ShortDescription: "Paddle the river"},
	}}
	r, recs := newTestRecommender(projects, activities)

	reply, err := r.Chat(context.Background(), "u1", "p1", "team outing in austin")
	require.NoError(t, err)
	assert.True(t, reply.RefreshRecommendations)
	require.Len(t, reply.Recommendations, 2)

	first := reply.Recommendations[0]
	assert.Equal(t, "p1", first.ProjectID)
	assert.Equal(t, "u1", first.UserID)
	assert.Equal(t, "a1", first.ActivityID)
	assert.Equal(t, "Escape Room", first.Title)
	assert.Equal(t, "Puzzle your way out", first.ShortDescription)
	assert.Equal(t, "https://img/a1", first.ThumbnailURL)
	assert.Equal(t, 90.0, first.Score)
	assert.NotEmpty(t, first.ReasonToRecommend)

	assert.Len(t, recs.recs, 2, "recommendations are persisted on the project")
}

func TestChatReplacesPreviousRecommendations(t *testing.T) {
	projects := newFakeProjectRepo(&entity.Project{ID: "p1", UserID: "u1"})
	activities := &fakeActivityRepo{activities: []entity.Activity{
		{ID: "a1", Title: "Cooking Class"},
	}}
	r, recs := newTestRecommender(projects, activities)

	require.NoError(t, recs.Create(context.Background(), &entity.Recommendation{
		ID: "stale", ProjectID: "p1", ActivityID: "old",
	}))

	reply, err := r.Chat(context.Background(), "u1", "p1", "cooking")
	require.NoError(t, err)
	require.Len(t, reply.Recommendations, 1)

	saved, err := recs.ListByProject(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "a1", saved[0].ActivityID)
}
