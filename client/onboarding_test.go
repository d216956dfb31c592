package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgress(t *testing.T) {
	for _, tt := range []struct {
		step, total, want int
	}{
		{1, 3, 25},
		{2, 3, 60},
		{3, 3, 100},
		{1, 2, 50},
		{2, 2, 100},
		{0, 3, 0},
		{4, 3, 0},
		{1, 4, 0},
		{0, 0, 0},
	} {
		assert.Equal(t, tt.want, Progress(tt.step, tt.total), "Progress(%d, %d)", tt.step, tt.total)
	}
}

func TestFlowStepsWithoutOrganization(t *testing.T) {
	f := NewFlow(&User{ID: "u1"})
	assert.Equal(t, 3, f.TotalSteps())
	assert.Equal(t, StepOrgSetup, f.Step())
	assert.Equal(t, 1, f.StepNumber())

	// Invalid org form stays put and reports every missing field.
	assert.False(t, f.Continue())
	assert.Equal(t, StepOrgSetup, f.Step())
	assert.Len(t, f.Errors, 3)

	f.Org = OrgForm{Name: "Acme", Industry: "Retail", CompanySize: "11-50", Website: "not a url"}
	assert.False(t, f.Continue())
	assert.Equal(t, map[string]string{"website": "must be a valid URL"}, f.Errors)

	// Error map is rebuilt wholesale once the field is corrected.
	f.Org.Website = "https://acme.example"
	assert.True(t, f.Continue())
	assert.Empty(t, f.Errors)
	assert.Equal(t, StepProfileSetup, f.Step())
	assert.Equal(t, 2, f.StepNumber())
	assert.Equal(t, 60, f.Percent())

	f.Profile = ProfileForm{FirstName: "Ada", LastName: "Lovelace", Role: "Engineer"}
	assert.True(t, f.Continue())
	assert.Equal(t, StepComplete, f.Step())
	assert.Equal(t, 100, f.Percent())
}

func TestFlowUserWithOrganizationSkipsOrgStep(t *testing.T) {
	f := NewFlow(&User{ID: "u1", OrganizationID: "org1"})
	assert.Equal(t, 2, f.TotalSteps())
	assert.Equal(t, StepProfileSetup, f.Step())
	assert.Equal(t, 1, f.StepNumber())
	assert.Equal(t, 50, f.Percent())

	// Back is unavailable when the org step never existed.
	f.Back()
	assert.Equal(t, StepProfileSetup, f.Step())
}

func TestFlowSkipAndBack(t *testing.T) {
	f := NewFlow(&User{ID: "u1"})
	f.Skip()
	assert.Equal(t, StepProfileSetup, f.Step())

	f.Back()
	assert.Equal(t, StepOrgSetup, f.Step())
}

func TestFlowSubmit(t *testing.T) {
	var got OnboardingPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/onboarding", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    User{ID: "u1", FirstName: got.FirstName, HasCompletedOnboarding: true},
		})
	}))
	defer srv.Close()

	api := New(srv.URL)
	api.Tokens.SetToken("tok")
	sess := NewSession(api)

	f := NewFlow(&User{ID: "u1"})
	f.Org = OrgForm{Name: "Acme", Industry: "Retail", CompanySize: "11-50"}
	f.Profile = ProfileForm{FirstName: "Ada", LastName: "Lovelace", Role: "Engineer"}

	u, err := f.Submit(context.Background(), sess)
	require.NoError(t, err)
	assert.True(t, u.HasCompletedOnboarding)
	require.NotNil(t, got.Organization)
	assert.Equal(t, "Acme", got.Organization.Name)
}

func TestFlowSubmitSkippedOrgOmitsPayload(t *testing.T) {
	var got OnboardingPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": User{ID: "u1"}})
	}))
	defer srv.Close()

	api := New(srv.URL)
	sess := NewSession(api)

	f := NewFlow(&User{ID: "u1"})
	f.Org.Name = "Acme" // typed a name, then skipped anyway
	f.Skip()
	f.Profile = ProfileForm{FirstName: "Ada", LastName: "Lovelace", Role: "Engineer"}

	_, err := f.Submit(context.Background(), sess)
	require.NoError(t, err)
	assert.Nil(t, got.Organization)
}

func TestFlowSubmitStaleStateGuard(t *testing.T) {
	f := NewFlow(&User{ID: "u1", OrganizationID: "org1"})
	f.Profile = ProfileForm{FirstName: "Ada"} // incomplete

	_, err := f.Submit(context.Background(), NewSession(New("http://unused")))
	assert.ErrorIs(t, err, ErrProfileIncomplete)
}
