package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateFor(t *testing.T) {
	complete := &User{FirstName: "Ada", LastName: "Lovelace", Role: "Engineer"}
	incomplete := &User{FirstName: "Ada"}
	whitespace := &User{FirstName: "  ", LastName: "Lovelace", Role: "Engineer"}

	assert.Equal(t, StateLoading, StateFor(nil, false))
	assert.Equal(t, StateUnauthenticated, StateFor(nil, true))
	assert.Equal(t, StateIncomplete, StateFor(incomplete, true))
	assert.Equal(t, StateIncomplete, StateFor(whitespace, true))
	assert.Equal(t, StateComplete, StateFor(complete, true))
}

func TestResolve(t *testing.T) {
	protected := Route{Path: "/discover"}
	login := Route{Path: LoginPath, Public: true}
	onboarding := Route{Path: OnboardingPath, AllowIncomplete: true}

	for _, tt := range []struct {
		msg   string
		state GuardState
		route Route
		want  Decision
	}{
		{"loading shows a placeholder", StateLoading, protected, Decision{Placeholder: true}},
		{"signed out, protected route redirects to login", StateUnauthenticated, protected, Decision{RedirectTo: LoginPath}},
		{"signed out, login renders", StateUnauthenticated, login, Decision{Render: true}},
		{"incomplete, protected route redirects to onboarding", StateIncomplete, protected, Decision{RedirectTo: OnboardingPath}},
		{"incomplete, login redirects to onboarding", StateIncomplete, login, Decision{RedirectTo: OnboardingPath}},
		{"incomplete, onboarding renders", StateIncomplete, onboarding, Decision{Render: true}},
		{"complete, protected route renders", StateComplete, protected, Decision{Render: true}},
		{"complete, login redirects home", StateComplete, login, Decision{RedirectTo: HomePath}},
		{"complete, onboarding renders", StateComplete, onboarding, Decision{Render: true}},
	} {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.state, tt.route))
		})
	}
}

func TestResolveAllowIncompleteFlag(t *testing.T) {
	settings := Route{Path: "/settings", AllowIncomplete: true}
	got := Resolve(StateIncomplete, settings)
	assert.True(t, got.Render)
}
