package client

import (
	"context"
	"errors"
	"net/url"
	"strings"
)

// OnboardingStep is a state of the onboarding flow.
type OnboardingStep int

const (
	StepOrgSetup OnboardingStep = iota
	StepProfileSetup
	StepComplete
)

// ErrProfileIncomplete is returned by Submit when the final completeness
// check fails, guarding against stale flow state.
var ErrProfileIncomplete = errors.New("profile fields incomplete")

// OrgForm holds the organization-setup inputs.
type OrgForm struct {
	Name        string
	Industry    string
	CompanySize string
	Website     string
}

// ProfileForm holds the profile-setup inputs.
type ProfileForm struct {
	FirstName string
	LastName  string
	Role      string
}

// Flow drives onboarding. A user who already has an organization never
// sees the org-setup step and reports two total steps instead of three.
type Flow struct {
	user    *User
	step    OnboardingStep
	skipped bool // org-setup skipped by the user (not by having an org)

	Org     OrgForm
	Profile ProfileForm

	// Errors is rebuilt wholesale on every validation pass; fields never
	// linger after being corrected.
	Errors map[string]string
}

// needsOrganizationStep is the single predicate deciding whether the
// org-setup step exists for this user at all.
func needsOrganizationStep(u *User) bool {
	return u == nil || u.OrganizationID == ""
}

func NewFlow(u *User) *Flow {
	f := &Flow{user: u, Errors: map[string]string{}}
	if u != nil {
		f.Profile = ProfileForm{FirstName: u.FirstName, LastName: u.LastName, Role: u.Role}
	}
	if !needsOrganizationStep(u) {
		f.step = StepProfileSetup
	}
	return f
}

func (f *Flow) Step() OnboardingStep { return f.step }

// TotalSteps is 3 when the org-setup step exists, 2 otherwise.
func (f *Flow) TotalSteps() int {
	if needsOrganizationStep(f.user) {
		return 3
	}
	return 2
}

// StepNumber is the 1-based logical step for the progress indicator.
func (f *Flow) StepNumber() int {
	if needsOrganizationStep(f.user) {
		return int(f.step) + 1
	}
	switch f.step {
	case StepProfileSetup:
		return 1
	default:
		return 2
	}
}

// Progress maps (step, totalSteps) to a percentage. Unknown combinations
// report zero.
func Progress(step, total int) int {
	switch {
	case total == 3 && step == 1:
		return 25
	case total == 3 && step == 2:
		return 60
	case total == 3 && step == 3:
		return 100
	case total == 2 && step == 1:
		return 50
	case total == 2 && step == 2:
		return 100
	default:
		return 0
	}
}

func (f *Flow) Percent() int {
	return Progress(f.StepNumber(), f.TotalSteps())
}

// validOrg rebuilds the error map from the org form.
func (f *Flow) validOrg() bool {
	errs := map[string]string{}
	if strings.TrimSpace(f.Org.Name) == "" {
		errs["name"] = "is required"
	}
	if strings.TrimSpace(f.Org.Industry) == "" {
		errs["industry"] = "is required"
	}
	if strings.TrimSpace(f.Org.CompanySize) == "" {
		errs["companySize"] = "is required"
	}
	if w := strings.TrimSpace(f.Org.Website); w != "" && !validAbsoluteURL(w) {
		errs["website"] = "must be a valid URL"
	}
	f.Errors = errs
	return len(errs) == 0
}

// validProfile rebuilds the error map from the profile form.
func (f *Flow) validProfile() bool {
	errs := map[string]string{}
	if strings.TrimSpace(f.Profile.FirstName) == "" {
		errs["firstName"] = "is required"
	}
	if strings.TrimSpace(f.Profile.LastName) == "" {
		errs["lastName"] = "is required"
	}
	if strings.TrimSpace(f.Profile.Role) == "" {
		errs["role"] = "is required"
	}
	f.Errors = errs
	return len(errs) == 0
}

func validAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Continue validates the current step and advances when valid.
func (f *Flow) Continue() bool {
	switch f.step {
	case StepOrgSetup:
		if !f.validOrg() {
			return false
		}
		f.step = StepProfileSetup
		return true
	case StepProfileSetup:
		if !f.validProfile() {
			return false
		}
		f.step = StepComplete
		return true
	default:
		return false
	}
}

// Skip advances past org setup unconditionally.
func (f *Flow) Skip() {
	if f.step == StepOrgSetup {
		f.skipped = true
		f.Errors = map[string]string{}
		f.step = StepProfileSetup
	}
}

// Back returns to org setup; unavailable when the step never existed.
func (f *Flow) Back() {
	if f.step == StepProfileSetup && needsOrganizationStep(f.user) {
		f.Errors = map[string]string{}
		f.step = StepOrgSetup
	}
}

// Submit re-checks completeness as a final guard and posts the onboarding
// payload. The nested organization goes along only when the user had none
// and supplied a name.
func (f *Flow) Submit(ctx context.Context, s *Session) (*User, error) {
	if !f.validProfile() {
		return nil, ErrProfileIncomplete
	}
	payload := OnboardingPayload{
		FirstName: strings.TrimSpace(f.Profile.FirstName),
		LastName:  strings.TrimSpace(f.Profile.LastName),
		Role:      strings.TrimSpace(f.Profile.Role),
	}
	if needsOrganizationStep(f.user) && !f.skipped && strings.TrimSpace(f.Org.Name) != "" {
		payload.Organization = &OnboardingOrganization{
			Name:        strings.TrimSpace(f.Org.Name),
			Industry:    strings.TrimSpace(f.Org.Industry),
			CompanySize: strings.TrimSpace(f.Org.CompanySize),
			Website:     strings.TrimSpace(f.Org.Website),
		}
	}
	u, err := s.CompleteOnboarding(ctx, payload)
	if err != nil {
		return nil, err
	}
	f.step = StepComplete
	return u, nil
}
