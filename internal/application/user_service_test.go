package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drewhq/drew/internal/domain/entity"
	"github.com/drewhq/drew/pkg/helpers"
)

func newUserService(users *fakeUserRepo, orgs *fakeOrgRepo) *UserService {
	return &UserService{Users: users, Orgs: orgs}
}

func strPtr(s string) *string { return &s }

func TestRegisterRejectsDuplicates(t *testing.T) {
	existing := &entity.User{ID: "u1", Username: "taken", Email: "taken@example.com"}
	svc := newUserService(newFakeUserRepo(existing), newFakeOrgRepo())

	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "fresh", Email: "Taken@Example.com", Password: "password123",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Register(context.Background(), RegisterInput{
		Username: "taken", Email: "fresh@example.com", Password: "password123",
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegisterLowercasesEmailAndHashesPassword(t *testing.T) {
	users := newFakeUserRepo()
	svc := newUserService(users, newFakeOrgRepo())

	u, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice", Email: "Alice@Example.COM", Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.NotEqual(t, "password123", u.Password)
	assert.True(t, helpers.CompareHashAndPassword(u.Password, "password123"))
}

func TestAuthenticate(t *testing.T) {
	hash, err := helpers.HashPassword("correct horse")
	require.NoError(t, err)
	users := newFakeUserRepo(&entity.User{ID: "u1", Email: "a@b.c", Password: hash})
	svc := newUserService(users, newFakeOrgRepo())

	u, err := svc.Authenticate(context.Background(), "A@B.C", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)

	_, err = svc.Authenticate(context.Background(), "a@b.c", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), "nobody@b.c", "correct horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateUserSelfOnly(t *testing.T) {
	users := newFakeUserRepo(&entity.User{ID: "u1", Username: "alice"})
	svc := newUserService(users, newFakeOrgRepo())

	_, err := svc.UpdateUser(context.Background(), "u2", "u1", UpdateUserInput{FirstName: strPtr("X")})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateUserRequiresSomeField(t *testing.T) {
	users := newFakeUserRepo(&entity.User{ID: "u1", Username: "alice"})
	svc := newUserService(users, newFakeOrgRepo())

	_, err := svc.UpdateUser(context.Background(), "u1", "u1", UpdateUserInput{})
	assert.ErrorIs(t, err, ErrNoUpdateData)
}

func TestUpdateUserAppliesPartialFields(t *testing.T) {
	users := newFakeUserRepo(&entity.User{
		ID: "u1", Username: "alice", FirstName: "Alice", LastName: "Smith", Role: "Manager",
	})
	svc := newUserService(users, newFakeOrgRepo())

	u, err := svc.UpdateUser(context.Background(), "u1", "u1", UpdateUserInput{
		FirstName: strPtr("  Alicia "),
	})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", u.FirstName)
	assert.Equal(t, "Smith", u.LastName)
	assert.Equal(t, "Manager", u.Role)
}

func TestUpdateUserUsernameConflict(t *testing.T) {
	users := newFakeUserRepo(
		&entity.User{ID: "u1", Username: "alice"},
		&entity.User{ID: "u2", Username: "bob"},
	)
	svc := newUserService(users, newFakeOrgRepo())

	_, err := svc.UpdateUser(context.Background(), "u1", "u1", UpdateUserInput{Username: strPtr("bob")})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	u, err := svc.UpdateUser(context.Background(), "u1", "u1", UpdateUserInput{Username: strPtr("alice2")})
	require.NoError(t, err)
	assert.Equal(t, "alice2", u.Username)
}

func TestCompleteOnboardingCreatesOrganizationOnce(t *testing.T) {
	users := newFakeUserRepo(&entity.User{ID: "u1", Username: "alice", Email: "a@b.c"})
	orgs := newFakeOrgRepo()
	svc := newUserService(users, orgs)

	u, err := svc.CompleteOnboarding(context.Background(), "u1", OnboardingInput{
		FirstName: "Alice", LastName: "Smith", Role: "Manager",
		Organization: &OnboardingOrganization{Name: "Acme", Industry: "Events"},
	})
	require.NoError(t, err)
	assert.True(t, u.HasCompletedOnboarding)
	require.NotEmpty(t, u.OrganizationID)
	require.Len(t, orgs.orgs, 1)

	org, err := orgs.GetByID(context.Background(), u.OrganizationID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", org.Name)

	// A second onboarding pass must not create another organization.
	firstOrgID := u.OrganizationID
	u, err = svc.CompleteOnboarding(context.Background(), "u1", OnboardingInput{
		FirstName: "Alice", LastName: "Smith", Role: "Manager",
		Organization: &OnboardingOrganization{Name: "Other Co"},
	})
	require.NoError(t, err)
	assert.Equal(t, firstOrgID, u.OrganizationID)
	assert.Len(t, orgs.orgs, 1)
}

func TestCompleteOnboardingSkipsBlankOrganizationName(t *testing.T) {
	users := newFakeUserRepo(&entity.User{ID: "u1", Username: "alice"})
	orgs := newFakeOrgRepo()
	svc := newUserService(users, orgs)

	u, err := svc.CompleteOnboarding(context.Background(), "u1", OnboardingInput{
		FirstName: "Alice", LastName: "Smith", Role: "Manager",
		Organization: &OnboardingOrganization{Name: "   "},
	})
	require.NoError(t, err)
	assert.True(t, u.HasCompletedOnboarding)
	assert.Empty(t, u.OrganizationID)
	assert.Empty(t, orgs.orgs)
}

func TestCompleteOnboardingUnknownUser(t *testing.T) {
	svc := newUserService(newFakeUserRepo(), newFakeOrgRepo())

	_, err := svc.CompleteOnboarding(context.Background(), "nope", OnboardingInput{})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMagicLinkInitUnknownEmailIsSilent(t *testing.T) {
	svc := newUserService(newFakeUserRepo(), newFakeOrgRepo())

	err := svc.MagicLinkInit(context.Background(), "nobody@example.com")
	assert.NoError(t, err)
}
