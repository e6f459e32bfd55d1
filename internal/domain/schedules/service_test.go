package schedules

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Test doubles
// -------------------------

type testRepo struct {
	byID map[string]FeedingSchedule
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]FeedingSchedule{}}
}

func (r *testRepo) Create(ctx context.Context, s FeedingSchedule) error {
	if s.ID == "" {
		return errors.New("repo: id required")
	}
	r.byID[s.ID] = s
	return nil
}

func (r *testRepo) Update(ctx context.Context, s FeedingSchedule) error {
	if _, ok := r.byID[s.ID]; !ok {
		return ErrNotFound
	}
	r.byID[s.ID] = s
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (FeedingSchedule, error) {
	s, ok := r.byID[id]
	if !ok {
		return FeedingSchedule{}, ErrNotFound
	}
	return s, nil
}

func (r *testRepo) ListByPet(ctx context.Context, petID string) ([]FeedingSchedule, error) {
	out := make([]FeedingSchedule, 0)
	for _, s := range r.byID {
		if s.PetID == petID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *testRepo) ListByPets(ctx context.Context, petIDs []string) ([]FeedingSchedule, error) {
	want := make(map[string]bool, len(petIDs))
	for _, id := range petIDs {
		want[id] = true
	}
	out := make([]FeedingSchedule, 0)
	for _, s := range r.byID {
		if want[s.PetID] {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// testOwners mapea petID -> userID dueño.
type testOwners map[string]string

func (o testOwners) OwnerOf(ctx context.Context, petID string) (string, error) {
	owner, ok := o[petID]
	if !ok {
		return "", errors.New("pet not found")
	}
	return owner, nil
}

func strPtr(v string) *string { return &v }

// -------------------------
// Tests
// -------------------------

func TestService_Create_NormalizesTime(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, testOwners{})

	s, err := svc.Create(context.Background(), "pet-1", CreateInput{
		FoodType: "Dry food",
		Amount:   "200g",
		Time:     "9:5",
	})
	require.NoError(t, err)
	assert.Equal(t, "09:05", s.Time)

	stored, err := repo.GetByID(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, "09:05", stored.Time)
}

func TestService_Create_RequiredFields(t *testing.T) {
	svc := NewService(newTestRepo(), testOwners{})

	_, err := svc.Create(context.Background(), "pet-1", CreateInput{FoodType: "Dry food"})

	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "food_type and time are required", verr.Msg)
}

func TestService_Create_InvalidTime(t *testing.T) {
	svc := NewService(newTestRepo(), testOwners{})

	cases := []struct {
		value string
		msg   string
	}{
		{"25:00", "Hour must be between 0 and 23"},
		{"-1:30", "Hour must be between 0 and 23"},
		{"12:60", "Minute must be between 0 and 59"},
		{"noon", "Invalid time format. Use HH:MM"},
		{"12", "Invalid time format. Use HH:MM"},
	}
	for _, tc := range cases {
		_, err := svc.Create(context.Background(), "pet-1", CreateInput{
			FoodType: "Dry food",
			Time:     tc.value,
		})
		var verr ValidationError
		require.ErrorAs(t, err, &verr, "time %q", tc.value)
		assert.Equal(t, tc.msg, verr.Msg)
	}
}

func TestService_Update_Partial(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, testOwners{})

	s, err := svc.Create(context.Background(), "pet-1", CreateInput{
		FoodType:  "Dry food",
		Amount:    "200g",
		Time:      "08:00",
		Frequency: "daily",
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), s, UpdateInput{
		Amount: strPtr("250g"),
		Time:   strPtr("18:30"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Dry food", updated.FoodType)
	assert.Equal(t, "250g", updated.Amount)
	assert.Equal(t, "18:30", updated.Time)
	assert.Equal(t, "daily", updated.Frequency)
}

func TestService_Update_RejectsBadTime(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, testOwners{})

	s, err := svc.Create(context.Background(), "pet-1", CreateInput{
		FoodType: "Dry food",
		Time:     "08:00",
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), s, UpdateInput{Time: strPtr("24:00")})

	var verr ValidationError
	require.ErrorAs(t, err, &verr)

	// el schedule persistido queda intacto
	stored, err := repo.GetByID(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, "08:00", stored.Time)
}

func TestService_GetOwned_TwoStep(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, testOwners{"pet-1": "user-1"})

	s, err := svc.Create(context.Background(), "pet-1", CreateInput{
		FoodType: "Dry food",
		Time:     "08:00",
	})
	require.NoError(t, err)

	got, err := svc.GetOwned(context.Background(), s.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)

	// inexistente: not found
	_, err = svc.GetOwned(context.Background(), "missing", "user-1")
	assert.ErrorIs(t, err, ErrNotFound)

	// existe pero la mascota es de otro: forbidden, no not found
	_, err = svc.GetOwned(context.Background(), s.ID, "user-2")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_ListByPets_Empty(t *testing.T) {
	svc := NewService(newTestRepo(), testOwners{})

	items, err := svc.ListByPets(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}
