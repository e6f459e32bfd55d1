package pets

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Pet
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Pet{}}
}

func (r *testRepo) Create(ctx context.Context, p Pet) error {
	if p.ID == "" {
		return errors.New("repo: id required")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Update(ctx context.Context, p Pet) error {
	if _, ok := r.byID[p.ID]; !ok {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Pet, error) {
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, userID string) ([]Pet, error) {
	out := make([]Pet, 0)
	for _, p := range r.byID {
		if p.UserID == userID {
			out = append(out, p)
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

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

// -------------------------
// Tests
// -------------------------

func TestService_Create(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	p, err := svc.Create(context.Background(), "user-1", CreateInput{
		Name:    "Rex",
		Species: "Dog",
		Breed:   "German Shepherd",
		Age:     intPtr(5),
		Weight:  floatPtr(35),
		Tags:    []string{"a", "b"},
	}, "")
	require.NoError(t, err)
	assert.Equal(t, "user-1", p.UserID)
	assert.Equal(t, []string{"a", "b"}, p.Tags)

	stored, err := repo.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, stored.Tags)
}

func TestService_Create_RequiredFields(t *testing.T) {
	svc := NewService(newTestRepo())

	_, err := svc.Create(context.Background(), "user-1", CreateInput{Name: "Rex"}, "")

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, ValidationErrors{"Name and species are required"}, verrs)
}

func TestService_Create_AccumulatesAllFailures(t *testing.T) {
	svc := NewService(newTestRepo())

	// edad negativa Y peso inválido: se reportan los dos, no solo el primero
	_, err := svc.Create(context.Background(), "user-1", CreateInput{
		Name:    "Rex",
		Species: "Dog",
		Age:     intPtr(-1),
		Weight:  floatPtr(0),
	}, "")

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, ValidationErrors{
		"Age cannot be negative",
		"Weight must be positive",
	}, verrs)
}

func TestService_Update_EmptyPayloadIsIdempotent(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	p, err := svc.Create(context.Background(), "user-1", CreateInput{
		Name:    "Rex",
		Species: "Dog",
		Breed:   "Mixed",
		Age:     intPtr(3),
		Weight:  floatPtr(20.5),
		Tags:    []string{"friendly"},
		Notes:   "likes snow",
	}, "/uploads/rex.png")
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), p, UpdateInput{}, "")
	require.NoError(t, err)
	assert.Equal(t, p, updated)
}

func TestService_Update_PartialFields(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	p, err := svc.Create(context.Background(), "user-1", CreateInput{
		Name:    "Rex",
		Species: "Dog",
		Age:     intPtr(3),
	}, "")
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), p, UpdateInput{
		Name: strPtr("Rexito"),
		Tags: &[]string{"small"},
	}, "")
	require.NoError(t, err)
	assert.Equal(t, "Rexito", updated.Name)
	assert.Equal(t, "Dog", updated.Species)
	assert.Equal(t, 3, *updated.Age)
	assert.Equal(t, []string{"small"}, updated.Tags)
}

func TestService_Update_PhotoReplacement(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	p, err := svc.Create(context.Background(), "user-1", CreateInput{
		Name:    "Rex",
		Species: "Dog",
	}, "/uploads/old.png")
	require.NoError(t, err)

	// photoURL vacío no toca la foto
	updated, err := svc.Update(context.Background(), p, UpdateInput{}, "")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/old.png", updated.PhotoURL)

	// no vacío la reemplaza
	updated, err = svc.Update(context.Background(), updated, UpdateInput{}, "/uploads/new.png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/new.png", updated.PhotoURL)
}

func TestService_Update_ValidatesProvidedFields(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	p, err := svc.Create(context.Background(), "user-1", CreateInput{Name: "Rex", Species: "Dog"}, "")
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), p, UpdateInput{
		Age: intPtr(99),
	}, "")

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "Age seems unrealistic (max 50 years)")
}

func TestService_GetOwned(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	p, err := svc.Create(context.Background(), "user-1", CreateInput{Name: "Rex", Species: "Dog"}, "")
	require.NoError(t, err)

	got, err := svc.GetOwned(context.Background(), p.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	// de otro usuario: mismo ErrNotFound que inexistente
	_, err = svc.GetOwned(context.Background(), p.ID, "user-2")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetOwned(context.Background(), "missing", "user-1")
	assert.ErrorIs(t, err, ErrNotFound)
}
