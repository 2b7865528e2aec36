package product

import (
	"context"
	"fmt"
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock implementations ---

type mockRepo struct {
	stored  []Product
	saveErr error
	listErr error
	nextID  int
}

func (m *mockRepo) Save(_ context.Context, p Product) (Product, error) {
	if m.saveErr != nil {
		return Product{}, m.saveErr
	}
	m.nextID++
	p.ID = fmt.Sprintf("id-%d", m.nextID)
	m.stored = append(m.stored, p)
	return p, nil
}

func (m *mockRepo) List(_ context.Context) ([]Product, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.stored, nil
}

// --- Helpers ---

func newCreateRequest(name string) CreateRequest {
	return CreateRequest{
		Name:        name,
		Description: "Smartphone",
		Price:       decimal.RequireFromString("1200.00"),
	}
}

// --- Tests ---

func TestCreate(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)

	err := svc.Create(context.Background(), newCreateRequest("Phone"))
	require.NoError(t, err)

	require.Len(t, repo.stored, 1)
	got := repo.stored[0]
	assert.Equal(t, "Phone", got.Name)
	assert.Equal(t, "Smartphone", got.Description)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("1200.00")))
	assert.NotEmpty(t, got.ID)
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  CreateRequest
		want error
	}{
		{
			name: "missing name",
			req:  CreateRequest{Description: "d", Price: decimal.NewFromInt(1)},
			want: ErrNameRequired,
		},
		{
			name: "missing description",
			req:  CreateRequest{Name: "n", Price: decimal.NewFromInt(1)},
			want: ErrDescriptionRequired,
		},
		{
			name: "negative price",
			req:  CreateRequest{Name: "n", Description: "d", Price: decimal.NewFromInt(-1)},
			want: ErrNegativePrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepo{}
			svc := NewService(repo)

			err := svc.Create(context.Background(), tt.req)
			require.ErrorIs(t, err, tt.want)
			assert.Empty(t, repo.stored, "nothing must be persisted on validation failure")
		})
	}
}

func TestCreate_StorageError(t *testing.T) {
	storeErr := errors.New("connection refused")
	svc := NewService(&mockRepo{saveErr: storeErr})

	err := svc.Create(context.Background(), newCreateRequest("Phone"))
	require.ErrorIs(t, err, storeErr)
}

func TestListAll_Empty(t *testing.T) {
	svc := NewService(&mockRepo{})

	out, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Empty(t, out)
}

func TestListAll(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)

	names := []string{"Phone", "Laptop", "Tablet"}
	for _, name := range names {
		require.NoError(t, svc.Create(context.Background(), newCreateRequest(name)))
	}

	out, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, out, len(names))

	seen := make(map[string]bool, len(out))
	for i, resp := range out {
		assert.Equal(t, names[i], resp.Name, "store order must be preserved")
		assert.Equal(t, "Smartphone", resp.Description)
		assert.True(t, resp.Price.Equal(decimal.RequireFromString("1200.00")))
		require.NotEmpty(t, resp.ID)
		assert.False(t, seen[resp.ID], "assigned IDs must be unique")
		seen[resp.ID] = true
	}
}

func TestListAll_StorageError(t *testing.T) {
	storeErr := errors.New("db down")
	svc := NewService(&mockRepo{listErr: storeErr})

	out, err := svc.ListAll(context.Background())
	require.ErrorIs(t, err, storeErr)
	assert.Nil(t, out, "a store fault must not be reported as an empty catalog")
}

func TestToEntity(t *testing.T) {
	p := ToEntity(newCreateRequest("Phone"))

	assert.Empty(t, p.ID, "identity is assigned by the store only")
	assert.Equal(t, "Phone", p.Name)
	assert.Equal(t, "Smartphone", p.Description)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("1200.00")))
}

func TestToResponse(t *testing.T) {
	p := Product{
		ID:          "p1",
		Name:        "Phone",
		Description: "Smartphone",
		Price:       decimal.RequireFromString("1200.00"),
	}

	resp := ToResponse(p)
	assert.Equal(t, "p1", resp.ID)
	assert.Equal(t, p.Name, resp.Name)
	assert.Equal(t, p.Description, resp.Description)
	assert.True(t, resp.Price.Equal(p.Price))
}
