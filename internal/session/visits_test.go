package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vholenko/it-task-manager/internal/constants"
)

// fakeStore is an in-memory Store for exercising the counter without a
// session backend.
type fakeStore struct {
	values  map[interface{}]interface{}
	saveErr error
	saved   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{values: make(map[interface{}]interface{})}
}

func (s *fakeStore) Get(key interface{}) interface{} {
	return s.values[key]
}

func (s *fakeStore) Set(key interface{}, value interface{}) {
	s.values[key] = value
}

func (s *fakeStore) Save() error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved++
	return nil
}

func TestBumpVisits_StartsAtOne(t *testing.T) {
	store := newFakeStore()

	visits, err := BumpVisits(store)
	assert.NoError(t, err)
	assert.Equal(t, 1, visits)
	assert.Equal(t, 1, store.values[constants.SessionKeyVisits])
	assert.Equal(t, 1, store.saved)
}

func TestBumpVisits_Increments(t *testing.T) {
	store := newFakeStore()

	for want := 1; want <= 3; want++ {
		visits, err := BumpVisits(store)
		assert.NoError(t, err)
		assert.Equal(t, want, visits)
	}
}

// Stores deserialize the counter with varying numeric types; all count on.
func TestBumpVisits_NumericTypes(t *testing.T) {
	tests := []struct {
		name   string
		stored interface{}
		want   int
	}{
		{"int", int(4), 5},
		{"int64", int64(4), 5},
		{"float64", float64(4), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			store.values[constants.SessionKeyVisits] = tt.stored

			visits, err := BumpVisits(store)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, visits)
		})
	}
}

func TestBumpVisits_SaveFailure(t *testing.T) {
	store := newFakeStore()
	store.saveErr = errors.New("redis down")

	_, err := BumpVisits(store)
	assert.Error(t, err)
}
