// Package session treats the HTTP session as an external key-value
// collaborator, so the visit counter stays pure given the Store interface.
package session

import (
	"fmt"

	"github.com/vholenko/it-task-manager/internal/constants"
)

// Store is the slice of the session the counter needs. gin-contrib/sessions
// satisfies it directly.
type Store interface {
	Get(key interface{}) interface{}
	Set(key interface{}, value interface{})
	Save() error
}

// BumpVisits increments and persists the per-session visit counter, returning
// the new value. The counter resets with the session; its lifecycle belongs
// to the session store.
func BumpVisits(store Store) (int, error) {
	visits := 0
	if v := store.Get(constants.SessionKeyVisits); v != nil {
		switch n := v.(type) {
		case int:
			visits = n
		case int64:
			visits = int(n)
		case float64:
			visits = int(n)
		}
	}

	visits++
	store.Set(constants.SessionKeyVisits, visits)
	if err := store.Save(); err != nil {
		return 0, fmt.Errorf("failed to save session: %w", err)
	}

	return visits, nil
}
