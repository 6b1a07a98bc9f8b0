package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/mmynk/ticketapp/internal/models"
)

// LoadJSON decodes the JSON value under key into dst.
// A missing key leaves dst untouched and reports ok=false.
func LoadJSON(ctx context.Context, s Store, key string, dst any) (bool, error) {
	raw, ok, err := s.GetItem(ctx, key)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

// SaveJSON encodes v and writes it under key, replacing the previous value.
func SaveJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.SetItem(ctx, key, string(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Export returns the whole key space as JSON values, in the same shape as a
// browser localStorage dump: {"ticketapp_users": [...], ...}.
// Values that are not valid JSON are exported as JSON strings.
func Export(ctx context.Context, s Store) (map[string]json.RawMessage, error) {
	keys, err := s.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}

	dump := make(map[string]json.RawMessage, len(keys))
	for _, key := range keys {
		raw, ok, err := s.GetItem(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", key, err)
		}
		if !ok {
			continue
		}
		if json.Valid([]byte(raw)) {
			dump[key] = json.RawMessage(raw)
			continue
		}
		quoted, err := json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to quote %s: %w", key, err)
		}
		dump[key] = quoted
	}
	return dump, nil
}

// Import writes every entry of dump into s. A JSON string entry is stored as
// its contents, which is how browser dumps encode values ("[{\"id\":1}]");
// any other entry is stored as its JSON text. Existing keys not in dump are
// kept.
//
// Values under the app keys must decode into their collections and keep
// their invariants: unique ticket ids, non-blank titles, valid statuses and
// unique emails. Otherwise nothing is written and a validation error is
// returned.
func Import(ctx context.Context, s Store, dump map[string]json.RawMessage) error {
	keys := make([]string, 0, len(dump))
	values := make(map[string]string, len(dump))
	for key, raw := range dump {
		value := string(raw)
		var inner *string
		if err := json.Unmarshal(raw, &inner); err == nil && inner != nil {
			value = *inner
		}
		if err := checkImport(key, value); err != nil {
			return err
		}
		keys = append(keys, key)
		values[key] = value
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := s.SetItem(ctx, key, values[key]); err != nil {
			return fmt.Errorf("failed to import %s: %w", key, err)
		}
	}
	return nil
}

func checkImport(key, value string) error {
	switch key {
	case TicketsKey:
		var tickets []models.Ticket
		if err := json.Unmarshal([]byte(value), &tickets); err != nil {
			return models.NewInvalidImportError(key, "expected a list of tickets")
		}
		seen := make(map[int64]bool, len(tickets))
		for _, t := range tickets {
			if seen[t.ID] {
				return models.NewInvalidImportError(key, fmt.Sprintf("ticket id %d is used twice", t.ID))
			}
			seen[t.ID] = true
			if err := models.ValidateTitle(t.Title); err != nil {
				return models.NewInvalidImportError(key, fmt.Sprintf("ticket %d has no title", t.ID))
			}
			if !t.Status.Valid() {
				return models.NewInvalidImportError(key, fmt.Sprintf("ticket %d has invalid status %q", t.ID, t.Status))
			}
		}
	case UsersKey:
		var users []models.Credential
		if err := json.Unmarshal([]byte(value), &users); err != nil {
			return models.NewInvalidImportError(key, "expected a list of users")
		}
		seen := make(map[string]bool, len(users))
		for _, u := range users {
			if u.Email == "" || u.Password == "" {
				return models.NewInvalidImportError(key, "every user needs an email and a password")
			}
			if seen[u.Email] {
				return models.NewInvalidImportError(key, fmt.Sprintf("email %s is registered twice", u.Email))
			}
			seen[u.Email] = true
		}
	case SessionKey:
		var session models.Session
		if err := json.Unmarshal([]byte(value), &session); err != nil {
			return models.NewInvalidImportError(key, "expected a session object")
		}
	}
	return nil
}
