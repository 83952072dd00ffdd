package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
)

type CategoryRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// CategoryList holds the aggregated {id, name} pairs of a note. The database
// hands it over as a JSON array built by the note queries.
type CategoryList []CategoryRef

// Value implements the driver.Valuer interface.
func (l CategoryList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}

	b, err := json.Marshal([]CategoryRef(l))
	if err != nil {
		return nil, err
	}

	return string(b), nil
}

// Scan implements the sql.Scanner interface. NULL and empty input both
// decode to an empty, non-nil list so that notes without categories
// serialize as [] rather than null.
func (l *CategoryList) Scan(value any) error {
	var raw []byte

	switch v := value.(type) {
	case nil:
		*l = CategoryList{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("failed to scan CategoryList, %v", value)
	}

	if len(raw) == 0 {
		*l = CategoryList{}
		return nil
	}

	out := CategoryList{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("failed to decode category list, %w", err)
	}

	// Left joins with no match can still leave a {null, null} pair behind
	// on engines without aggregate filters
	kept := out[:0]
	for _, c := range out {
		if c.ID != 0 {
			kept = append(kept, c)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Name == kept[j].Name {
			return kept[i].ID < kept[j].ID
		}
		return kept[i].Name < kept[j].Name
	})

	*l = kept
	return nil
}
