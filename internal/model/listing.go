package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/pgvector/pgvector-go"
)

// Listing represents a canonical property listing produced by the
// upstream cleaning pipeline. Optional numeric fields are pointers so a
// missing value is distinguishable from zero.
type Listing struct {
	DocID           string          `json:"doc_id" db:"doc_id"`
	Title           *string         `json:"title,omitempty" db:"title"`
	Locality        *string         `json:"locality,omitempty" db:"locality"`
	Zone            *string         `json:"zone,omitempty" db:"zone"`
	ExactPrice      *float64        `json:"exact_price,omitempty" db:"exact_price"`
	AreaSqft        *float64        `json:"area_sqft,omitempty" db:"area_sqft"`
	PricePerSqft    *float64        `json:"price_per_sqft,omitempty" db:"price_per_sqft"`
	BHKList         IntList         `json:"bhk_list,omitempty" db:"bhk_list"`
	LivabilityScore *float64        `json:"livability_score,omitempty" db:"livability_score"`
	InvestmentScore *float64        `json:"investment_score,omitempty" db:"investment_score"`
	Description     *string         `json:"description,omitempty" db:"description"`
	URL             *string         `json:"url,omitempty" db:"url"`
	Embedding       pgvector.Vector `json:"-" db:"embedding"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

// SearchText returns the text used for keyword scanning: description if
// present, else title.
func (l *Listing) SearchText() string {
	if l.Description != nil && *l.Description != "" {
		text := *l.Description
		if l.Title != nil {
			text = *l.Title + " " + text
		}
		return text
	}
	if l.Title != nil {
		return *l.Title
	}
	return ""
}

// IntList represents a JSON-encoded list of small integers, e.g. the
// bedroom counts a listing offers. Empty means plot/land.
type IntList []int

// Value implements driver.Valuer interface
func (l IntList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner interface
func (l *IntList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return json.Unmarshal([]byte(value.(string)), l)
	}
	return json.Unmarshal(bytes, l)
}

// Intersects reports whether the list shares at least one value with
// wanted.
func (l IntList) Intersects(wanted []int) bool {
	for _, have := range l {
		for _, want := range wanted {
			if have == want {
				return true
			}
		}
	}
	return false
}
