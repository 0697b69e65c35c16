package models

import (
	"sort"
	"strings"
)

// Neighborhood is a delivery zone with a flat fee
type Neighborhood struct {
	ID        string  `json:"id" db:"id"`
	UserID    string  `json:"user_id" db:"user_id"`
	Name      string  `json:"name" db:"name"`
	Fee       float64 `json:"fee" db:"fee"`
	CreatedAt int64   `json:"created_at" db:"created_at"`
}

// Establishment is a partner business paying a daily rate
type Establishment struct {
	ID        string  `json:"id" db:"id"`
	UserID    string  `json:"user_id" db:"user_id"`
	Name      string  `json:"name" db:"name"`
	DailyRate float64 `json:"daily_rate" db:"daily_rate"`
	Active    bool    `json:"active" db:"active"`
	CreatedAt int64   `json:"created_at" db:"created_at"`
}

type NeighborhoodRequest struct {
	Name string  `json:"name"`
	Fee  float64 `json:"fee"`
}

type EstablishmentRequest struct {
	Name      string  `json:"name"`
	DailyRate float64 `json:"daily_rate"`
	Active    *bool   `json:"active"`
}

// nameLess orders reference names case-insensitively, breaking ties by the
// exact spelling and then the id
func nameLess(a, b, idA, idB string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	if a != b {
		return a < b
	}
	return idA < idB
}

// SortNeighborhoods puts list in display order
func SortNeighborhoods(list []Neighborhood) {
	sort.Slice(list, func(i, j int) bool {
		return nameLess(list[i].Name, list[j].Name, list[i].ID, list[j].ID)
	})
}

// SortEstablishments puts list in display order
func SortEstablishments(list []Establishment) {
	sort.Slice(list, func(i, j int) bool {
		return nameLess(list[i].Name, list[j].Name, list[i].ID, list[j].ID)
	})
}
