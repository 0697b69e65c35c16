package models

// Delivery is a single drop-off. NeighborhoodName and Fee are copies taken
// at creation time, not live references to the neighborhood table.
type Delivery struct {
	ID               string   `json:"id" db:"id"`
	UserID           string   `json:"user_id" db:"user_id"`
	ShiftID          *string  `json:"shift_id" db:"shift_id"`
	EstablishmentID  *string  `json:"establishment_id" db:"establishment_id"`
	NeighborhoodID   *string  `json:"neighborhood_id" db:"neighborhood_id"`
	Address          string   `json:"address" db:"address"`
	NeighborhoodName *string  `json:"neighborhood_name" db:"neighborhood_name"`
	Fee              *float64 `json:"fee" db:"fee"`
	Reference        *string  `json:"reference" db:"reference"`
	Note             *string  `json:"note" db:"note"`
	CreatedAt        int64    `json:"created_at" db:"created_at"`
}

// CreateDeliveryRequest is the body of POST /api/deliveries
type CreateDeliveryRequest struct {
	EstablishmentID  *string  `json:"establishment_id"`
	NeighborhoodID   *string  `json:"neighborhood_id"`
	Address          string   `json:"address"`
	NeighborhoodName *string  `json:"neighborhood_name"`
	Fee              *float64 `json:"fee"`
	Reference        *string  `json:"reference"`
	Note             *string  `json:"note"`
}
