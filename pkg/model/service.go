package model

// Service is a catalog entry. Slots is the full daily capacity in display
// order and is never mutated by booking activity. Availability answers reuse
// it with the free slots only, so slots is always present on the wire.
type Service struct {
	ID    string   `json:"_id,omitempty" bson:"_id,omitempty"`
	Name  string   `json:"name" bson:"name"`
	Slots []string `json:"slots" bson:"slots,omitempty"`
	Price float64  `json:"price,omitempty" bson:"price,omitempty"`
}

// ServiceName is the id and name projection served by the catalog listing.
type ServiceName struct {
	ID   string `json:"_id,omitempty" bson:"_id,omitempty"`
	Name string `json:"name" bson:"name"`
}
