package match

// CreatePayload captures the payload for match.create commands.
type CreatePayload struct {
	FirstPlayer string `json:"first_player"`
}

// PlacePayload captures the payload for match.place commands.
//
// Index is a pointer so that a missing index is rejected rather than read as
// cell zero.
type PlacePayload struct {
	Player string `json:"player"`
	Token  string `json:"token"`
	Index  *int   `json:"index"`
}

// CreatedPayload captures the payload for match.created events.
type CreatedPayload struct {
	FirstPlayer string `json:"first_player"`
}

// PiecePlacedPayload captures the payload for match.piece_placed events.
type PiecePlacedPayload struct {
	Player string `json:"player"`
	Token  string `json:"token"`
	Index  int    `json:"index"`
}
