package models

// Slot is a candidate booking window in minutes from midnight.
type Slot struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// SlotView is the outward-facing representation of a slot. The field names
// match the wire contract consumed by existing front-ends.
type SlotView struct {
	HorarioInicio string `json:"horario_inicio"`
	HorarioFim    string `json:"horario_fim"`
}
