package model

import "encoding/json"

// UpdatePatch is the partial payload for PUT on an item. The server applies
// only the fields present in the JSON body, so each variant marshals exactly
// the fields it names and nothing else.
type UpdatePatch interface {
	json.Marshaler
	patch()
}

// ToggleComplete flips the completion flag and touches nothing else.
type ToggleComplete struct {
	IsCompleted bool
}

func (ToggleComplete) patch() {}

func (p ToggleComplete) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		IsCompleted bool `json:"is_completed"`
	}{p.IsCompleted})
}

// EditFields rewrites title and description, leaving the completion flag alone.
type EditFields struct {
	Title       string
	Description string
}

func (EditFields) patch() {}

func (p EditFields) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}{p.Title, p.Description})
}
