package domain

import "encoding/json"

// ListingPatch is the explicit optional-field update for a listing. A nil
// field means "leave as is". Only string and numeric fields can be patched;
// images, owner and reviews have their own endpoints.
type ListingPatch struct {
	Title       *string
	Description *string
	Price       *float64
	Location    *string
	Country     *string
}

// BuildListingPatch extracts the patchable fields from a raw JSON object.
// Fields that are absent or carry a value of the wrong type are skipped
// rather than failing the whole request.
func BuildListingPatch(raw map[string]json.RawMessage) ListingPatch {
	var patch ListingPatch
	patch.Title = stringField(raw, "title")
	patch.Description = stringField(raw, "description")
	patch.Price = numberField(raw, "price")
	patch.Location = stringField(raw, "location")
	patch.Country = stringField(raw, "country")
	return patch
}

func (patch *ListingPatch) IsEmpty() bool {
	return patch.Title == nil && patch.Description == nil &&
		patch.Price == nil && patch.Location == nil && patch.Country == nil
}

// Apply overwrites the present fields on the listing.
func (patch *ListingPatch) Apply(listing *Listing) {
	if patch.Title != nil {
		listing.Title = *patch.Title
	}
	if patch.Description != nil {
		listing.Description = *patch.Description
	}
	if patch.Price != nil {
		listing.Price = *patch.Price
	}
	if patch.Location != nil {
		listing.Location = *patch.Location
	}
	if patch.Country != nil {
		listing.Country = *patch.Country
	}
}

func stringField(raw map[string]json.RawMessage, key string) *string {
	value, ok := raw[key]
	if !ok {
		return nil
	}
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return nil
	}
	return &s
}

func numberField(raw map[string]json.RawMessage, key string) *float64 {
	value, ok := raw[key]
	if !ok {
		return nil
	}
	var n float64
	if err := json.Unmarshal(value, &n); err != nil {
		return nil
	}
	return &n
}
