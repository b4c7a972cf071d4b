package models

import "encoding/json"

// Genres are persisted as a JSON-encoded array so the ordered sequence
// round-trips through the store without loss or reordering.

// EncodeGenres serializes a genre list for storage.
func EncodeGenres(genres []string) (string, error) {
	b, err := json.Marshal(genres)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeGenres deserializes a stored genre column. An empty column
// yields an empty list rather than an error.
func DecodeGenres(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var genres []string
	if err := json.Unmarshal([]byte(raw), &genres); err != nil {
		return nil, err
	}
	return genres, nil
}
