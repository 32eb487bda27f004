// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// NotesResponse is the JSON payload returned when listing a user's notes.
type NotesResponse struct {
	Username string `json:"username"`
	Notes    []Note `json:"notes"`
}

// SearchResponse is the JSON payload returned by the note search endpoint.
//
// QueryEntered distinguishes "no query entered" from "query entered but
// nothing matched": an empty or all-whitespace query yields
// QueryEntered=false with no Notes field, while a query with zero matches
// yields QueryEntered=true and an empty Notes slice.
type SearchResponse struct {
	QueryEntered bool   `json:"queryEntered"`
	Notes        []Note `json:"notes,omitempty"`
}
