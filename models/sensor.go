// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Sensor is a measurement device placed on a [Field].
type Sensor struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Status    string    `json:"status"`
	FieldID   int64     `json:"field_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Sensor model.
func (s Sensor) TableName() string {
	return "sensors"
}

// SensorCreateRequest is the body of POST /sensors.
//
// Numeric fields are pointers so that an absent value can be told apart from
// a zero coordinate or id.
type SensorCreateRequest struct {
	Name    string   `json:"name"`
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
	Status  string   `json:"status"`
	FieldID *int64   `json:"field_id"`
}

// SensorUpdateRequest is the body of PATCH /sensors/{id}.
// Name is required; every other nil field keeps its stored value.
type SensorUpdateRequest struct {
	Name    string   `json:"name"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
	Status  *string  `json:"status,omitempty"`
	FieldID *int64   `json:"field_id,omitempty"`
}
