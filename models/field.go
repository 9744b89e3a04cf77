package models

import "time"

// Field is a named grouping of sensors.
type Field struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Field model.
func (f Field) TableName() string {
	return "fields"
}

// FieldWithSensors is a field together with every sensor that belongs to it.
type FieldWithSensors struct {
	Field
	Sensors []Sensor `json:"sensors"`
}

// FieldRequest is the body of POST /fields and PATCH /fields/{id}.
// Name is required in both cases.
type FieldRequest struct {
	Name string `json:"name"`
}
