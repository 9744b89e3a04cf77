package models

// Envelope statuses.
const (
	StatusSuccess = "Success"
	StatusError   = "Error"
)

// Response is the uniform envelope wrapping every API result.
//
// Message is serialized as null when no message is set, Data as null when
// the operation carries no payload.
type Response struct {
	Status  string  `json:"status"`
	Message *string `json:"message"`
	Data    any     `json:"data"`
}

// NewSuccessResponse builds a "Success" envelope. An empty message is
// rendered as null.
func NewSuccessResponse(data any, message string) Response {
	return Response{Status: StatusSuccess, Message: optionalMessage(message), Data: data}
}

// NewErrorResponse builds an "Error" envelope. An empty message is rendered
// as null.
func NewErrorResponse(data any, message string) Response {
	return Response{Status: StatusError, Message: optionalMessage(message), Data: data}
}

func optionalMessage(message string) *string {
	if message == "" {
		return nil
	}
	return &message
}

// Payloads keyed the same way the API has always shaped them.
type (
	UserPayload struct {
		User User `json:"user"`
	}

	FieldPayload struct {
		Field Field `json:"field"`
	}

	FieldsPayload struct {
		Fields []Field `json:"fields"`
	}

	FieldWithSensorsPayload struct {
		Field FieldWithSensors `json:"field"`
	}

	SensorPayload struct {
		Sensor Sensor `json:"sensor"`
	}

	SensorsPayload struct {
		Sensors []Sensor `json:"sensors"`
	}
)
