package eagle

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// Status tags the variant of an Envelope.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

const defaultErrorMessage = "Eagle API reported an error"

// Envelope is the result of every operation: either a success payload or an
// error message, never both.
type Envelope struct {
	Status  Status
	Data    json.RawMessage
	Message string
}

// Success wraps v as the payload of a success envelope. A value that cannot be
// encoded produces an error envelope instead.
func Success(v any) Envelope {
	b, err := json.Marshal(v)
	if err != nil {
		return Failure("failed to encode response: %v", err)
	}
	return SuccessRaw(b)
}

// SuccessRaw uses data as the payload without re-encoding it.
func SuccessRaw(data json.RawMessage) Envelope {
	if len(data) == 0 {
		data = json.RawMessage("null")
	}
	return Envelope{Status: StatusSuccess, Data: data}
}

// Failure builds an error envelope. An empty message is replaced so the
// message is never blank.
func Failure(format string, args ...any) Envelope {
	msg := fmt.Sprintf(format, args...)
	if msg == "" {
		msg = defaultErrorMessage
	}
	return Envelope{Status: StatusError, Message: msg}
}

func (e Envelope) OK() bool { return e.Status == StatusSuccess }

// Err returns nil for a success envelope and the message as an error otherwise.
func (e Envelope) Err() error {
	if e.OK() {
		return nil
	}
	return errors.New(e.Message)
}

// Field reads path (gjson syntax) from the payload. Missing fields yield a
// result whose Exists reports false.
func (e Envelope) Field(path string) gjson.Result {
	if !e.OK() {
		return gjson.Result{}
	}
	return gjson.GetBytes(e.Data, path)
}

type successJSON struct {
	Status Status          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

type errorJSON struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
}

func (e Envelope) MarshalJSON() ([]byte, error) {
	if e.OK() {
		data := e.Data
		if len(data) == 0 {
			data = json.RawMessage("null")
		}
		return json.Marshal(successJSON{Status: StatusSuccess, Data: data})
	}
	msg := e.Message
	if msg == "" {
		msg = defaultErrorMessage
	}
	return json.Marshal(errorJSON{Status: StatusError, Message: msg})
}

func (e *Envelope) UnmarshalJSON(b []byte) error {
	if !gjson.ValidBytes(b) {
		return errors.New("envelope: invalid json")
	}
	*e = normalize(b)
	return nil
}

// normalize maps an upstream JSON body onto an Envelope. Eagle answers with
// {"status":"success","data":...} or {"status":"error","message":...}; any
// other valid JSON is treated as a bare success payload.
func normalize(body []byte) Envelope {
	switch gjson.GetBytes(body, "status").String() {
	case string(StatusSuccess):
		return SuccessRaw(json.RawMessage(gjson.GetBytes(body, "data").Raw))
	case string(StatusError):
		return Failure("%s", gjson.GetBytes(body, "message").String())
	default:
		return SuccessRaw(json.RawMessage(body))
	}
}
