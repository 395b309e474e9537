package models

import (
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Timestamp holds a stored point in time. Documents written by older clients
// keep their timestamps as plain strings, so both forms are preserved as read.
type Timestamp struct {
	t      time.Time
	text   string
	isTime bool
	set    bool
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t: t.UTC(), isTime: true, set: true}
}

func TextTimestamp(s string) Timestamp {
	return Timestamp{text: s, set: true}
}

// Time returns the native datetime, if the stored value was one.
func (ts Timestamp) Time() (time.Time, bool) {
	return ts.t, ts.isTime
}

func (ts Timestamp) IsZero() bool {
	return !ts.set
}

// String renders datetimes as ISO-8601 with a Z suffix and returns text
// timestamps unchanged.
func (ts Timestamp) String() string {
	switch {
	case !ts.set:
		return ""
	case ts.isTime:
		layout := "2006-01-02T15:04:05"
		if ts.t.Nanosecond() != 0 {
			layout = "2006-01-02T15:04:05.000000"
		}
		return ts.t.Format(layout) + "Z"
	default:
		return ts.text
	}
}

// Format applies layout to datetimes; text timestamps are returned as stored.
func (ts Timestamp) Format(layout string) string {
	if ts.isTime {
		return ts.t.Format(layout)
	}
	return ts.text
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if !ts.set {
		return []byte("null"), nil
	}
	return json.Marshal(ts.String())
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*ts = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		*ts = NewTimestamp(t)
		return nil
	}
	*ts = TextTimestamp(s)
	return nil
}

func (ts Timestamp) MarshalBSONValue() (bsontype.Type, []byte, error) {
	switch {
	case !ts.set:
		return bsontype.Null, nil, nil
	case ts.isTime:
		return bson.MarshalValue(ts.t)
	default:
		return bson.MarshalValue(ts.text)
	}
}

func (ts *Timestamp) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.DateTime:
		*ts = NewTimestamp(raw.Time())
	case bsontype.String:
		*ts = TextTimestamp(raw.StringValue())
	case bsontype.Null, bsontype.Undefined:
		*ts = Timestamp{}
	default:
		return fmt.Errorf("timestamp: unsupported BSON type %s", t)
	}
	return nil
}
