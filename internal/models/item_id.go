package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ItemID is a GitHub issue or pull request id as sent by the dashboard. It
// may arrive as a JSON number or a string and is echoed back in the same form.
type ItemID struct {
	raw     string
	numeric bool
}

func NumericID(n int64) ItemID {
	return ItemID{raw: strconv.FormatInt(n, 10), numeric: true}
}

func StringID(s string) ItemID {
	return ItemID{raw: s}
}

func (id ItemID) String() string {
	return id.raw
}

func (id ItemID) IsZero() bool {
	return id.raw == ""
}

func (id ItemID) MarshalJSON() ([]byte, error) {
	if id.numeric {
		return []byte(id.raw), nil
	}
	return json.Marshal(id.raw)
}

func (id *ItemID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ItemID{}
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = StringID(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("id must be a number or a string: %w", err)
		}
		if v, err := n.Int64(); err == nil {
			*id = NumericID(v)
			return nil
		}
		*id = ItemID{raw: n.String(), numeric: true}
		return nil
	}
}
