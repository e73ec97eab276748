package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Todo is the domain model for a single task record.
// The JSON shape (id/text/completed) is the on-disk contract; there is no
// version field, so the loader has to cope with whatever it finds.
type Todo struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Valid reports whether a decoded record is usable: a positive id and a
// non-empty title after trimming.
func (t Todo) Valid() bool {
	return t.ID > 0 && strings.TrimSpace(t.Text) != ""
}

// DecodeList decodes a JSON array of todo records element by element.
// Elements that are not objects, fail to decode, or fail Valid are dropped;
// the survivors keep their original order. dropped counts the casualties so
// the caller can log them. A value that is not a JSON array at all is a
// decode error.
func DecodeList(data []byte) (todos []Todo, dropped int, err error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, fmt.Errorf("json unmarshal: %w", err)
	}
	todos = make([]Todo, 0, len(raw))
	for _, el := range raw {
		var t Todo
		if err := json.Unmarshal(el, &t); err != nil || !t.Valid() {
			dropped++
			continue
		}
		todos = append(todos, t)
	}
	return todos, dropped, nil
}
