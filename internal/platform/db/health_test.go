package db

import (
	"encoding/json"
	"testing"
)

func TestPoolSnapshot_JSONShape(t *testing.T) {
	s := poolSnapshot{
		TotalConns:    4,
		IdleConns:     3,
		AcquiredConns: 1,
		MaxConns:      20,
	}

	body, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]int32
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := map[string]int32{
		"total_conns":    4,
		"idle_conns":     3,
		"acquired_conns": 1,
		"max_conns":      20,
	}
	for k, v := range want {
		if decoded[k] != v {
			t.Errorf("field %s = %d, want %d", k, decoded[k], v)
		}
	}
	if len(decoded) != len(want) {
		t.Errorf("unexpected fields in payload: %s", body)
	}
}
