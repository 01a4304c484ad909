package codec

import "testing"

func TestJSON_RoundTrip(t *testing.T) {
	type payload struct {
		Name  string   `json:"name"`
		Count int      `json:"count"`
		Tags  []string `json:"tags"`
	}
	c := JSON{}

	in := payload{Name: "v1", Count: 3, Tags: []string{"a", "b"}}
	text, err := c.Marshal(in)
	if err != nil {
		t.Fatalf("unexpected marshal err: %v", err)
	}

	var out payload
	if err := c.Unmarshal(text, &out); err != nil {
		t.Fatalf("unexpected unmarshal err: %v", err)
	}
	if out.Name != in.Name || out.Count != in.Count || len(out.Tags) != 2 {
		t.Fatalf("round trip mismatch: %+v vs %+v", in, out)
	}
}

func TestJSON_UnmarshalFailure(t *testing.T) {
	c := JSON{}
	var v map[string]any
	if err := c.Unmarshal("not json", &v); err == nil {
		t.Fatalf("expected error for malformed input")
	}
}

func TestJSON_MarshalFailure(t *testing.T) {
	c := JSON{}
	if _, err := c.Marshal(make(chan int)); err == nil {
		t.Fatalf("expected error for unmarshalable value")
	}
}
