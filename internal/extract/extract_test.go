package extract

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestFirstValue_BareObject(t *testing.T) {
	raw, ok := FirstValue(`{"score": 80, "verdict": "good"}`)
	if !ok {
		t.Fatal("expected a value")
	}
	if string(raw) != `{"score": 80, "verdict": "good"}` {
		t.Fatalf("unexpected span: %s", raw)
	}
}

func TestFirstValue_SurroundedByProse(t *testing.T) {
	text := "Sure! Here is my evaluation of the answer:\n" +
		`{"score": 65, "covered": ["testing"]}` +
		"\nLet me know if you need anything else."

	raw, ok := FirstValue(text)
	if !ok {
		t.Fatal("expected a value")
	}

	var got map[string]any
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("extracted span is not valid JSON: %v", err)
	}
	if got["score"] != float64(65) {
		t.Fatalf("got score %v, want 65", got["score"])
	}
}

func TestFirstValue_MarkdownFence(t *testing.T) {
	text := "```json\n{\"questions\": [{\"id\": \"q_1\"}]}\n```"

	raw, ok := FirstValue(text)
	if !ok {
		t.Fatal("expected a value")
	}
	want := `{"questions": [{"id": "q_1"}]}`
	if string(raw) != want {
		t.Fatalf("got %s, want %s", raw, want)
	}
}

func TestFirstValue_NestedMatchesDirectParse(t *testing.T) {
	embedded := `{"a": {"b": [1, 2, {"c": "d"}]}, "e": []}`
	text := "prefix " + embedded + " suffix"

	raw, ok := FirstValue(text)
	if !ok {
		t.Fatal("expected a value")
	}

	var direct, extracted any
	if err := json.Unmarshal([]byte(embedded), &direct); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(raw, &extracted); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(direct, extracted) {
		t.Fatalf("extracted value differs from direct parse:\n%v\n%v", extracted, direct)
	}
}

func TestFirstValue_Array(t *testing.T) {
	raw, ok := FirstValue(`The list: [1, 2, 3] as requested.`)
	if !ok {
		t.Fatal("expected a value")
	}
	if string(raw) != `[1, 2, 3]` {
		t.Fatalf("unexpected span: %s", raw)
	}
}

func TestFirstValue_ObjectPreferredOverEarlierArray(t *testing.T) {
	// The object scan runs first even when an array opens earlier.
	raw, ok := FirstValue(`[ignored] {"kept": true}`)
	if !ok {
		t.Fatal("expected a value")
	}
	if string(raw) != `{"kept": true}` {
		t.Fatalf("unexpected span: %s", raw)
	}
}

func TestFirstValue_TruncatedNeverBalances(t *testing.T) {
	if _, ok := FirstValue(`{"score": 80, "covered": ["a", "b"`); ok {
		t.Fatal("expected absence for truncated input")
	}
}

func TestFirstValue_MismatchedCloser(t *testing.T) {
	// '}' closing a '[' aborts the scan; no flat {...} exists either.
	if _, ok := FirstValue(`[1, 2}`); ok {
		t.Fatal("expected absence for mismatched brackets")
	}
}

func TestFirstValue_MismatchFallsBackToFlatObject(t *testing.T) {
	// The object scan dies on the mismatched ']' but a flat span survives.
	text := `{"a": 1]  {"b": 2}`
	raw, ok := FirstValue(text)
	if !ok {
		t.Fatal("expected fallback value")
	}
	if string(raw) != `{"b": 2}` {
		t.Fatalf("unexpected span: %s", raw)
	}
}

func TestFirstValue_NoValue(t *testing.T) {
	for _, text := range []string{"", "plain prose only", "a < b > c"} {
		if _, ok := FirstValue(text); ok {
			t.Errorf("expected absence for %q", text)
		}
	}
}

func TestFirstValue_UnparsableCandidate(t *testing.T) {
	if _, ok := FirstValue(`{not valid json}`); ok {
		t.Fatal("expected absence for unparsable candidate")
	}
}

func TestObject_RejectsArray(t *testing.T) {
	if _, ok := Object(`[1, 2, 3]`); ok {
		t.Fatal("expected absence: arrays are not objects")
	}
}

func TestInto_ShapeMismatch(t *testing.T) {
	var dst struct {
		Score int `json:"score"`
	}
	if !Into(`noise {"score": 42} noise`, &dst) {
		t.Fatal("expected success")
	}
	if dst.Score != 42 {
		t.Fatalf("got %d, want 42", dst.Score)
	}

	if Into(`{"score": "not a number"}`, &dst) {
		t.Fatal("expected failure on shape mismatch")
	}
}
