package llm

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestResult_EmptyRecommendationsSerializeAsList(t *testing.T) {
	t.Parallel()

	// A recommendation result with no lines must still carry the list in
	// JSON; consumers distinguish "empty recommendation" from other kinds
	// by the field being present as [].
	res := Result{Kind: KindRecommendation, Recommendations: []string{}}
	body, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(body), `"recommendations":[]`) {
		t.Errorf("expected recommendations:[] in output, got %s", body)
	}
}

func TestErrorResult_ShapesFailure(t *testing.T) {
	t.Parallel()

	res := errorResult(errors.New("boom"))
	if res.Kind != KindError || res.ErrorMessage != "boom" {
		t.Errorf("unexpected error result %#v", res)
	}
}
