package summarization

import "testing"

func TestParseModelOutputValidJSON(t *testing.T) {
	raw := `Here is the analysis you asked for:
{
  "summary": "Brief chat.",
  "keyDecisions": ["ship it"],
  "actionItems": [{"text": "write release notes", "owner": "Ana", "priority": "low"}],
  "keyTopics": ["General"],
  "participants": ["Ana", "Ben"],
  "nextSteps": ["schedule retro"]
}
Let me know if you need anything else.`

	res := ParseModelOutput(raw)
	if res.Summary != "Brief chat." {
		t.Errorf("summary = %q", res.Summary)
	}
	if len(res.KeyDecisions) != 1 || res.KeyDecisions[0] != "ship it" {
		t.Errorf("keyDecisions = %v", res.KeyDecisions)
	}
	if len(res.ActionItems) != 1 || res.ActionItems[0].Owner != "Ana" {
		t.Errorf("actionItems = %v", res.ActionItems)
	}
	if len(res.KeyTopics) != 1 || res.KeyTopics[0] != "General" {
		t.Errorf("keyTopics = %v", res.KeyTopics)
	}
}

func TestParseModelOutputNoJSONFallsBackToText(t *testing.T) {
	res := ParseModelOutput("  The meeting was mostly about lunch plans.\n")
	if res.Summary != "The meeting was mostly about lunch plans." {
		t.Errorf("summary = %q", res.Summary)
	}
	if len(res.KeyDecisions) != 0 || len(res.ActionItems) != 0 {
		t.Error("expected empty structured fields on fallback")
	}
}

func TestParseModelOutputMalformedJSONFallsBackToText(t *testing.T) {
	raw := `{"summary": "unterminated`
	res := ParseModelOutput(raw)
	if res.Summary != raw {
		t.Errorf("summary = %q, want raw text", res.Summary)
	}
}
