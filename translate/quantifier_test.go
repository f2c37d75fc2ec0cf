package translate

import "testing"

func TestQuantifierNegate(t *testing.T) {
	pairs := []numberPair{scalarPair(-5)}
	out, err := applyQuantifiers([]quantifierBinding{{name: "negate", indices: []int{1}}}, pairs)
	if err != nil {
		t.Fatal(err)
	}
	if got := out[0].lo.format(); got != "5" {
		t.Errorf("negate(-5) = %q, want 5", got)
	}
}

func TestQuantifierPerMinuteToPerSecond2dp(t *testing.T) {
	pairs := []numberPair{scalarPair(90)}
	out, err := applyQuantifiers([]quantifierBinding{{name: "per_minute_to_per_second_2dp", indices: []int{1}}}, pairs)
	if err != nil {
		t.Fatal(err)
	}
	if got := out[0].lo.format(); got != "1.50" {
		t.Errorf("per_minute_to_per_second_2dp(90) = %q, want 1.50", got)
	}
}

func TestQuantifierAppliesPointwiseOnRanges(t *testing.T) {
	pairs := []numberPair{{lo: intNumber(10), hi: intNumber(20), isRange: true}}
	out, err := applyQuantifiers([]quantifierBinding{{name: "divide_by_one_hundred", indices: []int{1}}}, pairs)
	if err != nil {
		t.Fatal(err)
	}
	if got := out[0].lo.format(); got != "0.1" {
		t.Errorf("lo = %q, want 0.1", got)
	}
	if got := out[0].hi.format(); got != "0.2" {
		t.Errorf("hi = %q, want 0.2", got)
	}
}

func TestApplyQuantifiersUnknownNameErrors(t *testing.T) {
	pairs := []numberPair{scalarPair(5)}
	if _, err := applyQuantifiers([]quantifierBinding{{name: "not_a_real_quantifier", indices: []int{1}}}, pairs); !IsKind(err, DK_InvalidQuantifier) {
		t.Fatalf("expected InvalidQuantifier error, got %v", err)
	}
}

func TestIsKnownQuantifierRegistryMembership(t *testing.T) {
	for _, name := range []string{
		"deciseconds_to_seconds", "divide_by_one_hundred", "per_minute_to_per_second",
		"milliseconds_to_seconds", "negate", "divide_by_one_hundred_and_negate",
		"old_leech_percent", "old_leech_permyriad", "per_minute_to_per_second_0dp",
		"per_minute_to_per_second_2dp", "milliseconds_to_seconds_0dp", "milliseconds_to_seconds_2dp",
	} {
		if !isKnownQuantifier(name) {
			t.Errorf("expected %q to be a known quantifier", name)
		}
	}
	if isKnownQuantifier("nonexistent") {
		t.Error("expected nonexistent to not be a known quantifier")
	}
}
