package domain

import "testing"

func TestRequiresCrisisAlert(t *testing.T) {
	cases := map[RiskLevel]bool{
		RiskLow:      false,
		RiskMedium:   false,
		RiskHigh:     true,
		RiskCritical: true,
	}
	for level, want := range cases {
		if got := level.RequiresCrisisAlert(); got != want {
			t.Errorf("RequiresCrisisAlert(%q) = %v, want %v", level, got, want)
		}
	}
}

func TestValidRiskLevel(t *testing.T) {
	for _, s := range []string{"Low", "Medium", "High", "Critical"} {
		if !ValidRiskLevel(s) {
			t.Errorf("ValidRiskLevel(%q) = false", s)
		}
	}
	for _, s := range []string{"", "low", "Severe", "HIGH"} {
		if ValidRiskLevel(s) {
			t.Errorf("ValidRiskLevel(%q) = true", s)
		}
	}
}

func TestPersonaCatalog(t *testing.T) {
	if _, ok := PersonaByID(DefaultPersona().ID); !ok {
		t.Fatal("default persona missing from catalog")
	}
	if _, ok := PersonaByID("imposter"); ok {
		t.Fatal("unknown persona resolved")
	}
	for _, p := range Personas {
		if p.PromptTemplate == "" {
			t.Errorf("persona %q has no behavioral contract", p.ID)
		}
	}
}

func TestVoiceCatalog(t *testing.T) {
	if !ValidVoice(DefaultVoice) {
		t.Fatal("default voice not in catalog")
	}
	if ValidVoice("HAL9000") {
		t.Fatal("unknown voice accepted")
	}
}

func TestParseNewsCategoryDefaultsToWellness(t *testing.T) {
	if got := ParseNewsCategory("Research"); got != NewsResearch {
		t.Errorf("got %q", got)
	}
	if got := ParseNewsCategory("Gossip"); got != NewsWellness {
		t.Errorf("got %q, want Wellness", got)
	}
	if got := ParseNewsCategory(""); got != NewsWellness {
		t.Errorf("got %q, want Wellness", got)
	}
}
