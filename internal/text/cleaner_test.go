package text

import "testing"

func TestClean_StripsMarkersAndPunctuation(t *testing.T) {
	c := NewCleaner([]string{"INCONNU", "NON SPÉCIFIÉ", "NON SPECIFIE", "?"})

	cases := []struct {
		in   string
		want string
	}{
		{"  Johannes? de $Parisiis.  ", "Johannes de Parisiis"},
		{"Guillaume de *Machaut;", "Guillaume de Machaut"},
		{"Petrus (?)", "Petrus"},
		{"a   b    c", "a b c"},
	}

	for _, tc := range cases {
		got, ok := c.Clean(tc.in)
		if !ok {
			t.Errorf("Clean(%q): expected ok, got absent", tc.in)
			continue
		}
		if got != tc.want {
			t.Errorf("Clean(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestClean_StopWordsAndEmpty(t *testing.T) {
	c := NewCleaner([]string{"INCONNU", "NON SPÉCIFIÉ", "NON SPECIFIE", "?"})

	for _, in := range []string{"", "   ", "?", "INCONNU", "inconnu", "non spécifié"} {
		if got, ok := c.Clean(in); ok {
			t.Errorf("Clean(%q): expected absent, got %q", in, got)
		}
	}
}

func TestCleanInstitution(t *testing.T) {
	c := NewCleaner(nil)

	cases := []struct {
		in   string
		want string
	}{
		{"Sorbonne %1350-1360%", "Sorbonne"},
		{"AngleterreNation", "Angleterre Nation"},
		{"Université de Paris (?)", "Université de Paris"},
		{"Collège de Navarre).,", "Collège de Navarre"},
		{"Faculté=des arts", "Faculté des arts"},
	}

	for _, tc := range cases {
		got, ok := c.CleanInstitution(tc.in)
		if !ok {
			t.Errorf("CleanInstitution(%q): expected ok, got absent", tc.in)
			continue
		}
		if got != tc.want {
			t.Errorf("CleanInstitution(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	if got, ok := c.CleanInstitution(""); ok {
		t.Errorf("CleanInstitution(\"\"): expected absent, got %q", got)
	}
}

func TestCleanPersonName(t *testing.T) {
	c := NewCleaner([]string{"INCONNU"})

	cases := []struct {
		in   string
		want string
	}{
		{"Dupont, Jean", "Dupont"},
		{"$Nicolas de Lyra.", "Nicolas de Lyra"},
		{"Pierre d'Ailly;", "Pierre d'Ailly"},
	}

	for _, tc := range cases {
		got, ok := c.CleanPersonName(tc.in)
		if !ok {
			t.Errorf("CleanPersonName(%q): expected ok, got absent", tc.in)
			continue
		}
		if got != tc.want {
			t.Errorf("CleanPersonName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	if got, ok := c.CleanPersonName("INCONNU"); ok {
		t.Errorf("CleanPersonName(stop word): expected absent, got %q", got)
	}
}

func TestStripUncertainty(t *testing.T) {
	c := NewCleaner(nil)

	got, uncertain, ok := c.StripUncertainty("Parisius?")
	if !ok || !uncertain || got != "Parisius" {
		t.Errorf("StripUncertainty(\"Parisius?\") = (%q, %v, %v), want (\"Parisius\", true, true)", got, uncertain, ok)
	}

	got, uncertain, ok = c.StripUncertainty("Parisius")
	if !ok || uncertain || got != "Parisius" {
		t.Errorf("StripUncertainty(\"Parisius\") = (%q, %v, %v), want (\"Parisius\", false, true)", got, uncertain, ok)
	}

	_, uncertain, ok = c.StripUncertainty("?")
	if ok || !uncertain {
		t.Errorf("StripUncertainty(\"?\") = (_, %v, %v), want uncertain and absent", uncertain, ok)
	}

	_, _, ok = c.StripUncertainty("  ")
	if ok {
		t.Error("StripUncertainty(blank): expected absent")
	}
}

func TestNormalizeKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Théologie", "theologie"},
		{"  DROIT Canonique  ", "droit canonique"},
		{"médecine", "medecine"},
	}

	for _, tc := range cases {
		if got := NormalizeKey(tc.in); got != tc.want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsUncertain(t *testing.T) {
	if !IsUncertain([]string{"Parisius", "Oxonia?"}) {
		t.Error("Expected uncertainty to be detected")
	}
	if IsUncertain([]string{"Parisius", "Oxonia"}) {
		t.Error("Expected no uncertainty")
	}
	if IsUncertain(nil) {
		t.Error("Expected no uncertainty on empty input")
	}
}
