package wikidata

import (
	"strings"
	"testing"

	"golang.org/x/text/language"
)

func TestLanguagePreference(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tag  language.Tag
		want string
	}{
		{language.English, "en"},
		{language.MustParse("en-GB"), "en"},
		{language.MustParse("pt-BR"), "pt-BR,en"},
		{language.MustParse("pt"), "pt,en"},
		{language.MustParse("fr"), "fr,en"},
		{language.MustParse("de-AT"), "de-AT,en"},
	}

	for _, tt := range tests {
		t.Run(tt.tag.String(), func(t *testing.T) {
			t.Parallel()
			if got := LanguagePreference(tt.tag); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestBuildBrandQuery(t *testing.T) {
	t.Parallel()

	q := BuildBrandQuery("Google", "en", "en")

	mustContain := []string{
		`?brand rdfs:label "Google"@en .`,
		`wd:Q4830453`,
		`wd:Q215380`,
		`wd:Q7397`,
		`wdt:P856 ?website`,
		`wdt:P154 ?logo`,
		`wdt:P17 ?country`,
		`wdt:P495 ?country`,
		`wdt:P1128 ?employees`,
		`wdt:P571 ?inception`,
		`wdt:P2002 ?twitter`,
		`wdt:P2013 ?facebook`,
		`wdt:P136 ?genre`,
		`wdt:P112 ?founder`,
		`wdt:P159 ?headquartersLocation`,
		`wdt:P452 ?industry`,
		`wdt:P178 ?developer`,
		`wdt:P277 ?language`,
		`wdt:P275 ?license`,
		`wdt:P166 ?award`,
		`bd:serviceParam wikibase:language "en"`,
		`separator=", "`,
		`ORDER BY ?brand`,
		`LIMIT 1`,
	}
	for _, s := range mustContain {
		if !strings.Contains(q, s) {
			t.Errorf("expected query to contain %q", s)
		}
	}
	if n := strings.Count(q, `rdfs:label "Google"@en`); n != 2 {
		t.Errorf("expected brand label to appear twice, got %d", n)
	}
	if strings.Contains(q, "%!") {
		t.Errorf("query has formatting errors:\n%s", q)
	}
}

func TestBuildBrandQuery_EscapesLiteral(t *testing.T) {
	t.Parallel()

	q := BuildBrandQuery("Bad\" } DROP \\ brand\n", "pt", "pt-BR,en")

	if !strings.Contains(q, `"Bad\" } DROP \\ brand\n"@pt`) {
		t.Errorf("expected escaped literal in query:\n%s", q)
	}
	if !strings.Contains(q, `wikibase:language "pt-BR,en"`) {
		t.Error("expected language preference in query")
	}
}
