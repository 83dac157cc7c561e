package wikidata

import (
	"fmt"
	"strings"
)

// Wikidata ontology constants.
const (
	humanItem          = "Q5"     // instance-of target for persons
	nonBinaryItem      = "Q48270" // the non-binary gender concept
	genderProperty     = "P21"
	instanceOfProperty = "P31"
)

// peopleQuery builds the SPARQL query selecting every person whose gender
// property transitively specializes the non-binary concept, together with
// English gender label text and one optional sitelink per tracked language.
// Multiple gender statements aggregate into one comma-joined string.
func peopleQuery(langs []string) string {
	var b strings.Builder

	b.WriteString("SELECT DISTINCT ?person ?personLabel ?personDescription ")
	b.WriteString(`(group_concat(distinct ?genderLabel;separator=", ") as ?genders)`)
	for _, lang := range langs {
		fmt.Fprintf(&b, " ?%swiki", lang)
	}
	b.WriteString(" WHERE {\n")
	fmt.Fprintf(&b, "  ?person wdt:%s wd:%s .\n", instanceOfProperty, humanItem)
	fmt.Fprintf(&b, "  ?person wdt:%s/wdt:P279* wd:%s .\n", genderProperty, nonBinaryItem)
	fmt.Fprintf(&b, "  ?person wdt:%s ?gender .\n", genderProperty)
	for _, lang := range langs {
		b.WriteString(sitelinkBlock(lang, "?person", fmt.Sprintf("?%swiki", lang)))
	}
	b.WriteString("  SERVICE wikibase:label { bd:serviceParam wikibase:language \"[AUTO_LANGUAGE],mul,en\". }\n")
	b.WriteString("  ?gender rdfs:label ?genderLabel FILTER (lang(?genderLabel) = \"en\") .\n")
	b.WriteString("} group by ?person ?personLabel ?personDescription")
	for _, lang := range langs {
		fmt.Fprintf(&b, " ?%swiki", lang)
	}

	return b.String()
}

// titlesQuery builds the VALUES-based lookup resolving article titles of one
// language edition to their items, labels, and gender statements. Used to
// backfill entity data for titles only the category fetch surfaced.
func titlesQuery(lang string, titles []string) string {
	var b strings.Builder

	b.WriteString("SELECT DISTINCT ?person ?personLabel ?personDescription ")
	b.WriteString(`(group_concat(distinct ?genderLabel;separator=", ") as ?genders)`)
	fmt.Fprintf(&b, " ?%swiki WHERE {\n", lang)
	fmt.Fprintf(&b, "  VALUES ?%swiki {", lang)
	for _, title := range titles {
		fmt.Fprintf(&b, " %s@%s", sparqlString(title), lang)
	}
	b.WriteString(" }\n")
	b.WriteString(sitelinkValueBlock(lang))
	fmt.Fprintf(&b, "  OPTIONAL { ?person wdt:%s ?gender .\n", genderProperty)
	b.WriteString("    ?gender rdfs:label ?genderLabel FILTER (lang(?genderLabel) = \"en\") . }\n")
	b.WriteString("  SERVICE wikibase:label { bd:serviceParam wikibase:language \"[AUTO_LANGUAGE],mul,en\". }\n")
	fmt.Fprintf(&b, "} group by ?person ?personLabel ?personDescription ?%swiki", lang)

	return b.String()
}

// sitelinkBlock emits the OPTIONAL pattern linking an item to its article
// on one language edition.
func sitelinkBlock(lang, item, titleVar string) string {
	var b strings.Builder
	b.WriteString("  OPTIONAL {\n")
	fmt.Fprintf(&b, "    %s ^schema:about ?article%s .\n", item, lang)
	fmt.Fprintf(&b, "    ?article%s schema:isPartOf <https://%s.wikipedia.org/>;\n", lang, lang)
	fmt.Fprintf(&b, "               schema:name %s .\n", titleVar)
	b.WriteString("  }\n")
	return b.String()
}

// sitelinkValueBlock emits the non-optional sitelink pattern for the
// VALUES-based title lookup.
func sitelinkValueBlock(lang string) string {
	var b strings.Builder
	b.WriteString("  ?person ^schema:about ?article .\n")
	fmt.Fprintf(&b, "  ?article schema:isPartOf <https://%s.wikipedia.org/>;\n", lang)
	fmt.Fprintf(&b, "           schema:name ?%swiki .\n", lang)
	return b.String()
}

// sparqlString quotes a literal for inclusion in a query, escaping
// backslashes and double quotes. Titles are user-supplied text.
func sparqlString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
