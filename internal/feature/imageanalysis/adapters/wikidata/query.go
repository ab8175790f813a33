package wikidata

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// brandQueryTemplate はブランド情報を取得するSPARQLクエリです。
// %[1]s はラベルのリテラル、%[2]s はラベル解決の言語優先順位です。
//
// 対象は企業（Q4830453）・バンド（Q215380）・ソフトウェア（Q7397）のいずれかのサブクラスのインスタンスです。
// 複数値を取り得るプロパティはサブクエリでGROUP_CONCATし、カンマ区切りの1値にまとめます。
const brandQueryTemplate = `SELECT DISTINCT ?brand ?website ?logo ?country ?inception ?twitter ?facebook ?founders ?headquarters ?divisions ?employees ?genre ?awards ?developers ?languages ?licenses
WHERE {
  ?brand rdfs:label %[1]s .
  { ?brand wdt:P31/wdt:P279* wd:Q4830453 . }
  UNION { ?brand wdt:P31/wdt:P279* wd:Q215380 . }
  UNION { ?brand wdt:P31/wdt:P279* wd:Q7397 . }
  OPTIONAL { ?brand wdt:P856 ?website . }
  OPTIONAL { ?brand wdt:P154 ?logo . }
  OPTIONAL { ?brand wdt:P17 ?country . }
  OPTIONAL { ?brand wdt:P495 ?country . }
  OPTIONAL { ?brand wdt:P1128 ?employees . }
  OPTIONAL { ?brand wdt:P571 ?inception . }
  OPTIONAL { ?brand wdt:P2002 ?twitter . }
  OPTIONAL { ?brand wdt:P2013 ?facebook . }
  OPTIONAL { ?brand wdt:P136 ?genre . }
  SERVICE wikibase:label {
    bd:serviceParam wikibase:language "%[2]s" .
    ?country rdfs:label ?country .
    ?genre rdfs:label ?genre
  }
  {
    SELECT
      (GROUP_CONCAT(DISTINCT(?founderLabel); separator=", ") AS ?founders)
      (GROUP_CONCAT(DISTINCT(?industryLabel); separator=", ") AS ?divisions)
      (GROUP_CONCAT(DISTINCT(?headquarterLabel); separator=", ") AS ?headquarters)
      (GROUP_CONCAT(DISTINCT(?developerLabel); separator=", ") AS ?developers)
      (GROUP_CONCAT(DISTINCT(?languageLabel); separator=", ") AS ?languages)
      (GROUP_CONCAT(DISTINCT(?licenseLabel); separator=", ") AS ?licenses)
      (GROUP_CONCAT(DISTINCT(?awardLabel); separator=", ") AS ?awards)
    WHERE {
      ?brand rdfs:label %[1]s .
      { ?brand wdt:P31/wdt:P279* wd:Q4830453 . }
      UNION { ?brand wdt:P31/wdt:P279* wd:Q215380 . }
      UNION { ?brand wdt:P31/wdt:P279* wd:Q7397 . }
      OPTIONAL { ?brand wdt:P112 ?founder . }
      OPTIONAL { ?brand wdt:P159 ?headquartersLocation . }
      OPTIONAL { ?brand wdt:P452 ?industry . }
      OPTIONAL { ?brand wdt:P178 ?developer . }
      OPTIONAL { ?brand wdt:P277 ?language . }
      OPTIONAL { ?brand wdt:P275 ?license . }
      OPTIONAL { ?brand wdt:P166 ?award . }
      SERVICE wikibase:label {
        bd:serviceParam wikibase:language "%[2]s" .
        ?founder rdfs:label ?founderLabel .
        ?industry rdfs:label ?industryLabel .
        ?headquartersLocation rdfs:label ?headquarterLabel .
        ?developer rdfs:label ?developerLabel .
        ?language rdfs:label ?languageLabel .
        ?license rdfs:label ?licenseLabel .
        ?award rdfs:label ?awardLabel
      }
    }
  }
}
ORDER BY ?brand
LIMIT 1`

var literalEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// BuildBrandQuery はブランド名とラベル言語から検索クエリを組み立てます。
// ブランド名はSPARQLの文字列リテラルとしてエスケープされ、labelLangのタグ付きリテラルとして照合されます。
func BuildBrandQuery(brandName string, labelLang string, languagePreference string) string {
	literal := fmt.Sprintf(`"%s"@%s`, literalEscaper.Replace(brandName), labelLang)
	return fmt.Sprintf(brandQueryTemplate, literal, languagePreference)
}

// LanguagePreference はラベル解決に使う言語の優先順位を返します。
//
//   - 英語の場合は "en"
//   - 地域が明示されている場合は "pt-BR,en" のように言語-地域と英語
//   - それ以外は "pt,en" のように言語と英語
func LanguagePreference(tag language.Tag) string {
	base, _ := tag.Base()
	if base.String() == "en" {
		return "en"
	}
	if region, conf := tag.Region(); conf == language.Exact {
		return fmt.Sprintf("%s-%s,en", base, region)
	}
	return fmt.Sprintf("%s,en", base)
}
