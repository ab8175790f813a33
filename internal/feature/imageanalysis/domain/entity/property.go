package entity

import (
	"fmt"

	"github.com/guregu/null/v5"
)

// PropertyKind はブランドプロパティの種類です。宣言順が表示順になります。
type PropertyKind int

const (
	PropertyWebsite PropertyKind = iota
	PropertyCountry
	PropertyInception
	PropertyTwitter
	PropertyFacebook
	PropertyFounders
	PropertyHeadquarters
	PropertyDivisions
	PropertyEmployees
	PropertyGenre
	PropertyAwards
	PropertyDevelopers
	PropertyLanguages
	PropertyLicense
)

var propertyKindNames = [...]string{
	"WEBSITE",
	"COUNTRY",
	"INCEPTION",
	"TWITTER",
	"FACEBOOK",
	"FOUNDERS",
	"HEADQUARTERS",
	"DIVISIONS",
	"EMPLOYEES",
	"GENRE",
	"AWARDS",
	"DEVELOPERS",
	"LANGUAGES",
	"LICENSE",
}

func (k PropertyKind) String() string {
	if k < 0 || int(k) >= len(propertyKindNames) {
		return fmt.Sprintf("PropertyKind(%d)", int(k))
	}
	return propertyKindNames[k]
}

// ParsePropertyKind は名前からPropertyKindを返します。
func ParsePropertyKind(name string) (PropertyKind, bool) {
	for i, n := range propertyKindNames {
		if n == name {
			return PropertyKind(i), true
		}
	}
	return 0, false
}

// Property はブランドの属性値です。ActionURLは外部リンクがある場合のみ値を持ちます。
type Property struct {
	Kind      PropertyKind
	Value     string
	ActionURL null.String
}
