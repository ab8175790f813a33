package wikidata

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/guregu/null/v5"
	"github.com/tidwall/gjson"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"cloudvision_backend/internal/feature/imageanalysis/domain/entity"
)

const (
	inceptionLayout = "2006-01-02T15:04:05Z"
	inceptionFormat = "2006-01-02"

	twitterURLFormat  = "https://twitter.com/%s"
	facebookURLFormat = "https://facebook.com/%s"
)

// BrandInfo はSPARQLの結果1行分のブランド情報です。
// 各アクセサは独立して値を解釈し、欠落・不正な値は無効なnull値として返します。
type BrandInfo struct {
	binding gjson.Result
	locale  language.Tag
}

// newBrandInfo は results.bindings の1要素からBrandInfoを生成します。
func newBrandInfo(binding gjson.Result, locale language.Tag) *BrandInfo {
	return &BrandInfo{binding: binding, locale: locale}
}

// Locale はラベル解決に使われたロケールを返します。
func (b *BrandInfo) Locale() language.Tag { return b.locale }

func (b *BrandInfo) value(name string) null.String {
	v := b.binding.Get(name + ".value")
	if !v.Exists() || v.Type != gjson.String {
		return null.String{}
	}
	s := strings.TrimSpace(v.String())
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}

// Entity はWikidataエンティティのURIを返します。
func (b *BrandInfo) Entity() null.String { return b.value("brand") }

func (b *BrandInfo) Website() null.String { return b.value("website") }

func (b *BrandInfo) LogoURL() null.String { return b.value("logo") }

func (b *BrandInfo) Country() null.String { return b.value("country") }

func (b *BrandInfo) Twitter() null.String { return b.value("twitter") }

func (b *BrandInfo) Facebook() null.String { return b.value("facebook") }

func (b *BrandInfo) Founders() null.String { return b.value("founders") }

func (b *BrandInfo) Headquarters() null.String { return b.value("headquarters") }

func (b *BrandInfo) Divisions() null.String { return b.value("divisions") }

func (b *BrandInfo) Genre() null.String { return b.value("genre") }

func (b *BrandInfo) Awards() null.String { return b.value("awards") }

func (b *BrandInfo) Developers() null.String { return b.value("developers") }

func (b *BrandInfo) Languages() null.String { return b.value("languages") }

func (b *BrandInfo) Licenses() null.String { return b.value("licenses") }

// Inception は設立日時を返します。形式が不正な場合は無効な値です。
func (b *BrandInfo) Inception() null.Time {
	s := b.value("inception")
	if !s.Valid {
		return null.Time{}
	}
	t, err := time.Parse(inceptionLayout, s.String)
	if err != nil {
		return null.Time{}
	}
	return null.TimeFrom(t)
}

// Employees は従業員数を返します。数値でない場合は無効な値です。
func (b *BrandInfo) Employees() null.Int {
	s := b.value("employees")
	if !s.Valid {
		return null.Int{}
	}
	f, err := strconv.ParseFloat(strings.TrimPrefix(s.String, "+"), 64)
	if err != nil {
		return null.Int{}
	}
	return null.IntFrom(int64(f))
}

// Properties は表示順に並べたプロパティ一覧を返します。値のないプロパティは含みません。
// 従業員数はlocaleの桁区切りで整形し、0以下の場合は含みません。
func (b *BrandInfo) Properties(locale language.Tag) []entity.Property {
	props := []entity.Property{}
	add := func(kind entity.PropertyKind, v null.String, action null.String) {
		if !v.Valid {
			return
		}
		props = append(props, entity.Property{Kind: kind, Value: v.String, ActionURL: action})
	}
	withURL := func(format string, v null.String) null.String {
		if !v.Valid {
			return null.String{}
		}
		return null.StringFrom(fmt.Sprintf(format, v.String))
	}

	website := b.Website()
	add(entity.PropertyWebsite, website, website)
	add(entity.PropertyCountry, b.Country(), null.String{})
	if t := b.Inception(); t.Valid {
		add(entity.PropertyInception, null.StringFrom(t.Time.Format(inceptionFormat)), null.String{})
	}
	twitter := b.Twitter()
	add(entity.PropertyTwitter, twitter, withURL(twitterURLFormat, twitter))
	facebook := b.Facebook()
	add(entity.PropertyFacebook, facebook, withURL(facebookURLFormat, facebook))
	add(entity.PropertyFounders, b.Founders(), null.String{})
	add(entity.PropertyHeadquarters, b.Headquarters(), null.String{})
	add(entity.PropertyDivisions, b.Divisions(), null.String{})
	if n := b.Employees(); n.Valid && n.Int64 > 0 {
		p := message.NewPrinter(locale)
		add(entity.PropertyEmployees, null.StringFrom(p.Sprintf("%d", n.Int64)), null.String{})
	}
	add(entity.PropertyGenre, b.Genre(), null.String{})
	add(entity.PropertyAwards, b.Awards(), null.String{})
	add(entity.PropertyDevelopers, b.Developers(), null.String{})
	add(entity.PropertyLanguages, b.Languages(), null.String{})
	add(entity.PropertyLicense, b.Licenses(), null.String{})

	return props
}
