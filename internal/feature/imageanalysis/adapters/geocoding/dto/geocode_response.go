package dto

// GeocodeResponse はGeocoding APIのレスポンスのうち住所解決に使う部分です。
type GeocodeResponse struct {
	Status       string          `json:"status"`
	ErrorMessage string          `json:"error_message"`
	Results      []GeocodeResult `json:"results"`
}

// GeocodeResult は1件の住所候補です。
type GeocodeResult struct {
	FormattedAddress string `json:"formatted_address"`
	PlaceID          string `json:"place_id"`
}
