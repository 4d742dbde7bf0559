package models

// Language is the structured language entry carried by the provider payload.
// Only the code survives persistence; name and native are dropped.
type Language struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Native string `json:"native"`
}

// GeoLocation is the nested location block of a provider success payload.
type GeoLocation struct {
	GeonameID               int        `json:"geoname_id" validate:"required"`
	Capital                 string     `json:"capital"`
	Languages               []Language `json:"languages"`
	CountryFlag             string     `json:"country_flag"`
	CountryFlagEmoji        string     `json:"country_flag_emoji"`
	CountryFlagEmojiUnicode string     `json:"country_flag_emoji_unicode"`
	CallingCode             string     `json:"calling_code"`
	IsEU                    bool       `json:"is_eu"`
}

// GeoIPData is a provider success payload. The validate tags decide whether a
// response body counts as a success payload at all; a body missing any of the
// required fields falls through to the error-payload check.
type GeoIPData struct {
	IP             string      `json:"ip" validate:"required,ip"`
	Type           string      `json:"type" validate:"required"`
	ContinentCode  string      `json:"continent_code" validate:"required"`
	ContinentName  string      `json:"continent_name" validate:"required"`
	CountryCode    string      `json:"country_code" validate:"required"`
	CountryName    string      `json:"country_name" validate:"required"`
	RegionCode     string      `json:"region_code" validate:"required"`
	RegionName     string      `json:"region_name" validate:"required"`
	City           string      `json:"city" validate:"required"`
	Zip            string      `json:"zip" validate:"required"`
	Latitude       float64     `json:"latitude"`
	Longitude      float64     `json:"longitude"`
	MSA            *string     `json:"msa"`
	DMA            *string     `json:"dma"`
	Radius         *float64    `json:"radius"`
	IPRoutingType  string      `json:"ip_routing_type" validate:"required"`
	ConnectionType string      `json:"connection_type" validate:"required"`
	Location       GeoLocation `json:"location" validate:"required"`
}

// CreateRequest is the body of POST /v1/ipdata.
type CreateRequest struct {
	IP string `json:"ip" validate:"required,ip" example:"172.68.213.129"`
}

// LocationSchema is the location block with languages as a flat code list.
// Used by the manual-create request body and by every response.
type LocationSchema struct {
	GeonameID               int      `json:"geoname_id" validate:"required"`
	Capital                 string   `json:"capital"`
	Languages               []string `json:"languages"`
	CountryFlag             string   `json:"country_flag"`
	CountryFlagEmoji        string   `json:"country_flag_emoji"`
	CountryFlagEmojiUnicode string   `json:"country_flag_emoji_unicode"`
	CallingCode             string   `json:"calling_code"`
	IsEU                    bool     `json:"is_eu"`
}

// ManualCreateRequest is the body of POST /v1/ipdata/manual. The caller
// supplies the full record the provider would otherwise have returned.
type ManualCreateRequest struct {
	IP             string         `json:"ip" validate:"required,ip"`
	Type           string         `json:"type" validate:"required"`
	ContinentCode  string         `json:"continent_code" validate:"required"`
	ContinentName  string         `json:"continent_name" validate:"required"`
	CountryCode    string         `json:"country_code" validate:"required"`
	CountryName    string         `json:"country_name" validate:"required"`
	RegionCode     string         `json:"region_code" validate:"required"`
	RegionName     string         `json:"region_name" validate:"required"`
	City           string         `json:"city" validate:"required"`
	Zip            string         `json:"zip" validate:"required"`
	Latitude       float64        `json:"latitude"`
	Longitude      float64        `json:"longitude"`
	MSA            *string        `json:"msa"`
	DMA            *string        `json:"dma"`
	Radius         *float64       `json:"radius"`
	IPRoutingType  string         `json:"ip_routing_type" validate:"required"`
	ConnectionType string         `json:"connection_type" validate:"required"`
	Location       LocationSchema `json:"location" validate:"required"`
}

// IPDataResponse is the combined view returned by every successful operation:
// one ipdata row joined with its location row, languages expanded to a list.
type IPDataResponse struct {
	IP             string         `json:"ip"`
	Type           string         `json:"type"`
	ContinentCode  string         `json:"continent_code"`
	ContinentName  string         `json:"continent_name"`
	CountryCode    string         `json:"country_code"`
	CountryName    string         `json:"country_name"`
	RegionCode     string         `json:"region_code"`
	RegionName     string         `json:"region_name"`
	City           string         `json:"city"`
	Zip            string         `json:"zip"`
	Latitude       float64        `json:"latitude"`
	Longitude      float64        `json:"longitude"`
	MSA            *string        `json:"msa"`
	DMA            *string        `json:"dma"`
	Radius         *float64       `json:"radius"`
	IPRoutingType  string         `json:"ip_routing_type"`
	ConnectionType string         `json:"connection_type"`
	Location       LocationSchema `json:"location"`
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error string `json:"error"`
}
