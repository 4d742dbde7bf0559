package models

import "strings"

// LanguagesSeparator joins language codes into the single string stored on
// the location row. Rendering splits on the same separator.
const LanguagesSeparator = ";"

// LocationModel is the GORM model for the location table. One row exists per
// distinct geoname id and may be shared by any number of ipdata rows.
type LocationModel struct {
	ID                      string `gorm:"column:id;type:char(36);primaryKey"`
	GeonameID               int    `gorm:"column:geoname_id;uniqueIndex;not null"`
	Capital                 string `gorm:"column:capital"`
	CountryFlag             string `gorm:"column:country_flag"`
	CountryFlagEmoji        string `gorm:"column:country_flag_emoji"`
	CountryFlagEmojiUnicode string `gorm:"column:country_flag_emoji_unicode"`
	CallingCode             string `gorm:"column:calling_code"`
	IsEU                    bool   `gorm:"column:is_eu"`
	Languages               string `gorm:"column:languages"` // ";"-joined codes
}

// TableName overrides GORM's pluralized default.
func (LocationModel) TableName() string {
	return "location"
}

// LanguageCodes expands the stored languages string back into a list.
// An empty stored string means no languages, not a single empty code.
func (l *LocationModel) LanguageCodes() []string {
	if l.Languages == "" {
		return []string{}
	}
	return strings.Split(l.Languages, LanguagesSeparator)
}

// IPDataModel is the GORM model for the ipdata table. Every row references
// exactly one location row via LocationID.
type IPDataModel struct {
	ID             string   `gorm:"column:id;type:char(36);primaryKey"`
	IP             string   `gorm:"column:ip;uniqueIndex;not null"`
	Type           string   `gorm:"column:type"`
	ContinentCode  string   `gorm:"column:continent_code"`
	ContinentName  string   `gorm:"column:continent_name"`
	CountryCode    string   `gorm:"column:country_code"`
	CountryName    string   `gorm:"column:country_name"`
	RegionCode     string   `gorm:"column:region_code"`
	RegionName     string   `gorm:"column:region_name"`
	City           string   `gorm:"column:city"`
	Zip            string   `gorm:"column:zip"`
	Latitude       float64  `gorm:"column:latitude"`
	Longitude      float64  `gorm:"column:longitude"`
	MSA            *string  `gorm:"column:msa"`
	DMA            *string  `gorm:"column:dma"`
	Radius         *float64 `gorm:"column:radius"`
	IPRoutingType  string   `gorm:"column:ip_routing_type"`
	ConnectionType string   `gorm:"column:connection_type"`
	LocationID     string   `gorm:"column:location_id;type:char(36)"`
}

// TableName overrides GORM's pluralized default.
func (IPDataModel) TableName() string {
	return "ipdata"
}
