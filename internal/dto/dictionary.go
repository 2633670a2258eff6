package dto

// DictionaryListResponse - имена доступных справочников
type DictionaryListResponse struct {
	Dictionaries []string `json:"dictionaries"`
}

// CountryItem - страна в кратком списке
type CountryItem struct {
	ID     int64   `json:"id"`
	NameEN string  `json:"name_en"`
	NameUK *string `json:"name_uk"`
	Alpha2 string  `json:"alpha2"`
	Alpha3 string  `json:"alpha3"`
}

// CityItem - город с названием страны
type CityItem struct {
	ID            int64   `json:"id"`
	NameEN        string  `json:"name_en"`
	NameUK        *string `json:"name_uk"`
	CountryNameEN *string `json:"country__name_en"`
}

// TerminalItem - терминал в кратком списке
type TerminalItem struct {
	ID           int64   `json:"id"`
	NameEN       string  `json:"name_en"`
	NameUK       *string `json:"name_uk"`
	TerminalType string  `json:"terminal_type"`
}

// CurrencyItem - валюта в кратком списке
type CurrencyItem struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// ContainerItem - контейнер в кратком списке
type ContainerItem struct {
	ID            int64  `json:"id"`
	Size          string `json:"size"`
	ContainerType string `json:"container_type"`
}

// DangerClassItem - класс опасности в кратком списке
type DangerClassItem struct {
	ID          int64  `json:"id"`
	ClassNumber string `json:"class_number"`
	Description string `json:"description"`
}

// IncotermsItem - условие поставки в кратком списке
type IncotermsItem struct {
	ID           int64  `json:"id"`
	Abbreviation string `json:"abbreviation"`
	Description  string `json:"description"`
}

// PackagingTypeItem - вид упаковки в кратком списке
type PackagingTypeItem struct {
	ID     int64   `json:"id"`
	NameEN string  `json:"name_en"`
	NameUK *string `json:"name_uk"`
}

// DeliveryTypeItem - вид доставки в кратком списке
type DeliveryTypeItem struct {
	ID        int64  `json:"id"`
	ShortName string `json:"short_name"`
	FullName  string `json:"full_name"`
}

// CargoItem - груз в кратком списке
type CargoItem struct {
	ID        int64   `json:"id"`
	NameEN    string  `json:"name_en"`
	NameUK    *string `json:"name_uk"`
	CargoCode string  `json:"cargo_code"`
}
