package domain

import (
	"gorm.io/gorm"
)

// Типы терминалов
const (
	TerminalSeaport   = "SEAPORT"
	TerminalAirport   = "AIRPORT"
	TerminalTerminal  = "TERMINAL"
	TerminalRiverPort = "RIVER_PORT"
	TerminalWarehouse = "WAREHOUSE"
)

// Country страна по ISO 3166
type Country struct {
	ID          int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	NameEN      string  `json:"name_en" gorm:"column:name_en;type:varchar(100);not null" validate:"required,max=100"`
	NameUK      *string `json:"name_uk" gorm:"column:name_uk;type:varchar(100)" validate:"omitempty,max=100"`
	Alpha2      string  `json:"alpha2" gorm:"column:alpha2;type:varchar(2);not null;uniqueIndex" validate:"required,len=2,alpha"`
	Alpha3      string  `json:"alpha3" gorm:"column:alpha3;type:varchar(3);not null;uniqueIndex" validate:"required,len=3,alpha"`
	NumericCode string  `json:"numeric_code" gorm:"type:varchar(3);not null;uniqueIndex" validate:"required,len=3,digits"`
}

// TableName задаёт имя таблицы для GORM
func (Country) TableName() string {
	return "countries"
}

func (c Country) String() string {
	return c.NameEN
}

// City город внутри страны
type City struct {
	ID        int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	NameEN    string  `json:"name_en" gorm:"column:name_en;type:varchar(100);not null" validate:"required,max=100"`
	NameUK    *string `json:"name_uk" gorm:"column:name_uk;type:varchar(100)" validate:"omitempty,max=100"`
	CountryID int64   `json:"country_id" gorm:"not null;index" validate:"required,min=1"`

	Country *Country `json:"-" gorm:"foreignKey:CountryID;constraint:OnDelete:CASCADE"`
}

// TableName задаёт имя таблицы для GORM
func (City) TableName() string {
	return "cities"
}

func (c City) String() string {
	return c.NameEN
}

// Terminal порт, аэропорт, терминал или склад
type Terminal struct {
	ID           int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	NameEN       string  `json:"name_en" gorm:"column:name_en;type:varchar(100);not null" validate:"required,max=100"`
	NameUK       *string `json:"name_uk" gorm:"column:name_uk;type:varchar(100)" validate:"omitempty,max=100"`
	TerminalType string  `json:"terminal_type" gorm:"type:varchar(20);not null" validate:"required,oneof=SEAPORT AIRPORT TERMINAL RIVER_PORT WAREHOUSE"`
	Description  *string `json:"description" gorm:"type:text"`
	CityID       int64   `json:"city_id" gorm:"not null;index" validate:"required,min=1"`
	CountryID    int64   `json:"country_id" gorm:"not null;index" validate:"required,min=1"`

	City    *City    `json:"-" gorm:"foreignKey:CityID;constraint:OnDelete:CASCADE"`
	Country *Country `json:"-" gorm:"foreignKey:CountryID;constraint:OnDelete:CASCADE"`
}

// TableName задаёт имя таблицы для GORM
func (Terminal) TableName() string {
	return "terminals"
}

func (t Terminal) String() string {
	return t.NameEN
}

// Currency валюта по ISO 4217
type Currency struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"type:varchar(100);not null" validate:"required,max=100"`
	Code string `json:"code" gorm:"type:varchar(3);not null;uniqueIndex" validate:"required,len=3"`
}

// TableName задаёт имя таблицы для GORM
func (Currency) TableName() string {
	return "currencies"
}

func (c Currency) String() string {
	return c.Code + " - " + c.Name
}

// Container типоразмер контейнера, размеры в метрах
type Container struct {
	ID             int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Size           string  `json:"size" gorm:"type:varchar(50);not null" validate:"required,max=50"`
	ContainerType  string  `json:"container_type" gorm:"type:varchar(50);not null" validate:"required,max=50"`
	Length         float64 `json:"length" gorm:"type:numeric(8,2);not null" validate:"gt=0"`
	Width          float64 `json:"width" gorm:"type:numeric(8,2);not null" validate:"gt=0"`
	Height         float64 `json:"height" gorm:"type:numeric(8,2);not null" validate:"gt=0"`
	InternalVolume float64 `json:"internal_volume" gorm:"type:numeric(10,2);not null" validate:"gt=0"`
}

// TableName задаёт имя таблицы для GORM
func (Container) TableName() string {
	return "containers"
}

func (c Container) String() string {
	return c.Size + " " + c.ContainerType
}

// DangerClass класс опасности груза по классификации ООН
type DangerClass struct {
	ID          int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	ClassNumber string  `json:"class_number" gorm:"type:varchar(10);not null;uniqueIndex:idx_danger_class_code" validate:"required,max=10"`
	SubClass    *string `json:"sub_class" gorm:"type:varchar(10);uniqueIndex:idx_danger_class_code" validate:"omitempty,max=10"`
	UNCode      *string `json:"un_code" gorm:"column:un_code;type:varchar(10);uniqueIndex:idx_danger_class_code" validate:"omitempty,max=10"`
	Description string  `json:"description" gorm:"type:text;not null" validate:"required"`
}

// TableName задаёт имя таблицы для GORM
func (DangerClass) TableName() string {
	return "danger_classes"
}

func (d DangerClass) String() string {
	s := "Class " + d.ClassNumber
	if d.SubClass != nil && *d.SubClass != "" {
		s += "." + *d.SubClass
	}
	if d.UNCode != nil && *d.UNCode != "" {
		s += " (UN" + *d.UNCode + ")"
	}
	return s
}

// Incoterms условие поставки
type Incoterms struct {
	ID           int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Abbreviation string `json:"abbreviation" gorm:"type:varchar(10);not null;uniqueIndex" validate:"required,max=10"`
	Description  string `json:"description" gorm:"type:text;not null" validate:"required"`
}

// TableName задаёт имя таблицы для GORM
func (Incoterms) TableName() string {
	return "incoterms"
}

func (i Incoterms) String() string {
	return i.Abbreviation
}

// PackagingType вид упаковки
type PackagingType struct {
	ID          int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	NameEN      string  `json:"name_en" gorm:"column:name_en;type:varchar(100);not null" validate:"required,max=100"`
	NameUK      *string `json:"name_uk" gorm:"column:name_uk;type:varchar(100)" validate:"omitempty,max=100"`
	Description *string `json:"description" gorm:"type:text"`
}

// TableName задаёт имя таблицы для GORM
func (PackagingType) TableName() string {
	return "packaging_types"
}

func (p PackagingType) String() string {
	return p.NameEN
}

// DeliveryType вид доставки
type DeliveryType struct {
	ID          int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	ShortName   string  `json:"short_name" gorm:"type:varchar(50);not null" validate:"required,max=50"`
	FullName    string  `json:"full_name" gorm:"type:varchar(200);not null" validate:"required,max=200"`
	Description *string `json:"description" gorm:"type:text"`
}

// TableName задаёт имя таблицы для GORM
func (DeliveryType) TableName() string {
	return "delivery_types"
}

func (d DeliveryType) String() string {
	return d.ShortName
}

// Cargo наименование груза
type Cargo struct {
	ID            int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	NameEN        string  `json:"name_en" gorm:"column:name_en;type:varchar(200);not null" validate:"required,max=200"`
	NameUK        *string `json:"name_uk" gorm:"column:name_uk;type:varchar(200)" validate:"omitempty,max=200"`
	CargoCode     string  `json:"cargo_code" gorm:"type:varchar(10);not null" validate:"required,min=4,max=10,digits"`
	IsDangerous   bool    `json:"is_dangerous" gorm:"not null"`
	DangerClassID *int64  `json:"danger_class_id" gorm:"index"`
	Description   *string `json:"description" gorm:"type:text"`

	DangerClass *DangerClass `json:"-" gorm:"foreignKey:DangerClassID;constraint:OnDelete:SET NULL"`
}

// TableName задаёт имя таблицы для GORM
func (Cargo) TableName() string {
	return "cargos"
}

func (c Cargo) String() string {
	return c.NameEN + " (" + c.CargoCode + ")"
}

// Validate проверяет согласованность признака опасности и класса опасности
func (c *Cargo) Validate() error {
	if c.IsDangerous && c.DangerClassID == nil {
		return ErrDangerClassRequired
	}
	if !c.IsDangerous && c.DangerClassID != nil {
		return ErrDangerClassNotAllowed
	}
	return nil
}

// BeforeSave сбрасывает класс опасности у неопасного груза при прямой загрузке данных
func (c *Cargo) BeforeSave(tx *gorm.DB) error {
	if !c.IsDangerous {
		c.DangerClassID = nil
	}
	return nil
}
