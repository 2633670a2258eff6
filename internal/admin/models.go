package admin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/logistics-backoffice/internal/domain"
)

func model[T any](slug, name, verbose, plural string) *ModelAdmin {
	return &ModelAdmin{
		Slug:          slug,
		Name:          name,
		Verbose:       verbose,
		VerbosePlural: plural,
		Ordering:      "id",
		New:           func() any { return new(T) },
		NewSlice:      func() any { return new([]T) },
	}
}

func column(name, label string) Column {
	return Column{Name: name, Label: label}
}

func computed[T any](name, label string, fn func(*T) any) Column {
	return Column{Name: name, Label: label, Value: func(obj any) any { return fn(obj.(*T)) }}
}

func nameEN(required bool) Field {
	return Field{Name: "name_en", Label: "Name (EN)", Type: "string", Required: required}
}

var nameUK = Field{Name: "name_uk", Label: "Name (UK)", Type: "string"}

var description = Field{Name: "description", Label: "Description", Type: "text"}

// TerminalTypes варианты типа терминала
var TerminalTypes = []Choice{
	{Value: domain.TerminalSeaport, Label: "Seaport"},
	{Value: domain.TerminalAirport, Label: "Airport"},
	{Value: domain.TerminalTerminal, Label: "Terminal"},
	{Value: domain.TerminalRiverPort, Label: "River port"},
	{Value: domain.TerminalWarehouse, Label: "Warehouse"},
}

// Default возвращает реестр всех моделей back office
func Default() *Registry {
	r := NewRegistry()
	r.Register(departments())
	r.Register(positions())
	r.Register(users())
	r.Register(countries())
	r.Register(cities())
	r.Register(terminals())
	r.Register(currencies())
	r.Register(containers())
	r.Register(dangerClasses())
	r.Register(incoterms())
	r.Register(packagingTypes())
	r.Register(deliveryTypes())
	r.Register(cargos())
	return r
}

func departments() *ModelAdmin {
	m := model[domain.Department]("departments", "department", "Department", "Departments")
	m.Ordering = "name"
	m.Columns = []Column{column("name", "Name")}
	m.SearchFields = []string{"name"}
	m.Fields = []Field{{Name: "name", Label: "Name", Type: "string", Required: true}}
	m.Relations = []Relation{
		{Table: "positions", Column: "department_id", Action: Cascade, Slug: "positions"},
		{Table: "employees", Column: "department_id", Action: Protect},
	}
	return m
}

func positions() *ModelAdmin {
	m := model[domain.Position]("positions", "position", "Position", "Positions")
	m.Ordering = "name"
	m.Columns = []Column{
		column("name", "Name"),
		computed("department", "Department", func(p *domain.Position) any {
			if p.Department == nil {
				return nil
			}
			return p.Department.Name
		}),
	}
	m.SearchFields = []string{"name"}
	m.Filters = []Filter{{Column: "department_id", Kind: FilterInt}}
	m.Preload = []string{"Department"}
	m.Fields = []Field{
		{Name: "name", Label: "Name", Type: "string", Required: true},
		{Name: "department_id", Label: "Department", Type: "foreign_key", Required: true, Related: "departments"},
	}
	m.Relations = []Relation{{Table: "employees", Column: "position_id", Action: Protect}}
	return m
}

// userInput поля формы пользователя, которых нет в json-представлении модели
type userInput struct {
	Password    *string   `json:"password"`
	Permissions *[]string `json:"permissions"`
}

func users() *ModelAdmin {
	m := model[domain.User]("users", "user", "User", "Users")
	m.New = func() any { return &domain.User{IsActive: true} }
	m.Ordering = "username"
	m.Columns = []Column{
		column("username", "Username"),
		column("first_name", "First name"),
		column("last_name", "Last name"),
		computed("phone_number", "Phone", func(u *domain.User) any {
			if u.Employee == nil || u.Employee.Phone == nil || *u.Employee.Phone == "" {
				return "-"
			}
			return *u.Employee.Phone
		}),
		column("email", "Email"),
		computed("position_info", "Position (Department)", func(u *domain.User) any {
			if u.Employee == nil {
				return "-"
			}
			return u.Employee.PositionInfo()
		}),
	}
	m.SearchFields = []string{"username", "first_name", "last_name", "email"}
	m.Filters = []Filter{
		{Column: "is_staff", Kind: FilterBool},
		{Column: "is_active", Kind: FilterBool},
	}
	m.Preload = []string{"Employee.Department", "Employee.Position", "Permissions", "Groups"}
	m.Fields = []Field{
		{Name: "username", Label: "Username", Type: "string", Required: true},
		{Name: "password", Label: "Password", Type: "password"},
		{Name: "first_name", Label: "First name", Type: "string"},
		{Name: "last_name", Label: "Last name", Type: "string"},
		{Name: "email", Label: "Email", Type: "email"},
		{Name: "is_active", Label: "Active", Type: "boolean"},
		{Name: "is_staff", Label: "Staff status", Type: "boolean"},
		{Name: "is_superuser", Label: "Superuser status", Type: "boolean"},
		{Name: "permissions", Label: "Permissions", Type: "multiple_choice"},
		{Name: "employee", Label: "Employee", Type: "inline"},
	}
	m.Relations = []Relation{
		{Table: "employees", Column: "user_id", Action: Cascade},
		{Table: "sessions", Column: "user_id", Action: Cascade},
		{Table: "user_groups", Column: "user_id", Action: Cascade},
		{Table: "user_permissions", Column: "user_id", Action: Cascade},
	}

	m.BeforeSave = func(_ context.Context, obj any, body json.RawMessage, creating bool) error {
		var in userInput
		if err := json.Unmarshal(body, &in); err != nil {
			return err
		}
		user := obj.(*domain.User)
		if in.Password != nil && *in.Password != "" {
			return user.SetPassword(*in.Password)
		}
		if creating {
			return domain.ErrPasswordRequired
		}
		return nil
	}

	m.AfterSave = func(tx *gorm.DB, obj any, body json.RawMessage) error {
		var in userInput
		if err := json.Unmarshal(body, &in); err != nil {
			return err
		}
		user := obj.(*domain.User)

		if emp := user.Employee; emp != nil {
			var existing domain.Employee
			err := tx.Where(&domain.Employee{UserID: user.ID}).Select("id").Take(&existing).Error
			switch {
			case err == nil:
				emp.ID = existing.ID
			case errors.Is(err, gorm.ErrRecordNotFound):
				emp.ID = 0
			default:
				return err
			}
			emp.UserID = user.ID
			if err := tx.Omit(clause.Associations).Save(emp).Error; err != nil {
				return fmt.Errorf("failed to save employee: %w", err)
			}
		}

		if in.Permissions != nil {
			var perms []domain.Permission
			if len(*in.Permissions) > 0 {
				if err := tx.Where("codename IN ?", *in.Permissions).Find(&perms).Error; err != nil {
					return err
				}
				if len(perms) != len(*in.Permissions) {
					return domain.ErrInvalidReference
				}
			}
			association := tx.Model(user).Association("Permissions")
			if len(perms) == 0 {
				return association.Clear()
			}
			return association.Replace(perms)
		}
		return nil
	}

	m.Extra = func(obj any) map[string]any {
		user := obj.(*domain.User)
		direct := make([]string, 0, len(user.Permissions))
		for _, p := range user.Permissions {
			direct = append(direct, p.Codename)
		}
		return map[string]any{
			"groups":      user.GroupNames(),
			"permissions": direct,
		}
	}
	return m
}

func countries() *ModelAdmin {
	m := model[domain.Country]("countries", "country", "Country", "Countries")
	m.Ordering = "name_en"
	m.Columns = []Column{
		column("name_en", "Name (EN)"),
		column("name_uk", "Name (UK)"),
		column("alpha2", "Alpha-2 code"),
		column("alpha3", "Alpha-3 code"),
		column("numeric_code", "Numeric code"),
	}
	m.SearchFields = []string{"name_en", "name_uk", "alpha2", "alpha3"}
	m.Fields = []Field{
		nameEN(true),
		nameUK,
		{Name: "alpha2", Label: "Alpha-2 code", Type: "string", Required: true},
		{Name: "alpha3", Label: "Alpha-3 code", Type: "string", Required: true},
		{Name: "numeric_code", Label: "Numeric code", Type: "string", Required: true},
	}
	m.Relations = []Relation{
		{Table: "cities", Column: "country_id", Action: Cascade, Slug: "cities"},
		{Table: "terminals", Column: "country_id", Action: Cascade},
	}
	return m
}

func cities() *ModelAdmin {
	m := model[domain.City]("cities", "city", "City", "Cities")
	m.Ordering = "name_en"
	m.Columns = []Column{
		column("name_en", "Name (EN)"),
		column("name_uk", "Name (UK)"),
		computed("country", "Country", func(c *domain.City) any {
			if c.Country == nil {
				return nil
			}
			return c.Country.String()
		}),
	}
	m.SearchFields = []string{"name_en", "name_uk"}
	m.Filters = []Filter{{Column: "country_id", Kind: FilterInt}}
	m.Preload = []string{"Country"}
	m.Fields = []Field{
		nameEN(true),
		nameUK,
		{Name: "country_id", Label: "Country", Type: "foreign_key", Required: true, Related: "countries"},
	}
	m.Relations = []Relation{{Table: "terminals", Column: "city_id", Action: Cascade}}
	return m
}

func terminals() *ModelAdmin {
	m := model[domain.Terminal]("terminals", "terminal", "Terminal", "Terminals")
	m.Ordering = "name_en"
	m.Columns = []Column{
		column("name_en", "Name (EN)"),
		column("terminal_type", "Terminal type"),
		computed("city", "City", func(t *domain.Terminal) any {
			if t.City == nil {
				return nil
			}
			return t.City.String()
		}),
		computed("country", "Country", func(t *domain.Terminal) any {
			if t.Country == nil {
				return nil
			}
			return t.Country.String()
		}),
	}
	m.SearchFields = []string{"name_en", "name_uk"}
	m.Filters = []Filter{
		{Column: "terminal_type", Kind: FilterString},
		{Column: "country_id", Kind: FilterInt},
	}
	m.Preload = []string{"City", "Country"}
	m.Fields = []Field{
		nameEN(true),
		nameUK,
		{Name: "terminal_type", Label: "Terminal type", Type: "choice", Required: true, Choices: TerminalTypes},
		description,
		{Name: "city_id", Label: "City", Type: "foreign_key", Required: true, Related: "cities"},
		{Name: "country_id", Label: "Country", Type: "foreign_key", Required: true, Related: "countries"},
	}
	return m
}

func currencies() *ModelAdmin {
	m := model[domain.Currency]("currencies", "currency", "Currency", "Currencies")
	m.Ordering = "code"
	m.Columns = []Column{column("name", "Name"), column("code", "Code")}
	m.SearchFields = []string{"name", "code"}
	m.Fields = []Field{
		{Name: "name", Label: "Name", Type: "string", Required: true},
		{Name: "code", Label: "Code", Type: "string", Required: true},
	}
	return m
}

func containers() *ModelAdmin {
	m := model[domain.Container]("containers", "container", "Container", "Containers")
	m.Columns = []Column{
		column("size", "Size"),
		column("container_type", "Container type"),
		column("internal_volume", "Internal volume"),
	}
	m.SearchFields = []string{"size", "container_type"}
	m.Filters = []Filter{{Column: "container_type", Kind: FilterString}}
	m.Fields = []Field{
		{Name: "size", Label: "Size", Type: "string", Required: true},
		{Name: "container_type", Label: "Container type", Type: "string", Required: true},
		{Name: "length", Label: "Length", Type: "decimal", Required: true},
		{Name: "width", Label: "Width", Type: "decimal", Required: true},
		{Name: "height", Label: "Height", Type: "decimal", Required: true},
		{Name: "internal_volume", Label: "Internal volume", Type: "decimal", Required: true},
	}
	return m
}

func dangerClasses() *ModelAdmin {
	m := model[domain.DangerClass]("danger-classes", "danger_class", "Danger class", "Danger classes")
	m.Ordering = "class_number"
	m.Columns = []Column{
		column("class_number", "Class number"),
		column("sub_class", "Subclass"),
		column("un_code", "UN code"),
	}
	m.SearchFields = []string{"class_number", "un_code", "description"}
	m.Fields = []Field{
		{Name: "class_number", Label: "Class number", Type: "string", Required: true},
		{Name: "sub_class", Label: "Subclass", Type: "string"},
		{Name: "un_code", Label: "UN code", Type: "string"},
		{Name: "description", Label: "Description", Type: "text", Required: true},
	}
	m.Relations = []Relation{{Table: "cargos", Column: "danger_class_id", Action: SetNull}}
	return m
}

func incoterms() *ModelAdmin {
	m := model[domain.Incoterms]("incoterms", "incoterms", "Incoterms", "Incoterms")
	m.Ordering = "abbreviation"
	m.Columns = []Column{column("abbreviation", "Abbreviation"), column("description", "Description")}
	m.SearchFields = []string{"abbreviation"}
	m.Fields = []Field{
		{Name: "abbreviation", Label: "Abbreviation", Type: "string", Required: true},
		{Name: "description", Label: "Description", Type: "text", Required: true},
	}
	return m
}

func packagingTypes() *ModelAdmin {
	m := model[domain.PackagingType]("packaging-types", "packaging_type", "Packaging type", "Packaging types")
	m.Ordering = "name_en"
	m.Columns = []Column{column("name_en", "Name (EN)"), column("name_uk", "Name (UK)")}
	m.SearchFields = []string{"name_en", "name_uk"}
	m.Fields = []Field{nameEN(true), nameUK, description}
	return m
}

func deliveryTypes() *ModelAdmin {
	m := model[domain.DeliveryType]("delivery-types", "delivery_type", "Delivery type", "Delivery types")
	m.Ordering = "short_name"
	m.Columns = []Column{column("short_name", "Short name"), column("full_name", "Full name")}
	m.SearchFields = []string{"short_name", "full_name"}
	m.Fields = []Field{
		{Name: "short_name", Label: "Short name", Type: "string", Required: true},
		{Name: "full_name", Label: "Full name", Type: "string", Required: true},
		description,
	}
	return m
}

func cargos() *ModelAdmin {
	m := model[domain.Cargo]("cargos", "cargo", "Cargo", "Cargos")
	m.Ordering = "name_en"
	m.Columns = []Column{
		column("name_en", "Name (EN)"),
		column("cargo_code", "Cargo code"),
		column("is_dangerous", "Dangerous"),
		computed("danger_class", "Danger class", func(c *domain.Cargo) any {
			if c.DangerClass == nil {
				return nil
			}
			return c.DangerClass.String()
		}),
	}
	m.SearchFields = []string{"name_en", "name_uk", "cargo_code"}
	m.Filters = []Filter{{Column: "is_dangerous", Kind: FilterBool}}
	m.Preload = []string{"DangerClass"}
	m.Fields = []Field{
		nameEN(true),
		nameUK,
		{Name: "cargo_code", Label: "Cargo code", Type: "string", Required: true},
		{Name: "is_dangerous", Label: "Dangerous", Type: "boolean"},
		{
			Name:        "danger_class_id",
			Label:       "Danger class",
			Type:        "foreign_key",
			Related:     "danger-classes",
			EnabledWhen: &Condition{Field: "is_dangerous", Value: true},
		},
		description,
	}
	return m
}
