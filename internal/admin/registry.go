// Package admin описывает модели административного интерфейса: колонки списка,
// поиск, фильтры, поля формы и поведение при удалении.
package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/logistics-backoffice/internal/domain"
	"github.com/logistics-backoffice/internal/i18n"
)

// OnDelete поведение зависимых записей при удалении
type OnDelete int

const (
	Protect OnDelete = iota
	Cascade
	SetNull
)

// Relation зависимая таблица, ссылающаяся на модель
type Relation struct {
	Table  string
	Column string
	Action OnDelete
	// Slug модели зависимой таблицы для рекурсивной обработки каскада
	Slug string
}

// FilterKind тип значения фильтра списка
type FilterKind int

const (
	FilterString FilterKind = iota
	FilterInt
	FilterBool
)

// ListQuery параметры экрана списка: строка поиска и значения фильтров
type ListQuery struct {
	Search  string
	Filters map[string]string
}

// Filter фильтр списка по колонке таблицы
type Filter struct {
	Column string
	Kind   FilterKind
}

// Parse приводит значение из строки запроса к типу колонки
func (f Filter) Parse(raw string) (any, error) {
	switch f.Kind {
	case FilterInt:
		return strconv.ParseInt(raw, 10, 64)
	case FilterBool:
		return strconv.ParseBool(raw)
	default:
		return raw, nil
	}
}

// Column колонка списка. Value вычисляет значение, иначе берётся поле json-представления.
type Column struct {
	Name  string
	Label string
	Value func(obj any) any
}

// Choice вариант выбора для поля формы
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Condition делает поле редактируемым только при заданном значении другого поля
type Condition struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

// Field поле формы редактирования
type Field struct {
	Name        string
	Label       string
	Type        string
	Required    bool
	Choices     []Choice
	Related     string
	EnabledWhen *Condition
}

// ModelAdmin описание одной модели
type ModelAdmin struct {
	Slug          string
	Name          string
	Verbose       string
	VerbosePlural string
	Columns       []Column
	SearchFields  []string
	Filters       []Filter
	Fields        []Field
	Ordering      string
	Preload       []string
	Relations     []Relation

	New      func() any
	NewSlice func() any

	// BeforeSave разбирает поля запроса, которых нет в модели
	BeforeSave func(ctx context.Context, obj any, body json.RawMessage, creating bool) error
	// AfterSave сохраняет связанные записи в той же транзакции
	AfterSave func(tx *gorm.DB, obj any, body json.RawMessage) error
	// Extra дополняет детальное представление объекта
	Extra func(obj any) map[string]any
}

// Actions действия над объектами, для каждого заводится отдельное право
var Actions = []string{"add", "change", "delete"}

// Permission возвращает имя права на действие add, change или delete
func (m *ModelAdmin) Permission(action string) string {
	return fmt.Sprintf("admin.%s_%s", action, m.Name)
}

// Filter возвращает фильтр по имени колонки
func (m *ModelAdmin) Filter(column string) (Filter, bool) {
	for _, f := range m.Filters {
		if f.Column == column {
			return f, true
		}
	}
	return Filter{}, false
}

// Row строит строку списка: id и значения колонок
func (m *ModelAdmin) Row(obj any) (map[string]any, error) {
	values, err := ToMap(obj)
	if err != nil {
		return nil, err
	}

	row := map[string]any{"id": values["id"]}
	for _, c := range m.Columns {
		if c.Value != nil {
			row[c.Name] = c.Value(obj)
		} else {
			row[c.Name] = values[c.Name]
		}
	}
	return row, nil
}

// Detail возвращает полное представление объекта
func (m *ModelAdmin) Detail(obj any) (map[string]any, error) {
	values, err := ToMap(obj)
	if err != nil {
		return nil, err
	}
	if m.Extra != nil {
		for k, v := range m.Extra(obj) {
			values[k] = v
		}
	}
	return values, nil
}

// Objects перебирает элементы среза, созданного NewSlice
func Objects(slice any) []any {
	v := reflect.Indirect(reflect.ValueOf(slice))
	objects := make([]any, v.Len())
	for i := range v.Len() {
		objects[i] = v.Index(i).Addr().Interface()
	}
	return objects
}

// SetID проставляет первичный ключ объекту модели
func SetID(obj any, id int64) {
	field := reflect.Indirect(reflect.ValueOf(obj)).FieldByName("ID")
	if field.IsValid() && field.CanSet() {
		field.SetInt(id)
	}
}

// GetID читает первичный ключ объекта модели
func GetID(obj any) int64 {
	field := reflect.Indirect(reflect.ValueOf(obj)).FieldByName("ID")
	if !field.IsValid() {
		return 0
	}
	return field.Int()
}

// ToMap возвращает json-представление объекта в виде словаря
func ToMap(obj any) (map[string]any, error) {
	data, err := json.Marshal(obj)
	if err != nil {
		return nil, err
	}
	values := make(map[string]any)
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	return values, nil
}

// Registry набор зарегистрированных моделей в порядке отображения
type Registry struct {
	models map[string]*ModelAdmin
	order  []string
}

// NewRegistry создаёт пустой реестр
func NewRegistry() *Registry {
	return &Registry{models: make(map[string]*ModelAdmin)}
}

// Register добавляет модель в реестр
func (r *Registry) Register(m *ModelAdmin) {
	if _, ok := r.models[m.Slug]; !ok {
		r.order = append(r.order, m.Slug)
	}
	r.models[m.Slug] = m
}

// Get возвращает модель по slug
func (r *Registry) Get(slug string) (*ModelAdmin, error) {
	m, ok := r.models[slug]
	if !ok {
		return nil, fmt.Errorf("%s: %w", slug, domain.ErrModelNotFound)
	}
	return m, nil
}

// All возвращает модели в порядке регистрации
func (r *Registry) All() []*ModelAdmin {
	result := make([]*ModelAdmin, 0, len(r.order))
	for _, slug := range r.order {
		result = append(result, r.models[slug])
	}
	return result
}

// Permissions перечисляет права на все действия всех моделей
func (r *Registry) Permissions() []domain.Permission {
	perms := make([]domain.Permission, 0, len(r.order)*len(Actions))
	for _, m := range r.All() {
		for _, action := range Actions {
			perms = append(perms, domain.Permission{
				Codename: m.Permission(action),
				Name:     fmt.Sprintf("Can %s %s", action, strings.ToLower(m.Verbose)),
			})
		}
	}
	return perms
}

// Label переводит подпись на язык запроса
func Label(ctx context.Context, s string) string {
	return i18n.T(ctx, s)
}
