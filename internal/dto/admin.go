package dto

// AdminModelInfo - модель в оглавлении админки
type AdminModelInfo struct {
	Slug       string `json:"slug"`
	Name       string `json:"name"`
	NamePlural string `json:"name_plural"`
	URL        string `json:"url"`
}

// AdminIndexResponse - оглавление админки
type AdminIndexResponse struct {
	Title  string           `json:"title"`
	Models []AdminModelInfo `json:"models"`
}

// AdminColumn - колонка экрана списка
type AdminColumn struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// AdminListResponse - экран списка модели
type AdminListResponse struct {
	Title   string           `json:"title"`
	Columns []AdminColumn    `json:"columns"`
	Results []map[string]any `json:"results"`
	Count   int              `json:"count"`
}

// AdminChoice - вариант значения поля
type AdminChoice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// AdminCondition - условие доступности поля
type AdminCondition struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

// AdminField - поле формы
type AdminField struct {
	Name        string          `json:"name"`
	Label       string          `json:"label"`
	Type        string          `json:"type"`
	Required    bool            `json:"required"`
	Choices     []AdminChoice   `json:"choices,omitempty"`
	Related     string          `json:"related,omitempty"`
	EnabledWhen *AdminCondition `json:"enabled_when,omitempty"`
}

// AdminMetaResponse - описание формы модели
type AdminMetaResponse struct {
	Model  string       `json:"model"`
	Title  string       `json:"title"`
	Fields []AdminField `json:"fields"`
}
