package dto

// LoginRequest - запрос на вход
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Password string `json:"password" validate:"required"`
}

// DetailResponse - ответ с текстовым результатом операции
type DetailResponse struct {
	Detail string `json:"detail"`
}

// CSRFResponse - ответ с CSRF-токеном
type CSRFResponse struct {
	CSRFToken string `json:"csrfToken"`
}

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// RefResponse - ссылка на отдел или должность
type RefResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// EmployeeResponse - карточка сотрудника. id совпадает с id учётной записи.
type EmployeeResponse struct {
	ID                  int64        `json:"id"`
	Username            string       `json:"username"`
	Email               string       `json:"email"`
	FirstName           string       `json:"firstName"`
	LastName            string       `json:"lastName"`
	AdditionalEmail     *string      `json:"additionalEmail"`
	Phone               *string      `json:"phone"`
	AdditionalPhone     *string      `json:"additionalPhone"`
	BirthDate           *string      `json:"birthDate"`
	Department          *RefResponse `json:"department"`
	Position            *RefResponse `json:"position"`
	HireDate            *string      `json:"hireDate"`
	TerminationDate     *string      `json:"terminationDate"`
	Avatar              *string      `json:"avatar"`
	RegistrationAddress *string      `json:"registrationAddress"`
	LivingAddress       *string      `json:"livingAddress"`
}

// CurrentUserResponse - профиль текущего пользователя с группами и правами
type CurrentUserResponse struct {
	EmployeeResponse
	Groups      []string `json:"groups"`
	Permissions []string `json:"permissions"`
}

// EmployeesResponse - список сотрудников
type EmployeesResponse struct {
	Employees []EmployeeResponse `json:"employees"`
}

// DepartmentResponse - отдел с должностями
type DepartmentResponse struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Positions []RefResponse `json:"positions"`
}

// DepartmentsResponse - список отделов
type DepartmentsResponse struct {
	Departments []DepartmentResponse `json:"departments"`
}

// PositionsResponse - должности отдела
type PositionsResponse struct {
	Positions []RefResponse `json:"positions"`
}
