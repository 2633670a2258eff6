package i18n

// ukrainian переводы подписей административного интерфейса
var ukrainian = map[string]string{
	// модели
	"Department":      "Відділ",
	"Departments":     "Відділи",
	"Position":        "Посада",
	"Positions":       "Посади",
	"User":            "Користувач",
	"Users":           "Користувачі",
	"Employee":        "Співробітник",
	"Country":         "Країна",
	"Countries":       "Країни",
	"City":            "Місто",
	"Cities":          "Міста",
	"Terminal":        "Термінал",
	"Terminals":       "Термінали",
	"Currency":        "Валюта",
	"Currencies":      "Валюти",
	"Container":       "Контейнер",
	"Containers":      "Контейнери",
	"Danger class":    "Клас небезпеки",
	"Danger classes":  "Класи небезпеки",
	"Incoterms":       "Інкотермс",
	"Packaging type":  "Тип упаковки",
	"Packaging types": "Типи упаковки",
	"Delivery type":   "Тип доставки",
	"Delivery types":  "Типи доставки",
	"Cargo":           "Вантаж",
	"Cargos":          "Вантажі",

	// поля
	"Name":                  "Назва",
	"Username":              "Ім'я користувача",
	"First name":            "Ім'я",
	"Last name":             "Прізвище",
	"Email":                 "Електронна пошта",
	"Password":              "Пароль",
	"Active":                "Активний",
	"Staff status":          "Статус персоналу",
	"Superuser status":      "Статус суперкористувача",
	"Phone":                 "Телефон",
	"Additional email":      "Додаткова пошта",
	"Additional phone":      "Додатковий телефон",
	"Birth date":            "Дата народження",
	"Hire date":             "Дата прийому на роботу",
	"Termination date":      "Дата звільнення",
	"Avatar":                "Аватар",
	"Registration address":  "Адреса реєстрації",
	"Living address":        "Адреса проживання",
	"Position (Department)": "Посада (Відділ)",
	"Name (EN)":             "Назва (EN)",
	"Name (UK)":             "Назва (UK)",
	"Alpha-2 code":          "Код Alpha-2",
	"Alpha-3 code":          "Код Alpha-3",
	"Numeric code":          "Цифровий код",
	"Terminal type":         "Тип терміналу",
	"Description":           "Опис",
	"Code":                  "Код",
	"Size":                  "Розмір",
	"Container type":        "Тип контейнера",
	"Length":                "Довжина",
	"Width":                 "Ширина",
	"Height":                "Висота",
	"Internal volume":       "Внутрішній об'єм",
	"Class number":          "Номер класу",
	"Subclass":              "Підклас",
	"UN code":               "Код ООН",
	"Abbreviation":          "Абревіатура",
	"Short name":            "Коротка назва",
	"Full name":             "Повна назва",
	"Cargo code":            "Код вантажу",
	"Permissions":           "Права",
	"Dangerous":             "Небезпечний",

	// типы терминалов
	"Seaport":    "Морський порт",
	"Airport":    "Аеропорт",
	"River port": "Річковий порт",
	"Warehouse":  "Склад",

	// сообщения
	"Administration":                                     "Адміністрування",
	"validation error":                                   "помилка валідації",
	"object not found":                                   "об'єкт не знайдено",
	"model is not registered":                            "модель не зареєстрована",
	"object with these unique fields already exists":     "об'єкт з такими унікальними полями вже існує",
	"object is referenced by protected foreign keys":     "на об'єкт посилаються захищені зв'язки",
	"referenced object does not exist":                   "пов'язаний об'єкт не існує",
	"danger class is required for dangerous cargo":       "для небезпечного вантажу потрібно вказати клас небезпеки",
	"danger class must be empty for non-dangerous cargo": "для безпечного вантажу клас небезпеки не вказується",
	"password is required":                               "пароль обов'язковий",
	"field %s failed on %s":                              "поле %s не пройшло перевірку %s",
}
