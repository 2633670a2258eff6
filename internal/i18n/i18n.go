// Package i18n хранит активный язык запроса и каталог переводов админки.
package i18n

import (
	"context"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type localeKey struct{}

// Default язык, если в контексте ничего не задано
var Default = language.English

// Parse разбирает код языка, при ошибке возвращает язык по умолчанию
func Parse(code string) language.Tag {
	tag, err := language.Parse(code)
	if err != nil {
		return Default
	}
	return tag
}

// WithLocale сохраняет язык в контексте запроса
func WithLocale(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, localeKey{}, tag)
}

// Locale возвращает язык запроса
func Locale(ctx context.Context) language.Tag {
	if tag, ok := ctx.Value(localeKey{}).(language.Tag); ok {
		return tag
	}
	return Default
}

// T переводит строку на язык запроса. Непереведённые строки возвращаются как есть.
func T(ctx context.Context, key string, args ...any) string {
	return message.NewPrinter(Locale(ctx)).Sprintf(key, args...)
}

func init() {
	for key, value := range ukrainian {
		if err := message.SetString(language.Ukrainian, key, value); err != nil {
			panic(err)
		}
	}
}
