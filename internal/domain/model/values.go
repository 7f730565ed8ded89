// values.go — вспомогательные типы значений: файлы, «гибкие» JSON-поля, multipart-формы.
package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// File — файл, выбранный оператором и ещё не загруженный.
type File struct {
	// Name — исходное имя файла.
	Name string
	// ContentType — MIME-тип из multipart-заголовка.
	ContentType string
	// Data — содержимое файла.
	Data []byte
}

// Empty сообщает, что файл не выбран.
func (f *File) Empty() bool {
	return f == nil || len(f.Data) == 0
}

// LooseString — текстовое поле, которое backend может вернуть строкой,
// числом или null (season, matchday, discount).
type LooseString string

// UnmarshalJSON принимает строку, число или null.
func (s *LooseString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*s = ""
		return nil
	}
	if b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = LooseString(v)
		return nil
	}
	*s = LooseString(string(b))
	return nil
}

// String возвращает значение как строку.
func (s LooseString) String() string { return string(s) }

// StringList — список строк, который backend иногда отдаёт
// JSON-строкой ("[\"M\",\"L\"]") вместо массива.
type StringList []string

// UnmarshalJSON принимает массив, JSON-строку с массивом или null.
func (l *StringList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*l = nil
		return nil
	}
	if b[0] == '"' {
		var encoded string
		if err := json.Unmarshal(b, &encoded); err != nil {
			return err
		}
		encoded = strings.TrimSpace(encoded)
		if encoded == "" {
			*l = nil
			return nil
		}
		b = []byte(encoded)
	}
	var items []string
	if err := json.Unmarshal(b, &items); err != nil {
		return err
	}
	*l = items
	return nil
}

// Contains сообщает, есть ли значение в списке.
func (l StringList) Contains(v string) bool {
	for _, item := range l {
		if item == v {
			return true
		}
	}
	return false
}

// Field — текстовое поле multipart-формы.
type Field struct {
	Name  string
	Value string
}

// FormFile — файловое поле multipart-формы.
type FormFile struct {
	Field string
	File  *File
}

// Form — тело multipart-запроса для записей, которые backend принимает
// вместе с файлами (слайдеры, супервайзеры, видеореклама).
type Form struct {
	Fields []Field
	Files  []FormFile
}

// Set добавляет текстовое поле.
func (f *Form) Set(name, value string) {
	f.Fields = append(f.Fields, Field{Name: name, Value: value})
}

// SetIfNotEmpty добавляет поле только при непустом значении.
func (f *Form) SetIfNotEmpty(name, value string) {
	if value != "" {
		f.Set(name, value)
	}
}

// SetBool добавляет логическое поле в виде "true"/"false".
func (f *Form) SetBool(name string, v bool) {
	f.Set(name, strconv.FormatBool(v))
}

// Attach добавляет файл, если он выбран.
func (f *Form) Attach(field string, file *File) {
	if !file.Empty() {
		f.Files = append(f.Files, FormFile{Field: field, File: file})
	}
}

// Value возвращает значение первого поля с именем name.
func (f *Form) Value(name string) (string, bool) {
	for _, fld := range f.Fields {
		if fld.Name == name {
			return fld.Value, true
		}
	}
	return "", false
}

// boolOr возвращает *b или def при nil (поле отсутствует в ответе).
func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
