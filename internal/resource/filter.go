package resource

// Search — клиентский текстовый фильтр по загруженному списку.
// Пустой запрос возвращает список без изменений.
func Search[T any](items []T, q string, match func(item T, q string) bool) []T {
	if q == "" {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if match(it, q) {
			out = append(out, it)
		}
	}
	return out
}
