package state

import (
	"testing"
	"time"
)

type page struct{ visits int }

// TestGet проверяет создание при первом обращении и повторное использование.
func TestGet(t *testing.T) {
	s := New(10, time.Minute)
	created := 0
	create := func() *page { created++; return &page{} }

	p1 := Get(s, "s1", "matches", create)
	p1.visits++
	p2 := Get(s, "s1", "matches", create)

	if p1 != p2 || p2.visits != 1 {
		t.Error("повторное обращение должно вернуть то же состояние")
	}
	if created != 1 {
		t.Errorf("create вызван %d раз, ожидается 1", created)
	}

	if other := Get(s, "s2", "matches", create); other == p1 {
		t.Error("сессии не должны делить состояние")
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d, ожидается 2", s.Len())
	}
}

// TestGet_TypeMismatch проверяет пересоздание при несовпадении типа.
func TestGet_TypeMismatch(t *testing.T) {
	s := New(10, time.Minute)
	Get(s, "s1", "orders", func() string { return "x" })
	p := Get(s, "s1", "orders", func() *page { return &page{visits: 7} })
	if p.visits != 7 {
		t.Errorf("visits = %d, ожидается 7", p.visits)
	}
}

// TestEvict проверяет удаление состояния одной сессии.
func TestEvict(t *testing.T) {
	s := New(10, time.Minute)
	for _, pg := range []string{"matches", "teams", "orders"} {
		Get(s, "s1", pg, func() *page { return &page{} })
	}
	Get(s, "s10", "matches", func() *page { return &page{} })

	if n := s.Evict("s1"); n != 3 {
		t.Errorf("Evict = %d, ожидается 3", n)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, ожидается 1 (s10 не затронута)", s.Len())
	}
}

// TestTTL проверяет истечение состояния.
func TestTTL(t *testing.T) {
	s := New(10, 20*time.Millisecond)
	p := Get(s, "s1", "matches", func() *page { return &page{visits: 1} })
	time.Sleep(50 * time.Millisecond)
	if again := Get(s, "s1", "matches", func() *page { return &page{} }); again == p {
		t.Error("истёкшее состояние должно пересоздаваться")
	}
}
