// Пакет state — состояние страниц операторов в памяти сервера.
// Контроллер каждой страницы живёт в LRU-кэше с TTL под ключом
// "<id сессии>/<страница>". Обёртка над hashicorp/golang-lru/v2/expirable.
package state

import (
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus-метрики хранилища состояния.
var (
	stateHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ad_page_state_hits_total",
		Help: "Количество обращений к существующему состоянию страницы.",
	})
	stateCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ad_page_state_created_total",
		Help: "Количество созданных состояний страниц (первый визит или истёкший TTL).",
	})
)

// Store — состояние страниц с автоматическим TTL.
// Каждое обращение продлевает TTL записи.
type Store struct {
	mu    sync.Mutex
	cache *expirable.LRU[string, any]
}

// New создаёт хранилище.
// maxSize — максимальное количество состояний страниц (всех сессий).
// ttl — время жизни состояния без обращений.
func New(maxSize int, ttl time.Duration) *Store {
	return &Store{cache: expirable.NewLRU[string, any](maxSize, nil, ttl)}
}

func key(sessionID, page string) string {
	return sessionID + "/" + page
}

// Get возвращает состояние страницы page сессии sessionID,
// создавая его через create при первом обращении.
func Get[T any](s *Store, sessionID, page string, create func() T) T {
	k := key(sessionID, page)

	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.cache.Get(k); ok {
		if typed, ok := v.(T); ok {
			s.cache.Add(k, typed)
			stateHitsTotal.Inc()
			return typed
		}
	}

	v := create()
	s.cache.Add(k, v)
	stateCreatedTotal.Inc()
	return v
}

// Evict удаляет состояние всех страниц сессии (logout).
func (s *Store) Evict(sessionID string) int {
	prefix := sessionID + "/"

	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, k := range s.cache.Keys() {
		if strings.HasPrefix(k, prefix) {
			s.cache.Remove(k)
			n++
		}
	}
	return n
}

// Len возвращает количество состояний в хранилище.
func (s *Store) Len() int {
	return s.cache.Len()
}
