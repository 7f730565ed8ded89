// metrics.go — Prometheus метрики операций ресурсов.
// Регистрирует метрики: ad_resource_operations_total,
// ad_resource_operation_duration_seconds, ad_resource_orphaned_uploads_total.
package resource

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Значения лейбла result.
const (
	resultSuccess = "success"
	resultError   = "error"
	// resultRejected — операция остановлена до сети (проверка полей).
	resultRejected = "rejected"
)

var (
	// operationsTotal — количество операций контроллеров по ресурсам.
	operationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ad_resource_operations_total",
			Help: "Количество операций над ресурсами backend",
		},
		[]string{"resource", "operation", "result"},
	)

	// operationDuration — длительность операций с учётом загрузки файлов и перезагрузки списка.
	operationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ad_resource_operation_duration_seconds",
			Help:    "Длительность операций над ресурсами в секундах",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"resource", "operation"},
	)

	// orphanedUploads — загруженные файлы, оставшиеся без записи.
	orphanedUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ad_resource_orphaned_uploads_total",
			Help: "Файлы, загруженные при неудачном сохранении и не удалённые",
		},
		[]string{"resource"},
	)
)

// observe записывает результат операции.
func observe(resource, operation, result string, start time.Time) {
	operationsTotal.WithLabelValues(resource, operation, result).Inc()
	operationDuration.WithLabelValues(resource, operation).Observe(time.Since(start).Seconds())
}
