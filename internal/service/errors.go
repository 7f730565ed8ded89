// errors.go — ключи уведомлений проверок, выполняемых до обращения к backend.
package service

import "errors"

// ErrInvalidStatus — недопустимый статус или переход.
var ErrInvalidStatus = errors.New("недопустимый статус")

// Ключи переводов уведомлений проверок.
const (
	KeyMatchRequired          = "matches.required"
	KeyMatchNoDate            = "matches.no_date"
	KeyMatchInvalidTime       = "matches.invalid_time"
	KeyMatchInvalidStatus     = "matches.invalid_status"
	KeyOrderInvalidTransition = "orders.invalid_transition"
	KeySliderImageRequired    = "sliders.image_required"
	KeySupervisorNameRequired = "supervisors.name_required"
	KeyVideoAdVideoRequired   = "videoads.video_required"
	KeyOperatorRequired       = "operators.required"
)
