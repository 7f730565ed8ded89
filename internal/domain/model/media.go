// media.go — записи, которые backend принимает multipart-формой вместе с файлами:
// слайдеры, супервайзеры, видеореклама.
package model

import (
	"strconv"
	"strings"
)

// Значения видеорекламы по умолчанию.
const (
	DefaultVideoAdTitle    = "إعلان بدون عنوان"
	DefaultMandatorySecond = 5
)

// --- Слайдер ---

// Slider — слайд главного экрана приложения.
type Slider struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	LinkURL   string `json:"linkUrl"`
	ImageURL  string `json:"imageUrl"`
	IsActive  bool   `json:"isActive"`
	SortOrder int    `json:"sortOrder"`
}

// SliderDraft — редактируемая копия слайда.
type SliderDraft struct {
	Title     string
	LinkURL   string
	IsActive  bool
	SortOrder int
	// ImageURL — текущее изображение (только для предпросмотра).
	ImageURL string
	Image    *File
}

// NewSliderDraft — значения формы создания.
func NewSliderDraft() SliderDraft {
	return SliderDraft{IsActive: true}
}

// Draft копирует редактируемые поля в черновик.
func (s Slider) Draft() SliderDraft {
	return SliderDraft{
		Title:     s.Title,
		LinkURL:   s.LinkURL,
		IsActive:  s.IsActive,
		SortOrder: s.SortOrder,
		ImageURL:  s.ImageURL,
	}
}

// Form собирает multipart-форму: title и linkUrl только непустые, image только выбранный.
func (d SliderDraft) Form() Form {
	var f Form
	f.SetIfNotEmpty("title", d.Title)
	f.SetIfNotEmpty("linkUrl", d.LinkURL)
	f.SetBool("isActive", d.IsActive)
	f.Set("sortOrder", strconv.Itoa(d.SortOrder))
	f.Attach("image", d.Image)
	return f
}

// --- Супервайзер ---

// Supervisor — супервайзер матчей.
type Supervisor struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Nationality string `json:"nationality"`
	ImageURL    string `json:"imageUrl"`
	IsActive    bool   `json:"isActive"`
}

// Matches — клиентский поиск по имени без учёта регистра.
func (s Supervisor) Matches(q string) bool {
	return q == "" || strings.Contains(strings.ToLower(s.Name), strings.ToLower(q))
}

// SupervisorDraft — редактируемая копия супервайзера.
type SupervisorDraft struct {
	Name        string
	Nationality string
	IsActive    bool
	ImageURL    string
	Image       *File
}

// NewSupervisorDraft — значения формы создания.
func NewSupervisorDraft() SupervisorDraft {
	return SupervisorDraft{IsActive: true}
}

// Draft копирует редактируемые поля в черновик.
func (s Supervisor) Draft() SupervisorDraft {
	return SupervisorDraft{
		Name:        s.Name,
		Nationality: s.Nationality,
		IsActive:    s.IsActive,
		ImageURL:    s.ImageURL,
	}
}

// Form собирает multipart-форму.
func (d SupervisorDraft) Form() Form {
	var f Form
	f.Set("name", d.Name)
	f.Set("nationality", d.Nationality)
	f.SetBool("isActive", d.IsActive)
	f.Attach("image", d.Image)
	return f
}

// --- Видеореклама ---

// VideoAd — видеоролик, показываемый перед трансляцией.
type VideoAd struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	VideoURL         string `json:"videoUrl"`
	ThumbnailURL     string `json:"thumbnailUrl"`
	MandatorySeconds int    `json:"mandatorySeconds"`
	IsActive         bool   `json:"isActive"`
	ClickURL         string `json:"clickUrl"`
	Views            int    `json:"views"`
}

// VideoAdDraft — редактируемая копия ролика.
type VideoAdDraft struct {
	Title            string
	MandatorySeconds string
	IsActive         bool
	ClickURL         string
	VideoURL         string
	ThumbnailURL     string
	Video            *File
	Thumbnail        *File
}

// NewVideoAdDraft — значения формы создания.
func NewVideoAdDraft() VideoAdDraft {
	return VideoAdDraft{MandatorySeconds: strconv.Itoa(DefaultMandatorySecond), IsActive: true}
}

// Draft копирует редактируемые поля в черновик.
func (v VideoAd) Draft() VideoAdDraft {
	return VideoAdDraft{
		Title:            v.Title,
		MandatorySeconds: strconv.Itoa(v.MandatorySeconds),
		IsActive:         v.IsActive,
		ClickURL:         v.ClickURL,
		VideoURL:         v.VideoURL,
		ThumbnailURL:     v.ThumbnailURL,
	}
}

// Form собирает multipart-форму. Пустой заголовок и нечисловое/нулевое
// время обязательного просмотра заменяются значениями по умолчанию.
func (d VideoAdDraft) Form() Form {
	var f Form
	title := strings.TrimSpace(d.Title)
	if title == "" {
		title = DefaultVideoAdTitle
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(d.MandatorySeconds))
	if err != nil || seconds == 0 {
		seconds = DefaultMandatorySecond
	}
	f.Set("title", title)
	f.Set("mandatorySeconds", strconv.Itoa(seconds))
	f.SetBool("isActive", d.IsActive)
	f.SetIfNotEmpty("clickUrl", d.ClickURL)
	f.Attach("video", d.Video)
	f.Attach("thumbnail", d.Thumbnail)
	return f
}

// ActiveForm — форма переключения активности: только isActive.
func ActiveForm(active bool) Form {
	var f Form
	f.SetBool("isActive", active)
	return f
}
