package models

import "time"

// DeviceClass класс устройства посетителя.
type DeviceClass string

// Поддерживаемые классы устройств. Все что не распозналось как мобильное
// устройство или планшет, считается обычным компьютером.
const (
	DeviceMobile DeviceClass = "Mobile"
	DeviceTablet DeviceClass = "Tablet"
	DevicePC     DeviceClass = "PC"
)

// Link структура модели хранения короткой ссылки.
// Запись создается один раз для каждого уникального URL и после этого не меняется.
type Link struct {
	ID        uint64    `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	URL       string    `json:"url" gorm:"uniqueIndex;size:2048;not null"`
	ShortCode string    `json:"shortCode" gorm:"uniqueIndex;size:12"`
}

// Visit одно посещение короткой ссылки.
// Timestamp хранится строкой в формате ISO-8601 (UTC).
type Visit struct {
	ID        uint64      `json:"-" gorm:"primaryKey"`
	LinkID    uint64      `json:"-" gorm:"index;not null"`
	IP        string      `json:"ip"`
	Device    DeviceClass `json:"device"`
	Browser   string      `json:"browser"`
	Location  string      `json:"location"`
	Timestamp string      `json:"timestamp"`
}

// LinkStats агрегированная статистика посещений по короткому коду.
type LinkStats struct {
	ShortCode   string  `json:"short_code"`
	OriginalURL string  `json:"original_url"`
	VisitCount  int     `json:"visit_count"`
	Visitors    []Visit `json:"visitors"`
}
