package models

import (
	"fmt"
	"strings"
)

// Status - заявленное состояние squadra. Переходы не ограничены:
// оператор может выставить любой статус в любой момент.
type Status string

const (
	StatusWaiting        Status = "IN ATTESA"
	StatusDeparting      Status = "PARTITA"
	StatusArrivedOnScene Status = "SUL POSTO"
	StatusInProgress     Status = "INTERVENTO IN CORSO"
	StatusConcluded      Status = "CONCLUSO"
	StatusReturning      Status = "RIENTRO IN CORSO"
	StatusReturned       Status = "RIENTRATA"
)

// Statuses возвращает все статусы в порядке жизненного цикла
func Statuses() []Status {
	return []Status{
		StatusWaiting,
		StatusDeparting,
		StatusArrivedOnScene,
		StatusInProgress,
		StatusConcluded,
		StatusReturning,
		StatusReturned,
	}
}

var statusColors = map[Status]string{
	StatusWaiting:        "#9e9e9e",
	StatusDeparting:      "#1976d2",
	StatusArrivedOnScene: "#f57c00",
	StatusInProgress:     "#c62828",
	StatusConcluded:      "#2e7d32",
	StatusReturning:      "#6a1b9a",
	StatusReturned:       "#455a64",
}

// английские псевдонимы и старые значения из ранних снапшотов
var statusAliases = map[string]Status{
	"WAITING":          StatusWaiting,
	"DEPARTING":        StatusDeparting,
	"ARRIVEDONSCENE":   StatusArrivedOnScene,
	"ARRIVED_ON_SCENE": StatusArrivedOnScene,
	"INPROGRESS":       StatusInProgress,
	"IN_PROGRESS":      StatusInProgress,
	"INTERVENTO":       StatusInProgress,
	"CONCLUDED":        StatusConcluded,
	"RETURNING":        StatusReturning,
	"RETURNED":         StatusReturned,
	"IN MOVIMENTO":     StatusDeparting,
}

// Valid сообщает, входит ли значение в закрытое перечисление
func (s Status) Valid() bool {
	_, ok := statusColors[s]
	return ok
}

// Color возвращает цвет статуса для карты и отчетов
func (s Status) Color() string {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return "#999999"
}

// ParseStatus приводит пользовательский ввод к Status
func ParseStatus(raw string) (Status, error) {
	key := strings.ToUpper(strings.TrimSpace(raw))
	if s := Status(key); s.Valid() {
		return s, nil
	}
	if s, ok := statusAliases[key]; ok {
		return s, nil
	}
	return "", fmt.Errorf("unknown status %q", raw)
}
