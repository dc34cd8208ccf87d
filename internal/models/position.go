package models

import (
	"encoding/json"
	"fmt"
)

// Position - пара широта/долгота. В снапшоте хранится как массив [lat, lon].
type Position struct {
	Lat float64
	Lon float64
}

func (p Position) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.Lat, p.Lon})
}

func (p *Position) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err == nil {
		if len(pair) != 2 {
			return fmt.Errorf("position: expected 2 coordinates, got %d", len(pair))
		}
		p.Lat, p.Lon = pair[0], pair[1]
		return nil
	}

	// объектная форма {"lat":..,"lon":..}
	var obj struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("position: %w", err)
	}
	p.Lat, p.Lon = obj.Lat, obj.Lon
	return nil
}

// Valid проверяет диапазоны координат
func (p Position) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

func (p Position) String() string {
	return fmt.Sprintf("%.6f,%.6f", p.Lat, p.Lon)
}
