package sightings

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Campos permitidos para mass-assignment. Cualquier otro se descarta.
const (
	fieldDate      = "date"
	fieldLatitude  = "latitude"
	fieldLongitude = "longitude"
)

// Formatos aceptados para date/start_date/end_date. Sin zona => UTC.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// DecodeBody lee un objeto JSON y devuelve (body completo, atributos del sighting).
// Acepta {"sighting": {...}} o el objeto plano.
func DecodeBody(r io.Reader) (map[string]json.RawMessage, map[string]json.RawMessage, error) {
	return DecodeWrapped(r, "sighting")
}

// DecodeWrapped es DecodeBody con otro nombre de wrapper (ej: "animal").
func DecodeWrapped(r io.Reader, wrapper string) (map[string]json.RawMessage, map[string]json.RawMessage, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]json.RawMessage{}, map[string]json.RawMessage{}, nil
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, nil, err
	}
	if body == nil {
		body = map[string]json.RawMessage{}
	}

	if wrapped, ok := body[wrapper]; ok {
		var inner map[string]json.RawMessage
		if err := json.Unmarshal(wrapped, &inner); err != nil {
			return nil, nil, errors.New(wrapper + " must be an object")
		}
		if inner == nil {
			inner = map[string]json.RawMessage{}
		}
		return body, inner, nil
	}
	return body, body, nil
}

// ParseAttributes toma solo date/latitude/longitude.
// Valores no parseables quedan como ausentes (luego fallan presencia).
func ParseAttributes(raw map[string]json.RawMessage) Attributes {
	var a Attributes
	if v, ok := raw[fieldDate]; ok {
		a.Date = Field[time.Time]{Present: true, Value: parseTimeValue(v)}
	}
	if v, ok := raw[fieldLatitude]; ok {
		a.Latitude = Field[decimal.Decimal]{Present: true, Value: parseDecimal(v)}
	}
	if v, ok := raw[fieldLongitude]; ok {
		a.Longitude = Field[decimal.Decimal]{Present: true, Value: parseDecimal(v)}
	}
	return a
}

// ParseTime interpreta los formatos de timeLayouts.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// RawString devuelve el valor como string si es un string o número JSON.
func RawString(v json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s, true
	}
	var n json.Number
	if err := json.Unmarshal(v, &n); err == nil {
		return n.String(), true
	}
	return "", false
}

func parseTimeValue(v json.RawMessage) *time.Time {
	s, ok := RawString(v)
	if !ok {
		return nil
	}
	t, ok := ParseTime(s)
	if !ok {
		return nil
	}
	return &t
}

// parseDecimal conserva todos los dígitos: "122.123456789012345678" no se redondea.
func parseDecimal(v json.RawMessage) *decimal.Decimal {
	s, ok := RawString(v)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}
