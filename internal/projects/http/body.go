package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/progress-tracker/internal/projects/domain"
)

type body map[string]json.RawMessage

// bindBody decodes the request into a field map and checks that every
// required field is present. The body must hold exactly one JSON value.
func bindBody(c *gin.Context, required []string) (body, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, domain.ErrMalformedBody
	}

	var b body
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&b); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, domain.ErrNoDataProvided
		}
		return nil, domain.ErrMalformedBody
	}
	if err := dec.Decode(new(json.RawMessage)); !errors.Is(err, io.EOF) {
		return nil, domain.ErrMalformedBody
	}
	if b == nil {
		return nil, domain.ErrNoDataProvided
	}
	if err := domain.RequireFields(required, b); err != nil {
		return nil, err
	}
	return b, nil
}

var jsonNull = []byte("null")

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), jsonNull)
}

// fieldDecoder collects every field that fails to decode so they can be
// reported together. Text must be valid UTF-8: encoding/json would otherwise
// store bad bytes as U+FFFD.
type fieldDecoder struct {
	b       body
	invalid []string
}

func (d *fieldDecoder) text(name string) string {
	var v string
	raw, ok := d.b[name]
	if !ok {
		return v
	}
	if isNull(raw) || !utf8.Valid(raw) || json.Unmarshal(raw, &v) != nil {
		d.invalid = append(d.invalid, name)
	}
	return v
}

func (d *fieldDecoder) integer(name string) int64 {
	var v int64
	raw, ok := d.b[name]
	if !ok {
		return v
	}
	if isNull(raw) || json.Unmarshal(raw, &v) != nil {
		d.invalid = append(d.invalid, name)
	}
	return v
}

// optionalText treats an absent key and null alike.
func (d *fieldDecoder) optionalText(name string) *string {
	raw, ok := d.b[name]
	if !ok || isNull(raw) {
		return nil
	}
	var v string
	if !utf8.Valid(raw) || json.Unmarshal(raw, &v) != nil {
		d.invalid = append(d.invalid, name)
		return nil
	}
	return &v
}

func (d *fieldDecoder) err() error {
	if len(d.invalid) > 0 {
		return &domain.InvalidFieldError{Fields: d.invalid}
	}
	return nil
}

func projectFields(b body) (domain.ProjectFields, error) {
	d := &fieldDecoder{b: b}
	f := domain.ProjectFields{
		Title:       d.text(domain.FieldTitle),
		Description: d.text(domain.FieldDescription),
		Goal:        d.integer(domain.FieldGoal),
		Unit:        d.text(domain.FieldUnit),
	}
	return f, d.err()
}

func progressFields(b body) (domain.ProgressFields, error) {
	d := &fieldDecoder{b: b}
	f := domain.ProgressFields{
		Value: d.integer(domain.FieldValue),
		Note:  d.optionalText(domain.FieldNote),
	}
	return f, d.err()
}
