package slip

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// FirstObject returns the first complete, syntactically valid JSON object
// in text. Anything before or after it is ignored.
func FirstObject(text string) (json.RawMessage, error) {
	for i := 0; i < len(text); i++ {
		if text[i] != '{' {
			continue
		}
		dec := json.NewDecoder(strings.NewReader(text[i:]))
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			continue
		}
		if bytes.HasPrefix(raw, []byte("{")) {
			return raw, nil
		}
	}
	return nil, ErrUnreadableSlip
}

// GreedyObject spans from the first '{' to the last '}'. It fails on
// responses holding more than one object or stray braces in prose.
func GreedyObject(text string) (json.RawMessage, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return nil, ErrUnreadableSlip
	}
	raw := json.RawMessage(text[start : end+1])
	if !json.Valid(raw) {
		return nil, fmt.Errorf("%w: greedy match is not valid JSON", ErrUnreadableSlip)
	}
	return raw, nil
}

// Extraction is the object the model is asked to answer with
type Extraction struct {
	Endereco   *string
	Bairro     *string
	Referencia *string
	Observacao *string
	Confianca  *string
}

func decodeExtraction(raw json.RawMessage) (*Extraction, error) {
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return &Extraction{
		Endereco:   stringField(fields, "endereco"),
		Bairro:     stringField(fields, "bairro"),
		Referencia: stringField(fields, "referencia"),
		Observacao: stringField(fields, "observacao"),
		Confianca:  stringField(fields, "confianca"),
	}, nil
}

// stringField reads a loosely typed field; null, missing and blank become nil
func stringField(fields map[string]interface{}, key string) *string {
	v, ok := fields[key]
	if !ok || v == nil {
		return nil
	}
	var s string
	switch t := v.(type) {
	case string:
		s = t
	default:
		s = fmt.Sprint(t)
	}
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "null") {
		return nil
	}
	return &s
}
