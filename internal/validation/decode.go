package validation

import (
	"encoding/json"
	"fmt"

	"github.com/akave-ai/ledgerdesk/internal/model"
)

// DecodeTicketRecord turns a candidate record (field name -> raw value) into a
// validated TicketInput. Wrong value types fail before any field rule runs;
// absent status and tags take their defaults.
func DecodeTicketRecord(rec map[string]any) (model.TicketInput, error) {
	var in model.TicketInput
	var err error

	if in.CustomerID, err = optionalString(rec, "customer_id"); err != nil {
		return in, err
	}
	if in.CustomerEmail, err = optionalString(rec, "customer_email"); err != nil {
		return in, err
	}
	if in.CustomerName, err = optionalString(rec, "customer_name"); err != nil {
		return in, err
	}
	if in.Subject, err = optionalString(rec, "subject"); err != nil {
		return in, err
	}
	if in.Description, err = optionalString(rec, "description"); err != nil {
		return in, err
	}
	category, err := optionalString(rec, "category")
	if err != nil {
		return in, err
	}
	in.Category = model.Category(category)
	priority, err := optionalString(rec, "priority")
	if err != nil {
		return in, err
	}
	in.Priority = model.Priority(priority)

	in.Status = model.StatusNew
	if v, ok := rec["status"]; ok && v != nil {
		s, ok := v.(string)
		if !ok {
			return in, typeError("status", "string", v)
		}
		in.Status = model.Status(s)
	}

	if in.AssignedTo, err = nullableString(rec, "assigned_to"); err != nil {
		return in, err
	}
	if in.Tags, err = stringList(rec, "tags"); err != nil {
		return in, err
	}
	if in.Tags == nil {
		in.Tags = []string{}
	}
	if in.Metadata, err = metadata(rec, "metadata"); err != nil {
		return in, err
	}

	if err := ValidateTicket(&in); err != nil {
		return in, err
	}
	return in, nil
}

// DecodeTicketUpdate builds a partial update from the fields present in rec.
func DecodeTicketUpdate(rec map[string]any) (model.TicketUpdate, error) {
	var u model.TicketUpdate

	strs := []struct {
		name string
		dst  **string
	}{
		{"customer_id", &u.CustomerID},
		{"customer_email", &u.CustomerEmail},
		{"customer_name", &u.CustomerName},
		{"subject", &u.Subject},
		{"description", &u.Description},
	}
	for _, f := range strs {
		v, ok := rec[f.name]
		if !ok || v == nil {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return u, typeError(f.name, "string", v)
		}
		*f.dst = &s
	}

	if v, ok := rec["category"]; ok && v != nil {
		s, ok := v.(string)
		if !ok {
			return u, typeError("category", "string", v)
		}
		c := model.Category(s)
		u.Category = &c
	}
	if v, ok := rec["priority"]; ok && v != nil {
		s, ok := v.(string)
		if !ok {
			return u, typeError("priority", "string", v)
		}
		p := model.Priority(s)
		u.Priority = &p
	}
	if v, ok := rec["status"]; ok && v != nil {
		s, ok := v.(string)
		if !ok {
			return u, typeError("status", "string", v)
		}
		st := model.Status(s)
		u.Status = &st
	}

	var err error
	if _, ok := rec["assigned_to"]; ok {
		u.AssignedToSet = true
		if u.AssignedTo, err = nullableString(rec, "assigned_to"); err != nil {
			return u, err
		}
	}
	if u.Tags, err = stringList(rec, "tags"); err != nil {
		return u, err
	}
	if u.Metadata, err = metadata(rec, "metadata"); err != nil {
		return u, err
	}

	if err := ValidateTicketUpdate(&u); err != nil {
		return u, err
	}
	return u, nil
}

func optionalString(rec map[string]any, name string) (string, error) {
	v, ok := rec[name]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", typeError(name, "string", v)
	}
	return s, nil
}

func nullableString(rec map[string]any, name string) (*string, error) {
	s, err := optionalString(rec, name)
	if err != nil || rec[name] == nil {
		return nil, err
	}
	return &s, nil
}

func stringList(rec map[string]any, name string) ([]string, error) {
	v, ok := rec[name]
	if !ok || v == nil {
		return nil, nil
	}
	switch list := v.(type) {
	case []string:
		return list, nil
	case []any:
		out := make([]string, 0, len(list))
		for i, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, typeError(fmt.Sprintf("%s.%d", name, i), "string", item)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, typeError(name, "array", v)
}

func metadata(rec map[string]any, name string) (*model.Metadata, error) {
	v, ok := rec[name]
	if !ok || v == nil {
		return nil, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, typeError(name, "object", v)
	}
	source, err := optionalString(m, "source")
	if err != nil {
		return nil, prefixed(name, err)
	}
	browser, err := optionalString(m, "browser")
	if err != nil {
		return nil, prefixed(name, err)
	}
	device, err := optionalString(m, "device_type")
	if err != nil {
		return nil, prefixed(name, err)
	}
	return &model.Metadata{
		Source:     model.Source(source),
		Browser:    browser,
		DeviceType: model.DeviceType(device),
	}, nil
}

func prefixed(parent string, err error) error {
	if fe, ok := AsFieldError(err); ok {
		return &FieldError{Field: parent + "." + fe.Field, Message: fe.Message}
	}
	return err
}

func typeError(field, want string, got any) *FieldError {
	return &FieldError{Field: field, Message: fmt.Sprintf("Expected %s, received %s", want, TypeName(got))}
}

// TypeName names the JSON type of a decoded value.
func TypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32, int, int64, json.Number:
		return "number"
	case []any, []string:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}
