package entity

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Record is a fixed-key mapping whose values are either an answer or null.
// Keys marshal to JSON in the order they were declared.
type Record struct {
	fields *orderedmap.OrderedMap[string, *string]
}

// NewRecord returns a record with every field present and null.
func NewRecord(fields []string) *Record {
	r := &Record{
		fields: orderedmap.New[string, *string](
			orderedmap.WithCapacity[string, *string](len(fields)),
			// lease text keeps '&', '<' and '>' literal
			orderedmap.WithDisableHTMLEscape[string, *string](),
		),
	}
	for _, f := range fields {
		if r.Has(f) {
			continue
		}
		r.fields.Set(f, nil)
	}
	return r
}

// Set stores value under field, appending field if it is new.
func (r *Record) Set(field, value string) {
	v := value
	r.fields.Set(field, &v)
}

// SetNull clears field to null, appending it if it is new.
func (r *Record) SetNull(field string) {
	r.fields.Set(field, nil)
}

// Get returns the value of field; ok is false when the field is null or absent.
func (r *Record) Get(field string) (string, bool) {
	v, present := r.fields.Get(field)
	if !present || v == nil {
		return "", false
	}
	return *v, true
}

// Has reports whether field is a key of the record (null or not).
func (r *Record) Has(field string) bool {
	_, ok := r.fields.Get(field)
	return ok
}

// Keys returns the record's keys in order.
func (r *Record) Keys() []string {
	out := make([]string, 0, r.fields.Len())
	for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

func (r *Record) MarshalJSON() ([]byte, error) {
	return r.fields.MarshalJSON()
}
