package res1d

import (
	"errors"
	"fmt"
	"log"
	"reflect"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
)

// ResultAttributes carries the free-form metadata block of a result file,
// e.g. simulation period, engine version or the configured number of
// ranked events.
type ResultAttributes map[string]any

func (ra ResultAttributes) JSONSchemaExtend(schema *jsonschema.Schema) {
	schema.Type = "object"
	schema.AdditionalProperties = &jsonschema.Schema{
		Type: "string",
	}
}

func (ra ResultAttributes) GetInt(name string) (int, error) {
	return GetAttribute[int](ra, name)
}

func (ra ResultAttributes) GetIntOrDefault(name string, defaultValue int) int {
	return GetOrDefault[int](ra, name, defaultValue)
}

func (ra ResultAttributes) GetFloat(name string) (float64, error) {
	return GetAttribute[float64](ra, name)
}

func (ra ResultAttributes) GetFloatOrDefault(name string, defaultValue float64) float64 {
	return GetOrDefault[float64](ra, name, defaultValue)
}

func (ra ResultAttributes) GetString(name string) (string, error) {
	return GetAttribute[string](ra, name)
}

func (ra ResultAttributes) GetStringOrDefault(name string, defaultVal string) string {
	return GetOrDefault[string](ra, name, defaultVal)
}

func (ra ResultAttributes) GetBoolean(name string) (bool, error) {
	return GetAttribute[bool](ra, name)
}

func (ra ResultAttributes) GetBooleanOrDefault(name string, defaultVal bool) bool {
	return GetOrDefault[bool](ra, name, defaultVal)
}

// GetTime reads an attribute as a timestamp, accepting the string layouts
// cast understands.
func (ra ResultAttributes) GetTime(name string) (time.Time, error) {
	attr, ok := ra[name]
	if !ok {
		return time.Time{}, fmt.Errorf("attribute %s is not in the result metadata", name)
	}
	return cast.ToTimeE(attr)
}

func (ra ResultAttributes) GetMap(name string) (map[string]any, error) {
	return GetAttribute[map[string]any](ra, name)
}

// Decode unpacks a nested attribute block into a struct.
func (ra ResultAttributes) Decode(name string, dest any) error {
	attrmap, err := GetAttribute[map[string]any](ra, name)
	if err != nil {
		return err
	}
	return mapstructure.Decode(attrmap, &dest)
}

type AttributeTypes interface {
	int64 | int | float64 | string | bool | map[string]any
}

func GetOrFail[T AttributeTypes](ra ResultAttributes, attr string) T {
	val, err := GetAttribute[T](ra, attr)
	if err != nil {
		log.Fatalf("Invalid value for %v\n", err)
	}
	return val
}

func GetOrDefault[T AttributeTypes](ra ResultAttributes, attr string, defaultVal T) T {
	val, err := GetAttribute[T](ra, attr)
	if err != nil {
		val = defaultVal
	}
	return val
}

func GetAttribute[T AttributeTypes](ra ResultAttributes, name string) (T, error) {
	var t T
	attr, ok := ra[name]
	if !ok {
		return t, fmt.Errorf("attribute %s is not in the result metadata", name)
	}
	tve := reflect.ValueOf(&t).Elem()
	switch tve.Kind() {
	case reflect.Int64:
		i, err := cast.ToInt64E(attr)
		tve.Set(reflect.ValueOf(i))
		return t, err
	case reflect.Int:
		i, err := cast.ToIntE(attr)
		tve.Set(reflect.ValueOf(i))
		return t, err
	case reflect.Float64:
		f, err := cast.ToFloat64E(attr)
		tve.Set(reflect.ValueOf(f))
		return t, err
	case reflect.String:
		s, err := cast.ToStringE(attr)
		tve.Set(reflect.ValueOf(s))
		return t, err
	case reflect.Bool:
		b, err := cast.ToBoolE(attr)
		tve.Set(reflect.ValueOf(b))
		return t, err
	case reflect.Map:
		m := cast.ToStringMap(attr)
		tve.Set(reflect.ValueOf(m))
		return t, nil
	default:
		return t, errors.New("unsupported type for cast")
	}
}
