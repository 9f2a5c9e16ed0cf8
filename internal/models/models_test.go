package models

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// gorm skips zero-valued fields that carry a default on insert, so a default other than the
// zero value would replace what the caller set.
func TestColumnDefaultsAreZeroValues(t *testing.T) {
	for _, model := range []interface{}{User{}, Vehicle{}, Booking{}, Review{}, Transaction{}} {
		typ := reflect.TypeOf(model)
		for i := 0; i < typ.NumField(); i++ {
			field := typ.Field(i)
			for _, part := range strings.Split(field.Tag.Get("gorm"), ";") {
				value, ok := strings.CutPrefix(part, "default:")
				if !ok {
					continue
				}
				zero := fmt.Sprint(reflect.Zero(field.Type).Interface())
				assert.Equal(t, zero, value, "%s.%s", typ.Name(), field.Name)
			}
		}
	}
}

func TestVehicleAvailableHasNoDefault(t *testing.T) {
	field, ok := reflect.TypeOf(Vehicle{}).FieldByName("Available")
	assert.True(t, ok)
	assert.NotContains(t, field.Tag.Get("gorm"), "default:")
}
