package utils

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/kaptinlin/jsonrepair"
)

// ParseStringAs decodes content into T. A string T receives content as-is;
// any other T is JSON-decoded. When strict decoding fails the content is
// passed through jsonrepair (trailing commas, single quotes, truncated
// objects, stray prose) and decoded again. Use it only where a partial
// result is acceptable, such as provider error bodies.
//
//	envelope, err := ParseStringAs[errorEnvelope](body)
func ParseStringAs[T any](content string) (T, error) {
	var result T

	if reflect.TypeFor[T]().Kind() == reflect.String {
		reflect.ValueOf(&result).Elem().SetString(content)
		return result, nil
	}

	err := json.Unmarshal([]byte(content), &result)
	if err == nil {
		return result, nil
	}

	repairedJSON, repairErr := jsonrepair.JSONRepair(content)
	if repairErr != nil {
		return result, fmt.Errorf("failed to unmarshal content as %T and failed to repair JSON: unmarshal error: %w, repair error: %v", result, err, repairErr)
	}

	var repaired T
	if err := json.Unmarshal([]byte(repairedJSON), &repaired); err != nil {
		return result, fmt.Errorf("failed to unmarshal repaired JSON as %T: %w", result, err)
	}
	return repaired, nil
}
