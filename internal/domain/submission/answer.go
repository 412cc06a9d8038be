package submission

import (
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/datatypes"
)

type AnswerKind int

const (
	AnswerAbsent AnswerKind = iota
	AnswerScalar
	AnswerMulti
)

// AnswerValue is a tagged union over the JSON shapes a client may send
// for one question: a string, an array of strings, or null.
type AnswerValue struct {
	Kind   AnswerKind
	Scalar string
	Multi  []string
}

func Scalar(s string) AnswerValue  { return AnswerValue{Kind: AnswerScalar, Scalar: s} }
func Multi(s []string) AnswerValue { return AnswerValue{Kind: AnswerMulti, Multi: s} }
func Absent() AnswerValue          { return AnswerValue{Kind: AnswerAbsent} }

func (a AnswerValue) MarshalJSON() ([]byte, error) {
	switch a.Kind {
	case AnswerScalar:
		return json.Marshal(a.Scalar)
	case AnswerMulti:
		if a.Multi == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(a.Multi)
	default:
		return []byte("null"), nil
	}
}

func (a *AnswerValue) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*a = Absent()
		return nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var multi []string
		if err := json.Unmarshal(data, &multi); err != nil {
			return fmt.Errorf("answer array must contain only strings: %w", err)
		}
		*a = Multi(multi)
		return nil
	}
	var scalar string
	if err := json.Unmarshal(data, &scalar); err != nil {
		return fmt.Errorf("answer must be a string, a string array, or null: %w", err)
	}
	*a = Scalar(scalar)
	return nil
}

// Cell renders the value for a spreadsheet cell. Multi values join
// with ", "; absent renders the empty string.
func (a AnswerValue) Cell() string {
	switch a.Kind {
	case AnswerScalar:
		return a.Scalar
	case AnswerMulti:
		return strings.Join(a.Multi, ", ")
	default:
		return ""
	}
}

type AnswerMap map[string]AnswerValue

// Encode serializes the map for the JSON column.
func (m AnswerMap) Encode() (datatypes.JSON, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// DecodeAnswers reads a stored answers column back into a typed map.
// Rows written by older question sets decode fine; unknown keys are
// simply carried along.
func DecodeAnswers(raw datatypes.JSON) (AnswerMap, error) {
	if len(raw) == 0 {
		return AnswerMap{}, nil
	}
	var m AnswerMap
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	if m == nil {
		m = AnswerMap{}
	}
	return m, nil
}
