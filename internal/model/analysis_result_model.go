package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrMalformedResult is returned when a backend body cannot be read as an
// analysis result.
var ErrMalformedResult = errors.New("malformed analysis result")

// Field names as sent by the analysis backend.
const (
	FieldKeywordScore      = "keyword_score"
	FieldExperienceScore   = "experience_score"
	FieldSkillsScore       = "skills_score"
	FieldEducationCheck    = "education_check"
	FieldFormatCheck       = "format_check"
	FieldAchievements      = "achievements"
	FieldMisspelledWords   = "misspelled_words"
	FieldGrammaticalErrors = "grammatical_errors"
	FieldDiversityMentions = "diversity_mentions"
	FieldFinalScore        = "final_score"
)

// AnalysisResult is the flat record returned by POST /analyze.
type AnalysisResult struct {
	KeywordScore      float64 `json:"keyword_score"`    // fraction 0-1
	ExperienceScore   float64 `json:"experience_score"` // fraction 0-1
	SkillsScore       float64 `json:"skills_score"`     // fraction 0-1
	EducationCheck    Value   `json:"education_check"`
	FormatCheck       Value   `json:"format_check"`
	Achievements      Value   `json:"achievements"`
	MisspelledWords   Value   `json:"misspelled_words"` // count or "None"
	GrammaticalErrors Value   `json:"grammatical_errors"`
	DiversityMentions Value   `json:"diversity_mentions"`
	FinalScore        float64 `json:"final_score"` // already a percentage
}

// Value keeps a field exactly as the backend sent it, number or string.
type Value struct {
	raw gjson.Result
}

// NumberValue wraps a number.
func NumberValue(n float64) Value {
	return Value{raw: gjson.Result{Type: gjson.Number, Num: n, Raw: FormatNumber(n)}}
}

// StringValue wraps a string.
func StringValue(s string) Value {
	return Value{raw: gjson.Result{Type: gjson.String, Str: s, Raw: strconv.Quote(s)}}
}

// String prints the value the way a browser prints it into text content.
func (v Value) String() string {
	switch v.raw.Type {
	case gjson.Number:
		return FormatNumber(v.raw.Num)
	case gjson.String:
		return v.raw.Str
	case gjson.True:
		return "true"
	case gjson.False:
		return "false"
	case gjson.Null:
		if v.raw.Raw == "" {
			return ""
		}
		return "null"
	default:
		return v.raw.Raw
	}
}

// ParseAnalysisResult reads a backend body. All ten fields must be present
// and the score fields must be numbers; anything else is ErrMalformedResult.
func ParseAnalysisResult(body []byte) (*AnalysisResult, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: body is not valid JSON", ErrMalformedResult)
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: body is not a JSON object", ErrMalformedResult)
	}

	var missing []string
	field := func(name string) gjson.Result {
		r := doc.Get(name)
		if !r.Exists() {
			missing = append(missing, name)
		}
		return r
	}
	number := func(name string) (float64, error) {
		r := field(name)
		if r.Exists() && r.Type != gjson.Number {
			return 0, fmt.Errorf("%w: %s must be a number, got %s", ErrMalformedResult, name, r.Raw)
		}
		return r.Num, nil
	}

	result := &AnalysisResult{}
	var err error
	if result.KeywordScore, err = number(FieldKeywordScore); err != nil {
		return nil, err
	}
	if result.ExperienceScore, err = number(FieldExperienceScore); err != nil {
		return nil, err
	}
	if result.SkillsScore, err = number(FieldSkillsScore); err != nil {
		return nil, err
	}
	result.EducationCheck = Value{raw: field(FieldEducationCheck)}
	result.FormatCheck = Value{raw: field(FieldFormatCheck)}
	result.Achievements = Value{raw: field(FieldAchievements)}
	result.MisspelledWords = Value{raw: field(FieldMisspelledWords)}
	result.GrammaticalErrors = Value{raw: field(FieldGrammaticalErrors)}
	result.DiversityMentions = Value{raw: field(FieldDiversityMentions)}
	if result.FinalScore, err = number(FieldFinalScore); err != nil {
		return nil, err
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing fields %v", ErrMalformedResult, missing)
	}
	return result, nil
}

// FormatNumber mirrors the shortest round-trip form browsers use for numbers.
func FormatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	case n == 0:
		return "0"
	}
	abs := math.Abs(n)
	if abs >= 1e21 || abs < 1e-6 {
		mantissa, exp, _ := strings.Cut(strconv.FormatFloat(n, 'e', -1, 64), "e")
		e, _ := strconv.Atoi(exp)
		return fmt.Sprintf("%se%+d", mantissa, e)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
