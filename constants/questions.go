package constants

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Alteration detail record keys.
const (
	FieldConsent             = "Consent (Y/N)"
	FieldCost                = "Cost"
	FieldStructural          = "Structural or Non-structural"
	FieldPlanSubmission      = "Plan Submission to LL"
	FieldLLSubmissionFee     = "LL Submission Fee"
	FieldSummaryOfAlteration = "Summary of Alteration"
	FieldError               = "Error"
)

// Metadata record keys.
const (
	FieldAddress1       = "Property's Address 1"
	FieldOwnershipType  = "Ownership Type"
	FieldClientName     = "Client Name"
	FieldAddress2       = "Property's Address 2"
	FieldPropertyStatus = "Property Status"
	FieldPropertyName   = "Property Name"
	FieldCity           = "Property's City"
	FieldRegion         = "Region"
)

// Question pairs a record field with the natural-language question that fills it.
type Question struct {
	Field    string `yaml:"field"`
	Question string `yaml:"question"`
}

// QuestionSet is an ordered field -> question mapping. Order drives record key order.
type QuestionSet []Question

// Fields returns the field names in order.
func (qs QuestionSet) Fields() []string {
	out := make([]string, 0, len(qs))
	for _, q := range qs {
		out = append(out, q.Field)
	}
	return out
}

// Validate rejects empty or duplicated field names and empty questions.
func (qs QuestionSet) Validate() error {
	seen := make(map[string]struct{}, len(qs))
	for i, q := range qs {
		f := strings.TrimSpace(q.Field)
		if f == "" {
			return fmt.Errorf("question %d: empty field name", i)
		}
		if strings.TrimSpace(q.Question) == "" {
			return fmt.Errorf("question %d (%s): empty question", i, f)
		}
		if _, dup := seen[f]; dup {
			return fmt.Errorf("question %d: duplicate field %q", i, f)
		}
		seen[f] = struct{}{}
	}
	return nil
}

// DefaultAlterationQuestions are asked of every alteration clause.
func DefaultAlterationQuestions() QuestionSet {
	return QuestionSet{
		{Field: FieldConsent, Question: "Does this clause mention consent as yes or no?"},
		{Field: FieldCost, Question: "What is the cost mentioned in this clause?"},
		{Field: FieldStructural, Question: "Is the alteration structural or non-structural?"},
		{Field: FieldPlanSubmission, Question: "Is there a mention of plan submission to LL?"},
		{Field: FieldLLSubmissionFee, Question: "What is the LL submission fee mentioned?"},
	}
}

// DefaultMetadataQuestions are asked once against the whole document.
func DefaultMetadataQuestions() QuestionSet {
	return QuestionSet{
		{Field: FieldAddress1, Question: "What is the primary address of the property?"},
		{Field: FieldOwnershipType, Question: "What is the ownership type?"},
		{Field: FieldClientName, Question: "Who is the client mentioned in the document?"},
		{Field: FieldAddress2, Question: "Is there a secondary address mentioned for the property?"},
		{Field: FieldPropertyStatus, Question: "What is the status of the property?"},
		{Field: FieldPropertyName, Question: "What is the name of the property?"},
		{Field: FieldCity, Question: "In which city is the property located?"},
		{Field: FieldRegion, Question: "What is the region of the property?"},
	}
}

// Questions bundles both question sets.
type Questions struct {
	Alteration QuestionSet `yaml:"alteration"`
	Metadata   QuestionSet `yaml:"metadata"`
}

// DefaultQuestions returns the built-in question sets.
func DefaultQuestions() Questions {
	return Questions{
		Alteration: DefaultAlterationQuestions(),
		Metadata:   DefaultMetadataQuestions(),
	}
}

// LoadQuestions reads question sets from a YAML file. Sets missing from the file keep their defaults.
// An empty path returns the defaults.
func LoadQuestions(path string) (Questions, error) {
	q := DefaultQuestions()
	if strings.TrimSpace(path) == "" {
		return q, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return q, fmt.Errorf("read questions file: %w", err)
	}
	return ParseQuestions(b)
}

// ParseQuestions decodes YAML question sets over the defaults.
func ParseQuestions(b []byte) (Questions, error) {
	var override Questions
	if err := yaml.Unmarshal(b, &override); err != nil {
		return Questions{}, fmt.Errorf("decode questions yaml: %w", err)
	}
	q := DefaultQuestions()
	if len(override.Alteration) > 0 {
		q.Alteration = override.Alteration
	}
	if len(override.Metadata) > 0 {
		q.Metadata = override.Metadata
	}
	for _, f := range q.Alteration.Fields() {
		if f == FieldSummaryOfAlteration || f == FieldError {
			return Questions{}, fmt.Errorf("alteration questions: field %q is reserved", f)
		}
	}
	if err := q.Alteration.Validate(); err != nil {
		return Questions{}, fmt.Errorf("alteration questions: %w", err)
	}
	if err := q.Metadata.Validate(); err != nil {
		return Questions{}, fmt.Errorf("metadata questions: %w", err)
	}
	return q, nil
}
