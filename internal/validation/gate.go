package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/feral-file/ff-crm-sync/internal/domain"
)

// TagCRMEmail is the validator tag for the permissive CRM email format
const TagCRMEmail = "crm_email"

// word characters are Unicode letters, digits and underscore
var crmEmailPattern = regexp.MustCompile(`^([\p{L}\p{N}_]|\.|\_|\-)+[@]([\p{L}\p{N}_]|\_|\-|\.)+[.][\p{L}\p{N}_]{2,3}$`)

// Gate filters record batches against a FieldSchema
//
//go:generate mockgen -source=gate.go -destination=../mocks/gate.go -package=mocks -mock_names=Gate=MockGate
type Gate interface {
	// Validate returns the records passing the schema, in input order.
	// A mixed batch is partially accepted; an empty result is the caller's to interpret.
	Validate(records []domain.Record, schema FieldSchema) []domain.Record
}

type gate struct {
	validate *validator.Validate
}

// NewGate creates a schema gate with the CRM format tags registered
func NewGate() Gate {
	v := validator.New()
	_ = v.RegisterValidation(TagCRMEmail, func(fl validator.FieldLevel) bool {
		return crmEmailPattern.MatchString(fl.Field().String())
	})
	return &gate{validate: v}
}

func (g *gate) Validate(records []domain.Record, schema FieldSchema) []domain.Record {
	passed := make([]domain.Record, 0, len(records))
	for _, r := range records {
		if g.accepts(r, schema) {
			passed = append(passed, r)
		}
	}
	return passed
}

func (g *gate) accepts(r domain.Record, schema FieldSchema) bool {
	if !r.IsFlat() {
		return false
	}

	for field := range r {
		if !schema.Allows(field) {
			return false
		}
	}

	// required rejects zero scalars too: "", 0 and false count as missing
	for _, field := range schema.Required {
		value, ok := r[field]
		if !ok || value == nil {
			return false
		}
		if err := g.validate.Var(value, "required"); err != nil {
			return false
		}
	}

	for field, tag := range schema.Formats {
		if err := g.validate.Var(r.String(field), tag); err != nil {
			return false
		}
	}

	return true
}
