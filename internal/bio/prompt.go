package bio

import (
	"fmt"
	"strings"

	"BioGenerator_Service/internal/models"
)

const promptTemplate = "My name is %s. I am %s years old. I am a %s interested in %s. I work as a %s."

// BuildPrompt fills the biography template. Every field must be present.
func BuildPrompt(req models.BioRequest) (string, error) {
	fields := []struct {
		name string
		attr models.Attribute
	}{
		{models.FieldName, req.Name},
		{models.FieldAge, req.Age},
		{models.FieldGender, req.Gender},
		{models.FieldInterests, req.Interests},
		{models.FieldProfession, req.Profession},
	}
	args := make([]any, 0, len(fields))
	for _, f := range fields {
		if !f.attr.Present() {
			return "", &ValidationError{Kind: KindMissingField, Field: f.name}
		}
		args = append(args, f.attr.String())
	}
	return fmt.Sprintf(promptTemplate, args...), nil
}

// TruncateSentences splits text on "." and keeps the first N+1 segments,
// where N is the number of "."-separated segments in prompt, rejoined with ". ".
// The result may end in a fragment without a final period.
func TruncateSentences(text, prompt string) string {
	limit := len(strings.Split(prompt, ".")) + 1
	segments := strings.Split(text, ".")
	if len(segments) > limit {
		segments = segments[:limit]
	}
	return strings.Join(segments, ". ")
}
